package ticket

import (
	"fmt"
	"time"
)

// JobPlan is the payload a contractor submits when accepting an assignment:
// who is coming, when, and for how long. It is validated wholesale rather
// than trusted as incrementally built client state.
type JobPlan struct {
	TechnicianName   string    `json:"technician_name"`
	TechnicianPhone  string    `json:"technician_phone"`
	ScheduledArrival time.Time `json:"scheduled_arrival"`
	EstimatedHours   float64   `json:"estimated_hours"`
	Notes            string    `json:"notes,omitempty"`
}

func (p JobPlan) Validate() error {
	if len(p.TechnicianName) == 0 {
		return fmt.Errorf("technician name is required")
	}
	if len(p.TechnicianPhone) == 0 {
		return fmt.Errorf("technician phone is required")
	}
	if p.ScheduledArrival.IsZero() {
		return fmt.Errorf("scheduled arrival time is required")
	}
	if p.EstimatedHours <= 0 {
		return fmt.Errorf("estimated duration must be positive")
	}
	return nil
}
