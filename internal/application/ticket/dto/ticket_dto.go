package dto

import (
	"time"

	"github.com/fieldserv-inc/fieldserv/internal/domain/ticket"
)

// JobPlanDTO mirrors the job plan a contractor submitted on acceptance.
type JobPlanDTO struct {
	TechnicianName   string  `json:"technician_name"`
	TechnicianPhone  string  `json:"technician_phone"`
	ScheduledArrival string  `json:"scheduled_arrival"`
	EstimatedHours   float64 `json:"estimated_hours"`
	Notes            string  `json:"notes,omitempty"`
}

// TicketDTO is the read model returned by get/list operations.
type TicketDTO struct {
	ID          uint    `json:"id"`
	Number      string  `json:"number"`
	TenantID    uint    `json:"tenant_id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	AssetRef    *string `json:"asset_ref,omitempty"`
	Priority    string  `json:"priority"`
	Status      string  `json:"status"`
	RequesterID uint    `json:"requester_id"`
	AssigneeID  *uint   `json:"assignee_id,omitempty"`
	Location    string  `json:"location"`

	JobPlan             *JobPlanDTO `json:"job_plan,omitempty"`
	WorkDescription     string      `json:"work_description,omitempty"`
	WorkRejectionReason string      `json:"work_rejection_reason,omitempty"`
	CancelReason        string      `json:"cancel_reason,omitempty"`
	AssignRejectReason  string      `json:"assign_reject_reason,omitempty"`

	ResponseDue   *string `json:"response_due,omitempty"`
	ResolutionDue *string `json:"resolution_due,omitempty"`

	AssignedAt                 *string `json:"assigned_at,omitempty"`
	ContractorAcceptedAt       *string `json:"contractor_accepted_at,omitempty"`
	OnSiteAt                   *string `json:"on_site_at,omitempty"`
	WorkStartedAt              *string `json:"work_started_at,omitempty"`
	WorkDescriptionRequestedAt *string `json:"work_description_requested_at,omitempty"`
	WorkDescriptionSubmittedAt *string `json:"work_description_submitted_at,omitempty"`
	WorkDescriptionApprovedAt  *string `json:"work_description_approved_at,omitempty"`
	CompletedAt                *string `json:"completed_at,omitempty"`
	ClosedAt                   *string `json:"closed_at,omitempty"`

	Version   int    `json:"version"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// FromTicket maps the aggregate onto the read model.
func FromTicket(t *ticket.Ticket) *TicketDTO {
	d := &TicketDTO{
		ID:          t.ID(),
		Number:      t.Number(),
		TenantID:    t.TenantID(),
		Title:       t.Title(),
		Description: t.Description(),
		Category:    t.Category().String(),
		AssetRef:    t.AssetRef(),
		Priority:    t.Priority().String(),
		Status:      t.Status().String(),
		RequesterID: t.RequesterID(),
		AssigneeID:  t.AssigneeID(),
		Location:    t.Location(),

		WorkDescription:     t.WorkDescription(),
		WorkRejectionReason: t.WorkRejectionReason(),
		CancelReason:        t.CancelReason(),
		AssignRejectReason:  t.AssignRejectReason(),

		ResponseDue:   formatTimePtr(t.ResponseDue()),
		ResolutionDue: formatTimePtr(t.ResolutionDue()),

		AssignedAt:                 formatTimePtr(t.AssignedAt()),
		ContractorAcceptedAt:       formatTimePtr(t.ContractorAcceptedAt()),
		OnSiteAt:                   formatTimePtr(t.OnSiteAt()),
		WorkStartedAt:              formatTimePtr(t.WorkStartedAt()),
		WorkDescriptionRequestedAt: formatTimePtr(t.WorkDescriptionRequestedAt()),
		WorkDescriptionSubmittedAt: formatTimePtr(t.WorkDescriptionSubmittedAt()),
		WorkDescriptionApprovedAt:  formatTimePtr(t.WorkDescriptionApprovedAt()),
		CompletedAt:                formatTimePtr(t.CompletedAt()),
		ClosedAt:                   formatTimePtr(t.ClosedAt()),

		Version:   t.Version(),
		CreatedAt: t.CreatedAt().Format(time.RFC3339),
		UpdatedAt: t.UpdatedAt().Format(time.RFC3339),
	}

	if plan := t.JobPlan(); plan != nil {
		d.JobPlan = &JobPlanDTO{
			TechnicianName:   plan.TechnicianName,
			TechnicianPhone:  plan.TechnicianPhone,
			ScheduledArrival: plan.ScheduledArrival.Format(time.RFC3339),
			EstimatedHours:   plan.EstimatedHours,
			Notes:            plan.Notes,
		}
	}

	return d
}

// FromTickets maps a list result.
func FromTickets(tickets []*ticket.Ticket) []*TicketDTO {
	out := make([]*TicketDTO, 0, len(tickets))
	for _, t := range tickets {
		out = append(out, FromTicket(t))
	}
	return out
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}
