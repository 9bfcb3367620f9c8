package rating

import "time"

// PunctualityChecklist captures arrival evidence for one job.
type PunctualityChecklist struct {
	ScheduledArrival *time.Time `json:"scheduled_arrival"`
	ActualArrival    *time.Time `json:"actual_arrival"`
	NotifiedOfDelay  bool       `json:"notified_of_delay"`
}

// PPEChecklist captures protective-equipment compliance. HardHat, SafetyBoots
// and ReflectiveVest are the required items; the rest are informational.
type PPEChecklist struct {
	OverallCompliant bool   `json:"overall_compliant"`
	HardHat          bool   `json:"hard_hat"`
	SafetyBoots      bool   `json:"safety_boots"`
	ReflectiveVest   bool   `json:"reflective_vest"`
	Gloves           bool   `json:"gloves"`
	EyeProtection    bool   `json:"eye_protection"`
	IssueComment     string `json:"issue_comment"`
}

type CustomerServiceChecklist struct {
	CommunicatedClearly        bool `json:"communicated_clearly"`
	ProfessionalAttitude       bool `json:"professional_attitude"`
	RespectfulToStaff          bool `json:"respectful_to_staff"`
	PatientAndSolutionOriented bool `json:"patient_and_solution_oriented"`
}

type WorkmanshipChecklist struct {
	CompletedAsRequested bool `json:"completed_as_requested"`
	NoShortcuts          bool `json:"no_shortcuts"`
	CleanWorkArea        bool `json:"clean_work_area"`
	NoReworkNeeded       bool `json:"no_rework_needed"`
}

type SiteProceduresChecklist struct {
	OverallCompliant      bool `json:"overall_compliant"`
	PermitToWorkFilled    bool `json:"permit_to_work_filled"`
	LoggedIntoJobCard     bool `json:"logged_into_job_card"`
	FollowedIsolation     bool `json:"followed_isolation"`
	FollowedWasteDisposal bool `json:"followed_waste_disposal"`
}

// Checklist is the full rating submission payload, validated wholesale.
type Checklist struct {
	Punctuality     PunctualityChecklist     `json:"punctuality"`
	PPE             PPEChecklist             `json:"ppe"`
	CustomerService CustomerServiceChecklist `json:"customer_service"`
	Workmanship     WorkmanshipChecklist     `json:"workmanship"`
	SiteProcedures  SiteProceduresChecklist  `json:"site_procedures"`
}
