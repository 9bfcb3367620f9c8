package dto

import (
	"time"

	"github.com/fieldserv-inc/fieldserv/internal/domain/rating"
)

// RatingDTO is the read model for a submitted rating. Scores are the derived
// values stored at submission time.
type RatingDTO struct {
	ID           uint `json:"id"`
	TicketID     uint `json:"ticket_id"`
	ContractorID uint `json:"contractor_id"`
	RatedBy      uint `json:"rated_by"`

	Punctuality     int `json:"punctuality"`
	PPE             int `json:"ppe"`
	CustomerService int `json:"customer_service"`
	Workmanship     int `json:"workmanship"`
	SiteProcedures  int `json:"site_procedures"`

	OverallPercentage int `json:"overall_percentage"`
	Stars             int `json:"stars"`

	Checklist rating.Checklist `json:"checklist"`
	Comment   string           `json:"comment,omitempty"`
	CreatedAt string           `json:"created_at"`
}

func FromRating(r *rating.Rating) *RatingDTO {
	s := r.Scores()
	return &RatingDTO{
		ID:           r.ID(),
		TicketID:     r.TicketID(),
		ContractorID: r.ContractorID(),
		RatedBy:      r.RatedBy(),

		Punctuality:     s.Punctuality,
		PPE:             s.PPE,
		CustomerService: s.CustomerService,
		Workmanship:     s.Workmanship,
		SiteProcedures:  s.SiteProcedures,

		OverallPercentage: s.OverallPercentage,
		Stars:             s.Stars,

		Checklist: r.Checklist(),
		Comment:   r.Comment(),
		CreatedAt: r.CreatedAt().Format(time.RFC3339),
	}
}

func FromRatings(ratings []*rating.Rating) []*RatingDTO {
	out := make([]*RatingDTO, 0, len(ratings))
	for _, r := range ratings {
		out = append(out, FromRating(r))
	}
	return out
}

// ReputationDTO is the read model for the per-contractor aggregate. Compliance
// rates are percentages in [0,100].
type ReputationDTO struct {
	ContractorID uint  `json:"contractor_id"`
	TotalRatings int64 `json:"total_ratings"`

	AvgPunctuality     float64 `json:"avg_punctuality"`
	AvgCustomerService float64 `json:"avg_customer_service"`
	AvgWorkmanship     float64 `json:"avg_workmanship"`
	AvgOverall         float64 `json:"avg_overall"`

	PPEComplianceRate        float64 `json:"ppe_compliance_rate"`
	ProceduresComplianceRate float64 `json:"procedures_compliance_rate"`

	UpdatedAt string `json:"updated_at"`
}

func FromReputation(rep *rating.ContractorReputation) *ReputationDTO {
	return &ReputationDTO{
		ContractorID: rep.ContractorID(),
		TotalRatings: rep.TotalRatings(),

		AvgPunctuality:     rep.AvgPunctuality(),
		AvgCustomerService: rep.AvgCustomerService(),
		AvgWorkmanship:     rep.AvgWorkmanship(),
		AvgOverall:         rep.AvgOverall(),

		PPEComplianceRate:        rep.PPEComplianceRate(),
		ProceduresComplianceRate: rep.ProceduresComplianceRate(),

		UpdatedAt: rep.UpdatedAt().Format(time.RFC3339),
	}
}

// EmptyReputation is returned for contractors with no ratings yet.
func EmptyReputation(contractorID uint) *ReputationDTO {
	return &ReputationDTO{
		ContractorID: contractorID,
		UpdatedAt:    time.Now().UTC().Format(time.RFC3339),
	}
}
