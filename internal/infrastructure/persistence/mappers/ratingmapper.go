package mappers

import (
	"encoding/json"
	"fmt"

	"github.com/fieldserv-inc/fieldserv/internal/domain/rating"
	"github.com/fieldserv-inc/fieldserv/internal/infrastructure/persistence/models"
)

// RatingMapper converts ratings and reputation aggregates to and from their
// persistence models. The checklist is stored as JSON; derived scores are
// denormalized into columns for querying.
type RatingMapper interface {
	ToModel(r *rating.Rating) (*models.RatingModel, error)
	ToDomain(model *models.RatingModel) (*rating.Rating, error)
	ReputationToModel(rep *rating.ContractorReputation) *models.ContractorReputationModel
	ReputationToDomain(model *models.ContractorReputationModel) (*rating.ContractorReputation, error)
}

type RatingMapperImpl struct{}

func NewRatingMapper() RatingMapper {
	return &RatingMapperImpl{}
}

func (m *RatingMapperImpl) ToModel(r *rating.Rating) (*models.RatingModel, error) {
	checklistJSON, err := json.Marshal(r.Checklist())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal rating checklist (rating=%d): %w", r.ID(), err)
	}

	s := r.Scores()
	return &models.RatingModel{
		ID:           r.ID(),
		TicketID:     r.TicketID(),
		ContractorID: r.ContractorID(),
		RatedBy:      r.RatedBy(),

		Checklist: checklistJSON,

		Punctuality:     s.Punctuality,
		PPE:             s.PPE,
		CustomerService: s.CustomerService,
		Workmanship:     s.Workmanship,
		SiteProcedures:  s.SiteProcedures,

		OverallPercentage: s.OverallPercentage,
		Stars:             s.Stars,

		Comment:   r.Comment(),
		CreatedAt: r.CreatedAt().UnixMilli(),
	}, nil
}

func (m *RatingMapperImpl) ToDomain(model *models.RatingModel) (*rating.Rating, error) {
	var checklist rating.Checklist
	if err := json.Unmarshal(model.Checklist, &checklist); err != nil {
		return nil, fmt.Errorf("failed to unmarshal rating checklist (id=%d): %w", model.ID, err)
	}

	return rating.ReconstructRating(rating.RatingState{
		ID:           model.ID,
		TicketID:     model.TicketID,
		ContractorID: model.ContractorID,
		RatedBy:      model.RatedBy,
		Checklist:    checklist,
		Scores: rating.Scores{
			Punctuality:       model.Punctuality,
			PPE:               model.PPE,
			CustomerService:   model.CustomerService,
			Workmanship:       model.Workmanship,
			SiteProcedures:    model.SiteProcedures,
			OverallPercentage: model.OverallPercentage,
			Stars:             model.Stars,
		},
		Comment:   model.Comment,
		CreatedAt: millisToTime(model.CreatedAt),
	})
}

func (m *RatingMapperImpl) ReputationToModel(rep *rating.ContractorReputation) *models.ContractorReputationModel {
	return &models.ContractorReputationModel{
		ContractorID: rep.ContractorID(),
		TotalRatings: rep.TotalRatings(),

		AvgPunctuality:     rep.AvgPunctuality(),
		AvgCustomerService: rep.AvgCustomerService(),
		AvgWorkmanship:     rep.AvgWorkmanship(),
		AvgOverall:         rep.AvgOverall(),

		PPECompliantCount:        rep.PPECompliantCount(),
		ProceduresCompliantCount: rep.ProceduresCompliantCount(),

		Version:   rep.Version(),
		UpdatedAt: rep.UpdatedAt().UnixMilli(),
	}
}

func (m *RatingMapperImpl) ReputationToDomain(model *models.ContractorReputationModel) (*rating.ContractorReputation, error) {
	return rating.ReconstructReputation(rating.ReputationState{
		ContractorID:             model.ContractorID,
		TotalRatings:             model.TotalRatings,
		AvgPunctuality:           model.AvgPunctuality,
		AvgCustomerService:       model.AvgCustomerService,
		AvgWorkmanship:           model.AvgWorkmanship,
		AvgOverall:               model.AvgOverall,
		PPECompliantCount:        model.PPECompliantCount,
		ProceduresCompliantCount: model.ProceduresCompliantCount,
		Version:                  model.Version,
		UpdatedAt:                millisToTime(model.UpdatedAt),
	})
}
