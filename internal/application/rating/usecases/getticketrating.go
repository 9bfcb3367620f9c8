package usecases

import (
	"context"

	"github.com/fieldserv-inc/fieldserv/internal/application/rating/dto"
	"github.com/fieldserv-inc/fieldserv/internal/domain/rating"
	apperrors "github.com/fieldserv-inc/fieldserv/internal/shared/errors"
	"github.com/fieldserv-inc/fieldserv/internal/shared/logger"
)

type GetTicketRatingQuery struct {
	TicketID uint
}

type GetTicketRatingUseCase struct {
	ratingRepo rating.Repository
	logger     logger.Interface
}

func NewGetTicketRatingUseCase(ratingRepo rating.Repository, logger logger.Interface) *GetTicketRatingUseCase {
	return &GetTicketRatingUseCase{
		ratingRepo: ratingRepo,
		logger:     logger,
	}
}

func (uc *GetTicketRatingUseCase) Execute(ctx context.Context, query GetTicketRatingQuery) (*dto.RatingDTO, error) {
	if query.TicketID == 0 {
		return nil, apperrors.NewValidationError("ticket ID is required")
	}

	r, err := uc.ratingRepo.GetByTicketID(ctx, query.TicketID)
	if err != nil {
		uc.logger.Errorw("failed to find rating", "error", err, "ticket_id", query.TicketID)
		return nil, apperrors.NewNotFoundError("rating not found")
	}

	return dto.FromRating(r), nil
}
