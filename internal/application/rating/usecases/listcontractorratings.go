package usecases

import (
	"context"

	"github.com/fieldserv-inc/fieldserv/internal/application/rating/dto"
	"github.com/fieldserv-inc/fieldserv/internal/domain/rating"
	apperrors "github.com/fieldserv-inc/fieldserv/internal/shared/errors"
	"github.com/fieldserv-inc/fieldserv/internal/shared/logger"
)

type ListContractorRatingsQuery struct {
	ContractorID uint
	Page         int
	PageSize     int
}

type ListContractorRatingsResult struct {
	Ratings  []*dto.RatingDTO `json:"ratings"`
	Total    int64            `json:"total"`
	Page     int              `json:"page"`
	PageSize int              `json:"page_size"`
}

type ListContractorRatingsUseCase struct {
	ratingRepo rating.Repository
	logger     logger.Interface
}

func NewListContractorRatingsUseCase(ratingRepo rating.Repository, logger logger.Interface) *ListContractorRatingsUseCase {
	return &ListContractorRatingsUseCase{
		ratingRepo: ratingRepo,
		logger:     logger,
	}
}

func (uc *ListContractorRatingsUseCase) Execute(ctx context.Context, query ListContractorRatingsQuery) (*ListContractorRatingsResult, error) {
	if query.ContractorID == 0 {
		return nil, apperrors.NewValidationError("contractor ID is required")
	}

	page := query.Page
	if page < 1 {
		page = 1
	}
	pageSize := query.PageSize
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}

	ratings, total, err := uc.ratingRepo.ListByContractorID(ctx, query.ContractorID, page, pageSize)
	if err != nil {
		uc.logger.Errorw("failed to list ratings", "error", err, "contractor_id", query.ContractorID)
		return nil, apperrors.NewInternalError("failed to list ratings")
	}

	return &ListContractorRatingsResult{
		Ratings:  dto.FromRatings(ratings),
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}
