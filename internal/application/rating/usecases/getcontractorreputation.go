package usecases

import (
	"context"

	"github.com/fieldserv-inc/fieldserv/internal/application/rating/dto"
	"github.com/fieldserv-inc/fieldserv/internal/domain/rating"
	apperrors "github.com/fieldserv-inc/fieldserv/internal/shared/errors"
	"github.com/fieldserv-inc/fieldserv/internal/shared/logger"
)

type GetContractorReputationQuery struct {
	ContractorID uint
}

// GetContractorReputationUseCase serves the read side of reputation. Cache
// first; a contractor without ratings gets an empty aggregate, not an error.
type GetContractorReputationUseCase struct {
	reputationRepo rating.ReputationRepository
	cache          ReputationCache
	logger         logger.Interface
}

func NewGetContractorReputationUseCase(
	reputationRepo rating.ReputationRepository,
	cache ReputationCache,
	logger logger.Interface,
) *GetContractorReputationUseCase {
	return &GetContractorReputationUseCase{
		reputationRepo: reputationRepo,
		cache:          cache,
		logger:         logger,
	}
}

func (uc *GetContractorReputationUseCase) Execute(ctx context.Context, query GetContractorReputationQuery) (*dto.ReputationDTO, error) {
	if query.ContractorID == 0 {
		return nil, apperrors.NewValidationError("contractor ID is required")
	}

	cached, err := uc.cache.Get(ctx, query.ContractorID)
	if err != nil {
		uc.logger.Warnw("reputation cache read failed", "error", err, "contractor_id", query.ContractorID)
	} else if cached != nil {
		return cached, nil
	}

	rep, err := uc.reputationRepo.GetByContractorID(ctx, query.ContractorID)
	if err != nil {
		if apperrors.IsNotFoundError(err) {
			return dto.EmptyReputation(query.ContractorID), nil
		}
		uc.logger.Errorw("failed to load reputation", "error", err, "contractor_id", query.ContractorID)
		return nil, apperrors.NewInternalError("failed to load reputation")
	}

	result := dto.FromReputation(rep)
	if err := uc.cache.Set(ctx, result); err != nil {
		uc.logger.Warnw("reputation cache write failed", "error", err, "contractor_id", query.ContractorID)
	}

	return result, nil
}
