package usecases

import (
	"context"

	"github.com/fieldserv-inc/fieldserv/internal/application/settlement/dto"
	"github.com/fieldserv-inc/fieldserv/internal/domain/settlement"
	apperrors "github.com/fieldserv-inc/fieldserv/internal/shared/errors"
	"github.com/fieldserv-inc/fieldserv/internal/shared/logger"
)

type GetPaymentBatchQuery struct {
	BatchID   uint
	Reference string
}

type GetPaymentBatchUseCase struct {
	batchRepo   settlement.Repository
	formatMoney dto.MoneyFormatter
	logger      logger.Interface
}

func NewGetPaymentBatchUseCase(batchRepo settlement.Repository, formatMoney dto.MoneyFormatter, logger logger.Interface) *GetPaymentBatchUseCase {
	return &GetPaymentBatchUseCase{
		batchRepo:   batchRepo,
		formatMoney: formatMoney,
		logger:      logger,
	}
}

func (uc *GetPaymentBatchUseCase) Execute(ctx context.Context, query GetPaymentBatchQuery) (*dto.PaymentBatchDTO, error) {
	if query.BatchID == 0 && len(query.Reference) == 0 {
		return nil, apperrors.NewValidationError("batch ID or reference is required")
	}

	var batch *settlement.PaymentBatch
	var err error
	if query.BatchID != 0 {
		batch, err = uc.batchRepo.GetByID(ctx, query.BatchID)
	} else {
		batch, err = uc.batchRepo.GetByReference(ctx, query.Reference)
	}
	if err != nil {
		uc.logger.Errorw("failed to find payment batch", "error", err, "batch_id", query.BatchID, "reference", query.Reference)
		return nil, apperrors.NewNotFoundError("payment batch not found")
	}

	return dto.FromPaymentBatch(batch, uc.formatMoney), nil
}
