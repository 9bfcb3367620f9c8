package usecases

import (
	"context"

	"github.com/fieldserv-inc/fieldserv/internal/application/settlement/dto"
	"github.com/fieldserv-inc/fieldserv/internal/domain/settlement"
	apperrors "github.com/fieldserv-inc/fieldserv/internal/shared/errors"
	"github.com/fieldserv-inc/fieldserv/internal/shared/logger"
)

type ListPaymentBatchesQuery struct {
	CreatedBy *uint
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}

type ListPaymentBatchesResult struct {
	Batches  []*dto.PaymentBatchDTO `json:"batches"`
	Total    int64                  `json:"total"`
	Page     int                    `json:"page"`
	PageSize int                    `json:"page_size"`
}

type ListPaymentBatchesUseCase struct {
	batchRepo   settlement.Repository
	formatMoney dto.MoneyFormatter
	logger      logger.Interface
}

func NewListPaymentBatchesUseCase(batchRepo settlement.Repository, formatMoney dto.MoneyFormatter, logger logger.Interface) *ListPaymentBatchesUseCase {
	return &ListPaymentBatchesUseCase{
		batchRepo:   batchRepo,
		formatMoney: formatMoney,
		logger:      logger,
	}
}

func (uc *ListPaymentBatchesUseCase) Execute(ctx context.Context, query ListPaymentBatchesQuery) (*ListPaymentBatchesResult, error) {
	filter := settlement.Filter{
		CreatedBy: query.CreatedBy,
		Page:      query.Page,
		PageSize:  query.PageSize,
		SortBy:    query.SortBy,
		SortOrder: query.SortOrder,
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	if filter.PageSize > 100 {
		filter.PageSize = 100
	}

	batches, total, err := uc.batchRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list payment batches", "error", err)
		return nil, apperrors.NewInternalError("failed to list payment batches")
	}

	return &ListPaymentBatchesResult{
		Batches:  dto.FromPaymentBatches(batches, uc.formatMoney),
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}, nil
}
