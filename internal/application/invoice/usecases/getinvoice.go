package usecases

import (
	"context"

	"github.com/fieldserv-inc/fieldserv/internal/application/invoice/dto"
	"github.com/fieldserv-inc/fieldserv/internal/domain/invoice"
	apperrors "github.com/fieldserv-inc/fieldserv/internal/shared/errors"
	"github.com/fieldserv-inc/fieldserv/internal/shared/logger"
)

type GetInvoiceQuery struct {
	InvoiceID uint
}

type GetInvoiceUseCase struct {
	invoiceRepo invoice.Repository
	formatMoney dto.MoneyFormatter
	logger      logger.Interface
}

func NewGetInvoiceUseCase(invoiceRepo invoice.Repository, formatMoney dto.MoneyFormatter, logger logger.Interface) *GetInvoiceUseCase {
	return &GetInvoiceUseCase{
		invoiceRepo: invoiceRepo,
		formatMoney: formatMoney,
		logger:      logger,
	}
}

func (uc *GetInvoiceUseCase) Execute(ctx context.Context, query GetInvoiceQuery) (*dto.InvoiceDTO, error) {
	if query.InvoiceID == 0 {
		return nil, apperrors.NewValidationError("invoice ID is required")
	}

	inv, err := uc.invoiceRepo.GetByID(ctx, query.InvoiceID)
	if err != nil {
		uc.logger.Errorw("failed to find invoice", "error", err, "invoice_id", query.InvoiceID)
		return nil, apperrors.NewNotFoundError("invoice not found")
	}

	return dto.FromInvoice(inv, uc.formatMoney), nil
}
