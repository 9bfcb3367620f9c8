package usecases

import (
	"context"

	"github.com/fieldserv-inc/fieldserv/internal/application/invoice/dto"
	"github.com/fieldserv-inc/fieldserv/internal/domain/invoice"
	vo "github.com/fieldserv-inc/fieldserv/internal/domain/invoice/valueobjects"
	apperrors "github.com/fieldserv-inc/fieldserv/internal/shared/errors"
	"github.com/fieldserv-inc/fieldserv/internal/shared/logger"
)

type ListInvoicesQuery struct {
	TicketID     *uint
	ContractorID *uint
	Status       string
	ActiveOnly   bool
	Page         int
	PageSize     int
	SortBy       string
	SortOrder    string
}

type ListInvoicesResult struct {
	Invoices []*dto.InvoiceDTO `json:"invoices"`
	Total    int64             `json:"total"`
	Page     int               `json:"page"`
	PageSize int               `json:"page_size"`
}

type ListInvoicesUseCase struct {
	invoiceRepo invoice.Repository
	formatMoney dto.MoneyFormatter
	logger      logger.Interface
}

func NewListInvoicesUseCase(invoiceRepo invoice.Repository, formatMoney dto.MoneyFormatter, logger logger.Interface) *ListInvoicesUseCase {
	return &ListInvoicesUseCase{
		invoiceRepo: invoiceRepo,
		formatMoney: formatMoney,
		logger:      logger,
	}
}

func (uc *ListInvoicesUseCase) Execute(ctx context.Context, query ListInvoicesQuery) (*ListInvoicesResult, error) {
	filter, err := uc.buildFilter(query)
	if err != nil {
		return nil, err
	}

	invoices, total, err := uc.invoiceRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list invoices", "error", err)
		return nil, apperrors.NewInternalError("failed to list invoices")
	}

	return &ListInvoicesResult{
		Invoices: dto.FromInvoices(invoices, uc.formatMoney),
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}, nil
}

func (uc *ListInvoicesUseCase) buildFilter(query ListInvoicesQuery) (invoice.Filter, error) {
	filter := invoice.Filter{
		TicketID:     query.TicketID,
		ContractorID: query.ContractorID,
		ActiveOnly:   query.ActiveOnly,
		Page:         query.Page,
		PageSize:     query.PageSize,
		SortBy:       query.SortBy,
		SortOrder:    query.SortOrder,
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

	if len(query.Status) > 0 {
		status, err := vo.NewInvoiceStatus(query.Status)
		if err != nil {
			return invoice.Filter{}, apperrors.NewValidationError(err.Error())
		}
		filter.Status = &status
	}

	return filter, nil
}
