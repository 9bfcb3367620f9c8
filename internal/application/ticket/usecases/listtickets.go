package usecases

import (
	"context"

	"github.com/fieldserv-inc/fieldserv/internal/application/ticket/dto"
	"github.com/fieldserv-inc/fieldserv/internal/domain/ticket"
	vo "github.com/fieldserv-inc/fieldserv/internal/domain/ticket/valueobjects"
	apperrors "github.com/fieldserv-inc/fieldserv/internal/shared/errors"
	"github.com/fieldserv-inc/fieldserv/internal/shared/logger"
)

type ListTicketsQuery struct {
	TenantID    *uint
	Status      string
	Priority    string
	Category    string
	RequesterID *uint
	AssigneeID  *uint
	Page        int
	PageSize    int
	SortBy      string
	SortOrder   string
}

type ListTicketsResult struct {
	Tickets  []*dto.TicketDTO `json:"tickets"`
	Total    int64            `json:"total"`
	Page     int              `json:"page"`
	PageSize int              `json:"page_size"`
}

type ListTicketsUseCase struct {
	ticketRepo ticket.Repository
	logger     logger.Interface
}

func NewListTicketsUseCase(ticketRepo ticket.Repository, logger logger.Interface) *ListTicketsUseCase {
	return &ListTicketsUseCase{
		ticketRepo: ticketRepo,
		logger:     logger,
	}
}

func (uc *ListTicketsUseCase) Execute(ctx context.Context, query ListTicketsQuery) (*ListTicketsResult, error) {
	filter, err := uc.buildFilter(query)
	if err != nil {
		return nil, err
	}

	tickets, total, err := uc.ticketRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list tickets", "error", err)
		return nil, apperrors.NewInternalError("failed to list tickets")
	}

	return &ListTicketsResult{
		Tickets:  dto.FromTickets(tickets),
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}, nil
}

func (uc *ListTicketsUseCase) buildFilter(query ListTicketsQuery) (ticket.Filter, error) {
	filter := ticket.Filter{
		TenantID:    query.TenantID,
		RequesterID: query.RequesterID,
		AssigneeID:  query.AssigneeID,
		Page:        query.Page,
		PageSize:    query.PageSize,
		SortBy:      query.SortBy,
		SortOrder:   query.SortOrder,
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 || filter.PageSize > 100 {
		filter.PageSize = 20
	}

	if len(query.Status) > 0 {
		status, err := vo.NewTicketStatus(query.Status)
		if err != nil {
			return ticket.Filter{}, apperrors.NewValidationError(err.Error())
		}
		filter.Status = &status
	}
	if len(query.Priority) > 0 {
		priority, err := vo.NewPriority(query.Priority)
		if err != nil {
			return ticket.Filter{}, apperrors.NewValidationError(err.Error())
		}
		filter.Priority = &priority
	}
	if len(query.Category) > 0 {
		category, err := vo.NewCategory(query.Category)
		if err != nil {
			return ticket.Filter{}, apperrors.NewValidationError(err.Error())
		}
		filter.Category = &category
	}

	return filter, nil
}
