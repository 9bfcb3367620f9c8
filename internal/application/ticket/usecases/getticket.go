package usecases

import (
	"context"

	"github.com/fieldserv-inc/fieldserv/internal/application/ticket/dto"
	"github.com/fieldserv-inc/fieldserv/internal/domain/ticket"
	apperrors "github.com/fieldserv-inc/fieldserv/internal/shared/errors"
	"github.com/fieldserv-inc/fieldserv/internal/shared/logger"
)

type GetTicketQuery struct {
	TicketID uint
	Number   string
}

type GetTicketUseCase struct {
	ticketRepo ticket.Repository
	logger     logger.Interface
}

func NewGetTicketUseCase(ticketRepo ticket.Repository, logger logger.Interface) *GetTicketUseCase {
	return &GetTicketUseCase{
		ticketRepo: ticketRepo,
		logger:     logger,
	}
}

func (uc *GetTicketUseCase) Execute(ctx context.Context, query GetTicketQuery) (*dto.TicketDTO, error) {
	if query.TicketID == 0 && len(query.Number) == 0 {
		return nil, apperrors.NewValidationError("ticket ID or number is required")
	}

	var (
		t   *ticket.Ticket
		err error
	)
	if query.TicketID != 0 {
		t, err = uc.ticketRepo.GetByID(ctx, query.TicketID)
	} else {
		t, err = uc.ticketRepo.GetByNumber(ctx, query.Number)
	}
	if err != nil {
		uc.logger.Errorw("failed to find ticket", "error", err, "ticket_id", query.TicketID, "number", query.Number)
		return nil, apperrors.NewNotFoundError("ticket not found")
	}

	return dto.FromTicket(t), nil
}
