package usecases

import (
	"context"
	"time"

	"github.com/fieldserv-inc/fieldserv/internal/domain/ticket"
	apperrors "github.com/fieldserv-inc/fieldserv/internal/shared/errors"
	"github.com/fieldserv-inc/fieldserv/internal/shared/logger"
)

type RequestWorkDescriptionCommand struct {
	TicketID uint
	ActorID  uint
}

type RequestWorkDescriptionResult struct {
	TicketID  uint   `json:"ticket_id"`
	Status    string `json:"status"`
	UpdatedAt string `json:"updated_at"`
}

type RequestWorkDescriptionUseCase struct {
	ticketRepo ticket.Repository
	logger     logger.Interface
}

func NewRequestWorkDescriptionUseCase(ticketRepo ticket.Repository, logger logger.Interface) *RequestWorkDescriptionUseCase {
	return &RequestWorkDescriptionUseCase{
		ticketRepo: ticketRepo,
		logger:     logger,
	}
}

func (uc *RequestWorkDescriptionUseCase) Execute(ctx context.Context, cmd RequestWorkDescriptionCommand) (*RequestWorkDescriptionResult, error) {
	uc.logger.Infow("executing request work description use case",
		"ticket_id", cmd.TicketID,
		"actor_id", cmd.ActorID)

	if err := uc.validateCommand(cmd); err != nil {
		uc.logger.Errorw("invalid request work description command", "error", err)
		return nil, err
	}

	t, err := uc.ticketRepo.GetByID(ctx, cmd.TicketID)
	if err != nil {
		uc.logger.Errorw("failed to find ticket", "error", err, "ticket_id", cmd.TicketID)
		return nil, apperrors.NewNotFoundError("ticket not found")
	}

	if err := t.RequestWorkDescription(cmd.ActorID); err != nil {
		uc.logger.Errorw("failed to request work description", "error", err)
		return nil, domainError(err)
	}

	if err := uc.ticketRepo.Update(ctx, t); err != nil {
		uc.logger.Errorw("failed to update ticket", "error", err)
		return nil, err
	}

	uc.logger.Infow("work description requested", "ticket_id", t.ID())

	return &RequestWorkDescriptionResult{
		TicketID:  t.ID(),
		Status:    t.Status().String(),
		UpdatedAt: t.UpdatedAt().Format(time.RFC3339),
	}, nil
}

func (uc *RequestWorkDescriptionUseCase) validateCommand(cmd RequestWorkDescriptionCommand) error {
	if cmd.TicketID == 0 {
		return apperrors.NewValidationError("ticket ID is required")
	}
	if cmd.ActorID == 0 {
		return apperrors.NewValidationError("actor ID is required")
	}
	return nil
}
