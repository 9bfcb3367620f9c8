package usecases

import (
	"context"
	"time"

	"github.com/fieldserv-inc/fieldserv/internal/domain/shared/events"
	"github.com/fieldserv-inc/fieldserv/internal/domain/ticket"
	apperrors "github.com/fieldserv-inc/fieldserv/internal/shared/errors"
	"github.com/fieldserv-inc/fieldserv/internal/shared/logger"
)

type ApproveWorkCommand struct {
	TicketID uint
	ActorID  uint
}

type ApproveWorkResult struct {
	TicketID    uint   `json:"ticket_id"`
	Status      string `json:"status"`
	CompletedAt string `json:"completed_at"`
	UpdatedAt   string `json:"updated_at"`
}

type ApproveWorkUseCase struct {
	ticketRepo      ticket.Repository
	eventDispatcher events.EventDispatcher
	logger          logger.Interface
}

func NewApproveWorkUseCase(
	ticketRepo ticket.Repository,
	eventDispatcher events.EventDispatcher,
	logger logger.Interface,
) *ApproveWorkUseCase {
	return &ApproveWorkUseCase{
		ticketRepo:      ticketRepo,
		eventDispatcher: eventDispatcher,
		logger:          logger,
	}
}

func (uc *ApproveWorkUseCase) Execute(ctx context.Context, cmd ApproveWorkCommand) (*ApproveWorkResult, error) {
	uc.logger.Infow("executing approve work use case",
		"ticket_id", cmd.TicketID,
		"actor_id", cmd.ActorID)

	if err := uc.validateCommand(cmd); err != nil {
		uc.logger.Errorw("invalid approve work command", "error", err)
		return nil, err
	}

	t, err := uc.ticketRepo.GetByID(ctx, cmd.TicketID)
	if err != nil {
		uc.logger.Errorw("failed to find ticket", "error", err, "ticket_id", cmd.TicketID)
		return nil, apperrors.NewNotFoundError("ticket not found")
	}

	if err := t.ApproveWork(cmd.ActorID); err != nil {
		uc.logger.Errorw("failed to approve work", "error", err)
		return nil, domainError(err)
	}

	if err := uc.ticketRepo.Update(ctx, t); err != nil {
		uc.logger.Errorw("failed to update ticket", "error", err)
		return nil, err
	}

	for _, event := range t.PendingEvents() {
		if err := uc.eventDispatcher.Publish(event); err != nil {
			uc.logger.Warnw("failed to dispatch event", "error", err, "event_type", event.GetEventType())
		}
	}
	t.ClearEvents()

	uc.logger.Infow("work approved", "ticket_id", t.ID())

	return &ApproveWorkResult{
		TicketID:    t.ID(),
		Status:      t.Status().String(),
		CompletedAt: t.CompletedAt().Format(time.RFC3339),
		UpdatedAt:   t.UpdatedAt().Format(time.RFC3339),
	}, nil
}

func (uc *ApproveWorkUseCase) validateCommand(cmd ApproveWorkCommand) error {
	if cmd.TicketID == 0 {
		return apperrors.NewValidationError("ticket ID is required")
	}
	if cmd.ActorID == 0 {
		return apperrors.NewValidationError("actor ID is required")
	}
	return nil
}
