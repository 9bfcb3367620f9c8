package usecases

import (
	"context"
	"time"

	"github.com/fieldserv-inc/fieldserv/internal/domain/shared/events"
	"github.com/fieldserv-inc/fieldserv/internal/domain/ticket"
	apperrors "github.com/fieldserv-inc/fieldserv/internal/shared/errors"
	"github.com/fieldserv-inc/fieldserv/internal/shared/logger"
	"github.com/fieldserv-inc/fieldserv/internal/shared/services/markdown"
)

type CancelTicketCommand struct {
	TicketID uint
	ActorID  uint
	Reason   string
}

type CancelTicketResult struct {
	TicketID  uint   `json:"ticket_id"`
	Status    string `json:"status"`
	Reason    string `json:"reason"`
	UpdatedAt string `json:"updated_at"`
}

type CancelTicketUseCase struct {
	ticketRepo      ticket.Repository
	md              markdown.Service
	eventDispatcher events.EventDispatcher
	logger          logger.Interface
}

func NewCancelTicketUseCase(
	ticketRepo ticket.Repository,
	md markdown.Service,
	eventDispatcher events.EventDispatcher,
	logger logger.Interface,
) *CancelTicketUseCase {
	return &CancelTicketUseCase{
		ticketRepo:      ticketRepo,
		md:              md,
		eventDispatcher: eventDispatcher,
		logger:          logger,
	}
}

func (uc *CancelTicketUseCase) Execute(ctx context.Context, cmd CancelTicketCommand) (*CancelTicketResult, error) {
	uc.logger.Infow("executing cancel ticket use case",
		"ticket_id", cmd.TicketID,
		"actor_id", cmd.ActorID)

	if err := uc.validateCommand(cmd); err != nil {
		uc.logger.Errorw("invalid cancel ticket command", "error", err)
		return nil, err
	}

	t, err := uc.ticketRepo.GetByID(ctx, cmd.TicketID)
	if err != nil {
		uc.logger.Errorw("failed to find ticket", "error", err, "ticket_id", cmd.TicketID)
		return nil, apperrors.NewNotFoundError("ticket not found")
	}

	reason := uc.md.StripToText(cmd.Reason)
	if err := t.Cancel(cmd.ActorID, reason); err != nil {
		uc.logger.Errorw("failed to cancel ticket", "error", err)
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

	uc.logger.Infow("ticket cancelled", "ticket_id", t.ID())

	return &CancelTicketResult{
		TicketID:  t.ID(),
		Status:    t.Status().String(),
		Reason:    t.CancelReason(),
		UpdatedAt: t.UpdatedAt().Format(time.RFC3339),
	}, nil
}

func (uc *CancelTicketUseCase) validateCommand(cmd CancelTicketCommand) error {
	if cmd.TicketID == 0 {
		return apperrors.NewValidationError("ticket ID is required")
	}
	if cmd.ActorID == 0 {
		return apperrors.NewValidationError("actor ID is required")
	}
	if len(cmd.Reason) == 0 {
		return apperrors.NewValidationError("cancellation reason is required")
	}
	return nil
}
