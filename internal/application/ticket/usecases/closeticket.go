package usecases

import (
	"context"
	"time"

	"github.com/fieldserv-inc/fieldserv/internal/domain/shared/events"
	"github.com/fieldserv-inc/fieldserv/internal/domain/ticket"
	apperrors "github.com/fieldserv-inc/fieldserv/internal/shared/errors"
	"github.com/fieldserv-inc/fieldserv/internal/shared/logger"
)

type CloseTicketCommand struct {
	TicketID uint
	ActorID  uint
}

type CloseTicketResult struct {
	TicketID  uint   `json:"ticket_id"`
	Status    string `json:"status"`
	ClosedAt  string `json:"closed_at"`
	UpdatedAt string `json:"updated_at"`
}

type CloseTicketUseCase struct {
	ticketRepo      ticket.Repository
	ratings         RatingFinder
	eventDispatcher events.EventDispatcher
	logger          logger.Interface
}

func NewCloseTicketUseCase(
	ticketRepo ticket.Repository,
	ratings RatingFinder,
	eventDispatcher events.EventDispatcher,
	logger logger.Interface,
) *CloseTicketUseCase {
	return &CloseTicketUseCase{
		ticketRepo:      ticketRepo,
		ratings:         ratings,
		eventDispatcher: eventDispatcher,
		logger:          logger,
	}
}

func (uc *CloseTicketUseCase) Execute(ctx context.Context, cmd CloseTicketCommand) (*CloseTicketResult, error) {
	uc.logger.Infow("executing close ticket use case",
		"ticket_id", cmd.TicketID,
		"actor_id", cmd.ActorID)

	if err := uc.validateCommand(cmd); err != nil {
		uc.logger.Errorw("invalid close ticket command", "error", err)
		return nil, err
	}

	t, err := uc.ticketRepo.GetByID(ctx, cmd.TicketID)
	if err != nil {
		uc.logger.Errorw("failed to find ticket", "error", err, "ticket_id", cmd.TicketID)
		return nil, apperrors.NewNotFoundError("ticket not found")
	}

	rated, err := uc.ratings.ExistsByTicketID(ctx, cmd.TicketID)
	if err != nil {
		uc.logger.Errorw("failed to check for rating", "error", err, "ticket_id", cmd.TicketID)
		return nil, apperrors.NewInternalError("failed to check for rating")
	}
	if !rated {
		return nil, apperrors.NewInvalidTransitionError("a rating must be submitted before the ticket can be closed")
	}

	if err := t.Close(cmd.ActorID); err != nil {
		uc.logger.Errorw("failed to close ticket", "error", err)
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

	uc.logger.Infow("ticket closed", "ticket_id", t.ID())

	return &CloseTicketResult{
		TicketID:  t.ID(),
		Status:    t.Status().String(),
		ClosedAt:  t.ClosedAt().Format(time.RFC3339),
		UpdatedAt: t.UpdatedAt().Format(time.RFC3339),
	}, nil
}

func (uc *CloseTicketUseCase) validateCommand(cmd CloseTicketCommand) error {
	if cmd.TicketID == 0 {
		return apperrors.NewValidationError("ticket ID is required")
	}
	if cmd.ActorID == 0 {
		return apperrors.NewValidationError("actor ID is required")
	}
	return nil
}
