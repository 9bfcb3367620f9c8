package usecases

import (
	"context"
	"time"

	"github.com/fieldserv-inc/fieldserv/internal/domain/shared/events"
	"github.com/fieldserv-inc/fieldserv/internal/domain/ticket"
	apperrors "github.com/fieldserv-inc/fieldserv/internal/shared/errors"
	"github.com/fieldserv-inc/fieldserv/internal/shared/logger"
)

type AssignTicketCommand struct {
	TicketID   uint
	AssigneeID uint
	AssignedBy uint
}

type AssignTicketResult struct {
	TicketID    uint    `json:"ticket_id"`
	AssigneeID  uint    `json:"assignee_id"`
	Status      string  `json:"status"`
	ResponseDue *string `json:"response_due,omitempty"`
	UpdatedAt   string  `json:"updated_at"`
}

type AssignTicketUseCase struct {
	ticketRepo      ticket.Repository
	slaPolicy       ticket.SLAPolicy
	eventDispatcher events.EventDispatcher
	logger          logger.Interface
}

func NewAssignTicketUseCase(
	ticketRepo ticket.Repository,
	slaPolicy ticket.SLAPolicy,
	eventDispatcher events.EventDispatcher,
	logger logger.Interface,
) *AssignTicketUseCase {
	return &AssignTicketUseCase{
		ticketRepo:      ticketRepo,
		slaPolicy:       slaPolicy,
		eventDispatcher: eventDispatcher,
		logger:          logger,
	}
}

func (uc *AssignTicketUseCase) Execute(ctx context.Context, cmd AssignTicketCommand) (*AssignTicketResult, error) {
	uc.logger.Infow("executing assign ticket use case",
		"ticket_id", cmd.TicketID,
		"assignee_id", cmd.AssigneeID,
		"assigned_by", cmd.AssignedBy)

	if err := uc.validateCommand(cmd); err != nil {
		uc.logger.Errorw("invalid assign ticket command", "error", err)
		return nil, err
	}

	t, err := uc.ticketRepo.GetByID(ctx, cmd.TicketID)
	if err != nil {
		uc.logger.Errorw("failed to find ticket", "error", err, "ticket_id", cmd.TicketID)
		return nil, apperrors.NewNotFoundError("ticket not found")
	}

	if err := t.Assign(cmd.AssigneeID, cmd.AssignedBy); err != nil {
		uc.logger.Errorw("failed to assign ticket", "error", err)
		return nil, domainError(err)
	}

	t.ScheduleResponseDeadline(uc.slaPolicy.ResponseDue(t.Priority(), time.Now().UTC()))

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

	uc.logger.Infow("ticket assigned",
		"ticket_id", t.ID(),
		"assignee_id", cmd.AssigneeID)

	var responseDue *string
	if due := t.ResponseDue(); due != nil {
		s := due.Format(time.RFC3339)
		responseDue = &s
	}

	return &AssignTicketResult{
		TicketID:    t.ID(),
		AssigneeID:  cmd.AssigneeID,
		Status:      t.Status().String(),
		ResponseDue: responseDue,
		UpdatedAt:   t.UpdatedAt().Format(time.RFC3339),
	}, nil
}

func (uc *AssignTicketUseCase) validateCommand(cmd AssignTicketCommand) error {
	if cmd.TicketID == 0 {
		return apperrors.NewValidationError("ticket ID is required")
	}
	if cmd.AssigneeID == 0 {
		return apperrors.NewValidationError("assignee ID is required")
	}
	if cmd.AssignedBy == 0 {
		return apperrors.NewValidationError("assigning user ID is required")
	}
	return nil
}
