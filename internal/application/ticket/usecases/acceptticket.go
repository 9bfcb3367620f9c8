package usecases

import (
	"context"
	"time"

	"github.com/fieldserv-inc/fieldserv/internal/domain/shared/events"
	"github.com/fieldserv-inc/fieldserv/internal/domain/ticket"
	apperrors "github.com/fieldserv-inc/fieldserv/internal/shared/errors"
	"github.com/fieldserv-inc/fieldserv/internal/shared/logger"
)

type AcceptTicketCommand struct {
	TicketID         uint
	ContractorID     uint
	TechnicianName   string
	TechnicianPhone  string
	ScheduledArrival time.Time
	EstimatedHours   float64
	Notes            string
}

type AcceptTicketResult struct {
	TicketID  uint   `json:"ticket_id"`
	Status    string `json:"status"`
	UpdatedAt string `json:"updated_at"`
}

type AcceptTicketUseCase struct {
	ticketRepo      ticket.Repository
	eventDispatcher events.EventDispatcher
	logger          logger.Interface
}

func NewAcceptTicketUseCase(
	ticketRepo ticket.Repository,
	eventDispatcher events.EventDispatcher,
	logger logger.Interface,
) *AcceptTicketUseCase {
	return &AcceptTicketUseCase{
		ticketRepo:      ticketRepo,
		eventDispatcher: eventDispatcher,
		logger:          logger,
	}
}

func (uc *AcceptTicketUseCase) Execute(ctx context.Context, cmd AcceptTicketCommand) (*AcceptTicketResult, error) {
	uc.logger.Infow("executing accept ticket use case",
		"ticket_id", cmd.TicketID,
		"contractor_id", cmd.ContractorID)

	if err := uc.validateCommand(cmd); err != nil {
		uc.logger.Errorw("invalid accept ticket command", "error", err)
		return nil, err
	}

	t, err := uc.ticketRepo.GetByID(ctx, cmd.TicketID)
	if err != nil {
		uc.logger.Errorw("failed to find ticket", "error", err, "ticket_id", cmd.TicketID)
		return nil, apperrors.NewNotFoundError("ticket not found")
	}

	plan := ticket.JobPlan{
		TechnicianName:   cmd.TechnicianName,
		TechnicianPhone:  cmd.TechnicianPhone,
		ScheduledArrival: cmd.ScheduledArrival,
		EstimatedHours:   cmd.EstimatedHours,
		Notes:            cmd.Notes,
	}

	if err := t.Accept(cmd.ContractorID, plan); err != nil {
		uc.logger.Errorw("failed to accept ticket", "error", err)
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

	uc.logger.Infow("ticket accepted", "ticket_id", t.ID(), "contractor_id", cmd.ContractorID)

	return &AcceptTicketResult{
		TicketID:  t.ID(),
		Status:    t.Status().String(),
		UpdatedAt: t.UpdatedAt().Format(time.RFC3339),
	}, nil
}

func (uc *AcceptTicketUseCase) validateCommand(cmd AcceptTicketCommand) error {
	if cmd.TicketID == 0 {
		return apperrors.NewValidationError("ticket ID is required")
	}
	if cmd.ContractorID == 0 {
		return apperrors.NewValidationError("contractor ID is required")
	}
	return nil
}
