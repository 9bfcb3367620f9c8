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

type RejectAssignmentCommand struct {
	TicketID     uint
	ContractorID uint
	Reason       string
}

type RejectAssignmentResult struct {
	TicketID  uint   `json:"ticket_id"`
	Status    string `json:"status"`
	UpdatedAt string `json:"updated_at"`
}

type RejectAssignmentUseCase struct {
	ticketRepo      ticket.Repository
	md              markdown.Service
	eventDispatcher events.EventDispatcher
	logger          logger.Interface
}

func NewRejectAssignmentUseCase(
	ticketRepo ticket.Repository,
	md markdown.Service,
	eventDispatcher events.EventDispatcher,
	logger logger.Interface,
) *RejectAssignmentUseCase {
	return &RejectAssignmentUseCase{
		ticketRepo:      ticketRepo,
		md:              md,
		eventDispatcher: eventDispatcher,
		logger:          logger,
	}
}

func (uc *RejectAssignmentUseCase) Execute(ctx context.Context, cmd RejectAssignmentCommand) (*RejectAssignmentResult, error) {
	uc.logger.Infow("executing reject assignment use case",
		"ticket_id", cmd.TicketID,
		"contractor_id", cmd.ContractorID)

	if err := uc.validateCommand(cmd); err != nil {
		uc.logger.Errorw("invalid reject assignment command", "error", err)
		return nil, err
	}

	t, err := uc.ticketRepo.GetByID(ctx, cmd.TicketID)
	if err != nil {
		uc.logger.Errorw("failed to find ticket", "error", err, "ticket_id", cmd.TicketID)
		return nil, apperrors.NewNotFoundError("ticket not found")
	}

	reason := uc.md.StripToText(cmd.Reason)
	if err := t.RejectAssignment(cmd.ContractorID, reason); err != nil {
		uc.logger.Errorw("failed to reject assignment", "error", err)
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

	uc.logger.Infow("assignment rejected", "ticket_id", t.ID(), "contractor_id", cmd.ContractorID)

	return &RejectAssignmentResult{
		TicketID:  t.ID(),
		Status:    t.Status().String(),
		UpdatedAt: t.UpdatedAt().Format(time.RFC3339),
	}, nil
}

func (uc *RejectAssignmentUseCase) validateCommand(cmd RejectAssignmentCommand) error {
	if cmd.TicketID == 0 {
		return apperrors.NewValidationError("ticket ID is required")
	}
	if cmd.ContractorID == 0 {
		return apperrors.NewValidationError("contractor ID is required")
	}
	if len(cmd.Reason) == 0 {
		return apperrors.NewValidationError("rejection reason is required")
	}
	return nil
}
