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

type SubmitWorkDescriptionCommand struct {
	TicketID     uint
	ContractorID uint
	Description  string
}

type SubmitWorkDescriptionResult struct {
	TicketID  uint   `json:"ticket_id"`
	Status    string `json:"status"`
	UpdatedAt string `json:"updated_at"`
}

type SubmitWorkDescriptionUseCase struct {
	ticketRepo      ticket.Repository
	md              markdown.Service
	eventDispatcher events.EventDispatcher
	logger          logger.Interface
}

func NewSubmitWorkDescriptionUseCase(
	ticketRepo ticket.Repository,
	md markdown.Service,
	eventDispatcher events.EventDispatcher,
	logger logger.Interface,
) *SubmitWorkDescriptionUseCase {
	return &SubmitWorkDescriptionUseCase{
		ticketRepo:      ticketRepo,
		md:              md,
		eventDispatcher: eventDispatcher,
		logger:          logger,
	}
}

func (uc *SubmitWorkDescriptionUseCase) Execute(ctx context.Context, cmd SubmitWorkDescriptionCommand) (*SubmitWorkDescriptionResult, error) {
	uc.logger.Infow("executing submit work description use case",
		"ticket_id", cmd.TicketID,
		"contractor_id", cmd.ContractorID)

	if err := uc.validateCommand(cmd); err != nil {
		uc.logger.Errorw("invalid submit work description command", "error", err)
		return nil, err
	}

	t, err := uc.ticketRepo.GetByID(ctx, cmd.TicketID)
	if err != nil {
		uc.logger.Errorw("failed to find ticket", "error", err, "ticket_id", cmd.TicketID)
		return nil, apperrors.NewNotFoundError("ticket not found")
	}

	description := uc.md.Sanitize(cmd.Description)
	if err := t.SubmitWorkDescription(cmd.ContractorID, description); err != nil {
		uc.logger.Errorw("failed to submit work description", "error", err)
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

	uc.logger.Infow("work description submitted", "ticket_id", t.ID())

	return &SubmitWorkDescriptionResult{
		TicketID:  t.ID(),
		Status:    t.Status().String(),
		UpdatedAt: t.UpdatedAt().Format(time.RFC3339),
	}, nil
}

func (uc *SubmitWorkDescriptionUseCase) validateCommand(cmd SubmitWorkDescriptionCommand) error {
	if cmd.TicketID == 0 {
		return apperrors.NewValidationError("ticket ID is required")
	}
	if cmd.ContractorID == 0 {
		return apperrors.NewValidationError("contractor ID is required")
	}
	if len(cmd.Description) == 0 {
		return apperrors.NewValidationError("work description is required")
	}
	return nil
}
