package usecases

import (
	"context"
	"time"

	"github.com/fieldserv-inc/fieldserv/internal/domain/shared/events"
	"github.com/fieldserv-inc/fieldserv/internal/domain/ticket"
	vo "github.com/fieldserv-inc/fieldserv/internal/domain/ticket/valueobjects"
	apperrors "github.com/fieldserv-inc/fieldserv/internal/shared/errors"
	"github.com/fieldserv-inc/fieldserv/internal/shared/logger"
	"github.com/fieldserv-inc/fieldserv/internal/shared/services/markdown"
)

type CreateTicketCommand struct {
	TenantID    uint
	Title       string
	Description string
	Category    string
	Priority    string
	RequesterID uint
	Location    string
	AssetRef    *string
}

type CreateTicketResult struct {
	TicketID      uint    `json:"ticket_id"`
	Number        string  `json:"number"`
	Status        string  `json:"status"`
	ResolutionDue *string `json:"resolution_due,omitempty"`
	CreatedAt     string  `json:"created_at"`
}

type CreateTicketUseCase struct {
	ticketRepo      ticket.Repository
	numberGen       ticket.NumberGenerator
	slaPolicy       ticket.SLAPolicy
	md              markdown.Service
	eventDispatcher events.EventDispatcher
	logger          logger.Interface
}

func NewCreateTicketUseCase(
	ticketRepo ticket.Repository,
	numberGen ticket.NumberGenerator,
	slaPolicy ticket.SLAPolicy,
	md markdown.Service,
	eventDispatcher events.EventDispatcher,
	logger logger.Interface,
) *CreateTicketUseCase {
	return &CreateTicketUseCase{
		ticketRepo:      ticketRepo,
		numberGen:       numberGen,
		slaPolicy:       slaPolicy,
		md:              md,
		eventDispatcher: eventDispatcher,
		logger:          logger,
	}
}

func (uc *CreateTicketUseCase) Execute(ctx context.Context, cmd CreateTicketCommand) (*CreateTicketResult, error) {
	uc.logger.Infow("executing create ticket use case",
		"tenant_id", cmd.TenantID,
		"requester_id", cmd.RequesterID,
		"category", cmd.Category)

	if err := uc.validateCommand(cmd); err != nil {
		uc.logger.Errorw("invalid create ticket command", "error", err)
		return nil, err
	}

	category, err := vo.NewCategory(cmd.Category)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}
	priority, err := vo.NewPriority(cmd.Priority)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	title := uc.md.StripToText(cmd.Title)
	description := uc.md.Sanitize(cmd.Description)

	t, err := ticket.NewTicket(cmd.TenantID, title, description, category, priority, cmd.RequesterID, cmd.Location, cmd.AssetRef)
	if err != nil {
		uc.logger.Errorw("failed to create ticket", "error", err)
		return nil, apperrors.NewValidationError(err.Error())
	}

	number, err := uc.numberGen.Generate(ctx)
	if err != nil {
		uc.logger.Errorw("failed to generate ticket number", "error", err)
		return nil, apperrors.NewInternalError("failed to generate ticket number")
	}
	if err := t.SetNumber(number); err != nil {
		return nil, apperrors.NewInternalError(err.Error())
	}

	t.ScheduleResolutionDeadline(uc.slaPolicy.ResolutionDue(priority, t.CreatedAt()))

	if err := uc.ticketRepo.Save(ctx, t); err != nil {
		uc.logger.Errorw("failed to save ticket", "error", err)
		if apperrors.IsAppError(err) {
			return nil, err
		}
		return nil, apperrors.NewInternalError("failed to save ticket")
	}

	uc.logger.Infow("ticket created",
		"ticket_id", t.ID(),
		"number", t.Number(),
		"priority", priority.String())

	var resolutionDue *string
	if due := t.ResolutionDue(); due != nil {
		s := due.Format(time.RFC3339)
		resolutionDue = &s
	}

	return &CreateTicketResult{
		TicketID:      t.ID(),
		Number:        t.Number(),
		Status:        t.Status().String(),
		ResolutionDue: resolutionDue,
		CreatedAt:     t.CreatedAt().Format(time.RFC3339),
	}, nil
}

func (uc *CreateTicketUseCase) validateCommand(cmd CreateTicketCommand) error {
	if cmd.TenantID == 0 {
		return apperrors.NewValidationError("tenant ID is required")
	}
	if cmd.RequesterID == 0 {
		return apperrors.NewValidationError("requester ID is required")
	}
	if len(cmd.Title) == 0 {
		return apperrors.NewValidationError("title is required")
	}
	if len(cmd.Description) == 0 {
		return apperrors.NewValidationError("description is required")
	}
	return nil
}
