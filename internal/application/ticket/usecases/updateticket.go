package usecases

import (
	"context"
	"time"

	"github.com/fieldserv-inc/fieldserv/internal/domain/ticket"
	vo "github.com/fieldserv-inc/fieldserv/internal/domain/ticket/valueobjects"
	apperrors "github.com/fieldserv-inc/fieldserv/internal/shared/errors"
	"github.com/fieldserv-inc/fieldserv/internal/shared/logger"
	"github.com/fieldserv-inc/fieldserv/internal/shared/services/markdown"
)

type UpdateTicketCommand struct {
	TicketID    uint
	ActorID     uint
	Title       string
	Description string
	Priority    string
}

type UpdateTicketResult struct {
	TicketID  uint   `json:"ticket_id"`
	Title     string `json:"title"`
	Priority  string `json:"priority"`
	UpdatedAt string `json:"updated_at"`
}

type UpdateTicketUseCase struct {
	ticketRepo ticket.Repository
	md         markdown.Service
	logger     logger.Interface
}

func NewUpdateTicketUseCase(ticketRepo ticket.Repository, md markdown.Service, logger logger.Interface) *UpdateTicketUseCase {
	return &UpdateTicketUseCase{
		ticketRepo: ticketRepo,
		md:         md,
		logger:     logger,
	}
}

func (uc *UpdateTicketUseCase) Execute(ctx context.Context, cmd UpdateTicketCommand) (*UpdateTicketResult, error) {
	uc.logger.Infow("executing update ticket use case",
		"ticket_id", cmd.TicketID,
		"actor_id", cmd.ActorID)

	if err := uc.validateCommand(cmd); err != nil {
		uc.logger.Errorw("invalid update ticket command", "error", err)
		return nil, err
	}

	priority, err := vo.NewPriority(cmd.Priority)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	t, err := uc.ticketRepo.GetByID(ctx, cmd.TicketID)
	if err != nil {
		uc.logger.Errorw("failed to find ticket", "error", err, "ticket_id", cmd.TicketID)
		return nil, apperrors.NewNotFoundError("ticket not found")
	}

	title := uc.md.StripToText(cmd.Title)
	description := uc.md.Sanitize(cmd.Description)

	if err := t.UpdateDetails(cmd.ActorID, title, description, priority); err != nil {
		uc.logger.Errorw("failed to update ticket details", "error", err)
		return nil, domainError(err)
	}

	if err := uc.ticketRepo.Update(ctx, t); err != nil {
		uc.logger.Errorw("failed to update ticket", "error", err)
		return nil, err
	}

	uc.logger.Infow("ticket updated", "ticket_id", t.ID())

	return &UpdateTicketResult{
		TicketID:  t.ID(),
		Title:     t.Title(),
		Priority:  t.Priority().String(),
		UpdatedAt: t.UpdatedAt().Format(time.RFC3339),
	}, nil
}

func (uc *UpdateTicketUseCase) validateCommand(cmd UpdateTicketCommand) error {
	if cmd.TicketID == 0 {
		return apperrors.NewValidationError("ticket ID is required")
	}
	if cmd.ActorID == 0 {
		return apperrors.NewValidationError("actor ID is required")
	}
	if len(cmd.Title) == 0 {
		return apperrors.NewValidationError("title is required")
	}
	if len(cmd.Description) == 0 {
		return apperrors.NewValidationError("description is required")
	}
	return nil
}
