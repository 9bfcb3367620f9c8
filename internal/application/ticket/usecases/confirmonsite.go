package usecases

import (
	"context"
	"time"

	"github.com/fieldserv-inc/fieldserv/internal/domain/ticket"
	apperrors "github.com/fieldserv-inc/fieldserv/internal/shared/errors"
	"github.com/fieldserv-inc/fieldserv/internal/shared/logger"
)

type ConfirmOnSiteCommand struct {
	TicketID uint
	ActorID  uint
}

type ConfirmOnSiteResult struct {
	TicketID  uint   `json:"ticket_id"`
	Status    string `json:"status"`
	OnSiteAt  string `json:"on_site_at"`
	UpdatedAt string `json:"updated_at"`
}

type ConfirmOnSiteUseCase struct {
	ticketRepo ticket.Repository
	logger     logger.Interface
}

func NewConfirmOnSiteUseCase(ticketRepo ticket.Repository, logger logger.Interface) *ConfirmOnSiteUseCase {
	return &ConfirmOnSiteUseCase{
		ticketRepo: ticketRepo,
		logger:     logger,
	}
}

func (uc *ConfirmOnSiteUseCase) Execute(ctx context.Context, cmd ConfirmOnSiteCommand) (*ConfirmOnSiteResult, error) {
	uc.logger.Infow("executing confirm on-site use case",
		"ticket_id", cmd.TicketID,
		"actor_id", cmd.ActorID)

	if err := uc.validateCommand(cmd); err != nil {
		uc.logger.Errorw("invalid confirm on-site command", "error", err)
		return nil, err
	}

	t, err := uc.ticketRepo.GetByID(ctx, cmd.TicketID)
	if err != nil {
		uc.logger.Errorw("failed to find ticket", "error", err, "ticket_id", cmd.TicketID)
		return nil, apperrors.NewNotFoundError("ticket not found")
	}

	if err := t.ConfirmOnSite(cmd.ActorID); err != nil {
		uc.logger.Errorw("failed to confirm on-site", "error", err)
		return nil, domainError(err)
	}

	if err := uc.ticketRepo.Update(ctx, t); err != nil {
		uc.logger.Errorw("failed to update ticket", "error", err)
		return nil, err
	}

	uc.logger.Infow("on-site confirmed", "ticket_id", t.ID())

	return &ConfirmOnSiteResult{
		TicketID:  t.ID(),
		Status:    t.Status().String(),
		OnSiteAt:  t.OnSiteAt().Format(time.RFC3339),
		UpdatedAt: t.UpdatedAt().Format(time.RFC3339),
	}, nil
}

func (uc *ConfirmOnSiteUseCase) validateCommand(cmd ConfirmOnSiteCommand) error {
	if cmd.TicketID == 0 {
		return apperrors.NewValidationError("ticket ID is required")
	}
	if cmd.ActorID == 0 {
		return apperrors.NewValidationError("actor ID is required")
	}
	return nil
}
