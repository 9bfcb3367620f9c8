package usecases

import (
	"context"
	"time"

	"github.com/fieldserv-inc/fieldserv/internal/domain/ticket"
	apperrors "github.com/fieldserv-inc/fieldserv/internal/shared/errors"
	"github.com/fieldserv-inc/fieldserv/internal/shared/logger"
)

type StartWorkCommand struct {
	TicketID     uint
	ContractorID uint
}

type StartWorkResult struct {
	TicketID      uint   `json:"ticket_id"`
	Status        string `json:"status"`
	WorkStartedAt string `json:"work_started_at"`
	UpdatedAt     string `json:"updated_at"`
}

type StartWorkUseCase struct {
	ticketRepo ticket.Repository
	logger     logger.Interface
}

func NewStartWorkUseCase(ticketRepo ticket.Repository, logger logger.Interface) *StartWorkUseCase {
	return &StartWorkUseCase{
		ticketRepo: ticketRepo,
		logger:     logger,
	}
}

func (uc *StartWorkUseCase) Execute(ctx context.Context, cmd StartWorkCommand) (*StartWorkResult, error) {
	uc.logger.Infow("executing start work use case",
		"ticket_id", cmd.TicketID,
		"contractor_id", cmd.ContractorID)

	if err := uc.validateCommand(cmd); err != nil {
		uc.logger.Errorw("invalid start work command", "error", err)
		return nil, err
	}

	t, err := uc.ticketRepo.GetByID(ctx, cmd.TicketID)
	if err != nil {
		uc.logger.Errorw("failed to find ticket", "error", err, "ticket_id", cmd.TicketID)
		return nil, apperrors.NewNotFoundError("ticket not found")
	}

	if err := t.StartWork(cmd.ContractorID); err != nil {
		uc.logger.Errorw("failed to start work", "error", err)
		return nil, domainError(err)
	}

	if err := uc.ticketRepo.Update(ctx, t); err != nil {
		uc.logger.Errorw("failed to update ticket", "error", err)
		return nil, err
	}

	uc.logger.Infow("work started", "ticket_id", t.ID())

	return &StartWorkResult{
		TicketID:      t.ID(),
		Status:        t.Status().String(),
		WorkStartedAt: t.WorkStartedAt().Format(time.RFC3339),
		UpdatedAt:     t.UpdatedAt().Format(time.RFC3339),
	}, nil
}

func (uc *StartWorkUseCase) validateCommand(cmd StartWorkCommand) error {
	if cmd.TicketID == 0 {
		return apperrors.NewValidationError("ticket ID is required")
	}
	if cmd.ContractorID == 0 {
		return apperrors.NewValidationError("contractor ID is required")
	}
	return nil
}
