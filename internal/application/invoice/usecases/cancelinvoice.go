package usecases

import (
	"context"
	"time"

	"github.com/fieldserv-inc/fieldserv/internal/domain/invoice"
	apperrors "github.com/fieldserv-inc/fieldserv/internal/shared/errors"
	"github.com/fieldserv-inc/fieldserv/internal/shared/logger"
	"github.com/fieldserv-inc/fieldserv/internal/shared/services/markdown"
)

type CancelInvoiceCommand struct {
	InvoiceID uint
	ActorID   uint
	Reason    string
}

type CancelInvoiceResult struct {
	InvoiceID uint   `json:"invoice_id"`
	Status    string `json:"status"`
	UpdatedAt string `json:"updated_at"`
}

type CancelInvoiceUseCase struct {
	invoiceRepo invoice.Repository
	md          markdown.Service
	logger      logger.Interface
}

func NewCancelInvoiceUseCase(invoiceRepo invoice.Repository, md markdown.Service, logger logger.Interface) *CancelInvoiceUseCase {
	return &CancelInvoiceUseCase{
		invoiceRepo: invoiceRepo,
		md:          md,
		logger:      logger,
	}
}

func (uc *CancelInvoiceUseCase) Execute(ctx context.Context, cmd CancelInvoiceCommand) (*CancelInvoiceResult, error) {
	uc.logger.Infow("executing cancel invoice use case",
		"invoice_id", cmd.InvoiceID,
		"actor_id", cmd.ActorID)

	if err := uc.validateCommand(cmd); err != nil {
		uc.logger.Errorw("invalid cancel invoice command", "error", err)
		return nil, err
	}

	inv, err := uc.invoiceRepo.GetByID(ctx, cmd.InvoiceID)
	if err != nil {
		uc.logger.Errorw("failed to find invoice", "error", err, "invoice_id", cmd.InvoiceID)
		return nil, apperrors.NewNotFoundError("invoice not found")
	}

	reason := uc.md.StripToText(cmd.Reason)
	if err := inv.Cancel(reason); err != nil {
		uc.logger.Errorw("failed to cancel invoice", "error", err)
		return nil, domainError(err)
	}

	if err := uc.invoiceRepo.Update(ctx, inv); err != nil {
		uc.logger.Errorw("failed to update invoice", "error", err)
		return nil, err
	}

	uc.logger.Infow("invoice cancelled", "invoice_id", inv.ID(), "reason", reason)

	return &CancelInvoiceResult{
		InvoiceID: inv.ID(),
		Status:    inv.Status().String(),
		UpdatedAt: inv.UpdatedAt().Format(time.RFC3339),
	}, nil
}

func (uc *CancelInvoiceUseCase) validateCommand(cmd CancelInvoiceCommand) error {
	if cmd.InvoiceID == 0 {
		return apperrors.NewValidationError("invoice ID is required")
	}
	if cmd.ActorID == 0 {
		return apperrors.NewValidationError("actor ID is required")
	}
	if len(cmd.Reason) == 0 {
		return apperrors.NewValidationError("cancellation reason is required")
	}
	return nil
}
