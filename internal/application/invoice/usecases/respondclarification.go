package usecases

import (
	"context"
	"time"

	"github.com/fieldserv-inc/fieldserv/internal/domain/invoice"
	apperrors "github.com/fieldserv-inc/fieldserv/internal/shared/errors"
	"github.com/fieldserv-inc/fieldserv/internal/shared/logger"
	"github.com/fieldserv-inc/fieldserv/internal/shared/services/markdown"
)

type RespondClarificationCommand struct {
	InvoiceID    uint
	ContractorID uint
	Response     string
}

type RespondClarificationResult struct {
	InvoiceID uint   `json:"invoice_id"`
	Status    string `json:"status"`
	UpdatedAt string `json:"updated_at"`
}

type RespondClarificationUseCase struct {
	invoiceRepo invoice.Repository
	md          markdown.Service
	logger      logger.Interface
}

func NewRespondClarificationUseCase(invoiceRepo invoice.Repository, md markdown.Service, logger logger.Interface) *RespondClarificationUseCase {
	return &RespondClarificationUseCase{
		invoiceRepo: invoiceRepo,
		md:          md,
		logger:      logger,
	}
}

func (uc *RespondClarificationUseCase) Execute(ctx context.Context, cmd RespondClarificationCommand) (*RespondClarificationResult, error) {
	uc.logger.Infow("executing respond clarification use case",
		"invoice_id", cmd.InvoiceID,
		"contractor_id", cmd.ContractorID)

	if err := uc.validateCommand(cmd); err != nil {
		uc.logger.Errorw("invalid respond clarification command", "error", err)
		return nil, err
	}

	inv, err := uc.invoiceRepo.GetByID(ctx, cmd.InvoiceID)
	if err != nil {
		uc.logger.Errorw("failed to find invoice", "error", err, "invoice_id", cmd.InvoiceID)
		return nil, apperrors.NewNotFoundError("invoice not found")
	}

	response := uc.md.StripToText(cmd.Response)
	if err := inv.RespondToClarification(cmd.ContractorID, response); err != nil {
		uc.logger.Errorw("failed to respond to clarification", "error", err)
		return nil, domainError(err)
	}

	if err := uc.invoiceRepo.Update(ctx, inv); err != nil {
		uc.logger.Errorw("failed to update invoice", "error", err)
		return nil, err
	}

	uc.logger.Infow("clarification response recorded", "invoice_id", inv.ID())

	return &RespondClarificationResult{
		InvoiceID: inv.ID(),
		Status:    inv.Status().String(),
		UpdatedAt: inv.UpdatedAt().Format(time.RFC3339),
	}, nil
}

func (uc *RespondClarificationUseCase) validateCommand(cmd RespondClarificationCommand) error {
	if cmd.InvoiceID == 0 {
		return apperrors.NewValidationError("invoice ID is required")
	}
	if cmd.ContractorID == 0 {
		return apperrors.NewValidationError("contractor ID is required")
	}
	if len(cmd.Response) == 0 {
		return apperrors.NewValidationError("clarification response is required")
	}
	return nil
}
