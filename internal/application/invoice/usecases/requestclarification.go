package usecases

import (
	"context"
	"time"

	"github.com/fieldserv-inc/fieldserv/internal/domain/invoice"
	apperrors "github.com/fieldserv-inc/fieldserv/internal/shared/errors"
	"github.com/fieldserv-inc/fieldserv/internal/shared/logger"
	"github.com/fieldserv-inc/fieldserv/internal/shared/services/markdown"
)

type RequestClarificationCommand struct {
	InvoiceID uint
	AdminID   uint
	Request   string
}

type RequestClarificationResult struct {
	InvoiceID uint   `json:"invoice_id"`
	Status    string `json:"status"`
	UpdatedAt string `json:"updated_at"`
}

type RequestClarificationUseCase struct {
	invoiceRepo invoice.Repository
	md          markdown.Service
	logger      logger.Interface
}

func NewRequestClarificationUseCase(invoiceRepo invoice.Repository, md markdown.Service, logger logger.Interface) *RequestClarificationUseCase {
	return &RequestClarificationUseCase{
		invoiceRepo: invoiceRepo,
		md:          md,
		logger:      logger,
	}
}

func (uc *RequestClarificationUseCase) Execute(ctx context.Context, cmd RequestClarificationCommand) (*RequestClarificationResult, error) {
	uc.logger.Infow("executing request clarification use case",
		"invoice_id", cmd.InvoiceID,
		"admin_id", cmd.AdminID)

	if err := uc.validateCommand(cmd); err != nil {
		uc.logger.Errorw("invalid request clarification command", "error", err)
		return nil, err
	}

	inv, err := uc.invoiceRepo.GetByID(ctx, cmd.InvoiceID)
	if err != nil {
		uc.logger.Errorw("failed to find invoice", "error", err, "invoice_id", cmd.InvoiceID)
		return nil, apperrors.NewNotFoundError("invoice not found")
	}

	request := uc.md.StripToText(cmd.Request)
	if err := inv.RequestClarification(request); err != nil {
		uc.logger.Errorw("failed to request clarification", "error", err)
		return nil, domainError(err)
	}

	if err := uc.invoiceRepo.Update(ctx, inv); err != nil {
		uc.logger.Errorw("failed to update invoice", "error", err)
		return nil, err
	}

	uc.logger.Infow("clarification requested", "invoice_id", inv.ID())

	return &RequestClarificationResult{
		InvoiceID: inv.ID(),
		Status:    inv.Status().String(),
		UpdatedAt: inv.UpdatedAt().Format(time.RFC3339),
	}, nil
}

func (uc *RequestClarificationUseCase) validateCommand(cmd RequestClarificationCommand) error {
	if cmd.InvoiceID == 0 {
		return apperrors.NewValidationError("invoice ID is required")
	}
	if cmd.AdminID == 0 {
		return apperrors.NewValidationError("admin ID is required")
	}
	if len(cmd.Request) == 0 {
		return apperrors.NewValidationError("clarification request is required")
	}
	return nil
}
