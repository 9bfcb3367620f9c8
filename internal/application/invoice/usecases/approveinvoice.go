package usecases

import (
	"context"
	"time"

	"github.com/fieldserv-inc/fieldserv/internal/domain/invoice"
	"github.com/fieldserv-inc/fieldserv/internal/domain/shared/events"
	apperrors "github.com/fieldserv-inc/fieldserv/internal/shared/errors"
	"github.com/fieldserv-inc/fieldserv/internal/shared/logger"
)

type ApproveInvoiceCommand struct {
	InvoiceID uint
	AdminID   uint
}

type ApproveInvoiceResult struct {
	InvoiceID uint   `json:"invoice_id"`
	Status    string `json:"status"`
	UpdatedAt string `json:"updated_at"`
}

type ApproveInvoiceUseCase struct {
	invoiceRepo     invoice.Repository
	eventDispatcher events.EventDispatcher
	logger          logger.Interface
}

func NewApproveInvoiceUseCase(
	invoiceRepo invoice.Repository,
	eventDispatcher events.EventDispatcher,
	logger logger.Interface,
) *ApproveInvoiceUseCase {
	return &ApproveInvoiceUseCase{
		invoiceRepo:     invoiceRepo,
		eventDispatcher: eventDispatcher,
		logger:          logger,
	}
}

func (uc *ApproveInvoiceUseCase) Execute(ctx context.Context, cmd ApproveInvoiceCommand) (*ApproveInvoiceResult, error) {
	uc.logger.Infow("executing approve invoice use case",
		"invoice_id", cmd.InvoiceID,
		"admin_id", cmd.AdminID)

	if err := uc.validateCommand(cmd); err != nil {
		uc.logger.Errorw("invalid approve invoice command", "error", err)
		return nil, err
	}

	inv, err := uc.invoiceRepo.GetByID(ctx, cmd.InvoiceID)
	if err != nil {
		uc.logger.Errorw("failed to find invoice", "error", err, "invoice_id", cmd.InvoiceID)
		return nil, apperrors.NewNotFoundError("invoice not found")
	}

	if err := inv.Approve(); err != nil {
		uc.logger.Errorw("failed to approve invoice", "error", err)
		return nil, domainError(err)
	}

	if err := uc.invoiceRepo.Update(ctx, inv); err != nil {
		uc.logger.Errorw("failed to update invoice", "error", err)
		return nil, err
	}

	for _, event := range inv.PendingEvents() {
		if err := uc.eventDispatcher.Publish(event); err != nil {
			uc.logger.Warnw("failed to dispatch event", "error", err, "event_type", event.GetEventType())
		}
	}
	inv.ClearEvents()

	uc.logger.Infow("invoice approved", "invoice_id", inv.ID(), "number", inv.Number())

	return &ApproveInvoiceResult{
		InvoiceID: inv.ID(),
		Status:    inv.Status().String(),
		UpdatedAt: inv.UpdatedAt().Format(time.RFC3339),
	}, nil
}

func (uc *ApproveInvoiceUseCase) validateCommand(cmd ApproveInvoiceCommand) error {
	if cmd.InvoiceID == 0 {
		return apperrors.NewValidationError("invoice ID is required")
	}
	if cmd.AdminID == 0 {
		return apperrors.NewValidationError("admin ID is required")
	}
	return nil
}
