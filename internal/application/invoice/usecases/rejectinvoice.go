package usecases

import (
	"context"
	"time"

	"github.com/fieldserv-inc/fieldserv/internal/domain/invoice"
	"github.com/fieldserv-inc/fieldserv/internal/domain/shared/events"
	apperrors "github.com/fieldserv-inc/fieldserv/internal/shared/errors"
	"github.com/fieldserv-inc/fieldserv/internal/shared/logger"
	"github.com/fieldserv-inc/fieldserv/internal/shared/services/markdown"
)

type RejectInvoiceCommand struct {
	InvoiceID uint
	AdminID   uint
	Reason    string
}

type RejectInvoiceResult struct {
	InvoiceID uint   `json:"invoice_id"`
	Status    string `json:"status"`
	Reason    string `json:"reason"`
	UpdatedAt string `json:"updated_at"`
}

type RejectInvoiceUseCase struct {
	invoiceRepo     invoice.Repository
	md              markdown.Service
	eventDispatcher events.EventDispatcher
	logger          logger.Interface
}

func NewRejectInvoiceUseCase(
	invoiceRepo invoice.Repository,
	md markdown.Service,
	eventDispatcher events.EventDispatcher,
	logger logger.Interface,
) *RejectInvoiceUseCase {
	return &RejectInvoiceUseCase{
		invoiceRepo:     invoiceRepo,
		md:              md,
		eventDispatcher: eventDispatcher,
		logger:          logger,
	}
}

func (uc *RejectInvoiceUseCase) Execute(ctx context.Context, cmd RejectInvoiceCommand) (*RejectInvoiceResult, error) {
	uc.logger.Infow("executing reject invoice use case",
		"invoice_id", cmd.InvoiceID,
		"admin_id", cmd.AdminID)

	if err := uc.validateCommand(cmd); err != nil {
		uc.logger.Errorw("invalid reject invoice command", "error", err)
		return nil, err
	}

	inv, err := uc.invoiceRepo.GetByID(ctx, cmd.InvoiceID)
	if err != nil {
		uc.logger.Errorw("failed to find invoice", "error", err, "invoice_id", cmd.InvoiceID)
		return nil, apperrors.NewNotFoundError("invoice not found")
	}

	reason := uc.md.StripToText(cmd.Reason)
	if err := inv.Reject(reason); err != nil {
		uc.logger.Errorw("failed to reject invoice", "error", err)
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

	uc.logger.Infow("invoice rejected", "invoice_id", inv.ID(), "reason", reason)

	return &RejectInvoiceResult{
		InvoiceID: inv.ID(),
		Status:    inv.Status().String(),
		Reason:    inv.RejectionReason(),
		UpdatedAt: inv.UpdatedAt().Format(time.RFC3339),
	}, nil
}

func (uc *RejectInvoiceUseCase) validateCommand(cmd RejectInvoiceCommand) error {
	if cmd.InvoiceID == 0 {
		return apperrors.NewValidationError("invoice ID is required")
	}
	if cmd.AdminID == 0 {
		return apperrors.NewValidationError("admin ID is required")
	}
	if len(cmd.Reason) == 0 {
		return apperrors.NewValidationError("rejection reason is required")
	}
	return nil
}
