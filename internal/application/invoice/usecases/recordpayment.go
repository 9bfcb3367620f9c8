package usecases

import (
	"context"
	"time"

	"github.com/fieldserv-inc/fieldserv/internal/domain/invoice"
	vo "github.com/fieldserv-inc/fieldserv/internal/domain/invoice/valueobjects"
	"github.com/fieldserv-inc/fieldserv/internal/domain/shared/events"
	apperrors "github.com/fieldserv-inc/fieldserv/internal/shared/errors"
	"github.com/fieldserv-inc/fieldserv/internal/shared/logger"
)

type RecordPaymentCommand struct {
	InvoiceID   uint
	AdminID     uint
	AmountCents int64
	PaidAt      *time.Time
}

type RecordPaymentResult struct {
	InvoiceID       uint   `json:"invoice_id"`
	Status          string `json:"status"`
	PaidAmountCents int64  `json:"paid_amount_cents"`
	BalanceCents    int64  `json:"balance_cents"`
	UpdatedAt       string `json:"updated_at"`
}

// RecordPaymentUseCase applies a direct payment outside the batch flow.
// Partial payments accumulate; a payment clearing the balance settles the
// invoice.
type RecordPaymentUseCase struct {
	invoiceRepo     invoice.Repository
	eventDispatcher events.EventDispatcher
	logger          logger.Interface
}

func NewRecordPaymentUseCase(
	invoiceRepo invoice.Repository,
	eventDispatcher events.EventDispatcher,
	logger logger.Interface,
) *RecordPaymentUseCase {
	return &RecordPaymentUseCase{
		invoiceRepo:     invoiceRepo,
		eventDispatcher: eventDispatcher,
		logger:          logger,
	}
}

func (uc *RecordPaymentUseCase) Execute(ctx context.Context, cmd RecordPaymentCommand) (*RecordPaymentResult, error) {
	uc.logger.Infow("executing record payment use case",
		"invoice_id", cmd.InvoiceID,
		"admin_id", cmd.AdminID,
		"amount_cents", cmd.AmountCents)

	if err := uc.validateCommand(cmd); err != nil {
		uc.logger.Errorw("invalid record payment command", "error", err)
		return nil, err
	}

	inv, err := uc.invoiceRepo.GetByID(ctx, cmd.InvoiceID)
	if err != nil {
		uc.logger.Errorw("failed to find invoice", "error", err, "invoice_id", cmd.InvoiceID)
		return nil, apperrors.NewNotFoundError("invoice not found")
	}

	paidAt := time.Now().UTC()
	if cmd.PaidAt != nil {
		paidAt = cmd.PaidAt.UTC()
	}

	amount := vo.NewMoney(cmd.AmountCents, inv.Amount().Currency())
	if err := inv.RecordPayment(amount, paidAt); err != nil {
		uc.logger.Errorw("failed to record payment", "error", err)
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

	uc.logger.Infow("payment recorded",
		"invoice_id", inv.ID(),
		"status", inv.Status().String(),
		"balance_cents", inv.Balance().AmountInCents())

	return &RecordPaymentResult{
		InvoiceID:       inv.ID(),
		Status:          inv.Status().String(),
		PaidAmountCents: inv.PaidAmount().AmountInCents(),
		BalanceCents:    inv.Balance().AmountInCents(),
		UpdatedAt:       inv.UpdatedAt().Format(time.RFC3339),
	}, nil
}

func (uc *RecordPaymentUseCase) validateCommand(cmd RecordPaymentCommand) error {
	if cmd.InvoiceID == 0 {
		return apperrors.NewValidationError("invoice ID is required")
	}
	if cmd.AdminID == 0 {
		return apperrors.NewValidationError("admin ID is required")
	}
	if cmd.AmountCents <= 0 {
		return apperrors.NewValidationError("payment amount must be positive")
	}
	return nil
}
