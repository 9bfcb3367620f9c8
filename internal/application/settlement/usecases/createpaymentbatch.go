package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/fieldserv-inc/fieldserv/internal/domain/invoice"
	"github.com/fieldserv-inc/fieldserv/internal/domain/settlement"
	"github.com/fieldserv-inc/fieldserv/internal/domain/shared/events"
	apperrors "github.com/fieldserv-inc/fieldserv/internal/shared/errors"
	"github.com/fieldserv-inc/fieldserv/internal/shared/logger"
	"github.com/fieldserv-inc/fieldserv/internal/shared/services/markdown"
)

type CreatePaymentBatchCommand struct {
	Reference   string
	PopRef      string
	PaymentDate time.Time
	Notes       string
	InvoiceIDs  []uint
	CreatedBy   uint
}

type CreatePaymentBatchResult struct {
	BatchID      uint   `json:"batch_id"`
	Reference    string `json:"reference"`
	InvoiceCount int    `json:"invoice_count"`
	TotalCents   int64  `json:"total_cents"`
	Currency     string `json:"currency"`
	CreatedAt    string `json:"created_at"`
}

// CreatePaymentBatchUseCase settles a set of payable invoices under one proof
// of payment reference. Every referenced invoice must exist and be payable
// before anything is written; the batch and all invoice updates then commit in
// one transaction. A failure anywhere leaves every invoice untouched.
type CreatePaymentBatchUseCase struct {
	batchRepo       settlement.Repository
	invoiceRepo     invoice.Repository
	txRunner        TransactionRunner
	md              markdown.Service
	eventDispatcher events.EventDispatcher
	logger          logger.Interface
}

func NewCreatePaymentBatchUseCase(
	batchRepo settlement.Repository,
	invoiceRepo invoice.Repository,
	txRunner TransactionRunner,
	md markdown.Service,
	eventDispatcher events.EventDispatcher,
	logger logger.Interface,
) *CreatePaymentBatchUseCase {
	return &CreatePaymentBatchUseCase{
		batchRepo:       batchRepo,
		invoiceRepo:     invoiceRepo,
		txRunner:        txRunner,
		md:              md,
		eventDispatcher: eventDispatcher,
		logger:          logger,
	}
}

func (uc *CreatePaymentBatchUseCase) Execute(ctx context.Context, cmd CreatePaymentBatchCommand) (*CreatePaymentBatchResult, error) {
	uc.logger.Infow("executing create payment batch use case",
		"reference", cmd.Reference,
		"invoice_count", len(cmd.InvoiceIDs),
		"created_by", cmd.CreatedBy)

	if err := uc.validateCommand(cmd); err != nil {
		uc.logger.Errorw("invalid create payment batch command", "error", err)
		return nil, err
	}

	if existing, err := uc.batchRepo.GetByReference(ctx, cmd.Reference); err == nil && existing != nil {
		return nil, apperrors.NewConflictError("batch reference already used")
	} else if err != nil && !apperrors.IsNotFoundError(err) {
		uc.logger.Errorw("failed to check batch reference", "error", err)
		return nil, apperrors.NewInternalError("failed to check batch reference")
	}

	invoices, err := uc.invoiceRepo.GetByIDs(ctx, cmd.InvoiceIDs)
	if err != nil {
		uc.logger.Errorw("failed to load batch invoices", "error", err)
		return nil, apperrors.NewInternalError("failed to load batch invoices")
	}

	byID := make(map[uint]*invoice.Invoice, len(invoices))
	for _, inv := range invoices {
		byID[inv.ID()] = inv
	}

	members := make([]settlement.BatchMember, 0, len(cmd.InvoiceIDs))
	currency := ""
	for _, id := range cmd.InvoiceIDs {
		inv, ok := byID[id]
		if !ok {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("invoice %d not found", id))
		}
		if !inv.Status().IsPayable() {
			return nil, apperrors.NewInvalidTransitionError(
				fmt.Sprintf("invoice %s is not payable, status %s", inv.Number(), inv.Status()))
		}
		if currency == "" {
			currency = inv.Amount().Currency()
		} else if inv.Amount().Currency() != currency {
			return nil, apperrors.NewValidationError("batch invoices must share one currency")
		}
		// The member amount is what this batch actually settles: the
		// outstanding balance, not the invoice face amount.
		members = append(members, settlement.BatchMember{
			InvoiceID:     inv.ID(),
			InvoiceNumber: inv.Number(),
			ContractorID:  inv.ContractorID(),
			AmountCents:   inv.Balance().AmountInCents(),
		})
	}

	notes := uc.md.StripToText(cmd.Notes)
	batch, err := settlement.NewPaymentBatch(cmd.Reference, cmd.PopRef, cmd.PaymentDate, notes, cmd.CreatedBy, currency, members)
	if err != nil {
		return nil, domainError(err)
	}

	paidAt := cmd.PaymentDate.UTC()
	for _, id := range cmd.InvoiceIDs {
		if err := byID[id].MarkPaidInBatch(cmd.PopRef, paidAt); err != nil {
			return nil, domainError(err)
		}
	}

	txErr := uc.txRunner.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.batchRepo.Save(txCtx, batch); err != nil {
			return err
		}
		for _, id := range cmd.InvoiceIDs {
			if err := uc.invoiceRepo.Update(txCtx, byID[id]); err != nil {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		uc.logger.Errorw("failed to commit payment batch", "error", txErr, "reference", cmd.Reference)
		if apperrors.IsAppError(txErr) {
			return nil, txErr
		}
		if apperrors.IsDuplicateError(txErr) {
			return nil, apperrors.NewConflictError("batch reference already used")
		}
		return nil, apperrors.NewInternalError("failed to save payment batch")
	}

	batch.RecordCreated()
	for _, event := range batch.PendingEvents() {
		if err := uc.eventDispatcher.Publish(event); err != nil {
			uc.logger.Warnw("failed to dispatch event", "error", err, "event_type", event.GetEventType())
		}
	}
	batch.ClearEvents()

	for _, inv := range invoices {
		for _, event := range inv.PendingEvents() {
			if err := uc.eventDispatcher.Publish(event); err != nil {
				uc.logger.Warnw("failed to dispatch event", "error", err, "event_type", event.GetEventType())
			}
		}
		inv.ClearEvents()
	}

	total := batch.TotalAmount()
	uc.logger.Infow("payment batch created",
		"batch_id", batch.ID(),
		"reference", batch.Reference(),
		"invoice_count", len(members),
		"total_cents", total.AmountInCents())

	return &CreatePaymentBatchResult{
		BatchID:      batch.ID(),
		Reference:    batch.Reference(),
		InvoiceCount: len(members),
		TotalCents:   total.AmountInCents(),
		Currency:     batch.Currency(),
		CreatedAt:    batch.CreatedAt().Format(time.RFC3339),
	}, nil
}

func (uc *CreatePaymentBatchUseCase) validateCommand(cmd CreatePaymentBatchCommand) error {
	if len(cmd.Reference) == 0 {
		return apperrors.NewValidationError("batch reference is required")
	}
	if len(cmd.PopRef) == 0 {
		return apperrors.NewValidationError("proof of payment reference is required")
	}
	if cmd.PaymentDate.IsZero() {
		return apperrors.NewValidationError("payment date is required")
	}
	if len(cmd.InvoiceIDs) == 0 {
		return apperrors.NewValidationError("batch must contain at least one invoice")
	}
	if cmd.CreatedBy == 0 {
		return apperrors.NewValidationError("creator ID is required")
	}
	seen := make(map[uint]bool, len(cmd.InvoiceIDs))
	for _, id := range cmd.InvoiceIDs {
		if id == 0 {
			return apperrors.NewValidationError("invoice ID cannot be zero")
		}
		if seen[id] {
			return apperrors.NewValidationError(fmt.Sprintf("invoice %d appears more than once", id))
		}
		seen[id] = true
	}
	return nil
}
