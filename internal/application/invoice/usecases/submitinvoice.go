package usecases

import (
	"context"
	"time"

	"github.com/fieldserv-inc/fieldserv/internal/domain/invoice"
	vo "github.com/fieldserv-inc/fieldserv/internal/domain/invoice/valueobjects"
	"github.com/fieldserv-inc/fieldserv/internal/domain/shared/events"
	apperrors "github.com/fieldserv-inc/fieldserv/internal/shared/errors"
	"github.com/fieldserv-inc/fieldserv/internal/shared/logger"
	"github.com/fieldserv-inc/fieldserv/internal/shared/services/markdown"
)

type SubmitInvoiceCommand struct {
	TicketID        uint
	ContractorID    uint
	Number          string
	AmountCents     int64
	Currency        string
	HoursWorked     float64
	HourlyRateCents int64
	Description     string
	FileRef         string
}

type SubmitInvoiceResult struct {
	InvoiceID      uint   `json:"invoice_id"`
	Number         string `json:"number"`
	Status         string `json:"status"`
	RevisionNumber int    `json:"revision_number"`
	ParentID       *uint  `json:"parent_id,omitempty"`
	DueDate        string `json:"due_date,omitempty"`
	CreatedAt      string `json:"created_at"`
}

// SubmitInvoiceUseCase creates a first invoice for a completed ticket, or a
// revision superseding a rejected one. Superseding writes the parent and the
// revision in one transaction so exactly one invoice per ticket stays active.
type SubmitInvoiceUseCase struct {
	invoiceRepo     invoice.Repository
	tickets         TicketReader
	txRunner        TransactionRunner
	md              markdown.Service
	paymentDueDays  int
	eventDispatcher events.EventDispatcher
	logger          logger.Interface
}

func NewSubmitInvoiceUseCase(
	invoiceRepo invoice.Repository,
	tickets TicketReader,
	txRunner TransactionRunner,
	md markdown.Service,
	paymentDueDays int,
	eventDispatcher events.EventDispatcher,
	logger logger.Interface,
) *SubmitInvoiceUseCase {
	return &SubmitInvoiceUseCase{
		invoiceRepo:     invoiceRepo,
		tickets:         tickets,
		txRunner:        txRunner,
		md:              md,
		paymentDueDays:  paymentDueDays,
		eventDispatcher: eventDispatcher,
		logger:          logger,
	}
}

func (uc *SubmitInvoiceUseCase) Execute(ctx context.Context, cmd SubmitInvoiceCommand) (*SubmitInvoiceResult, error) {
	uc.logger.Infow("executing submit invoice use case",
		"ticket_id", cmd.TicketID,
		"contractor_id", cmd.ContractorID,
		"number", cmd.Number)

	if err := uc.validateCommand(cmd); err != nil {
		uc.logger.Errorw("invalid submit invoice command", "error", err)
		return nil, err
	}

	t, err := uc.tickets.GetByID(ctx, cmd.TicketID)
	if err != nil {
		uc.logger.Errorw("failed to find ticket", "error", err, "ticket_id", cmd.TicketID)
		return nil, apperrors.NewNotFoundError("ticket not found")
	}
	if !t.Status().IsCompletedOrLater() {
		return nil, apperrors.NewInvalidTransitionError("invoices can only be submitted for completed tickets")
	}
	if t.AssigneeID() == nil || *t.AssigneeID() != cmd.ContractorID {
		return nil, apperrors.NewInvalidTransitionError("only the assigned contractor may invoice this ticket")
	}

	exists, err := uc.invoiceRepo.ExistsByContractorAndNumber(ctx, cmd.ContractorID, cmd.Number)
	if err != nil {
		uc.logger.Errorw("failed to check invoice number", "error", err)
		return nil, apperrors.NewInternalError("failed to check invoice number")
	}
	if exists {
		return nil, apperrors.NewConflictError("invoice number already used by this contractor")
	}

	amount := vo.NewMoney(cmd.AmountCents, cmd.Currency)
	rate := vo.NewMoney(cmd.HourlyRateCents, cmd.Currency)
	description := uc.md.Sanitize(cmd.Description)

	var dueDate *time.Time
	if uc.paymentDueDays > 0 {
		due := time.Now().UTC().AddDate(0, 0, uc.paymentDueDays)
		dueDate = &due
	}

	parent, err := uc.invoiceRepo.GetActiveByTicketID(ctx, cmd.TicketID)
	if err != nil && !apperrors.IsNotFoundError(err) {
		uc.logger.Errorw("failed to check for active invoice", "error", err)
		return nil, apperrors.NewInternalError("failed to check for active invoice")
	}

	var inv *invoice.Invoice
	if parent == nil {
		inv, err = invoice.NewInvoice(cmd.TicketID, cmd.ContractorID, cmd.Number, amount, cmd.HoursWorked, rate, description, cmd.FileRef, dueDate)
		if err != nil {
			return nil, domainError(err)
		}
		if err := uc.invoiceRepo.Save(ctx, inv); err != nil {
			uc.logger.Errorw("failed to save invoice", "error", err)
			if apperrors.IsDuplicateError(err) {
				return nil, apperrors.NewConflictError("invoice number already used by this contractor")
			}
			return nil, apperrors.NewInternalError("failed to save invoice")
		}
	} else {
		if parent.ContractorID() != cmd.ContractorID {
			return nil, apperrors.NewInvalidTransitionError("only the original contractor may resubmit this invoice")
		}
		inv, err = invoice.NewRevisionOf(parent, cmd.Number, amount, cmd.HoursWorked, rate, description, cmd.FileRef, dueDate)
		if err != nil {
			return nil, domainError(err)
		}
		if err := parent.Supersede(); err != nil {
			return nil, domainError(err)
		}

		txErr := uc.txRunner.RunInTransaction(ctx, func(txCtx context.Context) error {
			if err := uc.invoiceRepo.Update(txCtx, parent); err != nil {
				return err
			}
			return uc.invoiceRepo.Save(txCtx, inv)
		})
		if txErr != nil {
			uc.logger.Errorw("failed to supersede invoice", "error", txErr, "parent_id", parent.ID())
			if apperrors.IsAppError(txErr) {
				return nil, txErr
			}
			return nil, apperrors.NewInternalError("failed to save invoice revision")
		}
	}

	event := invoice.NewInvoiceSubmittedEvent(inv.ID(), inv.Number(), inv.TicketID(), inv.ContractorID(), inv.RevisionNumber(), inv.Amount().AmountInCents(), time.Now().UTC())
	if err := uc.eventDispatcher.Publish(event); err != nil {
		uc.logger.Warnw("failed to dispatch event", "error", err, "event_type", event.GetEventType())
	}

	uc.logger.Infow("invoice submitted",
		"invoice_id", inv.ID(),
		"number", inv.Number(),
		"revision", inv.RevisionNumber())

	result := &SubmitInvoiceResult{
		InvoiceID:      inv.ID(),
		Number:         inv.Number(),
		Status:         inv.Status().String(),
		RevisionNumber: inv.RevisionNumber(),
		ParentID:       inv.ParentID(),
		CreatedAt:      inv.CreatedAt().Format(time.RFC3339),
	}
	if due := inv.DueDate(); due != nil {
		result.DueDate = due.Format(time.RFC3339)
	}
	return result, nil
}

func (uc *SubmitInvoiceUseCase) validateCommand(cmd SubmitInvoiceCommand) error {
	if cmd.TicketID == 0 {
		return apperrors.NewValidationError("ticket ID is required")
	}
	if cmd.ContractorID == 0 {
		return apperrors.NewValidationError("contractor ID is required")
	}
	if len(cmd.Number) == 0 {
		return apperrors.NewValidationError("invoice number is required")
	}
	if cmd.AmountCents <= 0 {
		return apperrors.NewValidationError("amount must be positive")
	}
	if len(cmd.FileRef) == 0 {
		return apperrors.NewValidationError("invoice file reference is required")
	}
	return nil
}
