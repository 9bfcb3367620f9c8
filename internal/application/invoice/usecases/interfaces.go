package usecases

import (
	"context"
	"errors"

	"github.com/fieldserv-inc/fieldserv/internal/application/invoice/dto"
	"github.com/fieldserv-inc/fieldserv/internal/domain/invoice"
	"github.com/fieldserv-inc/fieldserv/internal/domain/ticket"
	apperrors "github.com/fieldserv-inc/fieldserv/internal/shared/errors"
)

type SubmitInvoiceExecutor interface {
	Execute(ctx context.Context, cmd SubmitInvoiceCommand) (*SubmitInvoiceResult, error)
}

type RequestClarificationExecutor interface {
	Execute(ctx context.Context, cmd RequestClarificationCommand) (*RequestClarificationResult, error)
}

type RespondClarificationExecutor interface {
	Execute(ctx context.Context, cmd RespondClarificationCommand) (*RespondClarificationResult, error)
}

type ApproveInvoiceExecutor interface {
	Execute(ctx context.Context, cmd ApproveInvoiceCommand) (*ApproveInvoiceResult, error)
}

type RejectInvoiceExecutor interface {
	Execute(ctx context.Context, cmd RejectInvoiceCommand) (*RejectInvoiceResult, error)
}

type RecordPaymentExecutor interface {
	Execute(ctx context.Context, cmd RecordPaymentCommand) (*RecordPaymentResult, error)
}

type CancelInvoiceExecutor interface {
	Execute(ctx context.Context, cmd CancelInvoiceCommand) (*CancelInvoiceResult, error)
}

type MarkOverdueInvoicesExecutor interface {
	Execute(ctx context.Context, cmd MarkOverdueInvoicesCommand) (*MarkOverdueInvoicesResult, error)
}

type GetInvoiceExecutor interface {
	Execute(ctx context.Context, query GetInvoiceQuery) (*dto.InvoiceDTO, error)
}

type ListInvoicesExecutor interface {
	Execute(ctx context.Context, query ListInvoicesQuery) (*ListInvoicesResult, error)
}

// TicketReader is the narrow ticket read the invoice side needs: an invoice
// may only be created for a completed ticket by its assigned contractor.
type TicketReader interface {
	GetByID(ctx context.Context, id uint) (*ticket.Ticket, error)
}

// TransactionRunner runs a function inside one database transaction. Satisfied
// by db.TransactionManager.
type TransactionRunner interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// domainError maps an aggregate guard failure onto the typed taxonomy.
func domainError(err error) error {
	if errors.Is(err, invoice.ErrInvalidTransition) {
		return apperrors.NewInvalidTransitionError(err.Error())
	}
	return apperrors.NewValidationError(err.Error())
}
