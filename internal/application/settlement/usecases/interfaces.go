package usecases

import (
	"context"
	"errors"

	"github.com/fieldserv-inc/fieldserv/internal/application/settlement/dto"
	"github.com/fieldserv-inc/fieldserv/internal/domain/invoice"
	apperrors "github.com/fieldserv-inc/fieldserv/internal/shared/errors"
)

type CreatePaymentBatchExecutor interface {
	Execute(ctx context.Context, cmd CreatePaymentBatchCommand) (*CreatePaymentBatchResult, error)
}

type GetPaymentBatchExecutor interface {
	Execute(ctx context.Context, query GetPaymentBatchQuery) (*dto.PaymentBatchDTO, error)
}

type ListPaymentBatchesExecutor interface {
	Execute(ctx context.Context, query ListPaymentBatchesQuery) (*ListPaymentBatchesResult, error)
}

// TransactionRunner runs a function inside one database transaction. Satisfied
// by db.TransactionManager.
type TransactionRunner interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// domainError maps an invoice guard failure onto the typed taxonomy. Batch
// creation settles invoices, so their transition errors surface here.
func domainError(err error) error {
	if errors.Is(err, invoice.ErrInvalidTransition) {
		return apperrors.NewInvalidTransitionError(err.Error())
	}
	return apperrors.NewValidationError(err.Error())
}
