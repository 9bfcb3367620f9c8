package usecases

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fieldserv-inc/fieldserv/internal/domain/invoice"
	invoicevo "github.com/fieldserv-inc/fieldserv/internal/domain/invoice/valueobjects"
	"github.com/fieldserv-inc/fieldserv/internal/domain/settlement"
	apperrors "github.com/fieldserv-inc/fieldserv/internal/shared/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAdminID uint = 30

func approvedInvoiceForBatch(t *testing.T, id uint, number string, amountCents int64) *invoice.Invoice {
	t.Helper()

	inv, err := invoice.NewInvoice(
		id,
		20,
		number,
		invoicevo.NewMoney(amountCents, invoicevo.DefaultCurrency),
		8,
		invoicevo.NewMoney(6250, invoicevo.DefaultCurrency),
		"Work performed",
		"files/"+number+".pdf",
		nil,
	)
	require.NoError(t, err)
	require.NoError(t, inv.SetID(id))
	require.NoError(t, inv.Approve())
	inv.ClearEvents()
	return inv
}

func validBatchCommand(invoiceIDs ...uint) CreatePaymentBatchCommand {
	return CreatePaymentBatchCommand{
		Reference:   "BATCH-2026-08-001",
		PopRef:      "POP-1",
		PaymentDate: time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC),
		Notes:       "Weekly contractor run",
		InvoiceIDs:  invoiceIDs,
		CreatedBy:   testAdminID,
	}
}

func newCreateBatchUseCase(batchRepo *mockBatchRepository, invoiceRepo *mockInvoiceRepository, txRunner *mockTransactionRunner) (*CreatePaymentBatchUseCase, *mockEventDispatcher) {
	dispatcher := &mockEventDispatcher{}
	uc := NewCreatePaymentBatchUseCase(batchRepo, invoiceRepo, txRunner, newTestMarkdown(), dispatcher, newTestLogger())
	return uc, dispatcher
}

func TestCreatePaymentBatch_SettlesAllInvoices(t *testing.T) {
	invA := approvedInvoiceForBatch(t, 1, "INV-1", 50000)
	invB := approvedInvoiceForBatch(t, 2, "INV-2", 30000)

	var savedBatch *settlement.PaymentBatch
	var updated []*invoice.Invoice
	batchRepo := &mockBatchRepository{
		GetByReferenceFunc: func(ctx context.Context, reference string) (*settlement.PaymentBatch, error) {
			return nil, apperrors.NewNotFoundError("payment batch not found")
		},
		SaveFunc: func(ctx context.Context, batch *settlement.PaymentBatch) error {
			savedBatch = batch
			return batch.SetID(7)
		},
	}
	invoiceRepo := &mockInvoiceRepository{
		GetByIDsFunc: func(ctx context.Context, ids []uint) ([]*invoice.Invoice, error) {
			return []*invoice.Invoice{invA, invB}, nil
		},
		UpdateFunc: func(ctx context.Context, inv *invoice.Invoice) error {
			updated = append(updated, inv)
			return nil
		},
	}
	uc, dispatcher := newCreateBatchUseCase(batchRepo, invoiceRepo, &mockTransactionRunner{})

	result, err := uc.Execute(context.Background(), validBatchCommand(1, 2))

	require.NoError(t, err)
	assert.Equal(t, uint(7), result.BatchID)
	assert.Equal(t, 2, result.InvoiceCount)
	assert.Equal(t, int64(80000), result.TotalCents)
	assert.Equal(t, invoicevo.DefaultCurrency, result.Currency)

	require.NotNil(t, savedBatch)
	assert.Len(t, updated, 2)

	assert.True(t, invA.Status().IsPaid())
	assert.True(t, invB.Status().IsPaid())
	require.NotNil(t, invA.PopRef())
	assert.Equal(t, "POP-1", *invA.PopRef())
	require.NotNil(t, invA.PaidDate())

	// batch created event plus one paid event per invoice
	require.Len(t, dispatcher.Published, 3)
	assert.Equal(t, settlement.EventPaymentBatchCreated, dispatcher.Published[0].GetEventType())
}

func TestCreatePaymentBatch_PartialBalanceSettledAtRemainder(t *testing.T) {
	inv := approvedInvoiceForBatch(t, 1, "INV-1", 50000)
	require.NoError(t, inv.RecordPayment(invoicevo.NewMoney(20000, invoicevo.DefaultCurrency), time.Now().UTC()))
	inv.ClearEvents()

	var savedBatch *settlement.PaymentBatch
	batchRepo := &mockBatchRepository{
		GetByReferenceFunc: func(ctx context.Context, reference string) (*settlement.PaymentBatch, error) {
			return nil, apperrors.NewNotFoundError("payment batch not found")
		},
		SaveFunc: func(ctx context.Context, batch *settlement.PaymentBatch) error {
			savedBatch = batch
			return batch.SetID(7)
		},
	}
	invoiceRepo := &mockInvoiceRepository{
		GetByIDsFunc: func(ctx context.Context, ids []uint) ([]*invoice.Invoice, error) {
			return []*invoice.Invoice{inv}, nil
		},
	}
	uc, _ := newCreateBatchUseCase(batchRepo, invoiceRepo, &mockTransactionRunner{})

	result, err := uc.Execute(context.Background(), validBatchCommand(1))

	require.NoError(t, err)
	assert.Equal(t, int64(30000), result.TotalCents)
	assert.True(t, inv.Status().IsPaid())
	assert.Equal(t, int64(0), inv.Balance().AmountInCents())

	// The persisted member amount records the settled balance, not the
	// invoice face amount.
	require.NotNil(t, savedBatch)
	require.Len(t, savedBatch.Members(), 1)
	assert.Equal(t, int64(30000), savedBatch.Members()[0].AmountCents)
}

func TestCreatePaymentBatch_NonPayableInvoiceFailsWholeBatch(t *testing.T) {
	invA := approvedInvoiceForBatch(t, 1, "INV-1", 50000)
	pending, err := invoice.NewInvoice(
		2, 20, "INV-2",
		invoicevo.NewMoney(30000, invoicevo.DefaultCurrency),
		4,
		invoicevo.NewMoney(7500, invoicevo.DefaultCurrency),
		"Work performed",
		"files/inv-2.pdf",
		nil,
	)
	require.NoError(t, err)
	require.NoError(t, pending.SetID(2))

	saveCalled := false
	updateCalled := false
	batchRepo := &mockBatchRepository{
		GetByReferenceFunc: func(ctx context.Context, reference string) (*settlement.PaymentBatch, error) {
			return nil, apperrors.NewNotFoundError("payment batch not found")
		},
		SaveFunc: func(ctx context.Context, batch *settlement.PaymentBatch) error {
			saveCalled = true
			return nil
		},
	}
	invoiceRepo := &mockInvoiceRepository{
		GetByIDsFunc: func(ctx context.Context, ids []uint) ([]*invoice.Invoice, error) {
			return []*invoice.Invoice{invA, pending}, nil
		},
		UpdateFunc: func(ctx context.Context, inv *invoice.Invoice) error {
			updateCalled = true
			return nil
		},
	}
	uc, _ := newCreateBatchUseCase(batchRepo, invoiceRepo, &mockTransactionRunner{})

	_, err = uc.Execute(context.Background(), validBatchCommand(1, 2))

	assert.True(t, apperrors.IsInvalidTransitionError(err))
	assert.False(t, saveCalled)
	assert.False(t, updateCalled)
	assert.True(t, invA.Status().IsApproved())
}

func TestCreatePaymentBatch_MissingInvoiceFailsWholeBatch(t *testing.T) {
	invA := approvedInvoiceForBatch(t, 1, "INV-1", 50000)
	batchRepo := &mockBatchRepository{
		GetByReferenceFunc: func(ctx context.Context, reference string) (*settlement.PaymentBatch, error) {
			return nil, apperrors.NewNotFoundError("payment batch not found")
		},
	}
	invoiceRepo := &mockInvoiceRepository{
		GetByIDsFunc: func(ctx context.Context, ids []uint) ([]*invoice.Invoice, error) {
			return []*invoice.Invoice{invA}, nil
		},
	}
	uc, _ := newCreateBatchUseCase(batchRepo, invoiceRepo, &mockTransactionRunner{})

	_, err := uc.Execute(context.Background(), validBatchCommand(1, 99))

	assert.True(t, apperrors.IsNotFoundError(err))
	assert.True(t, invA.Status().IsApproved())
}

func TestCreatePaymentBatch_DuplicateReference(t *testing.T) {
	existing, err := settlement.NewPaymentBatch(
		"BATCH-2026-08-001", "POP-0",
		time.Date(2026, 8, 21, 0, 0, 0, 0, time.UTC),
		"", testAdminID, invoicevo.DefaultCurrency,
		[]settlement.BatchMember{{InvoiceID: 9, InvoiceNumber: "INV-9", ContractorID: 20, AmountCents: 1000}},
	)
	require.NoError(t, err)

	batchRepo := &mockBatchRepository{
		GetByReferenceFunc: func(ctx context.Context, reference string) (*settlement.PaymentBatch, error) {
			return existing, nil
		},
	}
	uc, _ := newCreateBatchUseCase(batchRepo, &mockInvoiceRepository{}, &mockTransactionRunner{})

	_, err = uc.Execute(context.Background(), validBatchCommand(1))

	assert.True(t, apperrors.IsConflictError(err))
}

func TestCreatePaymentBatch_TransactionFailureSurfaces(t *testing.T) {
	inv := approvedInvoiceForBatch(t, 1, "INV-1", 50000)
	batchRepo := &mockBatchRepository{
		GetByReferenceFunc: func(ctx context.Context, reference string) (*settlement.PaymentBatch, error) {
			return nil, apperrors.NewNotFoundError("payment batch not found")
		},
	}
	invoiceRepo := &mockInvoiceRepository{
		GetByIDsFunc: func(ctx context.Context, ids []uint) ([]*invoice.Invoice, error) {
			return []*invoice.Invoice{inv}, nil
		},
	}
	txRunner := &mockTransactionRunner{Err: errors.New("deadlock detected")}
	uc, dispatcher := newCreateBatchUseCase(batchRepo, invoiceRepo, txRunner)

	_, err := uc.Execute(context.Background(), validBatchCommand(1))

	require.Error(t, err)
	assert.Empty(t, dispatcher.Published)
}

func TestCreatePaymentBatch_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(cmd *CreatePaymentBatchCommand)
	}{
		{"missing reference", func(cmd *CreatePaymentBatchCommand) { cmd.Reference = "" }},
		{"missing pop ref", func(cmd *CreatePaymentBatchCommand) { cmd.PopRef = "" }},
		{"zero payment date", func(cmd *CreatePaymentBatchCommand) { cmd.PaymentDate = time.Time{} }},
		{"no invoices", func(cmd *CreatePaymentBatchCommand) { cmd.InvoiceIDs = nil }},
		{"duplicate invoice", func(cmd *CreatePaymentBatchCommand) { cmd.InvoiceIDs = []uint{1, 1} }},
		{"missing creator", func(cmd *CreatePaymentBatchCommand) { cmd.CreatedBy = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, _ := newCreateBatchUseCase(&mockBatchRepository{}, &mockInvoiceRepository{}, &mockTransactionRunner{})
			cmd := validBatchCommand(1)
			tt.mutate(&cmd)

			_, err := uc.Execute(context.Background(), cmd)

			assert.True(t, apperrors.IsValidationError(err))
		})
	}
}
