package usecases

import (
	"context"
	"testing"

	"github.com/fieldserv-inc/fieldserv/internal/domain/invoice"
	invoicevo "github.com/fieldserv-inc/fieldserv/internal/domain/invoice/valueobjects"
	apperrors "github.com/fieldserv-inc/fieldserv/internal/shared/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApproveInvoice_Success(t *testing.T) {
	inv := newPendingInvoice(t)
	var updated *invoice.Invoice
	repo := invoiceRepoReturning(inv)
	repo.UpdateFunc = func(ctx context.Context, i *invoice.Invoice) error {
		updated = i
		return nil
	}
	dispatcher := &mockEventDispatcher{}
	uc := NewApproveInvoiceUseCase(repo, dispatcher, newTestLogger())

	result, err := uc.Execute(context.Background(), ApproveInvoiceCommand{InvoiceID: testInvoiceID, AdminID: testAdminID})

	require.NoError(t, err)
	assert.Equal(t, invoicevo.StatusApproved.String(), result.Status)
	require.NotNil(t, updated)
	require.Len(t, dispatcher.Published, 1)
	assert.Equal(t, invoice.EventInvoiceApproved, dispatcher.Published[0].GetEventType())
	assert.Empty(t, inv.PendingEvents())
}

func TestApproveInvoice_NotPending(t *testing.T) {
	inv := newApprovedInvoice(t)
	uc := NewApproveInvoiceUseCase(invoiceRepoReturning(inv), &mockEventDispatcher{}, newTestLogger())

	_, err := uc.Execute(context.Background(), ApproveInvoiceCommand{InvoiceID: testInvoiceID, AdminID: testAdminID})

	assert.True(t, apperrors.IsInvalidTransitionError(err))
}

func TestApproveInvoice_ConcurrentModificationSurfaces(t *testing.T) {
	inv := newPendingInvoice(t)
	repo := invoiceRepoReturning(inv)
	repo.UpdateFunc = func(ctx context.Context, i *invoice.Invoice) error {
		return apperrors.NewConcurrentModificationError("invoice was modified concurrently")
	}
	uc := NewApproveInvoiceUseCase(repo, &mockEventDispatcher{}, newTestLogger())

	_, err := uc.Execute(context.Background(), ApproveInvoiceCommand{InvoiceID: testInvoiceID, AdminID: testAdminID})

	assert.True(t, apperrors.IsConcurrentModificationError(err))
}

func TestRejectInvoice_Success(t *testing.T) {
	inv := newPendingInvoice(t)
	repo := invoiceRepoReturning(inv)
	dispatcher := &mockEventDispatcher{}
	uc := NewRejectInvoiceUseCase(repo, newTestMarkdown(), dispatcher, newTestLogger())

	result, err := uc.Execute(context.Background(), RejectInvoiceCommand{
		InvoiceID: testInvoiceID,
		AdminID:   testAdminID,
		Reason:    "hours do not match the work description",
	})

	require.NoError(t, err)
	assert.Equal(t, invoicevo.StatusRejected.String(), result.Status)
	assert.Equal(t, "hours do not match the work description", result.Reason)
	require.Len(t, dispatcher.Published, 1)
	assert.Equal(t, invoice.EventInvoiceRejected, dispatcher.Published[0].GetEventType())
}

func TestRejectInvoice_RequiresReason(t *testing.T) {
	uc := NewRejectInvoiceUseCase(invoiceRepoReturning(newPendingInvoice(t)), newTestMarkdown(), &mockEventDispatcher{}, newTestLogger())

	_, err := uc.Execute(context.Background(), RejectInvoiceCommand{InvoiceID: testInvoiceID, AdminID: testAdminID})

	assert.True(t, apperrors.IsValidationError(err))
}

func TestClarificationCycle(t *testing.T) {
	inv := newPendingInvoice(t)
	repo := invoiceRepoReturning(inv)
	requestUC := NewRequestClarificationUseCase(repo, newTestMarkdown(), newTestLogger())
	respondUC := NewRespondClarificationUseCase(repo, newTestMarkdown(), newTestLogger())

	_, err := requestUC.Execute(context.Background(), RequestClarificationCommand{
		InvoiceID: testInvoiceID,
		AdminID:   testAdminID,
		Request:   "Please attach the parts receipt",
	})
	require.NoError(t, err)
	assert.Equal(t, "Please attach the parts receipt", inv.ClarificationRequest())

	_, err = respondUC.Execute(context.Background(), RespondClarificationCommand{
		InvoiceID:    testInvoiceID,
		ContractorID: testContractorID,
		Response:     "Receipt uploaded as files/receipt.pdf",
	})
	require.NoError(t, err)
	assert.Equal(t, "Receipt uploaded as files/receipt.pdf", inv.ClarificationResponse())
	assert.True(t, inv.Status().IsPending())
}

func TestRespondClarification_WrongContractor(t *testing.T) {
	inv := newPendingInvoice(t)
	require.NoError(t, inv.RequestClarification("Please attach the parts receipt"))
	uc := NewRespondClarificationUseCase(invoiceRepoReturning(inv), newTestMarkdown(), newTestLogger())

	_, err := uc.Execute(context.Background(), RespondClarificationCommand{
		InvoiceID:    testInvoiceID,
		ContractorID: 99,
		Response:     "Receipt uploaded",
	})

	assert.True(t, apperrors.IsInvalidTransitionError(err))
}

func TestRespondClarification_NoRequestOutstanding(t *testing.T) {
	uc := NewRespondClarificationUseCase(invoiceRepoReturning(newPendingInvoice(t)), newTestMarkdown(), newTestLogger())

	_, err := uc.Execute(context.Background(), RespondClarificationCommand{
		InvoiceID:    testInvoiceID,
		ContractorID: testContractorID,
		Response:     "Receipt uploaded",
	})

	assert.True(t, apperrors.IsValidationError(err))
}

func TestCancelInvoice_Success(t *testing.T) {
	inv := newPendingInvoice(t)
	uc := NewCancelInvoiceUseCase(invoiceRepoReturning(inv), newTestMarkdown(), newTestLogger())

	result, err := uc.Execute(context.Background(), CancelInvoiceCommand{
		InvoiceID: testInvoiceID,
		ActorID:   testAdminID,
		Reason:    "submitted against the wrong ticket",
	})

	require.NoError(t, err)
	assert.Equal(t, invoicevo.StatusCancelled.String(), result.Status)
	assert.False(t, inv.IsActive())
}
