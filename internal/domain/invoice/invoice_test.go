package invoice

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "github.com/fieldserv-inc/fieldserv/internal/domain/invoice/valueobjects"
)

const (
	testTicketID     = uint(7)
	testContractorID = uint(20)
)

func newTestInvoice(t *testing.T, amountCents int64) *Invoice {
	t.Helper()
	inv, err := NewInvoice(
		testTicketID,
		testContractorID,
		"INV-1",
		vo.NewMoney(amountCents, "ZAR"),
		4,
		vo.NewMoney(12500, "ZAR"),
		"Replaced compressor relay",
		"files/inv-1.pdf",
		nil,
	)
	require.NoError(t, err)
	require.NoError(t, inv.SetID(1))
	return inv
}

func TestNewInvoice(t *testing.T) {
	inv := newTestInvoice(t, 50000)

	assert.Equal(t, vo.StatusPending, inv.Status())
	assert.True(t, inv.IsActive())
	assert.Equal(t, 1, inv.RevisionNumber())
	assert.Nil(t, inv.ParentID())
	assert.Equal(t, int64(50000), inv.Balance().AmountInCents())
}

func TestNewInvoice_Validation(t *testing.T) {
	tests := []struct {
		name        string
		ticketID    uint
		number      string
		amountCents int64
		fileRef     string
	}{
		{"missing ticket", 0, "INV-1", 50000, "f.pdf"},
		{"missing number", testTicketID, "", 50000, "f.pdf"},
		{"zero amount", testTicketID, "INV-1", 0, "f.pdf"},
		{"negative amount", testTicketID, "INV-1", -100, "f.pdf"},
		{"missing file", testTicketID, "INV-1", 50000, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewInvoice(tt.ticketID, testContractorID, tt.number, vo.NewMoney(tt.amountCents, "ZAR"), 1, vo.NewMoney(100, "ZAR"), "d", tt.fileRef, nil)
			assert.Error(t, err)
		})
	}
}

func TestInvoice_ApproveAndPayInFull(t *testing.T) {
	inv := newTestInvoice(t, 50000)

	require.NoError(t, inv.Approve())
	assert.Equal(t, vo.StatusApproved, inv.Status())

	paidAt := time.Now().UTC()
	require.NoError(t, inv.RecordPayment(vo.NewMoney(50000, "ZAR"), paidAt))
	assert.Equal(t, vo.StatusPaid, inv.Status())
	assert.Equal(t, int64(0), inv.Balance().AmountInCents())
	require.NotNil(t, inv.PaidDate())
}

func TestInvoice_PartialPayments(t *testing.T) {
	inv := newTestInvoice(t, 50000)
	require.NoError(t, inv.Approve())

	now := time.Now().UTC()
	require.NoError(t, inv.RecordPayment(vo.NewMoney(20000, "ZAR"), now))
	assert.Equal(t, vo.StatusApproved, inv.Status())
	assert.Equal(t, int64(30000), inv.Balance().AmountInCents())
	assert.Nil(t, inv.PaidDate())

	// Overpaying the remaining balance is rejected.
	err := inv.RecordPayment(vo.NewMoney(30001, "ZAR"), now)
	assert.Error(t, err)
	assert.Equal(t, int64(30000), inv.Balance().AmountInCents())

	require.NoError(t, inv.RecordPayment(vo.NewMoney(30000, "ZAR"), now))
	assert.Equal(t, vo.StatusPaid, inv.Status())
	assert.Equal(t, int64(0), inv.Balance().AmountInCents())
}

func TestInvoice_PaymentRequiresPayableStatus(t *testing.T) {
	inv := newTestInvoice(t, 50000)

	err := inv.RecordPayment(vo.NewMoney(10000, "ZAR"), time.Now().UTC())
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestInvoice_RejectAndResubmit(t *testing.T) {
	parent := newTestInvoice(t, 50000)

	require.NoError(t, parent.Reject("wrong hourly rate"))
	assert.Equal(t, vo.StatusRejected, parent.Status())
	assert.Equal(t, "wrong hourly rate", parent.RejectionReason())

	revision, err := NewRevisionOf(parent, "INV-1-REV", vo.NewMoney(45000, "ZAR"), 4, vo.NewMoney(11250, "ZAR"), "Corrected rate", "files/inv-1-rev.pdf", nil)
	require.NoError(t, err)
	require.NoError(t, parent.Supersede())

	assert.False(t, parent.IsActive())
	assert.True(t, revision.IsActive())
	assert.Equal(t, 2, revision.RevisionNumber())
	require.NotNil(t, revision.ParentID())
	assert.Equal(t, parent.ID(), *revision.ParentID())
}

func TestInvoice_Reject_RequiresReason(t *testing.T) {
	inv := newTestInvoice(t, 50000)
	err := inv.Reject("")
	assert.Error(t, err)
	assert.Equal(t, vo.StatusPending, inv.Status())
}

func TestNewRevisionOf_ParentMustBeRejected(t *testing.T) {
	parent := newTestInvoice(t, 50000)

	_, err := NewRevisionOf(parent, "INV-1-REV", vo.NewMoney(45000, "ZAR"), 4, vo.NewMoney(11250, "ZAR"), "d", "f.pdf", nil)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestInvoice_ClarificationCycle(t *testing.T) {
	inv := newTestInvoice(t, 50000)

	require.NoError(t, inv.RequestClarification("why four hours for a relay swap?"))
	assert.Equal(t, vo.StatusPending, inv.Status())

	err := inv.RespondToClarification(uint(99), "answer")
	assert.ErrorIs(t, err, ErrInvalidTransition)

	require.NoError(t, inv.RespondToClarification(testContractorID, "access permits took two hours"))
	assert.Equal(t, "access permits took two hours", inv.ClarificationResponse())
	assert.Equal(t, vo.StatusPending, inv.Status())
}

func TestInvoice_RespondWithoutRequest(t *testing.T) {
	inv := newTestInvoice(t, 50000)
	err := inv.RespondToClarification(testContractorID, "unsolicited")
	assert.Error(t, err)
}

func TestInvoice_MarkPaidInBatch(t *testing.T) {
	inv := newTestInvoice(t, 50000)
	require.NoError(t, inv.Approve())

	paidAt := time.Now().UTC()
	require.NoError(t, inv.MarkPaidInBatch("POP-1", paidAt))

	assert.Equal(t, vo.StatusPaid, inv.Status())
	assert.Equal(t, int64(0), inv.Balance().AmountInCents())
	require.NotNil(t, inv.PopRef())
	assert.Equal(t, "POP-1", *inv.PopRef())
}

func TestInvoice_MarkOverdue(t *testing.T) {
	due := time.Now().Add(-48 * time.Hour).UTC()
	inv, err := NewInvoice(testTicketID, testContractorID, "INV-2", vo.NewMoney(50000, "ZAR"), 4, vo.NewMoney(12500, "ZAR"), "d", "f.pdf", &due)
	require.NoError(t, err)
	require.NoError(t, inv.SetID(2))
	require.NoError(t, inv.Approve())

	now := time.Now().UTC()
	require.NoError(t, inv.MarkOverdue(now))
	assert.Equal(t, vo.StatusOverdue, inv.Status())

	// Idempotent under repeated scheduler runs.
	require.NoError(t, inv.MarkOverdue(now))
	assert.Equal(t, vo.StatusOverdue, inv.Status())

	// Overdue never blocks payment.
	require.NoError(t, inv.RecordPayment(vo.NewMoney(50000, "ZAR"), now))
	assert.Equal(t, vo.StatusPaid, inv.Status())
}

func TestInvoice_MarkOverdue_NotYetDue(t *testing.T) {
	due := time.Now().Add(48 * time.Hour).UTC()
	inv, err := NewInvoice(testTicketID, testContractorID, "INV-3", vo.NewMoney(50000, "ZAR"), 4, vo.NewMoney(12500, "ZAR"), "d", "f.pdf", &due)
	require.NoError(t, err)
	require.NoError(t, inv.Approve())

	assert.Error(t, inv.MarkOverdue(time.Now().UTC()))
	assert.Equal(t, vo.StatusApproved, inv.Status())
}

func TestInvoice_Cancel(t *testing.T) {
	inv := newTestInvoice(t, 50000)
	require.NoError(t, inv.Cancel("ticket cancelled"))
	assert.Equal(t, vo.StatusCancelled, inv.Status())
	assert.False(t, inv.IsActive())
}

func TestInvoice_Cancel_PaidIsImmutable(t *testing.T) {
	inv := newTestInvoice(t, 50000)
	require.NoError(t, inv.Approve())
	require.NoError(t, inv.RecordPayment(vo.NewMoney(50000, "ZAR"), time.Now().UTC()))

	err := inv.Cancel("too late")
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestReconstructInvoice_RejectsOverpaidState(t *testing.T) {
	now := time.Now().UTC()
	_, err := ReconstructInvoice(InvoiceState{
		ID:              1,
		Number:          "INV-1",
		TicketID:        testTicketID,
		ContractorID:    testContractorID,
		Status:          vo.StatusApproved,
		AmountCents:     50000,
		PaidAmountCents: 60000,
		Currency:        "ZAR",
		RevisionNumber:  1,
		IsActive:        true,
		FileRef:         "f.pdf",
		Version:         1,
		CreatedAt:       now,
		UpdatedAt:       now,
	})
	assert.Error(t, err)
}

func TestInvoice_Events(t *testing.T) {
	inv := newTestInvoice(t, 50000)
	require.NoError(t, inv.Approve())
	require.NoError(t, inv.RecordPayment(vo.NewMoney(50000, "ZAR"), time.Now().UTC()))

	evts := inv.PendingEvents()
	require.Len(t, evts, 2)
	assert.Equal(t, EventInvoiceApproved, evts[0].GetEventType())
	assert.Equal(t, EventInvoicePaid, evts[1].GetEventType())
}
