package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/fieldserv-inc/fieldserv/internal/domain/invoice"
	invoicevo "github.com/fieldserv-inc/fieldserv/internal/domain/invoice/valueobjects"
	"github.com/fieldserv-inc/fieldserv/internal/domain/ticket"
	ticketvo "github.com/fieldserv-inc/fieldserv/internal/domain/ticket/valueobjects"
	"github.com/stretchr/testify/require"
)

const (
	testTicketID     uint = 1
	testContractorID uint = 20
	testAdminID      uint = 30
	testInvoiceID    uint = 100
)

func newCompletedTicket(t *testing.T) *ticket.Ticket {
	t.Helper()

	now := time.Now().UTC()
	contractorID := testContractorID
	tk, err := ticket.ReconstructTicket(ticket.TicketState{
		ID:          testTicketID,
		Number:      "TKT-20260828-0001",
		TenantID:    1,
		Title:       "Replace faulty breaker",
		Description: "Main panel breaker trips under load",
		Category:    ticketvo.CategoryElectrical,
		Priority:    ticketvo.PriorityHigh,
		Status:      ticketvo.StatusCompleted,
		RequesterID: 10,
		AssigneeID:  &contractorID,
		Location:    "Building A",
		Version:     5,
		CreatedAt:   now.Add(-72 * time.Hour),
		UpdatedAt:   now,
	})
	require.NoError(t, err)
	return tk
}

func newPendingInvoice(t *testing.T) *invoice.Invoice {
	t.Helper()

	inv, err := invoice.NewInvoice(
		testTicketID,
		testContractorID,
		"INV-1",
		invoicevo.NewMoney(50000, invoicevo.DefaultCurrency),
		8,
		invoicevo.NewMoney(6250, invoicevo.DefaultCurrency),
		"Breaker replacement and testing",
		"files/inv-1.pdf",
		nil,
	)
	require.NoError(t, err)
	require.NoError(t, inv.SetID(testInvoiceID))
	inv.ClearEvents()
	return inv
}

func newApprovedInvoice(t *testing.T) *invoice.Invoice {
	t.Helper()

	inv := newPendingInvoice(t)
	require.NoError(t, inv.Approve())
	inv.ClearEvents()
	return inv
}

func invoiceRepoReturning(inv *invoice.Invoice) *mockInvoiceRepository {
	return &mockInvoiceRepository{
		GetByIDFunc: func(ctx context.Context, id uint) (*invoice.Invoice, error) {
			return inv, nil
		},
	}
}
