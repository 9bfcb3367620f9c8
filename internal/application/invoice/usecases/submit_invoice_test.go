package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/fieldserv-inc/fieldserv/internal/domain/invoice"
	invoicevo "github.com/fieldserv-inc/fieldserv/internal/domain/invoice/valueobjects"
	"github.com/fieldserv-inc/fieldserv/internal/domain/ticket"
	ticketvo "github.com/fieldserv-inc/fieldserv/internal/domain/ticket/valueobjects"
	apperrors "github.com/fieldserv-inc/fieldserv/internal/shared/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSubmitCommand() SubmitInvoiceCommand {
	return SubmitInvoiceCommand{
		TicketID:        testTicketID,
		ContractorID:    testContractorID,
		Number:          "INV-1",
		AmountCents:     50000,
		Currency:        invoicevo.DefaultCurrency,
		HoursWorked:     8,
		HourlyRateCents: 6250,
		Description:     "Breaker replacement and testing",
		FileRef:         "files/inv-1.pdf",
	}
}

func newSubmitUseCase(repo *mockInvoiceRepository, tickets *mockTicketReader) (*SubmitInvoiceUseCase, *mockEventDispatcher) {
	dispatcher := &mockEventDispatcher{}
	uc := NewSubmitInvoiceUseCase(repo, tickets, &mockTransactionRunner{}, newTestMarkdown(), 30, dispatcher, newTestLogger())
	return uc, dispatcher
}

func TestSubmitInvoice_FirstSubmission(t *testing.T) {
	tk := newCompletedTicket(t)
	var saved *invoice.Invoice
	repo := &mockInvoiceRepository{
		GetActiveByTicketIDFunc: func(ctx context.Context, ticketID uint) (*invoice.Invoice, error) {
			return nil, apperrors.NewNotFoundError("no active invoice")
		},
		SaveFunc: func(ctx context.Context, inv *invoice.Invoice) error {
			saved = inv
			return inv.SetID(testInvoiceID)
		},
	}
	tickets := &mockTicketReader{
		GetByIDFunc: func(ctx context.Context, id uint) (*ticket.Ticket, error) {
			return tk, nil
		},
	}
	uc, dispatcher := newSubmitUseCase(repo, tickets)

	result, err := uc.Execute(context.Background(), validSubmitCommand())

	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, testInvoiceID, result.InvoiceID)
	assert.Equal(t, "INV-1", result.Number)
	assert.Equal(t, invoicevo.StatusPending.String(), result.Status)
	assert.Equal(t, 1, result.RevisionNumber)
	assert.Nil(t, result.ParentID)
	assert.NotEmpty(t, result.DueDate)
	require.Len(t, dispatcher.Published, 1)
	assert.Equal(t, invoice.EventInvoiceSubmitted, dispatcher.Published[0].GetEventType())
}

func TestSubmitInvoice_TicketNotCompleted(t *testing.T) {
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
		Status:      ticketvo.StatusInProgress,
		RequesterID: 10,
		AssigneeID:  &contractorID,
		Location:    "Building A",
		Version:     3,
		CreatedAt:   now.Add(-24 * time.Hour),
		UpdatedAt:   now,
	})
	require.NoError(t, err)

	tickets := &mockTicketReader{
		GetByIDFunc: func(ctx context.Context, id uint) (*ticket.Ticket, error) {
			return tk, nil
		},
	}
	uc, _ := newSubmitUseCase(&mockInvoiceRepository{}, tickets)

	_, err = uc.Execute(context.Background(), validSubmitCommand())

	assert.True(t, apperrors.IsInvalidTransitionError(err))
}

func TestSubmitInvoice_WrongContractor(t *testing.T) {
	tk := newCompletedTicket(t)
	tickets := &mockTicketReader{
		GetByIDFunc: func(ctx context.Context, id uint) (*ticket.Ticket, error) {
			return tk, nil
		},
	}
	uc, _ := newSubmitUseCase(&mockInvoiceRepository{}, tickets)

	cmd := validSubmitCommand()
	cmd.ContractorID = 99

	_, err := uc.Execute(context.Background(), cmd)

	assert.True(t, apperrors.IsInvalidTransitionError(err))
}

func TestSubmitInvoice_DuplicateNumber(t *testing.T) {
	tk := newCompletedTicket(t)
	repo := &mockInvoiceRepository{
		ExistsByContractorAndNumberFunc: func(ctx context.Context, contractorID uint, number string) (bool, error) {
			return true, nil
		},
	}
	tickets := &mockTicketReader{
		GetByIDFunc: func(ctx context.Context, id uint) (*ticket.Ticket, error) {
			return tk, nil
		},
	}
	uc, _ := newSubmitUseCase(repo, tickets)

	_, err := uc.Execute(context.Background(), validSubmitCommand())

	assert.True(t, apperrors.IsConflictError(err))
}

func TestSubmitInvoice_ResubmissionSupersedesParent(t *testing.T) {
	tk := newCompletedTicket(t)
	parent := newPendingInvoice(t)
	require.NoError(t, parent.Reject("hours do not match the work description"))
	parent.ClearEvents()

	var updatedParent *invoice.Invoice
	var saved *invoice.Invoice
	repo := &mockInvoiceRepository{
		GetActiveByTicketIDFunc: func(ctx context.Context, ticketID uint) (*invoice.Invoice, error) {
			return parent, nil
		},
		UpdateFunc: func(ctx context.Context, inv *invoice.Invoice) error {
			updatedParent = inv
			return nil
		},
		SaveFunc: func(ctx context.Context, inv *invoice.Invoice) error {
			saved = inv
			return inv.SetID(testInvoiceID + 1)
		},
	}
	tickets := &mockTicketReader{
		GetByIDFunc: func(ctx context.Context, id uint) (*ticket.Ticket, error) {
			return tk, nil
		},
	}
	uc, _ := newSubmitUseCase(repo, tickets)

	cmd := validSubmitCommand()
	cmd.Number = "INV-1-R2"
	cmd.AmountCents = 45000

	result, err := uc.Execute(context.Background(), cmd)

	require.NoError(t, err)
	assert.Equal(t, 2, result.RevisionNumber)
	require.NotNil(t, result.ParentID)
	assert.Equal(t, testInvoiceID, *result.ParentID)

	require.NotNil(t, updatedParent)
	assert.False(t, updatedParent.IsActive())
	require.NotNil(t, saved)
	assert.True(t, saved.IsActive())
	assert.Equal(t, int64(45000), saved.Amount().AmountInCents())
}

func TestSubmitInvoice_ResubmissionWrongContractor(t *testing.T) {
	now := time.Now().UTC()
	otherContractor := uint(77)
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
		AssigneeID:  &otherContractor,
		Location:    "Building A",
		Version:     5,
		CreatedAt:   now.Add(-72 * time.Hour),
		UpdatedAt:   now,
	})
	require.NoError(t, err)

	parent := newPendingInvoice(t)
	require.NoError(t, parent.Reject("wrong amount"))

	repo := &mockInvoiceRepository{
		GetActiveByTicketIDFunc: func(ctx context.Context, ticketID uint) (*invoice.Invoice, error) {
			return parent, nil
		},
	}
	tickets := &mockTicketReader{
		GetByIDFunc: func(ctx context.Context, id uint) (*ticket.Ticket, error) {
			return tk, nil
		},
	}
	uc, _ := newSubmitUseCase(repo, tickets)

	cmd := validSubmitCommand()
	cmd.ContractorID = otherContractor

	_, err = uc.Execute(context.Background(), cmd)

	assert.True(t, apperrors.IsInvalidTransitionError(err))
}

func TestSubmitInvoice_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(cmd *SubmitInvoiceCommand)
	}{
		{"missing ticket", func(cmd *SubmitInvoiceCommand) { cmd.TicketID = 0 }},
		{"missing contractor", func(cmd *SubmitInvoiceCommand) { cmd.ContractorID = 0 }},
		{"missing number", func(cmd *SubmitInvoiceCommand) { cmd.Number = "" }},
		{"zero amount", func(cmd *SubmitInvoiceCommand) { cmd.AmountCents = 0 }},
		{"negative amount", func(cmd *SubmitInvoiceCommand) { cmd.AmountCents = -100 }},
		{"missing file", func(cmd *SubmitInvoiceCommand) { cmd.FileRef = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, _ := newSubmitUseCase(&mockInvoiceRepository{}, &mockTicketReader{})
			cmd := validSubmitCommand()
			tt.mutate(&cmd)

			_, err := uc.Execute(context.Background(), cmd)

			assert.True(t, apperrors.IsValidationError(err))
		})
	}
}
