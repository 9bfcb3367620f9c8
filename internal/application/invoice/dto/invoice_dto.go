package dto

import (
	"time"

	"github.com/fieldserv-inc/fieldserv/internal/domain/invoice"
)

// InvoiceDTO is the read model returned by get/list operations. Balance is
// derived on the way out, never read from storage.
type InvoiceDTO struct {
	ID           uint   `json:"id"`
	Number       string `json:"number"`
	TicketID     uint   `json:"ticket_id"`
	ContractorID uint   `json:"contractor_id"`
	Status       string `json:"status"`

	AmountCents     int64  `json:"amount_cents"`
	PaidAmountCents int64  `json:"paid_amount_cents"`
	BalanceCents    int64  `json:"balance_cents"`
	Currency        string `json:"currency"`
	AmountDisplay   string `json:"amount_display"`
	BalanceDisplay  string `json:"balance_display"`

	HoursWorked     float64 `json:"hours_worked"`
	HourlyRateCents int64   `json:"hourly_rate_cents"`
	Description     string  `json:"description,omitempty"`

	RejectionReason       string `json:"rejection_reason,omitempty"`
	ClarificationRequest  string `json:"clarification_request,omitempty"`
	ClarificationResponse string `json:"clarification_response,omitempty"`
	CancelReason          string `json:"cancel_reason,omitempty"`

	RevisionNumber int   `json:"revision_number"`
	IsActive       bool  `json:"is_active"`
	ParentID       *uint `json:"parent_id,omitempty"`

	FileRef  string  `json:"file_ref"`
	PopRef   *string `json:"pop_ref,omitempty"`
	PaidDate *string `json:"paid_date,omitempty"`
	DueDate  *string `json:"due_date,omitempty"`

	Version   int    `json:"version"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// MoneyFormatter renders a cent amount for display.
type MoneyFormatter func(amountInCents int64, currency string) string

// FromInvoice maps the aggregate onto the read model.
func FromInvoice(inv *invoice.Invoice, format MoneyFormatter) *InvoiceDTO {
	balance := inv.Balance()

	d := &InvoiceDTO{
		ID:           inv.ID(),
		Number:       inv.Number(),
		TicketID:     inv.TicketID(),
		ContractorID: inv.ContractorID(),
		Status:       inv.Status().String(),

		AmountCents:     inv.Amount().AmountInCents(),
		PaidAmountCents: inv.PaidAmount().AmountInCents(),
		BalanceCents:    balance.AmountInCents(),
		Currency:        inv.Amount().Currency(),

		HoursWorked:     inv.HoursWorked(),
		HourlyRateCents: inv.HourlyRate().AmountInCents(),
		Description:     inv.Description(),

		RejectionReason:       inv.RejectionReason(),
		ClarificationRequest:  inv.ClarificationRequest(),
		ClarificationResponse: inv.ClarificationResponse(),
		CancelReason:          inv.CancelReason(),

		RevisionNumber: inv.RevisionNumber(),
		IsActive:       inv.IsActive(),
		ParentID:       inv.ParentID(),

		FileRef:  inv.FileRef(),
		PopRef:   inv.PopRef(),
		PaidDate: formatTimePtr(inv.PaidDate()),
		DueDate:  formatTimePtr(inv.DueDate()),

		Version:   inv.Version(),
		CreatedAt: inv.CreatedAt().Format(time.RFC3339),
		UpdatedAt: inv.UpdatedAt().Format(time.RFC3339),
	}

	if format != nil {
		d.AmountDisplay = format(d.AmountCents, d.Currency)
		d.BalanceDisplay = format(d.BalanceCents, d.Currency)
	}

	return d
}

// FromInvoices maps a list result.
func FromInvoices(invoices []*invoice.Invoice, format MoneyFormatter) []*InvoiceDTO {
	out := make([]*InvoiceDTO, 0, len(invoices))
	for _, inv := range invoices {
		out = append(out, FromInvoice(inv, format))
	}
	return out
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}
