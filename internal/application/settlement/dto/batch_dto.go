package dto

import (
	"time"

	"github.com/fieldserv-inc/fieldserv/internal/domain/settlement"
)

type BatchMemberDTO struct {
	InvoiceID     uint   `json:"invoice_id"`
	InvoiceNumber string `json:"invoice_number"`
	ContractorID  uint   `json:"contractor_id"`
	AmountCents   int64  `json:"amount_cents"`
}

// PaymentBatchDTO is the read model for settlement batches. The total is
// derived from the members on the way out.
type PaymentBatchDTO struct {
	ID           uint             `json:"id"`
	Reference    string           `json:"reference"`
	PopRef       string           `json:"pop_ref"`
	PaymentDate  string           `json:"payment_date"`
	Notes        string           `json:"notes,omitempty"`
	Members      []BatchMemberDTO `json:"members"`
	InvoiceCount int              `json:"invoice_count"`
	TotalCents   int64            `json:"total_cents"`
	Currency     string           `json:"currency"`
	TotalDisplay string           `json:"total_display,omitempty"`
	CreatedBy    uint             `json:"created_by"`
	CreatedAt    string           `json:"created_at"`
}

// MoneyFormatter renders a cent amount for display.
type MoneyFormatter func(amountInCents int64, currency string) string

func FromPaymentBatch(batch *settlement.PaymentBatch, format MoneyFormatter) *PaymentBatchDTO {
	members := batch.Members()
	memberDTOs := make([]BatchMemberDTO, 0, len(members))
	for _, m := range members {
		memberDTOs = append(memberDTOs, BatchMemberDTO{
			InvoiceID:     m.InvoiceID,
			InvoiceNumber: m.InvoiceNumber,
			ContractorID:  m.ContractorID,
			AmountCents:   m.AmountCents,
		})
	}

	total := batch.TotalAmount()
	d := &PaymentBatchDTO{
		ID:           batch.ID(),
		Reference:    batch.Reference(),
		PopRef:       batch.PopRef(),
		PaymentDate:  batch.PaymentDate().Format(time.RFC3339),
		Notes:        batch.Notes(),
		Members:      memberDTOs,
		InvoiceCount: len(members),
		TotalCents:   total.AmountInCents(),
		Currency:     batch.Currency(),
		CreatedBy:    batch.CreatedBy(),
		CreatedAt:    batch.CreatedAt().Format(time.RFC3339),
	}

	if format != nil {
		d.TotalDisplay = format(d.TotalCents, d.Currency)
	}

	return d
}

func FromPaymentBatches(batches []*settlement.PaymentBatch, format MoneyFormatter) []*PaymentBatchDTO {
	out := make([]*PaymentBatchDTO, 0, len(batches))
	for _, b := range batches {
		out = append(out, FromPaymentBatch(b, format))
	}
	return out
}
