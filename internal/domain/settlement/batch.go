package settlement

import (
	"fmt"
	"time"

	invoicevo "github.com/fieldserv-inc/fieldserv/internal/domain/invoice/valueobjects"
	"github.com/fieldserv-inc/fieldserv/internal/domain/shared/events"
)

// BatchMember is one invoice settled by a batch, captured with the amount at
// settlement time.
type BatchMember struct {
	InvoiceID     uint
	InvoiceNumber string
	ContractorID  uint
	AmountCents   int64
}

// PaymentBatch settles a set of payable invoices under a single proof of
// payment reference. A batch is written once together with its invoice
// updates; it has no lifecycle of its own.
type PaymentBatch struct {
	id          uint
	reference   string
	popRef      string
	paymentDate time.Time
	notes       string

	members  []BatchMember
	currency string

	createdBy uint
	createdAt time.Time

	pendingEvents []events.DomainEvent
}

// NewPaymentBatch builds a batch from already validated members. The caller
// loads each invoice, verifies it is payable, and passes its settlement
// amount here; the batch total is derived from the members, never supplied.
func NewPaymentBatch(
	reference string,
	popRef string,
	paymentDate time.Time,
	notes string,
	createdBy uint,
	currency string,
	members []BatchMember,
) (*PaymentBatch, error) {
	if len(reference) == 0 {
		return nil, fmt.Errorf("batch reference is required")
	}
	if len(popRef) == 0 {
		return nil, fmt.Errorf("proof of payment reference is required")
	}
	if paymentDate.IsZero() {
		return nil, fmt.Errorf("payment date is required")
	}
	if createdBy == 0 {
		return nil, fmt.Errorf("creator ID is required")
	}
	if len(members) == 0 {
		return nil, fmt.Errorf("batch must contain at least one invoice")
	}
	if currency == "" {
		currency = invoicevo.DefaultCurrency
	}

	seen := make(map[uint]bool, len(members))
	for _, m := range members {
		if m.InvoiceID == 0 {
			return nil, fmt.Errorf("batch member invoice ID is required")
		}
		if seen[m.InvoiceID] {
			return nil, fmt.Errorf("invoice %d appears more than once in batch", m.InvoiceID)
		}
		seen[m.InvoiceID] = true
		if m.AmountCents <= 0 {
			return nil, fmt.Errorf("batch member amount must be positive (invoice %d)", m.InvoiceID)
		}
	}

	batch := &PaymentBatch{
		reference:   reference,
		popRef:      popRef,
		paymentDate: paymentDate.UTC(),
		notes:       notes,
		members:     members,
		currency:    currency,
		createdBy:   createdBy,
		createdAt:   time.Now().UTC(),
	}

	return batch, nil
}

// PaymentBatchState carries persisted fields for rehydration.
type PaymentBatchState struct {
	ID          uint
	Reference   string
	PopRef      string
	PaymentDate time.Time
	Notes       string
	Members     []BatchMember
	Currency    string
	CreatedBy   uint
	CreatedAt   time.Time
}

func ReconstructPaymentBatch(s PaymentBatchState) (*PaymentBatch, error) {
	if s.ID == 0 {
		return nil, fmt.Errorf("batch ID cannot be zero")
	}
	if len(s.Members) == 0 {
		return nil, fmt.Errorf("batch %d has no members", s.ID)
	}

	return &PaymentBatch{
		id:          s.ID,
		reference:   s.Reference,
		popRef:      s.PopRef,
		paymentDate: s.PaymentDate,
		notes:       s.Notes,
		members:     s.Members,
		currency:    s.Currency,
		createdBy:   s.CreatedBy,
		createdAt:   s.CreatedAt,
	}, nil
}

func (b *PaymentBatch) ID() uint               { return b.id }
func (b *PaymentBatch) Reference() string      { return b.reference }
func (b *PaymentBatch) PopRef() string         { return b.popRef }
func (b *PaymentBatch) PaymentDate() time.Time { return b.paymentDate }
func (b *PaymentBatch) Notes() string          { return b.notes }
func (b *PaymentBatch) Currency() string       { return b.currency }
func (b *PaymentBatch) CreatedBy() uint        { return b.createdBy }
func (b *PaymentBatch) CreatedAt() time.Time   { return b.createdAt }

func (b *PaymentBatch) Members() []BatchMember {
	out := make([]BatchMember, len(b.members))
	copy(out, b.members)
	return out
}

func (b *PaymentBatch) InvoiceIDs() []uint {
	ids := make([]uint, 0, len(b.members))
	for _, m := range b.members {
		ids = append(ids, m.InvoiceID)
	}
	return ids
}

// TotalAmount is always derived from the members.
func (b *PaymentBatch) TotalAmount() invoicevo.Money {
	var total int64
	for _, m := range b.members {
		total += m.AmountCents
	}
	return invoicevo.NewMoney(total, b.currency)
}

func (b *PaymentBatch) SetID(id uint) error {
	if b.id != 0 {
		return fmt.Errorf("batch ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("batch ID cannot be zero")
	}
	b.id = id
	return nil
}

func (b *PaymentBatch) PendingEvents() []events.DomainEvent {
	out := make([]events.DomainEvent, len(b.pendingEvents))
	copy(out, b.pendingEvents)
	return out
}

func (b *PaymentBatch) ClearEvents() {
	b.pendingEvents = nil
}

// RecordCreated queues the creation event once the ID is known.
func (b *PaymentBatch) RecordCreated() {
	b.record(NewPaymentBatchCreatedEvent(b.id, b.reference, b.popRef, len(b.members), b.TotalAmount().AmountInCents(), time.Now().UTC()))
}

func (b *PaymentBatch) record(event events.DomainEvent) {
	b.pendingEvents = append(b.pendingEvents, event)
}
