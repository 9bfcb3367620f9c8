package settlement

import (
	"strconv"
	"time"

	"github.com/fieldserv-inc/fieldserv/internal/domain/shared/events"
)

const EventPaymentBatchCreated = "settlement.batch_created"

type PaymentBatchCreatedEvent struct {
	events.BaseEvent
	BatchID      uint
	Reference    string
	PopRef       string
	InvoiceCount int
	TotalCents   int64
}

func NewPaymentBatchCreatedEvent(batchID uint, reference, popRef string, invoiceCount int, totalCents int64, at time.Time) PaymentBatchCreatedEvent {
	return PaymentBatchCreatedEvent{
		BaseEvent: events.BaseEvent{
			AggregateID: strconv.FormatUint(uint64(batchID), 10),
			EventType:   EventPaymentBatchCreated,
			OccurredAt:  at,
		},
		BatchID:      batchID,
		Reference:    reference,
		PopRef:       popRef,
		InvoiceCount: invoiceCount,
		TotalCents:   totalCents,
	}
}
