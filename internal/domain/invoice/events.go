package invoice

import (
	"strconv"
	"time"

	"github.com/fieldserv-inc/fieldserv/internal/domain/shared/events"
)

const (
	EventInvoiceSubmitted = "invoice.submitted"
	EventInvoiceApproved  = "invoice.approved"
	EventInvoiceRejected  = "invoice.rejected"
	EventInvoicePaid      = "invoice.paid"
	EventInvoiceOverdue   = "invoice.overdue"
)

func base(eventType string, invoiceID uint, at time.Time) events.BaseEvent {
	return events.BaseEvent{
		AggregateID: strconv.FormatUint(uint64(invoiceID), 10),
		EventType:   eventType,
		OccurredAt:  at,
	}
}

type InvoiceSubmittedEvent struct {
	events.BaseEvent
	InvoiceID      uint
	Number         string
	TicketID       uint
	ContractorID   uint
	RevisionNumber int
	AmountCents    int64
}

func NewInvoiceSubmittedEvent(invoiceID uint, number string, ticketID, contractorID uint, revision int, amountCents int64, at time.Time) InvoiceSubmittedEvent {
	return InvoiceSubmittedEvent{
		BaseEvent:      base(EventInvoiceSubmitted, invoiceID, at),
		InvoiceID:      invoiceID,
		Number:         number,
		TicketID:       ticketID,
		ContractorID:   contractorID,
		RevisionNumber: revision,
		AmountCents:    amountCents,
	}
}

type InvoiceApprovedEvent struct {
	events.BaseEvent
	InvoiceID    uint
	Number       string
	ContractorID uint
}

func NewInvoiceApprovedEvent(invoiceID uint, number string, contractorID uint, at time.Time) InvoiceApprovedEvent {
	return InvoiceApprovedEvent{
		BaseEvent:    base(EventInvoiceApproved, invoiceID, at),
		InvoiceID:    invoiceID,
		Number:       number,
		ContractorID: contractorID,
	}
}

type InvoiceRejectedEvent struct {
	events.BaseEvent
	InvoiceID    uint
	Number       string
	ContractorID uint
	Reason       string
}

func NewInvoiceRejectedEvent(invoiceID uint, number string, contractorID uint, reason string, at time.Time) InvoiceRejectedEvent {
	return InvoiceRejectedEvent{
		BaseEvent:    base(EventInvoiceRejected, invoiceID, at),
		InvoiceID:    invoiceID,
		Number:       number,
		ContractorID: contractorID,
		Reason:       reason,
	}
}

type InvoicePaidEvent struct {
	events.BaseEvent
	InvoiceID    uint
	Number       string
	ContractorID uint
	AmountCents  int64
}

func NewInvoicePaidEvent(invoiceID uint, number string, contractorID uint, amountCents int64, at time.Time) InvoicePaidEvent {
	return InvoicePaidEvent{
		BaseEvent:    base(EventInvoicePaid, invoiceID, at),
		InvoiceID:    invoiceID,
		Number:       number,
		ContractorID: contractorID,
		AmountCents:  amountCents,
	}
}

type InvoiceOverdueEvent struct {
	events.BaseEvent
	InvoiceID    uint
	Number       string
	ContractorID uint
}

func NewInvoiceOverdueEvent(invoiceID uint, number string, contractorID uint, at time.Time) InvoiceOverdueEvent {
	return InvoiceOverdueEvent{
		BaseEvent:    base(EventInvoiceOverdue, invoiceID, at),
		InvoiceID:    invoiceID,
		Number:       number,
		ContractorID: contractorID,
	}
}
