package ticket

import (
	"strconv"
	"time"

	"github.com/fieldserv-inc/fieldserv/internal/domain/shared/events"
)

const (
	EventTicketAssigned          = "ticket.assigned"
	EventTicketAccepted          = "ticket.accepted"
	EventAssignmentRejected      = "ticket.assignment_rejected"
	EventWorkDescriptionSubmitted = "ticket.work_description_submitted"
	EventWorkRejected            = "ticket.work_rejected"
	EventTicketCompleted         = "ticket.completed"
	EventTicketClosed            = "ticket.closed"
	EventTicketCancelled         = "ticket.cancelled"
)

func base(eventType string, ticketID uint, at time.Time) events.BaseEvent {
	return events.BaseEvent{
		AggregateID: strconv.FormatUint(uint64(ticketID), 10),
		EventType:   eventType,
		OccurredAt:  at,
	}
}

type TicketAssignedEvent struct {
	events.BaseEvent
	TicketID   uint
	Number     string
	AssigneeID uint
	AssignedBy uint
}

func NewTicketAssignedEvent(ticketID uint, number string, assigneeID, assignedBy uint, at time.Time) TicketAssignedEvent {
	return TicketAssignedEvent{
		BaseEvent:  base(EventTicketAssigned, ticketID, at),
		TicketID:   ticketID,
		Number:     number,
		AssigneeID: assigneeID,
		AssignedBy: assignedBy,
	}
}

type TicketAcceptedEvent struct {
	events.BaseEvent
	TicketID     uint
	Number       string
	ContractorID uint
}

func NewTicketAcceptedEvent(ticketID uint, number string, contractorID uint, at time.Time) TicketAcceptedEvent {
	return TicketAcceptedEvent{
		BaseEvent:    base(EventTicketAccepted, ticketID, at),
		TicketID:     ticketID,
		Number:       number,
		ContractorID: contractorID,
	}
}

type AssignmentRejectedEvent struct {
	events.BaseEvent
	TicketID   uint
	Number     string
	RejectedBy uint
	Reason     string
}

func NewAssignmentRejectedEvent(ticketID uint, number string, rejectedBy uint, reason string, at time.Time) AssignmentRejectedEvent {
	return AssignmentRejectedEvent{
		BaseEvent:  base(EventAssignmentRejected, ticketID, at),
		TicketID:   ticketID,
		Number:     number,
		RejectedBy: rejectedBy,
		Reason:     reason,
	}
}

type WorkDescriptionSubmittedEvent struct {
	events.BaseEvent
	TicketID     uint
	Number       string
	ContractorID uint
}

func NewWorkDescriptionSubmittedEvent(ticketID uint, number string, contractorID uint, at time.Time) WorkDescriptionSubmittedEvent {
	return WorkDescriptionSubmittedEvent{
		BaseEvent:    base(EventWorkDescriptionSubmitted, ticketID, at),
		TicketID:     ticketID,
		Number:       number,
		ContractorID: contractorID,
	}
}

type WorkRejectedEvent struct {
	events.BaseEvent
	TicketID     uint
	Number       string
	ContractorID uint
	Reason       string
}

func NewWorkRejectedEvent(ticketID uint, number string, contractorID uint, reason string, at time.Time) WorkRejectedEvent {
	return WorkRejectedEvent{
		BaseEvent:    base(EventWorkRejected, ticketID, at),
		TicketID:     ticketID,
		Number:       number,
		ContractorID: contractorID,
		Reason:       reason,
	}
}

type TicketCompletedEvent struct {
	events.BaseEvent
	TicketID     uint
	Number       string
	ContractorID uint
}

func NewTicketCompletedEvent(ticketID uint, number string, contractorID uint, at time.Time) TicketCompletedEvent {
	return TicketCompletedEvent{
		BaseEvent:    base(EventTicketCompleted, ticketID, at),
		TicketID:     ticketID,
		Number:       number,
		ContractorID: contractorID,
	}
}

type TicketClosedEvent struct {
	events.BaseEvent
	TicketID uint
	Number   string
}

func NewTicketClosedEvent(ticketID uint, number string, at time.Time) TicketClosedEvent {
	return TicketClosedEvent{
		BaseEvent: base(EventTicketClosed, ticketID, at),
		TicketID:  ticketID,
		Number:    number,
	}
}

type TicketCancelledEvent struct {
	events.BaseEvent
	TicketID uint
	Number   string
	Reason   string
}

func NewTicketCancelledEvent(ticketID uint, number string, reason string, at time.Time) TicketCancelledEvent {
	return TicketCancelledEvent{
		BaseEvent: base(EventTicketCancelled, ticketID, at),
		TicketID:  ticketID,
		Number:    number,
		Reason:    reason,
	}
}
