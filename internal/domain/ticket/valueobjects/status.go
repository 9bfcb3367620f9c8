package valueobjects

import "fmt"

type TicketStatus string

const (
	StatusOpen                 TicketStatus = "open"
	StatusProcessing           TicketStatus = "processing"
	StatusAccepted             TicketStatus = "accepted"
	StatusOnSite               TicketStatus = "on_site"
	StatusInProgress           TicketStatus = "in_progress"
	StatusAwaitingDescription  TicketStatus = "awaiting_description"
	StatusAwaitingWorkApproval TicketStatus = "awaiting_work_approval"
	StatusCompleted            TicketStatus = "completed"
	StatusClosed               TicketStatus = "closed"
	StatusCancelled            TicketStatus = "cancelled"
)

var validTicketStatuses = map[TicketStatus]bool{
	StatusOpen:                 true,
	StatusProcessing:           true,
	StatusAccepted:             true,
	StatusOnSite:               true,
	StatusInProgress:           true,
	StatusAwaitingDescription:  true,
	StatusAwaitingWorkApproval: true,
	StatusCompleted:            true,
	StatusClosed:               true,
	StatusCancelled:            true,
}

// ticketStatusTransitions is the complete edge set of the engagement state
// machine. Anything not listed here is rejected, regardless of actor.
var ticketStatusTransitions = map[TicketStatus][]TicketStatus{
	StatusOpen: {
		StatusProcessing,
		StatusCancelled,
	},
	StatusProcessing: {
		StatusAccepted,
		StatusOpen,
		StatusCancelled,
	},
	StatusAccepted: {
		StatusOnSite,
	},
	StatusOnSite: {
		StatusInProgress,
		StatusAwaitingDescription,
	},
	StatusInProgress: {
		StatusAwaitingDescription,
	},
	StatusAwaitingDescription: {
		StatusAwaitingWorkApproval,
	},
	StatusAwaitingWorkApproval: {
		StatusCompleted,
		StatusAwaitingDescription,
	},
	StatusCompleted: {
		StatusClosed,
	},
}

// statusesRequiringAssignee lists every status in which the ticket must carry
// a non-nil assigned contractor.
var statusesRequiringAssignee = map[TicketStatus]bool{
	StatusAccepted:             true,
	StatusOnSite:               true,
	StatusInProgress:           true,
	StatusAwaitingDescription:  true,
	StatusAwaitingWorkApproval: true,
	StatusCompleted:            true,
}

func (ts TicketStatus) String() string {
	return string(ts)
}

func (ts TicketStatus) IsValid() bool {
	return validTicketStatuses[ts]
}

func (ts TicketStatus) CanTransitionTo(newStatus TicketStatus) bool {
	allowed, ok := ticketStatusTransitions[ts]
	if !ok {
		return false
	}

	for _, s := range allowed {
		if s == newStatus {
			return true
		}
	}
	return false
}

// RequiresAssignee reports whether a ticket in this status must have an
// assigned contractor.
func (ts TicketStatus) RequiresAssignee() bool {
	return statusesRequiringAssignee[ts]
}

// IsTerminal reports whether the status ends the lifecycle. Terminal tickets
// are retained, never deleted.
func (ts TicketStatus) IsTerminal() bool {
	return ts == StatusClosed || ts == StatusCancelled
}

func (ts TicketStatus) IsOpen() bool       { return ts == StatusOpen }
func (ts TicketStatus) IsProcessing() bool { return ts == StatusProcessing }
func (ts TicketStatus) IsCompleted() bool  { return ts == StatusCompleted }
func (ts TicketStatus) IsClosed() bool     { return ts == StatusClosed }
func (ts TicketStatus) IsCancelled() bool  { return ts == StatusCancelled }

// IsCompletedOrLater reports whether the ticket has passed work approval.
// Invoices may only exist from this point onward.
func (ts TicketStatus) IsCompletedOrLater() bool {
	return ts == StatusCompleted || ts == StatusClosed
}

func NewTicketStatus(s string) (TicketStatus, error) {
	ts := TicketStatus(s)
	if !ts.IsValid() {
		return "", fmt.Errorf("invalid ticket status: %s", s)
	}
	return ts, nil
}
