package notification

import (
	"fmt"

	"github.com/fieldserv-inc/fieldserv/internal/domain/invoice"
	invoicevo "github.com/fieldserv-inc/fieldserv/internal/domain/invoice/valueobjects"
	"github.com/fieldserv-inc/fieldserv/internal/domain/rating"
	"github.com/fieldserv-inc/fieldserv/internal/domain/settlement"
	"github.com/fieldserv-inc/fieldserv/internal/domain/shared/events"
	"github.com/fieldserv-inc/fieldserv/internal/domain/ticket"
	"github.com/fieldserv-inc/fieldserv/internal/shared/logger"
	"github.com/fieldserv-inc/fieldserv/internal/shared/services/markdown"
	"github.com/fieldserv-inc/fieldserv/internal/shared/utils"
)

// Notifier turns domain events into user-facing notification messages. The
// message body is composed as markdown and rendered to sanitized HTML, which
// is what the delivery channel (in-app feed) stores. Delivery itself is
// currently a structured log line; the composition path is the contract.
type Notifier struct {
	md     markdown.Service
	logger logger.Interface
}

func NewNotifier(md markdown.Service, log logger.Interface) *Notifier {
	return &Notifier{
		md:     md,
		logger: log,
	}
}

// handledEvents lists every event type the notifier composes a message for.
var handledEvents = map[string]bool{
	ticket.EventTicketAssigned:     true,
	ticket.EventTicketAccepted:     true,
	ticket.EventAssignmentRejected: true,
	ticket.EventWorkRejected:       true,
	ticket.EventTicketCompleted:    true,
	ticket.EventTicketCancelled:    true,

	invoice.EventInvoiceSubmitted: true,
	invoice.EventInvoiceApproved:  true,
	invoice.EventInvoiceRejected:  true,
	invoice.EventInvoicePaid:      true,
	invoice.EventInvoiceOverdue:   true,

	settlement.EventPaymentBatchCreated: true,
	rating.EventRatingSubmitted:         true,
}

func (n *Notifier) CanHandle(eventType string) bool {
	return handledEvents[eventType]
}

func (n *Notifier) Handle(event events.DomainEvent) error {
	recipient, message := n.compose(event)
	if message == "" {
		return nil
	}

	html, err := n.md.ToHTMLSanitized(message)
	if err != nil {
		return fmt.Errorf("failed to render notification: %w", err)
	}

	n.logger.Infow("notification dispatched",
		"event_type", event.GetEventType(),
		"aggregate_id", event.GetAggregateID(),
		"recipient_id", recipient,
		"body", html,
	)

	return nil
}

// compose returns the recipient user ID and the markdown message body. An
// empty body means the event carries nothing worth notifying.
func (n *Notifier) compose(event events.DomainEvent) (uint, string) {
	switch e := event.(type) {
	case ticket.TicketAssignedEvent:
		return e.AssigneeID, fmt.Sprintf("You have been assigned ticket **%s**.", e.Number)
	case ticket.TicketAcceptedEvent:
		return 0, fmt.Sprintf("Ticket **%s** was accepted by the contractor.", e.Number)
	case ticket.AssignmentRejectedEvent:
		return 0, fmt.Sprintf("Ticket **%s** assignment was declined: %s", e.Number, e.Reason)
	case ticket.WorkRejectedEvent:
		return e.ContractorID, fmt.Sprintf("Work on ticket **%s** was rejected: %s", e.Number, e.Reason)
	case ticket.TicketCompletedEvent:
		return 0, fmt.Sprintf("Ticket **%s** is complete. The requester can now rate and close it.", e.Number)
	case ticket.TicketCancelledEvent:
		return 0, fmt.Sprintf("Ticket **%s** was cancelled: %s", e.Number, e.Reason)

	case invoice.InvoiceSubmittedEvent:
		return 0, fmt.Sprintf("Invoice **%s** (revision %d) submitted for %s.",
			e.Number, e.RevisionNumber, utils.FormatCents(e.AmountCents, invoicevo.DefaultCurrency))
	case invoice.InvoiceApprovedEvent:
		return e.ContractorID, fmt.Sprintf("Invoice **%s** was approved.", e.Number)
	case invoice.InvoiceRejectedEvent:
		return e.ContractorID, fmt.Sprintf("Invoice **%s** was rejected: %s", e.Number, e.Reason)
	case invoice.InvoicePaidEvent:
		return e.ContractorID, fmt.Sprintf("Invoice **%s** has been paid in full.", e.Number)
	case invoice.InvoiceOverdueEvent:
		return 0, fmt.Sprintf("Invoice **%s** is past its payment due date.", e.Number)

	case settlement.PaymentBatchCreatedEvent:
		return 0, fmt.Sprintf("Payment batch **%s** settled %d invoice(s) for %s.",
			e.Reference, e.InvoiceCount, utils.FormatCents(e.TotalCents, invoicevo.DefaultCurrency))
	case rating.RatingSubmittedEvent:
		return e.ContractorID, fmt.Sprintf("You received a %d-star rating on a completed job.", e.Stars)
	}

	return 0, ""
}

// Register subscribes the notifier to every event type it handles.
func (n *Notifier) Register(dispatcher events.EventDispatcher) error {
	for eventType := range handledEvents {
		if err := dispatcher.Subscribe(eventType, n); err != nil {
			return fmt.Errorf("failed to subscribe notifier to %s: %w", eventType, err)
		}
	}
	return nil
}
