package invoice

import (
	"errors"
	"fmt"
	"time"

	"github.com/fieldserv-inc/fieldserv/internal/domain/shared/events"
	vo "github.com/fieldserv-inc/fieldserv/internal/domain/invoice/valueobjects"
)

// ErrInvalidTransition marks invoice status guard failures.
var ErrInvalidTransition = errors.New("invalid transition")

// Invoice is a contractor's claim for payment against one completed ticket.
// Balance is always derived from amount and paidAmount; it is never stored or
// mutated directly. Rejected invoices are superseded by revisions, not edited.
type Invoice struct {
	id           uint
	number       string
	ticketID     uint
	contractorID uint
	status       vo.InvoiceStatus

	amount     vo.Money
	paidAmount vo.Money

	hoursWorked float64
	hourlyRate  vo.Money
	description string

	rejectionReason       string
	clarificationRequest  string
	clarificationResponse string
	cancelReason          string

	revisionNumber int
	isActive       bool
	parentID       *uint

	fileRef  string
	popRef   *string
	paidDate *time.Time
	dueDate  *time.Time

	version   int
	createdAt time.Time
	updatedAt time.Time

	pendingEvents []events.DomainEvent
}

// NewInvoice creates a first-revision invoice in PENDING. The caller is
// responsible for checking the ticket is completed and no other active
// invoice exists for it.
func NewInvoice(
	ticketID uint,
	contractorID uint,
	number string,
	amount vo.Money,
	hoursWorked float64,
	hourlyRate vo.Money,
	description string,
	fileRef string,
	dueDate *time.Time,
) (*Invoice, error) {
	if ticketID == 0 {
		return nil, fmt.Errorf("ticket ID is required")
	}
	if contractorID == 0 {
		return nil, fmt.Errorf("contractor ID is required")
	}
	if len(number) == 0 {
		return nil, fmt.Errorf("invoice number is required")
	}
	if !amount.IsPositive() {
		return nil, fmt.Errorf("amount must be positive")
	}
	if len(fileRef) == 0 {
		return nil, fmt.Errorf("invoice file reference is required")
	}

	now := time.Now().UTC()

	inv := &Invoice{
		number:         number,
		ticketID:       ticketID,
		contractorID:   contractorID,
		status:         vo.StatusPending,
		amount:         amount,
		paidAmount:     vo.Zero(amount.Currency()),
		hoursWorked:    hoursWorked,
		hourlyRate:     hourlyRate,
		description:    description,
		revisionNumber: 1,
		isActive:       true,
		fileRef:        fileRef,
		dueDate:        dueDate,
		version:        1,
		createdAt:      now,
		updatedAt:      now,
	}

	return inv, nil
}

// NewRevisionOf creates a resubmission superseding a rejected invoice. The
// parent must already be rejected; its isActive flag is flipped off by
// Supersede in the same unit of work.
func NewRevisionOf(
	parent *Invoice,
	number string,
	amount vo.Money,
	hoursWorked float64,
	hourlyRate vo.Money,
	description string,
	fileRef string,
	dueDate *time.Time,
) (*Invoice, error) {
	if parent == nil {
		return nil, fmt.Errorf("parent invoice is required")
	}
	if !parent.status.IsRejected() {
		return nil, fmt.Errorf("%w: only rejected invoices can be resubmitted, parent status %s", ErrInvalidTransition, parent.status)
	}

	inv, err := NewInvoice(parent.ticketID, parent.contractorID, number, amount, hoursWorked, hourlyRate, description, fileRef, dueDate)
	if err != nil {
		return nil, err
	}

	parentID := parent.id
	inv.parentID = &parentID
	inv.revisionNumber = parent.revisionNumber + 1
	return inv, nil
}

// InvoiceState carries persisted fields for rehydration.
type InvoiceState struct {
	ID           uint
	Number       string
	TicketID     uint
	ContractorID uint
	Status       vo.InvoiceStatus

	AmountCents     int64
	PaidAmountCents int64
	Currency        string

	HoursWorked     float64
	HourlyRateCents int64
	Description     string

	RejectionReason       string
	ClarificationRequest  string
	ClarificationResponse string
	CancelReason          string

	RevisionNumber int
	IsActive       bool
	ParentID       *uint

	FileRef  string
	PopRef   *string
	PaidDate *time.Time
	DueDate  *time.Time

	Version   int
	CreatedAt time.Time
	UpdatedAt time.Time
}

func ReconstructInvoice(s InvoiceState) (*Invoice, error) {
	if s.ID == 0 {
		return nil, fmt.Errorf("invoice ID cannot be zero")
	}
	if !s.Status.IsValid() {
		return nil, fmt.Errorf("invalid invoice status: %s", s.Status)
	}
	if s.PaidAmountCents > s.AmountCents {
		return nil, fmt.Errorf("paid amount exceeds invoice amount (id=%d)", s.ID)
	}

	return &Invoice{
		id:           s.ID,
		number:       s.Number,
		ticketID:     s.TicketID,
		contractorID: s.ContractorID,
		status:       s.Status,

		amount:     vo.NewMoney(s.AmountCents, s.Currency),
		paidAmount: vo.NewMoney(s.PaidAmountCents, s.Currency),

		hoursWorked: s.HoursWorked,
		hourlyRate:  vo.NewMoney(s.HourlyRateCents, s.Currency),
		description: s.Description,

		rejectionReason:       s.RejectionReason,
		clarificationRequest:  s.ClarificationRequest,
		clarificationResponse: s.ClarificationResponse,
		cancelReason:          s.CancelReason,

		revisionNumber: s.RevisionNumber,
		isActive:       s.IsActive,
		parentID:       s.ParentID,

		fileRef:  s.FileRef,
		popRef:   s.PopRef,
		paidDate: s.PaidDate,
		dueDate:  s.DueDate,

		version:   s.Version,
		createdAt: s.CreatedAt,
		updatedAt: s.UpdatedAt,
	}, nil
}

func (i *Invoice) ID() uint                 { return i.id }
func (i *Invoice) Number() string           { return i.number }
func (i *Invoice) TicketID() uint           { return i.ticketID }
func (i *Invoice) ContractorID() uint       { return i.contractorID }
func (i *Invoice) Status() vo.InvoiceStatus { return i.status }
func (i *Invoice) Amount() vo.Money         { return i.amount }
func (i *Invoice) PaidAmount() vo.Money     { return i.paidAmount }
func (i *Invoice) HoursWorked() float64     { return i.hoursWorked }
func (i *Invoice) HourlyRate() vo.Money     { return i.hourlyRate }
func (i *Invoice) Description() string      { return i.description }

func (i *Invoice) RejectionReason() string       { return i.rejectionReason }
func (i *Invoice) ClarificationRequest() string  { return i.clarificationRequest }
func (i *Invoice) ClarificationResponse() string { return i.clarificationResponse }
func (i *Invoice) CancelReason() string          { return i.cancelReason }

func (i *Invoice) RevisionNumber() int { return i.revisionNumber }
func (i *Invoice) IsActive() bool      { return i.isActive }
func (i *Invoice) ParentID() *uint     { return i.parentID }

func (i *Invoice) FileRef() string      { return i.fileRef }
func (i *Invoice) PopRef() *string      { return i.popRef }
func (i *Invoice) PaidDate() *time.Time { return i.paidDate }
func (i *Invoice) DueDate() *time.Time  { return i.dueDate }

func (i *Invoice) Version() int         { return i.version }
func (i *Invoice) CreatedAt() time.Time { return i.createdAt }
func (i *Invoice) UpdatedAt() time.Time { return i.updatedAt }

// Balance is always computed, never stored.
func (i *Invoice) Balance() vo.Money {
	balance, _ := i.amount.Sub(i.paidAmount)
	return balance
}

func (i *Invoice) PendingEvents() []events.DomainEvent {
	out := make([]events.DomainEvent, len(i.pendingEvents))
	copy(out, i.pendingEvents)
	return out
}

func (i *Invoice) ClearEvents() {
	i.pendingEvents = nil
}

func (i *Invoice) SetID(id uint) error {
	if i.id != 0 {
		return fmt.Errorf("invoice ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("invoice ID cannot be zero")
	}
	i.id = id
	return nil
}

// RequestClarification stores an admin question on a pending invoice without
// changing its status.
func (i *Invoice) RequestClarification(request string) error {
	if !i.status.IsPending() {
		return fmt.Errorf("%w: clarification can only be requested on pending invoices, current status %s", ErrInvalidTransition, i.status)
	}
	if len(request) == 0 {
		return fmt.Errorf("clarification request is required")
	}

	i.clarificationRequest = request
	i.clarificationResponse = ""
	i.touch()
	return nil
}

// RespondToClarification stores the contractor's answer; status unchanged.
func (i *Invoice) RespondToClarification(contractorID uint, response string) error {
	if contractorID != i.contractorID {
		return fmt.Errorf("%w: actor is not the invoice contractor", ErrInvalidTransition)
	}
	if !i.status.IsPending() {
		return fmt.Errorf("%w: clarification response only applies to pending invoices, current status %s", ErrInvalidTransition, i.status)
	}
	if len(i.clarificationRequest) == 0 {
		return fmt.Errorf("no clarification has been requested")
	}
	if len(response) == 0 {
		return fmt.Errorf("clarification response is required")
	}

	i.clarificationResponse = response
	i.touch()
	return nil
}

// Approve moves PENDING -> APPROVED.
func (i *Invoice) Approve() error {
	if !i.status.CanTransitionTo(vo.StatusApproved) {
		return fmt.Errorf("%w: cannot approve invoice in status %s", ErrInvalidTransition, i.status)
	}

	i.status = vo.StatusApproved
	i.touch()

	i.record(NewInvoiceApprovedEvent(i.id, i.number, i.contractorID, time.Now().UTC()))
	return nil
}

// Reject moves PENDING -> REJECTED with a mandatory reason. The contractor
// may then submit a revision.
func (i *Invoice) Reject(reason string) error {
	if !i.status.CanTransitionTo(vo.StatusRejected) {
		return fmt.Errorf("%w: cannot reject invoice in status %s", ErrInvalidTransition, i.status)
	}
	if len(reason) == 0 {
		return fmt.Errorf("rejection reason is required")
	}

	i.status = vo.StatusRejected
	i.rejectionReason = reason
	i.touch()

	i.record(NewInvoiceRejectedEvent(i.id, i.number, i.contractorID, reason, time.Now().UTC()))
	return nil
}

// Supersede deactivates a rejected invoice the moment its revision is
// created. Exactly one invoice per ticket stays active.
func (i *Invoice) Supersede() error {
	if !i.status.IsRejected() {
		return fmt.Errorf("%w: only rejected invoices can be superseded, current status %s", ErrInvalidTransition, i.status)
	}
	if !i.isActive {
		return fmt.Errorf("invoice is already superseded")
	}

	i.isActive = false
	i.touch()
	return nil
}

// RecordPayment applies a direct payment. Amounts above the current balance
// are rejected; a payment that clears the balance moves the invoice to PAID.
func (i *Invoice) RecordPayment(amount vo.Money, paidAt time.Time) error {
	if !i.status.IsPayable() {
		return fmt.Errorf("%w: cannot record payment on invoice in status %s", ErrInvalidTransition, i.status)
	}
	if !amount.IsPositive() {
		return fmt.Errorf("payment amount must be positive")
	}
	if amount.GreaterThan(i.Balance()) {
		return fmt.Errorf("payment amount exceeds balance of %s", i.Balance())
	}

	paid, err := i.paidAmount.Add(amount)
	if err != nil {
		return err
	}
	i.paidAmount = paid

	if i.Balance().IsZero() {
		i.status = vo.StatusPaid
		i.paidDate = &paidAt
		i.record(NewInvoicePaidEvent(i.id, i.number, i.contractorID, i.amount.AmountInCents(), time.Now().UTC()))
	}
	i.touch()
	return nil
}

// MarkPaidInBatch settles the full balance as part of a payment batch.
func (i *Invoice) MarkPaidInBatch(popRef string, paidAt time.Time) error {
	if !i.status.IsPayable() {
		return fmt.Errorf("%w: cannot settle invoice in status %s", ErrInvalidTransition, i.status)
	}
	if len(popRef) == 0 {
		return fmt.Errorf("proof of payment reference is required")
	}

	i.paidAmount = i.amount
	i.status = vo.StatusPaid
	i.popRef = &popRef
	i.paidDate = &paidAt
	i.touch()

	i.record(NewInvoicePaidEvent(i.id, i.number, i.contractorID, i.amount.AmountInCents(), time.Now().UTC()))
	return nil
}

// MarkOverdue flags an approved invoice past its payment due date. Advisory:
// it never blocks later payment. Idempotent under repeated scheduler runs.
func (i *Invoice) MarkOverdue(now time.Time) error {
	if i.status.IsOverdue() {
		return nil
	}
	if !i.status.CanTransitionTo(vo.StatusOverdue) {
		return fmt.Errorf("%w: cannot mark invoice overdue in status %s", ErrInvalidTransition, i.status)
	}
	if i.dueDate == nil || !now.After(*i.dueDate) {
		return fmt.Errorf("invoice is not past its due date")
	}

	i.status = vo.StatusOverdue
	i.touch()

	i.record(NewInvoiceOverdueEvent(i.id, i.number, i.contractorID, time.Now().UTC()))
	return nil
}

// Cancel moves any non-paid status to CANCELLED. Terminal.
func (i *Invoice) Cancel(reason string) error {
	if i.status.IsPaid() {
		return fmt.Errorf("%w: paid invoices cannot be cancelled", ErrInvalidTransition)
	}
	if i.status.IsCancelled() {
		return nil
	}
	if len(reason) == 0 {
		return fmt.Errorf("cancellation reason is required")
	}

	i.status = vo.StatusCancelled
	i.cancelReason = reason
	i.isActive = false
	i.touch()
	return nil
}

func (i *Invoice) touch() {
	i.updatedAt = time.Now().UTC()
}

func (i *Invoice) record(event events.DomainEvent) {
	i.pendingEvents = append(i.pendingEvents, event)
}
