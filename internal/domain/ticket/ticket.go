package ticket

import (
	"errors"
	"fmt"
	"time"

	"github.com/fieldserv-inc/fieldserv/internal/domain/shared/events"
	vo "github.com/fieldserv-inc/fieldserv/internal/domain/ticket/valueobjects"
)

// ErrInvalidTransition marks guard failures: wrong current status or wrong
// actor for the requested edge. Callers unwrap it with errors.Is.
var ErrInvalidTransition = errors.New("invalid transition")

// Ticket is the aggregate root of the engagement state machine. All status
// changes go through the guarded methods below; the persisted status is
// re-validated at apply time by the repository's conditional write.
type Ticket struct {
	id          uint
	number      string
	tenantID    uint
	title       string
	description string
	category    vo.Category
	assetRef    *string
	priority    vo.Priority
	status      vo.TicketStatus
	requesterID uint
	assigneeID  *uint
	location    string

	jobPlan             *JobPlan
	workDescription     string
	workRejectionReason string
	cancelReason        string
	assignRejectReason  string

	responseDue   *time.Time
	resolutionDue *time.Time

	assignedAt                 *time.Time
	contractorAcceptedAt       *time.Time
	onSiteAt                   *time.Time
	workStartedAt              *time.Time
	workDescriptionRequestedAt *time.Time
	workDescriptionSubmittedAt *time.Time
	workDescriptionApprovedAt  *time.Time
	completedAt                *time.Time
	closedAt                   *time.Time

	version   int
	createdAt time.Time
	updatedAt time.Time

	pendingEvents []events.DomainEvent
}

func NewTicket(
	tenantID uint,
	title string,
	description string,
	category vo.Category,
	priority vo.Priority,
	requesterID uint,
	location string,
	assetRef *string,
) (*Ticket, error) {
	if tenantID == 0 {
		return nil, fmt.Errorf("tenant ID is required")
	}
	if len(title) == 0 {
		return nil, fmt.Errorf("title is required")
	}
	if len(title) > 200 {
		return nil, fmt.Errorf("title exceeds maximum length of 200 characters")
	}
	if len(description) == 0 {
		return nil, fmt.Errorf("description is required")
	}
	if len(description) > 5000 {
		return nil, fmt.Errorf("description exceeds maximum length of 5000 characters")
	}
	if !category.IsValid() {
		return nil, fmt.Errorf("invalid category")
	}
	if !priority.IsValid() {
		return nil, fmt.Errorf("invalid priority")
	}
	if requesterID == 0 {
		return nil, fmt.Errorf("requester ID is required")
	}

	now := time.Now().UTC()

	return &Ticket{
		tenantID:    tenantID,
		title:       title,
		description: description,
		category:    category,
		assetRef:    assetRef,
		priority:    priority,
		status:      vo.StatusOpen,
		requesterID: requesterID,
		location:    location,
		version:     1,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// TicketState carries every persisted field when rehydrating a ticket.
type TicketState struct {
	ID          uint
	Number      string
	TenantID    uint
	Title       string
	Description string
	Category    vo.Category
	AssetRef    *string
	Priority    vo.Priority
	Status      vo.TicketStatus
	RequesterID uint
	AssigneeID  *uint
	Location    string

	JobPlan             *JobPlan
	WorkDescription     string
	WorkRejectionReason string
	CancelReason        string
	AssignRejectReason  string

	ResponseDue   *time.Time
	ResolutionDue *time.Time

	AssignedAt                 *time.Time
	ContractorAcceptedAt       *time.Time
	OnSiteAt                   *time.Time
	WorkStartedAt              *time.Time
	WorkDescriptionRequestedAt *time.Time
	WorkDescriptionSubmittedAt *time.Time
	WorkDescriptionApprovedAt  *time.Time
	CompletedAt                *time.Time
	ClosedAt                   *time.Time

	Version   int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ReconstructTicket rehydrates a ticket from persistence without running
// creation-time validation beyond structural checks.
func ReconstructTicket(s TicketState) (*Ticket, error) {
	if s.ID == 0 {
		return nil, fmt.Errorf("ticket ID cannot be zero")
	}
	if len(s.Number) == 0 {
		return nil, fmt.Errorf("ticket number is required")
	}
	if !s.Status.IsValid() {
		return nil, fmt.Errorf("invalid status: %s", s.Status)
	}
	if !s.Priority.IsValid() {
		return nil, fmt.Errorf("invalid priority: %s", s.Priority)
	}
	if s.Status.RequiresAssignee() && s.AssigneeID == nil {
		return nil, fmt.Errorf("ticket in status %s must have an assignee", s.Status)
	}

	return &Ticket{
		id:          s.ID,
		number:      s.Number,
		tenantID:    s.TenantID,
		title:       s.Title,
		description: s.Description,
		category:    s.Category,
		assetRef:    s.AssetRef,
		priority:    s.Priority,
		status:      s.Status,
		requesterID: s.RequesterID,
		assigneeID:  s.AssigneeID,
		location:    s.Location,

		jobPlan:             s.JobPlan,
		workDescription:     s.WorkDescription,
		workRejectionReason: s.WorkRejectionReason,
		cancelReason:        s.CancelReason,
		assignRejectReason:  s.AssignRejectReason,

		responseDue:   s.ResponseDue,
		resolutionDue: s.ResolutionDue,

		assignedAt:                 s.AssignedAt,
		contractorAcceptedAt:       s.ContractorAcceptedAt,
		onSiteAt:                   s.OnSiteAt,
		workStartedAt:              s.WorkStartedAt,
		workDescriptionRequestedAt: s.WorkDescriptionRequestedAt,
		workDescriptionSubmittedAt: s.WorkDescriptionSubmittedAt,
		workDescriptionApprovedAt:  s.WorkDescriptionApprovedAt,
		completedAt:                s.CompletedAt,
		closedAt:                   s.ClosedAt,

		version:   s.Version,
		createdAt: s.CreatedAt,
		updatedAt: s.UpdatedAt,
	}, nil
}

func (t *Ticket) ID() uint                { return t.id }
func (t *Ticket) Number() string          { return t.number }
func (t *Ticket) TenantID() uint          { return t.tenantID }
func (t *Ticket) Title() string           { return t.title }
func (t *Ticket) Description() string     { return t.description }
func (t *Ticket) Category() vo.Category   { return t.category }
func (t *Ticket) AssetRef() *string       { return t.assetRef }
func (t *Ticket) Priority() vo.Priority   { return t.priority }
func (t *Ticket) Status() vo.TicketStatus { return t.status }
func (t *Ticket) RequesterID() uint       { return t.requesterID }
func (t *Ticket) AssigneeID() *uint       { return t.assigneeID }
func (t *Ticket) Location() string        { return t.location }

func (t *Ticket) JobPlan() *JobPlan            { return t.jobPlan }
func (t *Ticket) WorkDescription() string      { return t.workDescription }
func (t *Ticket) WorkRejectionReason() string  { return t.workRejectionReason }
func (t *Ticket) CancelReason() string         { return t.cancelReason }
func (t *Ticket) AssignRejectReason() string   { return t.assignRejectReason }

func (t *Ticket) ResponseDue() *time.Time   { return t.responseDue }
func (t *Ticket) ResolutionDue() *time.Time { return t.resolutionDue }

func (t *Ticket) AssignedAt() *time.Time                 { return t.assignedAt }
func (t *Ticket) ContractorAcceptedAt() *time.Time       { return t.contractorAcceptedAt }
func (t *Ticket) OnSiteAt() *time.Time                   { return t.onSiteAt }
func (t *Ticket) WorkStartedAt() *time.Time              { return t.workStartedAt }
func (t *Ticket) WorkDescriptionRequestedAt() *time.Time { return t.workDescriptionRequestedAt }
func (t *Ticket) WorkDescriptionSubmittedAt() *time.Time { return t.workDescriptionSubmittedAt }
func (t *Ticket) WorkDescriptionApprovedAt() *time.Time  { return t.workDescriptionApprovedAt }
func (t *Ticket) CompletedAt() *time.Time                { return t.completedAt }
func (t *Ticket) ClosedAt() *time.Time                   { return t.closedAt }

func (t *Ticket) Version() int         { return t.version }
func (t *Ticket) CreatedAt() time.Time { return t.createdAt }
func (t *Ticket) UpdatedAt() time.Time { return t.updatedAt }

// PendingEvents returns events recorded since the aggregate was loaded.
func (t *Ticket) PendingEvents() []events.DomainEvent {
	out := make([]events.DomainEvent, len(t.pendingEvents))
	copy(out, t.pendingEvents)
	return out
}

// ClearEvents drops recorded events after they have been dispatched.
func (t *Ticket) ClearEvents() {
	t.pendingEvents = nil
}

func (t *Ticket) SetID(id uint) error {
	if t.id != 0 {
		return fmt.Errorf("ticket ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("ticket ID cannot be zero")
	}
	t.id = id
	return nil
}

func (t *Ticket) SetNumber(number string) error {
	if len(t.number) > 0 {
		return fmt.Errorf("ticket number is already set")
	}
	if len(number) == 0 {
		return fmt.Errorf("ticket number cannot be empty")
	}
	t.number = number
	return nil
}

// ScheduleResolutionDeadline records the resolution deadline. Computed once;
// later calls are ignored so the deadline never moves.
func (t *Ticket) ScheduleResolutionDeadline(due *time.Time) {
	if t.resolutionDue == nil {
		t.resolutionDue = due
	}
}

// ScheduleResponseDeadline records the response deadline. Computed once at
// assignment.
func (t *Ticket) ScheduleResponseDeadline(due *time.Time) {
	if t.responseDue == nil {
		t.responseDue = due
	}
}

// IsResponseOverdue reports whether the response deadline has passed without
// the contractor accepting.
func (t *Ticket) IsResponseOverdue(now time.Time) bool {
	if t.responseDue == nil || t.contractorAcceptedAt != nil {
		return false
	}
	return now.After(*t.responseDue)
}

// IsResolutionOverdue reports whether the resolution deadline has passed
// without the ticket completing.
func (t *Ticket) IsResolutionOverdue(now time.Time) bool {
	if t.resolutionDue == nil || t.completedAt != nil {
		return false
	}
	if t.status.IsTerminal() {
		return false
	}
	return now.After(*t.resolutionDue)
}

// UpdateDetails edits title/description/priority. Only allowed while the
// ticket is still OPEN; once a contractor is in the loop the request is fixed.
func (t *Ticket) UpdateDetails(actorID uint, title, description string, priority vo.Priority) error {
	if actorID != t.requesterID {
		return fmt.Errorf("%w: only the requester may edit the ticket", ErrInvalidTransition)
	}
	if !t.status.IsOpen() {
		return fmt.Errorf("%w: ticket can only be edited while open, current status %s", ErrInvalidTransition, t.status)
	}
	if len(title) == 0 {
		return fmt.Errorf("title is required")
	}
	if len(description) == 0 {
		return fmt.Errorf("description is required")
	}
	if !priority.IsValid() {
		return fmt.Errorf("invalid priority")
	}

	t.title = title
	t.description = description
	t.priority = priority
	t.touch()
	return nil
}

// Assign moves OPEN -> PROCESSING, recording the assignee and assignedAt.
func (t *Ticket) Assign(assigneeID uint, assignedBy uint) error {
	if assigneeID == 0 {
		return fmt.Errorf("assignee ID cannot be zero")
	}
	if !t.status.CanTransitionTo(vo.StatusProcessing) {
		return fmt.Errorf("%w: cannot assign ticket in status %s", ErrInvalidTransition, t.status)
	}
	if t.assigneeID != nil {
		return fmt.Errorf("%w: ticket is already assigned", ErrInvalidTransition)
	}

	now := time.Now().UTC()
	t.status = vo.StatusProcessing
	t.assigneeID = &assigneeID
	t.assignedAt = &now
	t.assignRejectReason = ""
	t.touch()

	t.record(NewTicketAssignedEvent(t.id, t.number, assigneeID, assignedBy, now))
	return nil
}

// Accept moves PROCESSING -> ACCEPTED with a validated job plan.
func (t *Ticket) Accept(contractorID uint, plan JobPlan) error {
	if err := t.requireAssignee(contractorID); err != nil {
		return err
	}
	if !t.status.CanTransitionTo(vo.StatusAccepted) {
		return fmt.Errorf("%w: cannot accept ticket in status %s", ErrInvalidTransition, t.status)
	}
	if err := plan.Validate(); err != nil {
		return err
	}

	now := time.Now().UTC()
	t.status = vo.StatusAccepted
	t.jobPlan = &plan
	if t.contractorAcceptedAt == nil {
		t.contractorAcceptedAt = &now
	}
	t.touch()

	t.record(NewTicketAcceptedEvent(t.id, t.number, contractorID, now))
	return nil
}

// RejectAssignment moves PROCESSING back to OPEN, clearing the assignee.
func (t *Ticket) RejectAssignment(contractorID uint, reason string) error {
	if err := t.requireAssignee(contractorID); err != nil {
		return err
	}
	if !t.status.IsProcessing() {
		return fmt.Errorf("%w: cannot reject assignment in status %s", ErrInvalidTransition, t.status)
	}
	if len(reason) == 0 {
		return fmt.Errorf("rejection reason is required")
	}

	now := time.Now().UTC()
	rejectedBy := *t.assigneeID
	t.status = vo.StatusOpen
	t.assigneeID = nil
	t.assignedAt = nil
	t.responseDue = nil
	t.assignRejectReason = reason
	t.touch()

	t.record(NewAssignmentRejectedEvent(t.id, t.number, rejectedBy, reason, now))
	return nil
}

// ConfirmOnSite moves ACCEPTED -> ON_SITE. Performed by the requester when
// the technician arrives.
func (t *Ticket) ConfirmOnSite(actorID uint) error {
	if err := t.requireRequester(actorID); err != nil {
		return err
	}
	if !t.status.CanTransitionTo(vo.StatusOnSite) {
		return fmt.Errorf("%w: cannot confirm on-site in status %s", ErrInvalidTransition, t.status)
	}

	now := time.Now().UTC()
	t.status = vo.StatusOnSite
	if t.onSiteAt == nil {
		t.onSiteAt = &now
	}
	t.touch()
	return nil
}

// StartWork moves ON_SITE -> IN_PROGRESS. Performed by the contractor.
func (t *Ticket) StartWork(contractorID uint) error {
	if err := t.requireAssignee(contractorID); err != nil {
		return err
	}
	if !t.status.CanTransitionTo(vo.StatusInProgress) {
		return fmt.Errorf("%w: cannot start work in status %s", ErrInvalidTransition, t.status)
	}

	now := time.Now().UTC()
	t.status = vo.StatusInProgress
	if t.workStartedAt == nil {
		t.workStartedAt = &now
	}
	t.touch()
	return nil
}

// RequestWorkDescription moves ON_SITE or IN_PROGRESS to AWAITING_DESCRIPTION.
func (t *Ticket) RequestWorkDescription(actorID uint) error {
	if err := t.requireRequester(actorID); err != nil {
		return err
	}
	if !t.status.CanTransitionTo(vo.StatusAwaitingDescription) {
		return fmt.Errorf("%w: cannot request work description in status %s", ErrInvalidTransition, t.status)
	}

	now := time.Now().UTC()
	t.status = vo.StatusAwaitingDescription
	if t.workDescriptionRequestedAt == nil {
		t.workDescriptionRequestedAt = &now
	}
	t.touch()
	return nil
}

// SubmitWorkDescription moves AWAITING_DESCRIPTION -> AWAITING_WORK_APPROVAL.
// Each resubmission overwrites the stored description and clears the previous
// rejection reason.
func (t *Ticket) SubmitWorkDescription(contractorID uint, description string) error {
	if err := t.requireAssignee(contractorID); err != nil {
		return err
	}
	if !t.status.CanTransitionTo(vo.StatusAwaitingWorkApproval) {
		return fmt.Errorf("%w: cannot submit work description in status %s", ErrInvalidTransition, t.status)
	}
	if len(description) == 0 {
		return fmt.Errorf("work description is required")
	}

	now := time.Now().UTC()
	t.status = vo.StatusAwaitingWorkApproval
	t.workDescription = description
	t.workRejectionReason = ""
	if t.workDescriptionSubmittedAt == nil {
		t.workDescriptionSubmittedAt = &now
	}
	t.touch()

	t.record(NewWorkDescriptionSubmittedEvent(t.id, t.number, contractorID, now))
	return nil
}

// ApproveWork moves AWAITING_WORK_APPROVAL -> COMPLETED, stamping both the
// approval and completion timestamps.
func (t *Ticket) ApproveWork(actorID uint) error {
	if err := t.requireRequester(actorID); err != nil {
		return err
	}
	if !t.status.CanTransitionTo(vo.StatusCompleted) {
		return fmt.Errorf("%w: cannot approve work in status %s", ErrInvalidTransition, t.status)
	}

	now := time.Now().UTC()
	t.status = vo.StatusCompleted
	if t.workDescriptionApprovedAt == nil {
		t.workDescriptionApprovedAt = &now
	}
	if t.completedAt == nil {
		t.completedAt = &now
	}
	t.touch()

	t.record(NewTicketCompletedEvent(t.id, t.number, *t.assigneeID, now))
	return nil
}

// RejectWork moves AWAITING_WORK_APPROVAL back to AWAITING_DESCRIPTION. The
// stored description is cleared and the reason is kept for the contractor.
func (t *Ticket) RejectWork(actorID uint, reason string) error {
	if err := t.requireRequester(actorID); err != nil {
		return err
	}
	if t.status != vo.StatusAwaitingWorkApproval {
		return fmt.Errorf("%w: cannot reject work in status %s", ErrInvalidTransition, t.status)
	}
	if len(reason) == 0 {
		return fmt.Errorf("rejection reason is required")
	}

	now := time.Now().UTC()
	t.status = vo.StatusAwaitingDescription
	t.workRejectionReason = reason
	t.workDescription = ""
	t.touch()

	t.record(NewWorkRejectedEvent(t.id, t.number, *t.assigneeID, reason, now))
	return nil
}

// Close moves COMPLETED -> CLOSED. The rating prerequisite is enforced by the
// use case, which owns the cross-aggregate lookup.
func (t *Ticket) Close(actorID uint) error {
	if err := t.requireRequester(actorID); err != nil {
		return err
	}
	if !t.status.CanTransitionTo(vo.StatusClosed) {
		return fmt.Errorf("%w: cannot close ticket in status %s", ErrInvalidTransition, t.status)
	}

	now := time.Now().UTC()
	t.status = vo.StatusClosed
	if t.closedAt == nil {
		t.closedAt = &now
	}
	t.touch()

	t.record(NewTicketClosedEvent(t.id, t.number, now))
	return nil
}

// Cancel is only reachable from OPEN, or PROCESSING before anyone was
// assigned. Cancelled tickets are retained.
func (t *Ticket) Cancel(actorID uint, reason string) error {
	if err := t.requireRequester(actorID); err != nil {
		return err
	}
	if len(reason) == 0 {
		return fmt.Errorf("cancellation reason is required")
	}

	cancellable := t.status.IsOpen() || (t.status.IsProcessing() && t.assigneeID == nil)
	if !cancellable {
		return fmt.Errorf("%w: cannot cancel ticket in status %s", ErrInvalidTransition, t.status)
	}

	now := time.Now().UTC()
	t.status = vo.StatusCancelled
	t.cancelReason = reason
	t.touch()

	t.record(NewTicketCancelledEvent(t.id, t.number, reason, now))
	return nil
}

func (t *Ticket) requireAssignee(actorID uint) error {
	if t.assigneeID == nil || *t.assigneeID != actorID {
		return fmt.Errorf("%w: actor is not the assigned contractor", ErrInvalidTransition)
	}
	return nil
}

func (t *Ticket) requireRequester(actorID uint) error {
	if actorID != t.requesterID {
		return fmt.Errorf("%w: actor is not the ticket requester", ErrInvalidTransition)
	}
	return nil
}

func (t *Ticket) touch() {
	t.updatedAt = time.Now().UTC()
}

func (t *Ticket) record(event events.DomainEvent) {
	t.pendingEvents = append(t.pendingEvents, event)
}
