package rating

import (
	"fmt"
	"time"

	"github.com/fieldserv-inc/fieldserv/internal/domain/shared/events"
)

// Rating is one requester's performance evaluation of a contractor for one
// ticket. Created once at closure, immutable afterward. All scores are
// derived from the checklist by the scoring functions, never hand-edited.
type Rating struct {
	id           uint
	ticketID     uint
	contractorID uint
	ratedBy      uint

	checklist Checklist
	scores    Scores
	comment   string

	createdAt time.Time

	pendingEvents []events.DomainEvent
}

// NewRating validates the checklist and derives all scores. A zero PPE score
// must be explained in the checklist's issue comment.
func NewRating(ticketID, contractorID, ratedBy uint, checklist Checklist, comment string) (*Rating, error) {
	if ticketID == 0 {
		return nil, fmt.Errorf("ticket ID is required")
	}
	if contractorID == 0 {
		return nil, fmt.Errorf("contractor ID is required")
	}
	if ratedBy == 0 {
		return nil, fmt.Errorf("rater ID is required")
	}

	scores := Score(checklist)
	if scores.PPE == 0 && len(checklist.PPE.IssueComment) == 0 {
		return nil, fmt.Errorf("a zero PPE score requires a compliance issue comment")
	}

	return &Rating{
		ticketID:     ticketID,
		contractorID: contractorID,
		ratedBy:      ratedBy,
		checklist:    checklist,
		scores:       scores,
		comment:      comment,
		createdAt:    time.Now().UTC(),
	}, nil
}

// RatingState carries persisted fields for rehydration.
type RatingState struct {
	ID           uint
	TicketID     uint
	ContractorID uint
	RatedBy      uint
	Checklist    Checklist
	Scores       Scores
	Comment      string
	CreatedAt    time.Time
}

func ReconstructRating(s RatingState) (*Rating, error) {
	if s.ID == 0 {
		return nil, fmt.Errorf("rating ID cannot be zero")
	}
	return &Rating{
		id:           s.ID,
		ticketID:     s.TicketID,
		contractorID: s.ContractorID,
		ratedBy:      s.RatedBy,
		checklist:    s.Checklist,
		scores:       s.Scores,
		comment:      s.Comment,
		createdAt:    s.CreatedAt,
	}, nil
}

func (r *Rating) ID() uint             { return r.id }
func (r *Rating) TicketID() uint       { return r.ticketID }
func (r *Rating) ContractorID() uint   { return r.contractorID }
func (r *Rating) RatedBy() uint        { return r.ratedBy }
func (r *Rating) Checklist() Checklist { return r.checklist }
func (r *Rating) Scores() Scores       { return r.scores }
func (r *Rating) Comment() string      { return r.comment }
func (r *Rating) CreatedAt() time.Time { return r.createdAt }

// PPECompliant reports whether this rating counts toward the PPE compliance
// rate. Full marks only.
func (r *Rating) PPECompliant() bool {
	return r.scores.PPE == 5
}

// ProceduresCompliant reports whether this rating counts toward the site
// procedures compliance rate.
func (r *Rating) ProceduresCompliant() bool {
	return r.scores.SiteProcedures == 5
}

func (r *Rating) SetID(id uint) error {
	if r.id != 0 {
		return fmt.Errorf("rating ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("rating ID cannot be zero")
	}
	r.id = id
	return nil
}

func (r *Rating) PendingEvents() []events.DomainEvent {
	out := make([]events.DomainEvent, len(r.pendingEvents))
	copy(out, r.pendingEvents)
	return out
}

func (r *Rating) ClearEvents() {
	r.pendingEvents = nil
}

// RecordSubmitted queues the submission event once the ID is known.
func (r *Rating) RecordSubmitted() {
	r.record(NewRatingSubmittedEvent(r.id, r.ticketID, r.contractorID, r.scores.OverallPercentage, r.scores.Stars, time.Now().UTC()))
}

func (r *Rating) record(event events.DomainEvent) {
	r.pendingEvents = append(r.pendingEvents, event)
}
