package rating

import (
	"strconv"
	"time"

	"github.com/fieldserv-inc/fieldserv/internal/domain/shared/events"
)

const EventRatingSubmitted = "rating.submitted"

type RatingSubmittedEvent struct {
	events.BaseEvent
	RatingID          uint
	TicketID          uint
	ContractorID      uint
	OverallPercentage int
	Stars             int
}

func NewRatingSubmittedEvent(ratingID, ticketID, contractorID uint, overallPercentage, stars int, at time.Time) RatingSubmittedEvent {
	return RatingSubmittedEvent{
		BaseEvent: events.BaseEvent{
			AggregateID: strconv.FormatUint(uint64(ratingID), 10),
			EventType:   EventRatingSubmitted,
			OccurredAt:  at,
		},
		RatingID:          ratingID,
		TicketID:          ticketID,
		ContractorID:      contractorID,
		OverallPercentage: overallPercentage,
		Stars:             stars,
	}
}
