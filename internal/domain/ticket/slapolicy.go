package ticket

import (
	"time"

	vo "github.com/fieldserv-inc/fieldserv/internal/domain/ticket/valueobjects"
)

// SLAPolicy computes response and resolution deadlines for a priority tier.
// The per-priority duration table is an operator decision, so the engine only
// defines the contract: deadlines are computed once at the defined trigger
// points (creation for resolution, assignment for response) and are queryable
// for breach afterwards.
type SLAPolicy interface {
	// ResponseDue returns the response deadline for a ticket of the given
	// priority, measured from the given instant. A nil return means the
	// policy defines no deadline for this tier.
	ResponseDue(priority vo.Priority, from time.Time) *time.Time

	// ResolutionDue returns the resolution deadline, measured from the given
	// instant. A nil return means no deadline.
	ResolutionDue(priority vo.Priority, from time.Time) *time.Time
}

// SLATier holds the two durations for one priority.
type SLATier struct {
	Response   time.Duration
	Resolution time.Duration
}

// TableSLAPolicy is an SLAPolicy backed by an explicit per-priority table,
// typically loaded from configuration or a YAML policy file.
type TableSLAPolicy struct {
	tiers map[vo.Priority]SLATier
}

func NewTableSLAPolicy(tiers map[vo.Priority]SLATier) *TableSLAPolicy {
	if tiers == nil {
		tiers = map[vo.Priority]SLATier{}
	}
	return &TableSLAPolicy{tiers: tiers}
}

func (p *TableSLAPolicy) ResponseDue(priority vo.Priority, from time.Time) *time.Time {
	tier, ok := p.tiers[priority]
	if !ok || tier.Response <= 0 {
		return nil
	}
	due := from.Add(tier.Response)
	return &due
}

func (p *TableSLAPolicy) ResolutionDue(priority vo.Priority, from time.Time) *time.Time {
	tier, ok := p.tiers[priority]
	if !ok || tier.Resolution <= 0 {
		return nil
	}
	due := from.Add(tier.Resolution)
	return &due
}

// NoSLAPolicy defines no deadlines. Used when the operator has not configured
// an SLA table.
type NoSLAPolicy struct{}

func (NoSLAPolicy) ResponseDue(vo.Priority, time.Time) *time.Time   { return nil }
func (NoSLAPolicy) ResolutionDue(vo.Priority, time.Time) *time.Time { return nil }
