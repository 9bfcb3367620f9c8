package mappers

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/fieldserv-inc/fieldserv/internal/domain/ticket"
	vo "github.com/fieldserv-inc/fieldserv/internal/domain/ticket/valueobjects"
	"github.com/fieldserv-inc/fieldserv/internal/infrastructure/persistence/models"
)

// TicketMapper converts between the ticket aggregate and its persistence
// model. Timestamps are stored as millisecond epochs, the job plan as JSON.
type TicketMapper interface {
	ToModel(t *ticket.Ticket) (*models.TicketModel, error)
	ToDomain(model *models.TicketModel) (*ticket.Ticket, error)
}

type TicketMapperImpl struct{}

func NewTicketMapper() TicketMapper {
	return &TicketMapperImpl{}
}

func (m *TicketMapperImpl) ToModel(t *ticket.Ticket) (*models.TicketModel, error) {
	model := &models.TicketModel{
		ID:          t.ID(),
		Number:      t.Number(),
		TenantID:    t.TenantID(),
		Title:       t.Title(),
		Description: t.Description(),
		Category:    t.Category().String(),
		AssetRef:    t.AssetRef(),
		Priority:    t.Priority().String(),
		Status:      t.Status().String(),
		RequesterID: t.RequesterID(),
		AssigneeID:  t.AssigneeID(),
		Location:    t.Location(),

		WorkDescription:     t.WorkDescription(),
		WorkRejectionReason: t.WorkRejectionReason(),
		CancelReason:        t.CancelReason(),
		AssignRejectReason:  t.AssignRejectReason(),

		ResponseDue:   millisPtr(t.ResponseDue()),
		ResolutionDue: millisPtr(t.ResolutionDue()),

		AssignedAt:                 millisPtr(t.AssignedAt()),
		ContractorAcceptedAt:       millisPtr(t.ContractorAcceptedAt()),
		OnSiteAt:                   millisPtr(t.OnSiteAt()),
		WorkStartedAt:              millisPtr(t.WorkStartedAt()),
		WorkDescriptionRequestedAt: millisPtr(t.WorkDescriptionRequestedAt()),
		WorkDescriptionSubmittedAt: millisPtr(t.WorkDescriptionSubmittedAt()),
		WorkDescriptionApprovedAt:  millisPtr(t.WorkDescriptionApprovedAt()),
		CompletedAt:                millisPtr(t.CompletedAt()),
		ClosedAt:                   millisPtr(t.ClosedAt()),

		Version:   t.Version(),
		CreatedAt: t.CreatedAt().UnixMilli(),
		UpdatedAt: t.UpdatedAt().UnixMilli(),
	}

	if plan := t.JobPlan(); plan != nil {
		planJSON, err := json.Marshal(plan)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal job plan (ticket=%d): %w", t.ID(), err)
		}
		model.JobPlan = planJSON
	}

	return model, nil
}

func (m *TicketMapperImpl) ToDomain(model *models.TicketModel) (*ticket.Ticket, error) {
	category, err := vo.NewCategory(model.Category)
	if err != nil {
		return nil, fmt.Errorf("invalid ticket category (id=%d): %w", model.ID, err)
	}
	priority, err := vo.NewPriority(model.Priority)
	if err != nil {
		return nil, fmt.Errorf("invalid ticket priority (id=%d): %w", model.ID, err)
	}
	status, err := vo.NewTicketStatus(model.Status)
	if err != nil {
		return nil, fmt.Errorf("invalid ticket status (id=%d): %w", model.ID, err)
	}

	var plan *ticket.JobPlan
	if len(model.JobPlan) > 0 {
		plan = &ticket.JobPlan{}
		if err := json.Unmarshal(model.JobPlan, plan); err != nil {
			return nil, fmt.Errorf("failed to unmarshal job plan (id=%d): %w", model.ID, err)
		}
	}

	return ticket.ReconstructTicket(ticket.TicketState{
		ID:          model.ID,
		Number:      model.Number,
		TenantID:    model.TenantID,
		Title:       model.Title,
		Description: model.Description,
		Category:    category,
		AssetRef:    model.AssetRef,
		Priority:    priority,
		Status:      status,
		RequesterID: model.RequesterID,
		AssigneeID:  model.AssigneeID,
		Location:    model.Location,

		JobPlan:             plan,
		WorkDescription:     model.WorkDescription,
		WorkRejectionReason: model.WorkRejectionReason,
		CancelReason:        model.CancelReason,
		AssignRejectReason:  model.AssignRejectReason,

		ResponseDue:   timePtr(model.ResponseDue),
		ResolutionDue: timePtr(model.ResolutionDue),

		AssignedAt:                 timePtr(model.AssignedAt),
		ContractorAcceptedAt:       timePtr(model.ContractorAcceptedAt),
		OnSiteAt:                   timePtr(model.OnSiteAt),
		WorkStartedAt:              timePtr(model.WorkStartedAt),
		WorkDescriptionRequestedAt: timePtr(model.WorkDescriptionRequestedAt),
		WorkDescriptionSubmittedAt: timePtr(model.WorkDescriptionSubmittedAt),
		WorkDescriptionApprovedAt:  timePtr(model.WorkDescriptionApprovedAt),
		CompletedAt:                timePtr(model.CompletedAt),
		ClosedAt:                   timePtr(model.ClosedAt),

		Version:   model.Version,
		CreatedAt: millisToTime(model.CreatedAt),
		UpdatedAt: millisToTime(model.UpdatedAt),
	})
}

func millisToTime(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

func millisPtr(t *time.Time) *int64 {
	if t == nil {
		return nil
	}
	ms := t.UnixMilli()
	return &ms
}

func timePtr(ms *int64) *time.Time {
	if ms == nil {
		return nil
	}
	t := millisToTime(*ms)
	return &t
}
