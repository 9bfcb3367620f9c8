package mappers

import (
	"fmt"

	"github.com/fieldserv-inc/fieldserv/internal/domain/invoice"
	vo "github.com/fieldserv-inc/fieldserv/internal/domain/invoice/valueobjects"
	"github.com/fieldserv-inc/fieldserv/internal/infrastructure/persistence/models"
)

// InvoiceMapper converts between the invoice aggregate and its persistence
// model. Amounts are integer cents; the balance is never stored.
type InvoiceMapper interface {
	ToModel(inv *invoice.Invoice) *models.InvoiceModel
	ToDomain(model *models.InvoiceModel) (*invoice.Invoice, error)
}

type InvoiceMapperImpl struct{}

func NewInvoiceMapper() InvoiceMapper {
	return &InvoiceMapperImpl{}
}

func (m *InvoiceMapperImpl) ToModel(inv *invoice.Invoice) *models.InvoiceModel {
	return &models.InvoiceModel{
		ID:           inv.ID(),
		Number:       inv.Number(),
		TicketID:     inv.TicketID(),
		ContractorID: inv.ContractorID(),
		Status:       inv.Status().String(),

		AmountCents:     inv.Amount().AmountInCents(),
		PaidAmountCents: inv.PaidAmount().AmountInCents(),
		Currency:        inv.Amount().Currency(),

		HoursWorked:     inv.HoursWorked(),
		HourlyRateCents: inv.HourlyRate().AmountInCents(),
		Description:     inv.Description(),

		RejectionReason:       inv.RejectionReason(),
		ClarificationRequest:  inv.ClarificationRequest(),
		ClarificationResponse: inv.ClarificationResponse(),
		CancelReason:          inv.CancelReason(),

		RevisionNumber: inv.RevisionNumber(),
		IsActive:       inv.IsActive(),
		ParentID:       inv.ParentID(),

		FileRef:  inv.FileRef(),
		PopRef:   inv.PopRef(),
		PaidDate: millisPtr(inv.PaidDate()),
		DueDate:  millisPtr(inv.DueDate()),

		Version:   inv.Version(),
		CreatedAt: inv.CreatedAt().UnixMilli(),
		UpdatedAt: inv.UpdatedAt().UnixMilli(),
	}
}

func (m *InvoiceMapperImpl) ToDomain(model *models.InvoiceModel) (*invoice.Invoice, error) {
	status, err := vo.NewInvoiceStatus(model.Status)
	if err != nil {
		return nil, fmt.Errorf("invalid invoice status (id=%d): %w", model.ID, err)
	}

	return invoice.ReconstructInvoice(invoice.InvoiceState{
		ID:           model.ID,
		Number:       model.Number,
		TicketID:     model.TicketID,
		ContractorID: model.ContractorID,
		Status:       status,

		AmountCents:     model.AmountCents,
		PaidAmountCents: model.PaidAmountCents,
		Currency:        model.Currency,

		HoursWorked:     model.HoursWorked,
		HourlyRateCents: model.HourlyRateCents,
		Description:     model.Description,

		RejectionReason:       model.RejectionReason,
		ClarificationRequest:  model.ClarificationRequest,
		ClarificationResponse: model.ClarificationResponse,
		CancelReason:          model.CancelReason,

		RevisionNumber: model.RevisionNumber,
		IsActive:       model.IsActive,
		ParentID:       model.ParentID,

		FileRef:  model.FileRef,
		PopRef:   model.PopRef,
		PaidDate: timePtr(model.PaidDate),
		DueDate:  timePtr(model.DueDate),

		Version:   model.Version,
		CreatedAt: millisToTime(model.CreatedAt),
		UpdatedAt: millisToTime(model.UpdatedAt),
	})
}
