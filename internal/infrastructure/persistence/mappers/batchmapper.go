package mappers

import (
	"encoding/json"
	"fmt"

	"github.com/fieldserv-inc/fieldserv/internal/domain/settlement"
	"github.com/fieldserv-inc/fieldserv/internal/infrastructure/persistence/models"
)

type batchMemberRecord struct {
	InvoiceID     uint   `json:"invoice_id"`
	InvoiceNumber string `json:"invoice_number"`
	ContractorID  uint   `json:"contractor_id"`
	AmountCents   int64  `json:"amount_cents"`
}

// PaymentBatchMapper converts between the settlement batch and its
// persistence model. Members are a JSON snapshot of the settled invoices.
type PaymentBatchMapper interface {
	ToModel(batch *settlement.PaymentBatch) (*models.PaymentBatchModel, error)
	ToDomain(model *models.PaymentBatchModel) (*settlement.PaymentBatch, error)
}

type PaymentBatchMapperImpl struct{}

func NewPaymentBatchMapper() PaymentBatchMapper {
	return &PaymentBatchMapperImpl{}
}

func (m *PaymentBatchMapperImpl) ToModel(batch *settlement.PaymentBatch) (*models.PaymentBatchModel, error) {
	members := batch.Members()
	records := make([]batchMemberRecord, 0, len(members))
	for _, member := range members {
		records = append(records, batchMemberRecord{
			InvoiceID:     member.InvoiceID,
			InvoiceNumber: member.InvoiceNumber,
			ContractorID:  member.ContractorID,
			AmountCents:   member.AmountCents,
		})
	}

	membersJSON, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal batch members (batch=%d): %w", batch.ID(), err)
	}

	return &models.PaymentBatchModel{
		ID:          batch.ID(),
		Reference:   batch.Reference(),
		PopRef:      batch.PopRef(),
		PaymentDate: batch.PaymentDate().UnixMilli(),
		Notes:       batch.Notes(),
		Members:     membersJSON,
		Currency:    batch.Currency(),
		CreatedBy:   batch.CreatedBy(),
		CreatedAt:   batch.CreatedAt().UnixMilli(),
	}, nil
}

func (m *PaymentBatchMapperImpl) ToDomain(model *models.PaymentBatchModel) (*settlement.PaymentBatch, error) {
	var records []batchMemberRecord
	if err := json.Unmarshal(model.Members, &records); err != nil {
		return nil, fmt.Errorf("failed to unmarshal batch members (id=%d): %w", model.ID, err)
	}

	members := make([]settlement.BatchMember, 0, len(records))
	for _, r := range records {
		members = append(members, settlement.BatchMember{
			InvoiceID:     r.InvoiceID,
			InvoiceNumber: r.InvoiceNumber,
			ContractorID:  r.ContractorID,
			AmountCents:   r.AmountCents,
		})
	}

	return settlement.ReconstructPaymentBatch(settlement.PaymentBatchState{
		ID:          model.ID,
		Reference:   model.Reference,
		PopRef:      model.PopRef,
		PaymentDate: millisToTime(model.PaymentDate),
		Notes:       model.Notes,
		Members:     members,
		Currency:    model.Currency,
		CreatedBy:   model.CreatedBy,
		CreatedAt:   millisToTime(model.CreatedAt),
	})
}
