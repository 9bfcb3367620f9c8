package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/fieldserv-inc/fieldserv/internal/domain/invoice"
	vo "github.com/fieldserv-inc/fieldserv/internal/domain/invoice/valueobjects"
	"github.com/fieldserv-inc/fieldserv/internal/infrastructure/persistence/mappers"
	"github.com/fieldserv-inc/fieldserv/internal/infrastructure/persistence/models"
	"github.com/fieldserv-inc/fieldserv/internal/shared/db"
	apperrors "github.com/fieldserv-inc/fieldserv/internal/shared/errors"
)

var allowedInvoiceOrderByFields = map[string]bool{
	"id":            true,
	"number":        true,
	"status":        true,
	"ticket_id":     true,
	"contractor_id": true,
	"amount_cents":  true,
	"due_date":      true,
	"created_at":    true,
	"updated_at":    true,
}

type InvoiceRepository struct {
	db     *gorm.DB
	mapper mappers.InvoiceMapper
}

func NewInvoiceRepository(db *gorm.DB) *InvoiceRepository {
	return &InvoiceRepository{
		db:     db,
		mapper: mappers.NewInvoiceMapper(),
	}
}

func (r *InvoiceRepository) Save(ctx context.Context, inv *invoice.Invoice) error {
	model := r.mapper.ToModel(inv)
	tx := db.FromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to save invoice: %w", err)
	}

	return inv.SetID(model.ID)
}

// Update is a version-conditional write. An invoice changed since it was read
// matches zero rows and surfaces as a concurrent modification error, which
// callers treat as retryable.
func (r *InvoiceRepository) Update(ctx context.Context, inv *invoice.Invoice) error {
	model := r.mapper.ToModel(inv)
	tx := db.FromContext(ctx, r.db)

	currentVersion := model.Version
	model.Version = currentVersion + 1

	result := tx.
		Model(&models.InvoiceModel{}).
		Where("id = ? AND version = ?", model.ID, currentVersion).
		Select("*").
		Omit("id", "created_at").
		Updates(model)

	if result.Error != nil {
		return fmt.Errorf("failed to update invoice: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NewConcurrentModificationError("invoice was modified concurrently")
	}

	return nil
}

func (r *InvoiceRepository) GetByID(ctx context.Context, id uint) (*invoice.Invoice, error) {
	var model models.InvoiceModel
	tx := db.FromContext(ctx, r.db)

	if err := tx.First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("invoice not found")
		}
		return nil, fmt.Errorf("failed to find invoice: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

func (r *InvoiceRepository) GetActiveByTicketID(ctx context.Context, ticketID uint) (*invoice.Invoice, error) {
	var model models.InvoiceModel
	tx := db.FromContext(ctx, r.db)

	if err := tx.
		Where("ticket_id = ? AND is_active = ?", ticketID, true).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("no active invoice for ticket")
		}
		return nil, fmt.Errorf("failed to find active invoice: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

func (r *InvoiceRepository) GetByIDs(ctx context.Context, ids []uint) ([]*invoice.Invoice, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var invoiceModels []models.InvoiceModel
	tx := db.FromContext(ctx, r.db)

	if err := tx.Where("id IN ?", ids).Find(&invoiceModels).Error; err != nil {
		return nil, fmt.Errorf("failed to find invoices: %w", err)
	}

	invoices := make([]*invoice.Invoice, len(invoiceModels))
	for i := range invoiceModels {
		inv, err := r.mapper.ToDomain(&invoiceModels[i])
		if err != nil {
			return nil, err
		}
		invoices[i] = inv
	}

	return invoices, nil
}

func (r *InvoiceRepository) ExistsByContractorAndNumber(ctx context.Context, contractorID uint, number string) (bool, error) {
	var count int64
	tx := db.FromContext(ctx, r.db)

	if err := tx.
		Model(&models.InvoiceModel{}).
		Where("contractor_id = ? AND number = ?", contractorID, number).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check invoice number: %w", err)
	}

	return count > 0, nil
}

func (r *InvoiceRepository) List(ctx context.Context, filter invoice.Filter) ([]*invoice.Invoice, int64, error) {
	tx := db.FromContext(ctx, r.db)
	query := tx.Model(&models.InvoiceModel{})

	if filter.TicketID != nil {
		query = query.Where("ticket_id = ?", *filter.TicketID)
	}
	if filter.ContractorID != nil {
		query = query.Where("contractor_id = ?", *filter.ContractorID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", filter.Status.String())
	}
	if filter.ActiveOnly {
		query = query.Where("is_active = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count invoices: %w", err)
	}

	query = applyOrder(query, filter.SortBy, filter.SortOrder, allowedInvoiceOrderByFields)

	if filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Limit(filter.PageSize).Offset(offset)
	}

	var invoiceModels []models.InvoiceModel
	if err := query.Find(&invoiceModels).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list invoices: %w", err)
	}

	invoices := make([]*invoice.Invoice, len(invoiceModels))
	for i := range invoiceModels {
		inv, err := r.mapper.ToDomain(&invoiceModels[i])
		if err != nil {
			return nil, 0, err
		}
		invoices[i] = inv
	}

	return invoices, total, nil
}

func (r *InvoiceRepository) ListApprovedDueBefore(ctx context.Context, cutoff time.Time, limit int) ([]*invoice.Invoice, error) {
	tx := db.FromContext(ctx, r.db)

	query := tx.
		Where("status = ?", vo.StatusApproved.String()).
		Where("due_date IS NOT NULL AND due_date < ?", cutoff.UnixMilli()).
		Order("due_date ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var invoiceModels []models.InvoiceModel
	if err := query.Find(&invoiceModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list overdue candidates: %w", err)
	}

	invoices := make([]*invoice.Invoice, len(invoiceModels))
	for i := range invoiceModels {
		inv, err := r.mapper.ToDomain(&invoiceModels[i])
		if err != nil {
			return nil, err
		}
		invoices[i] = inv
	}

	return invoices, nil
}
