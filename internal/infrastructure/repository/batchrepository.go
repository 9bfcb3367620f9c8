package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/fieldserv-inc/fieldserv/internal/domain/settlement"
	"github.com/fieldserv-inc/fieldserv/internal/infrastructure/persistence/mappers"
	"github.com/fieldserv-inc/fieldserv/internal/infrastructure/persistence/models"
	"github.com/fieldserv-inc/fieldserv/internal/shared/db"
	apperrors "github.com/fieldserv-inc/fieldserv/internal/shared/errors"
)

var allowedBatchOrderByFields = map[string]bool{
	"id":           true,
	"reference":    true,
	"payment_date": true,
	"created_by":   true,
	"created_at":   true,
}

type PaymentBatchRepository struct {
	db     *gorm.DB
	mapper mappers.PaymentBatchMapper
}

func NewPaymentBatchRepository(db *gorm.DB) *PaymentBatchRepository {
	return &PaymentBatchRepository{
		db:     db,
		mapper: mappers.NewPaymentBatchMapper(),
	}
}

func (r *PaymentBatchRepository) Save(ctx context.Context, batch *settlement.PaymentBatch) error {
	model, err := r.mapper.ToModel(batch)
	if err != nil {
		return err
	}
	tx := db.FromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to save payment batch: %w", err)
	}

	return batch.SetID(model.ID)
}

func (r *PaymentBatchRepository) GetByID(ctx context.Context, id uint) (*settlement.PaymentBatch, error) {
	var model models.PaymentBatchModel
	tx := db.FromContext(ctx, r.db)

	if err := tx.First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("payment batch not found")
		}
		return nil, fmt.Errorf("failed to find payment batch: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

func (r *PaymentBatchRepository) GetByReference(ctx context.Context, reference string) (*settlement.PaymentBatch, error) {
	var model models.PaymentBatchModel
	tx := db.FromContext(ctx, r.db)

	if err := tx.Where("reference = ?", reference).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("payment batch not found")
		}
		return nil, fmt.Errorf("failed to find payment batch: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

func (r *PaymentBatchRepository) List(ctx context.Context, filter settlement.Filter) ([]*settlement.PaymentBatch, int64, error) {
	tx := db.FromContext(ctx, r.db)
	query := tx.Model(&models.PaymentBatchModel{})

	if filter.CreatedBy != nil {
		query = query.Where("created_by = ?", *filter.CreatedBy)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count payment batches: %w", err)
	}

	query = applyOrder(query, filter.SortBy, filter.SortOrder, allowedBatchOrderByFields)

	if filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Limit(filter.PageSize).Offset(offset)
	}

	var batchModels []models.PaymentBatchModel
	if err := query.Find(&batchModels).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list payment batches: %w", err)
	}

	batches := make([]*settlement.PaymentBatch, len(batchModels))
	for i := range batchModels {
		batch, err := r.mapper.ToDomain(&batchModels[i])
		if err != nil {
			return nil, 0, err
		}
		batches[i] = batch
	}

	return batches, total, nil
}
