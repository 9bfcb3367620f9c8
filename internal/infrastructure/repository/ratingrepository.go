package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/fieldserv-inc/fieldserv/internal/domain/rating"
	"github.com/fieldserv-inc/fieldserv/internal/infrastructure/persistence/mappers"
	"github.com/fieldserv-inc/fieldserv/internal/infrastructure/persistence/models"
	"github.com/fieldserv-inc/fieldserv/internal/shared/db"
	apperrors "github.com/fieldserv-inc/fieldserv/internal/shared/errors"
)

type RatingRepository struct {
	db     *gorm.DB
	mapper mappers.RatingMapper
}

func NewRatingRepository(db *gorm.DB) *RatingRepository {
	return &RatingRepository{
		db:     db,
		mapper: mappers.NewRatingMapper(),
	}
}

func (r *RatingRepository) Save(ctx context.Context, rt *rating.Rating) error {
	model, err := r.mapper.ToModel(rt)
	if err != nil {
		return err
	}
	tx := db.FromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to save rating: %w", err)
	}

	return rt.SetID(model.ID)
}

func (r *RatingRepository) GetByID(ctx context.Context, id uint) (*rating.Rating, error) {
	var model models.RatingModel
	tx := db.FromContext(ctx, r.db)

	if err := tx.First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("rating not found")
		}
		return nil, fmt.Errorf("failed to find rating: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

func (r *RatingRepository) GetByTicketID(ctx context.Context, ticketID uint) (*rating.Rating, error) {
	var model models.RatingModel
	tx := db.FromContext(ctx, r.db)

	if err := tx.Where("ticket_id = ?", ticketID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("rating not found")
		}
		return nil, fmt.Errorf("failed to find rating: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

func (r *RatingRepository) ExistsByTicketID(ctx context.Context, ticketID uint) (bool, error) {
	var count int64
	tx := db.FromContext(ctx, r.db)

	if err := tx.
		Model(&models.RatingModel{}).
		Where("ticket_id = ?", ticketID).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check for rating: %w", err)
	}

	return count > 0, nil
}

func (r *RatingRepository) ListByContractorID(ctx context.Context, contractorID uint, page, pageSize int) ([]*rating.Rating, int64, error) {
	tx := db.FromContext(ctx, r.db)
	query := tx.Model(&models.RatingModel{}).Where("contractor_id = ?", contractorID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count ratings: %w", err)
	}

	query = query.Order("created_at DESC")
	if pageSize > 0 {
		offset := (page - 1) * pageSize
		query = query.Limit(pageSize).Offset(offset)
	}

	var ratingModels []models.RatingModel
	if err := query.Find(&ratingModels).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list ratings: %w", err)
	}

	ratings := make([]*rating.Rating, len(ratingModels))
	for i := range ratingModels {
		rt, err := r.mapper.ToDomain(&ratingModels[i])
		if err != nil {
			return nil, 0, err
		}
		ratings[i] = rt
	}

	return ratings, total, nil
}

type ReputationRepository struct {
	db     *gorm.DB
	mapper mappers.RatingMapper
}

func NewReputationRepository(db *gorm.DB) *ReputationRepository {
	return &ReputationRepository{
		db:     db,
		mapper: mappers.NewRatingMapper(),
	}
}

func (r *ReputationRepository) Save(ctx context.Context, rep *rating.ContractorReputation) error {
	model := r.mapper.ReputationToModel(rep)
	tx := db.FromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to save reputation: %w", err)
	}

	return nil
}

// Update is a version-conditional write so concurrent rating submissions for
// the same contractor cannot lose increments.
func (r *ReputationRepository) Update(ctx context.Context, rep *rating.ContractorReputation) error {
	model := r.mapper.ReputationToModel(rep)
	tx := db.FromContext(ctx, r.db)

	currentVersion := model.Version
	model.Version = currentVersion + 1

	result := tx.
		Model(&models.ContractorReputationModel{}).
		Where("contractor_id = ? AND version = ?", model.ContractorID, currentVersion).
		Select("*").
		Omit("contractor_id").
		Updates(model)

	if result.Error != nil {
		return fmt.Errorf("failed to update reputation: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NewConcurrentModificationError("reputation was modified concurrently")
	}

	return nil
}

func (r *ReputationRepository) GetByContractorID(ctx context.Context, contractorID uint) (*rating.ContractorReputation, error) {
	var model models.ContractorReputationModel
	tx := db.FromContext(ctx, r.db)

	if err := tx.Where("contractor_id = ?", contractorID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("reputation not found")
		}
		return nil, fmt.Errorf("failed to find reputation: %w", err)
	}

	return r.mapper.ReputationToDomain(&model)
}
