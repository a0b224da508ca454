package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"netsecurepro/internal/common"
	"netsecurepro/internal/domain/model"
)

type AlertRepository interface {
	Create(ctx context.Context, alert *model.SecurityAlert) error
	ListRecentForUser(ctx context.Context, userID uint, limit int) ([]model.SecurityAlert, error)
	Resolve(ctx context.Context, id uint) error
}

type gormAlertRepository struct {
	db *gorm.DB
}

func NewGormAlertRepository(db *gorm.DB) AlertRepository {
	return &gormAlertRepository{db: db}
}

func (r *gormAlertRepository) Create(ctx context.Context, alert *model.SecurityAlert) error {
	if err := r.db.WithContext(ctx).Create(alert).Error; err != nil {
		return fmt.Errorf("gormAlertRepository.Create: %w", err)
	}
	return nil
}

// ListRecentForUser returns the newest alerts owned by a user, most recent
// first. Unowned alerts are never included.
func (r *gormAlertRepository) ListRecentForUser(ctx context.Context, userID uint, limit int) ([]model.SecurityAlert, error) {
	var alerts []model.SecurityAlert
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&alerts).Error
	if err != nil {
		return nil, fmt.Errorf("gormAlertRepository.ListRecentForUser: %w", err)
	}
	return alerts, nil
}

func (r *gormAlertRepository) Resolve(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).
		Model(&model.SecurityAlert{}).
		Where("id = ?", id).
		Update("resolved", true)
	if res.Error != nil {
		return fmt.Errorf("gormAlertRepository.Resolve: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return common.ErrNotFound
	}
	return nil
}
