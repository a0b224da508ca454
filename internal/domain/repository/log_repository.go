package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"netsecurepro/internal/domain/model"
)

// LogRepository is append-only: records are created and listed, never
// updated or deleted.
type LogRepository interface {
	Create(ctx context.Context, entry *model.SecurityLog) error
	ListRecentForUser(ctx context.Context, userID uint, limit int) ([]model.SecurityLog, error)
}

type gormLogRepository struct {
	db *gorm.DB
}

func NewGormLogRepository(db *gorm.DB) LogRepository {
	return &gormLogRepository{db: db}
}

func (r *gormLogRepository) Create(ctx context.Context, entry *model.SecurityLog) error {
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("gormLogRepository.Create: %w", err)
	}
	return nil
}

func (r *gormLogRepository) ListRecentForUser(ctx context.Context, userID uint, limit int) ([]model.SecurityLog, error) {
	var logs []model.SecurityLog
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("timestamp DESC").
		Limit(limit).
		Find(&logs).Error
	if err != nil {
		return nil, fmt.Errorf("gormLogRepository.ListRecentForUser: %w", err)
	}
	return logs, nil
}
