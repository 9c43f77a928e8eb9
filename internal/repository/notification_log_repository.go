package repository

import (
	"context"

	"absensi-sekolah/internal/model"

	"gorm.io/gorm"
)

type NotificationLogRepository interface {
	Create(ctx context.Context, log *model.NotificationLog) error
	List(ctx context.Context, status string, limit int) ([]model.NotificationLog, error)
}

type notificationLogRepository struct {
	db *gorm.DB
}

func NewNotificationLogRepository(db *gorm.DB) NotificationLogRepository {
	return &notificationLogRepository{db}
}

func (r *notificationLogRepository) Create(ctx context.Context, log *model.NotificationLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *notificationLogRepository) List(ctx context.Context, status string, limit int) ([]model.NotificationLog, error) {
	query := r.db.WithContext(ctx)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	var logs []model.NotificationLog
	err := query.Order("id desc").Limit(limit).Find(&logs).Error
	return logs, err
}
