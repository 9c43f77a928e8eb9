package repository

import (
	"context"

	"absensi-sekolah/internal/model"

	"gorm.io/gorm"
)

type ScanLogRepository interface {
	Create(ctx context.Context, log *model.ScanLog) error
	List(ctx context.Context, fingerprintID, result string, limit int) ([]model.ScanLog, error)
}

type scanLogRepository struct {
	db *gorm.DB
}

func NewScanLogRepository(db *gorm.DB) ScanLogRepository {
	return &scanLogRepository{db}
}

func (r *scanLogRepository) Create(ctx context.Context, log *model.ScanLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *scanLogRepository) List(ctx context.Context, fingerprintID, result string, limit int) ([]model.ScanLog, error) {
	query := r.db.WithContext(ctx)
	if fingerprintID != "" {
		query = query.Where("fingerprint_id = ?", fingerprintID)
	}
	if result != "" {
		query = query.Where("result = ?", result)
	}
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	var logs []model.ScanLog
	err := query.Order("id desc").Limit(limit).Find(&logs).Error
	return logs, err
}
