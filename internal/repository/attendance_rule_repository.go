package repository

import (
	"context"

	"absensi-sekolah/internal/model"

	"gorm.io/gorm"
)

type AttendanceRuleRepository interface {
	ListByClass(ctx context.Context, classID *uint) ([]model.AttendanceRule, error)
	ListAll(ctx context.Context) ([]model.AttendanceRule, error)
	GetByID(ctx context.Context, id uint) (*model.AttendanceRule, error)
	Create(ctx context.Context, rule *model.AttendanceRule) error
	Update(ctx context.Context, rule *model.AttendanceRule) error
	Delete(ctx context.Context, id uint) error
}

type attendanceRuleRepository struct {
	db *gorm.DB
}

func NewAttendanceRuleRepository(db *gorm.DB) AttendanceRuleRepository {
	return &attendanceRuleRepository{db}
}

// ListByClass mengurutkan berdasarkan id, urutan ini dipakai sebagai aturan "yang pertama menang".
func (r *attendanceRuleRepository) ListByClass(ctx context.Context, classID *uint) ([]model.AttendanceRule, error) {
	var rules []model.AttendanceRule
	query := r.db.WithContext(ctx)
	if classID == nil {
		query = query.Where("class_id IS NULL")
	} else {
		query = query.Where("class_id = ?", *classID)
	}
	err := query.Order("id asc").Find(&rules).Error
	return rules, err
}

func (r *attendanceRuleRepository) ListAll(ctx context.Context) ([]model.AttendanceRule, error) {
	var rules []model.AttendanceRule
	err := r.db.WithContext(ctx).Order("class_id asc").Order("id asc").Find(&rules).Error
	return rules, err
}

func (r *attendanceRuleRepository) GetByID(ctx context.Context, id uint) (*model.AttendanceRule, error) {
	var rule model.AttendanceRule
	err := r.db.WithContext(ctx).First(&rule, id).Error
	return &rule, err
}

func (r *attendanceRuleRepository) Create(ctx context.Context, rule *model.AttendanceRule) error {
	return r.db.WithContext(ctx).Create(rule).Error
}

func (r *attendanceRuleRepository) Update(ctx context.Context, rule *model.AttendanceRule) error {
	return r.db.WithContext(ctx).Save(rule).Error
}

func (r *attendanceRuleRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.AttendanceRule{}, id).Error
}
