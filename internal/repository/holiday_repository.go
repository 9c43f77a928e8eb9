package repository

import (
	"context"

	"absensi-sekolah/internal/model"

	"gorm.io/gorm"
)

type HolidayRepository interface {
	GetAll(ctx context.Context) ([]model.Holiday, error)
	Create(ctx context.Context, holiday *model.Holiday) error
	Delete(ctx context.Context, id uint) error
	IsHoliday(ctx context.Context, date string) (bool, error)
	GetByID(ctx context.Context, id uint) (*model.Holiday, error)
	Update(ctx context.Context, holiday *model.Holiday) error
}

type holidayRepository struct {
	db *gorm.DB
}

func NewHolidayRepository(db *gorm.DB) HolidayRepository {
	return &holidayRepository{db}
}

func (r *holidayRepository) GetAll(ctx context.Context) ([]model.Holiday, error) {
	var holidays []model.Holiday
	err := r.db.WithContext(ctx).Order("date desc").Find(&holidays).Error
	return holidays, err
}

func (r *holidayRepository) Create(ctx context.Context, holiday *model.Holiday) error {
	return mapDuplicate(r.db.WithContext(ctx).Create(holiday).Error)
}

func (r *holidayRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Unscoped().Delete(&model.Holiday{}, id).Error
}

func (r *holidayRepository) IsHoliday(ctx context.Context, date string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Holiday{}).Where("date = ?", date).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *holidayRepository) GetByID(ctx context.Context, id uint) (*model.Holiday, error) {
	var holiday model.Holiday
	err := r.db.WithContext(ctx).First(&holiday, id).Error
	return &holiday, err
}

func (r *holidayRepository) Update(ctx context.Context, holiday *model.Holiday) error {
	return mapDuplicate(r.db.WithContext(ctx).Save(holiday).Error)
}
