package repository

import (
	"context"

	"absensi-sekolah/internal/model"

	"gorm.io/gorm"
)

type LeaveRequestRepository interface {
	ListOverlapping(ctx context.Context, personType model.PersonType, personID uint, start, end string) ([]model.LeaveRequest, error)
	Create(ctx context.Context, leave *model.LeaveRequest) error
	UpdateRange(ctx context.Context, id uint, start, end string) error
	Delete(ctx context.Context, id uint) error
	ListByPerson(ctx context.Context, personType model.PersonType, personID uint) ([]model.LeaveRequest, error)
	ListByMonth(ctx context.Context, month string) ([]model.LeaveRequest, error)
}

type leaveRequestRepository struct {
	db *gorm.DB
}

func NewLeaveRequestRepository(db *gorm.DB) LeaveRequestRepository {
	return &leaveRequestRepository{db}
}

// ListOverlapping mengambil perizinan yang rentangnya beririsan dengan [start, end].
// Tanggal berformat YYYY-MM-DD sehingga perbandingan string sama dengan perbandingan tanggal.
func (r *leaveRequestRepository) ListOverlapping(ctx context.Context, personType model.PersonType, personID uint, start, end string) ([]model.LeaveRequest, error) {
	var list []model.LeaveRequest
	err := r.db.WithContext(ctx).
		Where("person_type = ? AND person_id = ? AND start_date <= ? AND end_date >= ?", personType, personID, end, start).
		Order("id asc").
		Find(&list).Error
	return list, err
}

func (r *leaveRequestRepository) Create(ctx context.Context, leave *model.LeaveRequest) error {
	return r.db.WithContext(ctx).Create(leave).Error
}

func (r *leaveRequestRepository) UpdateRange(ctx context.Context, id uint, start, end string) error {
	return r.db.WithContext(ctx).Model(&model.LeaveRequest{}).Where("id = ?", id).
		Updates(map[string]interface{}{"start_date": start, "end_date": end}).Error
}

func (r *leaveRequestRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Unscoped().Delete(&model.LeaveRequest{}, id).Error
}

func (r *leaveRequestRepository) ListByPerson(ctx context.Context, personType model.PersonType, personID uint) ([]model.LeaveRequest, error) {
	var list []model.LeaveRequest
	err := r.db.WithContext(ctx).Where("person_type = ? AND person_id = ?", personType, personID).
		Order("start_date desc").Find(&list).Error
	return list, err
}

func (r *leaveRequestRepository) ListByMonth(ctx context.Context, month string) ([]model.LeaveRequest, error) {
	var list []model.LeaveRequest
	// Perizinan yang menyentuh bulan tersebut
	err := r.db.WithContext(ctx).
		Where("start_date <= ? AND end_date >= ?", month+"-31", month+"-01").
		Order("start_date asc").Find(&list).Error
	return list, err
}
