package repository

import (
	"context"

	"absensi-sekolah/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AttendanceFilter struct {
	Date       string
	Month      string // YYYY-MM
	PersonType model.PersonType
	PersonID   uint
	Status     model.AttendanceStatus
	Limit      int
	Offset     int
}

// StatusCount adalah jumlah absensi per siswa per status dalam satu bulan.
type StatusCount struct {
	PersonID uint
	Status   model.AttendanceStatus
	Total    int
}

type AttendanceRepository interface {
	FindByPersonAndDate(ctx context.Context, personType model.PersonType, personID uint, date string) (*model.Attendance, error)
	FindByID(ctx context.Context, id uint) (*model.Attendance, error)
	Create(ctx context.Context, attendance *model.Attendance) error
	MarkIn(ctx context.Context, id uint, timeIn string, status model.AttendanceStatus, deviceID *string) (bool, error)
	MarkOut(ctx context.Context, id uint, timeOut string) (bool, error)
	UpsertExcused(ctx context.Context, attendance *model.Attendance) (*model.Attendance, error)
	RepointLeave(ctx context.Context, personType model.PersonType, personID uint, from, to string, leaveID uint) error
	UpdateStatus(ctx context.Context, id uint, status model.AttendanceStatus) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filter AttendanceFilter) ([]model.Attendance, int64, error)
	PersonIDsOnDate(ctx context.Context, personType model.PersonType, date string) (map[uint]bool, error)
	CountStudentStatusByMonth(ctx context.Context, month string) ([]StatusCount, error)
}

type attendanceRepository struct {
	db *gorm.DB
}

func NewAttendanceRepository(db *gorm.DB) AttendanceRepository {
	return &attendanceRepository{db}
}

func (r *attendanceRepository) FindByPersonAndDate(ctx context.Context, personType model.PersonType, personID uint, date string) (*model.Attendance, error) {
	var attendance model.Attendance
	err := r.db.WithContext(ctx).
		Where("person_type = ? AND person_id = ? AND date = ?", personType, personID, date).
		Limit(1).Find(&attendance).Error
	if err != nil {
		return nil, err
	}
	if attendance.ID == 0 {
		return nil, ErrNotFound
	}
	return &attendance, nil
}

func (r *attendanceRepository) FindByID(ctx context.Context, id uint) (*model.Attendance, error) {
	var attendance model.Attendance
	err := r.db.WithContext(ctx).First(&attendance, id).Error
	return &attendance, err
}

// Create mengembalikan ErrDuplicate bila baris orang/tanggal tersebut sudah ada.
func (r *attendanceRepository) Create(ctx context.Context, attendance *model.Attendance) error {
	return mapDuplicate(r.db.WithContext(ctx).Create(attendance).Error)
}

// MarkIn mengisi jam masuk hanya bila belum ada (baris alpha dari sweep).
func (r *attendanceRepository) MarkIn(ctx context.Context, id uint, timeIn string, status model.AttendanceStatus, deviceID *string) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.Attendance{}).
		Where("id = ? AND time_in IS NULL", id).
		Updates(map[string]interface{}{
			"time_in":   timeIn,
			"status":    status,
			"device_id": deviceID,
		})
	return res.RowsAffected > 0, res.Error
}

// MarkOut mengisi jam pulang hanya bila jam masuk sudah ada dan jam pulang masih kosong.
func (r *attendanceRepository) MarkOut(ctx context.Context, id uint, timeOut string) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.Attendance{}).
		Where("id = ? AND time_in IS NOT NULL AND time_out IS NULL", id).
		Update("time_out", timeOut)
	return res.RowsAffected > 0, res.Error
}

// UpsertExcused menimpa absensi hari itu dengan status izin/sakit.
func (r *attendanceRepository) UpsertExcused(ctx context.Context, attendance *model.Attendance) (*model.Attendance, error) {
	attendance.TimeIn = nil
	attendance.TimeOut = nil
	attendance.DeviceID = nil

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "person_type"}, {Name: "person_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{"status", "time_in", "time_out", "device_id", "leave_request_id", "updated_at"}),
	}).Create(attendance).Error
	if err != nil {
		return nil, err
	}
	// ID hasil upsert di MySQL tidak bisa dipercaya, ambil ulang
	return r.FindByPersonAndDate(ctx, attendance.PersonType, attendance.PersonID, attendance.Date)
}

func (r *attendanceRepository) RepointLeave(ctx context.Context, personType model.PersonType, personID uint, from, to string, leaveID uint) error {
	return r.db.WithContext(ctx).Model(&model.Attendance{}).
		Where("person_type = ? AND person_id = ? AND date BETWEEN ? AND ? AND leave_request_id IS NOT NULL", personType, personID, from, to).
		Update("leave_request_id", leaveID).Error
}

func (r *attendanceRepository) UpdateStatus(ctx context.Context, id uint, status model.AttendanceStatus) error {
	res := r.db.WithContext(ctx).Model(&model.Attendance{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete menghapus permanen agar unique index orang/tanggal bisa dipakai lagi.
func (r *attendanceRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Unscoped().Delete(&model.Attendance{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *attendanceRepository) List(ctx context.Context, filter AttendanceFilter) ([]model.Attendance, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Attendance{})
	if filter.Date != "" {
		query = query.Where("date = ?", filter.Date)
	}
	if filter.Month != "" {
		// Filter tanggal menggunakan pattern "YYYY-MM%"
		query = query.Where("date LIKE ?", filter.Month+"%")
	}
	if filter.PersonType != "" {
		query = query.Where("person_type = ?", filter.PersonType)
	}
	if filter.PersonID != 0 {
		query = query.Where("person_id = ?", filter.PersonID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.Limit > 0 {
		query = query.Limit(filter.Limit).Offset(filter.Offset)
	}
	var list []model.Attendance
	err := query.Order("date desc").Order("id asc").Find(&list).Error
	return list, total, err
}

func (r *attendanceRepository) PersonIDsOnDate(ctx context.Context, personType model.PersonType, date string) (map[uint]bool, error) {
	var ids []uint
	err := r.db.WithContext(ctx).Model(&model.Attendance{}).
		Where("person_type = ? AND date = ?", personType, date).
		Pluck("person_id", &ids).Error
	if err != nil {
		return nil, err
	}
	out := make(map[uint]bool, len(ids))
	for _, id := range ids {
		out[id] = true
	}
	return out, nil
}

func (r *attendanceRepository) CountStudentStatusByMonth(ctx context.Context, month string) ([]StatusCount, error) {
	var rows []StatusCount
	err := r.db.WithContext(ctx).Model(&model.Attendance{}).
		Select("person_id, status, count(*) as total").
		Where("person_type = ? AND date LIKE ?", model.PersonStudent, month+"%").
		Group("person_id, status").
		Scan(&rows).Error
	return rows, err
}
