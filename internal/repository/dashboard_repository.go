package repository

import (
	"context"
	"fmt"

	"absensi-sekolah/internal/model"

	"gorm.io/gorm"
)

// StatusTotals adalah jumlah baris absensi per status.
type StatusTotals map[model.AttendanceStatus]int64

type DashboardRepository interface {
	CountActive(ctx context.Context, personType model.PersonType) (int64, error)
	CountByStatus(ctx context.Context, personType model.PersonType, from, to string) (StatusTotals, error)
}

type dashboardRepository struct {
	db *gorm.DB
}

func NewDashboardRepository(db *gorm.DB) DashboardRepository {
	return &dashboardRepository{db}
}

func (r *dashboardRepository) CountActive(ctx context.Context, personType model.PersonType) (int64, error) {
	var total int64
	query := r.db.WithContext(ctx)
	switch personType {
	case model.PersonStudent:
		query = query.Model(&model.Student{})
	case model.PersonTeacher:
		query = query.Model(&model.Teacher{})
	default:
		return 0, fmt.Errorf("person type %q tidak dikenal", personType)
	}
	err := query.Where("is_active = ?", true).Count(&total).Error
	return total, err
}

// CountByStatus menghitung absensi dalam rentang tanggal [from, to] (inklusif).
func (r *dashboardRepository) CountByStatus(ctx context.Context, personType model.PersonType, from, to string) (StatusTotals, error) {
	var rows []struct {
		Status model.AttendanceStatus
		Count  int64
	}
	err := r.db.WithContext(ctx).Model(&model.Attendance{}).
		Where("person_type = ? AND date BETWEEN ? AND ?", personType, from, to).
		Group("status").Select("status, count(*) as count").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	totals := StatusTotals{}
	for _, s := range model.AttendanceStatuses {
		totals[s] = 0
	}
	for _, row := range rows {
		totals[row.Status] = row.Count
	}
	return totals, nil
}
