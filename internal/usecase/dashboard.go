package usecase

import (
	"context"
	"fmt"

	"absensi-sekolah/internal/model"
	"absensi-sekolah/internal/repository"
)

// GroupStats adalah statistik satu kelompok (siswa atau guru).
type GroupStats struct {
	Active int64                   `json:"active"`
	Today  repository.StatusTotals `json:"today"`
	// NotRecorded: aktif tapi belum punya baris absensi pada tanggal tersebut
	NotRecorded int64                   `json:"not_recorded"`
	Month       repository.StatusTotals `json:"month"`
}

type DashboardStats struct {
	Date     string     `json:"date"`
	Month    string     `json:"month"`
	Students GroupStats `json:"students"`
	Teachers GroupStats `json:"teachers"`
}

type DashboardUsecase struct {
	repo repository.DashboardRepository
}

func NewDashboardUsecase(repo repository.DashboardRepository) *DashboardUsecase {
	return &DashboardUsecase{repo: repo}
}

func (u *DashboardUsecase) Stats(ctx context.Context, date string) (*DashboardStats, error) {
	if _, err := ParseDate(date); err != nil {
		verr := NewValidationError()
		verr.Add("date", "format tanggal harus YYYY-MM-DD")
		return nil, verr
	}
	stats := &DashboardStats{Date: date, Month: MonthOf(date)}

	var err error
	if stats.Students, err = u.group(ctx, model.PersonStudent, date, stats.Month); err != nil {
		return nil, err
	}
	if stats.Teachers, err = u.group(ctx, model.PersonTeacher, date, stats.Month); err != nil {
		return nil, err
	}
	return stats, nil
}

func (u *DashboardUsecase) group(ctx context.Context, personType model.PersonType, date, month string) (GroupStats, error) {
	var g GroupStats
	var err error
	if g.Active, err = u.repo.CountActive(ctx, personType); err != nil {
		return g, fmt.Errorf("hitung %s aktif: %w", personType, err)
	}
	if g.Today, err = u.repo.CountByStatus(ctx, personType, date, date); err != nil {
		return g, fmt.Errorf("statistik harian %s: %w", personType, err)
	}
	if g.Month, err = u.repo.CountByStatus(ctx, personType, month+"-01", month+"-31"); err != nil {
		return g, fmt.Errorf("statistik bulanan %s: %w", personType, err)
	}

	var recorded int64
	for _, n := range g.Today {
		recorded += n
	}
	if g.NotRecorded = g.Active - recorded; g.NotRecorded < 0 {
		g.NotRecorded = 0
	}
	return g, nil
}
