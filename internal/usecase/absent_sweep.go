package usecase

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"absensi-sekolah/internal/metrics"
	"absensi-sekolah/internal/model"
	"absensi-sekolah/internal/repository"

	"go.uber.org/zap"
)

// AbsentSweep menandai alpha semua siswa/guru aktif yang belum punya absensi hari ini,
// hanya bila ada aturan absensi yang berlaku untuk mereka hari ini.
type AbsentSweep struct {
	persons    repository.PersonRepository
	attendance repository.AttendanceRepository
	holidays   repository.HolidayRepository
	resolver   *RuleResolver
	upserter   *AttendanceUpserter
	log        *zap.Logger
}

func NewAbsentSweep(persons repository.PersonRepository, attendance repository.AttendanceRepository, holidays repository.HolidayRepository, resolver *RuleResolver, upserter *AttendanceUpserter, log *zap.Logger) *AbsentSweep {
	return &AbsentSweep{persons: persons, attendance: attendance, holidays: holidays, resolver: resolver, upserter: upserter, log: log}
}

func (s *AbsentSweep) Run(ctx context.Context, now time.Time) (int, error) {
	date := now.Format(DateLayout)
	holiday, err := s.holidays.IsHoliday(ctx, date)
	if err != nil {
		return 0, err
	}
	if holiday {
		s.log.Info("hari libur, sweep alpha dilewati", zap.String("date", date))
		return 0, nil
	}

	marked := 0
	for _, pt := range []model.PersonType{model.PersonStudent, model.PersonTeacher} {
		n, err := s.sweep(ctx, pt, now)
		marked += n
		if err != nil {
			return marked, fmt.Errorf("sweep %s: %w", pt, err)
		}
	}
	metrics.SweepMarked.Add(float64(marked))
	s.log.Info("sweep alpha selesai", zap.String("date", date), zap.Int("marked", marked))
	return marked, nil
}

func (s *AbsentSweep) sweep(ctx context.Context, pt model.PersonType, now time.Time) (int, error) {
	date := now.Format(DateLayout)
	persons, err := s.persons.ListActive(ctx, pt)
	if err != nil {
		return 0, err
	}
	present, err := s.attendance.PersonIDsOnDate(ctx, pt, date)
	if err != nil {
		return 0, err
	}

	// cache aturan per kelas selama satu sweep
	hasRule := map[string]bool{}
	marked := 0
	for _, p := range persons {
		if present[p.ID] {
			continue
		}
		key := "staff"
		if p.ClassID != nil {
			key = strconv.FormatUint(uint64(*p.ClassID), 10)
		}
		applies, ok := hasRule[key]
		if !ok {
			rule, err := s.resolver.Resolve(ctx, p.ClassID, now)
			if err != nil {
				return marked, err
			}
			applies = rule != nil
			hasRule[key] = applies
		}
		if !applies {
			continue
		}

		_, created, err := s.upserter.MarkAbsent(ctx, p, date)
		if err != nil {
			s.log.Error("gagal menandai alpha", zap.String("person_type", string(pt)), zap.Uint("person_id", p.ID), zap.Error(err))
			continue
		}
		if created {
			marked++
		}
	}
	return marked, nil
}
