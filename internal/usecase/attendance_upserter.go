package usecase

import (
	"context"
	"errors"
	"time"

	"absensi-sekolah/internal/model"
	"absensi-sekolah/internal/repository"

	"go.uber.org/zap"
)

// RankingApplier menerima setiap transisi status absensi siswa.
type RankingApplier interface {
	Apply(ctx context.Context, studentID uint, date string, from, to model.AttendanceStatus) error
}

type AttendanceNotifier interface {
	AttendanceChanged(ctx context.Context, person model.Person, attendance model.Attendance)
}

type ScanOutcome struct {
	Attendance *model.Attendance
	Result     ScanResult
	Created    bool
}

// AttendanceUpserter adalah satu-satunya jalur yang mengubah absensi harian.
// Keunikan orang/tanggal dijaga unique index, bukan lock di aplikasi.
type AttendanceUpserter struct {
	repo     repository.AttendanceRepository
	persons  repository.PersonRepository
	ranking  RankingApplier
	notifier AttendanceNotifier
	log      *zap.Logger
}

func NewAttendanceUpserter(repo repository.AttendanceRepository, persons repository.PersonRepository, ranking RankingApplier, notifier AttendanceNotifier, log *zap.Logger) *AttendanceUpserter {
	return &AttendanceUpserter{repo: repo, persons: persons, ranking: ranking, notifier: notifier, log: log}
}

func (u *AttendanceUpserter) current(ctx context.Context, person model.Person, date string) (*model.Attendance, error) {
	a, err := u.repo.FindByPersonAndDate(ctx, person.Type, person.ID, date)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	return a, err
}

// ApplyScan mencatat scan sidik jari. Dua scan pertama yang datang bersamaan
// menghasilkan satu baris: yang kalah insert diulang sebagai scan pulang.
func (u *AttendanceUpserter) ApplyScan(ctx context.Context, person model.Person, rule *model.AttendanceRule, scannedAt time.Time, deviceID string) (*ScanOutcome, error) {
	date := scannedAt.Format(DateLayout)
	var device *string
	if deviceID != "" {
		device = &deviceID
	}

	existing, err := u.current(ctx, person, date)
	if err != nil {
		return nil, err
	}

	for attempt := 0; attempt < 3; attempt++ {
		result, err := ClassifyScan(rule, scannedAt, existing)
		if err != nil {
			return &ScanOutcome{Attendance: existing, Result: result}, err
		}

		switch {
		case result.Kind == ScanIn && existing == nil:
			timeIn := result.Time
			a := &model.Attendance{
				PersonType: person.Type,
				PersonID:   person.ID,
				Date:       date,
				TimeIn:     &timeIn,
				Status:     result.Status,
				DeviceID:   device,
			}
			err := u.repo.Create(ctx, a)
			if errors.Is(err, repository.ErrDuplicate) {
				if existing, err = u.current(ctx, person, date); err != nil {
					return nil, err
				}
				continue
			}
			if err != nil {
				return nil, err
			}
			u.afterChange(ctx, person, a, "", true)
			return &ScanOutcome{Attendance: a, Result: result, Created: true}, nil

		case result.Kind == ScanIn:
			ok, err := u.repo.MarkIn(ctx, existing.ID, result.Time, result.Status, device)
			if err != nil {
				return nil, err
			}
			if !ok {
				if existing, err = u.current(ctx, person, date); err != nil {
					return nil, err
				}
				continue
			}
			from := existing.Status
			updated := *existing
			timeIn := result.Time
			updated.TimeIn = &timeIn
			updated.Status = result.Status
			updated.DeviceID = device
			u.afterChange(ctx, person, &updated, from, true)
			return &ScanOutcome{Attendance: &updated, Result: result}, nil

		default:
			ok, err := u.repo.MarkOut(ctx, existing.ID, result.Time)
			if err != nil {
				return nil, err
			}
			if !ok {
				return &ScanOutcome{Attendance: existing, Result: result}, ErrDuplicateScan
			}
			updated := *existing
			timeOut := result.Time
			updated.TimeOut = &timeOut
			u.afterChange(ctx, person, &updated, existing.Status, true)
			return &ScanOutcome{Attendance: &updated, Result: result}, nil
		}
	}
	return nil, ErrDuplicateScan
}

// MarkAbsent dipakai sweep harian. false bila orang tersebut sudah punya baris hari itu.
func (u *AttendanceUpserter) MarkAbsent(ctx context.Context, person model.Person, date string) (*model.Attendance, bool, error) {
	a := &model.Attendance{
		PersonType: person.Type,
		PersonID:   person.ID,
		Date:       date,
		Status:     model.StatusAbsent,
	}
	if err := u.repo.Create(ctx, a); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, false, nil
		}
		return nil, false, err
	}
	u.afterChange(ctx, person, a, "", true)
	return a, true, nil
}

// UpdateStatus adalah koreksi manual dari admin.
func (u *AttendanceUpserter) UpdateStatus(ctx context.Context, id uint, status model.AttendanceStatus) (*model.Attendance, error) {
	if !status.Valid() {
		verr := NewValidationError()
		verr.Add("status", "harus salah satu dari: present late absent sick permission")
		return nil, verr
	}
	a, err := u.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAttendanceNotFound
		}
		return nil, err
	}
	if a.Status == status {
		return a, nil
	}
	if err := u.repo.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAttendanceNotFound
		}
		return nil, err
	}
	from := a.Status
	a.Status = status
	u.afterChange(ctx, u.personOf(ctx, a), a, from, true)
	return a, nil
}

func (u *AttendanceUpserter) Delete(ctx context.Context, id uint) error {
	a, err := u.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrAttendanceNotFound
		}
		return err
	}
	if err := u.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrAttendanceNotFound
		}
		return err
	}
	u.applyRanking(ctx, model.Person{Type: a.PersonType, ID: a.PersonID}, a.Date, a.Status, "")
	return nil
}

func (u *AttendanceUpserter) personOf(ctx context.Context, a *model.Attendance) model.Person {
	p, err := u.persons.FindByRef(ctx, a.PersonType, a.PersonID)
	if err != nil {
		u.log.Warn("data orang untuk absensi tidak ditemukan", zap.Uint("attendance_id", a.ID), zap.Error(err))
		return model.Person{Type: a.PersonType, ID: a.PersonID}
	}
	return *p
}

// afterChange menjalankan ranking dan notifikasi. Kegagalan keduanya hanya dicatat,
// perubahan absensi tidak dibatalkan.
func (u *AttendanceUpserter) afterChange(ctx context.Context, person model.Person, a *model.Attendance, from model.AttendanceStatus, notify bool) {
	u.applyRanking(ctx, person, a.Date, from, a.Status)
	if notify && u.notifier != nil && from != a.Status && notifiable(a.Status) {
		u.notifier.AttendanceChanged(ctx, person, *a)
	}
}

func (u *AttendanceUpserter) applyRanking(ctx context.Context, person model.Person, date string, from, to model.AttendanceStatus) {
	if person.Type != model.PersonStudent || u.ranking == nil {
		return
	}
	if err := u.ranking.Apply(ctx, person.ID, date, from, to); err != nil {
		u.log.Error("gagal memperbarui ranking disiplin",
			zap.Uint("student_id", person.ID),
			zap.String("date", date),
			zap.Error(err))
	}
}

func notifiable(s model.AttendanceStatus) bool {
	return s == model.StatusLate || s == model.StatusAbsent || s.Excused()
}
