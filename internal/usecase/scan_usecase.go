package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"absensi-sekolah/internal/metrics"
	"absensi-sekolah/internal/model"
	"absensi-sekolah/internal/repository"

	"go.uber.org/zap"
)

// EventAttendanceLog adalah tipe event mesin sidik jari yang berisi scan absensi.
const EventAttendanceLog = "attlog"

var scanLayouts = []string{"2006-01-02 15:04:05", "2006-01-02T15:04:05", time.RFC3339}

type ScanData struct {
	PIN  string `json:"pin" validate:"required"`
	Scan string `json:"scan" validate:"required"`
}

// ScanInput adalah body webhook mesin sidik jari.
type ScanInput struct {
	Type    string   `json:"type" validate:"required"`
	CloudID string   `json:"cloud_id"`
	Data    ScanData `json:"data"`
}

type ScanReply struct {
	Accepted   bool              `json:"accepted"`
	Message    string            `json:"message"`
	Kind       ScanKind          `json:"kind,omitempty"`
	Person     *model.Person     `json:"person,omitempty"`
	Attendance *model.Attendance `json:"attendance,omitempty"`
}

type ScanUsecase struct {
	persons  repository.PersonRepository
	logs     repository.ScanLogRepository
	resolver *RuleResolver
	upserter *AttendanceUpserter
	settings SettingsProvider
	loc      *time.Location
	log      *zap.Logger
}

func NewScanUsecase(persons repository.PersonRepository, logs repository.ScanLogRepository, resolver *RuleResolver, upserter *AttendanceUpserter, settings SettingsProvider, loc *time.Location, log *zap.Logger) *ScanUsecase {
	if loc == nil {
		loc = time.Local
	}
	return &ScanUsecase{persons: persons, logs: logs, resolver: resolver, upserter: upserter, settings: settings, loc: loc, log: log}
}

// ParseScanTime membaca waktu scan di zona waktu sekolah. RFC3339 memakai offset-nya
// sendiri lalu dikonversi ke zona sekolah.
func ParseScanTime(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range scanLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t.In(loc), nil
		}
	}
	return time.Time{}, fmt.Errorf("waktu scan %q tidak dikenali", s)
}

// Process menangani satu event webhook. Error yang dikembalikan hanya NotFound,
// ValidationError dan error internal; scan duplikat atau saat izin dianggap selesai
// (Accepted=false) supaya mesin tidak mengulang pengiriman.
func (u *ScanUsecase) Process(ctx context.Context, in ScanInput) (*ScanReply, error) {
	in.Data.PIN = strings.TrimSpace(in.Data.PIN)
	entry := &model.ScanLog{
		FingerprintID: in.Data.PIN,
		EventType:     in.Type,
		DeviceID:      in.CloudID,
	}

	verr := validateStruct(in)
	var scannedAt time.Time
	if in.Data.Scan != "" {
		t, err := ParseScanTime(in.Data.Scan, u.loc)
		if err != nil {
			verr.Add("data.scan", "format waktu harus YYYY-MM-DD HH:MM:SS")
		} else {
			scannedAt = t
			entry.ScannedAt = &scannedAt
		}
	}
	if verr.HasErrors() {
		u.finish(ctx, entry, model.ScanFail, verr.Error(), "")
		return nil, verr
	}

	if in.Type != EventAttendanceLog {
		u.finish(ctx, entry, model.ScanSuccess, "event "+in.Type+" diabaikan", "")
		return &ScanReply{Accepted: false, Message: "event diabaikan"}, nil
	}

	person, err := u.persons.FindByFingerprint(ctx, in.Data.PIN)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			u.finish(ctx, entry, model.ScanFail, "pin tidak terdaftar", "")
			return nil, ErrPersonNotFound
		}
		u.finish(ctx, entry, model.ScanFail, err.Error(), "")
		return nil, err
	}
	entry.PersonType = &person.Type
	entry.PersonID = &person.ID

	rule, err := u.resolver.Resolve(ctx, person.ClassID, scannedAt)
	if err != nil {
		u.finish(ctx, entry, model.ScanFail, err.Error(), "")
		return nil, err
	}
	if rule == nil {
		u.log.Warn("tidak ada aturan absensi untuk scan",
			zap.String("person_type", string(person.Type)),
			zap.Uint("person_id", person.ID),
			zap.Uintp("class_id", person.ClassID),
			zap.String("date", scannedAt.Format(DateLayout)))
		if u.settings.Bool(ctx, KeyRejectWithoutRule, false) {
			u.finish(ctx, entry, model.ScanFail, ErrRuleNotFound.Error(), "")
			return &ScanReply{Accepted: false, Message: ErrRuleNotFound.Error(), Person: person}, nil
		}
	}

	outcome, err := u.upserter.ApplyScan(ctx, *person, rule, scannedAt, in.CloudID)
	switch {
	case errors.Is(err, ErrDuplicateScan), errors.Is(err, ErrOnLeave):
		reply := &ScanReply{Accepted: false, Message: err.Error(), Person: person}
		if outcome != nil {
			reply.Attendance = outcome.Attendance
		}
		u.finish(ctx, entry, model.ScanFail, err.Error(), "")
		return reply, nil
	case err != nil:
		u.finish(ctx, entry, model.ScanFail, err.Error(), "")
		return nil, err
	}

	entry.EventType = string(outcome.Result.Kind)
	msg := fmt.Sprintf("%s: %s", outcome.Result.Kind, outcome.Attendance.Status)
	if outcome.Result.RuleMissing {
		msg += " (tanpa aturan absensi)"
	}
	u.finish(ctx, entry, model.ScanSuccess, msg, outcome.Result.Kind)
	metrics.AttendanceWrites.WithLabelValues(string(outcome.Attendance.Status)).Inc()

	return &ScanReply{
		Accepted:   true,
		Message:    msg,
		Kind:       outcome.Result.Kind,
		Person:     person,
		Attendance: outcome.Attendance,
	}, nil
}

// finish menulis ScanLog. Gagal menulis log hanya dicatat, tidak menggagalkan request.
func (u *ScanUsecase) finish(ctx context.Context, entry *model.ScanLog, result, message string, kind ScanKind) {
	entry.Result = result
	if len(message) > 255 {
		message = message[:255]
	}
	entry.Message = message
	metrics.ScansTotal.WithLabelValues(result, string(kind)).Inc()
	if err := u.logs.Create(ctx, entry); err != nil {
		u.log.Error("gagal menulis scan log", zap.String("pin", entry.FingerprintID), zap.Error(err))
	}
}
