package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"absensi-sekolah/internal/model"
	"absensi-sekolah/internal/repository"

	"go.uber.org/zap"
)

// SelectRule memilih aturan yang berlaku untuk tanggal tersebut dari daftar aturan
// satu kelas (terurut id). date_override selalu menang atas hari. ambiguous true bila
// lebih dari satu aturan cocok pada tingkat yang sama; yang pertama tetap dipakai.
func SelectRule(rules []model.AttendanceRule, date, weekday string) (*model.AttendanceRule, bool) {
	var override, byDay *model.AttendanceRule
	overrides, days := 0, 0

	for i := range rules {
		r := &rules[i]
		if r.DateOverride != nil {
			if *r.DateOverride == date {
				if override == nil {
					override = r
				}
				overrides++
			}
			continue
		}
		if r.HasDay(weekday) {
			if byDay == nil {
				byDay = r
			}
			days++
		}
	}

	if override != nil {
		return override, overrides > 1
	}
	return byDay, days > 1
}

type RuleResolver struct {
	rules repository.AttendanceRuleRepository
	log   *zap.Logger
}

func NewRuleResolver(rules repository.AttendanceRuleRepository, log *zap.Logger) *RuleResolver {
	return &RuleResolver{rules: rules, log: log}
}

// Resolve mengembalikan nil, nil bila tidak ada aturan untuk kelas/tanggal tersebut.
func (r *RuleResolver) Resolve(ctx context.Context, classID *uint, date time.Time) (*model.AttendanceRule, error) {
	rules, err := r.rules.ListByClass(ctx, classID)
	if err != nil {
		return nil, fmt.Errorf("ambil aturan absensi: %w", err)
	}
	day := date.Format(DateLayout)
	rule, ambiguous := SelectRule(rules, day, WeekdayCode(date))
	if ambiguous {
		r.log.Warn("lebih dari satu aturan absensi cocok, memakai yang pertama",
			zap.Uintp("class_id", classID),
			zap.String("date", day),
			zap.Uint("rule_id", rule.ID))
	}
	return rule, nil
}

// ValidateRule memeriksa format aturan lalu bentrokannya dengan aturan lain di kelas
// yang sama. Hasilnya *ValidationError atau ErrRuleConflict.
func ValidateRule(candidate *model.AttendanceRule, existing []model.AttendanceRule) error {
	verr := validateStruct(ruleClocks{
		TimeInStart:  candidate.TimeInStart,
		TimeInEnd:    candidate.TimeInEnd,
		TimeOutStart: candidate.TimeOutStart,
		TimeOutEnd:   candidate.TimeOutEnd,
	})
	if !verr.HasErrors() {
		fields := []string{"time_in_start", "time_in_end", "time_out_start", "time_out_end"}
		values := []string{candidate.TimeInStart, candidate.TimeInEnd, candidate.TimeOutStart, candidate.TimeOutEnd}
		prev, _ := parseClock(values[0])
		for i := 1; i < len(values); i++ {
			cur, _ := parseClock(values[i])
			if cur < prev {
				verr.Add(fields[i], "tidak boleh lebih awal dari "+fields[i-1])
			}
			prev = cur
		}
	}

	hasOverride := candidate.DateOverride != nil && *candidate.DateOverride != ""
	if !hasOverride {
		candidate.DateOverride = nil
	}
	switch {
	case hasOverride && len(candidate.DaysOfWeek) > 0:
		verr.Add("days_of_week", "isi date_override atau days_of_week, bukan keduanya")
	case !hasOverride && len(candidate.DaysOfWeek) == 0:
		verr.Add("days_of_week", "wajib diisi bila date_override kosong")
	}
	if hasOverride {
		if _, err := ParseDate(*candidate.DateOverride); err != nil {
			verr.Add("date_override", "format tanggal harus YYYY-MM-DD")
		}
	}
	for i, d := range candidate.DaysOfWeek {
		code := strings.ToLower(strings.TrimSpace(d))
		if !weekdayCodes[code] {
			verr.Add("days_of_week", fmt.Sprintf("hari %q tidak dikenal", d))
			continue
		}
		candidate.DaysOfWeek[i] = code
	}
	if verr.HasErrors() {
		return verr
	}

	for _, other := range existing {
		if other.ID == candidate.ID || !sameClass(other.ClassID, candidate.ClassID) {
			continue
		}
		if hasOverride {
			if other.DateOverride != nil && *other.DateOverride == *candidate.DateOverride {
				return fmt.Errorf("%w: aturan #%d sudah memakai tanggal %s", ErrRuleConflict, other.ID, *candidate.DateOverride)
			}
			continue
		}
		if other.DateOverride != nil {
			continue
		}
		for _, d := range candidate.DaysOfWeek {
			if other.HasDay(d) {
				return fmt.Errorf("%w: aturan #%d sudah berlaku hari %s", ErrRuleConflict, other.ID, d)
			}
		}
	}
	return nil
}

type ruleClocks struct {
	TimeInStart  string `json:"time_in_start" validate:"required,clock"`
	TimeInEnd    string `json:"time_in_end" validate:"required,clock"`
	TimeOutStart string `json:"time_out_start" validate:"required,clock"`
	TimeOutEnd   string `json:"time_out_end" validate:"required,clock"`
}

func sameClass(a, b *uint) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
