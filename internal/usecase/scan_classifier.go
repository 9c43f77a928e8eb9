package usecase

import (
	"time"

	"absensi-sekolah/internal/model"
)

type ScanKind string

const (
	ScanIn  ScanKind = "in"
	ScanOut ScanKind = "out"
)

type ScanResult struct {
	Kind   ScanKind
	Status model.AttendanceStatus
	Time   string // HH:MM:SS

	// RuleMissing true bila status tidak bisa dibandingkan dengan aturan.
	RuleMissing bool
}

// ClassifyScan menentukan apakah scan adalah masuk atau pulang beserta statusnya.
// existing adalah absensi orang tersebut pada tanggal scan, nil bila belum ada.
func ClassifyScan(rule *model.AttendanceRule, scannedAt time.Time, existing *model.Attendance) (ScanResult, error) {
	clock := scannedAt.Format(TimeLayout)

	if existing != nil {
		switch {
		case existing.TimeIn != nil && existing.TimeOut != nil:
			return ScanResult{}, ErrDuplicateScan
		case existing.TimeIn != nil:
			return ScanResult{Kind: ScanOut, Status: existing.Status, Time: clock}, nil
		case existing.Status.Excused():
			return ScanResult{}, ErrOnLeave
		}
		// Baris alpha dari sweep tanpa jam masuk: datang terlambat tetap dihitung masuk
	}

	result := ScanResult{Kind: ScanIn, Status: model.StatusPresent, Time: clock}
	if rule == nil {
		result.RuleMissing = true
		return result, nil
	}
	limit, err := parseClock(rule.TimeInEnd)
	if err != nil {
		result.RuleMissing = true
		return result, nil
	}
	// Scan sebelum time_in_start tetap diterima sebagai masuk (datang lebih awal)
	if secondsOfDay(scannedAt) > limit {
		result.Status = model.StatusLate
	}
	return result, nil
}
