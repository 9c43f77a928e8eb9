// Package presenter memetakan enum domain ke label dan warna untuk tampilan
// (panel admin, pesan WhatsApp, laporan).
package presenter

import "absensi-sekolah/internal/model"

type Badge struct {
	Label string `json:"label"`
	Color string `json:"color"`
}

var statusBadges = map[model.AttendanceStatus]Badge{
	model.StatusPresent:    {Label: "Hadir", Color: "success"},
	model.StatusLate:       {Label: "Terlambat", Color: "warning"},
	model.StatusAbsent:     {Label: "Alpha", Color: "danger"},
	model.StatusSick:       {Label: "Sakit", Color: "info"},
	model.StatusPermission: {Label: "Izin", Color: "primary"},
}

func StatusBadge(s model.AttendanceStatus) Badge {
	if b, ok := statusBadges[s]; ok {
		return b
	}
	return Badge{Label: string(s), Color: "gray"}
}

func StatusLabel(s model.AttendanceStatus) string {
	return StatusBadge(s).Label
}

func LeaveTypeLabel(t model.LeaveType) string {
	return StatusLabel(t.Status())
}

func PersonTypeLabel(t model.PersonType) string {
	if t == model.PersonTeacher {
		return "Guru"
	}
	return "Siswa"
}

var monthNames = [...]string{"", "Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember"}

// MonthLabel mengubah "2025-08" menjadi "Agustus 2025".
func MonthLabel(month string) string {
	if len(month) != 7 {
		return month
	}
	m := int(month[5]-'0')*10 + int(month[6]-'0')
	if m < 1 || m > 12 {
		return month
	}
	return monthNames[m] + " " + month[:4]
}
