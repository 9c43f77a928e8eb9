package model

import "strings"

// AttendanceStatus adalah status absensi harian, tanpa label/warna tampilan.
type AttendanceStatus string

const (
	StatusPresent    AttendanceStatus = "present"
	StatusLate       AttendanceStatus = "late"
	StatusAbsent     AttendanceStatus = "absent"
	StatusSick       AttendanceStatus = "sick"
	StatusPermission AttendanceStatus = "permission"
)

var AttendanceStatuses = []AttendanceStatus{StatusPresent, StatusLate, StatusAbsent, StatusSick, StatusPermission}

func (s AttendanceStatus) Valid() bool {
	switch s {
	case StatusPresent, StatusLate, StatusAbsent, StatusSick, StatusPermission:
		return true
	default:
		return false
	}
}

// Excused true untuk status yang berasal dari perizinan.
func (s AttendanceStatus) Excused() bool {
	return s == StatusSick || s == StatusPermission
}

type LeaveType string

const (
	LeaveSick       LeaveType = "sick"
	LeavePermission LeaveType = "permission"
)

// ParseLeaveType menerima "Sakit"/"Izin" dari webhook dan "sick"/"permission".
func ParseLeaveType(s string) (LeaveType, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sakit", "sick":
		return LeaveSick, true
	case "izin", "permission":
		return LeavePermission, true
	default:
		return "", false
	}
}

func (t LeaveType) Status() AttendanceStatus {
	if t == LeaveSick {
		return StatusSick
	}
	return StatusPermission
}

const (
	ViaOnline = "online"
	ViaManual = "manual"
)
