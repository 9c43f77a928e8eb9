package model

import "gorm.io/gorm"

// Attendance menyimpan absensi siswa dan guru. Satu baris per orang per hari,
// dijaga oleh unique index idx_attendance_person_date.
type Attendance struct {
	gorm.Model
	PersonType     PersonType       `json:"person_type" gorm:"size:10;not null;uniqueIndex:idx_attendance_person_date,priority:1"`
	PersonID       uint             `json:"person_id" gorm:"not null;uniqueIndex:idx_attendance_person_date,priority:2"`
	Date           string           `json:"date" gorm:"size:10;not null;uniqueIndex:idx_attendance_person_date,priority:3;index"` // YYYY-MM-DD
	TimeIn         *string          `json:"time_in" gorm:"size:8"`                                                               // HH:MM:SS
	TimeOut        *string          `json:"time_out" gorm:"size:8"`
	Status         AttendanceStatus `json:"status" gorm:"size:20;not null;index"`
	DeviceID       *string          `json:"device_id" gorm:"size:50"`
	PhotoIn        *string          `json:"photo_in"`
	LeaveRequestID *uint            `json:"leave_request_id"`
}
