package model

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AttendanceRule menentukan jendela waktu masuk/pulang. ClassID nil berarti
// aturan untuk guru.
type AttendanceRule struct {
	gorm.Model
	ClassID      *uint                       `json:"class_id" gorm:"index"`
	Name         string                      `json:"name" gorm:"size:100"`
	DateOverride *string                     `json:"date_override" gorm:"size:10"` // YYYY-MM-DD
	DaysOfWeek   datatypes.JSONSlice[string] `json:"days_of_week"`                 // monday..sunday
	TimeInStart  string                      `json:"time_in_start" gorm:"size:8;not null"`
	TimeInEnd    string                      `json:"time_in_end" gorm:"size:8;not null"`
	TimeOutStart string                      `json:"time_out_start" gorm:"size:8;not null"`
	TimeOutEnd   string                      `json:"time_out_end" gorm:"size:8;not null"`
}

func (r AttendanceRule) HasDay(day string) bool {
	for _, d := range r.DaysOfWeek {
		if d == day {
			return true
		}
	}
	return false
}
