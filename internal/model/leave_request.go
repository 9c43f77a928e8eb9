package model

import "gorm.io/gorm"

type LeaveRequest struct {
	gorm.Model
	PersonType    PersonType `json:"person_type" gorm:"size:10;not null;index:idx_leave_person,priority:1"`
	PersonID      uint       `json:"person_id" gorm:"not null;index:idx_leave_person,priority:2"`
	Type          LeaveType  `json:"type" gorm:"size:20;not null"`
	StartDate     string     `json:"start_date" gorm:"size:10;not null"` // YYYY-MM-DD, inklusif
	EndDate       string     `json:"end_date" gorm:"size:10;not null"`
	Reason        string     `json:"reason" gorm:"type:text"`
	Via           string     `json:"via" gorm:"size:10;default:online"`
	AttachmentURL string     `json:"attachment_url"`
}
