package model

import "time"

const (
	ScanSuccess = "success"
	ScanFail    = "fail"
)

// ScanLog hanya ditambah, tidak pernah diubah atau dihapus.
type ScanLog struct {
	ID            uint        `json:"id" gorm:"primaryKey"`
	FingerprintID string      `json:"fingerprint_id" gorm:"size:30;index"`
	EventType     string      `json:"event_type" gorm:"size:20"`
	ScannedAt     *time.Time  `json:"scanned_at"`
	DeviceID      string      `json:"device_id" gorm:"size:50"`
	Result        string      `json:"result" gorm:"size:10;not null"`
	Message       string      `json:"message" gorm:"size:255"`
	PersonType    *PersonType `json:"person_type" gorm:"size:10"`
	PersonID      *uint       `json:"person_id"`
	CreatedAt     time.Time   `json:"created_at"`
}
