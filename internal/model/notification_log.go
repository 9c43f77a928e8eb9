package model

import (
	"time"

	"gorm.io/datatypes"
)

const (
	NotificationQueued = "queued"
	NotificationSent   = "sent"
	NotificationFailed = "failed"
)

type NotificationLog struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	MessageID   string         `json:"message_id" gorm:"size:36;index"`
	Channel     string         `json:"channel" gorm:"size:20"` // whatsapp | email
	Destination string         `json:"destination" gorm:"size:120"`
	Message     string         `json:"message" gorm:"type:text"`
	Status      string         `json:"status" gorm:"size:10"`
	Error       string         `json:"error" gorm:"type:text"`
	Reference   string         `json:"reference" gorm:"size:100"` // contoh: attendance:12
	Payload     datatypes.JSON `json:"payload"`
	CreatedAt   time.Time      `json:"created_at"`
}
