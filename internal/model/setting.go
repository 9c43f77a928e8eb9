package model

import "time"

const (
	SettingString = "string"
	SettingInt    = "int"
	SettingFloat  = "float"
	SettingBool   = "bool"
	SettingJSON   = "json"
)

type Setting struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Key       string    `json:"key" gorm:"column:setting_key;size:100;unique;not null"`
	Value     string    `json:"value" gorm:"type:text"`
	Type      string    `json:"type" gorm:"size:10;default:string"`
	Group     string    `json:"group" gorm:"column:group_name;size:50;default:general"`
	UpdatedAt time.Time `json:"updated_at"`
}
