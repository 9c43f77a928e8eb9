package model

import "gorm.io/gorm"

type Holiday struct {
	gorm.Model
	Date        string `json:"date" gorm:"size:10;unique;not null"` // Format YYYY-MM-DD
	Description string `json:"description"`
}
