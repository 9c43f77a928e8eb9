package model

import "gorm.io/gorm"

const (
	RoleAdmin    = "admin"
	RoleOperator = "operator"
)

// User adalah akun panel admin/operator.
type User struct {
	gorm.Model
	Username string `json:"username" gorm:"size:50;unique;not null"`
	Name     string `json:"name"`
	Password string `json:"-"`
	Role     string `json:"role" gorm:"size:20;default:operator"`
}
