package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repositories adalah kumpulan repository yang berbagi satu koneksi/transaksi.
type Repositories struct {
	Attendance AttendanceRepository
	Leave      LeaveRequestRepository
}

func NewRepositories(db *gorm.DB) Repositories {
	return Repositories{
		Attendance: NewAttendanceRepository(db),
		Leave:      NewLeaveRequestRepository(db),
	}
}

type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(tx Repositories) error) error
}

type gormTransactor struct {
	db *gorm.DB
}

func NewTransactor(db *gorm.DB) Transactor {
	return &gormTransactor{db}
}

func (t *gormTransactor) WithinTransaction(ctx context.Context, fn func(tx Repositories) error) error {
	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepositories(tx))
	})
}
