package repository

import (
	"context"
	"path/filepath"
	"testing"

	"absensi-sekolah/internal/model"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "absensi.db")), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.Class{},
		&model.Student{},
		&model.Teacher{},
		&model.Attendance{},
		&model.LeaveRequest{},
		&model.DisciplineRanking{},
	))
	return db
}

func strPtr(s string) *string { return &s }
func uintPtr(n uint) *uint    { return &n }

func TestAttendanceRepository_CreateAndMark(t *testing.T) {
	ctx := context.Background()
	repo := NewAttendanceRepository(newTestDB(t))

	// baris alpha dari sweep, belum ada jam masuk
	row := &model.Attendance{PersonType: model.PersonStudent, PersonID: 1, Date: "2025-08-04", Status: model.StatusAbsent}
	require.NoError(t, repo.Create(ctx, row))

	dup := &model.Attendance{PersonType: model.PersonStudent, PersonID: 1, Date: "2025-08-04", Status: model.StatusPresent}
	assert.ErrorIs(t, repo.Create(ctx, dup), ErrDuplicate)

	// guru dengan id yang sama tidak bentrok
	require.NoError(t, repo.Create(ctx, &model.Attendance{PersonType: model.PersonTeacher, PersonID: 1, Date: "2025-08-04", Status: model.StatusPresent}))

	ok, err := repo.MarkOut(ctx, row.ID, "15:00:00")
	require.NoError(t, err)
	assert.False(t, ok, "pulang tanpa jam masuk")

	ok, err = repo.MarkIn(ctx, row.ID, "07:10:00", model.StatusLate, strPtr("GXA123"))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.MarkIn(ctx, row.ID, "07:20:00", model.StatusLate, nil)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = repo.MarkOut(ctx, row.ID, "15:00:00")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.MarkOut(ctx, row.ID, "15:30:00")
	require.NoError(t, err)
	assert.False(t, ok)

	got, err := repo.FindByPersonAndDate(ctx, model.PersonStudent, 1, "2025-08-04")
	require.NoError(t, err)
	assert.Equal(t, model.StatusLate, got.Status)
	assert.Equal(t, "07:10:00", *got.TimeIn)
	assert.Equal(t, "15:00:00", *got.TimeOut)
	assert.Equal(t, "GXA123", *got.DeviceID)

	_, err = repo.FindByPersonAndDate(ctx, model.PersonStudent, 1, "2025-08-05")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAttendanceRepository_UpsertExcused(t *testing.T) {
	ctx := context.Background()
	repo := NewAttendanceRepository(newTestDB(t))

	present := &model.Attendance{
		PersonType: model.PersonStudent, PersonID: 2, Date: "2025-08-04",
		Status: model.StatusPresent, TimeIn: strPtr("06:45:00"), DeviceID: strPtr("GXA123"),
	}
	require.NoError(t, repo.Create(ctx, present))

	got, err := repo.UpsertExcused(ctx, &model.Attendance{
		PersonType: model.PersonStudent, PersonID: 2, Date: "2025-08-04",
		Status: model.StatusSick, LeaveRequestID: uintPtr(5),
	})
	require.NoError(t, err)
	assert.Equal(t, present.ID, got.ID)
	assert.Equal(t, model.StatusSick, got.Status)
	assert.Nil(t, got.TimeIn)
	assert.Nil(t, got.DeviceID)
	require.NotNil(t, got.LeaveRequestID)
	assert.Equal(t, uint(5), *got.LeaveRequestID)

	fresh, err := repo.UpsertExcused(ctx, &model.Attendance{
		PersonType: model.PersonStudent, PersonID: 2, Date: "2025-08-05",
		Status: model.StatusPermission, LeaveRequestID: uintPtr(5),
	})
	require.NoError(t, err)
	assert.NotEqual(t, present.ID, fresh.ID)

	_, total, err := repo.List(ctx, AttendanceFilter{PersonType: model.PersonStudent, PersonID: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
}

func TestAttendanceRepository_RepointLeave(t *testing.T) {
	ctx := context.Background()
	repo := NewAttendanceRepository(newTestDB(t))

	for _, date := range []string{"2025-08-01", "2025-08-02", "2025-08-03", "2025-08-04", "2025-08-05"} {
		_, err := repo.UpsertExcused(ctx, &model.Attendance{
			PersonType: model.PersonStudent, PersonID: 3, Date: date,
			Status: model.StatusSick, LeaveRequestID: uintPtr(1),
		})
		require.NoError(t, err)
	}
	require.NoError(t, repo.Create(ctx, &model.Attendance{PersonType: model.PersonStudent, PersonID: 3, Date: "2025-08-06", Status: model.StatusPresent}))
	_, err := repo.UpsertExcused(ctx, &model.Attendance{
		PersonType: model.PersonStudent, PersonID: 4, Date: "2025-08-04",
		Status: model.StatusSick, LeaveRequestID: uintPtr(1),
	})
	require.NoError(t, err)

	require.NoError(t, repo.RepointLeave(ctx, model.PersonStudent, 3, "2025-08-04", "2025-08-06", 2))

	leaveOf := func(personID uint, date string) *uint {
		row, err := repo.FindByPersonAndDate(ctx, model.PersonStudent, personID, date)
		require.NoError(t, err)
		return row.LeaveRequestID
	}
	assert.Equal(t, uint(1), *leaveOf(3, "2025-08-03"))
	assert.Equal(t, uint(2), *leaveOf(3, "2025-08-04"))
	assert.Equal(t, uint(2), *leaveOf(3, "2025-08-05"))
	assert.Nil(t, leaveOf(3, "2025-08-06"), "baris hasil scan tidak ikut")
	assert.Equal(t, uint(1), *leaveOf(4, "2025-08-04"), "orang lain tidak ikut")
}

func TestLeaveRequestRepository_ListOverlapping(t *testing.T) {
	ctx := context.Background()
	repo := NewLeaveRequestRepository(newTestDB(t))

	leaves := []*model.LeaveRequest{
		{PersonType: model.PersonStudent, PersonID: 1, Type: model.LeaveSick, StartDate: "2025-08-01", EndDate: "2025-08-05"},
		{PersonType: model.PersonStudent, PersonID: 1, Type: model.LeavePermission, StartDate: "2025-08-10", EndDate: "2025-08-12"},
		{PersonType: model.PersonStudent, PersonID: 2, Type: model.LeaveSick, StartDate: "2025-08-01", EndDate: "2025-08-31"},
		{PersonType: model.PersonTeacher, PersonID: 1, Type: model.LeaveSick, StartDate: "2025-08-01", EndDate: "2025-08-31"},
	}
	for _, l := range leaves {
		require.NoError(t, repo.Create(ctx, l))
	}

	ids := func(list []model.LeaveRequest) []uint {
		out := []uint{}
		for _, l := range list {
			out = append(out, l.ID)
		}
		return out
	}

	got, err := repo.ListOverlapping(ctx, model.PersonStudent, 1, "2025-08-05", "2025-08-10")
	require.NoError(t, err)
	assert.Equal(t, []uint{leaves[0].ID, leaves[1].ID}, ids(got), "batas tanggal inklusif")

	got, err = repo.ListOverlapping(ctx, model.PersonStudent, 1, "2025-08-06", "2025-08-09")
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = repo.ListOverlapping(ctx, model.PersonStudent, 1, "2025-07-20", "2025-09-01")
	require.NoError(t, err)
	assert.Len(t, got, 2)

	require.NoError(t, repo.UpdateRange(ctx, leaves[0].ID, "2025-08-01", "2025-08-02"))
	require.NoError(t, repo.Delete(ctx, leaves[1].ID))
	got, err = repo.ListOverlapping(ctx, model.PersonStudent, 1, "2025-08-03", "2025-08-31")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestPersonRepository_DeleteFreesFingerprint(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	persons := NewPersonRepository(db)
	attendance := NewAttendanceRepository(db)

	class := model.Class{Name: "X IPA 1"}
	require.NoError(t, db.Create(&class).Error)
	student := model.Student{ClassID: class.ID, NIS: "2024001", Name: "Budi", FingerprintID: "101", IsActive: true}
	require.NoError(t, db.Create(&student).Error)
	require.NoError(t, attendance.Create(ctx, &model.Attendance{PersonType: model.PersonStudent, PersonID: student.ID, Date: "2025-08-04", Status: model.StatusPresent}))

	p, err := persons.FindByFingerprint(ctx, "101")
	require.NoError(t, err)
	assert.Equal(t, "X IPA 1", p.ClassName)

	require.NoError(t, persons.Delete(ctx, model.PersonStudent, student.ID))
	assert.ErrorIs(t, persons.Delete(ctx, model.PersonStudent, student.ID), ErrNotFound)

	_, err = persons.FindByFingerprint(ctx, "101")
	assert.ErrorIs(t, err, ErrNotFound)
	_, total, err := attendance.List(ctx, AttendanceFilter{PersonType: model.PersonStudent, PersonID: student.ID})
	require.NoError(t, err)
	assert.Zero(t, total)

	// sidik jari dan NIS yang sama bisa didaftarkan ulang
	again := model.Student{ClassID: class.ID, NIS: "2024001", Name: "Budi", FingerprintID: "101", IsActive: true}
	require.NoError(t, db.Create(&again).Error)
	p, err = persons.FindByFingerprint(ctx, "101")
	require.NoError(t, err)
	assert.Equal(t, again.ID, p.ID)
}

func TestDashboardRepository(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	dashboard := NewDashboardRepository(db)
	attendance := NewAttendanceRepository(db)

	require.NoError(t, db.Create(&model.Teacher{NIP: "1980", Name: "Bu Sari", FingerprintID: "901", IsActive: true}).Error)
	inactive := model.Teacher{NIP: "1981", Name: "Pak Joko", FingerprintID: "902", IsActive: true}
	require.NoError(t, db.Create(&inactive).Error)
	require.NoError(t, db.Model(&inactive).Update("is_active", false).Error)

	active, err := dashboard.CountActive(ctx, model.PersonTeacher)
	require.NoError(t, err)
	assert.Equal(t, int64(1), active)

	rows := []model.Attendance{
		{PersonType: model.PersonStudent, PersonID: 1, Date: "2025-08-04", Status: model.StatusPresent},
		{PersonType: model.PersonStudent, PersonID: 2, Date: "2025-08-04", Status: model.StatusLate},
		{PersonType: model.PersonStudent, PersonID: 3, Date: "2025-08-04", Status: model.StatusPresent},
		{PersonType: model.PersonStudent, PersonID: 1, Date: "2025-08-29", Status: model.StatusAbsent},
		{PersonType: model.PersonStudent, PersonID: 1, Date: "2025-09-01", Status: model.StatusAbsent},
		{PersonType: model.PersonTeacher, PersonID: 1, Date: "2025-08-04", Status: model.StatusPresent},
	}
	for i := range rows {
		require.NoError(t, attendance.Create(ctx, &rows[i]))
	}

	today, err := dashboard.CountByStatus(ctx, model.PersonStudent, "2025-08-04", "2025-08-04")
	require.NoError(t, err)
	assert.Equal(t, int64(2), today[model.StatusPresent])
	assert.Equal(t, int64(1), today[model.StatusLate])
	assert.Zero(t, today[model.StatusSick])
	assert.Len(t, today, len(model.AttendanceStatuses))

	month, err := dashboard.CountByStatus(ctx, model.PersonStudent, "2025-08-01", "2025-08-31")
	require.NoError(t, err)
	assert.Equal(t, int64(1), month[model.StatusAbsent])
}
