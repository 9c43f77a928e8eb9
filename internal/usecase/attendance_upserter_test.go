package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"

	"absensi-sekolah/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type transition struct {
	studentID uint
	date      string
	from, to  model.AttendanceStatus
}

type recordingRanking struct {
	mu  sync.Mutex
	got []transition
}

func (r *recordingRanking) Apply(_ context.Context, id uint, date string, from, to model.AttendanceStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.got = append(r.got, transition{id, date, from, to})
	return nil
}

type recordingNotifier struct {
	mu      sync.Mutex
	changed []model.Attendance
}

func (n *recordingNotifier) AttendanceChanged(_ context.Context, _ model.Person, a model.Attendance) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.changed = append(n.changed, a)
}

type upserterFixture struct {
	att      *fakeAttendance
	persons  *fakePersons
	ranking  *recordingRanking
	notifier *recordingNotifier
	upserter *AttendanceUpserter
	student  model.Person
	rule     model.AttendanceRule
}

func newUpserterFixture() *upserterFixture {
	f := &upserterFixture{
		att:      newFakeAttendance(),
		persons:  newFakePersons(),
		ranking:  &recordingRanking{},
		notifier: &recordingNotifier{},
		rule:     weekdayRule(1, uintPtr(1), "monday"),
	}
	f.student = f.persons.add(model.Person{Type: model.PersonStudent, ID: 10, Name: "Budi", ClassID: uintPtr(1), Phone: "0812"}, "101", "2024001")
	f.upserter = NewAttendanceUpserter(f.att, f.persons, f.ranking, f.notifier, zap.NewNop())
	return f
}

func TestAttendanceUpserter_ApplyScan(t *testing.T) {
	ctx := context.Background()

	t.Run("masuk lalu pulang lalu ditolak", func(t *testing.T) {
		f := newUpserterFixture()

		out, err := f.upserter.ApplyScan(ctx, f.student, &f.rule, at("2025-08-04", "07:05:00"), "DEV1")
		require.NoError(t, err)
		assert.True(t, out.Created)
		assert.Equal(t, ScanIn, out.Result.Kind)
		assert.Equal(t, model.StatusLate, out.Attendance.Status)

		out, err = f.upserter.ApplyScan(ctx, f.student, &f.rule, at("2025-08-04", "15:00:00"), "DEV1")
		require.NoError(t, err)
		assert.Equal(t, ScanOut, out.Result.Kind)
		assert.Equal(t, "15:00:00", *out.Attendance.TimeOut)

		_, err = f.upserter.ApplyScan(ctx, f.student, &f.rule, at("2025-08-04", "16:00:00"), "DEV1")
		assert.ErrorIs(t, err, ErrDuplicateScan)

		stored := f.att.get(model.PersonStudent, 10, "2025-08-04")
		require.NotNil(t, stored)
		assert.Equal(t, "07:05:00", *stored.TimeIn)
		assert.Equal(t, "15:00:00", *stored.TimeOut)
		assert.Equal(t, model.StatusLate, stored.Status)
		assert.Equal(t, 1, f.att.count())

		// satu transisi saat dibuat, pulang tidak mengubah status
		require.Len(t, f.ranking.got, 2)
		assert.Equal(t, transition{10, "2025-08-04", "", model.StatusLate}, f.ranking.got[0])
		assert.Len(t, f.notifier.changed, 1)
	})

	t.Run("scan pertama bersamaan menghasilkan satu baris", func(t *testing.T) {
		f := newUpserterFixture()
		const n = 16

		var wg sync.WaitGroup
		var mu sync.Mutex
		created, dup := 0, 0
		var unexpected []error

		for i := 0; i < n; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				out, err := f.upserter.ApplyScan(ctx, f.student, &f.rule, at("2025-08-04", "06:40:00"), "DEV1")
				mu.Lock()
				defer mu.Unlock()
				switch {
				case errors.Is(err, ErrDuplicateScan):
					dup++
				case err != nil:
					unexpected = append(unexpected, err)
				case out.Created:
					created++
				}
			}()
		}
		wg.Wait()

		assert.Empty(t, unexpected)
		assert.Equal(t, 1, created)
		assert.Equal(t, n-2, dup)
		assert.Equal(t, 1, f.att.count())
	})

	t.Run("alpha dari sweep diperbarui oleh scan terlambat", func(t *testing.T) {
		f := newUpserterFixture()
		_, marked, err := f.upserter.MarkAbsent(ctx, f.student, "2025-08-04")
		require.NoError(t, err)
		require.True(t, marked)

		out, err := f.upserter.ApplyScan(ctx, f.student, &f.rule, at("2025-08-04", "09:15:00"), "")
		require.NoError(t, err)
		assert.False(t, out.Created)
		assert.Equal(t, model.StatusLate, out.Attendance.Status)
		assert.Nil(t, out.Attendance.DeviceID)

		assert.Equal(t, 1, f.att.count())
		last := f.ranking.got[len(f.ranking.got)-1]
		assert.Equal(t, model.StatusAbsent, last.from)
		assert.Equal(t, model.StatusLate, last.to)
	})

	t.Run("ditolak saat sedang izin", func(t *testing.T) {
		f := newUpserterFixture()
		leaveID := uint(5)
		_, err := f.att.UpsertExcused(ctx, &model.Attendance{
			PersonType: model.PersonStudent, PersonID: 10, Date: "2025-08-04",
			Status: model.StatusPermission, LeaveRequestID: &leaveID,
		})
		require.NoError(t, err)

		_, err = f.upserter.ApplyScan(ctx, f.student, &f.rule, at("2025-08-04", "06:30:00"), "DEV1")
		assert.ErrorIs(t, err, ErrOnLeave)
		assert.Equal(t, model.StatusPermission, f.att.get(model.PersonStudent, 10, "2025-08-04").Status)
	})

	t.Run("guru tidak masuk ranking", func(t *testing.T) {
		f := newUpserterFixture()
		teacher := f.persons.add(model.Person{Type: model.PersonTeacher, ID: 10, Name: "Pak Joko"}, "900", "19800101")

		_, err := f.upserter.ApplyScan(ctx, teacher, nil, at("2025-08-04", "06:30:00"), "")
		require.NoError(t, err)
		assert.Empty(t, f.ranking.got)
		// baris guru dan siswa dengan id sama tidak bentrok
		_, err = f.upserter.ApplyScan(ctx, f.student, &f.rule, at("2025-08-04", "06:30:00"), "")
		require.NoError(t, err)
		assert.Equal(t, 2, f.att.count())
	})
}

func TestAttendanceUpserter_MarkAbsent(t *testing.T) {
	f := newUpserterFixture()
	ctx := context.Background()

	_, err := f.upserter.ApplyScan(ctx, f.student, &f.rule, at("2025-08-04", "06:30:00"), "")
	require.NoError(t, err)

	a, marked, err := f.upserter.MarkAbsent(ctx, f.student, "2025-08-04")
	require.NoError(t, err)
	assert.False(t, marked)
	assert.Nil(t, a)
	assert.Equal(t, model.StatusPresent, f.att.get(model.PersonStudent, 10, "2025-08-04").Status)
}

func TestAttendanceUpserter_UpdateStatusAndDelete(t *testing.T) {
	f := newUpserterFixture()
	ctx := context.Background()

	out, err := f.upserter.ApplyScan(ctx, f.student, &f.rule, at("2025-08-04", "06:30:00"), "")
	require.NoError(t, err)

	_, err = f.upserter.UpdateStatus(ctx, out.Attendance.ID, "bolos")
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "status")

	updated, err := f.upserter.UpdateStatus(ctx, out.Attendance.ID, model.StatusSick)
	require.NoError(t, err)
	assert.Equal(t, model.StatusSick, updated.Status)
	assert.Equal(t, transition{10, "2025-08-04", model.StatusPresent, model.StatusSick}, f.ranking.got[len(f.ranking.got)-1])

	_, err = f.upserter.UpdateStatus(ctx, 999, model.StatusLate)
	assert.ErrorIs(t, err, ErrAttendanceNotFound)

	require.NoError(t, f.upserter.Delete(ctx, out.Attendance.ID))
	assert.Equal(t, 0, f.att.count())
	assert.Equal(t, transition{10, "2025-08-04", model.StatusSick, ""}, f.ranking.got[len(f.ranking.got)-1])
	assert.ErrorIs(t, f.upserter.Delete(ctx, out.Attendance.ID), ErrAttendanceNotFound)
}
