package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"absensi-sekolah/internal/metrics"
	"absensi-sekolah/internal/model"
	"absensi-sekolah/internal/repository"

	"go.uber.org/zap"
)

// Rentang perizinan maksimal, supaya satu request tidak menulis ribuan baris absensi.
const maxLeaveDays = 92

type LeaveInput struct {
	Identifier    string `json:"identifier" validate:"required"`
	Type          string `json:"type" validate:"required,leavetype"`
	StartDate     string `json:"start_date" validate:"required,ymd"`
	EndDate       string `json:"end_date" validate:"required,ymd"`
	Reason        string `json:"reason" validate:"max=1000"`
	AttachmentURL string `json:"attachment_url" validate:"omitempty,url"`
	Via           string `json:"via" validate:"omitempty,oneof=online manual"`
}

// Validate mengumpulkan semua kesalahan field sekaligus.
func (in *LeaveInput) Validate() (model.LeaveType, error) {
	in.Identifier = strings.TrimSpace(in.Identifier)
	verr := validateStruct(in)

	leaveType, _ := model.ParseLeaveType(in.Type)
	start, errStart := ParseDate(in.StartDate)
	end, errEnd := ParseDate(in.EndDate)
	if errStart == nil && errEnd == nil {
		switch {
		case end.Before(start):
			verr.Add("end_date", "tidak boleh sebelum start_date")
		case end.Sub(start).Hours()/24 >= maxLeaveDays:
			verr.Add("end_date", fmt.Sprintf("rentang perizinan maksimal %d hari", maxLeaveDays))
		}
	}
	return leaveType, verr.orNil()
}

type LeaveAction string

const (
	LeaveKeep      LeaveAction = "keep"
	LeaveDelete    LeaveAction = "delete"
	LeaveTrimEnd   LeaveAction = "trim_end"
	LeaveTrimStart LeaveAction = "trim_start"
	LeaveSplit     LeaveAction = "split"
)

// LeaveAdjustment adalah perubahan pada satu perizinan lama. Untuk split, NewStart..NewEnd
// adalah bagian kepala (baris lama) dan TailStart..TailEnd bagian ekor (baris baru).
type LeaveAdjustment struct {
	LeaveID   uint        `json:"leave_id"`
	Action    LeaveAction `json:"action"`
	NewStart  string      `json:"new_start,omitempty"`
	NewEnd    string      `json:"new_end,omitempty"`
	TailStart string      `json:"tail_start,omitempty"`
	TailEnd   string      `json:"tail_end,omitempty"`
}

// PlanLeaveOverlap menentukan nasib perizinan lama terhadap rentang baru [start, end].
// Tanggal YYYY-MM-DD dibandingkan sebagai string.
func PlanLeaveOverlap(existing model.LeaveRequest, start, end string) (LeaveAdjustment, error) {
	adj := LeaveAdjustment{LeaveID: existing.ID, Action: LeaveKeep}
	eStart, eEnd := existing.StartDate, existing.EndDate

	if eEnd < start || eStart > end {
		return adj, nil
	}
	if eStart >= start && eEnd <= end {
		adj.Action = LeaveDelete
		return adj, nil
	}

	dayBefore, err := AddDays(start, -1)
	if err != nil {
		return adj, err
	}
	dayAfter, err := AddDays(end, 1)
	if err != nil {
		return adj, err
	}

	switch {
	case eStart < start && eEnd > end:
		adj.Action = LeaveSplit
		adj.NewStart, adj.NewEnd = eStart, dayBefore
		adj.TailStart, adj.TailEnd = dayAfter, eEnd
	case eStart < start:
		adj.Action = LeaveTrimEnd
		adj.NewStart, adj.NewEnd = eStart, dayBefore
	default:
		adj.Action = LeaveTrimStart
		adj.NewStart, adj.NewEnd = dayAfter, eEnd
	}
	if adj.Action != LeaveSplit && adj.NewEnd < adj.NewStart {
		return LeaveAdjustment{LeaveID: existing.ID, Action: LeaveDelete}, nil
	}
	return adj, nil
}

type LeaveOutcome struct {
	Person      model.Person       `json:"person"`
	Leave       model.LeaveRequest `json:"leave"`
	Adjustments []LeaveAdjustment  `json:"adjustments"`
	Attendance  []model.Attendance `json:"attendance"`
}

type LeaveNotifier interface {
	LeaveSubmitted(ctx context.Context, person model.Person, leave model.LeaveRequest)
}

type statusChange struct {
	date     string
	from, to model.AttendanceStatus
}

type LeaveReconciler struct {
	persons  repository.PersonRepository
	tx       repository.Transactor
	ranking  RankingApplier
	notifier LeaveNotifier
	log      *zap.Logger
}

func NewLeaveReconciler(persons repository.PersonRepository, tx repository.Transactor, ranking RankingApplier, notifier LeaveNotifier, log *zap.Logger) *LeaveReconciler {
	return &LeaveReconciler{persons: persons, tx: tx, ranking: ranking, notifier: notifier, log: log}
}

// Submit menyimpan perizinan baru: perizinan lama yang beririsan dipangkas, dipecah
// atau dihapus, lalu absensi setiap tanggal di rentang ditimpa dengan status izin/sakit.
func (r *LeaveReconciler) Submit(ctx context.Context, in LeaveInput) (*LeaveOutcome, error) {
	leaveType, err := in.Validate()
	if err != nil {
		return nil, err
	}
	via := in.Via
	if via == "" {
		via = model.ViaOnline
	}

	person, err := r.persons.FindByIdentifier(ctx, in.Identifier)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPersonNotFound
		}
		return nil, err
	}

	dates, err := DatesBetween(in.StartDate, in.EndDate)
	if err != nil {
		return nil, err
	}

	outcome := &LeaveOutcome{Person: *person}
	var changes []statusChange

	err = r.tx.WithinTransaction(ctx, func(repos repository.Repositories) error {
		outcome.Adjustments = nil
		outcome.Attendance = nil
		changes = nil

		existing, err := repos.Leave.ListOverlapping(ctx, person.Type, person.ID, in.StartDate, in.EndDate)
		if err != nil {
			return err
		}
		for _, old := range existing {
			adj, err := PlanLeaveOverlap(old, in.StartDate, in.EndDate)
			if err != nil {
				return err
			}
			if err := applyAdjustment(ctx, repos, old, adj); err != nil {
				return fmt.Errorf("sesuaikan perizinan #%d: %w", old.ID, err)
			}
			outcome.Adjustments = append(outcome.Adjustments, adj)
		}

		leave := model.LeaveRequest{
			PersonType:    person.Type,
			PersonID:      person.ID,
			Type:          leaveType,
			StartDate:     in.StartDate,
			EndDate:       in.EndDate,
			Reason:        in.Reason,
			Via:           via,
			AttachmentURL: in.AttachmentURL,
		}
		if err := repos.Leave.Create(ctx, &leave); err != nil {
			return err
		}
		outcome.Leave = leave

		status := leaveType.Status()
		for _, date := range dates {
			var from model.AttendanceStatus
			prev, err := repos.Attendance.FindByPersonAndDate(ctx, person.Type, person.ID, date)
			switch {
			case err == nil:
				from = prev.Status
			case !errors.Is(err, repository.ErrNotFound):
				return err
			}

			leaveID := leave.ID
			a, err := repos.Attendance.UpsertExcused(ctx, &model.Attendance{
				PersonType:     person.Type,
				PersonID:       person.ID,
				Date:           date,
				Status:         status,
				LeaveRequestID: &leaveID,
			})
			if err != nil {
				return fmt.Errorf("sinkron absensi %s: %w", date, err)
			}
			outcome.Attendance = append(outcome.Attendance, *a)
			changes = append(changes, statusChange{date: date, from: from, to: status})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.LeaveRequests.WithLabelValues(via).Inc()
	if person.Type == model.PersonStudent && r.ranking != nil {
		for _, c := range changes {
			if err := r.ranking.Apply(ctx, person.ID, c.date, c.from, c.to); err != nil {
				r.log.Error("gagal memperbarui ranking disiplin",
					zap.Uint("student_id", person.ID),
					zap.String("date", c.date),
					zap.Error(err))
			}
		}
	}
	if r.notifier != nil {
		r.notifier.LeaveSubmitted(ctx, *person, outcome.Leave)
	}

	r.log.Info("perizinan disimpan",
		zap.String("person_type", string(person.Type)),
		zap.Uint("person_id", person.ID),
		zap.String("type", string(leaveType)),
		zap.String("start", in.StartDate),
		zap.String("end", in.EndDate),
		zap.Int("adjusted", len(outcome.Adjustments)))
	return outcome, nil
}

func applyAdjustment(ctx context.Context, repos repository.Repositories, old model.LeaveRequest, adj LeaveAdjustment) error {
	switch adj.Action {
	case LeaveDelete:
		return repos.Leave.Delete(ctx, old.ID)
	case LeaveTrimEnd, LeaveTrimStart:
		return repos.Leave.UpdateRange(ctx, old.ID, adj.NewStart, adj.NewEnd)
	case LeaveSplit:
		if err := repos.Leave.UpdateRange(ctx, old.ID, adj.NewStart, adj.NewEnd); err != nil {
			return err
		}
		tail := model.LeaveRequest{
			PersonType:    old.PersonType,
			PersonID:      old.PersonID,
			Type:          old.Type,
			StartDate:     adj.TailStart,
			EndDate:       adj.TailEnd,
			Reason:        old.Reason,
			Via:           old.Via,
			AttachmentURL: old.AttachmentURL,
		}
		if err := repos.Leave.Create(ctx, &tail); err != nil {
			return err
		}
		return repos.Attendance.RepointLeave(ctx, old.PersonType, old.PersonID, adj.TailStart, adj.TailEnd, tail.ID)
	}
	return nil
}
