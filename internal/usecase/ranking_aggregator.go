package usecase

import (
	"context"
	"fmt"
	"sort"

	"absensi-sekolah/internal/model"
	"absensi-sekolah/internal/repository"

	"go.uber.org/zap"
)

// DeltaFor memetakan transisi status ke perubahan counter. Sakit/izin dan "tidak ada"
// tidak mengubah counter.
func DeltaFor(from, to model.AttendanceStatus) model.RankingDelta {
	var d model.RankingDelta
	bump(&d, from, -1)
	bump(&d, to, 1)
	return d
}

func bump(d *model.RankingDelta, s model.AttendanceStatus, n int) {
	switch s {
	case model.StatusPresent:
		d.Present += n
	case model.StatusLate:
		d.Late += n
	case model.StatusAbsent:
		d.Absent += n
	}
}

// RankingAggregator menjaga tabel discipline_rankings. Tabel ini turunan dari
// absensi dan bisa dibangun ulang lewat Rebuild.
type RankingAggregator struct {
	repo       repository.RankingRepository
	attendance repository.AttendanceRepository
	settings   SettingsProvider
	log        *zap.Logger
}

func NewRankingAggregator(repo repository.RankingRepository, attendance repository.AttendanceRepository, settings SettingsProvider, log *zap.Logger) *RankingAggregator {
	return &RankingAggregator{repo: repo, attendance: attendance, settings: settings, log: log}
}

// Apply dipanggil setelah absensi siswa dibuat, diubah atau dihapus. Skor dihitung
// ulang dengan bobot yang berlaku saat ini.
func (a *RankingAggregator) Apply(ctx context.Context, studentID uint, date string, from, to model.AttendanceStatus) error {
	delta := DeltaFor(from, to)
	if delta.IsZero() {
		return nil
	}
	month := MonthOf(date)
	if _, err := a.repo.Adjust(ctx, studentID, month, delta, LoadScoreWeights(ctx, a.settings)); err != nil {
		return fmt.Errorf("adjust ranking %d/%s: %w", studentID, month, err)
	}
	return nil
}

// Rebuild menghitung ulang semua ranking satu bulan dari data absensi.
func (a *RankingAggregator) Rebuild(ctx context.Context, month string) (int, error) {
	counts, err := a.attendance.CountStudentStatusByMonth(ctx, month)
	if err != nil {
		return 0, err
	}

	type totals struct{ present, late, absent int }
	perStudent := map[uint]*totals{}
	var order []uint
	for _, c := range counts {
		t, ok := perStudent[c.PersonID]
		if !ok {
			t = &totals{}
			perStudent[c.PersonID] = t
			order = append(order, c.PersonID)
		}
		switch c.Status {
		case model.StatusPresent:
			t.present += c.Total
		case model.StatusLate:
			t.late += c.Total
		case model.StatusAbsent:
			t.absent += c.Total
		}
	}

	if err := a.repo.ResetMonth(ctx, month); err != nil {
		return 0, err
	}
	w := LoadScoreWeights(ctx, a.settings)
	for _, id := range order {
		t := perStudent[id]
		if err := a.repo.Replace(ctx, id, month, t.present, t.late, t.absent, w); err != nil {
			return 0, fmt.Errorf("rebuild ranking siswa %d: %w", id, err)
		}
	}
	a.log.Info("ranking disiplin dibangun ulang", zap.String("month", month), zap.Int("students", len(order)))
	return len(order), nil
}

// Rescore menerapkan bobot terbaru ke semua baris satu bulan.
func (a *RankingAggregator) Rescore(ctx context.Context, month string) error {
	return a.repo.Rescore(ctx, month, LoadScoreWeights(ctx, a.settings))
}

// List selalu menghitung skor dari counter dengan bobot yang berlaku sekarang,
// termasuk untuk bulan yang sudah lewat. Kolom score hanya cache untuk query.
func (a *RankingAggregator) List(ctx context.Context, month string) ([]model.DisciplineRanking, error) {
	rows, err := a.repo.ListByMonth(ctx, month)
	if err != nil {
		return nil, err
	}
	w := LoadScoreWeights(ctx, a.settings)
	for i := range rows {
		rows[i].Score = w.Score(rows[i].TotalPresent, rows[i].TotalLate, rows[i].TotalAbsent)
	}
	sort.SliceStable(rows, func(i, j int) bool {
		x, y := rows[i], rows[j]
		if x.Score != y.Score {
			return x.Score < y.Score
		}
		if x.TotalAbsent != y.TotalAbsent {
			return x.TotalAbsent > y.TotalAbsent
		}
		return x.TotalLate > y.TotalLate
	})
	return rows, nil
}
