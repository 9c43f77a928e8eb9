package usecase

import (
	"context"
	"fmt"
	"html"
	"sort"
	"strings"

	"absensi-sekolah/internal/model"
	"absensi-sekolah/internal/notification"
	"absensi-sekolah/internal/presenter"

	"go.uber.org/zap"
)

type MonthlySummary struct {
	Month      string                    `json:"month"`
	Rows       []model.DisciplineRanking `json:"rows"`
	ExtraCount int                       `json:"extra_count"`
}

// SelectMonthlySummary memilih siswa yang melewati batas pelanggaran, terburuk lebih
// dulu. limit <= 0 berarti tanpa batas.
func SelectMonthlySummary(rows []model.DisciplineRanking, t Thresholds, limit int) MonthlySummary {
	var qualifying []model.DisciplineRanking
	for _, r := range rows {
		if r.TotalLate >= t.MinTotalLate || r.TotalAbsent >= t.MinTotalAbsent || r.Score <= t.MinScore {
			qualifying = append(qualifying, r)
		}
	}

	sort.SliceStable(qualifying, func(i, j int) bool {
		a, b := qualifying[i], qualifying[j]
		if a.Score != b.Score {
			return a.Score < b.Score
		}
		if a.TotalAbsent != b.TotalAbsent {
			return a.TotalAbsent > b.TotalAbsent
		}
		if a.TotalLate != b.TotalLate {
			return a.TotalLate > b.TotalLate
		}
		return a.StudentID < b.StudentID
	})

	summary := MonthlySummary{Rows: qualifying}
	if limit > 0 && len(qualifying) > limit {
		summary.Rows = qualifying[:limit]
		summary.ExtraCount = len(qualifying) - limit
	}
	if summary.Rows == nil {
		summary.Rows = []model.DisciplineRanking{}
	}
	return summary
}

// MessageQueue adalah antrean notifikasi (Dispatcher).
type MessageQueue interface {
	Enqueue(msg notification.Message) bool
}

// MonthlyReport mengirim rekap disiplin bulanan ke admin lewat e-mail dan WhatsApp.
type MonthlyReport struct {
	ranking    *RankingAggregator
	settings   SettingsProvider
	queue      MessageQueue
	adminEmail string
	adminPhone string
	log        *zap.Logger
}

func NewMonthlyReport(ranking *RankingAggregator, settings SettingsProvider, queue MessageQueue, adminEmail, adminPhone string, log *zap.Logger) *MonthlyReport {
	return &MonthlyReport{ranking: ranking, settings: settings, queue: queue, adminEmail: adminEmail, adminPhone: adminPhone, log: log}
}

// Build memakai limit dari argumen bila > 0, selain itu dari setting threshold.
func (r *MonthlyReport) Build(ctx context.Context, month string, limit int) (*MonthlySummary, error) {
	rows, err := r.ranking.List(ctx, month)
	if err != nil {
		return nil, err
	}
	t := LoadThresholds(ctx, r.settings)
	if limit <= 0 {
		limit = t.Limit
	}
	summary := SelectMonthlySummary(rows, t, limit)
	summary.Month = month
	return &summary, nil
}

func (r *MonthlyReport) Send(ctx context.Context, month string) (*MonthlySummary, error) {
	summary, err := r.Build(ctx, month, 0)
	if err != nil {
		return nil, err
	}

	ref := "report:" + month
	if r.adminEmail != "" {
		r.queue.Enqueue(notification.Message{
			Channel:     notification.ChannelEmail,
			Destination: r.adminEmail,
			Subject:     "Rekap Disiplin Siswa " + presenter.MonthLabel(month),
			Body:        RenderSummaryHTML(summary),
			Reference:   ref,
		})
	}
	if r.adminPhone != "" {
		r.queue.Enqueue(notification.Message{
			Channel:     notification.ChannelWhatsApp,
			Destination: r.adminPhone,
			Body:        RenderSummaryText(summary),
			Reference:   ref,
		})
	}
	r.log.Info("rekap disiplin bulanan diantrekan",
		zap.String("month", month),
		zap.Int("rows", len(summary.Rows)),
		zap.Int("extra", summary.ExtraCount))
	return summary, nil
}

func RenderSummaryText(s *MonthlySummary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Rekap disiplin %s\n", presenter.MonthLabel(s.Month))
	if len(s.Rows) == 0 {
		b.WriteString("Tidak ada siswa yang melewati batas pelanggaran.")
		return b.String()
	}
	for i, row := range s.Rows {
		fmt.Fprintf(&b, "%d. %s (%s) - terlambat %d, alpha %d, skor %.1f\n",
			i+1, row.Student.Name, row.Student.Class.Name, row.TotalLate, row.TotalAbsent, row.Score)
	}
	if s.ExtraCount > 0 {
		fmt.Fprintf(&b, "...dan %d siswa lainnya.", s.ExtraCount)
	}
	return strings.TrimRight(b.String(), "\n")
}

func RenderSummaryHTML(s *MonthlySummary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<h3>Rekap Disiplin Siswa %s</h3>", presenter.MonthLabel(s.Month))
	b.WriteString("<table border=\"1\" cellpadding=\"4\"><tr><th>No</th><th>Nama</th><th>Kelas</th><th>Hadir</th><th>Terlambat</th><th>Alpha</th><th>Skor</th></tr>")
	for i, row := range s.Rows {
		fmt.Fprintf(&b, "<tr><td>%d</td><td>%s</td><td>%s</td><td>%d</td><td>%d</td><td>%d</td><td>%.1f</td></tr>",
			i+1, html.EscapeString(row.Student.Name), html.EscapeString(row.Student.Class.Name), row.TotalPresent, row.TotalLate, row.TotalAbsent, row.Score)
	}
	b.WriteString("</table>")
	if s.ExtraCount > 0 {
		fmt.Fprintf(&b, "<p>Dan %d siswa lainnya melewati batas pelanggaran.</p>", s.ExtraCount)
	}
	return b.String()
}
