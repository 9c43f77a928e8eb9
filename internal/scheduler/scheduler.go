// Package scheduler menjalankan job terjadwal: sweep alpha harian dan rekap disiplin bulanan.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"absensi-sekolah/internal/usecase"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

type Sweeper interface {
	Run(ctx context.Context, now time.Time) (int, error)
}

type Reporter interface {
	Send(ctx context.Context, month string) (*usecase.MonthlySummary, error)
}

const defaultAbsentTime = "09:00"

type Scheduler struct {
	cron       *cron.Cron
	sweeper    Sweeper
	reporter   Reporter
	settings   usecase.SettingsProvider
	loc        *time.Location
	reportSpec string
	log        *zap.Logger

	mu        sync.Mutex
	lastSweep string // tanggal sweep terakhir, supaya hanya sekali sehari
}

func New(sweeper Sweeper, reporter Reporter, settings usecase.SettingsProvider, loc *time.Location, reportSpec string, log *zap.Logger) *Scheduler {
	if loc == nil {
		loc = time.Local
	}
	return &Scheduler{
		cron:       cron.New(cron.WithLocation(loc), cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger))),
		sweeper:    sweeper,
		reporter:   reporter,
		settings:   settings,
		loc:        loc,
		reportSpec: reportSpec,
		log:        log.Named("scheduler"),
	}
}

func (s *Scheduler) Start() error {
	// Jam sweep bisa diubah dari settings, jadi dicek setiap menit
	if _, err := s.cron.AddFunc("* * * * *", func() {
		s.CheckAbsentSweep(time.Now().In(s.loc))
	}); err != nil {
		return fmt.Errorf("daftar job sweep alpha: %w", err)
	}
	if s.reporter != nil && s.reportSpec != "" {
		if _, err := s.cron.AddFunc(s.reportSpec, func() {
			s.SendMonthlyReport(time.Now().In(s.loc))
		}); err != nil {
			return fmt.Errorf("daftar job rekap bulanan %q: %w", s.reportSpec, err)
		}
	}
	s.cron.Start()
	s.log.Info("scheduler berjalan", zap.String("report_cron", s.reportSpec), zap.String("tz", s.loc.String()))
	return nil
}

// Stop menunggu job yang sedang berjalan selesai atau ctx habis.
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
	}
}

// CheckAbsentSweep menjalankan sweep bila jam sekarang sudah melewati
// notification.absent_time dan sweep hari ini belum jalan. true bila sweep dijalankan.
func (s *Scheduler) CheckAbsentSweep(now time.Time) bool {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	at := s.settings.String(ctx, usecase.KeyAbsentTime, defaultAbsentTime)
	trigger, err := time.ParseInLocation("15:04", at, s.loc)
	if err != nil {
		s.log.Warn("notification.absent_time tidak valid, memakai default", zap.String("value", at))
		trigger, _ = time.ParseInLocation("15:04", defaultAbsentTime, s.loc)
	}
	if now.Hour()*60+now.Minute() < trigger.Hour()*60+trigger.Minute() {
		return false
	}

	today := now.Format(usecase.DateLayout)
	s.mu.Lock()
	if s.lastSweep == today {
		s.mu.Unlock()
		return false
	}
	s.lastSweep = today
	s.mu.Unlock()

	s.log.Info("menjalankan sweep alpha", zap.String("date", today), zap.String("at", at))
	if _, err := s.sweeper.Run(ctx, now); err != nil {
		s.log.Error("sweep alpha gagal", zap.String("date", today), zap.Error(err))
	}
	return true
}

// SendMonthlyReport mengirim rekap bulan sebelumnya.
func (s *Scheduler) SendMonthlyReport(now time.Time) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	month := usecase.PreviousMonth(now)
	if _, err := s.reporter.Send(ctx, month); err != nil {
		s.log.Error("rekap disiplin bulanan gagal", zap.String("month", month), zap.Error(err))
	}
}
