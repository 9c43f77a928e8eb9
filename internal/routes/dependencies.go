package routes

import (
	"time"

	"absensi-sekolah/config"
	"absensi-sekolah/internal/notification"
	"absensi-sekolah/internal/repository"
	"absensi-sekolah/internal/usecase"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Dependencies dirakit sekali di main lalu dibagi ke semua route, supaya cache
// settings dan antrean notifikasi hanya ada satu.
type Dependencies struct {
	Config   config.AppConfig
	Location *time.Location
	Log      *zap.Logger

	Persons       repository.PersonRepository
	Attendance    repository.AttendanceRepository
	Leaves        repository.LeaveRequestRepository
	Rules         repository.AttendanceRuleRepository
	Holidays      repository.HolidayRepository
	ScanLogs      repository.ScanLogRepository
	Notifications repository.NotificationLogRepository

	Settings   usecase.SettingsProvider
	Resolver   *usecase.RuleResolver
	Ranking    *usecase.RankingAggregator
	Upserter   *usecase.AttendanceUpserter
	Leave      *usecase.LeaveReconciler
	Scans      *usecase.ScanUsecase
	Sweep      *usecase.AbsentSweep
	Report     *usecase.MonthlyReport
	RuleAdmin  *usecase.RuleUsecase
	Auth       *usecase.AuthUsecase
	Dashboard  *usecase.DashboardUsecase
	Dispatcher *notification.Dispatcher
}

func NewDependencies(db *gorm.DB, cfg config.AppConfig, log *zap.Logger) *Dependencies {
	loc := cfg.Location()
	d := &Dependencies{
		Config:        cfg,
		Location:      loc,
		Log:           log,
		Persons:       repository.NewPersonRepository(db),
		Attendance:    repository.NewAttendanceRepository(db),
		Leaves:        repository.NewLeaveRequestRepository(db),
		Rules:         repository.NewAttendanceRuleRepository(db),
		Holidays:      repository.NewHolidayRepository(db),
		ScanLogs:      repository.NewScanLogRepository(db),
		Notifications: repository.NewNotificationLogRepository(db),
	}

	d.Dispatcher = notification.NewDispatcher(d.Notifications, log, cfg.NotificationQueueSize, cfg.NotificationWorkers,
		notification.NewWhatsAppSender(cfg.WhatsApp.GatewayURL, cfg.WhatsApp.Token, cfg.WhatsApp.Timeout),
		notification.NewMailSender(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.From),
	)

	d.Settings = usecase.NewSettingsProvider(repository.NewSettingRepository(db), log)
	notifier := usecase.NewNotifier(d.Dispatcher, d.Settings, log)

	d.Resolver = usecase.NewRuleResolver(d.Rules, log)
	d.Ranking = usecase.NewRankingAggregator(repository.NewRankingRepository(db), d.Attendance, d.Settings, log)
	d.Upserter = usecase.NewAttendanceUpserter(d.Attendance, d.Persons, d.Ranking, notifier, log)
	d.Leave = usecase.NewLeaveReconciler(d.Persons, repository.NewTransactor(db), d.Ranking, notifier, log)
	d.Scans = usecase.NewScanUsecase(d.Persons, d.ScanLogs, d.Resolver, d.Upserter, d.Settings, loc, log)
	d.Sweep = usecase.NewAbsentSweep(d.Persons, d.Attendance, d.Holidays, d.Resolver, d.Upserter, log)
	d.Report = usecase.NewMonthlyReport(d.Ranking, d.Settings, d.Dispatcher, cfg.AdminEmail, cfg.AdminPhone, log)
	d.RuleAdmin = usecase.NewRuleUsecase(d.Rules)
	d.Auth = usecase.NewAuthUsecase(repository.NewUserRepository(db), cfg.JWTSecret)
	d.Dashboard = usecase.NewDashboardUsecase(repository.NewDashboardRepository(db))
	return d
}
