package routes

import (
	"absensi-sekolah/internal/handler"
	"absensi-sekolah/internal/middleware"
	"absensi-sekolah/internal/model"

	"github.com/gofiber/fiber/v2"
)

// SetupAdminRoutes: operator boleh membaca dan input perizinan manual,
// perubahan konfigurasi hanya admin.
func SetupAdminRoutes(app *fiber.App, d *Dependencies) {
	auth := middleware.Auth(d.Config.JWTSecret)
	anyRole := middleware.Role(model.RoleAdmin, model.RoleOperator)
	adminOnly := middleware.Role(model.RoleAdmin)

	api := app.Group("/api/admin", auth, anyRole)

	dashboard := handler.NewDashboardHandler(d.Dashboard, d.Location)
	api.Get("/dashboard", dashboard.GetStats)

	attendance := handler.NewAttendanceHandler(d.Attendance, d.Upserter)
	api.Get("/attendance", attendance.GetAll)
	api.Put("/attendance/:id/status", attendance.UpdateStatus)
	api.Delete("/attendance/:id", adminOnly, attendance.Delete)

	leave := handler.NewLeaveHandler(d.Leaves, d.Leave)
	api.Get("/leave-requests", leave.GetAll)
	api.Post("/leave-requests", leave.Create)

	rules := handler.NewRuleHandler(d.RuleAdmin)
	api.Get("/rules", rules.GetAll)
	api.Post("/rules", adminOnly, rules.Create)
	api.Put("/rules/:id", adminOnly, rules.Update)
	api.Delete("/rules/:id", adminOnly, rules.Delete)

	ranking := handler.NewRankingHandler(d.Ranking, d.Report, d.Location)
	api.Get("/rankings", ranking.GetAll)
	api.Get("/rankings/summary", ranking.Summary)
	api.Post("/rankings/rebuild", adminOnly, ranking.Rebuild)
	api.Post("/rankings/report", adminOnly, ranking.SendReport)

	settings := handler.NewSettingHandler(d.Settings, d.Ranking, d.Location, d.Log)
	api.Get("/settings", settings.GetAll)
	api.Put("/settings", adminOnly, settings.Set)
	api.Post("/settings/invalidate", adminOnly, settings.Invalidate)

	holidays := handler.NewHolidayHandler(d.Holidays)
	api.Get("/holidays", holidays.GetAll)
	api.Post("/holidays", adminOnly, holidays.Create)
	api.Put("/holidays/:id", adminOnly, holidays.Update)
	api.Delete("/holidays/:id", adminOnly, holidays.Delete)

	logs := handler.NewLogHandler(d.ScanLogs, d.Notifications)
	api.Get("/scan-logs", logs.Scans)
	api.Get("/notification-logs", logs.Notifications)

	persons := handler.NewPersonHandler(d.Persons)
	api.Get("/persons/:type", persons.GetActive)
	api.Delete("/persons/:type/:id", adminOnly, persons.Delete)
}
