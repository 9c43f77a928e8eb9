package handler

import (
	"absensi-sekolah/internal/repository"

	"github.com/gofiber/fiber/v2"
)

// LogHandler menampilkan jejak audit: scan sidik jari dan pengiriman notifikasi.
type LogHandler struct {
	scans         repository.ScanLogRepository
	notifications repository.NotificationLogRepository
}

func NewLogHandler(scans repository.ScanLogRepository, notifications repository.NotificationLogRepository) *LogHandler {
	return &LogHandler{scans: scans, notifications: notifications}
}

func (h *LogHandler) Scans(c *fiber.Ctx) error {
	data, err := h.scans.List(c.UserContext(), c.Query("pin"), c.Query("result"), c.QueryInt("limit", 100))
	if err != nil {
		return JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil scan log")
	}
	return c.JSON(fiber.Map{"data": data})
}

func (h *LogHandler) Notifications(c *fiber.Ctx) error {
	data, err := h.notifications.List(c.UserContext(), c.Query("status"), c.QueryInt("limit", 100))
	if err != nil {
		return JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil log notifikasi")
	}
	return c.JSON(fiber.Map{"data": data})
}
