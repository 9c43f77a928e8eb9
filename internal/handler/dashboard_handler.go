package handler

import (
	"time"

	"absensi-sekolah/internal/usecase"

	"github.com/gofiber/fiber/v2"
)

type DashboardHandler struct {
	dashboard *usecase.DashboardUsecase
	loc       *time.Location
}

func NewDashboardHandler(dashboard *usecase.DashboardUsecase, loc *time.Location) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard, loc: loc}
}

// GetStats: ?date=YYYY-MM-DD, default hari ini di zona sekolah.
func (h *DashboardHandler) GetStats(c *fiber.Ctx) error {
	date := c.Query("date", time.Now().In(h.loc).Format(usecase.DateLayout))

	stats, err := h.dashboard.Stats(c.UserContext(), date)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Berhasil mengambil statistik",
		"data":    stats,
	})
}
