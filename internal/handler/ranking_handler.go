package handler

import (
	"time"

	"absensi-sekolah/internal/presenter"
	"absensi-sekolah/internal/usecase"

	"github.com/gofiber/fiber/v2"
)

type RankingHandler struct {
	ranking *usecase.RankingAggregator
	report  *usecase.MonthlyReport
	loc     *time.Location
}

func NewRankingHandler(ranking *usecase.RankingAggregator, report *usecase.MonthlyReport, loc *time.Location) *RankingHandler {
	return &RankingHandler{ranking: ranking, report: report, loc: loc}
}

// month dari query ?month=YYYY-MM, default bulan berjalan.
func (h *RankingHandler) month(c *fiber.Ctx) (string, bool) {
	month := c.Query("month", time.Now().In(h.loc).Format(usecase.MonthLayout))
	if _, err := time.Parse(usecase.MonthLayout, month); err != nil {
		return "", false
	}
	return month, true
}

func (h *RankingHandler) GetAll(c *fiber.Ctx) error {
	month, ok := h.month(c)
	if !ok {
		return JsonValidationError(c, map[string][]string{"month": {"format bulan harus YYYY-MM"}})
	}
	data, err := h.ranking.List(c.UserContext(), month)
	if err != nil {
		return JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil ranking")
	}
	return c.JSON(fiber.Map{"month": month, "label": presenter.MonthLabel(month), "data": data})
}

func (h *RankingHandler) Summary(c *fiber.Ctx) error {
	month, ok := h.month(c)
	if !ok {
		return JsonValidationError(c, map[string][]string{"month": {"format bulan harus YYYY-MM"}})
	}
	summary, err := h.report.Build(c.UserContext(), month, c.QueryInt("limit", 0))
	if err != nil {
		return JsonError(c, fiber.StatusInternalServerError, "Gagal menyusun rekap")
	}
	return c.JSON(fiber.Map{"label": presenter.MonthLabel(month), "data": summary})
}

func (h *RankingHandler) Rebuild(c *fiber.Ctx) error {
	month, ok := h.month(c)
	if !ok {
		return JsonValidationError(c, map[string][]string{"month": {"format bulan harus YYYY-MM"}})
	}
	n, err := h.ranking.Rebuild(c.UserContext(), month)
	if err != nil {
		return JsonError(c, fiber.StatusInternalServerError, "Gagal membangun ulang ranking")
	}
	return c.JSON(fiber.Map{"message": "Ranking berhasil dihitung ulang", "students": n})
}

// SendReport mengirim ulang rekap bulanan ke admin (e-mail + WhatsApp).
func (h *RankingHandler) SendReport(c *fiber.Ctx) error {
	month, ok := h.month(c)
	if !ok {
		return JsonValidationError(c, map[string][]string{"month": {"format bulan harus YYYY-MM"}})
	}
	summary, err := h.report.Send(c.UserContext(), month)
	if err != nil {
		return JsonError(c, fiber.StatusInternalServerError, "Gagal mengirim rekap")
	}
	return c.JSON(fiber.Map{"message": "Rekap masuk antrean pengiriman", "data": summary})
}
