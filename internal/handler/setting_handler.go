package handler

import (
	"time"

	"absensi-sekolah/internal/usecase"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type SettingHandler struct {
	settings usecase.SettingsProvider
	ranking  *usecase.RankingAggregator
	loc      *time.Location
	log      *zap.Logger
}

func NewSettingHandler(settings usecase.SettingsProvider, ranking *usecase.RankingAggregator, loc *time.Location, log *zap.Logger) *SettingHandler {
	return &SettingHandler{settings: settings, ranking: ranking, loc: loc, log: log}
}

func (h *SettingHandler) GetAll(c *fiber.Ctx) error {
	data, err := h.settings.All(c.UserContext())
	if err != nil {
		return JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil settings")
	}
	return c.JSON(fiber.Map{"data": data})
}

type setSettingRequest struct {
	Key   string      `json:"key"`
	Value interface{} `json:"value"`
	Type  string      `json:"type"`
	Group string      `json:"group"`
}

func (h *SettingHandler) Set(c *fiber.Ctx) error {
	var req setSettingRequest
	if err := c.BodyParser(&req); err != nil {
		return JsonError(c, fiber.StatusBadRequest, "Data tidak valid")
	}
	if req.Key == "" {
		return JsonValidationError(c, map[string][]string{"key": {"wajib diisi"}})
	}
	if err := h.settings.Set(c.UserContext(), req.Key, req.Value, req.Type, req.Group); err != nil {
		return JsonValidationError(c, map[string][]string{"value": {err.Error()}})
	}

	if req.Key == usecase.KeyDisciplineWeights {
		h.rescoreCurrentMonth(c)
	}
	return c.JSON(fiber.Map{"message": "Setting berhasil disimpan"})
}

func (h *SettingHandler) Invalidate(c *fiber.Ctx) error {
	h.settings.Invalidate()
	// bobot bisa saja diubah langsung di database
	h.rescoreCurrentMonth(c)
	return c.JSON(fiber.Map{"message": "Cache setting dikosongkan"})
}

// rescoreCurrentMonth menyegarkan kolom score bulan berjalan. Pembacaan ranking
// tetap memakai bobot terbaru walaupun langkah ini gagal.
func (h *SettingHandler) rescoreCurrentMonth(c *fiber.Ctx) {
	month := time.Now().In(h.loc).Format(usecase.MonthLayout)
	if err := h.ranking.Rescore(c.UserContext(), month); err != nil {
		h.log.Error("gagal rescore ranking", zap.String("month", month), zap.Error(err))
	}
}
