package handler

import (
	"absensi-sekolah/internal/model"
	"absensi-sekolah/internal/usecase"

	"github.com/gofiber/fiber/v2"
)

type RuleHandler struct {
	rules *usecase.RuleUsecase
}

func NewRuleHandler(rules *usecase.RuleUsecase) *RuleHandler {
	return &RuleHandler{rules: rules}
}

func (h *RuleHandler) GetAll(c *fiber.Ctx) error {
	data, err := h.rules.List(c.UserContext())
	if err != nil {
		return JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data")
	}
	return c.JSON(fiber.Map{"data": data})
}

func (h *RuleHandler) Create(c *fiber.Ctx) error {
	var req model.AttendanceRule
	if err := c.BodyParser(&req); err != nil {
		return JsonError(c, fiber.StatusBadRequest, "Data tidak valid")
	}
	if err := h.rules.Create(c.UserContext(), &req); err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Aturan absensi berhasil ditambahkan", "data": req})
}

func (h *RuleHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	var req model.AttendanceRule
	if err := c.BodyParser(&req); err != nil {
		return JsonError(c, fiber.StatusBadRequest, "Data tidak valid")
	}
	rule, err := h.rules.Update(c.UserContext(), id, &req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Data berhasil diupdate", "data": rule})
}

func (h *RuleHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	if err := h.rules.Delete(c.UserContext(), id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Data berhasil dihapus"})
}
