package handler

import (
	"absensi-sekolah/internal/model"
	"absensi-sekolah/internal/repository"
	"absensi-sekolah/internal/usecase"

	"github.com/gofiber/fiber/v2"
)

type HolidayHandler struct {
	repo repository.HolidayRepository
}

func NewHolidayHandler(repo repository.HolidayRepository) *HolidayHandler {
	return &HolidayHandler{repo: repo}
}

func (h *HolidayHandler) GetAll(c *fiber.Ctx) error {
	data, err := h.repo.GetAll(c.UserContext())
	if err != nil {
		return JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data")
	}
	return c.JSON(fiber.Map{"data": data})
}

func (h *HolidayHandler) Create(c *fiber.Ctx) error {
	var req model.Holiday
	if err := c.BodyParser(&req); err != nil {
		return JsonError(c, fiber.StatusBadRequest, "Data tidak valid")
	}
	if _, err := usecase.ParseDate(req.Date); err != nil {
		return JsonValidationError(c, map[string][]string{"date": {"format tanggal harus YYYY-MM-DD"}})
	}

	if err := h.repo.Create(c.UserContext(), &req); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Hari libur berhasil ditambahkan", "data": req})
}

func (h *HolidayHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	var req model.Holiday
	if err := c.BodyParser(&req); err != nil {
		return JsonError(c, fiber.StatusBadRequest, "Data tidak valid")
	}
	if _, err := usecase.ParseDate(req.Date); err != nil {
		return JsonValidationError(c, map[string][]string{"date": {"format tanggal harus YYYY-MM-DD"}})
	}

	libur, err := h.repo.GetByID(c.UserContext(), id)
	if err != nil {
		return JsonError(c, fiber.StatusNotFound, "Data tidak ditemukan")
	}
	libur.Date = req.Date
	libur.Description = req.Description

	if err := h.repo.Update(c.UserContext(), libur); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Data berhasil diupdate", "data": libur})
}

func (h *HolidayHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	if err := h.repo.Delete(c.UserContext(), id); err != nil {
		return JsonError(c, fiber.StatusInternalServerError, "Gagal menghapus data")
	}
	return c.JSON(fiber.Map{"message": "Data berhasil dihapus"})
}
