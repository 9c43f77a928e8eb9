package handler

import (
	"absensi-sekolah/internal/model"
	"absensi-sekolah/internal/repository"
	"absensi-sekolah/internal/usecase"

	"github.com/gofiber/fiber/v2"
)

type LeaveHandler struct {
	repo   repository.LeaveRequestRepository
	leaves LeaveSubmitter
}

func NewLeaveHandler(repo repository.LeaveRequestRepository, leaves LeaveSubmitter) *LeaveHandler {
	return &LeaveHandler{repo: repo, leaves: leaves}
}

// GetAll: ?person_type=student&person_id=1 atau ?month=2025-08
func (h *LeaveHandler) GetAll(c *fiber.Ctx) error {
	var (
		list []model.LeaveRequest
		err  error
	)
	if pid := c.QueryInt("person_id", 0); pid > 0 {
		pt := model.PersonType(c.Query("person_type", string(model.PersonStudent)))
		if !pt.Valid() {
			return JsonError(c, fiber.StatusBadRequest, "person_type harus student atau teacher")
		}
		list, err = h.repo.ListByPerson(c.UserContext(), pt, uint(pid))
	} else {
		month := c.Query("month")
		if month == "" {
			return JsonError(c, fiber.StatusBadRequest, "Isi month atau person_id")
		}
		list, err = h.repo.ListByMonth(c.UserContext(), month)
	}
	if err != nil {
		return JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data perizinan")
	}
	return c.JSON(fiber.Map{"data": list})
}

// Create dipakai operator untuk input perizinan manual (surat/telepon orang tua).
func (h *LeaveHandler) Create(c *fiber.Ctx) error {
	var req usecase.LeaveInput
	if err := c.BodyParser(&req); err != nil {
		return JsonError(c, fiber.StatusBadRequest, "Data tidak valid")
	}
	req.Via = model.ViaManual

	outcome, err := h.leaves.Submit(c.UserContext(), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Perizinan berhasil disimpan", "data": outcome})
}
