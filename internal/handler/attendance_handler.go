package handler

import (
	"context"

	"absensi-sekolah/internal/model"
	"absensi-sekolah/internal/presenter"
	"absensi-sekolah/internal/repository"

	"github.com/gofiber/fiber/v2"
)

type AttendanceEditor interface {
	UpdateStatus(ctx context.Context, id uint, status model.AttendanceStatus) (*model.Attendance, error)
	Delete(ctx context.Context, id uint) error
}

type AttendanceHandler struct {
	repo   repository.AttendanceRepository
	editor AttendanceEditor
}

func NewAttendanceHandler(repo repository.AttendanceRepository, editor AttendanceEditor) *AttendanceHandler {
	return &AttendanceHandler{repo: repo, editor: editor}
}

type attendanceRow struct {
	model.Attendance
	Badge presenter.Badge `json:"badge"`
}

// GetAll: ?date=2025-08-01 atau ?month=2025-08, plus person_type, person_id, status, page, limit
func (h *AttendanceHandler) GetAll(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}

	filter := repository.AttendanceFilter{
		Date:       c.Query("date"),
		Month:      c.Query("month"),
		PersonType: model.PersonType(c.Query("person_type")),
		PersonID:   uint(c.QueryInt("person_id", 0)),
		Status:     model.AttendanceStatus(c.Query("status")),
		Limit:      limit,
		Offset:     (page - 1) * limit,
	}
	list, total, err := h.repo.List(c.UserContext(), filter)
	if err != nil {
		return JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data absensi")
	}

	rows := make([]attendanceRow, 0, len(list))
	for _, a := range list {
		rows = append(rows, attendanceRow{Attendance: a, Badge: presenter.StatusBadge(a.Status)})
	}
	return c.JSON(fiber.Map{
		"data":  rows,
		"total": total,
		"page":  page,
		"limit": limit,
	})
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

func (h *AttendanceHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	var req updateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return JsonError(c, fiber.StatusBadRequest, "Data tidak valid")
	}

	a, err := h.editor.UpdateStatus(c.UserContext(), id, model.AttendanceStatus(req.Status))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Status absensi berhasil diubah", "data": a})
}

func (h *AttendanceHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	if err := h.editor.Delete(c.UserContext(), id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Data absensi berhasil dihapus"})
}
