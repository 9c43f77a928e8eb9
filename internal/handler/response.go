package handler

import (
	"errors"
	"strconv"
	"strings"

	"absensi-sekolah/internal/repository"
	"absensi-sekolah/internal/usecase"

	"github.com/gofiber/fiber/v2"
)

// JsonError: error umum (bukan validasi)
func JsonError(c *fiber.Ctx, status int, message string) error {
	if strings.TrimSpace(message) == "" {
		message = "Terjadi kesalahan pada server"
	}
	return c.Status(status).JSON(fiber.Map{"error": message})
}

// JsonValidationError: khusus error validasi (422)
func JsonValidationError(c *fiber.Ctx, fields map[string][]string) error {
	if fields == nil {
		fields = map[string][]string{}
	}
	return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
		"error":  "Validasi gagal",
		"errors": fields,
	})
}

// writeError memetakan error usecase/repository ke status HTTP.
func writeError(c *fiber.Ctx, err error) error {
	var verr *usecase.ValidationError
	switch {
	case errors.As(err, &verr):
		return JsonValidationError(c, verr.Fields)
	case errors.Is(err, usecase.ErrPersonNotFound),
		errors.Is(err, usecase.ErrAttendanceNotFound),
		errors.Is(err, usecase.ErrRuleNotFound),
		errors.Is(err, repository.ErrNotFound):
		return JsonError(c, fiber.StatusNotFound, notFoundMessage(err))
	case errors.Is(err, usecase.ErrRuleConflict):
		return JsonError(c, fiber.StatusConflict, err.Error())
	case errors.Is(err, repository.ErrDuplicate):
		return JsonError(c, fiber.StatusConflict, "Data sudah ada")
	case errors.Is(err, usecase.ErrInvalidCredentials):
		return JsonError(c, fiber.StatusUnauthorized, "Username atau Password salah")
	default:
		return JsonError(c, fiber.StatusInternalServerError, "")
	}
}

func notFoundMessage(err error) string {
	if errors.Is(err, repository.ErrNotFound) {
		return "Data tidak ditemukan"
	}
	return err.Error()
}

func paramID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}
	return uint(id), nil
}
