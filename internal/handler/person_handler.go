package handler

import (
	"absensi-sekolah/internal/model"
	"absensi-sekolah/internal/repository"

	"github.com/gofiber/fiber/v2"
)

type PersonHandler struct {
	repo repository.PersonRepository
}

func NewPersonHandler(repo repository.PersonRepository) *PersonHandler {
	return &PersonHandler{repo: repo}
}

// GetActive: /persons/:type (student|teacher)
func (h *PersonHandler) GetActive(c *fiber.Ctx) error {
	pt := model.PersonType(c.Params("type"))
	if !pt.Valid() {
		return JsonError(c, fiber.StatusBadRequest, "Tipe harus student atau teacher")
	}
	data, err := h.repo.ListActive(c.UserContext(), pt)
	if err != nil {
		return JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data")
	}
	return c.JSON(fiber.Map{"data": data})
}

// Delete menghapus siswa/guru beserta absensi, perizinan dan rankingnya.
func (h *PersonHandler) Delete(c *fiber.Ctx) error {
	pt := model.PersonType(c.Params("type"))
	if !pt.Valid() {
		return JsonError(c, fiber.StatusBadRequest, "Tipe harus student atau teacher")
	}
	id, err := paramID(c)
	if err != nil {
		return err
	}
	if err := h.repo.Delete(c.UserContext(), pt, id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Data berhasil dihapus"})
}
