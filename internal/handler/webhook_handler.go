package handler

import (
	"context"
	"errors"

	"absensi-sekolah/internal/model"
	"absensi-sekolah/internal/usecase"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type ScanProcessor interface {
	Process(ctx context.Context, in usecase.ScanInput) (*usecase.ScanReply, error)
}

type LeaveSubmitter interface {
	Submit(ctx context.Context, in usecase.LeaveInput) (*usecase.LeaveOutcome, error)
}

// WebhookHandler menerima event dari mesin sidik jari dan form perizinan online.
type WebhookHandler struct {
	scans  ScanProcessor
	leaves LeaveSubmitter
	log    *zap.Logger
}

func NewWebhookHandler(scans ScanProcessor, leaves LeaveSubmitter, log *zap.Logger) *WebhookHandler {
	return &WebhookHandler{scans: scans, leaves: leaves, log: log}
}

func (h *WebhookHandler) Fingerprint(c *fiber.Ctx) error {
	var req usecase.ScanInput
	if err := c.BodyParser(&req); err != nil {
		return JsonValidationError(c, map[string][]string{"body": {"JSON tidak valid"}})
	}

	reply, err := h.scans.Process(c.UserContext(), req)
	if err != nil {
		if errors.Is(err, usecase.ErrPersonNotFound) {
			return JsonError(c, fiber.StatusNotFound, "PIN sidik jari tidak terdaftar")
		}
		var verr *usecase.ValidationError
		if !errors.As(err, &verr) {
			h.log.Error("gagal memproses scan", zap.String("pin", req.Data.PIN), zap.Error(err))
		}
		return writeError(c, err)
	}

	// Scan duplikat tetap 200 supaya mesin tidak mengirim ulang
	return c.JSON(fiber.Map{
		"message": reply.Message,
		"data":    reply,
	})
}

func (h *WebhookHandler) LeaveRequest(c *fiber.Ctx) error {
	var req usecase.LeaveInput
	if err := c.BodyParser(&req); err != nil {
		return JsonValidationError(c, map[string][]string{"body": {"JSON tidak valid"}})
	}
	req.Via = model.ViaOnline

	outcome, err := h.leaves.Submit(c.UserContext(), req)
	if err != nil {
		var verr *usecase.ValidationError
		if !errors.As(err, &verr) && !errors.Is(err, usecase.ErrPersonNotFound) {
			h.log.Error("gagal menyimpan perizinan", zap.String("identifier", req.Identifier), zap.Error(err))
		}
		return writeError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Perizinan berhasil disimpan",
		"data":    outcome,
	})
}
