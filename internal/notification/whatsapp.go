package notification

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

// WhatsAppSender mengirim pesan lewat HTTP gateway (format Fonnte: target + message).
type WhatsAppSender struct {
	url     string
	token   string
	timeout time.Duration
}

func NewWhatsAppSender(url, token string, timeout time.Duration) *WhatsAppSender {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &WhatsAppSender{url: url, token: token, timeout: timeout}
}

func (s *WhatsAppSender) Channel() string { return ChannelWhatsApp }

func (s *WhatsAppSender) Send(ctx context.Context, msg Message) error {
	if s.url == "" {
		return errors.New("WA gateway belum dikonfigurasi")
	}
	timeout := s.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if left := time.Until(deadline); left < timeout {
			timeout = left
		}
	}
	if timeout <= 0 {
		return context.DeadlineExceeded
	}

	agent := fiber.Post(s.url)
	agent.Set(fiber.HeaderAuthorization, s.token)
	agent.JSON(fiber.Map{
		"target":  NormalizePhone(msg.Destination),
		"message": msg.Body,
	})
	agent.Timeout(timeout)

	code, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return fmt.Errorf("kirim WhatsApp: %w", errors.Join(errs...))
	}
	if code >= fiber.StatusBadRequest {
		return fmt.Errorf("WA gateway membalas %d: %s", code, strings.TrimSpace(string(body)))
	}
	return nil
}

// NormalizePhone mengubah 08xx / +628xx menjadi 628xx.
func NormalizePhone(phone string) string {
	p := strings.NewReplacer(" ", "", "-", "", "+", "").Replace(strings.TrimSpace(phone))
	if strings.HasPrefix(p, "0") {
		p = "62" + p[1:]
	}
	return p
}
