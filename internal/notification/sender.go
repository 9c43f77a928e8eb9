// Package notification mengirim pesan WhatsApp dan e-mail lewat antrean.
// Kegagalan kirim dicatat di notification_logs dan tidak pernah mempengaruhi absensi.
package notification

import "context"

const (
	ChannelWhatsApp = "whatsapp"
	ChannelEmail    = "email"
)

type Message struct {
	ID          string
	Channel     string
	Destination string // nomor WhatsApp atau alamat e-mail
	Subject     string
	Body        string
	Reference   string // contoh: attendance:12, leave:3
}

// Sender adalah satu channel pengiriman.
type Sender interface {
	Channel() string
	Send(ctx context.Context, msg Message) error
}
