package usecase

import (
	"context"
	"fmt"
	"strings"

	"absensi-sekolah/internal/model"
	"absensi-sekolah/internal/notification"
	"absensi-sekolah/internal/presenter"

	"go.uber.org/zap"
)

// Notifier menyusun pesan WhatsApp dari template di settings lalu memasukkannya ke antrean.
type Notifier struct {
	queue    MessageQueue
	settings SettingsProvider
	log      *zap.Logger
}

func NewNotifier(queue MessageQueue, settings SettingsProvider, log *zap.Logger) *Notifier {
	return &Notifier{queue: queue, settings: settings, log: log}
}

func (n *Notifier) AttendanceChanged(ctx context.Context, person model.Person, a model.Attendance) {
	clock := ""
	if a.TimeIn != nil {
		clock = *a.TimeIn
	}
	n.send(ctx, person, string(a.Status), templateVars{
		date:   a.Date,
		time:   clock,
		status: presenter.StatusLabel(a.Status),
	}, fmt.Sprintf("attendance:%d", a.ID))
}

// LeaveSubmitted dikirim sekali per perizinan, bukan per tanggal.
func (n *Notifier) LeaveSubmitted(ctx context.Context, person model.Person, leave model.LeaveRequest) {
	date := leave.StartDate
	if leave.EndDate != leave.StartDate {
		date = leave.StartDate + " s/d " + leave.EndDate
	}
	n.send(ctx, person, "leave", templateVars{
		date:   date,
		status: presenter.LeaveTypeLabel(leave.Type),
	}, fmt.Sprintf("leave:%d", leave.ID))
}

type templateVars struct {
	date, time, status string
}

func (n *Notifier) send(ctx context.Context, person model.Person, key string, v templateVars, ref string) {
	if person.Phone == "" {
		return
	}
	tpl, ok := LoadTemplates(ctx, n.settings)[key]
	if !ok || tpl == "" {
		n.log.Debug("template notifikasi tidak ada", zap.String("key", key))
		return
	}
	body := RenderTemplate(tpl, person, v.date, v.time, v.status)
	if !n.queue.Enqueue(notification.Message{
		Channel:     notification.ChannelWhatsApp,
		Destination: person.Phone,
		Body:        body,
		Reference:   ref,
	}) {
		n.log.Warn("notifikasi tidak masuk antrean", zap.String("reference", ref))
	}
}

// RenderTemplate mengganti placeholder {name} {class} {date} {time} {status}.
func RenderTemplate(tpl string, person model.Person, date, clock, status string) string {
	class := person.ClassName
	if class == "" {
		class = presenter.PersonTypeLabel(person.Type)
	}
	return strings.NewReplacer(
		"{name}", person.Name,
		"{class}", class,
		"{date}", date,
		"{time}", clock,
		"{status}", status,
	).Replace(tpl)
}
