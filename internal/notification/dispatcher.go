package notification

import (
	"context"
	"fmt"
	"sync"
	"time"

	"absensi-sekolah/internal/metrics"
	"absensi-sekolah/internal/model"
	"absensi-sekolah/internal/repository"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

// Dispatcher mengantrekan pesan dan mengirimnya dengan beberapa worker. Enqueue
// tidak pernah menunggu: bila antrean penuh pesan langsung dicatat gagal.
type Dispatcher struct {
	senders map[string]Sender
	logs    repository.NotificationLogRepository
	log     *zap.Logger

	queue       chan Message
	workers     int
	sendTimeout time.Duration

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
	// pencatatan pesan yang ditolak karena antrean penuh
	drops sync.WaitGroup
}

func NewDispatcher(logs repository.NotificationLogRepository, log *zap.Logger, queueSize, workers int, senders ...Sender) *Dispatcher {
	if queueSize <= 0 {
		queueSize = 256
	}
	if workers <= 0 {
		workers = 1
	}
	d := &Dispatcher{
		senders:     make(map[string]Sender, len(senders)),
		logs:        logs,
		log:         log.Named("notification"),
		queue:       make(chan Message, queueSize),
		workers:     workers,
		sendTimeout: 30 * time.Second,
	}
	for _, s := range senders {
		d.senders[s.Channel()] = s
	}
	return d
}

func (d *Dispatcher) Start() {
	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go d.work()
	}
}

// Enqueue mengembalikan false bila pesan tidak masuk antrean. Log pesan yang
// ditolak ditulis di luar lock, tanpa menahan pemanggil.
func (d *Dispatcher) Enqueue(msg Message) bool {
	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}

	d.mu.RLock()
	if d.closed {
		d.mu.RUnlock()
		d.record(msg, model.NotificationFailed, "dispatcher sudah berhenti")
		return false
	}
	select {
	case d.queue <- msg:
		d.mu.RUnlock()
		metrics.NotificationsTotal.WithLabelValues(msg.Channel, model.NotificationQueued).Inc()
		metrics.NotificationQueueDepth.Set(float64(len(d.queue)))
		return true
	default:
	}
	d.drops.Add(1)
	d.mu.RUnlock()

	d.log.Warn("antrean notifikasi penuh", zap.String("reference", msg.Reference))
	go func() {
		defer d.drops.Done()
		d.record(msg, model.NotificationFailed, "antrean penuh")
	}()
	return false
}

// Stop menutup antrean lalu menunggu worker menghabiskan sisa pesan.
func (d *Dispatcher) Stop(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		d.drops.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *Dispatcher) work() {
	defer d.wg.Done()
	for msg := range d.queue {
		metrics.NotificationQueueDepth.Set(float64(len(d.queue)))
		d.deliver(msg)
	}
}

func (d *Dispatcher) deliver(msg Message) {
	sender, ok := d.senders[msg.Channel]
	if !ok {
		d.record(msg, model.NotificationFailed, fmt.Sprintf("channel %q tidak tersedia", msg.Channel))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), d.sendTimeout)
	defer cancel()

	if err := sender.Send(ctx, msg); err != nil {
		d.log.Warn("notifikasi gagal dikirim",
			zap.String("channel", msg.Channel),
			zap.String("reference", msg.Reference),
			zap.Error(err))
		d.record(msg, model.NotificationFailed, err.Error())
		return
	}
	d.record(msg, model.NotificationSent, "")
}

func (d *Dispatcher) record(msg Message, status, errMsg string) {
	metrics.NotificationsTotal.WithLabelValues(msg.Channel, status).Inc()
	if d.logs == nil {
		return
	}

	var payload datatypes.JSON
	if msg.Subject != "" {
		if raw, err := sonic.Marshal(map[string]string{"subject": msg.Subject}); err == nil {
			payload = datatypes.JSON(raw)
		}
	}
	entry := &model.NotificationLog{
		MessageID:   msg.ID,
		Channel:     msg.Channel,
		Destination: msg.Destination,
		Message:     msg.Body,
		Status:      status,
		Error:       errMsg,
		Reference:   msg.Reference,
		Payload:     payload,
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := d.logs.Create(ctx, entry); err != nil {
		d.log.Error("gagal mencatat notification log", zap.String("message_id", msg.ID), zap.Error(err))
	}
}
