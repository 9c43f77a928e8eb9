// Package metrics berisi counter prometheus yang diekspos di /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ScansTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "absensi_scans_total",
		Help: "Jumlah scan sidik jari yang diproses, per hasil.",
	}, []string{"result", "kind"})

	AttendanceWrites = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "absensi_attendance_writes_total",
		Help: "Jumlah perubahan absensi, per status baru.",
	}, []string{"status"})

	LeaveRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "absensi_leave_requests_total",
		Help: "Jumlah perizinan yang diterima, per jalur (online/manual).",
	}, []string{"via"})

	NotificationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "absensi_notifications_total",
		Help: "Jumlah notifikasi per channel dan status pengiriman.",
	}, []string{"channel", "status"})

	NotificationQueueDepth = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "absensi_notification_queue_depth",
		Help: "Jumlah notifikasi yang menunggu di antrean.",
	})

	SweepMarked = promauto.NewCounter(prometheus.CounterOpts{
		Name: "absensi_absent_sweep_marked_total",
		Help: "Jumlah orang yang ditandai alpha oleh sweep harian.",
	})
)
