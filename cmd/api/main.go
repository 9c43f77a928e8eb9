package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"absensi-sekolah/config"
	"absensi-sekolah/internal/middleware"
	"absensi-sekolah/internal/routes"
	"absensi-sekolah/internal/scheduler"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	zl, err := config.NewLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("gagal membuat logger: %v", err)
	}
	defer zl.Sync()

	zl.Info("mencoba koneksi ke database", zap.String("driver", cfg.DB.Driver))
	db, err := config.ConnectDB(cfg.DB, zl)
	if err != nil {
		zl.Fatal("koneksi database gagal", zap.Error(err))
	}

	deps := routes.NewDependencies(db, cfg, zl)
	deps.Dispatcher.Start()

	sched := scheduler.New(deps.Sweep, deps.Report, deps.Settings, deps.Location, cfg.MonthlyReportCron, zl)
	if err := sched.Start(); err != nil {
		zl.Fatal("scheduler gagal dijalankan", zap.Error(err))
	}

	app := fiber.New(fiber.Config{
		JSONEncoder:           sonic.Marshal,
		JSONDecoder:           sonic.Unmarshal,
		DisableStartupMessage: true,
		ReadTimeout:           15 * time.Second,
		WriteTimeout:          30 * time.Second,
		IdleTimeout:           90 * time.Second,
	})

	// Middleware Global
	app.Use(recover.New())
	app.Use(cors.New()) // Agar API bisa diakses dari domain/port lain
	app.Use(logger.New(logger.Config{
		Format:     "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path} | ${error}\n",
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   cfg.Timezone,
	}))
	app.Use(middleware.RequestContext(10*time.Second, zl))

	routes.SetupSystemRoutes(app)
	routes.SetupWebhookRoutes(app, deps)
	routes.SetupAuthRoutes(app, deps)
	routes.SetupAdminRoutes(app, deps)

	go func() {
		zl.Info("server siap", zap.String("port", cfg.AppPort))
		if err := app.Listen(":" + cfg.AppPort); err != nil {
			zl.Fatal("server error", zap.Error(err))
		}
	}()

	// graceful shutdown: berhenti terima request, habiskan antrean notifikasi, tutup pool DB
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zl.Info("mematikan server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	_ = app.ShutdownWithContext(ctx)
	sched.Stop(ctx)
	if err := deps.Dispatcher.Stop(ctx); err != nil {
		zl.Warn("antrean notifikasi belum habis", zap.Error(err))
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
