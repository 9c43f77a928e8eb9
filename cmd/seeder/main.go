package main

import (
	"log"

	"absensi-sekolah/config"
	"absensi-sekolah/internal/database"

	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	logger, err := config.NewLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("gagal membuat logger: %v", err)
	}
	defer logger.Sync()

	logger.Info("memulai database seeding")

	// Seeder selalu migrate dulu supaya tabel pasti ada
	cfg.DB.AutoMigrate = true
	db, err := config.ConnectDB(cfg.DB, logger)
	if err != nil {
		logger.Fatal("koneksi database gagal", zap.Error(err))
	}

	if err := database.SeedAll(db, config.GetEnv("ADMIN_PASSWORD", "admin123"), logger); err != nil {
		logger.Fatal("seeding gagal", zap.Error(err))
	}
	logger.Info("seeding selesai")
}
