package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type DBConfig struct {
	Driver   string // mysql | postgres
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string

	AutoMigrate bool
}

type WhatsAppConfig struct {
	GatewayURL string
	Token      string
	Timeout    time.Duration
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type AppConfig struct {
	AppPort  string
	Timezone string
	LogLevel string

	DB DBConfig

	JWTSecret     string
	WebhookSecret string

	WhatsApp   WhatsAppConfig
	SMTP       SMTPConfig
	AdminEmail string
	AdminPhone string

	NotificationWorkers   int
	NotificationQueueSize int
	MonthlyReportCron     string
}

// Load membaca .env (kalau ada) lalu menyusun AppConfig dari environment.
func Load() AppConfig {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: File .env tidak ditemukan, menggunakan environment variables sistem.")
	}

	return AppConfig{
		AppPort:  GetEnv("APP_PORT", "3000"),
		Timezone: GetEnv("APP_TIMEZONE", "Asia/Jakarta"),
		LogLevel: GetEnv("LOG_LEVEL", "info"),
		DB: DBConfig{
			Driver:   GetEnv("DB_DRIVER", "mysql"),
			Host:     GetEnv("DB_HOST", "127.0.0.1"),
			Port:     GetEnv("DB_PORT", "3306"),
			User:     GetEnv("DB_USER", "root"),
			Password: GetEnv("DB_PASSWORD", ""),
			Name:     GetEnv("DB_NAME", "absensi_sekolah"),
			SSLMode:  GetEnv("DB_SSLMODE", "disable"),

			AutoMigrate: GetEnvAsBool("DB_AUTO_MIGRATE", true),
		},
		JWTSecret:     GetEnv("JWT_SECRET", "rahasia_negara"),
		WebhookSecret: GetEnv("WEBHOOK_SECRET", ""),
		WhatsApp: WhatsAppConfig{
			GatewayURL: GetEnv("WA_GATEWAY_URL", "https://api.fonnte.com/send"),
			Token:      GetEnv("WA_GATEWAY_TOKEN", ""),
			Timeout:    GetEnvAsDuration("WA_GATEWAY_TIMEOUT", 10*time.Second),
		},
		SMTP: SMTPConfig{
			Host:     GetEnv("SMTP_HOST", "smtp.gmail.com"),
			Port:     GetEnvAsInt("SMTP_PORT", 587),
			Username: GetEnv("SMTP_USERNAME", ""),
			Password: GetEnv("SMTP_PASSWORD", ""),
			From:     GetEnv("SMTP_FROM", ""),
		},
		AdminEmail:            GetEnv("ADMIN_EMAIL", ""),
		AdminPhone:            GetEnv("ADMIN_PHONE", ""),
		NotificationWorkers:   GetEnvAsInt("NOTIFICATION_WORKERS", 2),
		NotificationQueueSize: GetEnvAsInt("NOTIFICATION_QUEUE_SIZE", 256),
		MonthlyReportCron:     GetEnv("MONTHLY_REPORT_CRON", "0 7 1 * *"),
	}
}

// Location mengembalikan zona waktu sekolah, fallback ke Local kalau nama zona salah.
func (c AppConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		log.Printf("Warning: zona waktu %q tidak dikenal, memakai Local", c.Timezone)
		return time.Local
	}
	return loc
}

// Helper function to get environment variable with fallback default value
func GetEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// Helper function to get environment variable as integer with fallback
func GetEnvAsInt(key string, fallback int) int {
	valueStr := GetEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}

func GetEnvAsBool(key string, fallback bool) bool {
	valueStr := GetEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return fallback
}

func GetEnvAsDuration(key string, fallback time.Duration) time.Duration {
	valueStr := GetEnv(key, "")
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return fallback
}
