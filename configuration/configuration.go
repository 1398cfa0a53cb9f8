package configuration

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/LokeshAnde180/docspot/models"
)

// Config collects every environment knob the server reads. Handlers receive it
// through the handler set instead of reading the environment themselves.
type Config struct {
	Port        string
	DatabaseDSN string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	JWTSecret         string
	TokenTTL          time.Duration
	DoctorEmailDomain string

	// Consultation fee charged per appointment, in the smallest currency unit.
	ConsultationFee int64

	SMTPHost     string
	SMTPPort     int
	SMTPEmail    string
	SMTPPassword string

	RazorpayKeyID  string
	RazorpaySecret string

	AdminUsername string
	AdminEmail    string
	AdminPassword string

	AllowedOrigins []string
}

// Load reads .env when present and assembles the configuration. Only the
// database DSN and the JWT secret are mandatory.
func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		logrus.Warn("no .env file found, reading configuration from the environment")
	}

	cfg := &Config{
		Port:              getenv("PORT", "5000"),
		DatabaseDSN:       os.Getenv("DB"),
		RedisAddr:         os.Getenv("REDIS_ADDR"),
		RedisPassword:     os.Getenv("REDIS_PASSWORD"),
		RedisDB:           getenvInt("REDIS_DB", 0),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		TokenTTL:          time.Hour,
		DoctorEmailDomain: getenv("DOCTOR_EMAIL_DOMAIN", "@chetan.doctor"),
		ConsultationFee:   int64(getenvInt("CONSULTATION_FEE", 50000)),
		SMTPHost:          os.Getenv("SMTP_HOST"),
		SMTPPort:          getenvInt("SMTP_PORT", 587),
		SMTPEmail:         os.Getenv("Email"),
		SMTPPassword:      os.Getenv("Password"),
		RazorpayKeyID:     os.Getenv("RAZORPAY_KEY_ID"),
		RazorpaySecret:    os.Getenv("RAZORPAY_SECRET"),
		AdminUsername:     getenv("ADMIN_USERNAME", "admin"),
		AdminEmail:        os.Getenv("ADMIN_EMAIL"),
		AdminPassword:     os.Getenv("ADMIN_PASSWORD"),
	}

	if ttl := os.Getenv("TOKEN_TTL"); ttl != "" {
		d, err := time.ParseDuration(ttl)
		if err != nil {
			return nil, fmt.Errorf("invalid TOKEN_TTL %q: %w", ttl, err)
		}
		cfg.TokenTTL = d
	}
	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		cfg.AllowedOrigins = strings.Split(origins, ",")
	} else {
		cfg.AllowedOrigins = []string{"http://localhost:3000"}
	}

	if cfg.DatabaseDSN == "" {
		return nil, fmt.Errorf("DB connection string is not set")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is not set")
	}
	return cfg, nil
}

// ConnectDB opens the PostgreSQL connection and migrates the three
// tables. The caller owns the returned handle and its shutdown.
func ConnectDB(cfg *Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to the database: %w", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.DoctorProfile{},
		&models.Appointment{},
	); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}
	return db, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		logrus.Warnf("ignoring invalid %s=%q", key, v)
		return fallback
	}
	return n
}
