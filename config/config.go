package config

import (
	"log"
	"os"
	"strconv"
	"sync"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv           string
	Port             string
	DBUser           string
	DBPassword       string
	DBHost           string
	DBPort           string
	DBName           string
	DBConnLimit      int
	JWTSecret        string
	JWTExpiryMinutes int
	BcryptCost       int
	OTPExpiryMinutes int
	SMTPHost         string
	SMTPPort         int
	SMTPUser         string
	SMTPPassword     string
	MailSender       string
}

var (
	cfg  *Config
	once sync.Once
)

// LoadConfig membaca konfigurasi dari .env / environment variable.
// Nilai default hanya untuk pengembangan lokal.
func LoadConfig() *Config {
	once.Do(func() {
		if err := godotenv.Load(); err != nil {
			log.Println("Warning: .env file not found. Relying on environment variables.")
		}
		cfg = &Config{
			AppEnv:           getEnv("APP_ENV", "development"),
			Port:             getEnv("PORT", "8080"),
			DBUser:           getEnv("DB_USER", "root"),
			DBPassword:       getEnv("DB_PASSWORD", ""),
			DBHost:           getEnv("DB_HOST", "127.0.0.1"),
			DBPort:           getEnv("DB_PORT", "3306"),
			DBName:           getEnv("DB_NAME", "bidan_db"),
			DBConnLimit:      getEnvInt("DB_CONN_LIMIT", 10),
			JWTSecret:        getEnv("JWT_SECRET", "rahasia-dev"),
			JWTExpiryMinutes: getEnvInt("JWT_EXPIRY_MINUTES", 720),
			BcryptCost:       getEnvInt("BCRYPT_COST", 10),
			OTPExpiryMinutes: getEnvInt("OTP_EXPIRY_MINUTES", 5),
			SMTPHost:         getEnv("SMTP_HOST", "localhost"),
			SMTPPort:         getEnvInt("SMTP_PORT", 587),
			SMTPUser:         getEnv("SMTP_USER", ""),
			SMTPPassword:     getEnv("SMTP_PASSWORD", ""),
			MailSender:       getEnv("MAIL_SENDER", "noreply@bidancare.id"),
		}
	})
	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("Warning: %s bukan angka, memakai default %d", key, fallback)
		return fallback
	}
	return n
}
