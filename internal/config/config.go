package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config agrupa toda la configuración de la app, cargada desde env.
type Config struct {
	Server ServerConfig
	DB     DBConfig
	Auth   AuthConfig
	Log    LogConfig
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DBConfig struct {
	// DSN de Postgres. Si está vacío, el router usa repos in-memory (modo dev).
	DSN string
}

type AuthConfig struct {
	JWTSecret  string
	AccessTTL  time.Duration
	RefreshTTL time.Duration

	// Límite de intentos de login por IP.
	LoginRPS   float64
	LoginBurst int
}

type LogConfig struct {
	Level  string
	Format string // text|json
	App    string
}

// Load lee .env si existe (dev local) y luego variables de entorno.
func Load() (Config, error) {
	// .env es opcional; en deploy real las vars vienen del entorno.
	_ = godotenv.Load()

	cfg := Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", "8080"),
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		DB: DBConfig{
			DSN: os.Getenv("DB_DSN"),
		},
		Auth: AuthConfig{
			JWTSecret:  os.Getenv("JWT_SECRET"),
			AccessTTL:  getEnvDuration("ACCESS_TOKEN_TTL", 15*time.Minute),
			RefreshTTL: getEnvDuration("REFRESH_TOKEN_TTL", 7*24*time.Hour),
			LoginRPS:   getEnvFloat("LOGIN_RATE_RPS", 1),
			LoginBurst: getEnvInt("LOGIN_RATE_BURST", 5),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "text"),
			App:    getEnv("APP_NAME", "vetclinic-admin"),
		},
	}

	if cfg.Auth.JWTSecret == "" {
		// Fallback solo para dev; en prod JWT_SECRET es obligatorio.
		if os.Getenv("ENV") == "production" {
			return Config{}, fmt.Errorf("JWT_SECRET is required in production")
		}
		cfg.Auth.JWTSecret = "dev-secret-vetclinic"
	}

	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getEnvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
