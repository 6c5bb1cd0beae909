// Package config carrega a configuração da aplicação a partir do ambiente.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/hugohenrick/erp-pdv/internal/infrastructure/database"
	"github.com/joho/godotenv"
)

// Modos de autenticação aceitos em AUTH_MODE
const (
	AuthModeJWT    = "jwt"
	AuthModeHeader = "header"
)

// Config reúne todas as opções da aplicação
type Config struct {
	Env         string
	HTTPPort    string
	APIBasePath string

	// Fuso usado para "hoje" dos cupons e para os agrupamentos por dia
	ReportLocation *time.Location

	Database *database.PostgresConfig

	AuthMode      string
	JWTSecretKey  string
	JWTExpiration time.Duration

	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	MetricsCacheTTL time.Duration

	EmailGatewayURL     string
	EmailFrom           string
	EmailTimeout        time.Duration
	NotificationWorkers int
	NotificationQueue   int

	OTLPEndpoint string
	ServiceName  string

	ShutdownTimeout    time.Duration
	CORSAllowedOrigins []string
}

// Load lê o arquivo .env, se existir, e monta a configuração
func Load() (*Config, error) {
	// .env é opcional
	_ = godotenv.Load()

	loc, err := time.LoadLocation(getEnv("REPORT_TIMEZONE", "America/Sao_Paulo"))
	if err != nil {
		return nil, fmt.Errorf("erro ao carregar REPORT_TIMEZONE: %w", err)
	}

	authMode := strings.ToLower(getEnv("AUTH_MODE", AuthModeJWT))
	if authMode != AuthModeJWT && authMode != AuthModeHeader {
		return nil, fmt.Errorf("AUTH_MODE inválido: %s", authMode)
	}

	cfg := &Config{
		Env:         getEnv("APP_ENV", "development"),
		HTTPPort:    getEnv("HTTP_PORT", "8080"),
		APIBasePath: getEnv("API_BASE_PATH", "/api/v1"),

		ReportLocation: loc,
		Database:       database.NewPostgresConfigFromEnv(),

		AuthMode:      authMode,
		JWTSecretKey:  os.Getenv("JWT_SECRET_KEY"),
		JWTExpiration: time.Duration(getEnvInt("JWT_EXPIRATION_HOURS", 24)) * time.Hour,

		RedisAddr:       os.Getenv("REDIS_ADDR"),
		RedisPassword:   os.Getenv("REDIS_PASSWORD"),
		RedisDB:         getEnvInt("REDIS_DB", 0),
		MetricsCacheTTL: getEnvDuration("METRICS_CACHE_TTL", 5*time.Minute),

		EmailGatewayURL:     os.Getenv("EMAIL_GATEWAY_URL"),
		EmailFrom:           getEnv("EMAIL_FROM", "Loja <noreply@erp-pdv.local>"),
		EmailTimeout:        getEnvDuration("EMAIL_TIMEOUT", 10*time.Second),
		NotificationWorkers: getEnvInt("NOTIFICATION_WORKERS", 2),
		NotificationQueue:   getEnvInt("NOTIFICATION_QUEUE_SIZE", 100),

		OTLPEndpoint: os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		ServiceName:  getEnv("SERVICE_NAME", "erp-pdv-api"),

		ShutdownTimeout:    getEnvDuration("SHUTDOWN_TIMEOUT", 15*time.Second),
		CORSAllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
	}

	if cfg.AuthMode == AuthModeJWT && cfg.JWTSecretKey == "" {
		return nil, fmt.Errorf("JWT_SECRET_KEY é obrigatória quando AUTH_MODE=%s", AuthModeJWT)
	}

	return cfg, nil
}

// IsProduction indica se a aplicação roda em produção
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvDuration aceita "30s", "5m" ou um número de segundos
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
