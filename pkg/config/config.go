package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Supported key-value storage backends.
const (
	StorageMemory   = "memory"
	StorageRedis    = "redis"
	StoragePostgres = "postgres"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Storage   StorageConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	JWT       JWTConfig
	CORS      CORSConfig
	Log       LogConfig
	Gemini    GeminiConfig
	Timesheet TimesheetConfig
	Share     ShareConfig
}

// StorageConfig selects the key-value backend holding users, sessions and month sheets.
type StorageConfig struct {
	Backend   string
	KeyPrefix string
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type JWTConfig struct {
	Secret     string
	Expiration time.Duration
	Issuer     string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// GeminiConfig configures the generative-language client used for clinical reports.
type GeminiConfig struct {
	APIKey             string
	BaseURL            string
	APIVersion         string
	Model              string
	MaxOutputTokens    int
	TutorTemperature   float64
	MedicalTemperature float64
	RefineTemperature  float64
	// Timeout of zero leaves outgoing calls bounded only by the request context.
	Timeout time.Duration
}

// TimesheetConfig tunes the exported timesheet documents.
type TimesheetConfig struct {
	ReportTitle string
}

// ShareConfig holds the messaging link used to share generated reports.
type ShareConfig struct {
	BaseURL string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !isMissingFile(err) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Storage = StorageConfig{
		Backend:   strings.ToLower(strings.TrimSpace(v.GetString("STORAGE_BACKEND"))),
		KeyPrefix: v.GetString("STORAGE_KEY_PREFIX"),
	}
	switch cfg.Storage.Backend {
	case StorageMemory, StorageRedis, StoragePostgres:
	default:
		return nil, errors.New("STORAGE_BACKEND must be one of memory, redis, postgres")
	}

	cfg.Database = DatabaseConfig{
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.JWT = JWTConfig{
		Secret:     v.GetString("JWT_SECRET"),
		Expiration: parseDuration(v.GetString("JWT_EXPIRATION"), 24*time.Hour),
		Issuer:     v.GetString("JWT_ISSUER"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Gemini = GeminiConfig{
		APIKey:             v.GetString("GEMINI_API_KEY"),
		BaseURL:            v.GetString("GEMINI_BASE_URL"),
		APIVersion:         v.GetString("GEMINI_API_VERSION"),
		Model:              v.GetString("GEMINI_MODEL"),
		MaxOutputTokens:    v.GetInt("GEMINI_MAX_OUTPUT_TOKENS"),
		TutorTemperature:   v.GetFloat64("GEMINI_TUTOR_TEMPERATURE"),
		MedicalTemperature: v.GetFloat64("GEMINI_MEDICAL_TEMPERATURE"),
		RefineTemperature:  v.GetFloat64("GEMINI_REFINE_TEMPERATURE"),
		Timeout:            parseDuration(v.GetString("GEMINI_TIMEOUT"), 0),
	}

	cfg.Timesheet = TimesheetConfig{
		ReportTitle: v.GetString("TIMESHEET_REPORT_TITLE"),
	}

	cfg.Share = ShareConfig{
		BaseURL: v.GetString("SHARE_BASE_URL"),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("STORAGE_BACKEND", StorageMemory)
	v.SetDefault("STORAGE_KEY_PREFIX", "vetflow")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "vetflow")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("JWT_SECRET", "dev_secret")
	v.SetDefault("JWT_EXPIRATION", "24h")
	v.SetDefault("JWT_ISSUER", "vetflow")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("GEMINI_API_KEY", "")
	v.SetDefault("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com/")
	v.SetDefault("GEMINI_API_VERSION", "v1beta")
	v.SetDefault("GEMINI_MODEL", "gemini-2.5-flash")
	v.SetDefault("GEMINI_MAX_OUTPUT_TOKENS", 2000)
	v.SetDefault("GEMINI_TUTOR_TEMPERATURE", 0.7)
	v.SetDefault("GEMINI_MEDICAL_TEMPERATURE", 0.1)
	v.SetDefault("GEMINI_REFINE_TEMPERATURE", 0.7)
	v.SetDefault("GEMINI_TIMEOUT", "0s")

	v.SetDefault("TIMESHEET_REPORT_TITLE", "Relatório de Horas - VetFlow")
	v.SetDefault("SHARE_BASE_URL", "https://wa.me/")
}

// isMissingFile reports whether viper failed only because .env is absent; SetConfigFile
// surfaces that as a filesystem error instead of ConfigFileNotFoundError.
func isMissingFile(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
