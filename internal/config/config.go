package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"github.com/yukikurage/document-management-api/internal/constants"
)

type Config struct {
	DBDriver   string `yaml:"db_driver"`
	DBHost     string `yaml:"db_host"`
	DBPort     string `yaml:"db_port"`
	DBUser     string `yaml:"db_user"`
	DBPassword string `yaml:"db_password,omitempty"`
	DBName     string `yaml:"db_name"`
	DBSSL      bool   `yaml:"db_ssl"`
	DBPath     string `yaml:"db_path"`

	JWTSecret    string        `yaml:"jwt_secret,omitempty"`
	JWTExpiresIn time.Duration `yaml:"jwt_expires_in"`

	UploadDir          string `yaml:"upload_dir"`
	MaxUploadMB        int64  `yaml:"max_upload_mb"`
	TrashRetentionDays int    `yaml:"trash_retention_days"`
	TrashPurgeSchedule string `yaml:"trash_purge_schedule"`

	Port        string   `yaml:"port"`
	GinMode     string   `yaml:"gin_mode"`
	StaticDir   string   `yaml:"static_dir"`
	CORSOrigins []string `yaml:"cors_origins"`
	Environment string   `yaml:"environment"`

	LogLevel        string `yaml:"log_level"`
	LogFormat       string `yaml:"log_format"`
	LogFile         string `yaml:"log_file"`
	LogMaxSizeMB    int    `yaml:"log_max_size_mb"`
	LogMaxBackups   int    `yaml:"log_max_backups"`
	LogMaxAgeDays   int    `yaml:"log_max_age_days"`
	OTelServiceName string `yaml:"otel_service_name"`

	AdminUsername string `yaml:"admin_username,omitempty"`
	AdminPassword string `yaml:"admin_password,omitempty"`
}

var defaults = map[string]any{
	"DB_DRIVER":            "mysql",
	"DB_HOST":              "localhost",
	"DB_PORT":              "3306",
	"DB_USER":              "docuser",
	"DB_PASSWORD":          "docpassword",
	"DB_NAME":              "document_management",
	"DB_SSL":               false,
	"DB_PATH":              "document_management.db",
	"JWT_SECRET":           "default-secret-key-change-me",
	"JWT_EXPIRES_IN":       time.Duration(constants.DefaultTokenExpiryHours) * time.Hour,
	"UPLOAD_DIR":           "./uploads",
	"MAX_UPLOAD_MB":        constants.DefaultMaxUploadMB,
	"TRASH_RETENTION_DAYS": constants.DefaultRetentionDays,
	"TRASH_PURGE_SCHEDULE": constants.DefaultPurgeSchedule,
	"PORT":                 "8080",
	"GIN_MODE":             "debug",
	"STATIC_DIR":           "",
	"CORS_ORIGINS":         "http://localhost:5173",
	"ENVIRONMENT":          "dev",
	"LOG_LEVEL":            "info",
	"LOG_FORMAT":           "text",
	"LOG_FILE":             "",
	"LOG_MAX_SIZE_MB":      128,
	"LOG_MAX_BACKUPS":      5,
	"LOG_MAX_AGE_DAYS":     16,
	"OTEL_SERVICE_NAME":    "document-management-api",
	"ADMIN_USERNAME":       "",
	"ADMIN_PASSWORD":       "",
}

// Load reads .env files when present, then an optional YAML file, then the
// process environment. Environment variables win over the file.
func Load(path string) (*Config, error) {
	for _, f := range []string{".env", ".env.local"} {
		_ = godotenv.Load(f)
	}

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	return &Config{
		DBDriver:   strings.ToLower(v.GetString("DB_DRIVER")),
		DBHost:     v.GetString("DB_HOST"),
		DBPort:     v.GetString("DB_PORT"),
		DBUser:     v.GetString("DB_USER"),
		DBPassword: v.GetString("DB_PASSWORD"),
		DBName:     v.GetString("DB_NAME"),
		DBSSL:      v.GetBool("DB_SSL"),
		DBPath:     v.GetString("DB_PATH"),

		JWTSecret:    v.GetString("JWT_SECRET"),
		JWTExpiresIn: v.GetDuration("JWT_EXPIRES_IN"),

		UploadDir:          resolveDir(v.GetString("UPLOAD_DIR")),
		MaxUploadMB:        v.GetInt64("MAX_UPLOAD_MB"),
		TrashRetentionDays: v.GetInt("TRASH_RETENTION_DAYS"),
		TrashPurgeSchedule: v.GetString("TRASH_PURGE_SCHEDULE"),

		Port:        v.GetString("PORT"),
		GinMode:     v.GetString("GIN_MODE"),
		StaticDir:   v.GetString("STATIC_DIR"),
		CORSOrigins: stringList(v, "CORS_ORIGINS"),
		Environment: v.GetString("ENVIRONMENT"),

		LogLevel:        v.GetString("LOG_LEVEL"),
		LogFormat:       v.GetString("LOG_FORMAT"),
		LogFile:         v.GetString("LOG_FILE"),
		LogMaxSizeMB:    v.GetInt("LOG_MAX_SIZE_MB"),
		LogMaxBackups:   v.GetInt("LOG_MAX_BACKUPS"),
		LogMaxAgeDays:   v.GetInt("LOG_MAX_AGE_DAYS"),
		OTelServiceName: v.GetString("OTEL_SERVICE_NAME"),

		AdminUsername: v.GetString("ADMIN_USERNAME"),
		AdminPassword: v.GetString("ADMIN_PASSWORD"),
	}, nil
}

// Retention returns the trash retention window.
func (c *Config) Retention() time.Duration {
	days := c.TrashRetentionDays
	if days <= 0 {
		days = constants.DefaultRetentionDays
	}
	return time.Duration(days) * 24 * time.Hour
}

// MaxUploadBytes returns the upload size limit in bytes.
func (c *Config) MaxUploadBytes() int64 {
	mb := c.MaxUploadMB
	if mb <= 0 {
		mb = constants.DefaultMaxUploadMB
	}
	return mb << 20
}

func resolveDir(dir string) string {
	if abs, err := filepath.Abs(dir); err == nil {
		return abs
	}
	return dir
}

// stringList accepts both a YAML list and a comma separated env value.
func stringList(v *viper.Viper, key string) []string {
	if _, ok := v.Get(key).([]interface{}); ok {
		return v.GetStringSlice(key)
	}
	return splitList(v.GetString(key))
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
