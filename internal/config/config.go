package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// AppConfig 汇总运行服务所需的基础配置。
type AppConfig struct {
	Env            string
	LogLevel       string
	ListenAddr     string
	Port           string
	DatabaseDriver string
	DatabasePath   string
	DatabaseURL    string
	SessionSecret  string
	GinMode        string
	UploadDir      string
	UploadURLPath  string
	MaxUploadBytes int64
	SiteBaseURL    string
	AdminEmail     string
	AdminPassword  string
}

const defaultMaxUploadBytes = 15 * 1024 * 1024

// Load reads configuration from the environment, optionally layered over a
// .env or config.env file in the working directory. Missing values fall back
// to development-safe defaults.
func Load() AppConfig {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig()

	v.SetConfigName("config")
	v.AddConfigPath("./config")
	_ = v.MergeInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("APP_ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("PORT", "8080")
	v.SetDefault("DATABASE_DRIVER", "sqlite")
	v.SetDefault("DATABASE_PATH", "comex.db")
	v.SetDefault("SESSION_SECRET", "comex-dev-secret")
	v.SetDefault("GIN_MODE", "release")
	v.SetDefault("UPLOAD_DIR", "web/static/uploads")
	v.SetDefault("UPLOAD_URL_PATH", "/uploads")
	v.SetDefault("MAX_UPLOAD_BYTES", defaultMaxUploadBytes)
	v.SetDefault("SITE_BASE_URL", "http://localhost:8080")

	return fromViper(v)
}

func fromViper(v *viper.Viper) AppConfig {
	port := trimmed(v, "PORT")
	listenAddr := trimmed(v, "LISTEN_ADDR")
	if listenAddr == "" {
		listenAddr = fmt.Sprintf(":%s", port)
	}

	maxUpload := v.GetInt64("MAX_UPLOAD_BYTES")
	if maxUpload <= 0 {
		maxUpload = defaultMaxUploadBytes
	}

	return AppConfig{
		Env:            trimmed(v, "APP_ENV"),
		LogLevel:       strings.ToLower(trimmed(v, "LOG_LEVEL")),
		ListenAddr:     listenAddr,
		Port:           port,
		DatabaseDriver: strings.ToLower(trimmed(v, "DATABASE_DRIVER")),
		DatabasePath:   trimmed(v, "DATABASE_PATH"),
		DatabaseURL:    trimmed(v, "DATABASE_URL"),
		SessionSecret:  trimmed(v, "SESSION_SECRET"),
		GinMode:        trimmed(v, "GIN_MODE"),
		UploadDir:      trimmed(v, "UPLOAD_DIR"),
		UploadURLPath:  strings.TrimRight(trimmed(v, "UPLOAD_URL_PATH"), "/"),
		MaxUploadBytes: maxUpload,
		SiteBaseURL:    strings.TrimRight(trimmed(v, "SITE_BASE_URL"), "/"),
		AdminEmail:     trimmed(v, "ADMIN_EMAIL"),
		AdminPassword:  trimmed(v, "ADMIN_PASSWORD"),
	}
}

func trimmed(v *viper.Viper, key string) string {
	return strings.TrimSpace(v.GetString(key))
}
