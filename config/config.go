package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"
)

var (
	Environment string
	APIBaseURL  string
	TokenFile   string
	HTTPTimeout time.Duration
	LogLevel    string
	LogFile     string

	// reference backend
	Port        string
	JWTSecret   string
	TokenTTL    time.Duration
	UploadDir   string
	CORSOrigins []string

	AWSRegion          string
	AWSBucketName      string
	AWSAccessKeyID     string
	AWSSecretAccessKey string

	// singleton lock
	loadConfigOnce sync.Once
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("API_BASE_URL", "http://localhost:8080")
	v.SetDefault("TOKEN_FILE", defaultTokenFile())
	v.SetDefault("HTTP_TIMEOUT", "15s")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("PORT", "8080")
	v.SetDefault("JWT_SECRET", "campus-dev-secret")
	v.SetDefault("TOKEN_TTL", "24h")
	v.SetDefault("UPLOAD_DIR", "uploads")
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000,http://127.0.0.1:3000")
}

func defaultTokenFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "campus", "token")
}

// LoadConfig loads configuration from .env or config.yaml using Viper.
// Missing files are fine; environment variables and defaults still apply.
func LoadConfig() error {
	var loadError error
	loadConfigOnce.Do(func() {
		loadError = load(viper.GetViper())
	})
	return loadError
}

func load(v *viper.Viper) error {
	setDefaults(v)
	v.AutomaticEnv()

	// Try to load config from .env first, then fallback to config.yaml
	v.SetConfigFile(".env")
	if err := v.ReadInConfig(); err != nil {
		if !isMissing(err) {
			return err
		}
		v.SetConfigFile("config.yaml")
		if err := v.ReadInConfig(); err != nil && !isMissing(err) {
			return err
		}
	}

	Environment = v.GetString("ENVIRONMENT")
	APIBaseURL = strings.TrimRight(v.GetString("API_BASE_URL"), "/")
	TokenFile = v.GetString("TOKEN_FILE")
	HTTPTimeout = v.GetDuration("HTTP_TIMEOUT")
	LogLevel = v.GetString("LOG_LEVEL")
	LogFile = v.GetString("LOG_FILE")

	Port = v.GetString("PORT")
	JWTSecret = v.GetString("JWT_SECRET")
	TokenTTL = v.GetDuration("TOKEN_TTL")
	UploadDir = v.GetString("UPLOAD_DIR")
	CORSOrigins = splitList(v.GetString("CORS_ORIGINS"))

	AWSRegion = v.GetString("AWS_REGION")
	AWSBucketName = v.GetString("AWS_BUCKET_NAME")
	AWSAccessKeyID = v.GetString("AWS_ACCESS_KEY_ID")
	AWSSecretAccessKey = v.GetString("AWS_SECRET_ACCESS_KEY")

	if HTTPTimeout <= 0 {
		return errors.New("HTTP_TIMEOUT must be positive")
	}
	if TokenTTL <= 0 {
		return errors.New("TOKEN_TTL must be positive")
	}
	return nil
}

func isMissing(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist)
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
