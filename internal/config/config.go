// Package config loads service configuration from environment variables,
// with an optional .env file for local development.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Version is the service version, overridable at build time with
// -ldflags "-X github.com/crimson-sun/flyerscan/internal/config.Version=...".
var Version = "0.1.0"

// Config holds all service configuration.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	JWT      JWTConfig
	OCR      OCRConfig
	Engine   EngineConfig
	Nearby   NearbyConfig
	Log      LogConfig

	ShutdownTimeout time.Duration
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Host string
	Port int
}

// DatabaseConfig holds SQLite settings.
type DatabaseConfig struct {
	Path string
}

// JWTConfig holds token signing settings.
type JWTConfig struct {
	Secret string
	Expiry time.Duration
}

// OCRConfig holds OCR.Space client settings. An empty APIKey leaves the
// scan endpoint unconfigured rather than failing startup.
type OCRConfig struct {
	APIKey   string
	Endpoint string
	Timeout  time.Duration
}

// EngineConfig holds extraction engine settings.
type EngineConfig struct {
	ModelPath  string
	VocabPath  string
	LabelsPath string
	DisableNER bool
}

// NearbyConfig holds external event discovery settings.
type NearbyConfig struct {
	EventbriteToken string
	MaxResults      int
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level       string
	Development bool
}

// Load reads configuration from the environment with sensible defaults.
// A .env file in the working directory is loaded first if present.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Server: ServerConfig{
			Host: getenv("FLYERSCAN_HOST", "0.0.0.0"),
			Port: getenvInt("FLYERSCAN_PORT", 8080),
		},
		Database: DatabaseConfig{
			Path: getenv("FLYERSCAN_DB_PATH", "flyerscan.db"),
		},
		JWT: JWTConfig{
			Secret: os.Getenv("FLYERSCAN_JWT_SECRET"),
			Expiry: getenvDuration("FLYERSCAN_JWT_EXPIRY", 24*time.Hour),
		},
		OCR: OCRConfig{
			APIKey:   os.Getenv("FLYERSCAN_OCR_API_KEY"),
			Endpoint: getenv("FLYERSCAN_OCR_ENDPOINT", "https://api.ocr.space/parse/image"),
			Timeout:  getenvDuration("FLYERSCAN_OCR_TIMEOUT", 30*time.Second),
		},
		Engine: EngineConfig{
			ModelPath:  getenv("FLYERSCAN_MODEL_PATH", "models/model.onnx"),
			VocabPath:  getenv("FLYERSCAN_VOCAB_PATH", "models/vocab.txt"),
			LabelsPath: getenv("FLYERSCAN_LABELS_PATH", "models/labels.txt"),
			DisableNER: getenvBool("FLYERSCAN_DISABLE_NER", false),
		},
		Nearby: NearbyConfig{
			EventbriteToken: os.Getenv("FLYERSCAN_EVENTBRITE_TOKEN"),
			MaxResults:      getenvInt("FLYERSCAN_NEARBY_MAX_RESULTS", 50),
		},
		Log: LogConfig{
			Level:       getenv("FLYERSCAN_LOG_LEVEL", "info"),
			Development: getenvBool("FLYERSCAN_LOG_DEV", false),
		},
		ShutdownTimeout: getenvDuration("FLYERSCAN_SHUTDOWN_TIMEOUT", 10*time.Second),
	}
}

// Validate checks the configuration and returns all problems at once.
func (c Config) Validate() error {
	var problems []string

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		problems = append(problems, fmt.Sprintf("port %d out of range 1-65535", c.Server.Port))
	}
	if c.Database.Path == "" {
		problems = append(problems, "database path is empty")
	}
	if c.JWT.Secret == "" {
		problems = append(problems, "FLYERSCAN_JWT_SECRET is required")
	}
	if c.JWT.Expiry <= 0 {
		problems = append(problems, fmt.Sprintf("jwt expiry %v must be positive", c.JWT.Expiry))
	}
	if c.ShutdownTimeout < 0 {
		problems = append(problems, fmt.Sprintf("shutdown timeout %v is negative", c.ShutdownTimeout))
	}
	if !c.Engine.DisableNER {
		for _, f := range []struct{ name, path string }{
			{"model", c.Engine.ModelPath},
			{"vocab", c.Engine.VocabPath},
			{"labels", c.Engine.LabelsPath},
		} {
			if _, err := os.Stat(f.path); err != nil {
				problems = append(problems, fmt.Sprintf("%s file not found: %s", f.name, f.path))
			}
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
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
		return fallback
	}
	return n
}

func getenvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func getenvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
