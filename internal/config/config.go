package config

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is the resolved configuration of the CLI and the sandbox server.
type Config struct {
	APIBaseURL     string
	CredentialsDSN string
	RabbitMQURL    string
	HTTPTimeout    time.Duration
	Sandbox        SandboxConfig
}

// SandboxConfig configures the local stand-in marketplace API.
type SandboxConfig struct {
	Addr      string
	DBDriver  string
	DBDSN     string
	JWTSecret string
	PublicURL string
	Storage   StorageConfig
}

// StorageConfig selects where uploaded files are kept.
type StorageConfig struct {
	Backend string // "disk" or "minio"
	Dir     string
	Minio   MinioConfig
}

// MinioConfig holds MinIO connection details.
type MinioConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// Load reads configuration from defaults, an optional artisanmart.yaml (in
// the working directory or ~/.artisanmart), a .env file when present, and the
// environment, in increasing order of precedence. configFile overrides the
// search when non-empty.
func Load(configFile string) (Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: could not load .env: %v", err)
	}

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("artisanmart")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath(filepath.Join(homeDir(), ".artisanmart"))
	}
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || configFile != "" {
			return Config{}, err
		}
	}

	return Config{
		APIBaseURL:     strings.TrimRight(v.GetString("API_BASE_URL"), "/"),
		CredentialsDSN: v.GetString("CREDENTIALS_DSN"),
		RabbitMQURL:    v.GetString("RABBITMQ_URL"),
		HTTPTimeout:    v.GetDuration("HTTP_TIMEOUT"),
		Sandbox: SandboxConfig{
			Addr:      v.GetString("SANDBOX_ADDR"),
			DBDriver:  v.GetString("SANDBOX_DB_DRIVER"),
			DBDSN:     v.GetString("SANDBOX_DB_DSN"),
			JWTSecret: v.GetString("SANDBOX_JWT_SECRET"),
			PublicURL: strings.TrimRight(v.GetString("SANDBOX_PUBLIC_URL"), "/"),
			Storage: StorageConfig{
				Backend: v.GetString("STORAGE_BACKEND"),
				Dir:     v.GetString("STORAGE_DIR"),
				Minio: MinioConfig{
					Endpoint:  v.GetString("MINIO_ENDPOINT"),
					AccessKey: v.GetString("MINIO_ACCESS_KEY"),
					SecretKey: v.GetString("MINIO_SECRET_KEY"),
					Bucket:    v.GetString("MINIO_BUCKET"),
					UseSSL:    v.GetBool("MINIO_USE_SSL"),
				},
			},
		},
	}, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("API_BASE_URL", "http://localhost:8000")
	v.SetDefault("CREDENTIALS_DSN", filepath.Join(homeDir(), ".artisanmart", "session.db"))
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("HTTP_TIMEOUT", "30s")
	v.SetDefault("SANDBOX_ADDR", ":8000")
	v.SetDefault("SANDBOX_DB_DRIVER", "sqlite")
	v.SetDefault("SANDBOX_DB_DSN", "sandbox.db")
	v.SetDefault("SANDBOX_JWT_SECRET", "sandbox_secret")
	v.SetDefault("SANDBOX_PUBLIC_URL", "http://localhost:8000")
	v.SetDefault("STORAGE_BACKEND", "disk")
	v.SetDefault("STORAGE_DIR", "uploads")
	v.SetDefault("MINIO_ENDPOINT", "localhost:9000")
	v.SetDefault("MINIO_ACCESS_KEY", "")
	v.SetDefault("MINIO_SECRET_KEY", "")
	v.SetDefault("MINIO_BUCKET", "artisanmart")
	v.SetDefault("MINIO_USE_SSL", false)
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
