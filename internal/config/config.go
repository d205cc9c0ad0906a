package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env        string
	ServerPort string

	// Database
	DBDriver       string // sqlite, postgres, sqlserver, mysql
	DBUrl          string
	DBSchema       string // auto, migrations
	DBReset        bool
	DBMaxOpenConns int

	// Session
	SessionSecret string
	SessionTTL    time.Duration
	SessionStore  string // memory, redis
	CookieName    string
	CookieSecure  bool

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Blob storage
	BlobDriver     string // local, s3
	UploadDir      string
	PublicBaseURL  string
	S3Bucket       string
	S3Region       string
	S3Endpoint     string
	S3AccessKey    string
	S3SecretKey    string
	S3PublicURL    string
	ImageMaxSide   int
	ImageQuality   int
	MaxUploadBytes int64

	// Payment
	MercadoPagoToken string
	CheckoutBackURL  string

	// Misc
	Timezone         string
	LogLevel         string
	LogFormat        string
	CheckEmailDomain bool
	LoginRatePerMin  int
	CORSOrigins      []string

	RootEmail    string
	RootPassword string
}

// Load reads configuration from the environment. A .env file in the working
// directory is honoured when present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Env:        getEnv("APP_ENV", EnvDevelopment),
		ServerPort: getEnv("SERVER_PORT", "8080"),

		DBDriver:       getEnv("DB_DRIVER", "sqlite"),
		DBUrl:          getEnv("DATABASE_URL", "marketplace.db"),
		DBSchema:       getEnv("DB_SCHEMA", "auto"),
		DBReset:        getEnvAsBool("DB_RESET", false),
		DBMaxOpenConns: getEnvAsInt("DB_MAX_OPEN_CONNS", 10),

		SessionSecret: getEnv("SESSION_SECRET", ""),
		SessionTTL:    getEnvAsDuration("SESSION_TTL", 24*time.Hour),
		SessionStore:  getEnv("SESSION_STORE", "memory"),
		CookieName:    getEnv("SESSION_COOKIE", "market_session"),
		CookieSecure:  getEnvAsBool("SESSION_COOKIE_SECURE", false),

		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvAsInt("REDIS_DB", 0),

		BlobDriver:     getEnv("BLOB_DRIVER", "local"),
		UploadDir:      getEnv("UPLOAD_DIR", "uploads"),
		PublicBaseURL:  strings.TrimRight(getEnv("PUBLIC_BASE_URL", "http://localhost:8080"), "/"),
		S3Bucket:       getEnv("S3_BUCKET", ""),
		S3Region:       getEnv("S3_REGION", "us-east-1"),
		S3Endpoint:     getEnv("S3_ENDPOINT", ""),
		S3AccessKey:    getEnv("S3_ACCESS_KEY", ""),
		S3SecretKey:    getEnv("S3_SECRET_KEY", ""),
		S3PublicURL:    strings.TrimRight(getEnv("S3_PUBLIC_URL", ""), "/"),
		ImageMaxSide:   getEnvAsInt("IMAGE_MAX_SIDE", 1200),
		ImageQuality:   getEnvAsInt("IMAGE_QUALITY", 80),
		MaxUploadBytes: int64(getEnvAsInt("MAX_UPLOAD_MB", 8)) << 20,

		MercadoPagoToken: getEnv("MERCADOPAGO_ACCESS_TOKEN", ""),
		CheckoutBackURL:  getEnv("CHECKOUT_BACK_URL", ""),

		Timezone:         getEnv("APP_TIMEZONE", "America/Sao_Paulo"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		LogFormat:        getEnv("LOG_FORMAT", "text"),
		CheckEmailDomain: getEnvAsBool("CHECK_EMAIL_DOMAIN", false),
		LoginRatePerMin:  getEnvAsInt("LOGIN_RATE_PER_MIN", 10),
		CORSOrigins:      getEnvAsList("CORS_ORIGINS"),

		RootEmail:    getEnv("ROOT_EMAIL", ""),
		RootPassword: getEnv("ROOT_PASSWORD", ""),
	}
}

// Validate rejects settings the server cannot start with.
func (c *Config) Validate() error {
	if c.SessionSecret == "" {
		if c.IsProduction() {
			return errors.New("SESSION_SECRET is required in production")
		}
		c.SessionSecret = "dev-session-secret"
	}

	switch c.DBSchema {
	case "auto", "migrations":
	default:
		return fmt.Errorf("unsupported DB_SCHEMA: %s", c.DBSchema)
	}

	if c.DBSchema == "migrations" && c.DBDriver != "postgres" {
		return fmt.Errorf("DB_SCHEMA=migrations requires DB_DRIVER=postgres, got %s", c.DBDriver)
	}

	if c.BlobDriver == "s3" && c.S3Bucket == "" {
		return errors.New("S3_BUCKET is required when BLOB_DRIVER=s3")
	}

	return nil
}

func (c *Config) IsProduction() bool {
	return c.Env == EnvProduction
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%s", c.ServerPort)
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvAsList(key string) []string {
	var out []string
	for _, v := range strings.Split(os.Getenv(key), ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func getEnvAsInt(key string, def int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return def
	}
	return v
}

func getEnvAsBool(key string, def bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return def
	}
	return v
}

func getEnvAsDuration(key string, def time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return def
	}
	return v
}
