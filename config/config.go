package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Env       string
	Port      string
	Database  DatabaseConfig
	JWTSecret string
	LLM       LLMConfig
	Model     ModelConfig
	AWS       AWSConfig
	Scheduler SchedulerConfig
}

type DatabaseConfig struct {
	Driver   string // "postgres" | "sqlite"
	Host     string
	User     string
	Password string
	Name     string
	Port     string
	SSLMode  string
	Path     string // sqlite file path / DSN
}

// LLMConfig describes the optional text-generation backend. Provider "" or
// "none" leaves the analyzer in its fallback-only state.
type LLMConfig struct {
	Provider string // "openai" | "huggingface" | "none"
	APIKey   string
	BaseURL  string
	Model    string
	Timeout  time.Duration
}

type ModelConfig struct {
	Path     string // local coefficients file
	S3Bucket string
	S3Key    string
}

type AWSConfig struct {
	Region          string
	S3Region        string
	PhotoBucket     string
	CloudFrontURL   string
	SESSender       string
	SNSPlatformARN  string
	EnableRekognize bool
}

type SchedulerConfig struct {
	Enabled      bool
	DigestHour   uint
	InsightsHour uint
}

// Load reads configuration from the process environment. Call godotenv.Load
// first when a .env file should be honoured.
func Load() Config {
	region := GetEnv("AWS_REGION", "")
	return Config{
		Env:  GetEnv("ENV", "development"),
		Port: GetEnv("PORT", "8080"),
		Database: DatabaseConfig{
			Driver:   strings.ToLower(GetEnv("DB_DRIVER", "postgres")),
			Host:     GetEnv("DB_HOST", "localhost"),
			User:     GetEnv("DB_USER", "postgres"),
			Password: GetEnv("DB_PASSWORD", "password"),
			Name:     GetEnv("DB_NAME", "healthtrack"),
			Port:     GetEnv("DB_PORT", "5432"),
			SSLMode:  GetEnv("DB_SSLMODE", "disable"),
			Path:     GetEnv("DB_PATH", "healthtrack.db"),
		},
		JWTSecret: os.Getenv("JWT_SECRET"),
		LLM: LLMConfig{
			Provider: strings.ToLower(GetEnv("LLM_PROVIDER", "openai")),
			APIKey:   os.Getenv("LLM_API_KEY"),
			BaseURL:  GetEnv("LLM_BASE_URL", ""),
			Model:    GetEnv("LLM_MODEL", "gpt-4o-mini"),
			Timeout:  GetDuration("LLM_TIMEOUT", 30*time.Second),
		},
		Model: ModelConfig{
			Path:     GetEnv("CALORIE_MODEL_PATH", "calorie_model.json"),
			S3Bucket: os.Getenv("CALORIE_MODEL_S3_BUCKET"),
			S3Key:    GetEnv("CALORIE_MODEL_S3_KEY", "models/calorie_model.json"),
		},
		AWS: AWSConfig{
			Region:          region,
			S3Region:        GetEnv("S3_REGION", region),
			PhotoBucket:     os.Getenv("S3_BUCKET"),
			CloudFrontURL:   os.Getenv("CLOUDFRONT_URL"),
			SESSender:       os.Getenv("SES_EMAIL"),
			SNSPlatformARN:  os.Getenv("SNS_FCM_ARN"),
			EnableRekognize: GetBool("REKOGNITION_ENABLED", false),
		},
		Scheduler: SchedulerConfig{
			Enabled:      GetBool("SCHEDULER_ENABLED", true),
			DigestHour:   uint(GetInt("DIGEST_HOUR", 19)),
			InsightsHour: uint(GetInt("INSIGHTS_HOUR", 20)),
		},
	}
}

// AWSEnabled reports whether any AWS-backed collaborator can be constructed.
func (c Config) AWSEnabled() bool {
	return c.AWS.Region != ""
}

func GetEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return fallback
}

func GetInt(key string, fallback int) int {
	v, err := strconv.Atoi(GetEnv(key, ""))
	if err != nil {
		return fallback
	}
	return v
}

func GetBool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(GetEnv(key, ""))
	if err != nil {
		return fallback
	}
	return v
}

func GetDuration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(GetEnv(key, ""))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}
