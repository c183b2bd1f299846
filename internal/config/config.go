package config

import (
	"fmt"
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Port               string
	DBUrl              string
	JWTSecret          string
	SupabaseURL        string
	SupabaseBucket     string
	SupabaseServiceKey string
	AppEnv             string
	EnableDocs         bool
	LogLevel           string
	SignInPath         string
	CORSOrigins        string
	KafkaBrokers       []string
	KafkaTopic         string
	ResendAPIKey       string
	EmailFrom          string
	PublicAppURL       string
}

// LoadConfig reads .env (if present) and then the process environment.
// Environment variables always win over .env values.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", "8080")
	v.SetDefault("APP_ENV", "production")
	v.SetDefault("ENABLE_API_DOCS", false)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("SIGN_IN_PATH", "/login")
	v.SetDefault("CORS_ORIGINS", "*")
	v.SetDefault("KAFKA_TOPIC", "trainee-requests")
	v.SetDefault("EMAIL_FROM", "Gym Trainer <noreply@gymtrainer.app>")

	jwtSecret := strings.TrimSpace(v.GetString("SUPABASE_JWT_SECRET"))
	if jwtSecret == "" {
		return nil, fmt.Errorf("SUPABASE_JWT_SECRET is required")
	}

	return &Config{
		Port:               v.GetString("PORT"),
		DBUrl:              v.GetString("DB_URL"),
		JWTSecret:          jwtSecret,
		SupabaseURL:        v.GetString("SUPABASE_URL"),
		SupabaseBucket:     v.GetString("SUPABASE_BUCKET"),
		SupabaseServiceKey: v.GetString("SUPABASE_SERVICE_KEY"),
		AppEnv:             normalizeEnv(v.GetString("APP_ENV")),
		EnableDocs:         v.GetBool("ENABLE_API_DOCS"),
		LogLevel:           strings.ToLower(strings.TrimSpace(v.GetString("LOG_LEVEL"))),
		SignInPath:         v.GetString("SIGN_IN_PATH"),
		CORSOrigins:        v.GetString("CORS_ORIGINS"),
		KafkaBrokers:       splitTrimmed(v.GetString("KAFKA_BROKERS")),
		KafkaTopic:         v.GetString("KAFKA_TOPIC"),
		ResendAPIKey:       v.GetString("RESEND_API_KEY"),
		EmailFrom:          v.GetString("EMAIL_FROM"),
		PublicAppURL:       strings.TrimRight(v.GetString("PUBLIC_APP_URL"), "/"),
	}, nil
}

func normalizeEnv(value string) string {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "dev", "develop", "development", "local":
		return "development"
	case "prod", "production":
		return "production"
	case "stage", "staging":
		return "staging"
	case "test", "testing":
		return "test"
	default:
		return strings.ToLower(strings.TrimSpace(value))
	}
}

func splitTrimmed(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func (c *Config) DocsEnabled() bool {
	return c != nil && c.EnableDocs && c.AppEnv == "development"
}

func (c *Config) StorageConfigured() bool {
	return c.SupabaseURL != "" && c.SupabaseBucket != "" && c.SupabaseServiceKey != ""
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}
