package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type ServerConfig struct {
	Port      int    `yaml:"port"`
	ClientURL string `yaml:"client_url"`
}

type DatabaseConfig struct {
	DSN string `yaml:"url"`
}

type EmailConfig struct {
	SMTPHost     string `yaml:"smtp_host"`
	SMTPPort     int    `yaml:"smtp_port"`
	SMTPUser     string `yaml:"smtp_user"`
	SMTPPassword string `yaml:"smtp_password"`
	FromEmail    string `yaml:"from_email"`
}

type AuthConfig struct {
	JWTSecret string `yaml:"jwt_secret"`
	TokenTTL  time.Duration
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type GeminiConfig struct {
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`
	Timeout time.Duration
}

type TelegramConfig struct {
	BotToken    string `yaml:"bot_token"`
	AdminChatID int64  `yaml:"admin_chat_id"`
}

type RateLimitConfig struct {
	Enabled      bool   `yaml:"enabled"`
	Capacity     int    `yaml:"capacity"`
	RefillTokens int    `yaml:"refill_tokens"`
	Prefix       string `yaml:"prefix"`
	RefillEvery  time.Duration
	TTL          time.Duration
}

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Email     EmailConfig     `yaml:"email"`
	Auth      AuthConfig      `yaml:"auth"`
	Redis     RedisConfig     `yaml:"redis"`
	Gemini    GeminiConfig    `yaml:"gemini"`
	Telegram  TelegramConfig  `yaml:"telegram"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

// LoadConfig reads config/config.yaml if present, then lets environment
// variables override file values. A local .env is picked up first so both
// docker and bare runs behave the same.
func LoadConfig() *Config {
	_ = godotenv.Load() // отсутствие .env — не ошибка

	cfg := &Config{}
	if f, err := os.Open("config/config.yaml"); err == nil {
		defer f.Close()
		if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
			panic("Failed to parse config.yaml: " + err.Error())
		}
	}

	cfg.Server.Port = envInt("APP_PORT", defaultInt(cfg.Server.Port, 5000))
	cfg.Server.ClientURL = envStr("CLIENT_URL", defaultStr(cfg.Server.ClientURL, "http://localhost:3000"))
	cfg.Database.DSN = envStr("DATABASE_URL", cfg.Database.DSN)
	cfg.Auth.JWTSecret = envStr("JWT_SECRET", defaultStr(cfg.Auth.JWTSecret, "your-secret-key"))
	cfg.Auth.TokenTTL = envDur("TOKEN_TTL", time.Hour)

	cfg.Email.SMTPHost = envStr("SMTP_HOST", cfg.Email.SMTPHost)
	cfg.Email.SMTPPort = envInt("SMTP_PORT", defaultInt(cfg.Email.SMTPPort, 587))
	cfg.Email.SMTPUser = envStr("SMTP_USER", cfg.Email.SMTPUser)
	cfg.Email.SMTPPassword = envStr("SMTP_PASSWORD", cfg.Email.SMTPPassword)
	cfg.Email.FromEmail = envStr("FROM_EMAIL", defaultStr(cfg.Email.FromEmail, cfg.Email.SMTPUser))

	cfg.Redis.Addr = envStr("REDIS_ADDR", defaultStr(cfg.Redis.Addr, "localhost:6379"))
	cfg.Redis.Password = envStr("REDIS_PASSWORD", cfg.Redis.Password)
	cfg.Redis.DB = envInt("REDIS_DB", cfg.Redis.DB)

	cfg.Gemini.APIKey = envStr("GEMINI_API_KEY", cfg.Gemini.APIKey)
	cfg.Gemini.Model = envStr("GEMINI_MODEL", defaultStr(cfg.Gemini.Model, "gemini-2.0-flash"))
	cfg.Gemini.Timeout = envDur("GEMINI_TIMEOUT", 10*time.Second)

	cfg.Telegram.BotToken = envStr("TELEGRAM_BOT_TOKEN", cfg.Telegram.BotToken)
	if v := envInt64("TELEGRAM_ADMIN_CHAT_ID", cfg.Telegram.AdminChatID); v != 0 {
		cfg.Telegram.AdminChatID = v
	}

	cfg.RateLimit.Enabled = envBool("RATE_LIMIT_ENABLED", true)
	cfg.RateLimit.Capacity = envInt("RATE_LIMIT_CAPACITY", defaultInt(cfg.RateLimit.Capacity, 10))
	cfg.RateLimit.RefillTokens = envInt("RATE_LIMIT_REFILL_TOKENS", defaultInt(cfg.RateLimit.RefillTokens, 1))
	cfg.RateLimit.RefillEvery = envDur("RATE_LIMIT_REFILL_EVERY", 6*time.Second)
	cfg.RateLimit.TTL = envDur("RATE_LIMIT_TTL", 10*time.Minute)
	cfg.RateLimit.Prefix = envStr("RATE_LIMIT_PREFIX", defaultStr(cfg.RateLimit.Prefix, "rl"))

	return cfg
}

func defaultStr(v, d string) string {
	if v == "" {
		return d
	}
	return v
}

func defaultInt(v, d int) int {
	if v == 0 {
		return d
	}
	return v
}

func envStr(key, d string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return d
}

func envInt(key string, d int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return d
}

func envInt64(key string, d int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return d
}

func envBool(key string, d bool) bool {
	switch os.Getenv(key) {
	case "1", "true", "TRUE", "yes", "on":
		return true
	case "0", "false", "FALSE", "no", "off":
		return false
	}
	return d
}

func envDur(key string, d time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if dur, err := time.ParseDuration(v); err == nil {
			return dur
		}
	}
	return d
}
