package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port      string
	DBDSN     string
	JWTSecret string

	// Vendor credentials. Adapters with an empty key stay registered but
	// reject calls with a classified error.
	OpenAIBaseURL    string
	OpenAIAPIKey     string
	OpenAIModel      string
	AnthropicBaseURL string
	AnthropicAPIKey  string
	AnthropicModel   string
	GeminiBaseURL    string
	GeminiAPIKey     string
	GeminiModel      string
	CohereBaseURL    string
	CohereAPIKey     string
	CohereModel      string

	// Analytics sink; empty URL means events are dropped.
	AnalyticsAMQPURL string
	AnalyticsQueue   string

	// Rate limiting; empty addr disables it.
	RedisAddr          string
	RedisPassword      string
	RedisDB            int
	RateLimitPerMinute int
	RateLimitWindow    time.Duration
}

func Load() Config {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		dsn = "file:chathub.db?cache=shared"
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "dev-secret-change-me"
	}

	queue := os.Getenv("ANALYTICS_QUEUE")
	if queue == "" {
		queue = "analytics.events"
	}

	redisDB := 0
	if v := os.Getenv("REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			redisDB = n
		}
	}

	rateLimit := 30
	if v := os.Getenv("RATE_LIMIT_PER_MINUTE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			rateLimit = n
		}
	}

	return Config{
		Port:      port,
		DBDSN:     dsn,
		JWTSecret: secret,

		OpenAIBaseURL:    os.Getenv("OPENAI_BASE_URL"),
		OpenAIAPIKey:     os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:      os.Getenv("OPENAI_MODEL"),
		AnthropicBaseURL: os.Getenv("ANTHROPIC_BASE_URL"),
		AnthropicAPIKey:  os.Getenv("ANTHROPIC_API_KEY"),
		AnthropicModel:   os.Getenv("ANTHROPIC_MODEL"),
		GeminiBaseURL:    os.Getenv("GEMINI_BASE_URL"),
		GeminiAPIKey:     os.Getenv("GEMINI_API_KEY"),
		GeminiModel:      os.Getenv("GEMINI_MODEL"),
		CohereBaseURL:    os.Getenv("COHERE_BASE_URL"),
		CohereAPIKey:     os.Getenv("COHERE_API_KEY"),
		CohereModel:      os.Getenv("COHERE_MODEL"),

		AnalyticsAMQPURL: os.Getenv("ANALYTICS_AMQP_URL"),
		AnalyticsQueue:   queue,

		RedisAddr:          os.Getenv("REDIS_ADDR"),
		RedisPassword:      os.Getenv("REDIS_PASSWORD"),
		RedisDB:            redisDB,
		RateLimitPerMinute: rateLimit,
		RateLimitWindow:    time.Minute,
	}
}
