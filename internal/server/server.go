// Package server holds the lazily-initialized application handle. The
// handler is built exactly once behind sync.Once so concurrent first
// requests (or repeated serverless invocations) never double-initialize
// the registry, store, or analytics channel.
package server

import (
	"log"
	"net/http"
	"sync"

	"github.com/hu8wei/chathub/internal/ai"
	"github.com/hu8wei/chathub/internal/analytics"
	"github.com/hu8wei/chathub/internal/chat"
	"github.com/hu8wei/chathub/internal/config"
	"github.com/hu8wei/chathub/internal/db"
	"github.com/hu8wei/chathub/internal/httpapi"
	"github.com/redis/go-redis/v9"
)

var (
	once    sync.Once
	handler http.Handler
	initErr error
)

// Handler returns the shared HTTP handler, building it on first use.
func Handler() (http.Handler, error) {
	once.Do(func() {
		handler, initErr = build(config.Load())
	})
	return handler, initErr
}

func build(cfg config.Config) (http.Handler, error) {
	gdb, err := db.Connect(cfg.DBDSN)
	if err != nil {
		return nil, err
	}

	reg := ai.NewRegistry()
	reg.Register(ai.NewOpenAIProvider(cfg.OpenAIBaseURL, cfg.OpenAIAPIKey, cfg.OpenAIModel))
	reg.Register(ai.NewAnthropicProvider(cfg.AnthropicBaseURL, cfg.AnthropicAPIKey, cfg.AnthropicModel))
	reg.Register(ai.NewGeminiProvider(cfg.GeminiBaseURL, cfg.GeminiAPIKey, cfg.GeminiModel))
	reg.Register(ai.NewCohereProvider(cfg.CohereBaseURL, cfg.CohereAPIKey, cfg.CohereModel))

	var emitter analytics.Emitter = analytics.Noop{}
	if cfg.AnalyticsAMQPURL != "" {
		amqpEmitter, err := analytics.NewAMQPEmitter(cfg.AnalyticsAMQPURL, cfg.AnalyticsQueue)
		if err != nil {
			// analytics is best-effort, the API comes up without it
			log.Printf("[Server] analytics sink unavailable, events will be dropped: %v", err)
		} else {
			emitter = amqpEmitter
		}
	}

	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
	}

	svc := chat.NewService(chat.NewRepo(gdb), reg, emitter)
	return httpapi.NewRouter(gdb, cfg, svc, rdb), nil
}
