package wire

import (
	"context"

	"github.com/google/wire"

	"hackathon-idea-api/internal/application/ideation"
	"hackathon-idea-api/internal/config"
	"hackathon-idea-api/internal/infrastructure/llm"
	"hackathon-idea-api/internal/infrastructure/persistence/redis"
	"hackathon-idea-api/internal/interfaces/http/handler"
	"hackathon-idea-api/internal/interfaces/http/middleware"
	"hackathon-idea-api/internal/interfaces/http/router"
	workflowprompt "hackathon-idea-api/internal/workflow/prompt"
	"hackathon-idea-api/pkg/logger"
)

// PipelineSet 创意生成流程提供者集合
var PipelineSet = wire.NewSet(
	ProvideLLMConfig,
	llm.NewTextGenerator,
	workflowprompt.NewRegistry,
	ideation.NewPromptBuilder,
	ideation.NewService,
)

// RedisSet 可选 Redis（仅用于共享限流计数）
var RedisSet = wire.NewSet(
	ProvideRedisClientOptional,
	ProvideRateLimiter,
)

// RouterSet 路由器提供者集合
var RouterSet = wire.NewSet(
	wire.Bind(new(handler.IdeaGenerator), new(*ideation.Service)),
	handler.NewIdeaHandler,
	ProvideHealthHandler,
	router.New,
)

// ProvideLLMConfig 提供 LLM 配置
func ProvideLLMConfig(cfg *config.Config) *config.LLMConfig {
	return &cfg.LLM
}

// ProvideRedisClientOptional 提供 Redis 客户端。
// 未启用或不可达时返回 nil，限流退化为进程内实现。
func ProvideRedisClientOptional(ctx context.Context, cfg *config.Config) (*redis.Client, func(), error) {
	if !cfg.Cache.Redis.Enabled {
		return nil, func() {}, nil
	}
	client, err := redis.NewClient(ctx, &cfg.Cache.Redis)
	if err != nil {
		logger.Warn(ctx, "redis not available, falling back to in-process rate limiting", "error", err.Error())
		return nil, func() {}, nil
	}
	cleanup := func() {
		_ = client.Close()
	}
	return client, cleanup, nil
}

// ProvideRateLimiter 提供限流器，未启用限流时返回 nil
func ProvideRateLimiter(cfg *config.Config, client *redis.Client) middleware.RateLimiter {
	if !cfg.Security.RateLimit.Enabled {
		return nil
	}
	if client != nil {
		return redis.NewRateLimiter(client)
	}
	return middleware.NewLocalRateLimiter(cfg.Security.RateLimit.Burst)
}

// ProvideHealthHandler 提供健康检查处理器
func ProvideHealthHandler(cfg *config.Config, client *redis.Client) *handler.HealthHandler {
	provider, providerCfg, _ := cfg.LLM.Provider()

	var checker handler.HealthChecker
	if client != nil {
		checker = client
	}
	return handler.NewHealthHandler(cfg.App.Version, provider, providerCfg.Model, checker)
}
