//go:build wireinject
// +build wireinject

// Package wire 提供依赖注入配置
package wire

import (
	"context"

	"github.com/google/wire"

	"hackathon-idea-api/internal/application/ideation"
	"hackathon-idea-api/internal/config"
	"hackathon-idea-api/internal/interfaces/http/router"
)

// InitializePipeline 初始化创意生成流程（CLI 使用，不含 HTTP 层）
func InitializePipeline(ctx context.Context, cfg *config.Config) (*ideation.Service, func(), error) {
	wire.Build(PipelineSet)
	return nil, nil, nil
}

// InitializeApp 初始化整个应用（带路由器）
func InitializeApp(ctx context.Context, cfg *config.Config) (*router.Router, func(), error) {
	wire.Build(
		PipelineSet,
		RedisSet,
		RouterSet,
	)
	return nil, nil, nil
}
