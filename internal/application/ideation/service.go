// Package ideation 实现黑客松创意生成流程：
// 时间限制归一化 -> 提示词渲染 -> 文本生成 -> 输出清洗与解析。
package ideation

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"hackathon-idea-api/internal/domain/entity"
	llmctx "hackathon-idea-api/internal/domain/service"
	workflowport "hackathon-idea-api/internal/workflow/port"
	apperrors "hackathon-idea-api/pkg/errors"
	"hackathon-idea-api/pkg/logger"
	"hackathon-idea-api/pkg/metrics"
	"hackathon-idea-api/pkg/tracer"
)

// Service 创意生成服务，无共享可变状态，可被并发调用
type Service struct {
	prompts   *PromptBuilder
	generator workflowport.TextGenerator
}

// NewService 创建创意生成服务
func NewService(prompts *PromptBuilder, generator workflowport.TextGenerator) *Service {
	if prompts == nil {
		prompts = NewPromptBuilder(nil)
	}
	return &Service{
		prompts:   prompts,
		generator: generator,
	}
}

// Generate 执行一次完整的生成流程，失败时返回带错误码的 *apperrors.AppError。
// 不做重试，不做部分结果返回。
func (s *Service) Generate(ctx context.Context, req *entity.IdeaRequest) (ideas []json.RawMessage, err error) {
	if req == nil {
		return nil, apperrors.New(apperrors.CodeInvalidParam, "idea request is nil")
	}

	start := time.Now()
	ctx, span := tracer.Start(ctx, "ideation.Generate")
	defer func() {
		status := statusLabel(err)
		metrics.IdeaGenerationTotal.WithLabelValues(status).Inc()
		metrics.IdeaGenerationDuration.Observe(time.Since(start).Seconds())
		span.SetAttributes(attribute.String("ideas.status", status))
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetAttributes(attribute.Int("ideas.count", len(ideas)))
		}
		span.End()
	}()

	hours := NormalizeTimeLimit(req.TimeLimit)
	span.SetAttributes(
		attribute.String("ideas.time_limit", req.TimeLimit),
		attribute.Int("ideas.time_hours", hours),
		attribute.Bool("ideas.ai_ml_needed", req.AIMLNeeded),
	)

	prompt, err := s.prompts.Build(ctx, req, hours)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeInternalError, "failed to build prompt")
	}

	raw, err := s.generate(llmctx.WithWorkflow(ctx, llmctx.WorkflowGenerateIdeas), prompt)
	if err != nil {
		return nil, err
	}

	ideas, err = ParseIdeas(raw)
	if err != nil {
		logger.Error(ctx, "failed to parse generated ideas", err, "raw", raw)
		return nil, err
	}

	metrics.IdeasPerResponse.Observe(float64(len(ideas)))
	logger.Debug(ctx, "ideas generated", "count", len(ideas), "time_hours", hours)
	return ideas, nil
}

func (s *Service) generate(ctx context.Context, prompt string) (string, error) {
	if s.generator == nil {
		return "", apperrors.New(apperrors.CodeLLMProviderError, "generation service not configured")
	}

	raw, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		if apperrors.IsAppError(err) {
			return "", err
		}
		return "", apperrors.Wrap(err, apperrors.CodeLLMProviderError, "generation service call failed")
	}
	if strings.TrimSpace(raw) == "" {
		return "", apperrors.New(apperrors.CodeLLMProviderError, "empty response from generation service")
	}
	return raw, nil
}

func statusLabel(err error) string {
	switch apperrors.CodeOf(err) {
	case apperrors.CodeSuccess:
		return "ok"
	case apperrors.CodeLLMProviderError:
		return "upstream_error"
	case apperrors.CodeParseFailed:
		return "parse_error"
	case apperrors.CodeInsufficientResults:
		return "insufficient_results"
	default:
		return "error"
	}
}

// Describe 返回错误的可读描述，用于拼接对外错误信息
func Describe(err error) string {
	if err == nil {
		return ""
	}
	if apperrors.IsAppError(err) {
		return apperrors.AsAppError(err).Reason()
	}
	return fmt.Sprint(err)
}
