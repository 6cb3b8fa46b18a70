package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/generative-ai-go/genai"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"google.golang.org/api/option"

	"hackathon-idea-api/internal/config"
	llmctx "hackathon-idea-api/internal/domain/service"
	"hackathon-idea-api/pkg/metrics"
	"hackathon-idea-api/pkg/tracer"
)

// ErrAPIKeyMissing 未配置 Gemini API Key，在首次调用时暴露
var ErrAPIKeyMissing = errors.New("gemini api key is not configured")

// GeminiGenerator 使用 Gemini 原生 API 生成文本。
// 客户端在首次调用时创建，缺失凭证不会阻止服务启动。
type GeminiGenerator struct {
	provider string
	cfg      config.ProviderConfig

	mu     sync.Mutex
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewGeminiGenerator 创建 Gemini 文本生成器
func NewGeminiGenerator(provider string, cfg config.ProviderConfig) *GeminiGenerator {
	return &GeminiGenerator{
		provider: provider,
		cfg:      cfg,
	}
}

func (g *GeminiGenerator) generativeModel(ctx context.Context) (*genai.GenerativeModel, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.model != nil {
		return g.model, nil
	}
	if strings.TrimSpace(g.cfg.APIKey) == "" {
		return nil, ErrAPIKeyMissing
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(g.cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	m := client.GenerativeModel(g.cfg.Model)
	if g.cfg.Temperature > 0 {
		m.SetTemperature(float32(g.cfg.Temperature))
	}
	if g.cfg.MaxTokens > 0 {
		m.SetMaxOutputTokens(int32(g.cfg.MaxTokens))
	}

	g.client = client
	g.model = m
	return m, nil
}

// Generate 实现 workflowport.TextGenerator
func (g *GeminiGenerator) Generate(ctx context.Context, prompt string) (text string, err error) {
	workflow := llmctx.WorkflowFromContext(ctx)
	modelName := g.cfg.Model
	start := time.Now()

	ctx, span := tracer.Start(ctx, "llm.generate")
	span.SetAttributes(
		attribute.String("eino.workflow", workflow),
		attribute.String("llm.provider", g.provider),
		attribute.String("llm.model", modelName),
	)
	defer func() {
		status := "success"
		if err != nil {
			status = "error"
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		metrics.LLMCallTotal.WithLabelValues(workflow, g.provider, modelName, status).Inc()
		metrics.LLMCallDuration.WithLabelValues(workflow, g.provider, modelName).Observe(time.Since(start).Seconds())
		span.End()
	}()

	m, err := g.generativeModel(ctx)
	if err != nil {
		return "", err
	}

	resp, err := m.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", err
	}

	if resp.UsageMetadata != nil {
		metrics.LLMTokensUsed.WithLabelValues(workflow, g.provider, modelName, "prompt").Add(float64(resp.UsageMetadata.PromptTokenCount))
		metrics.LLMTokensUsed.WithLabelValues(workflow, g.provider, modelName, "completion").Add(float64(resp.UsageMetadata.CandidatesTokenCount))
		span.SetAttributes(
			attribute.Int("llm.prompt_tokens", int(resp.UsageMetadata.PromptTokenCount)),
			attribute.Int("llm.completion_tokens", int(resp.UsageMetadata.CandidatesTokenCount)),
		)
	}

	return responseText(resp)
}

// Close 释放底层客户端
func (g *GeminiGenerator) Close() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.client == nil {
		return nil
	}
	err := g.client.Close()
	g.client = nil
	g.model = nil
	return err
}

// responseText 拼接首个候选的全部文本片段
func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil {
		return "", fmt.Errorf("empty gemini response")
	}
	if len(resp.Candidates) == 0 {
		if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != genai.BlockReasonUnspecified {
			return "", fmt.Errorf("prompt blocked: %s", resp.PromptFeedback.BlockReason)
		}
		return "", fmt.Errorf("gemini returned no candidates")
	}

	cand := resp.Candidates[0]
	if cand.Content == nil || len(cand.Content.Parts) == 0 {
		return "", fmt.Errorf("gemini candidate has no content (finish reason: %s)", cand.FinishReason)
	}

	var sb strings.Builder
	for _, part := range cand.Content.Parts {
		if t, ok := part.(genai.Text); ok {
			sb.WriteString(string(t))
		}
	}
	return sb.String(), nil
}
