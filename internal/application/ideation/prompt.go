package ideation

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"hackathon-idea-api/internal/domain/entity"
	workflowprompt "hackathon-idea-api/internal/workflow/prompt"
)

// PromptBuilder 将结构化请求渲染为单条提示词文本
type PromptBuilder struct {
	registry    *workflowprompt.Registry
	exampleIdea string
}

// NewPromptBuilder 创建提示词构建器
func NewPromptBuilder(registry *workflowprompt.Registry) *PromptBuilder {
	if registry == nil {
		registry = workflowprompt.NewRegistry()
	}
	example, _ := json.MarshalIndent(entity.ExampleIdea, "", "  ")
	return &PromptBuilder{
		registry:    registry,
		exampleIdea: string(example),
	}
}

// Build 渲染提示词。输出只取决于输入，不含随机量或时间戳。
func (b *PromptBuilder) Build(ctx context.Context, req *entity.IdeaRequest, hours int) (string, error) {
	if req == nil {
		return "", fmt.Errorf("idea request is nil")
	}

	tpl, err := b.registry.ChatTemplate(workflowprompt.PromptHackathonIdeasV1)
	if err != nil {
		return "", err
	}

	msgs, err := tpl.Format(ctx, map[string]any{
		"context":          req.Context,
		"hackathon_level":  req.HackathonLevel,
		"difficulty_level": req.DifficultyLevel,
		"tech_stack":       req.TechStack,
		"ai_ml_required":   yesNo(req.AIMLNeeded),
		"time_hours":       strconv.Itoa(hours),
		"example_idea":     b.exampleIdea,
	})
	if err != nil {
		return "", fmt.Errorf("render prompt: %w", err)
	}

	parts := make([]string, 0, len(msgs))
	for _, m := range msgs {
		if m != nil {
			parts = append(parts, m.Content)
		}
	}
	return strings.Join(parts, "\n\n"), nil
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
