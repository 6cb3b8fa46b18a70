package ideation

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hackathon-idea-api/internal/domain/entity"
	llmctx "hackathon-idea-api/internal/domain/service"
	workflowport "hackathon-idea-api/internal/workflow/port"
	apperrors "hackathon-idea-api/pkg/errors"
	"hackathon-idea-api/pkg/logger"
)

func fencedIdeas(t *testing.T, n int) (string, []entity.Idea) {
	t.Helper()

	ideas := make([]entity.Idea, n)
	for i := range ideas {
		ideas[i] = entity.Idea{
			Name:            fmt.Sprintf("Idea %d", i+1),
			Description:     "A project that does something useful.",
			TimeEstimate:    "30-40 hours",
			TechStack:       "Python, FastAPI",
			InnovationLevel: entity.InnovationMedium,
			PotentialImpact: "Students",
			KeyFeatures:     []string{"one", "two", "three", "four"},
		}
	}
	b, err := json.MarshalIndent(ideas, "", "  ")
	require.NoError(t, err)
	return "```json\n" + string(b) + "\n```", ideas
}

func staticGenerator(text string, err error) workflowport.TextGenerator {
	return workflowport.TextGeneratorFunc(func(context.Context, string) (string, error) {
		return text, err
	})
}

func TestService_Generate(t *testing.T) {
	ctx := context.Background()

	t.Run("success keeps order and content", func(t *testing.T) {
		raw, want := fencedIdeas(t, 12)

		var gotPrompt, gotWorkflow string
		gen := workflowport.TextGeneratorFunc(func(ctx context.Context, prompt string) (string, error) {
			gotPrompt = prompt
			gotWorkflow = llmctx.WorkflowFromContext(ctx)
			return raw, nil
		})

		ideas, err := NewService(nil, gen).Generate(ctx, sampleRequest())
		require.NoError(t, err)
		require.Len(t, ideas, 12)

		for i, item := range ideas {
			var got entity.Idea
			require.NoError(t, json.Unmarshal(item, &got))
			assert.Equal(t, want[i], got)
		}
		assert.Contains(t, gotPrompt, "TIME LIMIT: 48 hours")
		assert.Contains(t, gotPrompt, "AI/ML REQUIRED: No")
		assert.Equal(t, llmctx.WorkflowGenerateIdeas, gotWorkflow)
	})

	t.Run("unknown time limit falls back to 24 hours", func(t *testing.T) {
		raw, _ := fencedIdeas(t, 10)
		var gotPrompt string
		gen := workflowport.TextGeneratorFunc(func(_ context.Context, prompt string) (string, error) {
			gotPrompt = prompt
			return raw, nil
		})

		req := sampleRequest()
		req.TimeLimit = "3days"
		_, err := NewService(nil, gen).Generate(ctx, req)
		require.NoError(t, err)
		assert.Contains(t, gotPrompt, "TIME LIMIT: 24 hours")
	})

	t.Run("upstream error", func(t *testing.T) {
		_, err := NewService(nil, staticGenerator("", errors.New("dial tcp: connection refused"))).Generate(ctx, sampleRequest())
		require.Error(t, err)
		assert.True(t, errors.Is(err, apperrors.ErrLLMProvider))
		assert.Contains(t, Describe(err), "connection refused")
	})

	t.Run("empty upstream response", func(t *testing.T) {
		_, err := NewService(nil, staticGenerator("  \n", nil)).Generate(ctx, sampleRequest())
		assert.Equal(t, apperrors.CodeLLMProviderError, apperrors.CodeOf(err))
	})

	t.Run("missing generator", func(t *testing.T) {
		_, err := NewService(nil, nil).Generate(ctx, sampleRequest())
		assert.Equal(t, apperrors.CodeLLMProviderError, apperrors.CodeOf(err))
	})

	t.Run("parse error", func(t *testing.T) {
		_, err := NewService(nil, staticGenerator("Sure! Here are your ideas...", nil)).Generate(ctx, sampleRequest())
		assert.Equal(t, apperrors.CodeParseFailed, apperrors.CodeOf(err))
	})

	t.Run("insufficient results", func(t *testing.T) {
		raw, _ := fencedIdeas(t, 3)
		_, err := NewService(nil, staticGenerator(raw, nil)).Generate(ctx, sampleRequest())
		assert.Equal(t, apperrors.CodeInsufficientResults, apperrors.CodeOf(err))
	})

	t.Run("nil request", func(t *testing.T) {
		_, err := NewService(nil, staticGenerator("[]", nil)).Generate(ctx, nil)
		assert.Equal(t, apperrors.CodeInvalidParam, apperrors.CodeOf(err))
	})

	t.Run("idempotent against deterministic generator", func(t *testing.T) {
		raw, _ := fencedIdeas(t, 11)
		svc := NewService(nil, staticGenerator(raw, nil))

		first, err := svc.Generate(ctx, sampleRequest())
		require.NoError(t, err)
		second, err := svc.Generate(ctx, sampleRequest())
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})
}

func TestService_LogsRawOutputOnParseFailure(t *testing.T) {
	var buf bytes.Buffer
	logger.InitWithWriter(&buf, "info", "json")
	t.Cleanup(func() { logger.InitWithWriter(io.Discard, "info", "json") })

	short, _ := fencedIdeas(t, 2)
	tests := []struct {
		name string
		raw  string
		code apperrors.ErrorCode
	}{
		{name: "invalid json", raw: "Sure! Here are your ideas...", code: apperrors.CodeParseFailed},
		{name: "too few ideas", raw: short, code: apperrors.CodeInsufficientResults},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()

			_, err := NewService(nil, staticGenerator(tt.raw, nil)).Generate(context.Background(), sampleRequest())
			require.Equal(t, tt.code, apperrors.CodeOf(err))

			var entry map[string]any
			require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
			assert.Equal(t, "ERROR", entry["level"])
			assert.Equal(t, "failed to parse generated ideas", entry["msg"])
			assert.Equal(t, tt.raw, entry["raw"])
		})
	}
}

func TestDescribe(t *testing.T) {
	assert.Equal(t, "", Describe(nil))
	assert.Equal(t, "boom", Describe(errors.New("boom")))
	assert.Equal(t, "invalid JSON in model response: bad",
		Describe(apperrors.Wrap(errors.New("bad"), apperrors.CodeParseFailed, "invalid JSON in model response")))
}
