package eino

import (
	"context"
	"testing"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/stretchr/testify/assert"

	llmctx "hackathon-idea-api/internal/domain/service"
)

func TestElapsedSeconds(t *testing.T) {
	assert.Zero(t, elapsedSeconds(context.Background()))

	ctx := context.WithValue(context.Background(), startTimeKey{}, time.Now().Add(-time.Second))
	assert.GreaterOrEqual(t, elapsedSeconds(ctx), 1.0)
}

func TestModelName(t *testing.T) {
	ctx := llmctx.WithModel(context.Background(), "configured-model")

	assert.Equal(t, "from-callback", modelName(ctx, "from-callback"))
	assert.Equal(t, "configured-model", modelName(ctx, ""))
	assert.Equal(t, "unknown", modelName(context.Background(), ""))
}

func TestModelNameFromCallbacks(t *testing.T) {
	assert.Empty(t, modelNameFromInput(nil))
	assert.Empty(t, modelNameFromOutput(&model.CallbackOutput{}))
	assert.Equal(t, "m", modelNameFromInput(&model.CallbackInput{Config: &model.Config{Model: "m"}}))
}

func TestChatModelHandlerLifecycle(t *testing.T) {
	h := newChatModelCallbackHandler()
	ctx := llmctx.WithWorkflowProvider(context.Background(), llmctx.WorkflowGenerateIdeas, "openai")

	ctx = h.OnStart(ctx, nil, &model.CallbackInput{Config: &model.Config{Model: "m"}})
	assert.NotZero(t, ctx.Value(startTimeKey{}))

	out := h.OnEnd(ctx, nil, &model.CallbackOutput{
		Config:     &model.Config{Model: "m"},
		TokenUsage: &model.TokenUsage{PromptTokens: 3, CompletionTokens: 5},
	})
	assert.NotNil(t, out)
}
