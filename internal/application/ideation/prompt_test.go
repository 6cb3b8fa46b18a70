package ideation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hackathon-idea-api/internal/domain/entity"
)

func sampleRequest() *entity.IdeaRequest {
	return &entity.IdeaRequest{
		Context:         "climate",
		TimeLimit:       "48h",
		HackathonLevel:  "beginner",
		DifficultyLevel: "easy",
		TechStack:       "Python",
		AIMLNeeded:      false,
	}
}

func TestPromptBuilder_Build(t *testing.T) {
	b := NewPromptBuilder(nil)
	ctx := context.Background()

	t.Run("encodes request fields", func(t *testing.T) {
		prompt, err := b.Build(ctx, sampleRequest(), 48)
		require.NoError(t, err)

		assert.Contains(t, prompt, "CONTEXT/THEME: climate")
		assert.Contains(t, prompt, "HACKATHON LEVEL: beginner")
		assert.Contains(t, prompt, "DIFFICULTY LEVEL: easy")
		assert.Contains(t, prompt, "PREFERRED TECH STACK: Python")
		assert.Contains(t, prompt, "AI/ML REQUIRED: No")
		assert.Contains(t, prompt, "TIME LIMIT: 48 hours")
	})

	t.Run("ai flag renders Yes", func(t *testing.T) {
		req := sampleRequest()
		req.AIMLNeeded = true
		prompt, err := b.Build(ctx, req, 168)
		require.NoError(t, err)

		assert.Contains(t, prompt, "AI/ML REQUIRED: Yes")
		assert.Contains(t, prompt, "TIME LIMIT: 168 hours")
	})

	t.Run("fixed instructions and example", func(t *testing.T) {
		prompt, err := b.Build(ctx, sampleRequest(), 24)
		require.NoError(t, err)

		assert.Contains(t, prompt, "12-15")
		assert.Contains(t, prompt, "Return ONLY a JSON array")
		for _, field := range []string{"name", "description", "time_estimate", "tech_stack", "innovation_level", "potential_impact", "key_features"} {
			assert.Contains(t, prompt, field)
		}
		assert.Contains(t, prompt, `"name": "EcoRoute Optimizer"`)
		assert.Contains(t, prompt, `"Carbon savings dashboard"`)
	})

	t.Run("free text with braces is not interpreted", func(t *testing.T) {
		req := sampleRequest()
		req.Context = "smart {cities} and {{ data }}"
		prompt, err := b.Build(ctx, req, 24)
		require.NoError(t, err)
		assert.Contains(t, prompt, "CONTEXT/THEME: smart {cities} and {{ data }}")
	})

	t.Run("deterministic", func(t *testing.T) {
		first, err := b.Build(ctx, sampleRequest(), 48)
		require.NoError(t, err)
		second, err := NewPromptBuilder(nil).Build(ctx, sampleRequest(), 48)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("nil request", func(t *testing.T) {
		_, err := b.Build(ctx, nil, 24)
		assert.Error(t, err)
	})
}
