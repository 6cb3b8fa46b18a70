package prompt

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_ChatTemplate(t *testing.T) {
	r := NewRegistry()

	tpl, err := r.ChatTemplate(PromptHackathonIdeasV1)
	require.NoError(t, err)

	again, err := r.ChatTemplate(PromptHackathonIdeasV1)
	require.NoError(t, err)
	assert.Same(t, tpl, again)

	msgs, err := tpl.Format(context.Background(), map[string]any{
		"context":          "climate",
		"hackathon_level":  "beginner",
		"difficulty_level": "easy",
		"tech_stack":       "Python",
		"ai_ml_required":   "No",
		"time_hours":       "48",
		"example_idea":     `{"name": "x"}`,
	})
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Contains(t, msgs[0].Content, "48 hours")
	assert.Contains(t, msgs[0].Content, `{"name": "x"}`)
}

func TestRegistry_UnknownPrompt(t *testing.T) {
	_, err := NewRegistry().ChatTemplate("missing")
	assert.Error(t, err)

	var nilRegistry *Registry
	_, err = nilRegistry.ChatTemplate(PromptHackathonIdeasV1)
	assert.Error(t, err)
}
