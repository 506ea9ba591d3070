// internal/handlers/precinct/handler_test.go
package precinct

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fieldscope/internal/common/logger"
	"fieldscope/internal/dataservice"
	"fieldscope/internal/models"
)

func newTestHandler(t *testing.T) *Handler {
	t.Helper()
	return NewHandler(DefaultConfig(), dataservice.NewMemoryService(), logger.NewTestLogger(t))
}

func parsedQuery(intent models.Intent, entities models.Entities) models.ParsedQuery {
	return models.ParsedQuery{
		OriginalQuery: "test query",
		Intent:        intent,
		Entities:      entities,
		Confidence:    0.9,
	}
}

// ==========================
// Target List Tests
// ==========================

func TestTargetList_RequiresJurisdiction(t *testing.T) {
	h := newTestHandler(t)

	result, err := h.Handle(context.Background(), parsedQuery(models.IntentPrecinctTargets, models.Entities{}))
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Contains(t, result.Response, "specify")
}

func TestTargetList(t *testing.T) {
	h := newTestHandler(t)

	result, err := h.Handle(context.Background(), parsedQuery(models.IntentPrecinctTargets, models.Entities{
		Jurisdictions: []string{"Lansing"},
	}))
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Contains(t, result.Response, "Lansing 1")
	assert.Equal(t, HandlerName, result.Metadata[models.MetaHandlerName])
	assert.Equal(t, "precinct", result.Metadata[models.MetaQueryType])

	rows, ok := result.Data["targets"].([]targetRow)
	require.True(t, ok)
	require.NotEmpty(t, rows)

	// ranked best-first
	for i := 1; i < len(rows); i++ {
		assert.GreaterOrEqual(t, rows[i-1].CombinedScore, rows[i].CombinedScore)
	}
	// Lansing 1: 0.40*82 + 0.30*74 + 0.30*66 = 74.8, high tier
	assert.Equal(t, "Lansing 1", rows[0].Precinct)
	assert.InDelta(t, 74.8, rows[0].CombinedScore, 0.01)
	assert.Equal(t, models.PriorityHigh, rows[0].PriorityTier)
}

func TestTargetList_RespectsLimit(t *testing.T) {
	h := NewHandler(&Config{TargetLimit: 2}, dataservice.NewMemoryService(), logger.NewTestLogger(t))

	result, err := h.Handle(context.Background(), parsedQuery(models.IntentPrecinctTargets, models.Entities{
		Jurisdictions: []string{"Lansing"},
	}))
	require.NoError(t, err)

	rows, ok := result.Data["targets"].([]targetRow)
	require.True(t, ok)
	assert.Len(t, rows, 2)
}

func TestTargetList_UnknownJurisdiction(t *testing.T) {
	h := newTestHandler(t)

	result, err := h.Handle(context.Background(), parsedQuery(models.IntentPrecinctTargets, models.Entities{
		Jurisdictions: []string{"Nowhere"},
	}))
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Contains(t, result.Response, "Nowhere")
}

// ==========================
// Score Card Tests
// ==========================

func TestScoreCard_RequiresPrecinct(t *testing.T) {
	h := newTestHandler(t)

	result, err := h.Handle(context.Background(), parsedQuery(models.IntentPrecinctScores, models.Entities{}))
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Contains(t, result.Response, "specify")
}

func TestScoreCard(t *testing.T) {
	h := newTestHandler(t)

	result, err := h.Handle(context.Background(), parsedQuery(models.IntentPrecinctScores, models.Entities{
		Precincts: []string{"Willow 3"},
	}))
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Contains(t, result.Response, "Willow 3")
	assert.Contains(t, result.Response, "1,240")

	// 0.40*77 + 0.30*70 + 0.30*63 = 70.7, high tier
	tier, ok := result.Data["priorityTier"].(string)
	require.True(t, ok)
	assert.Equal(t, models.PriorityHigh, tier)
}

func TestScoreCard_UnknownPrecinct(t *testing.T) {
	h := newTestHandler(t)

	result, err := h.Handle(context.Background(), parsedQuery(models.IntentPrecinctScores, models.Entities{
		Precincts: []string{"Willow 99"},
	}))
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Contains(t, result.Response, "Willow 99")
}
