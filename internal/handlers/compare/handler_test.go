// internal/handlers/compare/handler_test.go
package compare

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
// Compare Jurisdictions Tests
// ==========================

func TestCompareJurisdictions_RequiresTwoAreas(t *testing.T) {
	tests := []struct {
		name     string
		entities models.Entities
	}{
		{name: "no areas", entities: models.Entities{}},
		{name: "one jurisdiction", entities: models.Entities{Jurisdictions: []string{"Lansing"}}},
	}

	h := newTestHandler(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := h.Handle(context.Background(), parsedQuery(models.IntentCompareJurisdictions, tt.entities))
			require.NoError(t, err)
			assert.False(t, result.Success)
			assert.Contains(t, result.Response, "two areas")
		})
	}
}

func TestCompareJurisdictions(t *testing.T) {
	h := newTestHandler(t)

	result, err := h.Handle(context.Background(), parsedQuery(models.IntentCompareJurisdictions, models.Entities{
		Jurisdictions: []string{"Lansing", "East Lansing"},
	}))
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Contains(t, result.Response, "Lansing")
	assert.Contains(t, result.Response, "East Lansing")
	assert.Contains(t, result.Response, "78,500")

	mapCmd, ok := result.Data["mapCommand"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "highlight", mapCmd["action"])
	assert.Equal(t, HandlerName, result.Metadata[models.MetaHandlerName])
	assert.Equal(t, "compare", result.Metadata[models.MetaQueryType])
}

func TestCompareJurisdictions_DistrictCodesCountAsAreas(t *testing.T) {
	h := newTestHandler(t)

	// two areas, but neither has jurisdiction trend data
	result, err := h.Handle(context.Background(), parsedQuery(models.IntentCompareJurisdictions, models.Entities{
		Districts: []string{"mi-house-73", "mi-house-74"},
	}))
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Contains(t, result.Response, "No trend data")
}

// ==========================
// Find Similar Tests
// ==========================

func TestFindSimilar_RequiresJurisdiction(t *testing.T) {
	h := newTestHandler(t)

	result, err := h.Handle(context.Background(), parsedQuery(models.IntentCompareFindSimilar, models.Entities{}))
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Contains(t, result.Response, "specify")
}

func TestFindSimilar(t *testing.T) {
	h := newTestHandler(t)

	result, err := h.Handle(context.Background(), parsedQuery(models.IntentCompareFindSimilar, models.Entities{
		Jurisdictions: []string{"Lansing"},
	}))
	require.NoError(t, err)

	assert.True(t, result.Success)
	matches, ok := result.Data["matches"].([]similarMatch)
	require.True(t, ok)
	require.NotEmpty(t, matches)
	assert.LessOrEqual(t, len(matches), DefaultConfig().SimilarLimit)

	// target never appears in its own lookalike list, and ranking ascends
	for i, m := range matches {
		assert.NotEqual(t, "Lansing", m.Jurisdiction)
		if i > 0 {
			assert.GreaterOrEqual(t, m.Distance, matches[i-1].Distance)
		}
	}
}

func TestFindSimilar_UnknownJurisdiction(t *testing.T) {
	h := newTestHandler(t)

	result, err := h.Handle(context.Background(), parsedQuery(models.IntentCompareFindSimilar, models.Entities{
		Jurisdictions: []string{"Nowhere"},
	}))
	require.NoError(t, err)
	assert.False(t, result.Success)
}

// ==========================
// Field Brief Tests
// ==========================

func TestFieldBrief_RequiresTwoAreas(t *testing.T) {
	h := newTestHandler(t)

	result, err := h.Handle(context.Background(), parsedQuery(models.IntentCompareFieldBrief, models.Entities{
		Jurisdictions: []string{"Lansing"},
	}))
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Contains(t, result.Response, "at least two")
}

func TestFieldBrief(t *testing.T) {
	h := newTestHandler(t)

	result, err := h.Handle(context.Background(), parsedQuery(models.IntentCompareFieldBrief, models.Entities{
		Jurisdictions: []string{"Lansing", "Troy"},
	}))
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Contains(t, result.Response, "Field Brief")
	assert.Contains(t, result.Response, "Lansing")
	assert.Contains(t, result.Response, "Troy")
}
