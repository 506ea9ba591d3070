// internal/handlers/district/handler_test.go
package district

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
	return NewHandler(dataservice.NewMemoryService(), logger.NewTestLogger(t))
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
// List Districts Tests
// ==========================

func TestListDistricts(t *testing.T) {
	h := newTestHandler(t)

	result, err := h.Handle(context.Background(), parsedQuery(models.IntentDistrictList, models.Entities{}))
	require.NoError(t, err)

	assert.True(t, result.Success)
	for _, header := range []string{"Congressional", "State Senate", "State House", "School Districts"} {
		assert.Contains(t, result.Response, header)
	}
	assert.Contains(t, result.Response, "Curtis Hertel")
	assert.Equal(t, HandlerName, result.Metadata[models.MetaHandlerName])
	assert.Equal(t, "district", result.Metadata[models.MetaQueryType])

	inv, ok := result.Data["inventory"].(*models.DistrictInventory)
	require.True(t, ok)
	assert.Equal(t, 10, inv.Total())
}

// ==========================
// Compare Districts Tests
// ==========================

func TestCompareDistricts_RequiresTwoDistricts(t *testing.T) {
	tests := []struct {
		name     string
		entities models.Entities
	}{
		{name: "no districts", entities: models.Entities{}},
		{name: "one district", entities: models.Entities{StateHouse: "mi-house-73"}},
	}

	h := newTestHandler(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := h.Handle(context.Background(), parsedQuery(models.IntentDistrictCompare, tt.entities))
			require.NoError(t, err)
			assert.False(t, result.Success)
			assert.Contains(t, result.Response, "two districts")
		})
	}
}

func TestCompareDistricts(t *testing.T) {
	h := newTestHandler(t)

	result, err := h.Handle(context.Background(), parsedQuery(models.IntentDistrictCompare, models.Entities{
		Districts: []string{"mi-house-73", "mi-house-74"},
	}))
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Contains(t, result.Response, "Julie Brixie")
	assert.Contains(t, result.Response, "Kara Hope")
	assert.Contains(t, result.Response, "91,000")

	cmp, ok := result.Data["comparison"].(districtComparison)
	require.True(t, ok)
	assert.Equal(t, "mi-house-73", cmp.Left.ID)
	assert.Equal(t, "mi-house-74", cmp.Right.ID)
}

func TestCompareDistricts_UnknownDistrict(t *testing.T) {
	h := newTestHandler(t)

	result, err := h.Handle(context.Background(), parsedQuery(models.IntentDistrictCompare, models.Entities{
		Districts: []string{"mi-house-73", "mi-house-99"},
	}))
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Contains(t, result.Response, "mi-house-99")
}

// ==========================
// Lookup District Tests
// ==========================

func TestLookupDistrict_RequiresDistrict(t *testing.T) {
	h := newTestHandler(t)

	result, err := h.Handle(context.Background(), parsedQuery(models.IntentDistrictLookup, models.Entities{}))
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Contains(t, result.Response, "specify")
}

func TestLookupDistrict(t *testing.T) {
	h := newTestHandler(t)

	result, err := h.Handle(context.Background(), parsedQuery(models.IntentDistrictLookup, models.Entities{
		Congressional: "mi-07",
	}))
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Contains(t, result.Response, "Curtis Hertel")
	assert.Contains(t, result.Response, "775,000")
	assert.Contains(t, result.Response, "Lansing")
}

func TestLookupDistrict_UnknownDistrict(t *testing.T) {
	h := newTestHandler(t)

	result, err := h.Handle(context.Background(), parsedQuery(models.IntentDistrictLookup, models.Entities{
		StateHouse: "mi-house-99",
	}))
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Contains(t, result.Response, "List all districts")
}
