// internal/nlu/matcher/matcher_test.go
package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fieldscope/internal/models"
)

func newDefaultMatcher(t *testing.T) *Matcher {
	t.Helper()
	m, err := New(DefaultDefinitions())
	require.NoError(t, err)
	return m
}

// ==========================
// Construction Tests
// ==========================

func TestNew_RejectsInvalidTables(t *testing.T) {
	tests := []struct {
		name string
		defs []IntentDefinition
	}{
		{name: "empty table", defs: nil},
		{
			name: "unknown intent tag",
			defs: []IntentDefinition{
				{Intent: models.IntentUnknown, QueryType: models.QueryTypeCanvass, Rules: []Rule{{Keywords: []string{"x"}, Weight: 1}}},
			},
		},
		{
			name: "duplicate intent",
			defs: []IntentDefinition{
				{Intent: models.IntentCanvassPlan, QueryType: models.QueryTypeCanvass, Rules: []Rule{{Keywords: []string{"plan"}, Weight: 1}}},
				{Intent: models.IntentCanvassPlan, QueryType: models.QueryTypeCanvass, Rules: []Rule{{Keywords: []string{"walk"}, Weight: 1}}},
			},
		},
		{
			name: "rule without triggers",
			defs: []IntentDefinition{
				{Intent: models.IntentCanvassPlan, QueryType: models.QueryTypeCanvass, Rules: []Rule{{Weight: 2}}},
			},
		},
		{
			name: "non-positive weight",
			defs: []IntentDefinition{
				{Intent: models.IntentCanvassPlan, QueryType: models.QueryTypeCanvass, Rules: []Rule{{Keywords: []string{"plan"}, Weight: 0}}},
			},
		},
		{
			name: "invalid regex",
			defs: []IntentDefinition{
				{Intent: models.IntentCanvassPlan, QueryType: models.QueryTypeCanvass, Rules: []Rule{{Regex: `[`, Weight: 1}}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.defs)
			assert.Error(t, err)
		})
	}
}

// ==========================
// Classification Tests
// ==========================

func TestMatch_DefaultDefinitions(t *testing.T) {
	m := newDefaultMatcher(t)

	tests := []struct {
		name     string
		query    string
		expected models.Intent
	}{
		{name: "canvass create", query: "Create a canvassing universe", expected: models.IntentCanvassCreate},
		{name: "canvass create in place", query: "Build a canvass universe in Lansing", expected: models.IntentCanvassCreate},
		{name: "canvass estimate", query: "How many volunteers for 10000 doors?", expected: models.IntentCanvassEstimate},
		{name: "canvass plan", query: "Plan a 10,000 door canvass in Lansing", expected: models.IntentCanvassPlan},
		{name: "compare jurisdictions", query: "Compare Lansing and East Lansing", expected: models.IntentCompareJurisdictions},
		{name: "compare bare", query: "Compare Lansing", expected: models.IntentCompareJurisdictions},
		{name: "find similar", query: "Find areas similar to Ann Arbor", expected: models.IntentCompareFindSimilar},
		{name: "field brief", query: "Give me a field brief on Lansing vs Troy", expected: models.IntentCompareFieldBrief},
		{name: "district list", query: "List all districts", expected: models.IntentDistrictList},
		{name: "district compare", query: "Compare HD-73 and HD-74", expected: models.IntentDistrictCompare},
		{name: "district lookup", query: "Who represents HD-74?", expected: models.IntentDistrictLookup},
		{name: "district lookup bare code", query: "HD-74", expected: models.IntentDistrictLookup},
		{name: "precinct targets", query: "Show me target precincts in Lansing", expected: models.IntentPrecinctTargets},
		{name: "precinct scores", query: "What are the scores for precinct Willow 3?", expected: models.IntentPrecinctScores},
		{name: "unknown noise", query: "What is the weather today?", expected: models.IntentUnknown},
		{name: "empty", query: "", expected: models.IntentUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := m.Match(tt.query)
			assert.Equal(t, tt.expected, result.Intent)
			if tt.expected == models.IntentUnknown {
				assert.Zero(t, result.Confidence)
			} else {
				assert.Greater(t, result.Confidence, 0.0)
				assert.LessOrEqual(t, result.Confidence, 1.0)
			}
		})
	}
}

func TestMatch_Idempotent(t *testing.T) {
	m := newDefaultMatcher(t)

	queries := []string{
		"Create a canvassing universe",
		"Compare HD-73 and HD-74",
		"total nonsense input",
	}

	for _, q := range queries {
		first := m.Match(q)
		for i := 0; i < 5; i++ {
			assert.Equal(t, first, m.Match(q))
		}
	}
}

func TestMatch_NormalizationVariants(t *testing.T) {
	m := newDefaultMatcher(t)

	variants := []string{
		"Who represents HD-73?",
		"who represents hd-73",
		"  WHO   REPRESENTS   HD 73  ",
		"who represents hd73?",
	}

	for _, q := range variants {
		result := m.Match(q)
		assert.Equal(t, models.IntentDistrictLookup, result.Intent, "query: %q", q)
	}
}

func TestMatch_TieBreakFirstRegistered(t *testing.T) {
	defs := []IntentDefinition{
		{
			Intent:    models.IntentCanvassCreate,
			QueryType: models.QueryTypeCanvass,
			Rules:     []Rule{{Keywords: []string{"turf"}, Weight: 2}},
		},
		{
			Intent:    models.IntentCanvassPlan,
			QueryType: models.QueryTypeCanvass,
			Rules:     []Rule{{Keywords: []string{"turf"}, Weight: 2}},
		},
	}
	m, err := New(defs)
	require.NoError(t, err)

	result := m.Match("cut some turf")
	assert.Equal(t, models.IntentCanvassCreate, result.Intent)
}

func TestMatch_ConfidenceIsScoreOverMax(t *testing.T) {
	defs := []IntentDefinition{
		{
			Intent:    models.IntentCanvassCreate,
			QueryType: models.QueryTypeCanvass,
			Rules: []Rule{
				{Keywords: []string{"turf"}, Weight: 3},
				{Keywords: []string{"universe"}, Weight: 1},
			},
		},
	}
	m, err := New(defs)
	require.NoError(t, err)

	partial := m.Match("cut some turf")
	assert.InDelta(t, 0.75, partial.Confidence, 0.0001)

	full := m.Match("turf universe")
	assert.InDelta(t, 1.0, full.Confidence, 0.0001)
}

func TestMatch_QueryTypeCarried(t *testing.T) {
	m := newDefaultMatcher(t)

	result := m.Match("Show me target precincts in Lansing")
	assert.Equal(t, models.QueryTypePrecinct, result.QueryType)
}

// ==========================
// Normalization Tests
// ==========================

func TestNormalize(t *testing.T) {
	assert.Equal(t, "compare lansing and troy", Normalize("  Compare   Lansing\tand Troy "))
	assert.Equal(t, "", Normalize("   "))
}
