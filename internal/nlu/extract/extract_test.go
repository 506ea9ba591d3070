// internal/nlu/extract/extract_test.go
package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Count Tests
// ==========================

func TestExtract_DoorCount(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		expected int
	}{
		{name: "plain number", query: "knock 5000 doors", expected: 5000},
		{name: "thousands separator", query: "How many volunteers for 10,000 doors?", expected: 10000},
		{name: "singular unit", query: "a 2,500 door universe", expected: 2500},
		{name: "unit before number", query: "doors: 1,200", expected: 1200},
		{name: "adjacency beats bare number", query: "in 3 weeks knock 5000 doors", expected: 5000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := Extract(tt.query)
			require.NotNil(t, e.DoorCount)
			assert.Equal(t, tt.expected, *e.DoorCount)
		})
	}
}

func TestExtract_DoorCountAbsent(t *testing.T) {
	queries := []string{
		"Create a canvassing universe",
		"5000 volunteers",
		"there are many doors",
	}
	for _, q := range queries {
		e := Extract(q)
		assert.Nil(t, e.DoorCount, "query: %q", q)
	}
}

func TestExtract_CountRoundTrip(t *testing.T) {
	// "5000" and "5,000" parse to the same value
	plain := Extract("knock 5000 doors")
	grouped := Extract("knock 5,000 doors")
	require.NotNil(t, plain.DoorCount)
	require.NotNil(t, grouped.DoorCount)
	assert.Equal(t, *plain.DoorCount, *grouped.DoorCount)
}

func TestExtract_VolunteerCount(t *testing.T) {
	e := Extract("I have 25 volunteers for Saturday")
	require.NotNil(t, e.VolunteerCount)
	assert.Equal(t, 25, *e.VolunteerCount)
}

func TestExtract_BothCountsIndependent(t *testing.T) {
	e := Extract("Can 40 volunteers knock 10,000 doors?")
	require.NotNil(t, e.DoorCount)
	require.NotNil(t, e.VolunteerCount)
	assert.Equal(t, 10000, *e.DoorCount)
	assert.Equal(t, 40, *e.VolunteerCount)
}

// ==========================
// Jurisdiction Tests
// ==========================

func TestExtractJurisdictions(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		expected []string
	}{
		{name: "single", query: "Compare Lansing", expected: []string{"Lansing"}},
		{
			name:     "longest match wins",
			query:    "Compare Lansing and East Lansing",
			expected: []string{"Lansing", "East Lansing"},
		},
		{
			name:     "only the longer name when spans overlap",
			query:    "turnout in East Lansing",
			expected: []string{"East Lansing"},
		},
		{name: "case insensitive", query: "doors in ann arbor", expected: []string{"Ann Arbor"}},
		{
			name:     "township heuristic outside vocabulary",
			query:    "What about Bath Township?",
			expected: []string{"Bath Township"},
		},
		{
			name:     "dedup preserves first occurrence",
			query:    "Lansing vs Troy vs Lansing",
			expected: []string{"Lansing", "Troy"},
		},
		{name: "none", query: "how many doors", expected: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExtractJurisdictions(tt.query))
		})
	}
}

// ==========================
// Segment Tests
// ==========================

func TestExtract_SegmentName(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		expected string
	}{
		{name: "double quoted", query: `Build a universe from "strong dems"`, expected: "strong dems"},
		{name: "single quoted", query: "Use segment 'sporadic voters' please", expected: "sporadic voters"},
		{name: "after keyword", query: "Create a canvass from segment young renters", expected: "young renters"},
		{name: "quoted beats keyword", query: `segment alpha "beta voters"`, expected: "beta voters"},
		{name: "absent", query: "Compare Lansing and Troy", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Extract(tt.query).SegmentName)
		})
	}
}

// ==========================
// District Code Tests
// ==========================

func TestExtract_DistrictShapes(t *testing.T) {
	// Every surface form of the same district yields the identical canonical id
	houseForms := []string{"HD-73", "HD 73", "hd73", "State House 73", "state house district 73"}
	for _, q := range houseForms {
		e := Extract(q)
		assert.Equal(t, "mi-house-73", e.StateHouse, "query: %q", q)
	}

	senateForms := []string{"SD-21", "sd 21", "State Senate 21"}
	for _, q := range senateForms {
		e := Extract(q)
		assert.Equal(t, "mi-senate-21", e.StateSenate, "query: %q", q)
	}

	congressForms := []string{"MI-07", "mi-07", "7th congressional"}
	for _, q := range congressForms {
		e := Extract(q)
		assert.Equal(t, "mi-07", e.Congressional, "query: %q", q)
	}
}

func TestExtract_MultipleDistricts(t *testing.T) {
	e := Extract("Compare HD-73 and HD-74")
	assert.Equal(t, []string{"mi-house-73", "mi-house-74"}, e.Districts)
	assert.Equal(t, "mi-house-73", e.StateHouse)

	e = Extract("HD-73, SD-21 and MI-07")
	assert.Equal(t, []string{"mi-house-73", "mi-senate-21", "mi-07"}, e.Districts)
	assert.Equal(t, []string{"mi-house-73", "mi-senate-21", "mi-07"}, e.DistrictCodes())
}

// ==========================
// Precinct Tests
// ==========================

func TestExtract_Precincts(t *testing.T) {
	e := Extract("What are the scores for precinct Willow 3?")
	assert.Equal(t, []string{"Willow 3"}, e.Precincts)

	e = Extract("precincts Willow 3 and Oak 2")
	assert.Equal(t, []string{"Willow 3", "Oak 2"}, e.Precincts)

	// prepositional phrase is a place reference, not a precinct name
	e = Extract("Show me target precincts in Lansing")
	assert.Empty(t, e.Precincts)
}

// ==========================
// Independence Tests
// ==========================

func TestExtract_EntityTypesIndependent(t *testing.T) {
	e := Extract(`Plan a 10,000 door canvass in East Lansing from segment "sporadic voters" covering HD-73`)

	require.NotNil(t, e.DoorCount)
	assert.Equal(t, 10000, *e.DoorCount)
	assert.Equal(t, []string{"East Lansing"}, e.Jurisdictions)
	assert.Equal(t, "sporadic voters", e.SegmentName)
	assert.Equal(t, "mi-house-73", e.StateHouse)
}

func TestExtract_EmptyQuery(t *testing.T) {
	e := Extract("")
	assert.Nil(t, e.DoorCount)
	assert.Nil(t, e.VolunteerCount)
	assert.Empty(t, e.Jurisdictions)
	assert.Empty(t, e.SegmentName)
	assert.Empty(t, e.Districts)
	assert.Empty(t, e.Precincts)
}
