// internal/models/reference.go
package models

import "math"

// Priority tiers assigned to precincts from their combined targeting score.
const (
	PriorityHigh   = "High"
	PriorityMedium = "Medium"
	PriorityLow    = "Low"
)

// Combined-score component weights. Swing share dominates because persuasion
// universes are built before turnout universes in the field program.
const (
	weightSwing    = 0.40
	weightPartisan = 0.30
	weightTurnout  = 0.30
)

// PrecinctScores holds the targeting components for one precinct, each on a
// 0-100 scale.
type PrecinctScores struct {
	Precinct     string  `json:"precinct"`
	Jurisdiction string  `json:"jurisdiction"`
	SwingScore   float64 `json:"swingScore"`
	PartisanLean float64 `json:"partisanLean"`
	TurnoutScore float64 `json:"turnoutScore"`
	DoorCount    int     `json:"doorCount"`
}

// CombinedScore is the weighted targeting score (0.40 swing, 0.30 partisan,
// 0.30 turnout).
func (p PrecinctScores) CombinedScore() float64 {
	return weightSwing*p.SwingScore + weightPartisan*p.PartisanLean + weightTurnout*p.TurnoutScore
}

// PriorityTier buckets the combined score. Thresholds are inclusive: 70 is
// High, 50 is Medium.
func (p PrecinctScores) PriorityTier() string {
	score := p.CombinedScore()
	switch {
	case score >= 70:
		return PriorityHigh
	case score >= 50:
		return PriorityMedium
	default:
		return PriorityLow
	}
}

// JurisdictionTrend is the electoral profile of one municipality.
type JurisdictionTrend struct {
	Jurisdiction     string             `json:"jurisdiction"`
	RegisteredVoters int                `json:"registeredVoters"`
	DoorCount        int                `json:"doorCount"`
	TurnoutHistory   map[string]float64 `json:"turnoutHistory,omitempty"`
	SwingScore       float64            `json:"swingScore"`
	PartisanLean     float64            `json:"partisanLean"`
}

// AverageTurnout is the mean of the recorded turnout history, 0 when empty.
func (j JurisdictionTrend) AverageTurnout() float64 {
	if len(j.TurnoutHistory) == 0 {
		return 0
	}
	var sum float64
	for _, v := range j.TurnoutHistory {
		sum += v
	}
	return sum / float64(len(j.TurnoutHistory))
}

// TrendDistance is a similarity measure between two jurisdiction profiles:
// euclidean distance over swing, partisan lean, and average turnout. Smaller
// is more similar.
func (j JurisdictionTrend) TrendDistance(other JurisdictionTrend) float64 {
	ds := j.SwingScore - other.SwingScore
	dp := j.PartisanLean - other.PartisanLean
	dt := j.AverageTurnout() - other.AverageTurnout()
	return math.Sqrt(ds*ds + dp*dp + dt*dt)
}

// District category labels, also used verbatim as inventory section headers.
const (
	DistrictCategoryCongressional = "Congressional"
	DistrictCategoryStateSenate   = "State Senate"
	DistrictCategoryStateHouse    = "State House"
	DistrictCategorySchool        = "School Districts"
)

// District is one legislative or school district, keyed by canonical id
// (mi-house-73, mi-senate-21, mi-07, or a school-district slug).
type District struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Category      string   `json:"category"`
	Incumbent     string   `json:"incumbent,omitempty"`
	Party         string   `json:"party,omitempty"`
	Jurisdictions []string `json:"jurisdictions,omitempty"`
	Population    int      `json:"population,omitempty"`
}

// DistrictInventory groups districts by category for listing.
type DistrictInventory struct {
	Congressional []District `json:"congressional"`
	StateSenate   []District `json:"stateSenate"`
	StateHouse    []District `json:"stateHouse"`
	School        []District `json:"school"`
}

// Total counts districts across all categories.
func (d DistrictInventory) Total() int {
	return len(d.Congressional) + len(d.StateSenate) + len(d.StateHouse) + len(d.School)
}
