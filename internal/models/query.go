// internal/models/query.go
package models

// Intent identifies one supported query intent.
type Intent string

const (
	IntentCanvassCreate        Intent = "canvass_create"
	IntentCanvassEstimate      Intent = "canvass_estimate"
	IntentCanvassPlan          Intent = "canvass_plan"
	IntentCompareJurisdictions Intent = "compare_jurisdictions"
	IntentCompareFindSimilar   Intent = "compare_find_similar"
	IntentCompareFieldBrief    Intent = "compare_field_brief"
	IntentDistrictList         Intent = "district_list"
	IntentDistrictCompare      Intent = "district_compare"
	IntentDistrictLookup       Intent = "district_lookup"
	IntentPrecinctTargets      Intent = "precinct_targets"
	IntentPrecinctScores       Intent = "precinct_scores"

	// IntentUnknown is the sentinel returned when no trigger rule fires.
	IntentUnknown Intent = "unknown"
)

// Entities holds the typed values extracted from a query. Fields are sparse:
// a nil pointer, empty string, or nil slice means the entity was not found.
type Entities struct {
	DoorCount      *int     `json:"doorCount,omitempty"`
	VolunteerCount *int     `json:"volunteerCount,omitempty"`
	Jurisdictions  []string `json:"jurisdictions,omitempty"`
	SegmentName    string   `json:"segmentName,omitempty"`
	StateHouse     string   `json:"stateHouse,omitempty"`
	StateSenate    string   `json:"stateSenate,omitempty"`
	Congressional  string   `json:"congressional,omitempty"`
	Districts      []string `json:"districts,omitempty"`
	Precincts      []string `json:"precincts,omitempty"`
}

// DistrictCodes returns every extracted district identifier. Districts holds
// all canonical codes in order of appearance (a comparison query can mention
// two house districts); the per-shape fields keep only the first of each
// shape. When Districts is empty the per-shape fields are composed instead.
func (e Entities) DistrictCodes() []string {
	if len(e.Districts) > 0 {
		return e.Districts
	}
	var codes []string
	if e.StateHouse != "" {
		codes = append(codes, e.StateHouse)
	}
	if e.StateSenate != "" {
		codes = append(codes, e.StateSenate)
	}
	if e.Congressional != "" {
		codes = append(codes, e.Congressional)
	}
	return codes
}

// AreaReferences returns every distinct area mentioned in the query:
// jurisdictions first (in order of appearance), then district codes.
func (e Entities) AreaReferences() []string {
	areas := make([]string, 0, len(e.Jurisdictions)+3)
	areas = append(areas, e.Jurisdictions...)
	areas = append(areas, e.DistrictCodes()...)
	return areas
}

// Merge fills gaps in e from prior, for conversational carry-over. Values
// already present in e always win; prior never overwrites.
func (e Entities) Merge(prior Entities) Entities {
	if e.DoorCount == nil {
		e.DoorCount = prior.DoorCount
	}
	if e.VolunteerCount == nil {
		e.VolunteerCount = prior.VolunteerCount
	}
	if len(e.Jurisdictions) == 0 {
		e.Jurisdictions = prior.Jurisdictions
	}
	if e.SegmentName == "" {
		e.SegmentName = prior.SegmentName
	}
	if e.StateHouse == "" {
		e.StateHouse = prior.StateHouse
	}
	if e.StateSenate == "" {
		e.StateSenate = prior.StateSenate
	}
	if e.Congressional == "" {
		e.Congressional = prior.Congressional
	}
	if len(e.Districts) == 0 {
		e.Districts = prior.Districts
	}
	if len(e.Precincts) == 0 {
		e.Precincts = prior.Precincts
	}
	return e
}

// ParsedQuery is the immutable input handed to a handler: one per request,
// built by the router after classification and extraction.
type ParsedQuery struct {
	OriginalQuery string   `json:"originalQuery"`
	Intent        Intent   `json:"intent"`
	Entities      Entities `json:"entities"`
	Confidence    float64  `json:"confidence"`
}
