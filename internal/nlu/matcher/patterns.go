// internal/nlu/matcher/patterns.go
package matcher

import "fieldscope/internal/models"

// districtCodePattern matches coded district references in normalized text:
// "hd-73", "hd 73", "hd73", "sd-21", "mi-07", "state house 73".
const districtCodePattern = `\b(?:hd|sd)[-\s]?\d{1,3}\b|\bmi-\d{2}\b|\bstate\s+(?:house|senate)\s+(?:district\s+)?\d{1,3}\b`

// DefaultDefinitions is the built-in intent table. Order matters: equal
// scores resolve to the earlier entry, so more specific intents within a
// domain come before catch-all ones.
func DefaultDefinitions() []IntentDefinition {
	return []IntentDefinition{
		{
			Intent:    models.IntentCanvassCreate,
			QueryType: models.QueryTypeCanvass,
			Rules: []Rule{
				{Phrases: []string{"canvass universe", "canvassing universe", "walk universe"}, Weight: 4},
				{Keywords: []string{"universe"}, Weight: 2},
				{Keywords: []string{"canvass", "canvassing"}, Weight: 2},
				{Keywords: []string{"create", "build", "make"}, Weight: 1},
			},
		},
		{
			Intent:    models.IntentCanvassEstimate,
			QueryType: models.QueryTypeCanvass,
			Rules: []Rule{
				{Phrases: []string{"how many volunteers", "how many people", "volunteer estimate"}, Weight: 4},
				{Regex: `how (?:many|much).*\bdoors?\b`, Weight: 3},
				{Keywords: []string{"volunteers", "staffing"}, Weight: 2},
				{Keywords: []string{"estimate"}, Weight: 2},
			},
		},
		{
			Intent:    models.IntentCanvassPlan,
			QueryType: models.QueryTypeCanvass,
			Rules: []Rule{
				{Phrases: []string{"walk plan", "canvass plan", "canvassing plan", "field plan"}, Weight: 4},
				{Keywords: []string{"plan"}, Weight: 3},
				{Keywords: []string{"weekly", "weeks", "pace", "schedule"}, Weight: 2},
				{Keywords: []string{"canvass", "canvassing", "knock", "doors"}, Weight: 1},
			},
		},
		{
			Intent:    models.IntentCompareJurisdictions,
			QueryType: models.QueryTypeCompare,
			Rules: []Rule{
				{Keywords: []string{"compare", "comparison"}, Weight: 3},
				{Keywords: []string{"vs", "versus", "against"}, Weight: 2},
				{Phrases: []string{"difference between", "how does", "stack up"}, Weight: 2},
			},
		},
		{
			Intent:    models.IntentCompareFindSimilar,
			QueryType: models.QueryTypeCompare,
			Rules: []Rule{
				{Phrases: []string{"similar to", "find similar", "places like", "areas like", "looks like"}, Weight: 4},
				{Keywords: []string{"similar", "comparable"}, Weight: 2},
			},
		},
		{
			Intent:    models.IntentCompareFieldBrief,
			QueryType: models.QueryTypeCompare,
			Rules: []Rule{
				{Phrases: []string{"field brief", "field briefing", "side by side", "side-by-side"}, Weight: 5},
				{Keywords: []string{"brief", "briefing"}, Weight: 2},
			},
		},
		{
			Intent:    models.IntentDistrictList,
			QueryType: models.QueryTypeDistrict,
			Rules: []Rule{
				{Phrases: []string{"list all districts", "list districts", "all districts", "show districts", "what districts"}, Weight: 5},
				{Keywords: []string{"districts"}, Weight: 2},
				{Keywords: []string{"list", "all", "show"}, Weight: 1},
			},
		},
		{
			Intent:    models.IntentDistrictCompare,
			QueryType: models.QueryTypeDistrict,
			Rules: []Rule{
				{Regex: `\bcompare\b.*(?:` + districtCodePattern + `)`, Weight: 6},
				{Phrases: []string{"compare districts", "compare the districts"}, Weight: 4},
			},
		},
		{
			Intent:    models.IntentDistrictLookup,
			QueryType: models.QueryTypeDistrict,
			Rules: []Rule{
				{Regex: districtCodePattern, Weight: 4},
				{Phrases: []string{"who represents", "who is the rep", "district info", "district information"}, Weight: 3},
				{Keywords: []string{"district", "incumbent", "representative"}, Weight: 1},
			},
		},
		{
			Intent:    models.IntentPrecinctTargets,
			QueryType: models.QueryTypePrecinct,
			Rules: []Rule{
				{Phrases: []string{"target precincts", "best precincts", "top precincts", "which precincts", "precinct targets"}, Weight: 4},
				{Keywords: []string{"target", "targets", "targeting", "prioritize"}, Weight: 2},
				{Keywords: []string{"precinct", "precincts"}, Weight: 1},
			},
		},
		{
			Intent:    models.IntentPrecinctScores,
			QueryType: models.QueryTypePrecinct,
			Rules: []Rule{
				{Phrases: []string{"precinct scores", "precinct score", "score card", "scorecard", "how does precinct"}, Weight: 4},
				{Keywords: []string{"score", "scores", "scored"}, Weight: 2},
				{Keywords: []string{"precinct", "precincts"}, Weight: 1},
			},
		},
	}
}
