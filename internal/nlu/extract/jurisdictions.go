// internal/nlu/extract/jurisdictions.go
package extract

import (
	"regexp"
	"sort"
	"strings"
)

// knownJurisdictions is the Michigan municipality vocabulary. Multi-word
// names must appear here so overlap resolution can prefer them over their
// single-word suffixes ("East Lansing" over "Lansing").
var knownJurisdictions = []string{
	"Ann Arbor",
	"Battle Creek",
	"Bay City",
	"Canton Township",
	"Dearborn",
	"Delta Township",
	"Detroit",
	"East Lansing",
	"Farmington Hills",
	"Flint",
	"Grand Rapids",
	"Holt",
	"Jackson",
	"Kalamazoo",
	"Lansing",
	"Livonia",
	"Meridian Township",
	"Midland",
	"Muskegon",
	"Novi",
	"Okemos",
	"Pontiac",
	"Portage",
	"Rochester Hills",
	"Royal Oak",
	"Saginaw",
	"Southfield",
	"Sterling Heights",
	"St. Clair Shores",
	"Taylor",
	"Traverse City",
	"Troy",
	"Warren",
	"Westland",
	"Wyoming",
	"Ypsilanti",
}

var vocabPatterns = compileVocab(knownJurisdictions)

type vocabPattern struct {
	name string
	re   *regexp.Regexp
}

func compileVocab(names []string) []vocabPattern {
	out := make([]vocabPattern, 0, len(names))
	for _, name := range names {
		out = append(out, vocabPattern{
			name: name,
			re:   regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(name) + `\b`),
		})
	}
	return out
}

// capitalizedPlace catches municipalities outside the vocabulary by their
// suffix: "Bath Township", "Charlotte City", "Ingham County".
var capitalizedPlace = regexp.MustCompile(`\b([A-Z][a-z]+(?:\s+[A-Z][a-z]+)*\s+(?:Township|City|County))\b`)

type span struct {
	start, end int
	name       string
}

// ExtractJurisdictions finds every jurisdiction mentioned in the query.
// Overlapping candidates resolve longest-match-wins; results keep
// first-occurrence order and are de-duplicated.
func ExtractJurisdictions(query string) []string {
	var candidates []span

	for _, vp := range vocabPatterns {
		for _, loc := range vp.re.FindAllStringIndex(query, -1) {
			candidates = append(candidates, span{start: loc[0], end: loc[1], name: vp.name})
		}
	}

	for _, m := range capitalizedPlace.FindAllStringSubmatchIndex(query, -1) {
		candidates = append(candidates, span{start: m[2], end: m[3], name: query[m[2]:m[3]]})
	}

	if len(candidates) == 0 {
		return nil
	}

	// Longest candidate claims its span first; later (shorter or
	// overlapping) candidates inside a claimed span are discarded.
	sort.Slice(candidates, func(i, j int) bool {
		li, lj := candidates[i].end-candidates[i].start, candidates[j].end-candidates[j].start
		if li != lj {
			return li > lj
		}
		return candidates[i].start < candidates[j].start
	})

	var accepted []span
	for _, c := range candidates {
		overlaps := false
		for _, a := range accepted {
			if c.start < a.end && a.start < c.end {
				overlaps = true
				break
			}
		}
		if !overlaps {
			accepted = append(accepted, c)
		}
	}

	sort.Slice(accepted, func(i, j int) bool { return accepted[i].start < accepted[j].start })

	var out []string
	seen := make(map[string]bool)
	for _, a := range accepted {
		key := strings.ToLower(a.name)
		if !seen[key] {
			seen[key] = true
			out = append(out, a.name)
		}
	}
	return out
}
