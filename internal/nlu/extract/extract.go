// internal/nlu/extract/extract.go

// Package extract pulls typed entities out of raw query text. Every entity
// type is evaluated independently on each call; extraction never errors and
// absent entities stay zero-valued.
package extract

import (
	"regexp"
	"strconv"
	"strings"

	"fieldscope/internal/models"
)

const numToken = `\d{1,3}(?:,\d{3})+|\d+`

var (
	doorCountBefore = regexp.MustCompile(`(?i)\b(` + numToken + `)\s+(?:doors?|knocks?)\b`)
	doorCountAfter  = regexp.MustCompile(`(?i)\b(?:doors?|knocks?)\b[:\s]+(` + numToken + `)\b`)

	volCountBefore = regexp.MustCompile(`(?i)\b(` + numToken + `)\s+volunteers?\b`)
	volCountAfter  = regexp.MustCompile(`(?i)\bvolunteers?\b[:\s]+(` + numToken + `)\b`)

	quotedSegment = regexp.MustCompile(`"([^"]+)"|'([^']+)'`)
	namedSegment  = regexp.MustCompile(`(?i)\b(?:from\s+)?segment\s+([A-Za-z0-9][A-Za-z0-9 -]*?)(?:\s*(?:[.?!,;]|$))`)

	precinctRef = regexp.MustCompile(`(?i)\bprecincts?\s+([A-Za-z0-9][A-Za-z0-9 -]*?)(?:\s*(?:[.?!,;]|$))`)
)

// precinctStopwords reject prepositional phrases after "precincts" that name
// a place rather than a precinct ("precincts in Lansing").
var precinctStopwords = map[string]bool{
	"in": true, "for": true, "of": true, "with": true, "near": true,
	"around": true, "by": true, "to": true, "the": true, "that": true,
	"across": true, "within": true,
}

// Extract runs every entity rule against the query text.
func Extract(query string) models.Entities {
	e := models.Entities{
		DoorCount:      extractCount(query, doorCountBefore, doorCountAfter),
		VolunteerCount: extractCount(query, volCountBefore, volCountAfter),
		Jurisdictions:  ExtractJurisdictions(query),
		SegmentName:    extractSegment(query),
		Precincts:      extractPrecincts(query),
	}
	applyDistricts(query, &e)
	return e
}

// extractCount prefers a number adjacent to the unit word; bare numbers
// elsewhere in the query never qualify.
func extractCount(query string, before, after *regexp.Regexp) *int {
	for _, re := range []*regexp.Regexp{before, after} {
		if m := re.FindStringSubmatch(query); m != nil {
			if n, ok := parseCount(m[1]); ok {
				return &n
			}
		}
	}
	return nil
}

func parseCount(token string) (int, bool) {
	n, err := strconv.Atoi(strings.ReplaceAll(token, ",", ""))
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// extractSegment takes quoted text first, then the phrase after "segment".
func extractSegment(query string) string {
	if m := quotedSegment.FindStringSubmatch(query); m != nil {
		if m[1] != "" {
			return strings.TrimSpace(m[1])
		}
		return strings.TrimSpace(m[2])
	}
	if m := namedSegment.FindStringSubmatch(query); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

func extractPrecincts(query string) []string {
	m := precinctRef.FindStringSubmatch(query)
	if m == nil {
		return nil
	}

	var out []string
	seen := make(map[string]bool)
	for _, part := range splitList(m[1]) {
		name := strings.TrimSpace(part)
		if name == "" {
			continue
		}
		first := strings.ToLower(strings.Fields(name)[0])
		if precinctStopwords[first] {
			continue
		}
		key := strings.ToLower(name)
		if !seen[key] {
			seen[key] = true
			out = append(out, name)
		}
	}
	return out
}

var listSeparator = regexp.MustCompile(`(?i)\s*(?:,|\band\b|&)\s*`)

func splitList(s string) []string {
	return listSeparator.Split(s, -1)
}
