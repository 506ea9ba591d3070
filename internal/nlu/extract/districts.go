// internal/nlu/extract/districts.go
package extract

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"

	"fieldscope/internal/models"
)

// The three coded district shapes. Shorthand ("HD-73", "hd 73", "hd73") and
// verbose ("State House District 73") forms normalize to one canonical id.
var (
	stateHouseRe  = regexp.MustCompile(`(?i)\b(?:hd[-\s]?|state\s+house\s+(?:district\s+)?)(\d{1,3})\b`)
	stateSenateRe = regexp.MustCompile(`(?i)\b(?:sd[-\s]?|state\s+senate\s+(?:district\s+)?)(\d{1,3})\b`)
	congressRe    = regexp.MustCompile(`(?i)\bmi-(\d{2})\b|\b(\d{1,2})(?:st|nd|rd|th)?\s+congressional\b`)
)

type districtMatch struct {
	start int
	code  string
	shape string
}

// applyDistricts fills the district fields on e: Districts carries every
// code in order of appearance, the per-shape fields keep the first of each.
func applyDistricts(query string, e *models.Entities) {
	var matches []districtMatch

	for _, m := range stateHouseRe.FindAllStringSubmatchIndex(query, -1) {
		n, _ := strconv.Atoi(query[m[2]:m[3]])
		matches = append(matches, districtMatch{
			start: m[0],
			code:  fmt.Sprintf("mi-house-%d", n),
			shape: "house",
		})
	}

	for _, m := range stateSenateRe.FindAllStringSubmatchIndex(query, -1) {
		n, _ := strconv.Atoi(query[m[2]:m[3]])
		matches = append(matches, districtMatch{
			start: m[0],
			code:  fmt.Sprintf("mi-senate-%d", n),
			shape: "senate",
		})
	}

	for _, m := range congressRe.FindAllStringSubmatchIndex(query, -1) {
		var code string
		if m[2] >= 0 {
			// "MI-07" keeps its zero padding
			code = "mi-" + query[m[2]:m[3]]
		} else {
			n, _ := strconv.Atoi(query[m[4]:m[5]])
			code = fmt.Sprintf("mi-%02d", n)
		}
		matches = append(matches, districtMatch{start: m[0], code: code, shape: "congress"})
	}

	if len(matches) == 0 {
		return
	}

	sort.Slice(matches, func(i, j int) bool { return matches[i].start < matches[j].start })

	seen := make(map[string]bool)
	for _, m := range matches {
		if seen[m.code] {
			continue
		}
		seen[m.code] = true
		e.Districts = append(e.Districts, m.code)

		switch m.shape {
		case "house":
			if e.StateHouse == "" {
				e.StateHouse = m.code
			}
		case "senate":
			if e.StateSenate == "" {
				e.StateSenate = m.code
			}
		case "congress":
			if e.Congressional == "" {
				e.Congressional = m.code
			}
		}
	}
}
