// internal/models/format.go
package models

import "strconv"

// FormatCount renders an integer with comma thousands separators, the way
// every handler response quotes door and voter counts.
func FormatCount(n int) string {
	neg := n < 0
	if neg {
		n = -n
	}
	s := strconv.Itoa(n)
	if len(s) > 3 {
		var out []byte
		for i, c := range []byte(s) {
			if i > 0 && (len(s)-i)%3 == 0 {
				out = append(out, ',')
			}
			out = append(out, c)
		}
		s = string(out)
	}
	if neg {
		s = "-" + s
	}
	return s
}
