// internal/handlers/district/models.go
package district

import "fieldscope/internal/models"

// districtComparison pairs two rosters for the UI.
type districtComparison struct {
	Left  models.District `json:"left"`
	Right models.District `json:"right"`
}
