// internal/handlers/compare/models.go
package compare

// comparisonRow is one side of a jurisdiction comparison, flattened for the
// UI table.
type comparisonRow struct {
	Jurisdiction     string  `json:"jurisdiction"`
	RegisteredVoters int     `json:"registeredVoters"`
	DoorCount        int     `json:"doorCount"`
	AverageTurnout   float64 `json:"averageTurnout"`
	SwingScore       float64 `json:"swingScore"`
	PartisanLean     float64 `json:"partisanLean"`
}

// similarMatch ranks a lookalike jurisdiction by trend distance; smaller is
// closer.
type similarMatch struct {
	Jurisdiction string  `json:"jurisdiction"`
	Distance     float64 `json:"distance"`
}
