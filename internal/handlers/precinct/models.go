// internal/handlers/precinct/models.go
package precinct

// targetRow is one precinct in a ranked targeting list.
type targetRow struct {
	Precinct      string  `json:"precinct"`
	CombinedScore float64 `json:"combinedScore"`
	PriorityTier  string  `json:"priorityTier"`
	DoorCount     int     `json:"doorCount"`
}
