// internal/handlers/canvass/models.go
package canvass

// staffingEstimate is the derived staffing math for a door universe.
type staffingEstimate struct {
	Doors          int `json:"doors"`
	VolunteerHours int `json:"volunteerHours"`
	Volunteers     int `json:"volunteers"`
	ShiftHours     int `json:"shiftHours"`
}

// weeklyPace is one week of a walk plan.
type weeklyPace struct {
	Week       int `json:"week"`
	Doors      int `json:"doors"`
	Volunteers int `json:"volunteers"`
}
