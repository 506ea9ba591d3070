// internal/handlers/canvass/config.go
package canvass

import "fieldscope/internal/common/config"

// Config holds the field-program assumptions behind canvass math.
type Config struct {
	DefaultDoorCount   int
	DoorsPerHour       int
	ShiftHours         int
	DefaultPlanWeeks   int
	DoorsPerWeekPerVol int
}

// DefaultConfig mirrors a typical coordinated-campaign program: 8 doors per
// volunteer-hour, 4-hour shifts, 4-week plans.
func DefaultConfig() *Config {
	return &Config{
		DefaultDoorCount:   5000,
		DoorsPerHour:       8,
		ShiftHours:         4,
		DefaultPlanWeeks:   4,
		DoorsPerWeekPerVol: 64,
	}
}

// FromAppConfig maps the application canvass section onto handler config.
func FromAppConfig(cfg *config.Config) *Config {
	return &Config{
		DefaultDoorCount:   cfg.Canvass.DefaultDoorCount,
		DoorsPerHour:       cfg.Canvass.DoorsPerHour,
		ShiftHours:         cfg.Canvass.ShiftHours,
		DefaultPlanWeeks:   cfg.Canvass.DefaultPlanWeeks,
		DoorsPerWeekPerVol: cfg.Canvass.DoorsPerWeekPerVol,
	}
}
