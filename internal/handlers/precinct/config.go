// internal/handlers/precinct/config.go
package precinct

import appconfig "fieldscope/internal/common/config"

// Config holds precinct handler tunables.
type Config struct {
	// TargetLimit caps how many precincts a targeting list returns.
	TargetLimit int `mapstructure:"target_limit"`
}

func DefaultConfig() *Config {
	return &Config{
		TargetLimit: 10,
	}
}

// FromAppConfig builds handler config from the application config, falling
// back to defaults for anything unset.
func FromAppConfig(cfg *appconfig.Config) *Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if hc, ok := cfg.Handlers["precinct"]; ok && hc.TargetLimit > 0 {
		c.TargetLimit = hc.TargetLimit
	}
	return c
}
