// internal/common/config/config.go
package config

import "fmt"

// Config is the main application configuration struct.
type Config struct {
	App      AppConfig                `mapstructure:"app"`
	Server   ServerConfig             `mapstructure:"server"`
	Router   RouterConfig             `mapstructure:"router"`
	Database DatabaseConfig           `mapstructure:"database"`
	Handlers map[string]HandlerConfig `mapstructure:"handlers"`
	Canvass  CanvassConfig            `mapstructure:"canvass"`
	Logging  LoggingConfig            `mapstructure:"logging"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type ServerConfig struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	ReadTimeout     int    `mapstructure:"read_timeout"`     // milliseconds
	WriteTimeout    int    `mapstructure:"write_timeout"`    // milliseconds
	ShutdownTimeout int    `mapstructure:"shutdown_timeout"` // milliseconds
}

// RouterConfig holds intent matching and dispatch settings.
type RouterConfig struct {
	MinConfidence float64 `mapstructure:"min_confidence"`
	RegistryPath  string  `mapstructure:"registry_path"`
}

type DatabaseConfig struct {
	Postgres PostgresConfig `mapstructure:"postgres"`
	Redis    RedisConfig    `mapstructure:"redis"`
}

type PostgresConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Database       string `mapstructure:"database"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	MaxConnections int    `mapstructure:"max_connections"`
	MaxIdle        int    `mapstructure:"max_idle"`
	SSLMode        string `mapstructure:"sslmode"`
}

// GetDSN returns the PostgreSQL connection string
func (p PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

// Configured reports whether a Postgres connection has been set up at all.
// When false the service falls back to the in-memory reference data.
func (p PostgresConfig) Configured() bool {
	return p.Host != "" && p.Database != ""
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	CacheTTL int    `mapstructure:"cache_ttl"` // seconds
}

// HandlerConfig holds the core settings applicable to every query handler.
type HandlerConfig struct {
	Enabled     bool `mapstructure:"enabled"`
	Timeout     int  `mapstructure:"timeout"` // milliseconds
	TargetLimit int  `mapstructure:"target_limit"`
}

// CanvassConfig holds the field-program assumptions used by canvass math.
type CanvassConfig struct {
	DefaultDoorCount   int `mapstructure:"default_door_count"`
	DoorsPerHour       int `mapstructure:"doors_per_hour"`
	ShiftHours         int `mapstructure:"shift_hours"`
	DefaultPlanWeeks   int `mapstructure:"default_plan_weeks"`
	DoorsPerWeekPerVol int `mapstructure:"doors_per_week_per_vol"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}
