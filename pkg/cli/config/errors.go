package config

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for configuration validation
var (
	ErrConfigNotFound   = goerr.New("configuration file not found")
	ErrInvalidConfig    = goerr.New("invalid configuration")
	ErrInvalidTimezone  = goerr.New("invalid timezone")
	ErrInvalidCategory  = goerr.New("invalid team category")
	ErrDuplicateTeam    = goerr.New("duplicate team name")
	ErrNegativeDuration = goerr.New("duration must not be negative")
)

// Context keys for error values
const (
	ConfigPathKey = "config_path"
	TeamNameKey   = "team_name"
	CategoryKey   = "category"
	TimezoneKey   = "timezone"
	FieldKey      = "field"
)
