package config

import (
	"errors"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/abhiram98920/teamtracker/pkg/domain/types"
	"github.com/abhiram98920/teamtracker/pkg/usecase"
	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"
)

// AppConfig holds the path of the optional TOML configuration file
type AppConfig struct {
	path string
}

// Flags returns CLI flags for the configuration file
func (x *AppConfig) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "Path to TOML configuration file (team mapping, timezone, tuning)",
			Sources:     cli.EnvVars("TEAMTRACKER_CONFIG"),
			Destination: &x.path,
		},
	}
}

// Configure loads the file, if set, and returns pipeline settings. Without a
// file the defaults are returned.
func (x *AppConfig) Configure() (usecase.Settings, error) {
	if x.path == "" {
		return usecase.DefaultSettings(), nil
	}

	file, err := LoadAppConfiguration(x.path)
	if err != nil {
		return usecase.Settings{}, err
	}
	return file.Settings()
}

// FileConfig is the content of the TOML configuration file
type FileConfig struct {
	Timezone string       `toml:"timezone"`
	Cache    CacheConfig  `toml:"cache"`
	Activity ActivityConf `toml:"activity"`
	Teams    []Team       `toml:"team"`
}

// CacheConfig tunes the directory cache
type CacheConfig struct {
	TTL string `toml:"ttl"`
}

// ActivityConf tunes the activity fetch
type ActivityConf struct {
	HistoryDays      int    `toml:"history_days"`
	ChunkDays        int    `toml:"chunk_days"`
	ProjectChunkSize int    `toml:"project_chunk_size"`
	ChunkDelay       string `toml:"chunk_delay"`
}

// Team maps one remote team name to a category
type Team struct {
	Name     string `toml:"name"`
	Category string `toml:"category"`
}

// Validate checks if the Team is valid
func (t *Team) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return goerr.Wrap(ErrInvalidConfig, "team name is required")
	}
	if !types.TeamCategory(t.Category).IsValid() {
		return goerr.Wrap(ErrInvalidCategory, "unknown category",
			goerr.V(TeamNameKey, t.Name), goerr.V(CategoryKey, t.Category))
	}
	return nil
}

// Validate checks if the FileConfig is valid
func (c *FileConfig) Validate() error {
	if c.Timezone != "" {
		if _, err := time.LoadLocation(c.Timezone); err != nil {
			return goerr.Wrap(ErrInvalidTimezone, err.Error(), goerr.V(TimezoneKey, c.Timezone))
		}
	}

	for field, v := range map[string]string{"cache.ttl": c.Cache.TTL, "activity.chunk_delay": c.Activity.ChunkDelay} {
		if v == "" {
			continue
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			return goerr.Wrap(ErrInvalidConfig, "invalid duration", goerr.V(FieldKey, field), goerr.V("value", v))
		}
		if d < 0 {
			return goerr.Wrap(ErrNegativeDuration, "invalid duration", goerr.V(FieldKey, field), goerr.V("value", v))
		}
	}

	for field, v := range map[string]int{
		"activity.history_days":       c.Activity.HistoryDays,
		"activity.chunk_days":         c.Activity.ChunkDays,
		"activity.project_chunk_size": c.Activity.ProjectChunkSize,
	} {
		if v < 0 {
			return goerr.Wrap(ErrInvalidConfig, "value must not be negative", goerr.V(FieldKey, field), goerr.V("value", v))
		}
	}

	names := make(map[string]bool)
	for _, team := range c.Teams {
		if err := team.Validate(); err != nil {
			return goerr.Wrap(err, "invalid team")
		}
		key := strings.ToLower(strings.TrimSpace(team.Name))
		if names[key] {
			return goerr.Wrap(ErrDuplicateTeam, "team is mapped twice", goerr.V(TeamNameKey, team.Name))
		}
		names[key] = true
	}

	return nil
}

// Settings converts the file into pipeline settings. Teams extend the default mapping.
func (c *FileConfig) Settings() (usecase.Settings, error) {
	s := usecase.DefaultSettings()

	if c.Timezone != "" {
		loc, err := time.LoadLocation(c.Timezone)
		if err != nil {
			return s, goerr.Wrap(ErrInvalidTimezone, err.Error(), goerr.V(TimezoneKey, c.Timezone))
		}
		s.Location = loc
	}
	if c.Cache.TTL != "" {
		d, err := time.ParseDuration(c.Cache.TTL)
		if err != nil {
			return s, goerr.Wrap(ErrInvalidConfig, "invalid cache.ttl", goerr.V("value", c.Cache.TTL))
		}
		s.CacheTTL = d
	}
	if c.Activity.ChunkDelay != "" {
		d, err := time.ParseDuration(c.Activity.ChunkDelay)
		if err != nil {
			return s, goerr.Wrap(ErrInvalidConfig, "invalid activity.chunk_delay", goerr.V("value", c.Activity.ChunkDelay))
		}
		s.ChunkDelay = d
	}
	if c.Activity.HistoryDays > 0 {
		s.HistoryDays = c.Activity.HistoryDays
	}
	if c.Activity.ChunkDays > 0 {
		s.ChunkDays = c.Activity.ChunkDays
	}
	if c.Activity.ProjectChunkSize > 0 {
		s.ProjectChunkSize = c.Activity.ProjectChunkSize
	}

	for _, team := range c.Teams {
		s.TeamMapping[strings.ToLower(strings.TrimSpace(team.Name))] = types.TeamCategory(team.Category)
	}

	return s, nil
}

// LoadAppConfiguration loads the application configuration from a TOML file
func LoadAppConfiguration(path string) (*FileConfig, error) {
	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, goerr.Wrap(ErrConfigNotFound, "failed to read config file", goerr.V(ConfigPathKey, path))
		}
		return nil, goerr.Wrap(err, "failed to read config file", goerr.V(ConfigPathKey, path))
	}

	var config FileConfig
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, goerr.Wrap(ErrInvalidConfig, "failed to parse TOML config",
			goerr.V(ConfigPathKey, path), goerr.V("error", err.Error()))
	}

	if err := config.Validate(); err != nil {
		return nil, goerr.Wrap(err, "config validation failed", goerr.V(ConfigPathKey, path))
	}

	return &config, nil
}
