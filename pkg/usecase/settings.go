package usecase

import (
	"time"

	"github.com/abhiram98920/teamtracker/pkg/domain/types"
)

// Settings tunes the reconciliation pipeline
type Settings struct {
	// CacheTTL is the lifetime of the directory cache
	CacheTTL time.Duration
	// HistoryDays is the window, counted back from today, of a project activity query
	HistoryDays int
	// ChunkDays is the longest date range of a single activity request
	ChunkDays int
	// ProjectChunkSize is the number of project ids per activity request
	ProjectChunkSize int
	// ChunkDelay spaces consecutive activity requests
	ChunkDelay time.Duration
	// Location is the organization timezone used for "today"
	Location *time.Location
	// TeamMapping maps remote team names to categories
	TeamMapping types.TeamMapping
	// SlackChannelID receives posted reports
	SlackChannelID string
}

const (
	DefaultCacheTTL         = 30 * time.Minute
	DefaultHistoryDays      = 730
	DefaultChunkDays        = 31
	DefaultProjectChunkSize = 20
	DefaultChunkDelay       = 250 * time.Millisecond
	DefaultTimezone         = "Asia/Kolkata"
)

// DefaultSettings returns the production defaults
func DefaultSettings() Settings {
	loc, err := time.LoadLocation(DefaultTimezone)
	if err != nil {
		loc = time.FixedZone("IST", 5*3600+1800)
	}
	return Settings{
		CacheTTL:         DefaultCacheTTL,
		HistoryDays:      DefaultHistoryDays,
		ChunkDays:        DefaultChunkDays,
		ProjectChunkSize: DefaultProjectChunkSize,
		ChunkDelay:       DefaultChunkDelay,
		Location:         loc,
		TeamMapping:      types.DefaultTeamMapping(),
	}
}

// withDefaults fills zero fields from DefaultSettings
func (s Settings) withDefaults() Settings {
	d := DefaultSettings()
	if s.CacheTTL <= 0 {
		s.CacheTTL = d.CacheTTL
	}
	if s.HistoryDays <= 0 {
		s.HistoryDays = d.HistoryDays
	}
	if s.ChunkDays <= 0 {
		s.ChunkDays = d.ChunkDays
	}
	if s.ProjectChunkSize <= 0 {
		s.ProjectChunkSize = d.ProjectChunkSize
	}
	if s.ChunkDelay < 0 {
		s.ChunkDelay = 0
	}
	if s.Location == nil {
		s.Location = d.Location
	}
	if s.TeamMapping == nil {
		s.TeamMapping = d.TeamMapping
	}
	return s
}
