package usecase

import (
	"time"

	"github.com/abhiram98920/teamtracker/pkg/domain/interfaces"
	"github.com/abhiram98920/teamtracker/pkg/domain/types"
	"github.com/abhiram98920/teamtracker/pkg/service/hubstaff"
	"github.com/abhiram98920/teamtracker/pkg/service/slack"
)

// UseCases bundles the application operations over one repository
type UseCases struct {
	repo     interfaces.Repository
	hubstaff hubstaff.Service
	slack    slack.Service
	settings Settings
	clock    func() time.Time

	Directory *DirectoryCache
	Activity  *ActivityUseCase
	Report    *ReportUseCase
	Leave     *LeaveUseCase
	Project   *ProjectUseCase
	Task      *TaskUseCase
}

type Option func(*UseCases)

// WithHubstaff enables the time-tracking pipeline
func WithHubstaff(svc hubstaff.Service) Option {
	return func(uc *UseCases) {
		uc.hubstaff = svc
	}
}

// WithSlack enables report delivery
func WithSlack(svc slack.Service) Option {
	return func(uc *UseCases) {
		uc.slack = svc
	}
}

// WithSettings overrides pipeline tuning. Zero fields keep their defaults.
func WithSettings(s Settings) Option {
	return func(uc *UseCases) {
		uc.settings = s
	}
}

// WithClock replaces time.Now
func WithClock(clock func() time.Time) Option {
	return func(uc *UseCases) {
		uc.clock = clock
	}
}

// New builds the use cases. Without WithHubstaff the activity pipeline
// returns ErrHubstaffNotConfigured.
func New(repo interfaces.Repository, opts ...Option) *UseCases {
	uc := &UseCases{
		repo:  repo,
		clock: time.Now,
	}

	for _, opt := range opts {
		opt(uc)
	}
	uc.settings = uc.settings.withDefaults()

	uc.Directory = NewDirectoryCache(uc.hubstaff, uc.settings.CacheTTL, uc.settings.TeamMapping,
		WithCacheClock(uc.clock))
	uc.Activity = &ActivityUseCase{uc: uc}
	uc.Report = &ReportUseCase{uc: uc}
	uc.Leave = &LeaveUseCase{uc: uc}
	uc.Project = &ProjectUseCase{repo: repo, clock: uc.clock}
	uc.Task = &TaskUseCase{repo: repo, clock: uc.clock}

	return uc
}

// Settings returns the effective settings
func (uc *UseCases) Settings() Settings {
	return uc.settings
}

// HubstaffEnabled reports whether the time-tracking pipeline is configured
func (uc *UseCases) HubstaffEnabled() bool {
	return uc.hubstaff != nil
}

// Today returns the current date in the organization timezone
func (uc *UseCases) Today() types.Date {
	return types.DateOf(uc.clock(), uc.settings.Location)
}
