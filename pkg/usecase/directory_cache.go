package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/abhiram98920/teamtracker/pkg/domain/model"
	"github.com/abhiram98920/teamtracker/pkg/domain/types"
	"github.com/abhiram98920/teamtracker/pkg/service/hubstaff"
	"github.com/abhiram98920/teamtracker/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// CacheState is the lifecycle state of DirectoryCache
type CacheState string

const (
	CacheStateUninitialized CacheState = "UNINITIALIZED"
	CacheStateInitializing  CacheState = "INITIALIZING"
	CacheStateReady         CacheState = "READY"
	CacheStateStale         CacheState = "STALE"
)

// teamMemberConcurrency bounds parallel team member listings during a load
const teamMemberConcurrency = 4

// CacheStatus is a snapshot of DirectoryCache
type CacheStatus struct {
	State             CacheState    `json:"state"`
	ProjectsFetchedAt time.Time     `json:"projects_fetched_at"`
	MembersFetchedAt  time.Time     `json:"members_fetched_at"`
	ProjectCount      int           `json:"project_count"`
	MemberCount       int           `json:"member_count"`
	TTL               time.Duration `json:"ttl"`
}

// DirectoryCache memoizes the remote project list and the user to team/name
// mapping. Concurrent callers share one load; the cached directory is only
// replaced inside that load.
type DirectoryCache struct {
	svc     hubstaff.Service
	ttl     time.Duration
	mapping types.TeamMapping
	clock   func() time.Time

	mu      sync.RWMutex
	dir     *model.Directory
	loading bool
	expired bool
	// generation counts invalidations; a load only clears expired when none happened during it
	generation uint64
	group      singleflight.Group
}

// CacheOption configures DirectoryCache
type CacheOption func(*DirectoryCache)

// WithCacheClock replaces time.Now
func WithCacheClock(clock func() time.Time) CacheOption {
	return func(c *DirectoryCache) {
		c.clock = clock
	}
}

// NewDirectoryCache creates an empty cache. svc may be nil when the
// time-tracking API is not configured; Get then fails.
func NewDirectoryCache(svc hubstaff.Service, ttl time.Duration, mapping types.TeamMapping, opts ...CacheOption) *DirectoryCache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	if mapping == nil {
		mapping = types.DefaultTeamMapping()
	}
	c := &DirectoryCache{
		svc:     svc,
		ttl:     ttl,
		mapping: mapping,
		clock:   time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the cached directory, loading it when missing or stale
func (c *DirectoryCache) Get(ctx context.Context) (*model.Directory, error) {
	if d := c.fresh(); d != nil {
		return d, nil
	}

	v, err, shared := c.group.Do("directory", func() (any, error) {
		if d := c.fresh(); d != nil {
			return d, nil
		}
		return c.load(ctx)
	})
	if err != nil {
		return nil, err
	}
	if shared {
		logging.From(ctx).Debug("joined in-flight directory load")
	}
	return v.(*model.Directory), nil
}

// Refresh reloads the directory regardless of its age
func (c *DirectoryCache) Refresh(ctx context.Context) (*model.Directory, error) {
	v, err, _ := c.group.Do("directory", func() (any, error) {
		return c.load(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.(*model.Directory), nil
}

// Invalidate marks the cached directory stale; the next Get reloads it
func (c *DirectoryCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.expired = true
	c.generation++
}

// Status returns the current state and timestamps
func (c *DirectoryCache) Status() CacheStatus {
	c.mu.RLock()
	defer c.mu.RUnlock()

	st := CacheStatus{TTL: c.ttl}
	if c.dir != nil {
		st.ProjectsFetchedAt = c.dir.ProjectsFetchedAt
		st.MembersFetchedAt = c.dir.MembersFetchedAt
		st.ProjectCount = len(c.dir.Projects)
		st.MemberCount = len(c.dir.Members)
	}

	switch {
	case c.loading:
		st.State = CacheStateInitializing
	case c.dir == nil:
		st.State = CacheStateUninitialized
	case c.isFresh():
		st.State = CacheStateReady
	default:
		st.State = CacheStateStale
	}
	return st
}

// Expiry returns when the cached directory turns stale, or zero if nothing is cached
func (c *DirectoryCache) Expiry() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.dir == nil {
		return time.Time{}
	}
	oldest := c.dir.ProjectsFetchedAt
	if c.dir.MembersFetchedAt.Before(oldest) {
		oldest = c.dir.MembersFetchedAt
	}
	return oldest.Add(c.ttl)
}

func (c *DirectoryCache) fresh() *model.Directory {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.isFresh() {
		return c.dir
	}
	return nil
}

// isFresh requires c.mu held
func (c *DirectoryCache) isFresh() bool {
	if c.dir == nil || c.expired {
		return false
	}
	now := c.clock()
	return now.Sub(c.dir.ProjectsFetchedAt) <= c.ttl && now.Sub(c.dir.MembersFetchedAt) <= c.ttl
}

func (c *DirectoryCache) setLoading(v bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = v
}

func (c *DirectoryCache) load(ctx context.Context) (*model.Directory, error) {
	if c.svc == nil {
		return nil, goerr.Wrap(ErrHubstaffNotConfigured, "cannot load directory")
	}

	c.mu.Lock()
	c.loading = true
	generation := c.generation
	c.mu.Unlock()
	defer c.setLoading(false)

	// the load is shared, so one caller canceling must not fail the others
	ctx = context.WithoutCancel(ctx)
	logger := logging.From(ctx)
	started := c.clock()

	projects, err := c.svc.ListProjects(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load projects")
	}
	projectsAt := c.clock()

	members, err := c.loadMembers(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load members")
	}
	membersAt := c.clock()

	dir := &model.Directory{
		Projects:          projects,
		Members:           members,
		ProjectsFetchedAt: projectsAt,
		MembersFetchedAt:  membersAt,
	}

	c.mu.Lock()
	c.dir = dir
	if c.generation == generation {
		c.expired = false
	}
	c.mu.Unlock()

	logger.Info("directory loaded",
		"projects", len(projects),
		"members", len(members),
		"duration", c.clock().Sub(started))
	return dir, nil
}

// loadMembers joins team memberships (for the category) with organization
// members (for the name)
func (c *DirectoryCache) loadMembers(ctx context.Context) (map[int64]*model.MemberIdentity, error) {
	teams, err := c.svc.ListTeams(ctx)
	if err != nil {
		return nil, err
	}

	teamMembers := make([][]*model.TeamMember, len(teams))
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(teamMemberConcurrency)
	for i, team := range teams {
		eg.Go(func() error {
			list, err := c.svc.ListTeamMembers(egCtx, team.ID)
			if err != nil {
				return goerr.Wrap(err, "failed to list team members", goerr.V("team", team.Name))
			}
			teamMembers[i] = list
			return nil
		})
	}

	var orgMembers []*model.OrganizationMember
	eg.Go(func() error {
		list, err := c.svc.ListOrganizationMembers(egCtx)
		if err != nil {
			return err
		}
		orgMembers = list
		return nil
	})

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	members := make(map[int64]*model.MemberIdentity)
	for _, m := range orgMembers {
		members[m.UserID] = &model.MemberIdentity{
			RemoteUserID: m.UserID,
			DisplayName:  m.Name,
			Team:         types.TeamCategoryUnknown,
		}
	}

	// teams are applied in listing order; the first known category wins
	for i, team := range teams {
		category := c.mapping.Resolve(team.Name)
		for _, tm := range teamMembers[i] {
			m, ok := members[tm.UserID]
			if !ok {
				m = &model.MemberIdentity{RemoteUserID: tm.UserID, Team: types.TeamCategoryUnknown}
				members[tm.UserID] = m
			}
			if m.Team == types.TeamCategoryUnknown {
				m.Team = category
			}
		}
	}

	return members, nil
}
