package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/abhiram98920/teamtracker/pkg/domain/model"
	"github.com/abhiram98920/teamtracker/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

type leaveRepository struct {
	mu     sync.RWMutex
	leaves map[model.LeaveID]*model.Leave
}

func newLeaveRepository() *leaveRepository {
	return &leaveRepository{
		leaves: make(map[model.LeaveID]*model.Leave),
	}
}

func (r *leaveRepository) Put(ctx context.Context, leave *model.Leave) error {
	if err := leave.Validate(); err != nil {
		return goerr.Wrap(err, "invalid leave")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	leaveCopy := *leave
	if leaveCopy.CreatedAt.IsZero() {
		leaveCopy.CreatedAt = time.Now().UTC()
	}
	r.leaves[leave.ID] = &leaveCopy
	return nil
}

func (r *leaveRepository) ListByDate(ctx context.Context, date types.Date) ([]*model.Leave, error) {
	return r.filter(func(l *model.Leave) bool { return l.Date == date }), nil
}

func (r *leaveRepository) ListByMember(ctx context.Context, memberKey string) ([]*model.Leave, error) {
	return r.filter(func(l *model.Leave) bool { return l.MemberKey == memberKey }), nil
}

func (r *leaveRepository) filter(match func(*model.Leave) bool) []*model.Leave {
	r.mu.RLock()
	defer r.mu.RUnlock()

	leaves := make([]*model.Leave, 0)
	for _, l := range r.leaves {
		if match(l) {
			leaveCopy := *l
			leaves = append(leaves, &leaveCopy)
		}
	}

	sort.Slice(leaves, func(i, j int) bool {
		if leaves[i].Date != leaves[j].Date {
			return leaves[i].Date < leaves[j].Date
		}
		if !leaves[i].CreatedAt.Equal(leaves[j].CreatedAt) {
			return leaves[i].CreatedAt.Before(leaves[j].CreatedAt)
		}
		return leaves[i].MemberKey < leaves[j].MemberKey
	})
	return leaves
}
