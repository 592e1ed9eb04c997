package usecase

import (
	"context"
	"strconv"
	"strings"

	"github.com/abhiram98920/teamtracker/pkg/domain/model"
	"github.com/abhiram98920/teamtracker/pkg/domain/types"
	"github.com/abhiram98920/teamtracker/pkg/service/matcher"
	"github.com/abhiram98920/teamtracker/pkg/utils/debuglog"
	"github.com/abhiram98920/teamtracker/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
)

// LeaveUseCase records absences
type LeaveUseCase struct {
	uc *UseCases
}

// Record stores a leave for name on date (today when zero). The person is
// resolved against the directory; unresolved names get a shadow identity. A
// directory that cannot be loaded fails the call and nothing is stored.
func (l *LeaveUseCase) Record(ctx context.Context, name string, date types.Date, reason string) (*model.Leave, error) {
	uc := l.uc
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, goerr.Wrap(ErrInvalidArgument, "member name is required")
	}
	if date.IsZero() {
		date = uc.Today()
	} else if _, err := types.ParseDate(date.String()); err != nil {
		return nil, goerr.Wrap(ErrInvalidArgument, "invalid leave date", goerr.V(DateKey, date))
	}

	leave := &model.Leave{
		ID:        model.NewLeaveID(),
		Date:      date,
		Reason:    strings.TrimSpace(reason),
		CreatedAt: uc.clock().UTC(),
	}

	member, err := l.resolve(ctx, name)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to resolve member", goerr.V(PersonNameKey, name))
	}
	if member != nil {
		leave.MemberKey = strconv.FormatInt(member.RemoteUserID, 10)
		leave.MemberName = member.DisplayName
	} else {
		shadowID, err := matcher.ShadowID(name)
		if err != nil {
			return nil, goerr.Wrap(ErrInvalidArgument, err.Error(), goerr.V(PersonNameKey, name))
		}
		leave.MemberKey = shadowID
		leave.MemberName = name
		leave.Shadow = true
		debuglog.Add(ctx, "member %q recorded with shadow identity %s", name, shadowID)
	}

	if err := uc.repo.Leave().Put(ctx, leave); err != nil {
		return nil, goerr.Wrap(err, "failed to store leave", goerr.V(PersonNameKey, name))
	}

	logging.From(ctx).Info("leave recorded",
		"member_key", leave.MemberKey,
		"shadow", leave.Shadow,
		"date", leave.Date)
	return leave, nil
}

// List returns the leaves of one date (today when zero)
func (l *LeaveUseCase) List(ctx context.Context, date types.Date) ([]*model.Leave, error) {
	if date.IsZero() {
		date = l.uc.Today()
	} else if _, err := types.ParseDate(date.String()); err != nil {
		return nil, goerr.Wrap(ErrInvalidArgument, "invalid leave date", goerr.V(DateKey, date))
	}

	leaves, err := l.uc.repo.Leave().ListByDate(ctx, date)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list leaves", goerr.V(DateKey, date))
	}
	return leaves, nil
}

// resolve returns nil without error for names the directory cannot match
func (l *LeaveUseCase) resolve(ctx context.Context, name string) (*model.MemberIdentity, error) {
	if l.uc.hubstaff == nil {
		return nil, nil
	}

	dir, err := l.uc.Directory.Get(ctx)
	if err != nil {
		return nil, err
	}

	m := matcher.MatchPerson(name, dir.MemberList(), func(mi *model.MemberIdentity) string { return mi.DisplayName })
	switch m.Kind {
	case model.MatchKindMatched:
		return m.Entity, nil
	case model.MatchKindAmbiguous:
		logging.From(ctx).Warn("ambiguous member for leave", "name", name, "candidates", len(m.Candidates))
		debuglog.Add(ctx, "member %q is ambiguous (%d candidates)", name, len(m.Candidates))
	}
	return nil, nil
}
