package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/abhiram98920/teamtracker/pkg/domain/model"
	"github.com/abhiram98920/teamtracker/pkg/domain/types"
	"github.com/m-mizutani/gt"
)

func runLeaveRepositoryTest(t *testing.T, newRepo repoFactory) {
	t.Run("ListByDate and ListByMember", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		base := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)

		leaves := []*model.Leave{
			{ID: model.NewLeaveID(), MemberKey: "42", MemberName: "Jane Doe", Date: "2026-02-10", Reason: "sick", CreatedAt: base},
			{ID: model.NewLeaveID(), MemberKey: "shadow_john_roe", MemberName: "John Roe", Shadow: true, Date: "2026-02-10", CreatedAt: base.Add(time.Minute)},
			{ID: model.NewLeaveID(), MemberKey: "42", MemberName: "Jane Doe", Date: "2026-02-03", CreatedAt: base.Add(2 * time.Minute)},
		}
		for _, l := range leaves {
			gt.NoError(t, repo.Leave().Put(ctx, l)).Required()
		}

		byDate, err := repo.Leave().ListByDate(ctx, types.Date("2026-02-10"))
		gt.NoError(t, err).Required()
		gt.Array(t, byDate).Length(2).Required()
		gt.Value(t, byDate[0].MemberKey).Equal("42")
		gt.Value(t, byDate[0].Reason).Equal("sick")
		gt.Value(t, byDate[1].MemberKey).Equal("shadow_john_roe")
		gt.Bool(t, byDate[1].Shadow).True()

		byMember, err := repo.Leave().ListByMember(ctx, "42")
		gt.NoError(t, err).Required()
		gt.Array(t, byMember).Length(2).Required()
		gt.Value(t, byMember[0].Date).Equal(types.Date("2026-02-03"))
		gt.Value(t, byMember[1].Date).Equal(types.Date("2026-02-10"))
	})

	t.Run("Put rejects missing member key", func(t *testing.T) {
		repo := newRepo(t)
		gt.Error(t, repo.Leave().Put(context.Background(), &model.Leave{ID: model.NewLeaveID(), Date: "2026-02-10"}))
	})
}

func TestLeaveRepository(t *testing.T) {
	runAllBackends(t, runLeaveRepositoryTest)
}
