package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/abhiram98920/teamtracker/pkg/domain/model"
	"github.com/abhiram98920/teamtracker/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

type leaveRepository struct {
	db *sql.DB
}

const leaveColumns = `id, member_key, member_name, shadow, date, reason, created_at`

func (r *leaveRepository) Put(ctx context.Context, leave *model.Leave) error {
	if err := leave.Validate(); err != nil {
		return goerr.Wrap(err, "invalid leave")
	}

	createdAt := leave.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO leaves (`+leaveColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			member_key = excluded.member_key,
			member_name = excluded.member_name,
			shadow = excluded.shadow,
			date = excluded.date,
			reason = excluded.reason`,
		string(leave.ID), leave.MemberKey, leave.MemberName, leave.Shadow,
		leave.Date.String(), leave.Reason, formatTime(createdAt))
	if err != nil {
		return goerr.Wrap(err, "failed to put leave", goerr.V("id", leave.ID))
	}
	return nil
}

func (r *leaveRepository) ListByDate(ctx context.Context, date types.Date) ([]*model.Leave, error) {
	return r.query(ctx, `SELECT `+leaveColumns+` FROM leaves WHERE date = ? ORDER BY created_at, id`, date.String())
}

func (r *leaveRepository) ListByMember(ctx context.Context, memberKey string) ([]*model.Leave, error) {
	return r.query(ctx, `SELECT `+leaveColumns+` FROM leaves WHERE member_key = ? ORDER BY date, created_at`, memberKey)
}

func (r *leaveRepository) query(ctx context.Context, q string, args ...any) ([]*model.Leave, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query leaves")
	}
	defer rows.Close()

	leaves := make([]*model.Leave, 0)
	for rows.Next() {
		var (
			l            model.Leave
			id, date, ca string
		)
		if err := rows.Scan(&id, &l.MemberKey, &l.MemberName, &l.Shadow, &date, &l.Reason, &ca); err != nil {
			return nil, goerr.Wrap(err, "failed to scan leave")
		}
		createdAt, err := parseTime(ca)
		if err != nil {
			return nil, err
		}
		l.ID = model.LeaveID(id)
		l.Date = types.Date(date)
		l.CreatedAt = createdAt
		leaves = append(leaves, &l)
	}
	if err := rows.Err(); err != nil {
		return nil, goerr.Wrap(err, "failed to iterate leaves")
	}
	return leaves, nil
}
