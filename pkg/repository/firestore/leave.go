package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/abhiram98920/teamtracker/pkg/domain/model"
	"github.com/abhiram98920/teamtracker/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"
)

const leavesCollection = "leaves"

type leaveRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newLeaveRepository(client *firestore.Client) *leaveRepository {
	return &leaveRepository{client: client}
}

type leaveDoc struct {
	ID         string    `firestore:"id"`
	MemberKey  string    `firestore:"member_key"`
	MemberName string    `firestore:"member_name"`
	Shadow     bool      `firestore:"shadow"`
	Date       string    `firestore:"date"`
	Reason     string    `firestore:"reason"`
	CreatedAt  time.Time `firestore:"created_at"`
}

func (r *leaveRepository) collection() *firestore.CollectionRef {
	return r.client.Collection(collectionName(r.collectionPrefix, leavesCollection))
}

func (r *leaveRepository) Put(ctx context.Context, leave *model.Leave) error {
	if err := leave.Validate(); err != nil {
		return goerr.Wrap(err, "invalid leave")
	}

	doc := &leaveDoc{
		ID:         string(leave.ID),
		MemberKey:  leave.MemberKey,
		MemberName: leave.MemberName,
		Shadow:     leave.Shadow,
		Date:       leave.Date.String(),
		Reason:     leave.Reason,
		CreatedAt:  leave.CreatedAt,
	}
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = time.Now().UTC()
	}

	if _, err := r.collection().Doc(doc.ID).Set(ctx, doc); err != nil {
		return goerr.Wrap(err, "failed to put leave", goerr.V("id", leave.ID))
	}
	return nil
}

func (r *leaveRepository) ListByDate(ctx context.Context, date types.Date) ([]*model.Leave, error) {
	q := r.collection().
		Where("date", "==", date.String()).
		OrderBy("created_at", firestore.Asc)
	return r.query(q.Documents(ctx))
}

func (r *leaveRepository) ListByMember(ctx context.Context, memberKey string) ([]*model.Leave, error) {
	q := r.collection().
		Where("member_key", "==", memberKey).
		OrderBy("date", firestore.Asc)
	return r.query(q.Documents(ctx))
}

func (r *leaveRepository) query(iter *firestore.DocumentIterator) ([]*model.Leave, error) {
	defer iter.Stop()

	leaves := make([]*model.Leave, 0)
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate leaves")
		}

		var doc leaveDoc
		if err := snap.DataTo(&doc); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal leave", goerr.V("docID", snap.Ref.ID))
		}
		leaves = append(leaves, &model.Leave{
			ID:         model.LeaveID(doc.ID),
			MemberKey:  doc.MemberKey,
			MemberName: doc.MemberName,
			Shadow:     doc.Shadow,
			Date:       types.Date(doc.Date),
			Reason:     doc.Reason,
			CreatedAt:  doc.CreatedAt,
		})
	}
	return leaves, nil
}
