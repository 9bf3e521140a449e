package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/scholarspoint/coaching-admin/internal/core/domain"
)

const visitsCollection = "visits"

type VisitRepository struct {
	coll *mongo.Collection
}

func NewVisitRepository(db *mongo.Database) *VisitRepository {
	return &VisitRepository{coll: db.Collection(visitsCollection)}
}

type mongoVisit struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	CounsellorID string             `bson:"counsellor_id"`
	Place        string             `bson:"place"`
	Purpose      string             `bson:"purpose,omitempty"`
	Notes        string             `bson:"notes,omitempty"`
	VisitedAt    time.Time          `bson:"visited_at"`
}

func (r *VisitRepository) Create(ctx context.Context, v *domain.Visit) (*domain.Visit, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoVisit{
		CounsellorID: v.CounsellorID,
		Place:        v.Place,
		Purpose:      v.Purpose,
		Notes:        v.Notes,
		VisitedAt:    v.VisitedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, err
	}
	created := *v
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *VisitRepository) FindAll(ctx context.Context, counsellorID string) ([]*domain.Visit, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	if counsellorID != "" {
		filter["counsellor_id"] = counsellorID
	}

	cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "visited_at", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var visits []*domain.Visit
	for cur.Next(ctx) {
		var mv mongoVisit
		if err := cur.Decode(&mv); err != nil {
			return nil, err
		}
		visits = append(visits, &domain.Visit{
			ID:           mv.ID.Hex(),
			CounsellorID: mv.CounsellorID,
			Place:        mv.Place,
			Purpose:      mv.Purpose,
			Notes:        mv.Notes,
			VisitedAt:    mv.VisitedAt,
		})
	}
	return visits, cur.Err()
}
