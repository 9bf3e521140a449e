package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/scholarspoint/coaching-admin/internal/core/domain"
)

const challansCollection = "challans"

type ChallanRepository struct {
	coll *mongo.Collection
}

func NewChallanRepository(db *mongo.Database) *ChallanRepository {
	return &ChallanRepository{coll: db.Collection(challansCollection)}
}

// mongoChallan stores items in the raw shape so legacy documents (nested
// book reference) and new documents (inline fields) decode side by side.
// Normalization happens on the way out.
type mongoChallan struct {
	ID            primitive.ObjectID      `bson:"_id,omitempty"`
	ChallanNumber string                  `bson:"challan_number"`
	CounsellorID  string                  `bson:"counsellor_id"`
	Centre        string                  `bson:"centre,omitempty"`
	Items         []domain.RawChallanItem `bson:"items"`
	Given         bool                    `bson:"given"`
	GivenAt       time.Time               `bson:"given_at,omitempty"`
	Received      bool                    `bson:"received"`
	ReceivedAt    time.Time               `bson:"received_at,omitempty"`
	CreatedAt     time.Time               `bson:"created_at"`
}

func (mc mongoChallan) toDomain() *domain.Challan {
	return &domain.Challan{
		ID:            mc.ID.Hex(),
		ChallanNumber: mc.ChallanNumber,
		CounsellorID:  mc.CounsellorID,
		Centre:        mc.Centre,
		Items:         domain.NormalizeItems(mc.Items),
		Given:         mc.Given,
		GivenAt:       mc.GivenAt,
		Received:      mc.Received,
		ReceivedAt:    mc.ReceivedAt,
		CreatedAt:     mc.CreatedAt,
	}
}

func (r *ChallanRepository) Create(ctx context.Context, c *domain.Challan) (*domain.Challan, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	items := make([]domain.RawChallanItem, len(c.Items))
	for i, it := range c.Items {
		items[i] = domain.RawChallanItem{
			Name:     it.Name,
			Category: string(it.Category),
			Standard: it.Standard,
			Quantity: it.Quantity,
		}
	}

	doc := mongoChallan{
		ChallanNumber: c.ChallanNumber,
		CounsellorID:  c.CounsellorID,
		Centre:        c.Centre,
		Items:         items,
		CreatedAt:     c.CreatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, err
	}
	created := *c
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *ChallanRepository) FindByID(ctx context.Context, id string) (*domain.Challan, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrChallanNotFound
	}

	var mc mongoChallan
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrChallanNotFound
		}
		return nil, err
	}
	return mc.toDomain(), nil
}

// FindAll returns the full scoped record set in creation order. The views
// filter and aggregate in memory, so no criteria reach the query.
func (r *ChallanRepository) FindAll(ctx context.Context, counsellorID string) ([]*domain.Challan, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	if counsellorID != "" {
		filter["counsellor_id"] = counsellorID
	}

	cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var challans []*domain.Challan
	for cur.Next(ctx) {
		var mc mongoChallan
		if err := cur.Decode(&mc); err != nil {
			return nil, err
		}
		challans = append(challans, mc.toDomain())
	}
	return challans, cur.Err()
}

func (r *ChallanRepository) MarkGiven(ctx context.Context, id string) error {
	return r.mark(ctx, id, bson.M{"given": true, "given_at": time.Now().UTC()})
}

func (r *ChallanRepository) MarkReceived(ctx context.Context, id string) error {
	return r.mark(ctx, id, bson.M{"received": true, "received_at": time.Now().UTC()})
}

func (r *ChallanRepository) mark(ctx context.Context, id string, set bson.M) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrChallanNotFound
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrChallanNotFound
	}
	return nil
}

// EnsureIndexes creates the indexes the challan queries rely on.
func (r *ChallanRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "challan_number", Value: 1}}},
		{Keys: bson.D{{Key: "counsellor_id", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
