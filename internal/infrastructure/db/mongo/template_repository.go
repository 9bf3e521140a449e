package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/scholarspoint/coaching-admin/internal/core/domain"
)

const templatesCollection = "message_templates"

type TemplateRepository struct {
	coll *mongo.Collection
}

func NewTemplateRepository(db *mongo.Database) *TemplateRepository {
	return &TemplateRepository{coll: db.Collection(templatesCollection)}
}

type mongoTemplate struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	Body      string             `bson:"body"`
	CreatedBy string             `bson:"created_by"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

func (r *TemplateRepository) Create(ctx context.Context, t *domain.MessageTemplate) (*domain.MessageTemplate, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoTemplate{
		Name:      t.Name,
		Body:      t.Body,
		CreatedBy: t.CreatedBy,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, err
	}
	created := *t
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *TemplateRepository) FindAll(ctx context.Context) ([]*domain.MessageTemplate, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var templates []*domain.MessageTemplate
	for cur.Next(ctx) {
		var mt mongoTemplate
		if err := cur.Decode(&mt); err != nil {
			return nil, err
		}
		templates = append(templates, &domain.MessageTemplate{
			ID:        mt.ID.Hex(),
			Name:      mt.Name,
			Body:      mt.Body,
			CreatedBy: mt.CreatedBy,
			CreatedAt: mt.CreatedAt,
			UpdatedAt: mt.UpdatedAt,
		})
	}
	return templates, cur.Err()
}

func (r *TemplateRepository) Update(ctx context.Context, t *domain.MessageTemplate) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(t.ID)
	if err != nil {
		return domain.ErrTemplateNotFound
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"name":       t.Name,
		"body":       t.Body,
		"updated_at": t.UpdatedAt,
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrTemplateNotFound
	}
	return nil
}

func (r *TemplateRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrTemplateNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrTemplateNotFound
	}
	return nil
}
