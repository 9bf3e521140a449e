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

const studentsCollection = "students"

type StudentRepository struct {
	coll *mongo.Collection
}

func NewStudentRepository(db *mongo.Database) *StudentRepository {
	return &StudentRepository{coll: db.Collection(studentsCollection)}
}

type mongoStudent struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Name         string             `bson:"name"`
	FatherName   string             `bson:"father_name,omitempty"`
	MotherName   string             `bson:"mother_name,omitempty"`
	Standard     string             `bson:"standard"`
	School       string             `bson:"school,omitempty"`
	Phone        string             `bson:"phone,omitempty"`
	Centre       string             `bson:"centre,omitempty"`
	CounsellorID string             `bson:"counsellor_id"`
	SeatNumber   string             `bson:"seat_number,omitempty"`
	RegisteredAt time.Time          `bson:"registered_at"`
}

func (ms mongoStudent) toDomain() *domain.Student {
	return &domain.Student{
		ID:           ms.ID.Hex(),
		Name:         ms.Name,
		FatherName:   ms.FatherName,
		MotherName:   ms.MotherName,
		Standard:     ms.Standard,
		School:       ms.School,
		Phone:        ms.Phone,
		Centre:       ms.Centre,
		CounsellorID: ms.CounsellorID,
		SeatNumber:   ms.SeatNumber,
		RegisteredAt: ms.RegisteredAt,
	}
}

func (r *StudentRepository) Create(ctx context.Context, s *domain.Student) (*domain.Student, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoStudent{
		Name:         s.Name,
		FatherName:   s.FatherName,
		MotherName:   s.MotherName,
		Standard:     s.Standard,
		School:       s.School,
		Phone:        s.Phone,
		Centre:       s.Centre,
		CounsellorID: s.CounsellorID,
		SeatNumber:   s.SeatNumber,
		RegisteredAt: s.RegisteredAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, err
	}
	created := *s
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *StudentRepository) FindByID(ctx context.Context, id string) (*domain.Student, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrStudentNotFound
	}

	var ms mongoStudent
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&ms); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrStudentNotFound
		}
		return nil, err
	}
	return ms.toDomain(), nil
}

func (r *StudentRepository) FindAll(ctx context.Context, counsellorID string) ([]*domain.Student, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	if counsellorID != "" {
		filter["counsellor_id"] = counsellorID
	}

	cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "registered_at", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var students []*domain.Student
	for cur.Next(ctx) {
		var ms mongoStudent
		if err := cur.Decode(&ms); err != nil {
			return nil, err
		}
		students = append(students, ms.toDomain())
	}
	return students, cur.Err()
}

// EnsureIndexes creates the indexes the student queries rely on.
func (r *StudentRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "counsellor_id", Value: 1}}},
		{Keys: bson.D{{Key: "phone", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
