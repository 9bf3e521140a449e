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

const paymentsCollection = "payments"

type PaymentRepository struct {
	coll *mongo.Collection
}

func NewPaymentRepository(db *mongo.Database) *PaymentRepository {
	return &PaymentRepository{coll: db.Collection(paymentsCollection)}
}

type mongoPayment struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	ReceiptNo    string             `bson:"receipt_no"`
	StudentID    string             `bson:"student_id"`
	StudentName  string             `bson:"student_name"`
	CounsellorID string             `bson:"counsellor_id"`
	Amount       float64            `bson:"amount"`
	Mode         string             `bson:"mode,omitempty"`
	PaidAt       time.Time          `bson:"paid_at"`
}

func (mp mongoPayment) toDomain() *domain.Payment {
	return &domain.Payment{
		ID:           mp.ID.Hex(),
		ReceiptNo:    mp.ReceiptNo,
		StudentID:    mp.StudentID,
		StudentName:  mp.StudentName,
		CounsellorID: mp.CounsellorID,
		Amount:       mp.Amount,
		Mode:         mp.Mode,
		PaidAt:       mp.PaidAt,
	}
}

func (r *PaymentRepository) Create(ctx context.Context, p *domain.Payment) (*domain.Payment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoPayment{
		ReceiptNo:    p.ReceiptNo,
		StudentID:    p.StudentID,
		StudentName:  p.StudentName,
		CounsellorID: p.CounsellorID,
		Amount:       p.Amount,
		Mode:         p.Mode,
		PaidAt:       p.PaidAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, err
	}
	created := *p
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *PaymentRepository) FindByID(ctx context.Context, id string) (*domain.Payment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrPaymentNotFound
	}

	var mp mongoPayment
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mp); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPaymentNotFound
		}
		return nil, err
	}
	return mp.toDomain(), nil
}

func (r *PaymentRepository) FindAll(ctx context.Context, counsellorID string) ([]*domain.Payment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	if counsellorID != "" {
		filter["counsellor_id"] = counsellorID
	}

	cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "paid_at", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var payments []*domain.Payment
	for cur.Next(ctx) {
		var mp mongoPayment
		if err := cur.Decode(&mp); err != nil {
			return nil, err
		}
		payments = append(payments, mp.toDomain())
	}
	return payments, cur.Err()
}
