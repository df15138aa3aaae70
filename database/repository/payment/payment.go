package paymentRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"visionhealth/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

var ErrDuplicatePayment = errors.New("payment with this transaction id already recorded")

// PaymentRepository persists captured payments and their settlement state.
type PaymentRepository interface {
	Create(ctx context.Context, payment *models.Payment) (string, error)
	MarkSettled(ctx context.Context, id primitive.ObjectID) error
	// MarkFailed parks a payment that can never settle so reconciliation skips it.
	MarkFailed(ctx context.Context, id primitive.ObjectID, reason string) error
	// FindUnsettled returns at most limit payments, oldest first, whose booking has
	// not been marked paid and that have not failed.
	FindUnsettled(ctx context.Context, limit int64) ([]models.Payment, error)
}

type MongoPaymentRepo struct {
	coll *mongo.Collection
}

func NewMongoPaymentRepo(db *mongo.Database) PaymentRepository {
	repo := &MongoPaymentRepo{coll: db.Collection("payments")}
	if err := repo.ensureIndexes(); err != nil {
		zap.L().Error("failed to create payment indexes", zap.Error(err))
	}
	return repo
}

func (r *MongoPaymentRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "settled", Value: 1}, {Key: "failed", Value: 1}, {Key: "createdAt", Value: 1}}},
		{Keys: bson.D{{Key: "transactionId", Value: 1}}, Options: options.Index().SetUnique(true)},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func (r *MongoPaymentRepo) Create(ctx context.Context, payment *models.Payment) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.InsertOne(ctx, payment)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", ErrDuplicatePayment
		}
		return "", fmt.Errorf("failed to record payment: %w", err)
	}
	oid, _ := res.InsertedID.(primitive.ObjectID)
	payment.ID = oid
	return oid.Hex(), nil
}

func (r *MongoPaymentRepo) MarkSettled(ctx context.Context, id primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"settled": true}})
	if err != nil {
		return fmt.Errorf("failed to settle payment %s: %w", id.Hex(), err)
	}
	return nil
}

func (r *MongoPaymentRepo) MarkFailed(ctx context.Context, id primitive.ObjectID, reason string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"failed": true, "failureReason": reason}}
	if _, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, update); err != nil {
		return fmt.Errorf("failed to mark payment %s failed: %w", id.Hex(), err)
	}
	return nil
}

func (r *MongoPaymentRepo) FindUnsettled(ctx context.Context, limit int64) ([]models.Payment, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}).SetLimit(limit)
	cursor, err := r.coll.Find(ctx, bson.M{"settled": false, "failed": bson.M{"$ne": true}}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find unsettled payments: %w", err)
	}
	defer cursor.Close(ctx)

	payments := make([]models.Payment, 0)
	for cursor.Next(ctx) {
		var p models.Payment
		if err := cursor.Decode(&p); err != nil {
			return nil, fmt.Errorf("failed to decode payment: %w", err)
		}
		payments = append(payments, p)
	}
	return payments, cursor.Err()
}
