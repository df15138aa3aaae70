package bookingRepo

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

// MongoBookingRepo implements BookingRepository using MongoDB.
type MongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo creates the repository and ensures its indexes.
func NewMongoBookingRepo(db *mongo.Database) BookingRepository {
	repo := &MongoBookingRepo{coll: db.Collection("bookings")}
	if err := repo.ensureIndexes(context.Background()); err != nil {
		zap.L().Error("failed to create booking indexes", zap.Error(err))
	}
	return repo
}

func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, timeout)
}

func (r *MongoBookingRepo) find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]models.Booking, error) {
	ctx, cancel := withTimeout(ctx, 10*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	bookings := make([]models.Booking, 0)
	for cursor.Next(ctx) {
		var b models.Booking
		if err := cursor.Decode(&b); err != nil {
			return nil, fmt.Errorf("failed to decode booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	return bookings, cursor.Err()
}

func (r *MongoBookingRepo) FindByDate(ctx context.Context, date string) ([]models.Booking, error) {
	opts := options.Find().SetProjection(bson.M{"treatment": 1, "slot": 1, "appointmentDate": 1})
	bookings, err := r.find(ctx, bson.M{"appointmentDate": date}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch bookings for %s: %w", date, err)
	}
	return bookings, nil
}

func (r *MongoBookingRepo) FindByEmail(ctx context.Context, email string) ([]models.Booking, error) {
	bookings, err := r.find(ctx, bson.M{"email": email})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch bookings for %s: %w", email, err)
	}
	return bookings, nil
}

func (r *MongoBookingRepo) FindByKey(ctx context.Context, key models.ConflictKey) ([]models.Booking, error) {
	filter := bson.M{
		"appointmentDate": key.AppointmentDate,
		"email":           key.Email,
		"treatment":       key.Treatment,
	}
	bookings, err := r.find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to look up existing bookings: %w", err)
	}
	return bookings, nil
}

func (r *MongoBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrBookingNotFound
	}
	ctx, cancel := withTimeout(ctx, 5*time.Second)
	defer cancel()

	var booking models.Booking
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&booking); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to fetch booking with id %s: %w", id, err)
	}
	return &booking, nil
}

func (r *MongoBookingRepo) Create(ctx context.Context, booking *models.Booking) (string, error) {
	ctx, cancel := withTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.InsertOne(ctx, booking)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", ErrDuplicateBooking
		}
		return "", fmt.Errorf("failed to create booking: %w", err)
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return fmt.Sprint(res.InsertedID), nil
	}
	booking.ID = oid
	return oid.Hex(), nil
}

func (r *MongoBookingRepo) MarkPaid(ctx context.Context, id, transactionID string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrBookingNotFound
	}
	ctx, cancel := withTimeout(ctx, 5*time.Second)
	defer cancel()

	// paid only ever goes false -> true; the same transaction may re-apply it.
	filter := bson.M{
		"_id": oid,
		"$or": bson.A{
			bson.M{"paid": false},
			bson.M{"transactionId": transactionID},
		},
	}
	update := bson.M{"$set": bson.M{"paid": true, "transactionId": transactionID}}
	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to mark booking %s paid: %w", id, err)
	}
	if result.MatchedCount > 0 {
		return nil
	}

	var existing models.Booking
	opts := options.FindOne().SetProjection(bson.M{"paid": 1})
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}, opts).Decode(&existing); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrBookingNotFound
		}
		return fmt.Errorf("failed to fetch booking with id %s: %w", id, err)
	}
	return ErrAlreadyPaid
}
