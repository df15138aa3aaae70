package catalogRepo

import (
	"context"
	"fmt"
	"time"

	"visionhealth/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// MongoCatalogRepo implements CatalogRepository on the appointmentServices collection.
type MongoCatalogRepo struct {
	coll *mongo.Collection
}

func NewMongoCatalogRepo(db *mongo.Database) CatalogRepository {
	repo := &MongoCatalogRepo{coll: db.Collection("appointmentServices")}
	if err := repo.ensureIndexes(); err != nil {
		zap.L().Error("failed to create catalog indexes", zap.Error(err))
	}
	return repo
}

func (r *MongoCatalogRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "serviceTitle", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func (r *MongoCatalogRepo) GetAll(ctx context.Context) ([]models.AppointmentService, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve services: %w", err)
	}
	defer cursor.Close(ctx)

	services := make([]models.AppointmentService, 0)
	for cursor.Next(ctx) {
		var s models.AppointmentService
		if err := cursor.Decode(&s); err != nil {
			return nil, fmt.Errorf("failed to decode service: %w", err)
		}
		services = append(services, s)
	}
	return services, cursor.Err()
}

func (r *MongoCatalogRepo) GetSpecialties(ctx context.Context) ([]models.Specialty, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().SetProjection(bson.M{"serviceTitle": 1})
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve specialties: %w", err)
	}
	defer cursor.Close(ctx)

	specialties := make([]models.Specialty, 0)
	for cursor.Next(ctx) {
		var s models.Specialty
		if err := cursor.Decode(&s); err != nil {
			return nil, fmt.Errorf("failed to decode specialty: %w", err)
		}
		specialties = append(specialties, s)
	}
	return specialties, cursor.Err()
}

func (r *MongoCatalogRepo) Create(ctx context.Context, service *models.AppointmentService) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if service.Slots == nil {
		service.Slots = []string{}
	}
	res, err := r.coll.InsertOne(ctx, service)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", ErrDuplicateService
		}
		return "", fmt.Errorf("failed to create service: %w", err)
	}
	oid, _ := res.InsertedID.(primitive.ObjectID)
	service.ID = oid
	return oid.Hex(), nil
}

func (r *MongoCatalogRepo) Delete(ctx context.Context, id string) (int64, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return 0, ErrServiceNotFound
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return 0, fmt.Errorf("failed to delete service with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return 0, ErrServiceNotFound
	}
	return result.DeletedCount, nil
}
