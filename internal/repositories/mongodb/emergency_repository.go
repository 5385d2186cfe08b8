package mongodb

import (
	"context"
	"fmt"
	"time"

	"swiftaid/internal/models"
	"swiftaid/internal/repositories/interfaces"
	"swiftaid/internal/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const pendingCacheKey = "emergencies:pending"

type emergencyRepository struct {
	collection *mongo.Collection
	cache      CacheService
}

func NewEmergencyRepository(db *mongo.Database, cache CacheService) interfaces.EmergencyRepository {
	return &emergencyRepository{
		collection: db.Collection("emergencies"),
		cache:      cache,
	}
}

func (r *emergencyRepository) Create(ctx context.Context, emergency *models.Emergency) error {
	emergency.ID = primitive.NewObjectID()
	emergency.Status = models.EmergencyStatusPending
	emergency.DriverID = ""
	emergency.CreatedAt = time.Now()
	emergency.UpdatedAt = emergency.CreatedAt

	_, err := r.collection.InsertOne(ctx, emergency)
	if err != nil {
		return fmt.Errorf("failed to create emergency: %w", err)
	}

	r.invalidatePendingCache(ctx)
	return nil
}

func (r *emergencyRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Emergency, error) {
	var emergency models.Emergency
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&emergency)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, utils.ErrEmergencyNotFound
		}
		return nil, fmt.Errorf("failed to get emergency: %w", err)
	}

	if !emergency.Status.IsValid() {
		return nil, fmt.Errorf("emergency %s has unknown status %q", id.Hex(), emergency.Status)
	}

	return &emergency, nil
}

func (r *emergencyRepository) GetByStatus(ctx context.Context, status models.EmergencyStatus) ([]*models.Emergency, error) {
	if status == models.EmergencyStatusPending {
		if cached := r.pendingFromCache(ctx); cached != nil {
			return cached, nil
		}
	}

	emergencies, err := r.find(ctx, bson.M{"status": status})
	if err != nil {
		return nil, err
	}

	if status == models.EmergencyStatusPending {
		r.cachePending(ctx, emergencies)
	}

	return emergencies, nil
}

func (r *emergencyRepository) GetByDriverID(ctx context.Context, driverID string) ([]*models.Emergency, error) {
	return r.find(ctx, bson.M{"driver_id": driverID})
}

func (r *emergencyRepository) GetByPatientID(ctx context.Context, patientID string) ([]*models.Emergency, error) {
	return r.find(ctx, bson.M{"patient_id": patientID})
}

func (r *emergencyRepository) GetAll(ctx context.Context) ([]*models.Emergency, error) {
	return r.find(ctx, bson.M{})
}

func (r *emergencyRepository) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) (*models.Emergency, error) {
	updates["updated_at"] = time.Now()

	var emergency models.Emergency
	err := r.collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": updates},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&emergency)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, utils.ErrEmergencyNotFound
		}
		return nil, fmt.Errorf("failed to update emergency: %w", err)
	}

	r.invalidatePendingCache(ctx)
	return &emergency, nil
}

// AcceptPending runs the whole check-and-set inside a single conditional
// update, so a stale read can never let two drivers win the same emergency.
func (r *emergencyRepository) AcceptPending(ctx context.Context, id primitive.ObjectID, driverID string, at time.Time) (*models.Emergency, error) {
	var emergency models.Emergency
	err := r.collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id, "status": models.EmergencyStatusPending},
		bson.M{"$set": bson.M{
			"status":      models.EmergencyStatusAccepted,
			"driver_id":   driverID,
			"accepted_at": at,
			"updated_at":  at,
		}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&emergency)

	if err == mongo.ErrNoDocuments {
		// Either the id is unknown or the record already left pending.
		if _, lookupErr := r.GetByID(ctx, id); lookupErr != nil {
			return nil, lookupErr
		}
		return nil, utils.ErrAlreadyAssigned
	}
	if err != nil {
		return nil, fmt.Errorf("failed to accept emergency: %w", err)
	}

	r.invalidatePendingCache(ctx)
	return &emergency, nil
}

func (r *emergencyRepository) find(ctx context.Context, filter bson.M) ([]*models.Emergency, error) {
	cursor, err := r.collection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to find emergencies: %w", err)
	}
	defer cursor.Close(ctx)

	var emergencies []*models.Emergency
	for cursor.Next(ctx) {
		var emergency models.Emergency
		if err := cursor.Decode(&emergency); err != nil {
			return nil, fmt.Errorf("failed to decode emergency: %w", err)
		}
		if !emergency.Status.IsValid() {
			return nil, fmt.Errorf("emergency %s has unknown status %q", emergency.ID.Hex(), emergency.Status)
		}
		emergencies = append(emergencies, &emergency)
	}

	return emergencies, nil
}

// Cache operations. The pending list is hot (every on-duty driver polls it),
// so a short TTL takes most of the read load off the collection.
func (r *emergencyRepository) cachePending(ctx context.Context, emergencies []*models.Emergency) {
	if r.cache != nil {
		r.cache.Set(ctx, pendingCacheKey, emergencies, utils.PendingListCacheTTL)
	}
}

func (r *emergencyRepository) pendingFromCache(ctx context.Context) []*models.Emergency {
	if r.cache == nil {
		return nil
	}

	var emergencies []*models.Emergency
	if err := r.cache.Get(ctx, pendingCacheKey, &emergencies); err != nil {
		return nil
	}
	return emergencies
}

func (r *emergencyRepository) invalidatePendingCache(ctx context.Context) {
	if r.cache != nil {
		r.cache.Delete(ctx, pendingCacheKey)
	}
}
