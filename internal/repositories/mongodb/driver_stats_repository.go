package mongodb

import (
	"context"
	"fmt"
	"time"

	"swiftaid/internal/models"
	"swiftaid/internal/repositories/interfaces"
	"swiftaid/internal/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type driverStatsRepository struct {
	collection *mongo.Collection
}

func NewDriverStatsRepository(db *mongo.Database) interfaces.DriverStatsRepository {
	return &driverStatsRepository{
		collection: db.Collection("driver_stats"),
	}
}

func (r *driverStatsRepository) Create(ctx context.Context, stats *models.DriverStats) error {
	stats.CreatedAt = time.Now()
	stats.UpdatedAt = stats.CreatedAt
	if stats.EmergencyTypes == nil {
		stats.EmergencyTypes = make(map[string]int)
	}

	_, err := r.collection.InsertOne(ctx, stats)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return utils.ErrStatsExist
		}
		return fmt.Errorf("failed to create driver stats: %w", err)
	}

	return nil
}

func (r *driverStatsRepository) Get(ctx context.Context, driverID string) (*models.DriverStats, error) {
	var stats models.DriverStats
	err := r.collection.FindOne(ctx, bson.M{"_id": driverID}).Decode(&stats)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, utils.ErrStatsNotFound
		}
		return nil, fmt.Errorf("failed to get driver stats: %w", err)
	}

	return &stats, nil
}

func (r *driverStatsRepository) IncrementCompletion(ctx context.Context, driverID, emergencyType string, distanceKM float64) error {
	if emergencyType == "" {
		emergencyType = "Other"
	}

	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": driverID},
		bson.M{
			"$inc": bson.M{
				"total_completed":                  1,
				"completed_today":                  1,
				"completed_this_week":              1,
				"emergency_types." + emergencyType: 1,
				"total_distance":                   distanceKM,
			},
			"$set": bson.M{"updated_at": time.Now()},
		},
	)
	if err != nil {
		return fmt.Errorf("failed to increment driver stats: %w", err)
	}

	return nil
}
