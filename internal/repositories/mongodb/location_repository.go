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
	"go.mongodb.org/mongo-driver/mongo/options"
)

type locationRepository struct {
	collection *mongo.Collection
	cache      CacheService
}

func NewLocationRepository(db *mongo.Database, cache CacheService) interfaces.LocationRepository {
	return &locationRepository{
		collection: db.Collection("live_locations"),
		cache:      cache,
	}
}

func (r *locationRepository) Set(ctx context.Context, location *models.LiveLocation) error {
	if location.Timestamp.IsZero() {
		location.Timestamp = time.Now()
	}

	// One document per driver, replaced wholesale on every report.
	_, err := r.collection.ReplaceOne(
		ctx,
		bson.M{"_id": location.DriverID},
		location,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("failed to set live location: %w", err)
	}

	r.cacheLocation(ctx, location)
	return nil
}

func (r *locationRepository) Get(ctx context.Context, driverID string) (*models.LiveLocation, error) {
	if location := r.locationFromCache(ctx, driverID); location != nil {
		return location, nil
	}

	var location models.LiveLocation
	err := r.collection.FindOne(ctx, bson.M{"_id": driverID}).Decode(&location)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, utils.ErrLocationNotFound
		}
		return nil, fmt.Errorf("failed to get live location: %w", err)
	}

	r.cacheLocation(ctx, &location)
	return &location, nil
}

func (r *locationRepository) GetAll(ctx context.Context) ([]*models.LiveLocation, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to find live locations: %w", err)
	}
	defer cursor.Close(ctx)

	var locations []*models.LiveLocation
	for cursor.Next(ctx) {
		var location models.LiveLocation
		if err := cursor.Decode(&location); err != nil {
			return nil, fmt.Errorf("failed to decode live location: %w", err)
		}
		locations = append(locations, &location)
	}

	return locations, nil
}

func (r *locationRepository) cacheLocation(ctx context.Context, location *models.LiveLocation) {
	if r.cache != nil {
		r.cache.Set(ctx, "location:"+location.DriverID, location, utils.LiveLocationCacheTTL)
	}
}

func (r *locationRepository) locationFromCache(ctx context.Context, driverID string) *models.LiveLocation {
	if r.cache == nil {
		return nil
	}

	var location models.LiveLocation
	if err := r.cache.Get(ctx, "location:"+driverID, &location); err != nil {
		return nil
	}
	return &location
}
