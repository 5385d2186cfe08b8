package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"swiftaid/internal/config"
	"swiftaid/internal/models"
	"swiftaid/internal/repositories/mongodb"
	"swiftaid/pkg/database"

	"github.com/joho/godotenv"
)

// Seeds a handful of demo accounts and an open emergency so a fresh
// environment has something to dispatch.
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	db, err := database.NewMongoDB(&database.Config{
		URI:            cfg.Database.URI,
		Database:       cfg.Database.Database,
		MaxPoolSize:    cfg.Database.MaxPoolSize,
		MinPoolSize:    cfg.Database.MinPoolSize,
		ConnectTimeout: cfg.Database.ConnectTimeout,
		SocketTimeout:  cfg.Database.SocketTimeout,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to connect: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	userRepo := mongodb.NewUserRepository(db.Database, nil)
	emergencyRepo := mongodb.NewEmergencyRepository(db.Database, nil)
	locationRepo := mongodb.NewLocationRepository(db.Database, nil)
	statsRepo := mongodb.NewDriverStatsRepository(db.Database)

	now := time.Now()
	users := []*models.User{
		{ID: "seed-admin", Email: "admin@swiftaid.dev", Name: "Dispatch Admin", Role: models.RoleAdmin, IsActive: true, CreatedAt: now, UpdatedAt: now},
		{ID: "seed-driver-1", Email: "driver1@swiftaid.dev", Name: "Asha Verma", Phone: "+15550100001", Role: models.RoleDriver, IsActive: true, IsOnDuty: true, License: "DL-4821", Vehicle: "Ambulance KA-01-7733", CreatedAt: now, UpdatedAt: now},
		{ID: "seed-driver-2", Email: "driver2@swiftaid.dev", Name: "Miguel Santos", Phone: "+15550100002", Role: models.RoleDriver, IsActive: true, License: "DL-9914", Vehicle: "Ambulance KA-02-1180", CreatedAt: now, UpdatedAt: now},
		{ID: "seed-patient-1", Email: "patient1@swiftaid.dev", Name: "Rohan Iyer", Phone: "+15550200001", Role: models.RolePatient, IsActive: true, CreatedAt: now, UpdatedAt: now},
	}
	for _, u := range users {
		if err := userRepo.Create(ctx, u); err != nil {
			fmt.Printf("skip user %s: %v\n", u.ID, err)
		}
	}

	for _, id := range []string{"seed-driver-1", "seed-driver-2"} {
		if err := statsRepo.Create(ctx, models.NewDriverStats(id)); err != nil {
			fmt.Printf("skip stats %s: %v\n", id, err)
		}
	}

	if err := locationRepo.Set(ctx, &models.LiveLocation{
		DriverID:  "seed-driver-1",
		Latitude:  12.9716,
		Longitude: 77.5946,
		Timestamp: now,
	}); err != nil {
		fmt.Printf("skip location: %v\n", err)
	}

	lat, lng := 12.9611, 77.6387
	emergency := &models.Emergency{
		PatientID:      "seed-patient-1",
		PatientName:    "Rohan Iyer",
		PatientAge:     42,
		PatientContact: "+15550200001",
		EmergencyType:  "Cardiac",
		Severity:       models.SeverityCritical,
		Priority:       models.PriorityCritical,
		Description:    "Chest pain, difficulty breathing",
		Location: models.EmergencyLocation{
			Latitude:  &lat,
			Longitude: &lng,
			Address:   "100 Feet Road, Indiranagar",
			Landmark:  "Opposite metro station",
		},
	}
	if err := emergencyRepo.Create(ctx, emergency); err != nil {
		fmt.Printf("skip emergency: %v\n", err)
	} else {
		fmt.Printf("seeded emergency %s\n", emergency.ID.Hex())
	}

	fmt.Println("seed complete")
}
