package models

import (
	"time"
)

// LiveLocation is a driver's latest reported position, keyed by driver ID and
// overwritten on every update. No history is retained.
type LiveLocation struct {
	DriverID  string    `json:"driverId" bson:"_id"`
	Latitude  float64   `json:"latitude" bson:"latitude"`
	Longitude float64   `json:"longitude" bson:"longitude"`
	Timestamp time.Time `json:"timestamp" bson:"timestamp"`
}
