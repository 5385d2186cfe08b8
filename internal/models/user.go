package models

import (
	"time"
)

type UserRole string

const (
	RolePatient UserRole = "patient"
	RoleDriver  UserRole = "driver"
	RoleAdmin   UserRole = "admin"
)

// User is the profile document for patients, drivers and admins alike. The ID
// is the auth subject (token uid), which is also the document key, so profile
// lookups never need a secondary index.
type User struct {
	ID        string    `json:"id" bson:"_id"`
	Email     string    `json:"email" bson:"email" validate:"required,email"`
	Name      string    `json:"name" bson:"name"`
	Phone     string    `json:"phone,omitempty" bson:"phone,omitempty"`
	Role      UserRole  `json:"role" bson:"role" validate:"required"`
	IsActive  bool      `json:"isActive" bson:"is_active"`
	IsOnDuty  bool      `json:"isOnDuty" bson:"is_on_duty"`
	License   string    `json:"license,omitempty" bson:"license,omitempty"`
	Vehicle   string    `json:"vehicle,omitempty" bson:"vehicle,omitempty"`
	CreatedAt time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updated_at"`
}

// DriverProfile pairs a driver's profile with their counter document for the
// combined profile endpoint.
type DriverProfile struct {
	User  *User        `json:"user"`
	Stats *DriverStats `json:"stats"`
}

func (r UserRole) IsValid() bool {
	return r == RolePatient || r == RoleDriver || r == RoleAdmin
}

// DisplayName falls back to the email when the profile has no name yet,
// matching what gets snapshotted onto emergency records.
func (u *User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	return u.Email
}
