package model

import "time"

// SentinelEmail is the address the legacy lot used for its "no owner" placeholder row.
// Ownership is now a nullable reference, but the address stays reserved so no real
// account can take it over.
const SentinelEmail = "empty@admin.com"

// User represents a registered driver.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name" gorm:"size:80;not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:80;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	VehiclePlate string    `json:"vehicle_plate" gorm:"size:16"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relations
	Spots []Spot `json:"-" gorm:"foreignKey:UserID"`
}
