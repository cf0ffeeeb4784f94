package entities

import "time"

// Farmer is keyed by phone for login; email is optional but unique when set.
type Farmer struct {
	ID         uint     `gorm:"primaryKey" json:"id"`
	Name       string   `gorm:"not null" json:"name"`
	Phone      string   `gorm:"uniqueIndex;not null" json:"phone"`
	Email      *string  `gorm:"uniqueIndex" json:"email,omitempty"`
	Location   string   `gorm:"not null" json:"location"`
	Crop       string   `gorm:"not null" json:"crop"`
	LandSize   *float64 `json:"land_size,omitempty"`
	SoilType   string   `json:"soil_type"`
	Irrigation string   `json:"irrigation"`
	CreatedAt  time.Time
}

type Session struct {
	Token       string    `gorm:"primaryKey" json:"-"`
	FarmerPhone string    `gorm:"index;not null" json:"farmer_phone"`
	ExpiresAt   time.Time `gorm:"index" json:"expires_at"`
	CreatedAt   time.Time
}
