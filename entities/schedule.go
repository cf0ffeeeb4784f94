package entities

import "time"

// ScheduleRule says "do Activity DaysAfterSowing days after CropName is sown".
// Rules are listed in insertion order (ID ascending).
type ScheduleRule struct {
	ID              uint   `gorm:"primaryKey" json:"id"`
	CropName        string `gorm:"index;not null" json:"crop_name"`
	Activity        string `gorm:"not null" json:"activity"`
	DaysAfterSowing int    `gorm:"not null" json:"days_after_sowing"`
}

func (ScheduleRule) TableName() string { return "crop_schedules" }

// CropEvent records the latest sowing date of a crop for one farmer.
type CropEvent struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	FarmerPhone string `gorm:"uniqueIndex:idx_crop_events_farmer_crop;not null" json:"farmer_phone"`
	Crop        string `gorm:"uniqueIndex:idx_crop_events_farmer_crop;not null" json:"crop"`
	SowingDate  string `gorm:"not null" json:"sowing_date"` // YYYY-MM-DD
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
