package entities

import "time"

const (
	ActivityDiagnosis = "Diagnosis"
	ActivityQuestion  = "Question"
)

// ActivityLogEntry is append-only history of diagnoses and answered questions.
type ActivityLogEntry struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	FarmerPhone  string    `gorm:"index;not null" json:"farmer_phone"`
	ActivityType string    `gorm:"not null" json:"activity_type"`
	Content      string    `gorm:"not null" json:"content"`
	Response     string    `json:"response"`
	Timestamp    time.Time `gorm:"autoCreateTime" json:"timestamp"`
}

func (ActivityLogEntry) TableName() string { return "activities" }
