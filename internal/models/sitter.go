package model

import "time"

// Sitter is the sitter profile of a user. Its rating aggregates the owner
// halves of every review written about this sitter.
type Sitter struct {
	ID            string    `gorm:"primaryKey;size:36" json:"id"`
	UserID        string    `gorm:"size:36;uniqueIndex;not null" json:"user_id"`
	Bio           string    `json:"bio"`
	ServiceTypes  string    `json:"service_types"`
	HourlyRate    int64     `json:"hourly_rate"`
	AverageRating float64   `gorm:"not null;default:0" json:"average_rating"`
	TotalReviews  int       `gorm:"not null;default:0" json:"total_reviews"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
