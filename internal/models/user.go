package model

import "time"

type User struct {
	ID                string     `gorm:"primaryKey;size:36" json:"id"`
	Email             string     `gorm:"uniqueIndex;not null" json:"email"`
	Name              string     `gorm:"not null" json:"name"`
	PasswordHash      string     `gorm:"not null" json:"-"`
	PasswordChangedAt *time.Time `json:"-"`
	AverageRating     float64    `gorm:"not null;default:0" json:"average_rating"`
	TotalReviews      int        `gorm:"not null;default:0" json:"total_reviews"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}
