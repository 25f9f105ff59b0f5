package model

import "time"

type Pet struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	OwnerUserID string    `gorm:"size:36;index;not null" json:"owner_user_id"`
	Name        string    `gorm:"not null" json:"name"`
	Species     string    `gorm:"not null" json:"species"`
	Breed       string    `json:"breed,omitempty"`
	Age         int       `json:"age"`
	Notes       string    `json:"notes,omitempty"`
	ImageURL    string    `json:"image_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
