package model

import "time"

// Review holds two halves written independently: the pet owner rating the
// sitter, and the sitter rating the pet owner.
type Review struct {
	ID             string `gorm:"primaryKey;size:36" json:"id"`
	TaskID         string `gorm:"size:36;uniqueIndex;not null" json:"task_id"`
	OrderID        string `gorm:"size:36;not null" json:"order_id"`
	PetOwnerUserID string `gorm:"size:36;index;not null" json:"pet_owner_user_id"`
	SitterUserID   string `gorm:"size:36;index;not null" json:"sitter_user_id"`

	PetOwnerRating    *float64   `json:"pet_owner_rating"`
	PetOwnerContent   string     `json:"pet_owner_content"`
	PetOwnerCreatedAt *time.Time `json:"pet_owner_created_at"`
	PetOwnerUpdatedAt *time.Time `json:"pet_owner_updated_at"`

	SitterRating    *float64   `json:"sitter_rating"`
	SitterContent   string     `json:"sitter_content"`
	SitterCreatedAt *time.Time `json:"sitter_created_at"`
	SitterUpdatedAt *time.Time `json:"sitter_updated_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
