package model

import (
	"time"

	"pet-sitter.com/pet-sitter/internal/constants"
)

type Task struct {
	ID          string                `gorm:"primaryKey;size:36" json:"id"`
	OwnerUserID string                `gorm:"size:36;index;not null" json:"owner_user_id"`
	PetID       *string               `gorm:"size:36" json:"pet_id,omitempty"`
	Title       string                `gorm:"not null" json:"title"`
	Description string                `json:"description"`
	ServiceType constants.ServiceType `gorm:"type:varchar(20);not null" json:"service_type"`
	Price       int64                 `gorm:"not null;default:0" json:"price"`
	Status      constants.TaskStatus  `gorm:"type:varchar(20);index" json:"status"`
	Public      constants.TaskPublic  `gorm:"type:varchar(20);index;not null" json:"public"`
	OrderID     *string               `gorm:"size:36" json:"order_id"`
	ReviewID    *string               `gorm:"size:36" json:"review_id"`
	StartAt     time.Time             `json:"start_at"`
	EndAt       time.Time             `json:"end_at"`
	Version     uint                  `gorm:"not null;default:1" json:"version"`
	CreatedAt   time.Time             `json:"created_at"`
	UpdatedAt   time.Time             `json:"updated_at"`
}
