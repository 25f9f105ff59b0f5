package model

import (
	"time"

	"pet-sitter.com/pet-sitter/internal/constants"
)

type Order struct {
	ID               string                `gorm:"primaryKey;size:36" json:"id"`
	TaskID           string                `gorm:"size:36;index;not null" json:"task_id"`
	PetOwnerUserID   string                `gorm:"size:36;index;not null" json:"pet_owner_user_id"`
	SitterUserID     string                `gorm:"size:36;index;not null" json:"sitter_user_id"`
	Status           constants.OrderStatus `gorm:"type:varchar(20);index;not null" json:"status"`
	Note             string                `json:"note"`
	ReportContent    string                `json:"report_content,omitempty"`
	ReportImages     StringList            `gorm:"type:text" json:"report_images,omitempty"`
	ReportCreatedAt  *time.Time            `json:"report_created_at,omitempty"`
	ReportUpdatedAt  *time.Time            `json:"report_updated_at,omitempty"`
	PaymentSessionID string                `json:"-"`
	PaidAt           *time.Time            `json:"paid_at,omitempty"`
	CreatedAt        time.Time             `json:"created_at"`
	UpdatedAt        time.Time             `json:"updated_at"`

	Task *Task `gorm:"foreignKey:TaskID" json:"task,omitempty"`
}
