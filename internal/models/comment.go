package model

import "time"

type Comment struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	TaskID    string    `gorm:"size:36;index;not null" json:"task_id"`
	UserID    string    `gorm:"size:36;not null" json:"user_id"`
	ParentID  *string   `gorm:"size:36;index" json:"parent_id"`
	Content   string    `gorm:"not null" json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
