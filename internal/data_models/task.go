package dto

import (
	"time"

	"pet-sitter.com/pet-sitter/internal/constants"
)

type TaskRequest struct {
	TaskID      string                `param:"task_id"`
	PetID       *string               `json:"pet_id"`
	Title       string                `json:"title"`
	Description string                `json:"description"`
	ServiceType constants.ServiceType `json:"service_type"`
	Price       int64                 `json:"price"`
	StartAt     time.Time             `json:"start_at"`
	EndAt       time.Time             `json:"end_at"`
}

type TaskListQuery struct {
	ServiceType constants.ServiceType `query:"service_type"`
	Limit       int                   `query:"limit"`
	Page        int                   `query:"page"`
}
