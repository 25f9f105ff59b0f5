package validators

import (
	dto "pet-sitter.com/pet-sitter/internal/data_models"
	apperrors "pet-sitter.com/pet-sitter/internal/errors"
)

var Task = []Stage[dto.TaskRequest]{
	Required("title", func(r *dto.TaskRequest) string { return r.Title }),
	MaxLength("title", 200, func(r *dto.TaskRequest) string { return r.Title }),
	func(r *dto.TaskRequest) error {
		if !r.ServiceType.Valid() {
			return apperrors.BadRequest("service_type is invalid")
		}
		if r.Price < 0 {
			return apperrors.BadRequest("price must not be negative")
		}
		if r.StartAt.IsZero() || r.EndAt.IsZero() {
			return apperrors.BadRequest("start_at and end_at are required")
		}
		if !r.EndAt.After(r.StartAt) {
			return apperrors.BadRequest("end_at must be after start_at")
		}
		return nil
	},
}

var TaskList = []Stage[dto.TaskListQuery]{
	func(r *dto.TaskListQuery) error {
		if r.ServiceType != "" && !r.ServiceType.Valid() {
			return apperrors.BadRequest("service_type is invalid")
		}
		return normalizePage(&r.Page, &r.Limit)
	},
}

var Sitter = []Stage[dto.SitterRequest]{
	MaxLength("bio", 2000, func(r *dto.SitterRequest) string { return r.Bio }),
	func(r *dto.SitterRequest) error {
		if r.HourlyRate < 0 {
			return apperrors.BadRequest("hourly_rate must not be negative")
		}
		return nil
	},
}

var Pet = []Stage[dto.PetRequest]{
	Required("name", func(r *dto.PetRequest) string { return r.Name }),
	Required("species", func(r *dto.PetRequest) string { return r.Species }),
	func(r *dto.PetRequest) error {
		if r.Age < 0 {
			return apperrors.BadRequest("age must not be negative")
		}
		return nil
	},
}
