package validators

import (
	"net/mail"

	dto "pet-sitter.com/pet-sitter/internal/data_models"
	apperrors "pet-sitter.com/pet-sitter/internal/errors"
)

const minPasswordLength = 8

var Register = []Stage[dto.RegisterRequest]{
	Required("email", func(r *dto.RegisterRequest) string { return r.Email }),
	Required("name", func(r *dto.RegisterRequest) string { return r.Name }),
	MaxLength("name", 100, func(r *dto.RegisterRequest) string { return r.Name }),
	func(r *dto.RegisterRequest) error { return validateEmail(r.Email) },
	func(r *dto.RegisterRequest) error { return validatePassword(r.Password) },
}

var Login = []Stage[dto.LoginRequest]{
	Required("email", func(r *dto.LoginRequest) string { return r.Email }),
	Required("password", func(r *dto.LoginRequest) string { return r.Password }),
}

var ChangePassword = []Stage[dto.ChangePasswordRequest]{
	Required("old_password", func(r *dto.ChangePasswordRequest) string { return r.OldPassword }),
	func(r *dto.ChangePasswordRequest) error { return validatePassword(r.NewPassword) },
}

var UpdateProfile = []Stage[dto.UpdateProfileRequest]{
	Required("name", func(r *dto.UpdateProfileRequest) string { return r.Name }),
	MaxLength("name", 100, func(r *dto.UpdateProfileRequest) string { return r.Name }),
}

func validateEmail(email string) error {
	if _, err := mail.ParseAddress(email); err != nil {
		return apperrors.BadRequest("email is invalid")
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < minPasswordLength {
		return apperrors.BadRequest("password must be at least 8 characters")
	}
	return nil
}
