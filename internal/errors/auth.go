package errors

import "net/http"

var ErrUnauthorized = &Exception{
	Message:    "authentication required",
	StatusCode: http.StatusUnauthorized,
}

var ErrInvalidToken = &Exception{
	Message:    "invalid or expired token",
	StatusCode: http.StatusUnauthorized,
}

var ErrStaleToken = &Exception{
	Message:    "token issued before last password change",
	StatusCode: http.StatusUnauthorized,
}

var ErrInvalidCredentials = &Exception{
	Message:    "invalid credentials",
	StatusCode: http.StatusUnauthorized,
}

var ErrEmailTaken = &Exception{
	Message:    "email already registered",
	StatusCode: http.StatusConflict,
}

var ErrUserNotFound = &Exception{
	Message:    "user not found",
	StatusCode: http.StatusNotFound,
}
