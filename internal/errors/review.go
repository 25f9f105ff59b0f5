package errors

import "net/http"

var ErrReviewExists = &Exception{
	Message:    "review already exists",
	StatusCode: http.StatusBadRequest,
}

var ErrReviewNotFound = &Exception{
	Message:    "review not found",
	StatusCode: http.StatusNotFound,
}

var ErrReviewNotAllowed = &Exception{
	Message:    "task must be completed before it can be reviewed",
	StatusCode: http.StatusBadRequest,
}

var ErrInvalidRating = &Exception{
	Message:    "rating must be between 1 and 5",
	StatusCode: http.StatusBadRequest,
}
