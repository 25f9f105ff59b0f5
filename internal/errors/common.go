package errors

import "net/http"

var ErrInvalidJSON = &Exception{
	Message:    "invalid JSON payload",
	StatusCode: http.StatusBadRequest,
}

var ErrInvalidLimit = &Exception{
	Message:    "limit must be positive",
	StatusCode: http.StatusBadRequest,
}

var ErrInvalidPage = &Exception{
	Message:    "page must be positive",
	StatusCode: http.StatusBadRequest,
}

var ErrInvalidPageSize = &Exception{
	Message:    "pageSize must be between 1 and 100",
	StatusCode: http.StatusBadRequest,
}

var ErrOptimisticLock = &Exception{
	Message:    "optimistic locking conflict",
	StatusCode: http.StatusConflict,
}

var ErrForbidden = &Exception{
	Message:    "forbidden",
	StatusCode: http.StatusForbidden,
}

var ErrInternal = &Exception{
	Message:    "internal server error",
	StatusCode: http.StatusInternalServerError,
}
