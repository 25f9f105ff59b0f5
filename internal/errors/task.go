package errors

import "net/http"

var ErrTaskIDRequired = &Exception{
	Message:    "task id is required",
	StatusCode: http.StatusBadRequest,
}

var ErrTaskNotFound = &Exception{
	Message:    "task not found",
	StatusCode: http.StatusNotFound,
}

var ErrTaskNotEditable = &Exception{
	Message:    "task can only be changed before a sitter is engaged",
	StatusCode: http.StatusBadRequest,
}

var ErrTaskClosed = &Exception{
	Message:    "task is not open for applications",
	StatusCode: http.StatusBadRequest,
}

var ErrPetNotFound = &Exception{
	Message:    "pet not found",
	StatusCode: http.StatusNotFound,
}

var ErrSitterNotFound = &Exception{
	Message:    "sitter profile not found",
	StatusCode: http.StatusNotFound,
}

var ErrSitterExists = &Exception{
	Message:    "sitter profile already exists",
	StatusCode: http.StatusConflict,
}
