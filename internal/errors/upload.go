package errors

import "net/http"

var ErrFileRequired = &Exception{
	Message:    "file is required",
	StatusCode: http.StatusBadRequest,
}

var ErrUnsupportedMedia = &Exception{
	Message:    "only image uploads are accepted",
	StatusCode: http.StatusUnsupportedMediaType,
}

var ErrFileTooLarge = &Exception{
	Message:    "file exceeds the upload limit",
	StatusCode: http.StatusRequestEntityTooLarge,
}
