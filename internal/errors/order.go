package errors

import "net/http"

var ErrOrderNotFound = &Exception{
	Message:    "order not found",
	StatusCode: http.StatusNotFound,
}

var ErrOrderExists = &Exception{
	Message:    "a live order already exists for this task",
	StatusCode: http.StatusConflict,
}

var ErrOwnTask = &Exception{
	Message:    "cannot apply to your own task",
	StatusCode: http.StatusBadRequest,
}

var ErrInvalidTransition = &Exception{
	Message:    "order cannot make this transition from its current status",
	StatusCode: http.StatusBadRequest,
}

var ErrPaymentIncomplete = &Exception{
	Message:    "payment has not been completed",
	StatusCode: http.StatusBadRequest,
}

var ErrPaymentSessionRequired = &Exception{
	Message:    "session_id is required",
	StatusCode: http.StatusBadRequest,
}
