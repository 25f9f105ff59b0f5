package errors

import "net/http"

var ErrCommentNotFound = &Exception{
	Message:    "comment not found",
	StatusCode: http.StatusNotFound,
}

var ErrNestedReply = &Exception{
	Message:    "replies can only be posted on top-level comments",
	StatusCode: http.StatusBadRequest,
}

var ErrCommentContentRequired = &Exception{
	Message:    "content is required",
	StatusCode: http.StatusBadRequest,
}
