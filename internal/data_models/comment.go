package dto

type CommentRequest struct {
	TaskID    string  `param:"task_id"`
	CommentID string  `param:"comment_id"`
	ParentID  *string `json:"parent_id"`
	Content   string  `json:"content"`
}

type CommentListQuery struct {
	TaskID          string `param:"task_id"`
	CommentID       string `param:"comment_id"`
	ContinueAfterID string `query:"continueAfterId"`
	PageSize        int    `query:"pageSize"`
}
