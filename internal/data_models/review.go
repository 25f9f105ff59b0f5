package dto

type ReviewRequest struct {
	TaskID  string  `param:"task_id"`
	Rating  float64 `json:"rating"`
	Content string  `json:"content"`
}
