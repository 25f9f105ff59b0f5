package model

import "github.com/google/uuid"

// NewID returns a UUIDv7. Ids sort in creation order, which the comment
// cursor relies on.
func NewID() string {
	return uuid.Must(uuid.NewV7()).String()
}
