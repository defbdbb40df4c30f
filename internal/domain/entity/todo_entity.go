package entity

import "time"

// Todo is a task owned by exactly one User. UserID is fixed at creation.
type Todo struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Description   *string   `json:"description"`
	Completed     bool      `json:"completed"`
	UserID        string    `json:"userId"`
	AttachmentURL *string   `json:"attachmentUrl,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// OwnedBy reports whether userID owns the todo.
func (t *Todo) OwnedBy(userID string) bool {
	return t.UserID == userID
}
