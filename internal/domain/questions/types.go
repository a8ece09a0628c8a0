package questions

import (
	"errors"
	"time"
)

var (
	ErrNotFound          = errors.New("question not found")
	QueryTimeoutDuration = time.Second * 5
)

type Question struct {
	ID             int64     `json:"id"`
	Title          string    `json:"title"`
	Content        string    `json:"content"`
	AuthorUserName string    `json:"author_user_name"`
	Category       *string   `json:"category,omitempty"`
	IsAnswered     bool      `json:"is_answered"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (q Question) AuthorName() string { return q.AuthorUserName }

// UpdateQuestionRequest carries the editable fields. Nil means unchanged.
// A non-nil empty Category clears it.
type UpdateQuestionRequest struct {
	Title    *string `json:"title,omitempty"`
	Content  *string `json:"content,omitempty"`
	Category *string `json:"category,omitempty"`
}
