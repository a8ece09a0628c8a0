package replies

import (
	"errors"
	"time"
)

var (
	ErrNotFound          = errors.New("reply not found")
	ErrAnswerNotFound    = errors.New("answer not found")
	QueryTimeoutDuration = time.Second * 5
)

type Reply struct {
	ID             int64     `json:"id"`
	AnswerID       int64     `json:"answer_id"`
	Content        string    `json:"content"`
	AuthorUserName string    `json:"author_user_name"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (r Reply) AuthorName() string { return r.AuthorUserName }
