package answers

import (
	"errors"
	"time"
)

var (
	ErrNotFound          = errors.New("answer not found")
	ErrQuestionNotFound  = errors.New("question not found")
	QueryTimeoutDuration = time.Second * 5
)

type Answer struct {
	ID             int64     `json:"id"`
	QuestionID     int64     `json:"question_id"`
	Content        string    `json:"content"`
	AuthorUserName string    `json:"author_user_name"`
	IsAccepted     bool      `json:"is_accepted"`
	IsCorrect      bool      `json:"is_correct"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (a Answer) AuthorName() string { return a.AuthorUserName }

// Flag names a boolean column that is mutually exclusive per question.
type Flag string

const (
	FlagAccepted Flag = "is_accepted"
	FlagCorrect  Flag = "is_correct"
)

func (f Flag) valid() bool {
	return f == FlagAccepted || f == FlagCorrect
}
