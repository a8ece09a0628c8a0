package messages

import (
	"errors"
	"time"
)

var (
	ErrNotFound          = errors.New("message not found")
	QueryTimeoutDuration = time.Second * 5
)

// Message is a private note from one user to another.
type Message struct {
	ID               int64     `json:"id"`
	Title            string    `json:"title"`
	Content          string    `json:"content"`
	AuthorUserName   string    `json:"author_user_name"`
	ReceiverUserName string    `json:"receiver_user_name"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func (m Message) AuthorName() string { return m.AuthorUserName }
