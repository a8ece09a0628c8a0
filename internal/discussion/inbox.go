package discussion

import (
	"context"

	"trustboard/internal/domain/messages"
	"trustboard/internal/domain/storage"

	"go.uber.org/zap"
)

// Inbox handles private messages between users.
type Inbox struct {
	store  messages.Store
	logger *zap.SugaredLogger
}

func NewInbox(store storage.Backend, logger *zap.SugaredLogger) *Inbox {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Inbox{store: store.Repositories().Messages, logger: logger}
}

func (i *Inbox) Send(ctx context.Context, in NewMessage) (*messages.Message, error) {
	if err := checkStruct(in); err != nil {
		return nil, err
	}
	m := &messages.Message{
		Title:            in.Title,
		Content:          in.Content,
		AuthorUserName:   in.Author,
		ReceiverUserName: in.Receiver,
	}
	if err := i.store.Create(ctx, m); err != nil {
		return nil, classify(err)
	}
	i.logger.Infow("message sent", "message_id", m.ID, "from", m.AuthorUserName, "to", m.ReceiverUserName)
	return m, nil
}

// List returns receiver's messages, newest first.
func (i *Inbox) List(ctx context.Context, receiver string) ([]messages.Message, error) {
	if blank(receiver) {
		return []messages.Message{}, nil
	}
	list, err := i.store.ListForReceiver(ctx, receiver)
	if err != nil {
		return nil, classify(err)
	}
	return list, nil
}

// Get returns a message visible to actor, who must be its author or receiver.
func (i *Inbox) Get(ctx context.Context, actor Actor, id int64) (*messages.Message, error) {
	m, err := i.store.GetByID(ctx, id)
	if err != nil {
		return nil, classify(err)
	}
	if actor.UserName == "" || (actor.UserName != m.AuthorUserName && actor.UserName != m.ReceiverUserName) {
		return nil, unauthorized("%s may not read message %d", actor.UserName, id)
	}
	return m, nil
}
