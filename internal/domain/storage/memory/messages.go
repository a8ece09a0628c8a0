package memory

import (
	"context"
	"sort"

	"trustboard/internal/domain/messages"
)

type messageStore struct{ s *scope }

func (m *messageStore) Create(ctx context.Context, in *messages.Message) error {
	b, unlock, err := m.s.lock(ctx)
	if err != nil {
		return err
	}
	defer unlock()

	now := b.now()
	in.ID = b.nextID()
	in.CreatedAt = now
	in.UpdatedAt = now
	b.st.messages[in.ID] = *in
	return nil
}

func (m *messageStore) GetByID(ctx context.Context, id int64) (*messages.Message, error) {
	b, unlock, err := m.s.lock(ctx)
	if err != nil {
		return nil, err
	}
	defer unlock()

	msg, ok := b.st.messages[id]
	if !ok {
		return nil, messages.ErrNotFound
	}
	return &msg, nil
}

func (m *messageStore) ListForReceiver(ctx context.Context, receiver string) ([]messages.Message, error) {
	b, unlock, err := m.s.lock(ctx)
	if err != nil {
		return nil, err
	}
	defer unlock()

	out := []messages.Message{}
	for _, msg := range b.st.messages {
		if msg.ReceiverUserName == receiver {
			out = append(out, msg)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}
