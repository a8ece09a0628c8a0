package discussion

import (
	"context"
	"testing"

	"trustboard/internal/domain/storage/memory"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInbox(t *testing.T) {
	inbox := NewInbox(memory.New(), nil)
	ctx := context.Background()

	first, err := inbox.Send(ctx, NewMessage{Title: "hi", Content: "about your answer", Author: "alice", Receiver: "bob"})
	require.NoError(t, err)
	second, err := inbox.Send(ctx, NewMessage{Title: "again", Content: "follow-up", Author: "carol", Receiver: "bob"})
	require.NoError(t, err)

	list, err := inbox.List(ctx, "bob")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, first.ID, list[1].ID)

	empty, err := inbox.List(ctx, "alice")
	require.NoError(t, err)
	assert.Empty(t, empty)

	got, err := inbox.Get(ctx, alice, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "about your answer", got.Content)

	_, err = inbox.Get(ctx, carol, first.ID)
	assert.True(t, errors.Is(err, ErrUnauthorized))

	_, err = inbox.Get(ctx, bob, 999)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestInboxRejectsMessageToSelf(t *testing.T) {
	inbox := NewInbox(memory.New(), nil)

	_, err := inbox.Send(context.Background(), NewMessage{Title: "t", Content: "c", Author: "alice", Receiver: "alice"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidInput))
}
