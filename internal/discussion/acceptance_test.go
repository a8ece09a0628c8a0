package discussion

import (
	"context"
	"math/rand"
	"sync"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggleAcceptedRoundTrip(t *testing.T) {
	b, _ := newTestBoard(t)
	ctx := context.Background()

	q1 := mustQuestion(t, b, "Title", "Body", "alice")
	a1 := mustAnswer(t, b, q1.ID, "ans1", "bob")

	got, err := b.ToggleAccepted(ctx, admin, a1.ID)
	require.NoError(t, err)
	assert.True(t, got.IsAccepted)
	assert.True(t, got.UpdatedAt.After(a1.UpdatedAt))

	q, err := b.GetQuestion(ctx, q1.ID)
	require.NoError(t, err)
	assert.True(t, q.IsAnswered)

	got, err = b.ToggleAccepted(ctx, admin, a1.ID)
	require.NoError(t, err)
	assert.False(t, got.IsAccepted)

	q, err = b.GetQuestion(ctx, q1.ID)
	require.NoError(t, err)
	assert.False(t, q.IsAnswered)
}

func TestToggleAcceptedIsExclusive(t *testing.T) {
	b, _ := newTestBoard(t)
	ctx := context.Background()

	q1 := mustQuestion(t, b, "Title", "Body", "alice")
	a1 := mustAnswer(t, b, q1.ID, "ans1", "bob")
	a2 := mustAnswer(t, b, q1.ID, "ans2", "carol")

	_, err := b.ToggleAccepted(ctx, admin, a1.ID)
	require.NoError(t, err)
	_, err = b.ToggleAccepted(ctx, admin, a2.ID)
	require.NoError(t, err)

	got1, err := b.GetAnswer(ctx, a1.ID)
	require.NoError(t, err)
	got2, err := b.GetAnswer(ctx, a2.ID)
	require.NoError(t, err)
	assert.False(t, got1.IsAccepted)
	assert.True(t, got2.IsAccepted)
	assertFlagInvariants(t, b, q1.ID)
}

func TestToggleAcceptedDoesNotLeakAcrossQuestions(t *testing.T) {
	b, _ := newTestBoard(t)
	ctx := context.Background()

	q1 := mustQuestion(t, b, "One", "Body", "alice")
	q2 := mustQuestion(t, b, "Two", "Body", "alice")
	a1 := mustAnswer(t, b, q1.ID, "ans1", "bob")
	a2 := mustAnswer(t, b, q2.ID, "ans2", "bob")

	_, err := b.ToggleAccepted(ctx, admin, a1.ID)
	require.NoError(t, err)
	_, err = b.ToggleAccepted(ctx, admin, a2.ID)
	require.NoError(t, err)

	got1, err := b.GetAnswer(ctx, a1.ID)
	require.NoError(t, err)
	assert.True(t, got1.IsAccepted)
	assertFlagInvariants(t, b, q1.ID)
	assertFlagInvariants(t, b, q2.ID)
}

func TestToggleAcceptedRequiresAuthority(t *testing.T) {
	b, _ := newTestBoard(t)
	ctx := context.Background()

	q1 := mustQuestion(t, b, "Title", "Body", "alice")
	a1 := mustAnswer(t, b, q1.ID, "ans1", "bob")

	_, err := b.ToggleAccepted(ctx, alice, a1.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnauthorized))

	got, err := b.GetAnswer(ctx, a1.ID)
	require.NoError(t, err)
	assert.False(t, got.IsAccepted)
}

func TestToggleAcceptedUnknownAnswer(t *testing.T) {
	b, _ := newTestBoard(t)

	_, err := b.ToggleAccepted(context.Background(), admin, 404)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestToggleCorrectIsAskerOnlyAndOrthogonal(t *testing.T) {
	b, _ := newTestBoard(t)
	ctx := context.Background()

	q1 := mustQuestion(t, b, "Title", "Body", "alice")
	a1 := mustAnswer(t, b, q1.ID, "ans1", "bob")
	a2 := mustAnswer(t, b, q1.ID, "ans2", "carol")

	_, err := b.ToggleCorrect(ctx, bob, a1.ID)
	assert.True(t, errors.Is(err, ErrUnauthorized))
	_, err = b.ToggleCorrect(ctx, admin, a1.ID)
	assert.True(t, errors.Is(err, ErrUnauthorized))

	_, err = b.ToggleAccepted(ctx, admin, a2.ID)
	require.NoError(t, err)

	got, err := b.ToggleCorrect(ctx, alice, a1.ID)
	require.NoError(t, err)
	assert.True(t, got.IsCorrect)
	assert.False(t, got.IsAccepted)

	got, err = b.ToggleCorrect(ctx, alice, a2.ID)
	require.NoError(t, err)
	assert.True(t, got.IsCorrect)
	assert.True(t, got.IsAccepted, "correct toggle must not touch acceptance")

	first, err := b.GetAnswer(ctx, a1.ID)
	require.NoError(t, err)
	assert.False(t, first.IsCorrect)

	// Un-marking correct leaves the answered status alone.
	_, err = b.ToggleCorrect(ctx, alice, a2.ID)
	require.NoError(t, err)
	q, err := b.GetQuestion(ctx, q1.ID)
	require.NoError(t, err)
	assert.True(t, q.IsAnswered)
	assertFlagInvariants(t, b, q1.ID)
}

func TestCorrectAloneNeverAnswersQuestion(t *testing.T) {
	b, _ := newTestBoard(t)
	ctx := context.Background()

	q1 := mustQuestion(t, b, "Title", "Body", "alice")
	a1 := mustAnswer(t, b, q1.ID, "ans1", "bob")

	_, err := b.ToggleCorrect(ctx, alice, a1.ID)
	require.NoError(t, err)

	q, err := b.GetQuestion(ctx, q1.ID)
	require.NoError(t, err)
	assert.False(t, q.IsAnswered)
}

func TestRandomToggleSequenceKeepsInvariants(t *testing.T) {
	b, _ := newTestBoard(t)
	ctx := context.Background()

	q1 := mustQuestion(t, b, "Title", "Body", "alice")
	ids := make([]int64, 0, 5)
	for i := 0; i < 5; i++ {
		ids = append(ids, mustAnswer(t, b, q1.ID, "answer", "bob").ID)
	}

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 200; i++ {
		id := ids[rng.Intn(len(ids))]
		if rng.Intn(2) == 0 {
			_, err := b.ToggleAccepted(ctx, admin, id)
			require.NoError(t, err)
		} else {
			_, err := b.ToggleCorrect(ctx, alice, id)
			require.NoError(t, err)
		}
		assertFlagInvariants(t, b, q1.ID)
	}
}

func TestConcurrentTogglesKeepOneAccepted(t *testing.T) {
	b, _ := newTestBoard(t)
	ctx := context.Background()

	q1 := mustQuestion(t, b, "Title", "Body", "alice")
	ids := make([]int64, 0, 8)
	for i := 0; i < 8; i++ {
		ids = append(ids, mustAnswer(t, b, q1.ID, "answer", "bob").ID)
	}

	var wg sync.WaitGroup
	for _, id := range ids {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			for i := 0; i < 10; i++ {
				_, err := b.ToggleAccepted(ctx, admin, id)
				assert.NoError(t, err)
			}
		}(id)
	}
	wg.Wait()

	assertFlagInvariants(t, b, q1.ID)
}

func TestDeletingAcceptedAnswerUnanswersQuestion(t *testing.T) {
	b, _ := newTestBoard(t)
	ctx := context.Background()

	q1 := mustQuestion(t, b, "Title", "Body", "alice")
	a1 := mustAnswer(t, b, q1.ID, "ans1", "bob")

	_, err := b.ToggleAccepted(ctx, admin, a1.ID)
	require.NoError(t, err)
	require.NoError(t, b.DeleteAnswer(ctx, bob, a1.ID))

	q, err := b.GetQuestion(ctx, q1.ID)
	require.NoError(t, err)
	assert.False(t, q.IsAnswered)
}
