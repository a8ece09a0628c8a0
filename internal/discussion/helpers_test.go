package discussion

import (
	"context"
	"testing"

	"trustboard/internal/domain/answers"
	"trustboard/internal/domain/questions"
	"trustboard/internal/domain/storage/memory"
	"trustboard/internal/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var (
	admin = Actor{UserName: "root", Role: RoleAdmin}
	alice = Actor{UserName: "alice", Role: "student"}
	bob   = Actor{UserName: "bob", Role: "reviewer"}
	carol = Actor{UserName: "carol", Role: "student"}
)

func newTestBoard(t *testing.T) (*Board, *memory.Backend) {
	t.Helper()
	store := memory.New()
	return NewBoard(store, zap.NewNop().Sugar(), metrics.New(prometheus.NewRegistry())), store
}

func mustQuestion(t *testing.T, b *Board, title, content, author string) *questions.Question {
	t.Helper()
	q, err := b.CreateQuestion(context.Background(), NewQuestion{Title: title, Content: content, Author: author})
	require.NoError(t, err)
	return q
}

func mustAnswer(t *testing.T, b *Board, questionID int64, content, author string) *answers.Answer {
	t.Helper()
	a, err := b.CreateAnswer(context.Background(), NewAnswer{QuestionID: questionID, Content: content, Author: author})
	require.NoError(t, err)
	return a
}

// assertFlagInvariants checks the one-accepted, one-correct and derived
// answered rules for a question.
func assertFlagInvariants(t *testing.T, b *Board, questionID int64) {
	t.Helper()
	ctx := context.Background()

	list, err := b.ListAnswers(ctx, questionID)
	require.NoError(t, err)

	accepted, correct := 0, 0
	for _, a := range list {
		if a.IsAccepted {
			accepted++
		}
		if a.IsCorrect {
			correct++
		}
	}
	require.LessOrEqual(t, accepted, 1, "more than one accepted answer")
	require.LessOrEqual(t, correct, 1, "more than one correct answer")

	q, err := b.GetQuestion(ctx, questionID)
	require.NoError(t, err)
	require.Equal(t, accepted == 1, q.IsAnswered, "is_answered out of sync")
}
