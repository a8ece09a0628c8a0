package discussion

import (
	"context"

	"trustboard/internal/domain/answers"
	"trustboard/internal/domain/questions"
	"trustboard/internal/domain/replies"
)

// QuestionFilter combines the board's listing controls. Zero values disable
// a filter.
type QuestionFilter struct {
	Keyword     string
	Answered    *bool
	Author      string
	Mine        bool
	TrustedOnly bool
}

// FindQuestions applies f to one snapshot of all questions on behalf of viewer.
func (b *Board) FindQuestions(ctx context.Context, viewer string, f QuestionFilter) ([]questions.Question, error) {
	qs, err := b.ListQuestions(ctx)
	if err != nil {
		return nil, err
	}
	if f.Keyword != "" {
		if qs, err = Search(qs, f.Keyword); err != nil {
			return nil, err
		}
	}
	if f.Answered != nil {
		qs = FilterByStatus(qs, *f.Answered)
	}
	if f.Author != "" {
		qs = FilterByAuthor(qs, f.Author)
	}
	if f.Mine {
		qs = FilterByAuthor(qs, viewer)
	}
	if f.TrustedOnly {
		if qs, err = FilterTrusted(ctx, b.trust, viewer, qs); err != nil {
			return nil, err
		}
	}
	return qs, nil
}

// ListAnswersFor lists a question's answers, optionally only those by
// reviewers viewer trusts.
func (b *Board) ListAnswersFor(ctx context.Context, viewer string, questionID int64, trustedOnly bool) ([]answers.Answer, error) {
	list, err := b.ListAnswers(ctx, questionID)
	if err != nil || !trustedOnly {
		return list, err
	}
	return FilterTrusted(ctx, b.trust, viewer, list)
}

func (b *Board) ListRepliesFor(ctx context.Context, viewer string, answerID int64, trustedOnly bool) ([]replies.Reply, error) {
	list, err := b.ListReplies(ctx, answerID)
	if err != nil || !trustedOnly {
		return list, err
	}
	return FilterTrusted(ctx, b.trust, viewer, list)
}
