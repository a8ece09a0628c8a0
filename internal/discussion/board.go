// Package discussion is the trust-aware Q&A core. Board orchestrates the
// content repositories: it validates input, applies the author-or-admin
// policy, runs cascade deletes and drives the answer flag state machine.
// Repositories underneath stay identity-agnostic.
package discussion

import (
	"context"

	"trustboard/internal/domain/answers"
	"trustboard/internal/domain/questions"
	"trustboard/internal/domain/replies"
	"trustboard/internal/domain/storage"
	"trustboard/internal/metrics"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

type Board struct {
	store   storage.Backend
	trust   *TrustGraph
	logger  *zap.SugaredLogger
	metrics *metrics.Metrics
}

func NewBoard(store storage.Backend, logger *zap.SugaredLogger, m *metrics.Metrics) *Board {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Board{
		store:   store,
		trust:   NewTrustGraph(store.Repositories().Trust, logger, m),
		logger:  logger,
		metrics: m,
	}
}

func (b *Board) Trust() *TrustGraph {
	return b.trust
}

func (b *Board) repos() *storage.Repos {
	return b.store.Repositories()
}

// ---------------- Questions ----------------

func (b *Board) CreateQuestion(ctx context.Context, in NewQuestion) (*questions.Question, error) {
	if err := checkStruct(in); err != nil {
		return nil, err
	}
	q := &questions.Question{
		Title:          in.Title,
		Content:        in.Content,
		AuthorUserName: in.Author,
		Category:       in.Category,
	}
	if err := b.repos().Questions.Create(ctx, q); err != nil {
		return nil, classify(err)
	}
	return q, nil
}

func (b *Board) GetQuestion(ctx context.Context, id int64) (*questions.Question, error) {
	q, err := b.repos().Questions.GetByID(ctx, id)
	if err != nil {
		return nil, classify(err)
	}
	return q, nil
}

func (b *Board) ListQuestions(ctx context.Context) ([]questions.Question, error) {
	qs, err := b.repos().Questions.List(ctx)
	if err != nil {
		return nil, classify(err)
	}
	return qs, nil
}

func (b *Board) UpdateQuestion(ctx context.Context, actor Actor, id int64, in QuestionUpdate) (*questions.Question, error) {
	if err := checkStruct(in); err != nil {
		return nil, err
	}
	cur, err := b.GetQuestion(ctx, id)
	if err != nil {
		return nil, err
	}
	if !CanMutate(actor, cur.AuthorUserName) {
		return nil, unauthorized("%s may not edit question %d", actor.UserName, id)
	}
	q, err := b.repos().Questions.Update(ctx, id, questions.UpdateQuestionRequest{
		Title:    in.Title,
		Content:  in.Content,
		Category: in.Category,
	})
	if err != nil {
		return nil, classify(err)
	}
	return q, nil
}

// DeleteQuestion removes a question with all its answers and their replies.
// Child failures are logged and skipped; the question delete itself is
// always attempted and its failure returned.
func (b *Board) DeleteQuestion(ctx context.Context, actor Actor, id int64) error {
	cur, err := b.GetQuestion(ctx, id)
	if err != nil {
		return err
	}
	if !CanMutate(actor, cur.AuthorUserName) {
		return unauthorized("%s may not delete question %d", actor.UserName, id)
	}
	return b.cascadeQuestion(ctx, id)
}

func (b *Board) cascadeQuestion(ctx context.Context, id int64) error {
	r := b.repos()

	list, err := r.Answers.ListByQuestion(ctx, id)
	if err != nil {
		b.logger.Warnw("cascade: listing answers failed", "question_id", id, "error", err)
	}

	for _, a := range list {
		n, err := r.Replies.DeleteByAnswer(ctx, a.ID)
		if err != nil {
			b.metrics.CascadeFailure("replies")
			b.logger.Warnw("cascade: deleting replies failed", "question_id", id, "answer_id", a.ID, "error", err)
			continue
		}
		if err := r.Answers.Delete(ctx, a.ID); err != nil && !errors.Is(err, answers.ErrNotFound) {
			b.metrics.CascadeFailure("answer")
			b.logger.Warnw("cascade: deleting answer failed", "question_id", id, "answer_id", a.ID, "error", err)
			continue
		}
		b.logger.Debugw("cascade: answer removed", "question_id", id, "answer_id", a.ID, "replies", n)
	}

	if err := r.Questions.Delete(ctx, id); err != nil {
		return classify(errors.Wrapf(err, "delete question %d", id))
	}
	b.logger.Infow("question deleted", "question_id", id, "answers", len(list))
	return nil
}

// ---------------- Answers ----------------

func (b *Board) CreateAnswer(ctx context.Context, in NewAnswer) (*answers.Answer, error) {
	if err := checkStruct(in); err != nil {
		return nil, err
	}
	a := &answers.Answer{
		QuestionID:     in.QuestionID,
		Content:        in.Content,
		AuthorUserName: in.Author,
	}
	if err := b.repos().Answers.Create(ctx, a); err != nil {
		return nil, classify(err)
	}
	return a, nil
}

func (b *Board) GetAnswer(ctx context.Context, id int64) (*answers.Answer, error) {
	a, err := b.repos().Answers.GetByID(ctx, id)
	if err != nil {
		return nil, classify(err)
	}
	return a, nil
}

func (b *Board) ListAnswers(ctx context.Context, questionID int64) ([]answers.Answer, error) {
	list, err := b.repos().Answers.ListByQuestion(ctx, questionID)
	if err != nil {
		return nil, classify(err)
	}
	return list, nil
}

func (b *Board) UpdateAnswer(ctx context.Context, actor Actor, id int64, content string) (*answers.Answer, error) {
	if err := checkStruct(contentEdit{Content: content}); err != nil {
		return nil, err
	}
	cur, err := b.GetAnswer(ctx, id)
	if err != nil {
		return nil, err
	}
	if !CanMutate(actor, cur.AuthorUserName) {
		return nil, unauthorized("%s may not edit answer %d", actor.UserName, id)
	}
	a, err := b.repos().Answers.UpdateContent(ctx, id, content)
	if err != nil {
		return nil, classify(err)
	}
	return a, nil
}

// DeleteAnswer removes an answer and its replies in one transaction. When the
// answer was accepted the question's answered flag is recomputed.
func (b *Board) DeleteAnswer(ctx context.Context, actor Actor, id int64) error {
	cur, err := b.GetAnswer(ctx, id)
	if err != nil {
		return err
	}
	if !CanMutate(actor, cur.AuthorUserName) {
		return unauthorized("%s may not delete answer %d", actor.UserName, id)
	}

	err = b.store.WithTx(ctx, func(r *storage.Repos) error {
		q, err := r.Questions.LockByID(ctx, cur.QuestionID)
		if err != nil {
			return err
		}
		if _, err := r.Replies.DeleteByAnswer(ctx, id); err != nil {
			return err
		}
		if err := r.Answers.Delete(ctx, id); err != nil {
			return err
		}
		answered, err := r.Answers.AnyFlagged(ctx, q.ID, answers.FlagAccepted)
		if err != nil {
			return err
		}
		if answered != q.IsAnswered {
			return r.Questions.SetAnswered(ctx, q.ID, answered)
		}
		return nil
	})
	if err != nil {
		return classify(errors.Wrapf(err, "delete answer %d", id))
	}
	b.logger.Infow("answer deleted", "answer_id", id, "question_id", cur.QuestionID)
	return nil
}

// ---------------- Replies ----------------

func (b *Board) CreateReply(ctx context.Context, in NewReply) (*replies.Reply, error) {
	if err := checkStruct(in); err != nil {
		return nil, err
	}
	rp := &replies.Reply{
		AnswerID:       in.AnswerID,
		Content:        in.Content,
		AuthorUserName: in.Author,
	}
	if err := b.repos().Replies.Create(ctx, rp); err != nil {
		return nil, classify(err)
	}
	return rp, nil
}

func (b *Board) GetReply(ctx context.Context, id int64) (*replies.Reply, error) {
	rp, err := b.repos().Replies.GetByID(ctx, id)
	if err != nil {
		return nil, classify(err)
	}
	return rp, nil
}

func (b *Board) ListReplies(ctx context.Context, answerID int64) ([]replies.Reply, error) {
	list, err := b.repos().Replies.ListByAnswer(ctx, answerID)
	if err != nil {
		return nil, classify(err)
	}
	return list, nil
}

func (b *Board) UpdateReply(ctx context.Context, actor Actor, id int64, content string) (*replies.Reply, error) {
	if err := checkStruct(contentEdit{Content: content}); err != nil {
		return nil, err
	}
	cur, err := b.GetReply(ctx, id)
	if err != nil {
		return nil, err
	}
	if !CanMutate(actor, cur.AuthorUserName) {
		return nil, unauthorized("%s may not edit reply %d", actor.UserName, id)
	}
	rp, err := b.repos().Replies.UpdateContent(ctx, id, content)
	if err != nil {
		return nil, classify(err)
	}
	return rp, nil
}

func (b *Board) DeleteReply(ctx context.Context, actor Actor, id int64) error {
	cur, err := b.GetReply(ctx, id)
	if err != nil {
		return err
	}
	if !CanMutate(actor, cur.AuthorUserName) {
		return unauthorized("%s may not delete reply %d", actor.UserName, id)
	}
	if err := b.repos().Replies.Delete(ctx, id); err != nil {
		return classify(err)
	}
	return nil
}
