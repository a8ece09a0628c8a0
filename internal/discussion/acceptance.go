package discussion

import (
	"context"

	"trustboard/internal/domain/answers"
	"trustboard/internal/domain/storage"

	"github.com/cockroachdb/errors"
)

// ToggleAccepted flips the authority acceptance of an answer. Setting it
// first clears acceptance on every sibling answer; the question is answered
// exactly when one of its answers is accepted. The correct flag is untouched.
func (b *Board) ToggleAccepted(ctx context.Context, actor Actor, answerID int64) (*answers.Answer, error) {
	if !actor.IsAuthority() {
		return nil, unauthorized("%s (%s) may not accept answers", actor.UserName, actor.Role)
	}
	return b.toggle(ctx, answerID, answers.FlagAccepted, nil)
}

// ToggleCorrect flips the asker's "helpful" mark on an answer, with the same
// one-per-question exclusion. It never changes the question's answered flag.
func (b *Board) ToggleCorrect(ctx context.Context, actor Actor, answerID int64) (*answers.Answer, error) {
	return b.toggle(ctx, answerID, answers.FlagCorrect, func(questionAuthor string) error {
		if actor.UserName == "" || actor.UserName != questionAuthor {
			return unauthorized("only the asker may mark answer %d as correct", answerID)
		}
		return nil
	})
}

// toggle runs the flip in one transaction holding the question row lock, so
// "clear siblings, set target" cannot interleave with another toggle.
func (b *Board) toggle(ctx context.Context, answerID int64, flag answers.Flag, authorize func(questionAuthor string) error) (*answers.Answer, error) {
	target, err := b.GetAnswer(ctx, answerID)
	if err != nil {
		return nil, err
	}

	var out *answers.Answer
	err = b.store.WithTx(ctx, func(r *storage.Repos) error {
		q, err := r.Questions.LockByID(ctx, target.QuestionID)
		if err != nil {
			return err
		}
		if authorize != nil {
			if err := authorize(q.AuthorUserName); err != nil {
				return err
			}
		}

		// Re-read under the lock: the unlocked read may be stale.
		a, err := r.Answers.GetByID(ctx, answerID)
		if err != nil {
			return err
		}

		next := !flagValue(a, flag)
		if next {
			if _, err := r.Answers.ClearFlag(ctx, q.ID, a.ID, flag); err != nil {
				return err
			}
		}
		if err := r.Answers.SetFlag(ctx, a.ID, flag, next); err != nil {
			return err
		}

		if flag == answers.FlagAccepted {
			answered := next
			if !next {
				answered, err = r.Answers.AnyFlagged(ctx, q.ID, answers.FlagAccepted)
				if err != nil {
					return err
				}
			}
			if answered != q.IsAnswered {
				if err := r.Questions.SetAnswered(ctx, q.ID, answered); err != nil {
					return err
				}
			}
		}

		out, err = r.Answers.GetByID(ctx, a.ID)
		return err
	})
	if err != nil {
		return nil, classify(errors.Wrapf(err, "toggle %s on answer %d", flag, answerID))
	}

	b.metrics.FlagToggled(string(flag), flagValue(out, flag))
	b.logger.Infow("answer flag toggled",
		"answer_id", answerID,
		"question_id", out.QuestionID,
		"flag", string(flag),
		"value", flagValue(out, flag),
	)
	return out, nil
}

func flagValue(a *answers.Answer, flag answers.Flag) bool {
	if flag == answers.FlagAccepted {
		return a.IsAccepted
	}
	return a.IsCorrect
}
