package discussion

import (
	"trustboard/internal/domain/answers"
	"trustboard/internal/domain/messages"
	"trustboard/internal/domain/questions"
	"trustboard/internal/domain/replies"
	"trustboard/internal/infra/dbx"

	"github.com/cockroachdb/errors"
)

// Error taxonomy. Every error returned by Board, TrustGraph and Inbox is
// marked with exactly one of these; test with errors.Is from
// github.com/cockroachdb/errors.
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("not allowed")
	ErrConflict     = errors.New("constraint violation")
	ErrStorage      = errors.New("storage failure")
)

var taxonomy = []error{ErrInvalidInput, ErrNotFound, ErrUnauthorized, ErrConflict, ErrStorage}

// classify marks a repository error with its taxonomy class. The repository
// error stays in the chain.
func classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.IsAny(err, taxonomy...) {
		return err
	}
	switch {
	case errors.IsAny(err,
		questions.ErrNotFound,
		answers.ErrNotFound,
		answers.ErrQuestionNotFound,
		replies.ErrNotFound,
		replies.ErrAnswerNotFound,
		messages.ErrNotFound):
		return errors.Mark(err, ErrNotFound)
	case isConstraint(err):
		return errors.Mark(err, ErrConflict)
	}
	return errors.Mark(err, ErrStorage)
}

func isConstraint(err error) bool {
	if _, ok := dbx.IsUniqueViolation(err); ok {
		return true
	}
	if _, ok := dbx.IsFKViolation(err); ok {
		return true
	}
	_, ok := dbx.IsCheckViolation(err)
	return ok
}

func invalid(format string, args ...any) error {
	return errors.Mark(errors.Newf(format, args...), ErrInvalidInput)
}

func unauthorized(format string, args ...any) error {
	return errors.Mark(errors.Newf(format, args...), ErrUnauthorized)
}
