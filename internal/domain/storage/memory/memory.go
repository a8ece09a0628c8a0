// Package memory is an in-process storage.Backend with the same contract as
// the postgres repositories: generated ids, restrict-on-delete foreign keys,
// unique trust edges and all-or-nothing WithTx.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"trustboard/internal/domain/answers"
	"trustboard/internal/domain/messages"
	"trustboard/internal/domain/questions"
	"trustboard/internal/domain/replies"
	"trustboard/internal/domain/storage"
	"trustboard/internal/domain/trust"

	"github.com/jackc/pgx/v5/pgconn"
)

// errRestricted mirrors the postgres foreign_key_violation raised when a
// parent row is deleted while children still reference it.
var errRestricted = &pgconn.PgError{Code: "23503", Message: "row is still referenced"}

type state struct {
	questions map[int64]questions.Question
	answers   map[int64]answers.Answer
	replies   map[int64]replies.Reply
	messages  map[int64]messages.Message
	trust     map[trust.Edge]struct{}
	seq       int64
}

func (s *state) clone() state {
	c := state{
		questions: make(map[int64]questions.Question, len(s.questions)),
		answers:   make(map[int64]answers.Answer, len(s.answers)),
		replies:   make(map[int64]replies.Reply, len(s.replies)),
		messages:  make(map[int64]messages.Message, len(s.messages)),
		trust:     make(map[trust.Edge]struct{}, len(s.trust)),
		seq:       s.seq,
	}
	for k, v := range s.questions {
		c.questions[k] = v
	}
	for k, v := range s.answers {
		c.answers[k] = v
	}
	for k, v := range s.replies {
		c.replies[k] = v
	}
	for k, v := range s.messages {
		c.messages[k] = v
	}
	for k := range s.trust {
		c.trust[k] = struct{}{}
	}
	return c
}

type Backend struct {
	mu    sync.Mutex
	st    state
	last  time.Time
	repos storage.Repos
}

var _ storage.Backend = (*Backend)(nil)

func New() *Backend {
	b := &Backend{
		st: state{
			questions: map[int64]questions.Question{},
			answers:   map[int64]answers.Answer{},
			replies:   map[int64]replies.Reply{},
			messages:  map[int64]messages.Message{},
			trust:     map[trust.Edge]struct{}{},
		},
	}
	b.repos = b.reposFor(false)
	return b
}

func (b *Backend) reposFor(inTx bool) storage.Repos {
	s := &scope{b: b, inTx: inTx}
	return storage.Repos{
		Questions: &questionStore{s},
		Answers:   &answerStore{s},
		Replies:   &replyStore{s},
		Trust:     &trustStore{s},
		Messages:  &messageStore{s},
	}
}

func (b *Backend) Repositories() *storage.Repos {
	return &b.repos
}

// WithTx serialises fn against every other operation and restores the
// previous state when fn fails.
func (b *Backend) WithTx(ctx context.Context, fn func(r *storage.Repos) error) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	snapshot := b.st.clone()
	repos := b.reposFor(true)
	if err := fn(&repos); err != nil {
		b.st = snapshot
		return err
	}
	return nil
}

// now returns a strictly increasing timestamp so updated_at always moves.
func (b *Backend) now() time.Time {
	t := time.Now().UTC()
	if !t.After(b.last) {
		t = b.last.Add(time.Microsecond)
	}
	b.last = t
	return t
}

func (b *Backend) nextID() int64 {
	b.st.seq++
	return b.st.seq
}

type scope struct {
	b    *Backend
	inTx bool
}

// lock takes the backend mutex unless the caller already runs inside WithTx.
func (s *scope) lock(ctx context.Context) (*Backend, func(), error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	if s.inTx {
		return s.b, func() {}, nil
	}
	s.b.mu.Lock()
	return s.b, s.b.mu.Unlock, nil
}

func sortedNames(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for n := range set {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}
