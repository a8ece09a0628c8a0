package storage

import (
	"context"
	"fmt"

	"trustboard/internal/domain/answers"
	"trustboard/internal/domain/messages"
	"trustboard/internal/domain/questions"
	"trustboard/internal/domain/replies"
	"trustboard/internal/domain/trust"
	"trustboard/internal/infra/dbx"
)

// Repos is one set of repositories sharing a connection or a transaction.
type Repos struct {
	Questions questions.Store
	Answers   answers.Store
	Replies   replies.Store
	Trust     trust.Store
	Messages  messages.Store
}

// Backend is what the discussion core needs from storage: pool-scoped
// repositories and a way to run a unit of work atomically.
type Backend interface {
	Repositories() *Repos
	WithTx(ctx context.Context, fn func(r *Repos) error) error
}

type Container struct {
	pool dbx.Beginner
	Repos
}

var _ Backend = (*Container)(nil)

func NewContainer(db dbx.Beginner) *Container {
	return &Container{
		pool:  db,
		Repos: newRepos(db),
	}
}

func newRepos(q dbx.Querier) Repos {
	return Repos{
		Questions: questions.NewRepository(q),
		Answers:   answers.NewRepository(q),
		Replies:   replies.NewRepository(q),
		Trust:     trust.NewRepository(q),
		Messages:  messages.NewRepository(q),
	}
}

func (c *Container) Repositories() *Repos {
	return &c.Repos
}

// WithTx runs fn on tx-scoped repositories and commits when fn returns nil.
func (c *Container) WithTx(ctx context.Context, fn func(r *Repos) error) error {
	if c.pool == nil {
		return fmt.Errorf("storage container pool is nil (did you forget to set pool in NewContainer?)")
	}

	tx, err := c.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	defer func() {
		_ = tx.Rollback(ctx) // safe even if already committed
	}()

	repos := newRepos(tx)
	if err := fn(&repos); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
