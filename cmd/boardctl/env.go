package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"trustboard/internal/db"
	"trustboard/internal/domain/storage"
	"trustboard/internal/domain/storage/memory"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// env is everything a command needs from the outside world. Tests swap in an
// in-memory backend.
type env struct {
	logger  *zap.SugaredLogger
	getenv  func(string) string
	open    func(ctx context.Context) (*pgxpool.Pool, error)
	backend func(ctx context.Context) (storage.Backend, func(), error)
}

func defaultEnv() *env {
	logger, err := zap.NewDevelopment()
	if err != nil {
		logger = zap.NewNop()
	}
	e := &env{logger: logger.Sugar(), getenv: os.Getenv}
	e.open = e.openPool
	e.backend = e.openBackend
	return e
}

func (e *env) openPool(ctx context.Context) (*pgxpool.Pool, error) {
	addr := e.getenv("DB_ADDR")
	if addr == "" {
		return nil, fmt.Errorf("DB_ADDR is not set")
	}
	maxConns := int32(4)
	if v := e.getenv("DB_MAX_OPEN_CONNS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid DB_MAX_OPEN_CONNS: %w", err)
		}
		maxConns = int32(n)
	}
	idle := e.getenv("DB_MAX_IDLE_TIME")
	if idle == "" {
		idle = "1m"
	}
	return db.New(addr, maxConns, idle)
}

func (e *env) openBackend(ctx context.Context) (storage.Backend, func(), error) {
	if e.getenv("STORE_DRIVER") == "memory" {
		return memory.New(), func() {}, nil
	}
	pool, err := e.open(ctx)
	if err != nil {
		return nil, nil, err
	}
	return storage.NewContainer(pool), pool.Close, nil
}
