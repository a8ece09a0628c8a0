package discussion

import (
	"context"
	"strings"

	"trustboard/internal/domain/trust"
	"trustboard/internal/metrics"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

// TrustGraph is the directed student -> reviewer relation. It is not
// symmetric and not transitive. Blank names and self-trust are answered with
// false, never with an error; only storage failures are returned.
type TrustGraph struct {
	store   trust.Store
	logger  *zap.SugaredLogger
	metrics *metrics.Metrics
}

func NewTrustGraph(store trust.Store, logger *zap.SugaredLogger, m *metrics.Metrics) *TrustGraph {
	return &TrustGraph{store: store, logger: logger, metrics: m}
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// Add records that student trusts reviewer. It returns false when the edge
// already exists; concurrent adds of the same pair resolve on the primary key.
func (g *TrustGraph) Add(ctx context.Context, student, reviewer string) (bool, error) {
	if blank(student) || blank(reviewer) || student == reviewer {
		return false, nil
	}
	added, err := g.store.Add(ctx, student, reviewer)
	if err != nil {
		return false, classify(errors.Wrapf(err, "trust %s -> %s", student, reviewer))
	}
	g.metrics.TrustChanged("add", added)
	if added {
		g.logger.Infow("reviewer trusted", "student", student, "reviewer", reviewer)
	}
	return added, nil
}

func (g *TrustGraph) Remove(ctx context.Context, student, reviewer string) (bool, error) {
	if blank(student) || blank(reviewer) {
		return false, nil
	}
	removed, err := g.store.Remove(ctx, student, reviewer)
	if err != nil {
		return false, classify(errors.Wrapf(err, "untrust %s -> %s", student, reviewer))
	}
	g.metrics.TrustChanged("remove", removed)
	if removed {
		g.logger.Infow("reviewer untrusted", "student", student, "reviewer", reviewer)
	}
	return removed, nil
}

func (g *TrustGraph) IsTrusted(ctx context.Context, student, reviewer string) (bool, error) {
	if blank(student) || blank(reviewer) {
		return false, nil
	}
	ok, err := g.store.Exists(ctx, student, reviewer)
	if err != nil {
		return false, classify(errors.Wrapf(err, "check trust %s -> %s", student, reviewer))
	}
	return ok, nil
}

// List returns the reviewers trusted by student, sorted. Never nil.
func (g *TrustGraph) List(ctx context.Context, student string) ([]string, error) {
	if blank(student) {
		return []string{}, nil
	}
	names, err := g.store.ListReviewers(ctx, student)
	if err != nil {
		return nil, classify(errors.Wrapf(err, "list trusted reviewers of %s", student))
	}
	if names == nil {
		names = []string{}
	}
	return names, nil
}

// Trusters returns the students that trust reviewer, sorted. Never nil.
func (g *TrustGraph) Trusters(ctx context.Context, reviewer string) ([]string, error) {
	if blank(reviewer) {
		return []string{}, nil
	}
	names, err := g.store.ListStudents(ctx, reviewer)
	if err != nil {
		return nil, classify(errors.Wrapf(err, "list trusters of %s", reviewer))
	}
	if names == nil {
		names = []string{}
	}
	return names, nil
}

// Clear removes every edge of student and reports how many were removed.
func (g *TrustGraph) Clear(ctx context.Context, student string) (int64, error) {
	if blank(student) {
		return 0, nil
	}
	n, err := g.store.Clear(ctx, student)
	if err != nil {
		return 0, classify(errors.Wrapf(err, "clear trust of %s", student))
	}
	g.metrics.TrustChanged("clear", n > 0)
	return n, nil
}

// FilterTrusted keeps the items whose author viewer trusts. A failed trust
// lookup is returned to the caller rather than degrading to the unfiltered set.
func FilterTrusted[T Authored](ctx context.Context, g *TrustGraph, viewer string, items []T) ([]T, error) {
	trusted, err := g.List(ctx, viewer)
	if err != nil {
		return nil, err
	}
	return FilterByTrust(items, trusted), nil
}
