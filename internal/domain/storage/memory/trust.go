package memory

import (
	"context"

	"trustboard/internal/domain/trust"
)

type trustStore struct{ s *scope }

func (t *trustStore) Add(ctx context.Context, student, reviewer string) (bool, error) {
	b, unlock, err := t.s.lock(ctx)
	if err != nil {
		return false, err
	}
	defer unlock()

	if student == reviewer {
		return false, nil
	}
	e := trust.Edge{StudentUserName: student, ReviewerUserName: reviewer}
	if _, ok := b.st.trust[e]; ok {
		return false, nil
	}
	b.st.trust[e] = struct{}{}
	return true, nil
}

func (t *trustStore) Remove(ctx context.Context, student, reviewer string) (bool, error) {
	b, unlock, err := t.s.lock(ctx)
	if err != nil {
		return false, err
	}
	defer unlock()

	e := trust.Edge{StudentUserName: student, ReviewerUserName: reviewer}
	if _, ok := b.st.trust[e]; !ok {
		return false, nil
	}
	delete(b.st.trust, e)
	return true, nil
}

func (t *trustStore) Exists(ctx context.Context, student, reviewer string) (bool, error) {
	b, unlock, err := t.s.lock(ctx)
	if err != nil {
		return false, err
	}
	defer unlock()

	_, ok := b.st.trust[trust.Edge{StudentUserName: student, ReviewerUserName: reviewer}]
	return ok, nil
}

func (t *trustStore) ListReviewers(ctx context.Context, student string) ([]string, error) {
	b, unlock, err := t.s.lock(ctx)
	if err != nil {
		return nil, err
	}
	defer unlock()

	set := map[string]struct{}{}
	for e := range b.st.trust {
		if e.StudentUserName == student {
			set[e.ReviewerUserName] = struct{}{}
		}
	}
	return sortedNames(set), nil
}

func (t *trustStore) ListStudents(ctx context.Context, reviewer string) ([]string, error) {
	b, unlock, err := t.s.lock(ctx)
	if err != nil {
		return nil, err
	}
	defer unlock()

	set := map[string]struct{}{}
	for e := range b.st.trust {
		if e.ReviewerUserName == reviewer {
			set[e.StudentUserName] = struct{}{}
		}
	}
	return sortedNames(set), nil
}

func (t *trustStore) Clear(ctx context.Context, student string) (int64, error) {
	b, unlock, err := t.s.lock(ctx)
	if err != nil {
		return 0, err
	}
	defer unlock()

	var n int64
	for e := range b.st.trust {
		if e.StudentUserName == student {
			delete(b.st.trust, e)
			n++
		}
	}
	return n, nil
}
