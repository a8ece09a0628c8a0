package memory

import (
	"context"
	"sort"
	"strings"

	"trustboard/internal/domain/questions"
)

type questionStore struct{ s *scope }

func (q *questionStore) Create(ctx context.Context, in *questions.Question) error {
	b, unlock, err := q.s.lock(ctx)
	if err != nil {
		return err
	}
	defer unlock()

	now := b.now()
	in.ID = b.nextID()
	in.Category = normalizeCategory(in.Category)
	in.IsAnswered = false
	in.CreatedAt = now
	in.UpdatedAt = now
	b.st.questions[in.ID] = *in
	return nil
}

func (q *questionStore) GetByID(ctx context.Context, id int64) (*questions.Question, error) {
	b, unlock, err := q.s.lock(ctx)
	if err != nil {
		return nil, err
	}
	defer unlock()

	out, ok := b.st.questions[id]
	if !ok {
		return nil, questions.ErrNotFound
	}
	return &out, nil
}

func (q *questionStore) LockByID(ctx context.Context, id int64) (*questions.Question, error) {
	return q.GetByID(ctx, id)
}

func (q *questionStore) List(ctx context.Context) ([]questions.Question, error) {
	b, unlock, err := q.s.lock(ctx)
	if err != nil {
		return nil, err
	}
	defer unlock()

	out := make([]questions.Question, 0, len(b.st.questions))
	for _, v := range b.st.questions {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (q *questionStore) Update(ctx context.Context, id int64, req questions.UpdateQuestionRequest) (*questions.Question, error) {
	b, unlock, err := q.s.lock(ctx)
	if err != nil {
		return nil, err
	}
	defer unlock()

	cur, ok := b.st.questions[id]
	if !ok {
		return nil, questions.ErrNotFound
	}
	if req.Title != nil {
		cur.Title = *req.Title
	}
	if req.Content != nil {
		cur.Content = *req.Content
	}
	if req.Category != nil {
		cur.Category = normalizeCategory(req.Category)
	}
	cur.UpdatedAt = b.now()
	b.st.questions[id] = cur
	return &cur, nil
}

func (q *questionStore) SetAnswered(ctx context.Context, id int64, answered bool) error {
	b, unlock, err := q.s.lock(ctx)
	if err != nil {
		return err
	}
	defer unlock()

	cur, ok := b.st.questions[id]
	if !ok {
		return questions.ErrNotFound
	}
	cur.IsAnswered = answered
	cur.UpdatedAt = b.now()
	b.st.questions[id] = cur
	return nil
}

func (q *questionStore) Delete(ctx context.Context, id int64) error {
	b, unlock, err := q.s.lock(ctx)
	if err != nil {
		return err
	}
	defer unlock()

	if _, ok := b.st.questions[id]; !ok {
		return questions.ErrNotFound
	}
	for _, a := range b.st.answers {
		if a.QuestionID == id {
			return errRestricted
		}
	}
	delete(b.st.questions, id)
	return nil
}

func normalizeCategory(c *string) *string {
	if c == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*c)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
