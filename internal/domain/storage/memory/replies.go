package memory

import (
	"context"
	"sort"

	"trustboard/internal/domain/replies"
)

type replyStore struct{ s *scope }

func (r *replyStore) Create(ctx context.Context, in *replies.Reply) error {
	b, unlock, err := r.s.lock(ctx)
	if err != nil {
		return err
	}
	defer unlock()

	if _, ok := b.st.answers[in.AnswerID]; !ok {
		return replies.ErrAnswerNotFound
	}
	now := b.now()
	in.ID = b.nextID()
	in.CreatedAt = now
	in.UpdatedAt = now
	b.st.replies[in.ID] = *in
	return nil
}

func (r *replyStore) GetByID(ctx context.Context, id int64) (*replies.Reply, error) {
	b, unlock, err := r.s.lock(ctx)
	if err != nil {
		return nil, err
	}
	defer unlock()

	rp, ok := b.st.replies[id]
	if !ok {
		return nil, replies.ErrNotFound
	}
	return &rp, nil
}

func (r *replyStore) ListByAnswer(ctx context.Context, answerID int64) ([]replies.Reply, error) {
	b, unlock, err := r.s.lock(ctx)
	if err != nil {
		return nil, err
	}
	defer unlock()

	out := []replies.Reply{}
	for _, rp := range b.st.replies {
		if rp.AnswerID == answerID {
			out = append(out, rp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *replyStore) UpdateContent(ctx context.Context, id int64, content string) (*replies.Reply, error) {
	b, unlock, err := r.s.lock(ctx)
	if err != nil {
		return nil, err
	}
	defer unlock()

	rp, ok := b.st.replies[id]
	if !ok {
		return nil, replies.ErrNotFound
	}
	rp.Content = content
	rp.UpdatedAt = b.now()
	b.st.replies[id] = rp
	return &rp, nil
}

func (r *replyStore) Delete(ctx context.Context, id int64) error {
	b, unlock, err := r.s.lock(ctx)
	if err != nil {
		return err
	}
	defer unlock()

	if _, ok := b.st.replies[id]; !ok {
		return replies.ErrNotFound
	}
	delete(b.st.replies, id)
	return nil
}

func (r *replyStore) DeleteByAnswer(ctx context.Context, answerID int64) (int64, error) {
	b, unlock, err := r.s.lock(ctx)
	if err != nil {
		return 0, err
	}
	defer unlock()

	var n int64
	for id, rp := range b.st.replies {
		if rp.AnswerID == answerID {
			delete(b.st.replies, id)
			n++
		}
	}
	return n, nil
}
