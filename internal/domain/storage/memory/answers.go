package memory

import (
	"context"
	"fmt"
	"sort"

	"trustboard/internal/domain/answers"
)

type answerStore struct{ s *scope }

func flagOf(a *answers.Answer, flag answers.Flag) (*bool, error) {
	switch flag {
	case answers.FlagAccepted:
		return &a.IsAccepted, nil
	case answers.FlagCorrect:
		return &a.IsCorrect, nil
	}
	return nil, fmt.Errorf("unknown answer flag %q", flag)
}

func (r *answerStore) Create(ctx context.Context, in *answers.Answer) error {
	b, unlock, err := r.s.lock(ctx)
	if err != nil {
		return err
	}
	defer unlock()

	if _, ok := b.st.questions[in.QuestionID]; !ok {
		return answers.ErrQuestionNotFound
	}
	now := b.now()
	in.ID = b.nextID()
	in.IsAccepted = false
	in.IsCorrect = false
	in.CreatedAt = now
	in.UpdatedAt = now
	b.st.answers[in.ID] = *in
	return nil
}

func (r *answerStore) GetByID(ctx context.Context, id int64) (*answers.Answer, error) {
	b, unlock, err := r.s.lock(ctx)
	if err != nil {
		return nil, err
	}
	defer unlock()

	a, ok := b.st.answers[id]
	if !ok {
		return nil, answers.ErrNotFound
	}
	return &a, nil
}

func (r *answerStore) ListByQuestion(ctx context.Context, questionID int64) ([]answers.Answer, error) {
	b, unlock, err := r.s.lock(ctx)
	if err != nil {
		return nil, err
	}
	defer unlock()

	out := []answers.Answer{}
	for _, a := range b.st.answers {
		if a.QuestionID == questionID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *answerStore) UpdateContent(ctx context.Context, id int64, content string) (*answers.Answer, error) {
	b, unlock, err := r.s.lock(ctx)
	if err != nil {
		return nil, err
	}
	defer unlock()

	a, ok := b.st.answers[id]
	if !ok {
		return nil, answers.ErrNotFound
	}
	a.Content = content
	a.UpdatedAt = b.now()
	b.st.answers[id] = a
	return &a, nil
}

func (r *answerStore) SetFlag(ctx context.Context, id int64, flag answers.Flag, value bool) error {
	b, unlock, err := r.s.lock(ctx)
	if err != nil {
		return err
	}
	defer unlock()

	a, ok := b.st.answers[id]
	if !ok {
		return answers.ErrNotFound
	}
	f, err := flagOf(&a, flag)
	if err != nil {
		return err
	}
	*f = value
	a.UpdatedAt = b.now()
	b.st.answers[id] = a
	return nil
}

func (r *answerStore) ClearFlag(ctx context.Context, questionID, exceptID int64, flag answers.Flag) (int64, error) {
	b, unlock, err := r.s.lock(ctx)
	if err != nil {
		return 0, err
	}
	defer unlock()

	var n int64
	for id, a := range b.st.answers {
		if a.QuestionID != questionID || id == exceptID {
			continue
		}
		f, err := flagOf(&a, flag)
		if err != nil {
			return n, err
		}
		if !*f {
			continue
		}
		*f = false
		a.UpdatedAt = b.now()
		b.st.answers[id] = a
		n++
	}
	return n, nil
}

func (r *answerStore) AnyFlagged(ctx context.Context, questionID int64, flag answers.Flag) (bool, error) {
	b, unlock, err := r.s.lock(ctx)
	if err != nil {
		return false, err
	}
	defer unlock()

	for _, a := range b.st.answers {
		if a.QuestionID != questionID {
			continue
		}
		f, err := flagOf(&a, flag)
		if err != nil {
			return false, err
		}
		if *f {
			return true, nil
		}
	}
	return false, nil
}

func (r *answerStore) Delete(ctx context.Context, id int64) error {
	b, unlock, err := r.s.lock(ctx)
	if err != nil {
		return err
	}
	defer unlock()

	if _, ok := b.st.answers[id]; !ok {
		return answers.ErrNotFound
	}
	for _, rp := range b.st.replies {
		if rp.AnswerID == id {
			return errRestricted
		}
	}
	delete(b.st.answers, id)
	return nil
}
