package discussion

import (
	"strings"

	"trustboard/internal/domain/questions"
)

// Authored is implemented by every content entity.
type Authored interface {
	AuthorName() string
}

// The filters below never modify their input and always return a new,
// non-nil slice in input order, so any composition over the same snapshot
// yields the same set.

// Search matches keyword case-insensitively against title and content.
// A blank keyword is invalid input, not "match all".
func Search(qs []questions.Question, keyword string) ([]questions.Question, error) {
	if err := ValidateKeyword(keyword); err != nil {
		return nil, err
	}
	needle := strings.ToLower(strings.TrimSpace(keyword))

	out := make([]questions.Question, 0, len(qs))
	for _, q := range qs {
		if strings.Contains(strings.ToLower(q.Title), needle) ||
			strings.Contains(strings.ToLower(q.Content), needle) {
			out = append(out, q)
		}
	}
	return out, nil
}

func FilterByStatus(qs []questions.Question, answered bool) []questions.Question {
	out := make([]questions.Question, 0, len(qs))
	for _, q := range qs {
		if q.IsAnswered == answered {
			out = append(out, q)
		}
	}
	return out
}

func FilterByAuthor[T Authored](items []T, author string) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if it.AuthorName() == author {
			out = append(out, it)
		}
	}
	return out
}

// FilterByTrust keeps items authored by one of trusted.
func FilterByTrust[T Authored](items []T, trusted []string) []T {
	set := make(map[string]struct{}, len(trusted))
	for _, n := range trusted {
		set[n] = struct{}{}
	}
	out := make([]T, 0, len(items))
	for _, it := range items {
		if _, ok := set[it.AuthorName()]; ok {
			out = append(out, it)
		}
	}
	return out
}
