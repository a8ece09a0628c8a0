package main

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"trustboard/internal/discussion"
	"trustboard/internal/domain/questions"
	"trustboard/internal/params"

	"github.com/go-chi/chi/v5"
)

type CreateQuestionPayload struct {
	Title    string  `json:"title" validate:"required,notblank"`
	Content  string  `json:"content" validate:"required,notblank"`
	Category *string `json:"category,omitempty"`
}

type QuestionListResponse struct {
	Questions  []questions.Question `json:"questions"`
	Pagination params.Pagination    `json:"pagination"`
}

func parseIDParam(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid " + name)
	}
	return id, nil
}

// parseQuestionFilter reads ?q=&answered=&author=&mine=&trusted= from the query string.
func parseQuestionFilter(r *http.Request) (discussion.QuestionFilter, error) {
	q := r.URL.Query()
	f := discussion.QuestionFilter{
		Keyword: q.Get("q"),
		Author:  strings.TrimSpace(q.Get("author")),
	}
	if v := q.Get("answered"); v != "" {
		answered, err := strconv.ParseBool(v)
		if err != nil {
			return f, errors.New("answered must be true or false")
		}
		f.Answered = &answered
	}
	for name, dst := range map[string]*bool{"mine": &f.Mine, "trusted": &f.TrustedOnly} {
		if v := q.Get(name); v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return f, errors.New(name + " must be true or false")
			}
			*dst = b
		}
	}
	return f, nil
}

// listQuestionsHandler serves GET /v1/questions with search, filters and pagination.
func (app *application) listQuestionsHandler(w http.ResponseWriter, r *http.Request) {
	filter, err := parseQuestionFilter(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	actor := getActorFromContext(r)
	list, err := app.board.FindQuestions(r.Context(), actor.UserName, filter)
	if err != nil {
		app.boardError(w, r, err)
		return
	}

	p := params.ParsePagination(r.URL.Query())
	page := params.Page(list, &p)

	app.jsonResponse(w, http.StatusOK, QuestionListResponse{Questions: page, Pagination: p})
}

func (app *application) createQuestionHandler(w http.ResponseWriter, r *http.Request) {
	var payload CreateQuestionPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	actor := getActorFromContext(r)
	q, err := app.board.CreateQuestion(r.Context(), discussion.NewQuestion{
		Title:    payload.Title,
		Content:  payload.Content,
		Author:   actor.UserName,
		Category: payload.Category,
	})
	if err != nil {
		app.boardError(w, r, err)
		return
	}

	app.jsonResponse(w, http.StatusCreated, q)
}

func (app *application) getQuestionHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "questionID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	q, err := app.board.GetQuestion(r.Context(), id)
	if err != nil {
		app.boardError(w, r, err)
		return
	}

	app.jsonResponse(w, http.StatusOK, q)
}

func (app *application) updateQuestionHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "questionID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var payload discussion.QuestionUpdate
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	q, err := app.board.UpdateQuestion(r.Context(), getActorFromContext(r), id, payload)
	if err != nil {
		app.boardError(w, r, err)
		return
	}

	app.jsonResponse(w, http.StatusOK, q)
}

// deleteQuestionHandler removes the question together with its answers and replies.
func (app *application) deleteQuestionHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "questionID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := app.board.DeleteQuestion(r.Context(), getActorFromContext(r), id); err != nil {
		app.boardError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
