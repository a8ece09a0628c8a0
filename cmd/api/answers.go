package main

import (
	"net/http"
	"strconv"

	"trustboard/internal/discussion"
)

type ContentPayload struct {
	Content string `json:"content" validate:"required,notblank"`
}

// readContent decodes and validates a {"content": "..."} body. It writes the
// error response itself and reports whether the handler may continue.
func (app *application) readContent(w http.ResponseWriter, r *http.Request) (string, bool) {
	var payload ContentPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return "", false
	}
	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return "", false
	}
	return payload.Content, true
}

func trustedOnly(r *http.Request) bool {
	v, _ := strconv.ParseBool(r.URL.Query().Get("trusted"))
	return v
}

// listAnswersHandler serves GET /v1/questions/{questionID}/answers?trusted=.
func (app *application) listAnswersHandler(w http.ResponseWriter, r *http.Request) {
	questionID, err := parseIDParam(r, "questionID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	list, err := app.board.ListAnswersFor(r.Context(), getActorFromContext(r).UserName, questionID, trustedOnly(r))
	if err != nil {
		app.boardError(w, r, err)
		return
	}

	app.jsonResponse(w, http.StatusOK, list)
}

func (app *application) createAnswerHandler(w http.ResponseWriter, r *http.Request) {
	questionID, err := parseIDParam(r, "questionID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	content, ok := app.readContent(w, r)
	if !ok {
		return
	}

	a, err := app.board.CreateAnswer(r.Context(), discussion.NewAnswer{
		QuestionID: questionID,
		Content:    content,
		Author:     getActorFromContext(r).UserName,
	})
	if err != nil {
		app.boardError(w, r, err)
		return
	}

	app.jsonResponse(w, http.StatusCreated, a)
}

func (app *application) getAnswerHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "answerID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	a, err := app.board.GetAnswer(r.Context(), id)
	if err != nil {
		app.boardError(w, r, err)
		return
	}

	app.jsonResponse(w, http.StatusOK, a)
}

func (app *application) updateAnswerHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "answerID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	content, ok := app.readContent(w, r)
	if !ok {
		return
	}

	a, err := app.board.UpdateAnswer(r.Context(), getActorFromContext(r), id, content)
	if err != nil {
		app.boardError(w, r, err)
		return
	}

	app.jsonResponse(w, http.StatusOK, a)
}

func (app *application) deleteAnswerHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "answerID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := app.board.DeleteAnswer(r.Context(), getActorFromContext(r), id); err != nil {
		app.boardError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// toggleAcceptedHandler flips the accepted mark. Admins only.
func (app *application) toggleAcceptedHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "answerID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	a, err := app.board.ToggleAccepted(r.Context(), getActorFromContext(r), id)
	if err != nil {
		app.boardError(w, r, err)
		return
	}

	app.jsonResponse(w, http.StatusOK, a)
}

// toggleCorrectHandler flips the correct mark. Only the asker may do this.
func (app *application) toggleCorrectHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "answerID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	a, err := app.board.ToggleCorrect(r.Context(), getActorFromContext(r), id)
	if err != nil {
		app.boardError(w, r, err)
		return
	}

	app.jsonResponse(w, http.StatusOK, a)
}
