package main

import (
	"net/http"

	"trustboard/internal/discussion"
)

func (app *application) listRepliesHandler(w http.ResponseWriter, r *http.Request) {
	answerID, err := parseIDParam(r, "answerID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	list, err := app.board.ListRepliesFor(r.Context(), getActorFromContext(r).UserName, answerID, trustedOnly(r))
	if err != nil {
		app.boardError(w, r, err)
		return
	}

	app.jsonResponse(w, http.StatusOK, list)
}

func (app *application) createReplyHandler(w http.ResponseWriter, r *http.Request) {
	answerID, err := parseIDParam(r, "answerID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	content, ok := app.readContent(w, r)
	if !ok {
		return
	}

	reply, err := app.board.CreateReply(r.Context(), discussion.NewReply{
		AnswerID: answerID,
		Content:  content,
		Author:   getActorFromContext(r).UserName,
	})
	if err != nil {
		app.boardError(w, r, err)
		return
	}

	app.jsonResponse(w, http.StatusCreated, reply)
}

func (app *application) getReplyHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "replyID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	reply, err := app.board.GetReply(r.Context(), id)
	if err != nil {
		app.boardError(w, r, err)
		return
	}

	app.jsonResponse(w, http.StatusOK, reply)
}

func (app *application) updateReplyHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "replyID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	content, ok := app.readContent(w, r)
	if !ok {
		return
	}

	reply, err := app.board.UpdateReply(r.Context(), getActorFromContext(r), id, content)
	if err != nil {
		app.boardError(w, r, err)
		return
	}

	app.jsonResponse(w, http.StatusOK, reply)
}

func (app *application) deleteReplyHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "replyID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := app.board.DeleteReply(r.Context(), getActorFromContext(r), id); err != nil {
		app.boardError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
