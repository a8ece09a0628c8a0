package main

import (
	"net/http"

	"trustboard/internal/discussion"
)

type SendMessagePayload struct {
	Title    string `json:"title" validate:"required,notblank"`
	Content  string `json:"content" validate:"required,notblank"`
	Receiver string `json:"receiver" validate:"required,notblank"`
}

func (app *application) inboxHandler(w http.ResponseWriter, r *http.Request) {
	list, err := app.inbox.List(r.Context(), getActorFromContext(r).UserName)
	if err != nil {
		app.boardError(w, r, err)
		return
	}

	app.jsonResponse(w, http.StatusOK, list)
}

func (app *application) sendMessageHandler(w http.ResponseWriter, r *http.Request) {
	var payload SendMessagePayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	m, err := app.inbox.Send(r.Context(), discussion.NewMessage{
		Title:    payload.Title,
		Content:  payload.Content,
		Author:   getActorFromContext(r).UserName,
		Receiver: payload.Receiver,
	})
	if err != nil {
		app.boardError(w, r, err)
		return
	}

	app.jsonResponse(w, http.StatusCreated, m)
}

func (app *application) getMessageHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "messageID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	m, err := app.inbox.Get(r.Context(), getActorFromContext(r), id)
	if err != nil {
		app.boardError(w, r, err)
		return
	}

	app.jsonResponse(w, http.StatusOK, m)
}
