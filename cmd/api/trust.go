package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// The caller is always the student side of the trust edge.

func (app *application) listTrustedHandler(w http.ResponseWriter, r *http.Request) {
	names, err := app.board.Trust().List(r.Context(), getActorFromContext(r).UserName)
	if err != nil {
		app.boardError(w, r, err)
		return
	}

	app.jsonResponse(w, http.StatusOK, names)
}

func (app *application) listTrustersHandler(w http.ResponseWriter, r *http.Request) {
	names, err := app.board.Trust().Trusters(r.Context(), getActorFromContext(r).UserName)
	if err != nil {
		app.boardError(w, r, err)
		return
	}

	app.jsonResponse(w, http.StatusOK, names)
}

func (app *application) isTrustedHandler(w http.ResponseWriter, r *http.Request) {
	reviewer := chi.URLParam(r, "reviewer")

	trusted, err := app.board.Trust().IsTrusted(r.Context(), getActorFromContext(r).UserName, reviewer)
	if err != nil {
		app.boardError(w, r, err)
		return
	}

	app.jsonResponse(w, http.StatusOK, map[string]bool{"trusted": trusted})
}

// addTrustedHandler answers 201 when a new edge was stored and 200 when the
// request was a no-op (already trusted, self trust).
func (app *application) addTrustedHandler(w http.ResponseWriter, r *http.Request) {
	reviewer := chi.URLParam(r, "reviewer")

	added, err := app.board.Trust().Add(r.Context(), getActorFromContext(r).UserName, reviewer)
	if err != nil {
		app.boardError(w, r, err)
		return
	}

	status := http.StatusOK
	if added {
		status = http.StatusCreated
	}
	app.jsonResponse(w, status, map[string]bool{"added": added})
}

func (app *application) removeTrustedHandler(w http.ResponseWriter, r *http.Request) {
	reviewer := chi.URLParam(r, "reviewer")

	removed, err := app.board.Trust().Remove(r.Context(), getActorFromContext(r).UserName, reviewer)
	if err != nil {
		app.boardError(w, r, err)
		return
	}

	app.jsonResponse(w, http.StatusOK, map[string]bool{"removed": removed})
}

func (app *application) clearTrustedHandler(w http.ResponseWriter, r *http.Request) {
	n, err := app.board.Trust().Clear(r.Context(), getActorFromContext(r).UserName)
	if err != nil {
		app.boardError(w, r, err)
		return
	}

	app.jsonResponse(w, http.StatusOK, map[string]int64{"removed": n})
}
