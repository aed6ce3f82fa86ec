// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/lagiland/scoreboard/internal/adapters/repository"
	service "github.com/lagiland/scoreboard/internal/app"
)

// ContestantsHandler handles submission, listing and deletion.
type ContestantsHandler struct {
	deps Dependencies
}

// NewContestantsHandler creates a new contestants handler.
func NewContestantsHandler(deps Dependencies) *ContestantsHandler {
	return &ContestantsHandler{deps: deps}
}

// HandleContestants handles POST /contestants and GET /contestants?q=.
func (h *ContestantsHandler) HandleContestants(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.handleSubmit(w, r)
	case http.MethodGet:
		h.handleList(w, r)
	default:
		http.NotFound(w, r)
	}
}

func (h *ContestantsHandler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	const op = "api.submit_contestant"

	var req submissionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	contestant, err := h.deps.Submit(r.Context(), req.toSubmission())
	switch {
	case err == nil:
		writeJSON(w, http.StatusCreated, contestant)
	case errors.Is(err, service.ErrValidation):
		writeError(w, http.StatusBadRequest, "bad_request", Wrap(op, err))
	case errors.Is(err, service.ErrDuplicateSubmission):
		writeError(w, http.StatusConflict, "duplicate_submission", Wrap(op, err))
	default:
		// The row store is a remote dependency; surface its failures
		// as a bad gateway so callers can retry.
		writeError(w, http.StatusBadGateway, "store_unavailable", WrapKind(op, ErrStore, err))
	}
}

func (h *ContestantsHandler) handleList(w http.ResponseWriter, r *http.Request) {
	contestants, stale := h.deps.Contestants(r.Context(), r.URL.Query().Get("q"))
	writeJSON(w, http.StatusOK, listResponse{Contestants: contestants, Stale: stale})
}

// HandleContestantByID handles DELETE /contestants/{id} requests.
func (h *ContestantsHandler) HandleContestantByID(w http.ResponseWriter, r *http.Request) {
	const op = "api.delete_contestant"
	if r.Method != http.MethodDelete {
		http.NotFound(w, r)
		return
	}
	id := strings.TrimPrefix(r.URL.Path, "/contestants/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}

	err := h.deps.Delete(r.Context(), id)
	switch {
	case err == nil:
		w.WriteHeader(http.StatusNoContent)
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", Wrap(op, err))
	default:
		writeError(w, http.StatusBadGateway, "store_unavailable", WrapKind(op, ErrStore, err))
	}
}
