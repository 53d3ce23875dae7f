package handlers

import (
	"errors"
	"net/http"

	"github.com/Dosada05/campus-tournaments/models"
	"github.com/Dosada05/campus-tournaments/services"
)

type TournamentHandler struct {
	tournamentService services.TournamentService
}

func NewTournamentHandler(ts services.TournamentService) *TournamentHandler {
	return &TournamentHandler{
		tournamentService: ts,
	}
}

// ListHandler обрабатывает GET /api/tournaments?tab=&search=&sport=
func (h *TournamentHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := services.PublicListFilter{
		Tab:    models.ListTab(query.Get("tab")),
		Search: query.Get("search"),
		Sport:  query.Get("sport"),
	}
	if filter.Tab != "" && !filter.Tab.Valid() {
		badRequestResponse(w, r, errors.New("tab must be 'open' or 'closed'"))
		return
	}

	list, err := h.tournamentService.ListPublic(r.Context(), filter)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, list, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetByIDHandler обрабатывает GET /api/tournaments/{tournamentID}
func (h *TournamentHandler) GetByIDHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	tournament, err := h.tournamentService.Get(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"tournament": tournament}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetFormHandler обрабатывает GET /api/admin/tournaments/{tournamentID}/form
func (h *TournamentHandler) GetFormHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	form, err := h.tournamentService.GetForm(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"form": form}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// CreateHandler обрабатывает POST /api/admin/tournaments
func (h *TournamentHandler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	var form models.TournamentForm
	if err := readJSON(w, r, &form); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	outcome, err := h.tournamentService.SubmitCreate(r.Context(), form)
	h.writeOutcome(w, r, http.StatusCreated, outcome, err)
}

// UpdateHandler обрабатывает PUT /api/admin/tournaments/{tournamentID}
func (h *TournamentHandler) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var form models.TournamentForm
	if err := readJSON(w, r, &form); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	outcome, err := h.tournamentService.SubmitUpdate(r.Context(), id, form)
	h.writeOutcome(w, r, http.StatusOK, outcome, err)
}

// writeOutcome возвращает состояние формы вместе с ошибкой, чтобы клиент мог повторить отправку.
func (h *TournamentHandler) writeOutcome(w http.ResponseWriter, r *http.Request, okStatus int, outcome services.FormOutcome, err error) {
	var vErr *services.ValidationError
	switch {
	case err == nil:
		if wErr := writeJSON(w, okStatus, outcome, nil); wErr != nil {
			serverErrorResponse(w, r, wErr)
		}
	case errors.As(err, &vErr):
		resp := jsonResponse{"error": vErr.Fields, "state": outcome.State, "form": outcome.Form}
		if wErr := writeJSON(w, http.StatusUnprocessableEntity, resp, nil); wErr != nil {
			serverErrorResponse(w, r, wErr)
		}
	case errors.Is(err, services.ErrTournamentNotFound):
		notFoundResponse(w, r)
	default:
		serverErrorResponseWith(w, r, err, jsonResponse{"state": outcome.State, "form": outcome.Form})
	}
}

// DeleteHandler обрабатывает DELETE /api/admin/tournaments/{tournamentID}
func (h *TournamentHandler) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.tournamentService.Delete(r.Context(), id); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
