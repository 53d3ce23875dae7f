package handlers

import (
	"net/http"

	"github.com/Dosada05/campus-tournaments/models"
	"github.com/Dosada05/campus-tournaments/services"
)

type LeaderboardHandler struct {
	leaderboardService services.LeaderboardService
}

func NewLeaderboardHandler(ls services.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{leaderboardService: ls}
}

// PublicHandler обрабатывает GET /api/leaderboards
func (h *LeaderboardHandler) PublicHandler(w http.ResponseWriter, r *http.Request) {
	boards, err := h.leaderboardService.Public(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"leaderboards": boards}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// TournamentHandler обрабатывает GET /api/tournaments/{tournamentID}/leaderboard
func (h *LeaderboardHandler) TournamentHandler(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	board, err := h.leaderboardService.ForTournament(r.Context(), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, board, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// AddEntryHandler обрабатывает POST /api/admin/tournaments/{tournamentID}/leaderboard
func (h *LeaderboardHandler) AddEntryHandler(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var form models.LeaderboardEntryForm
	if err := readJSON(w, r, &form); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	entry, err := h.leaderboardService.AddEntry(r.Context(), tournamentID, form)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"entry": entry}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// DeleteEntryHandler обрабатывает DELETE /api/admin/leaderboard/{entryID}
func (h *LeaderboardHandler) DeleteEntryHandler(w http.ResponseWriter, r *http.Request) {
	entryID, err := getIDFromURL(r, "entryID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.leaderboardService.DeleteEntry(r.Context(), entryID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
