package handlers

import (
	"errors"
	"mime"
	"net/http"
	"strconv"

	"github.com/Dosada05/campus-tournaments/models"
	"github.com/Dosada05/campus-tournaments/services"
)

const exportURLHeader = "X-Export-URL"

type RegistrationHandler struct {
	registrationService services.RegistrationService
	exportService       services.ExportService
}

func NewRegistrationHandler(rs services.RegistrationService, es services.ExportService) *RegistrationHandler {
	return &RegistrationHandler{
		registrationService: rs,
		exportService:       es,
	}
}

// RegisterHandler обрабатывает POST /api/tournaments/{tournamentID}/registrations
func (h *RegistrationHandler) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var form models.RegistrationForm
	if err := readJSON(w, r, &form); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	reg, err := h.registrationService.Register(r.Context(), tournamentID, form)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"registration": reg}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// LookupHandler обрабатывает GET /api/registrations?email=
func (h *RegistrationHandler) LookupHandler(w http.ResponseWriter, r *http.Request) {
	regs, err := h.registrationService.LookupByEmail(r.Context(), r.URL.Query().Get("email"))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"registrations": regs}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// RosterHandler обрабатывает GET /api/admin/tournaments/{tournamentID}/registrations
func (h *RegistrationHandler) RosterHandler(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	roster, err := h.registrationService.Roster(r.Context(), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, roster, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ExportHandler обрабатывает GET /api/admin/tournaments/{tournamentID}/registrations/export
func (h *RegistrationHandler) ExportHandler(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	export, err := h.exportService.RegistrationsCSV(r.Context(), tournamentID)
	if err != nil {
		if errors.Is(err, services.ErrNothingToExport) {
			// Файл не формируется, клиент показывает уведомление.
			if wErr := writeJSON(w, http.StatusOK, jsonResponse{"message": "No registrations to export"}, nil); wErr != nil {
				serverErrorResponse(w, r, wErr)
			}
			return
		}
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": export.FileName}))
	w.Header().Set("Content-Length", strconv.Itoa(len(export.Content)))
	if export.ArchiveURL != "" {
		w.Header().Set(exportURLHeader, export.ArchiveURL)
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(export.Content)
}
