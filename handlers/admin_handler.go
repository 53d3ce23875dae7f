package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/Dosada05/campus-tournaments/middleware"
	"github.com/Dosada05/campus-tournaments/services"
)

type AdminHandler struct {
	sessionService services.AdminSessionService
	sessionTTL     time.Duration
}

func NewAdminHandler(ss services.AdminSessionService, sessionTTL time.Duration) *AdminHandler {
	return &AdminHandler{
		sessionService: ss,
		sessionTTL:     sessionTTL,
	}
}

type loginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginHandler обрабатывает POST /api/admin/login
func (h *AdminHandler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var input loginInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if strings.TrimSpace(input.Username) == "" || input.Password == "" {
		badRequestResponse(w, r, errors.New("username and password are required"))
		return
	}

	token, err := h.sessionService.Unlock(r.Context(), input.Username, input.Password)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	middleware.SetSessionCookie(w, r, token, h.sessionTTL)
	if err := writeJSON(w, http.StatusOK, jsonResponse{"unlocked": true}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// LogoutHandler обрабатывает POST /api/admin/logout
func (h *AdminHandler) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	middleware.ClearSessionCookie(w, r)
	if err := writeJSON(w, http.StatusOK, jsonResponse{"unlocked": false}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// SessionHandler обрабатывает GET /api/admin/session
func (h *AdminHandler) SessionHandler(w http.ResponseWriter, r *http.Request) {
	unlocked := h.sessionService.IsUnlocked(middleware.SessionToken(r))
	if err := writeJSON(w, http.StatusOK, jsonResponse{"unlocked": unlocked}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
