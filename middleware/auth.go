package middleware

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"
)

const (
	AdminSessionCookie = "admin_session"
	AdminLoginPath     = "/admin/login"

	// Браузеры не хранят cookie дольше 400 дней.
	persistentCookieMaxAge = 400 * 24 * 60 * 60
)

// SessionChecker проверяет флаг "администратор разблокирован".
type SessionChecker interface {
	IsUnlocked(token string) bool
}

// RequireAdmin: рекомендательный guard, а не граница безопасности.
// Навигацию браузера перенаправляет на страницу входа, API-запросам отвечает 401.
func RequireAdmin(sessions SessionChecker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if sessions.IsUnlocked(SessionToken(r)) {
				next.ServeHTTP(w, r)
				return
			}

			if strings.Contains(r.Header.Get("Accept"), "text/html") {
				http.Redirect(w, r, AdminLoginPath, http.StatusSeeOther)
				return
			}

			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{
				"error": "administrator login required",
				"login": AdminLoginPath,
			})
		})
	}
}

func SessionToken(r *http.Request) string {
	c, err := r.Cookie(AdminSessionCookie)
	if err != nil {
		return ""
	}
	return c.Value
}

// SetSessionCookie: ttl == 0 означает "помнить, пока не выйдет".
func SetSessionCookie(w http.ResponseWriter, r *http.Request, token string, ttl time.Duration) {
	maxAge := persistentCookieMaxAge
	if ttl > 0 {
		maxAge = int(ttl.Seconds())
	}
	http.SetCookie(w, &http.Cookie{
		Name:     AdminSessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
}

func ClearSessionCookie(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     AdminSessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
}
