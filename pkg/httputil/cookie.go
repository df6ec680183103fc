package httputil

import (
	"errors"
	"net/http"
	"strings"
	"time"
)

const TableCookieName = "table_token"

var ErrNoToken = errors.New("no table token found in cookie or header")

// SetTableCookie stores the table token for browsers that prefer cookies over headers.
func SetTableCookie(w http.ResponseWriter, token string, ttl time.Duration, production bool) {
	cookie := &http.Cookie{
		Name:     TableCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   production, // Only require HTTPS in production
	}

	// SameSite=None requires Secure=true, so use Lax for development
	if production {
		cookie.SameSite = http.SameSiteNoneMode
	} else {
		cookie.SameSite = http.SameSiteLaxMode
	}

	http.SetCookie(w, cookie)
}

func ClearTableCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     TableCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}

// GetTokenFromRequest prefers the Authorization header and falls back to the cookie.
func GetTokenFromRequest(r *http.Request) (string, error) {
	if authHeader := r.Header.Get("Authorization"); authHeader != "" {
		// Support "Bearer <token>" format
		if strings.HasPrefix(authHeader, "Bearer ") {
			return strings.TrimSpace(authHeader[len("Bearer "):]), nil
		}
		return authHeader, nil
	}

	cookie, err := r.Cookie(TableCookieName)
	if err != nil || cookie.Value == "" {
		return "", ErrNoToken
	}
	return cookie.Value, nil
}
