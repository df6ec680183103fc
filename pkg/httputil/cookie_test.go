package httputil

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestGetTokenFromRequest(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	if _, err := GetTokenFromRequest(r); err != ErrNoToken {
		t.Fatalf("expected ErrNoToken, got %v", err)
	}

	r.AddCookie(&http.Cookie{Name: TableCookieName, Value: "from-cookie"})
	if tok, _ := GetTokenFromRequest(r); tok != "from-cookie" {
		t.Fatalf("expected cookie token, got %q", tok)
	}

	r.Header.Set("Authorization", "Bearer from-header")
	if tok, _ := GetTokenFromRequest(r); tok != "from-header" {
		t.Fatalf("header should win over cookie, got %q", tok)
	}
}

func TestSetTableCookie(t *testing.T) {
	rec := httptest.NewRecorder()
	SetTableCookie(rec, "tok", time.Hour, true)

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected one cookie, got %d", len(cookies))
	}
	c := cookies[0]
	if c.Value != "tok" || !c.Secure || !c.HttpOnly || c.MaxAge != 3600 || c.SameSite != http.SameSiteNoneMode {
		t.Fatalf("unexpected cookie %+v", c)
	}
}
