package useragent

import (
	"net/http/httptest"
	"testing"
)

func TestDescribe(t *testing.T) {
	cases := []struct {
		ua   string
		want string
	}{
		{"", "unknown client"},
		{"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36", "Chrome 120 on Linux"},
		{"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36 Edg/120.0.2210.61", "Edge 120 on Windows"},
		{"Mozilla/5.0 (Macintosh; Intel Mac OS X 14_1) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.1 Safari/605.1.15", "Safari 605 on macOS"},
		{"Mozilla/5.0 (Android 14; Mobile; rv:121.0) Gecko/121.0 Firefox/121.0", "Firefox 121 on Android"},
		{"curl/8.4.0", "curl 8 on unknown OS"},
	}

	for _, tc := range cases {
		r := httptest.NewRequest("GET", "/", nil)
		if tc.ua != "" {
			r.Header.Set("User-Agent", tc.ua)
		}
		if got := Describe(r); got != tc.want {
			t.Errorf("Describe(%q) = %q, want %q", tc.ua, got, tc.want)
		}
	}
}

func TestClientIP(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.RemoteAddr = "10.0.0.5:51234"
	if got := ClientIP(r); got != "10.0.0.5" {
		t.Errorf("remote addr: got %q", got)
	}

	r.RemoteAddr = "[::1]:8080"
	if got := ClientIP(r); got != "::1" {
		t.Errorf("ipv6 remote addr: got %q", got)
	}

	r.Header.Set("X-Real-IP", " 192.168.1.9 ")
	if got := ClientIP(r); got != "192.168.1.9" {
		t.Errorf("x-real-ip: got %q", got)
	}

	r.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	if got := ClientIP(r); got != "203.0.113.7" {
		t.Errorf("x-forwarded-for: got %q", got)
	}
}
