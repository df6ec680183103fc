package useragent

import (
	"net/http"
	"strings"
)

type marker struct {
	needle  string
	exclude string
	name    string
}

// order matters: Edge and Chrome both claim Safari, Edge also claims Chrome
var browsers = []marker{
	{needle: "Edg/", name: "Edge"},
	{needle: "Firefox/", name: "Firefox"},
	{needle: "Chrome/", exclude: "Edg", name: "Chrome"},
	{needle: "Safari/", exclude: "Chrome", name: "Safari"},
	{needle: "curl/", name: "curl"},
}

var systems = []marker{
	{needle: "Android", name: "Android"},
	{needle: "iPhone", name: "iOS"},
	{needle: "iPad", name: "iOS"},
	{needle: "Windows", name: "Windows"},
	{needle: "Mac OS X", name: "macOS"},
	{needle: "Linux", name: "Linux"},
}

func match(ua string, list []marker) (marker, bool) {
	for _, m := range list {
		if strings.Contains(ua, m.needle) && (m.exclude == "" || !strings.Contains(ua, m.exclude)) {
			return m, true
		}
	}
	return marker{}, false
}

// Describe gives a short "Browser 120 on OS" label for connection logs.
func Describe(r *http.Request) string {
	ua := r.Header.Get("User-Agent")
	if ua == "" {
		return "unknown client"
	}

	browser, os := "unknown browser", "unknown OS"
	if m, ok := match(ua, browsers); ok {
		browser = m.name
		if v := majorVersion(ua, m.needle); v != "" {
			browser += " " + v
		}
	}
	if m, ok := match(ua, systems); ok {
		os = m.name
	}
	return browser + " on " + os
}

func majorVersion(ua, needle string) string {
	idx := strings.Index(ua, needle)
	if idx == -1 {
		return ""
	}
	rest := ua[idx+len(needle):]
	end := 0
	for end < len(rest) && rest[end] >= '0' && rest[end] <= '9' {
		end++
	}
	return rest[:end]
}

// ClientIP prefers proxy headers over RemoteAddr.
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}

	ip := r.RemoteAddr
	if idx := strings.LastIndex(ip, ":"); idx != -1 {
		ip = ip[:idx]
	}
	return strings.Trim(ip, "[]")
}
