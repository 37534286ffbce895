package httpx

import "net/http"

// SessionCookieName is the cookie carrying the session token.
const SessionCookieName = "token"

// SessionCookie builds the session cookie directive: not readable by
// scripts, transport-secured, cross-site capable. Pass maxAge <= 0 with an
// empty value to instruct the client to discard the session immediately
// (net/http renders negative MaxAge as "Max-Age=0").
func SessionCookie(value string, maxAge int) *http.Cookie {
	if maxAge <= 0 {
		maxAge = -1
	}
	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	}
}
