package http

import (
	"net/http"

	"github.com/jahangeer-44/Job-Nest/internal/identity/service"
	"github.com/jahangeer-44/Job-Nest/pkg/httpx"
)

// LogoutHandler serves GET /v1/users/logout. It only instructs the client
// to overwrite the session cookie with an already-expired empty value; the
// token itself is not validated and stays valid until expiry.
type LogoutHandler struct {
	Identity *service.IdentityService
}

func (h *LogoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	directive := h.Identity.EndSession()
	http.SetCookie(w, httpx.SessionCookie(directive.Token, directive.MaxAgeSeconds))
	writeOK(w, http.StatusOK, "Logged out successfully.", nil)
}
