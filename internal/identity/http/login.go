package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/jahangeer-44/Job-Nest/internal/identity/service"
	"github.com/jahangeer-44/Job-Nest/pkg/httpx"
)

// LoginHandler serves POST /v1/users/login with a JSON body.
type LoginHandler struct {
	Identity *service.IdentityService
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req loginRequest
	if ct := r.Header.Get("Content-Type"); ct != "" && strings.HasPrefix(ct, "application/json") {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Malformed request body.")
			return
		}
	} else {
		// Form fallback for non-JSON clients.
		if err := parseRequestForm(r); err != nil {
			writeError(w, http.StatusBadRequest, "Malformed request body.")
			return
		}
		req = loginRequest{
			Email:    formValue(r, "email"),
			Password: formValue(r, "password"),
			Role:     formValue(r, "role"),
		}
	}

	result, err := h.Identity.Login(ctx, service.LoginInput{
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	http.SetCookie(w, httpx.SessionCookie(result.Session.Token, result.Session.MaxAgeSeconds))
	writeOK(w, http.StatusOK, "Welcome back, "+result.User.Fullname, &result.User)
}
