package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/jahangeer-44/Job-Nest/internal/identity/domain"
	"github.com/jahangeer-44/Job-Nest/internal/identity/service"
	"github.com/jahangeer-44/Job-Nest/pkg/httpx"
	"github.com/jahangeer-44/Job-Nest/pkg/slogx"
)

// Response is the envelope every endpoint answers with.
type Response struct {
	Success bool             `json:"success"`
	Message string           `json:"message"`
	User    *domain.UserView `json:"user,omitempty"`
}

func writeOK(w http.ResponseWriter, code int, message string, user *domain.UserView) {
	httpx.WriteJSON(w, code, Response{Success: true, Message: message, User: user})
}

func writeError(w http.ResponseWriter, code int, message string) {
	httpx.WriteJSON(w, code, Response{Success: false, Message: message})
}

// writeServiceError translates the service error taxonomy into status
// codes and user-facing messages. Anything unrecognized is infrastructure
// failure: logged with detail, surfaced as a generic 500.
func writeServiceError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrMissingFields):
		writeError(w, http.StatusBadRequest, "All fields are required.")
	case errors.Is(err, service.ErrInvalidRole):
		writeError(w, http.StatusBadRequest, "Role must be either applicant or recruiter.")
	case errors.Is(err, service.ErrUnsupportedFileType):
		writeError(w, http.StatusBadRequest, "Only JPG, JPEG, or PNG images are allowed.")
	case errors.Is(err, service.ErrEmailTaken):
		writeError(w, http.StatusConflict, "User already exists.")
	case errors.Is(err, service.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "Incorrect email or password.")
	case errors.Is(err, service.ErrRoleMismatch):
		writeError(w, http.StatusForbidden, "Account doesn't exist with the selected role.")
	case errors.Is(err, service.ErrNotFound):
		writeError(w, http.StatusNotFound, "User not found.")
	default:
		slogx.FromContext(ctx).Error("request failed", "err", err)
		writeError(w, http.StatusInternalServerError, "Internal server error.")
	}
}
