package http

import (
	"net/http"

	"github.com/jahangeer-44/Job-Nest/internal/identity/service"
)

// ProfileHandler serves POST /v1/users/profile. The authn middleware has
// already decoded the session cookie and put the caller's identity into
// the request context.
type ProfileHandler struct {
	Identity *service.IdentityService
}

func (h *ProfileHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := UserIDFromContext(ctx)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Not authenticated.")
		return
	}

	if err := parseRequestForm(r); err != nil {
		writeError(w, http.StatusBadRequest, "Malformed request body.")
		return
	}

	resume, err := formFile(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Malformed file upload.")
		return
	}

	view, err := h.Identity.UpdateProfile(ctx, userID, service.UpdateProfileInput{
		Fullname:    formField(r, "fullname"),
		Email:       formField(r, "email"),
		PhoneNumber: formField(r, "phoneNumber"),
		Bio:         formField(r, "bio"),
		Skills:      formField(r, "skills"),
		Resume:      resume,
	})
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	writeOK(w, http.StatusOK, "Profile updated successfully.", &view)
}
