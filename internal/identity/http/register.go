package http

import (
	"net/http"

	"github.com/jahangeer-44/Job-Nest/internal/identity/service"
)

// RegisterHandler serves POST /v1/users/register. Accepts multipart
// form-data with an optional "file" part holding the profile photo.
type RegisterHandler struct {
	Identity *service.IdentityService
}

func (h *RegisterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := parseRequestForm(r); err != nil {
		writeError(w, http.StatusBadRequest, "Malformed request body.")
		return
	}

	photo, err := formFile(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Malformed file upload.")
		return
	}

	_, err = h.Identity.Register(ctx, service.RegisterInput{
		Fullname:    formValue(r, "fullname"),
		Email:       formValue(r, "email"),
		PhoneNumber: formValue(r, "phoneNumber"),
		Password:    formValue(r, "password"),
		Role:        formValue(r, "role"),
		Photo:       photo,
	})
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	writeOK(w, http.StatusCreated, "Account created successfully.", nil)
}
