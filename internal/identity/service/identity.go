package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jahangeer-44/Job-Nest/internal/identity/blob"
	"github.com/jahangeer-44/Job-Nest/internal/identity/domain"
	"github.com/jahangeer-44/Job-Nest/internal/identity/store"
	"github.com/jahangeer-44/Job-Nest/pkg/cryptox"
	"github.com/jahangeer-44/Job-Nest/pkg/idx"
	"github.com/jahangeer-44/Job-Nest/pkg/sessionx"
	"github.com/jahangeer-44/Job-Nest/pkg/slogx"
)

// IdentityService orchestrates registration, login, logout and profile
// updates. It is the only entry point the transport layer calls; crypto and
// persistence are delegated to the injected collaborators, never the
// reverse.
type IdentityService struct {
	Store    store.Store
	Hasher   *cryptox.Hasher
	Sessions *sessionx.Issuer
	Uploads  blob.Uploader
}

// SessionDirective tells the transport layer what to do with the session
// cookie. A zero value means "overwrite with an already-expired empty
// cookie", which is how a session ends.
type SessionDirective struct {
	Token         string
	MaxAgeSeconds int
}

type RegisterInput struct {
	Fullname    string
	Email       string
	PhoneNumber string
	Password    string
	Role        string
	Photo       *blob.File // optional profile photo
}

// Register creates a new account. Either the user ends up persisted with
// its photo URL, or no user exists at all: when the insert loses a
// duplicate-email race after the photo was already uploaded, the uploaded
// object is deleted again (best effort).
func (s *IdentityService) Register(ctx context.Context, in RegisterInput) (domain.UserView, error) {
	log := slogx.FromContext(ctx)

	if in.Fullname == "" || in.Email == "" || in.PhoneNumber == "" ||
		in.Password == "" || in.Role == "" {
		return domain.UserView{}, ErrMissingFields
	}
	role, err := domain.ParseRole(in.Role)
	if err != nil {
		return domain.UserView{}, fmt.Errorf("%w: %w", ErrInvalidRole, err)
	}

	// Fail fast on a known duplicate before touching the object store. The
	// unique constraint still backstops concurrent registrations below.
	if _, err := s.Store.Users().GetByEmail(ctx, in.Email); err == nil {
		return domain.UserView{}, ErrEmailTaken
	} else if !errors.Is(err, store.ErrNotFound) {
		return domain.UserView{}, fmt.Errorf("lookup email: %w", err)
	}

	var photoURL string
	if in.Photo != nil {
		if !blob.AllowedImageType(in.Photo.ContentType) {
			return domain.UserView{}, ErrUnsupportedFileType
		}
		photoURL, err = s.Uploads.Upload(ctx, *in.Photo, blob.CategoryAvatar)
		if err != nil {
			return domain.UserView{}, fmt.Errorf("upload profile photo: %w", err)
		}
	}

	hash, err := s.Hasher.Hash(in.Password)
	if err != nil {
		s.discardUpload(ctx, photoURL)
		return domain.UserView{}, fmt.Errorf("hash password: %w", err)
	}

	user := domain.User{
		ID:           idx.New().String(),
		Fullname:     in.Fullname,
		Email:        in.Email,
		PhoneNumber:  in.PhoneNumber,
		PasswordHash: hash,
		Role:         role,
		Profile: domain.Profile{
			ProfilePhotoURL: photoURL,
		},
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		return tx.Users().Create(ctx, user)
	})
	if err != nil {
		s.discardUpload(ctx, photoURL)
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.UserView{}, ErrEmailTaken
		}
		return domain.UserView{}, fmt.Errorf("create user: %w", err)
	}

	log.Info("user registered", "user_id", user.ID, "role", role.String())
	return user.View(), nil
}

// discardUpload is the compensating delete for an upload whose user row
// never materialized. Failure leaves an orphaned object, which is logged
// and otherwise accepted.
func (s *IdentityService) discardUpload(ctx context.Context, url string) {
	if url == "" {
		return
	}
	if err := s.Uploads.Delete(ctx, url); err != nil {
		slogx.FromContext(ctx).Warn("orphaned upload left behind", "url", url, "err", err)
	}
}

type LoginInput struct {
	Email    string
	Password string
	Role     string // claimed role, must match the stored one
}

type LoginResult struct {
	User    domain.UserView
	Session SessionDirective
}

// Login authenticates the user and mints a session token. Unknown email
// and wrong password are indistinguishable to the caller; the claimed role
// is only compared after the password verified, so a role mismatch never
// leaks password correctness.
func (s *IdentityService) Login(ctx context.Context, in LoginInput) (LoginResult, error) {
	log := slogx.FromContext(ctx)

	if in.Email == "" || in.Password == "" || in.Role == "" {
		return LoginResult{}, ErrMissingFields
	}

	user, err := s.Store.Users().GetByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return LoginResult{}, ErrInvalidCredentials
		}
		return LoginResult{}, fmt.Errorf("lookup email: %w", err)
	}

	ok, err := s.Hasher.Verify(in.Password, user.PasswordHash)
	if err != nil {
		return LoginResult{}, fmt.Errorf("verify password: %w", err)
	}
	if !ok {
		log.Info("login rejected", "user_id", user.ID)
		return LoginResult{}, ErrInvalidCredentials
	}

	if domain.Role(in.Role) != user.Role {
		log.Info("login role mismatch", "user_id", user.ID, "claimed", in.Role)
		return LoginResult{}, ErrRoleMismatch
	}

	token, err := s.Sessions.Issue(user.ID)
	if err != nil {
		return LoginResult{}, fmt.Errorf("issue session token: %w", err)
	}

	log.Info("user logged in", "user_id", user.ID)
	return LoginResult{
		User: user.View(),
		Session: SessionDirective{
			Token:         token,
			MaxAgeSeconds: int(s.Sessions.TTL().Seconds()),
		},
	}, nil
}

// EndSession produces the directive that discards the client's session
// cookie. There is nothing to validate and no failure path; the token
// itself stays valid until it expires.
func (s *IdentityService) EndSession() SessionDirective {
	return SessionDirective{}
}

// UpdateProfileInput carries the partial profile update. Nil pointers mean
// "leave untouched"; a pointer to an empty string is a deliberate
// overwrite. Presence is decided by the transport layer from the fields
// actually included in the request.
type UpdateProfileInput struct {
	Fullname    *string
	Email       *string
	PhoneNumber *string
	Bio         *string
	Skills      *string    // comma-joined, normalized here
	Resume      *blob.File // optional resume image
}

// UpdateProfile mutates the caller's user record field by field. The
// caller's identity was already resolved by the transport layer from the
// session cookie and is not re-validated here.
func (s *IdentityService) UpdateProfile(ctx context.Context, userID string, in UpdateProfileInput) (domain.UserView, error) {
	log := slogx.FromContext(ctx)

	user, err := s.Store.Users().GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.UserView{}, ErrNotFound
		}
		return domain.UserView{}, fmt.Errorf("lookup user: %w", err)
	}

	if in.Fullname != nil {
		user.Fullname = *in.Fullname
	}
	if in.Email != nil {
		user.Email = *in.Email
	}
	if in.PhoneNumber != nil {
		user.PhoneNumber = *in.PhoneNumber
	}
	if in.Bio != nil {
		user.Profile.Bio = *in.Bio
	}
	if in.Skills != nil {
		user.Profile.Skills = domain.SplitSkills(*in.Skills)
	}

	if in.Resume != nil {
		if !blob.AllowedImageType(in.Resume.ContentType) {
			return domain.UserView{}, ErrUnsupportedFileType
		}
		url, err := s.Uploads.Upload(ctx, *in.Resume, blob.CategoryResume)
		if err != nil {
			return domain.UserView{}, fmt.Errorf("upload resume: %w", err)
		}
		user.Profile.ResumeURL = url
		user.Profile.ResumeOriginalName = in.Resume.Filename
	}

	if err := s.Store.Users().Update(ctx, user); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.UserView{}, ErrEmailTaken
		}
		return domain.UserView{}, fmt.Errorf("save user: %w", err)
	}

	log.Info("profile updated", "user_id", user.ID)
	return user.View(), nil
}
