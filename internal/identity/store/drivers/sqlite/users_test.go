package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/jahangeer-44/Job-Nest/internal/identity/domain"
	"github.com/jahangeer-44/Job-Nest/internal/identity/store"
	"github.com/jahangeer-44/Job-Nest/internal/identity/store/drivers/sqlite"
	"github.com/jahangeer-44/Job-Nest/pkg/idx"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()

	s, err := sqlite.NewStore(filepath.Join(t.TempDir(), "identity.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	return s
}

func testUser(email string) domain.User {
	return domain.User{
		ID:           idx.New().String(),
		Fullname:     "Ann Example",
		Email:        email,
		PhoneNumber:  "0400000000",
		PasswordHash: "$argon2id$v=19$m=19456,t=2,p=1$c2FsdA$aGFzaA",
		Role:         domain.RoleApplicant,
	}
}

func TestCreateAndGetUser(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()

	u := testUser("ann@example.com")
	u.Profile = domain.Profile{
		Bio:    "Gopher",
		Skills: []string{"go", "sql", "project management"},
	}
	require.NoError(t, s.Users().Create(ctx, u))

	byID, err := s.Users().GetByID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, u.Email, byID.Email)
	require.Equal(t, u.PasswordHash, byID.PasswordHash)
	require.Equal(t, domain.RoleApplicant, byID.Role)
	require.Equal(t, []string{"go", "sql", "project management"}, byID.Profile.Skills)
	require.False(t, byID.CreatedAt.IsZero())

	byEmail, err := s.Users().GetByEmail(ctx, u.Email)
	require.NoError(t, err)
	require.Equal(t, u.ID, byEmail.ID)
}

func TestGetMissingUser(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.Users().GetByID(ctx, idx.New().String())
	require.ErrorIs(t, err, store.ErrNotFound)

	_, err = s.Users().GetByEmail(ctx, "nobody@example.com")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestCreateDuplicateEmail(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Users().Create(ctx, testUser("dupe@example.com")))

	// Same email, entirely different remaining fields.
	second := testUser("dupe@example.com")
	second.Fullname = "Someone Else"
	second.Role = domain.RoleRecruiter
	err := s.Users().Create(ctx, second)
	require.ErrorIs(t, err, store.ErrAlreadyExists)

	// The first row survived untouched.
	existing, err := s.Users().GetByEmail(ctx, "dupe@example.com")
	require.NoError(t, err)
	require.Equal(t, "Ann Example", existing.Fullname)
}

func TestUpdateUser(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()

	u := testUser("update@example.com")
	require.NoError(t, s.Users().Create(ctx, u))

	u.Fullname = "Ann Updated"
	u.Profile.Bio = "Now a recruiter magnet"
	u.Profile.Skills = []string{"leadership"}
	u.Profile.ResumeURL = "https://objects.example.com/resumes/ann.png"
	u.Profile.ResumeOriginalName = "ann-resume.png"
	require.NoError(t, s.Users().Update(ctx, u))

	got, err := s.Users().GetByID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, "Ann Updated", got.Fullname)
	require.Equal(t, "Now a recruiter magnet", got.Profile.Bio)
	require.Equal(t, []string{"leadership"}, got.Profile.Skills)
	require.Equal(t, "ann-resume.png", got.Profile.ResumeOriginalName)
	require.True(t, got.UpdatedAt.Compare(got.CreatedAt) >= 0)
}

func TestUpdateMissingUser(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)

	err := s.Users().Update(context.Background(), testUser("ghost@example.com"))
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestWithTxRollsBackOnError(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()

	u := testUser("tx@example.com")
	err := s.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Users().Create(ctx, u); err != nil {
			return err
		}
		return context.Canceled // force rollback
	})
	require.Error(t, err)

	_, err = s.Users().GetByEmail(ctx, u.Email)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestWithTxCommits(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()

	u := testUser("committed@example.com")
	require.NoError(t, s.WithTx(ctx, func(tx store.Tx) error {
		return tx.Users().Create(ctx, u)
	}))

	got, err := s.Users().GetByEmail(ctx, u.Email)
	require.NoError(t, err)
	require.Equal(t, u.ID, got.ID)
}
