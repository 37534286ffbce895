package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/jahangeer-44/Job-Nest/internal/identity/domain"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	t.Parallel()

	role, err := domain.ParseRole("applicant")
	require.NoError(t, err)
	require.Equal(t, domain.RoleApplicant, role)

	role, err = domain.ParseRole("recruiter")
	require.NoError(t, err)
	require.Equal(t, domain.RoleRecruiter, role)

	for _, in := range []string{"", "admin", "Applicant", "RECRUITER"} {
		_, err := domain.ParseRole(in)
		require.Error(t, err, "role %q should be rejected", in)
	}
}

func TestSplitSkills(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want []string
	}{
		{"a, b ,c", []string{"a", "b", "c"}},
		{"go,sql,  project management  ", []string{"go", "sql", "project management"}},
		{"solo", []string{"solo"}},
		{"a,,b, ,c", []string{"a", "b", "c"}},
		{"", []string{}},
		{" , ", []string{}},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, domain.SplitSkills(tt.in), "input %q", tt.in)
	}
}

func TestViewNeverExposesPasswordHash(t *testing.T) {
	t.Parallel()

	u := domain.User{
		ID:           "01JUSER00000000000000000000",
		Fullname:     "Ann",
		Email:        "a@x.com",
		PhoneNumber:  "1",
		PasswordHash: "$argon2id$v=19$m=19456,t=2,p=1$c2FsdA$aGFzaA",
		Role:         domain.RoleApplicant,
	}

	raw, err := json.Marshal(u.View())
	require.NoError(t, err)
	require.NotContains(t, string(raw), "argon2id")
	require.NotContains(t, string(raw), u.PasswordHash)
}

func TestViewMarshalsEmptySkillsAsArray(t *testing.T) {
	t.Parallel()

	raw, err := json.Marshal(domain.User{}.View())
	require.NoError(t, err)
	require.Contains(t, string(raw), `"skills":[]`)
}
