package sessionx

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestIssueDecodeRoundTrip(t *testing.T) {
	t.Parallel()

	issuer := NewIssuer([]byte("top-secret"), DefaultTTL)

	token, err := issuer.Issue("01JABCDEFGHJKMNPQRSTVWXYZ0")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := issuer.Decode(token)
	require.NoError(t, err)
	require.Equal(t, "01JABCDEFGHJKMNPQRSTVWXYZ0", userID)
}

func TestDecodeValidForFullWindow(t *testing.T) {
	t.Parallel()

	issuedAt := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	issuer := NewIssuer([]byte("top-secret"), DefaultTTL)
	issuer.now = func() time.Time { return issuedAt }

	token, err := issuer.Issue("user-1")
	require.NoError(t, err)

	// Just inside the 24h window.
	issuer.now = func() time.Time { return issuedAt.Add(DefaultTTL - time.Minute) }
	userID, err := issuer.Decode(token)
	require.NoError(t, err)
	require.Equal(t, "user-1", userID)

	// Past expiry.
	issuer.now = func() time.Time { return issuedAt.Add(DefaultTTL + time.Minute) }
	_, err = issuer.Decode(token)
	require.ErrorIs(t, err, ErrExpired)
}

func TestDecodeRejectsTampering(t *testing.T) {
	t.Parallel()

	issuer := NewIssuer([]byte("top-secret"), DefaultTTL)

	token, err := issuer.Issue("user-1")
	require.NoError(t, err)

	// Flip a character in the payload segment.
	parts := strings.SplitN(token, ".", 3)
	require.Len(t, parts, 3)
	payload := []byte(parts[1])
	if payload[0] == 'A' {
		payload[0] = 'B'
	} else {
		payload[0] = 'A'
	}
	tampered := parts[0] + "." + string(payload) + "." + parts[2]

	_, err = issuer.Decode(tampered)
	require.ErrorIs(t, err, ErrInvalid)
}

func TestDecodeRejectsWrongSecret(t *testing.T) {
	t.Parallel()

	token, err := NewIssuer([]byte("secret-a"), DefaultTTL).Issue("user-1")
	require.NoError(t, err)

	_, err = NewIssuer([]byte("secret-b"), DefaultTTL).Decode(token)
	require.ErrorIs(t, err, ErrInvalid)
}

func TestDecodeRejectsGarbage(t *testing.T) {
	t.Parallel()

	issuer := NewIssuer([]byte("top-secret"), DefaultTTL)

	for _, in := range []string{"", "not-a-jwt", "a.b.c"} {
		_, err := issuer.Decode(in)
		require.ErrorIs(t, err, ErrInvalid)
	}
}
