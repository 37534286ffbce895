package cryptox

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"

	"golang.org/x/crypto/argon2"
)

// Params control the Argon2id work factor. They are loaded once at startup
// and must not change for the lifetime of the process.
type Params struct {
	Memory      uint32 // Memory usage in KiB
	Iterations  uint32 // Iteration count
	Parallelism uint8  // Number of threads
	SaltLength  uint32 // Length of the random salt in bytes
	KeyLength   uint32 // Length of the derived key in bytes
}

// DefaultParams returns the baseline Argon2id parameters (19 MiB, t=2, p=1).
func DefaultParams() Params {
	return Params{
		Memory:      19 * 1024,
		Iterations:  2,
		Parallelism: 1,
		SaltLength:  16,
		KeyLength:   32,
	}
}

// ErrMalformedHash reports a stored hash that cannot be parsed. This is an
// infrastructure failure, not a wrong password.
var ErrMalformedHash = errors.New("cryptox: malformed password hash")

// Hasher produces and verifies peppered Argon2id password hashes in
// PHC string format.
type Hasher struct {
	params Params
	pepper string
}

// NewHasher builds a Hasher from the given parameters and pepper.
func NewHasher(params Params, pepper string) *Hasher {
	return &Hasher{params: params, pepper: pepper}
}

// Hash generates a PHC-format Argon2id hash string including salt and
// parameters. The ciphertext differs between calls for the same input
// because the salt is random.
func (h *Hasher) Hash(password string) (string, error) {
	salt := make([]byte, h.params.SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("cryptox: generate salt: %w", err)
	}

	hash := argon2.IDKey(
		[]byte(password+h.pepper),
		salt,
		h.params.Iterations,
		h.params.Memory,
		h.params.Parallelism,
		h.params.KeyLength,
	)

	b64Salt := base64.RawStdEncoding.EncodeToString(salt)
	b64Hash := base64.RawStdEncoding.EncodeToString(hash)

	// PHC-style encoded string
	return fmt.Sprintf(
		"$argon2id$v=19$m=%d,t=%d,p=%d$%s$%s",
		h.params.Memory,
		h.params.Iterations,
		h.params.Parallelism,
		b64Salt,
		b64Hash,
	), nil
}

// Verify compares a plaintext password against a PHC-style Argon2id hash
// using a constant-time comparison. It returns (false, nil) for a wrong
// password; an error is only returned when the stored hash is malformed.
func (h *Hasher) Verify(password, encodedHash string) (bool, error) {
	// Parse PHC format: $argon2id$v=19$m=X,t=Y,p=Z$salt$hash
	parts := make([]string, 0, 6)
	start := 0
	for i := range len(encodedHash) {
		if encodedHash[i] == '$' {
			parts = append(parts, encodedHash[start:i])
			start = i + 1
		}
	}
	parts = append(parts, encodedHash[start:])

	// Validate structure: ["", "argon2id", "v=19", "m=X,t=Y,p=Z", "salt", "hash"]
	if len(parts) != 6 || parts[1] != "argon2id" || parts[2] != "v=19" {
		return false, ErrMalformedHash
	}

	var mem, iters uint32
	var par uint8
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &mem, &iters, &par); err != nil {
		return false, fmt.Errorf("%w: bad parameters: %w", ErrMalformedHash, err)
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false, fmt.Errorf("%w: bad salt: %w", ErrMalformedHash, err)
	}
	expectedHash, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return false, fmt.Errorf("%w: bad hash: %w", ErrMalformedHash, err)
	}

	computed := argon2.IDKey(
		[]byte(password+h.pepper),
		salt,
		iters,
		mem,
		par,
		uint32(len(expectedHash)), // #nosec G115 - If this overflows we have bigger problems
	)

	return subtle.ConstantTimeCompare(computed, expectedHash) == 1, nil
}
