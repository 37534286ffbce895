package sqlite

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jahangeer-44/Job-Nest/internal/identity/domain"
	"github.com/jahangeer-44/Job-Nest/internal/identity/store"
)

type usersRepo struct {
	q querier
}

const userColumns = `id, fullname, email, phone_number, password_hash, role,
	bio, skills, profile_photo_url, resume_url, resume_original_name,
	created_at, updated_at`

func (r *usersRepo) GetByID(ctx context.Context, id string) (domain.User, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	return scanUser(row)
}

func (r *usersRepo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = ?`, email)
	return scanUser(row)
}

func (r *usersRepo) Create(ctx context.Context, u domain.User) error {
	skills, err := encodeSkills(u.Profile.Skills)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	_, err = r.q.ExecContext(ctx, `
		INSERT INTO users (
			id, fullname, email, phone_number, password_hash, role,
			bio, skills, profile_photo_url, resume_url, resume_original_name,
			created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.Fullname, u.Email, u.PhoneNumber, u.PasswordHash, string(u.Role),
		u.Profile.Bio, skills, u.Profile.ProfilePhotoURL,
		u.Profile.ResumeURL, u.Profile.ResumeOriginalName,
		now, now,
	)
	if err != nil {
		return mapConflict(err)
	}
	return nil
}

func (r *usersRepo) Update(ctx context.Context, u domain.User) error {
	skills, err := encodeSkills(u.Profile.Skills)
	if err != nil {
		return err
	}

	res, err := r.q.ExecContext(ctx, `
		UPDATE users SET
			fullname = ?, email = ?, phone_number = ?,
			bio = ?, skills = ?, profile_photo_url = ?,
			resume_url = ?, resume_original_name = ?,
			updated_at = ?
		WHERE id = ?`,
		u.Fullname, u.Email, u.PhoneNumber,
		u.Profile.Bio, skills, u.Profile.ProfilePhotoURL,
		u.Profile.ResumeURL, u.Profile.ResumeOriginalName,
		time.Now().UTC(),
		u.ID,
	)
	if err != nil {
		return mapConflict(err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (domain.User, error) {
	var (
		u      domain.User
		role   string
		skills string
	)
	err := row.Scan(
		&u.ID, &u.Fullname, &u.Email, &u.PhoneNumber, &u.PasswordHash, &role,
		&u.Profile.Bio, &skills, &u.Profile.ProfilePhotoURL,
		&u.Profile.ResumeURL, &u.Profile.ResumeOriginalName,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}

	u.Role = domain.Role(role)
	u.Profile.Skills, err = decodeSkills(skills)
	if err != nil {
		return domain.User{}, err
	}
	return u, nil
}

// Skills are stored as a JSON array so entries may themselves contain
// commas or spaces.
func encodeSkills(skills []string) (string, error) {
	if skills == nil {
		skills = []string{}
	}
	raw, err := json.Marshal(skills)
	if err != nil {
		return "", fmt.Errorf("sqlite: encode skills: %w", err)
	}
	return string(raw), nil
}

func decodeSkills(raw string) ([]string, error) {
	if raw == "" {
		return nil, nil
	}
	var skills []string
	if err := json.Unmarshal([]byte(raw), &skills); err != nil {
		return nil, fmt.Errorf("sqlite: decode skills: %w", err)
	}
	if len(skills) == 0 {
		return nil, nil
	}
	return skills, nil
}
