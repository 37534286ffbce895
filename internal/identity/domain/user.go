package domain

import (
	"strings"
	"time"
)

// User is the account record. The store owns it; the service holds a
// transient copy for the duration of a request.
type User struct {
	ID           string
	Fullname     string
	Email        string // unique, used as the login key
	PhoneNumber  string
	PasswordHash string // argon2id encoded, never serialized outward
	Role         Role
	Profile      Profile
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Profile holds the mutable, optional profile fields.
type Profile struct {
	Bio                string
	Skills             []string
	ProfilePhotoURL    string
	ResumeURL          string
	ResumeOriginalName string
}

// UserView is the sanitized projection of a User, safe for outward
// responses. It carries everything except the password hash.
type UserView struct {
	ID          string      `json:"id"`
	Fullname    string      `json:"fullname"`
	Email       string      `json:"email"`
	PhoneNumber string      `json:"phoneNumber"`
	Role        Role        `json:"role"`
	Profile     ProfileView `json:"profile"`
}

type ProfileView struct {
	Bio                string   `json:"bio"`
	Skills             []string `json:"skills"`
	ProfilePhotoURL    string   `json:"profilePhoto"`
	ResumeURL          string   `json:"resume"`
	ResumeOriginalName string   `json:"resumeOriginalName"`
}

// View returns the sanitized projection of u.
func (u User) View() UserView {
	skills := u.Profile.Skills
	if skills == nil {
		skills = []string{}
	}
	return UserView{
		ID:          u.ID,
		Fullname:    u.Fullname,
		Email:       u.Email,
		PhoneNumber: u.PhoneNumber,
		Role:        u.Role,
		Profile: ProfileView{
			Bio:                u.Profile.Bio,
			Skills:             skills,
			ProfilePhotoURL:    u.Profile.ProfilePhotoURL,
			ResumeURL:          u.Profile.ResumeURL,
			ResumeOriginalName: u.Profile.ResumeOriginalName,
		},
	}
}

// SplitSkills normalizes a comma-joined skills string into an ordered list:
// split on commas, trim surrounding whitespace, drop segments that trim to
// nothing.
func SplitSkills(s string) []string {
	parts := strings.Split(s, ",")
	skills := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			skills = append(skills, p)
		}
	}
	return skills
}
