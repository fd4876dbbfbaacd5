package domain

import "time"

const (
	RoleCandidate = "candidate"
	RoleEmployer  = "employer"
)

// ValidRole reports whether role is one a user can register with.
func ValidRole(role string) bool {
	return role == RoleCandidate || role == RoleEmployer
}

// User models an account. Role is fixed at registration.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}

// UserSummary is the slice of a user joined onto profile reads.
type UserSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (u *User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Name: u.Name, Email: u.Email}
}
