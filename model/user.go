package model

import "time"

type Role string

const (
	RoleAdmin      Role = "admin"
	RoleRegistrant Role = "registrant"
	RoleUser       Role = "user"
)

// User is a registered account holder. The refresh token triple lives on
// the user row: at most one refresh token is active per user, and issuing
// a new one overwrites the previous triple.
type User struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Surname     string `json:"surname"`
	DateOfBirth string `json:"date_of_birth"`
	HomeAddress string `json:"home_address"`
	PhoneNumber string `json:"phone_number"`
	Gender      string `json:"gender"`
	InvitedBy   string `json:"invited_by"`
	Email       string `json:"email"`
	// PasswordHash is never exposed in JSON responses.
	PasswordHash string `json:"-"`
	Role         string `json:"role"`

	RefreshTokenID      *string    `json:"-"`
	RefreshTokenHash    *string    `json:"-"`
	RefreshTokenExpires *time.Time `json:"-"`

	CreatedAt time.Time `json:"created_at"`
}
