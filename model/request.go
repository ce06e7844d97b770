// file: model/request.go

package model

// SignupRequest defines the payload for creating a new user account.
// Password strength beyond the minimum length (letters and digits required)
// is enforced in the auth service, not here.
type SignupRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Surname     string `json:"surname" validate:"required,max=100"`
	DateOfBirth string `json:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
	HomeAddress string `json:"home_address" validate:"max=255"`
	PhoneNumber string `json:"phone_number" validate:"max=30"`
	Gender      string `json:"gender" validate:"max=20"`
	InvitedBy   string `json:"invited_by" validate:"max=100"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8"`
	Role        string `json:"role" validate:"omitempty,oneof=admin registrant user"`
}

// LoginRequest defines the payload for user authentication.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RefreshRequest carries the refresh pair back for rotation.
type RefreshRequest struct {
	RefreshTokenID     string `json:"refresh_token_id" validate:"required"`
	RefreshTokenSecret string `json:"refresh_token_secret" validate:"required"`
}

// UpdateUserRoleRequest defines the payload for updating a user's role.
// Using a dedicated struct instead of an inline anonymous struct in the
// handler keeps it compatible with tooling like swag.
type UpdateUserRoleRequest struct {
	Role Role `json:"role" validate:"required,oneof=admin registrant user"`
}

type CreatePersonRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Surname     string `json:"surname" validate:"required,max=100"`
	DateOfBirth string `json:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
	HomeAddress string `json:"home_address" validate:"max=255"`
	PhoneNumber string `json:"phone_number" validate:"max=30"`
	Gender      string `json:"gender" validate:"max=20"`
	InvitedBy   string `json:"invited_by" validate:"max=100"`
	Email       string `json:"email" validate:"omitempty,email"`
}

type CreateEventRequest struct {
	Name        string `json:"name" validate:"required,max=150"`
	Category    string `json:"category" validate:"required,max=50"`
	StartsAt    string `json:"starts_at" validate:"required"`
	Location    string `json:"location" validate:"required,max=150"`
	Description string `json:"description" validate:"max=1000"`
	IsTicketed  bool   `json:"is_ticketed"`
}

type CheckInRequest struct {
	EventID  int `json:"event_id" validate:"required,gt=0"`
	PersonID int `json:"person_id" validate:"required,gt=0"`
}

type CreateCellGroupRequest struct {
	Name          string `json:"name" validate:"required,max=150"`
	Weekday       int    `json:"weekday" validate:"min=0,max=6"`
	IntervalWeeks int    `json:"interval_weeks" validate:"required,min=1,max=52"`
}

type AddCellGroupMemberRequest struct {
	PersonID int `json:"person_id" validate:"required,gt=0"`
}

type CreateTaskRequest struct {
	PersonID     int    `json:"person_id" validate:"required,gt=0"`
	Kind         string `json:"kind" validate:"required,oneof=calling visiting"`
	FollowUpDate string `json:"follow_up_date" validate:"required,datetime=2006-01-02"`
	Notes        string `json:"notes" validate:"max=1000"`
}
