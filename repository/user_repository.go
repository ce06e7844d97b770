package repository

import (
	"database/sql"
	"errors"
	"time"

	"active-teams-api/model"

	"github.com/lib/pq"
)

// ErrDuplicateEmail is returned when an insert loses the race against
// another signup for the same address. Backed by the unique index on email.
var ErrDuplicateEmail = errors.New("email already registered")

// IUserRepository defines the contract for user persistence. The refresh
// token methods live in token_repository.go.
type IUserRepository interface {
	CreateUser(user *model.User) error
	GetUserByEmail(email string) (*model.User, error)
	GetUserByID(id int) (*model.User, error)
	GetAllUsers() ([]*model.User, error)
	UpdateUserRole(userID int, newRole string) error

	GetUserByRefreshTokenID(tokenID string) (*model.User, error)
	SetRefreshToken(userID int, tokenID, tokenHash string, expiresAt time.Time) error
	ClearRefreshToken(userID int) error
}

type UserRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{DB: db}
}

const userColumns = `id, name, surname, date_of_birth, home_address, phone_number, gender, invited_by,
	email, password_hash, role, refresh_token_id, refresh_token_hash, refresh_token_expires, created_at`

func scanUser(row *sql.Row) (*model.User, error) {
	user := &model.User{}
	err := row.Scan(
		&user.ID, &user.Name, &user.Surname, &user.DateOfBirth, &user.HomeAddress,
		&user.PhoneNumber, &user.Gender, &user.InvitedBy, &user.Email, &user.PasswordHash,
		&user.Role, &user.RefreshTokenID, &user.RefreshTokenHash, &user.RefreshTokenExpires,
		&user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (r *UserRepository) CreateUser(user *model.User) error {
	query := `INSERT INTO users (name, surname, date_of_birth, home_address, phone_number, gender, invited_by, email, password_hash, role)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id, created_at`
	err := r.DB.QueryRow(query,
		user.Name, user.Surname, user.DateOfBirth, user.HomeAddress, user.PhoneNumber,
		user.Gender, user.InvitedBy, user.Email, user.PasswordHash, user.Role,
	).Scan(&user.ID, &user.CreatedAt)
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return ErrDuplicateEmail
	}
	return err
}

func (r *UserRepository) GetUserByEmail(email string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email=$1`
	return scanUser(r.DB.QueryRow(query, email))
}

func (r *UserRepository) GetUserByID(id int) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id=$1`
	return scanUser(r.DB.QueryRow(query, id))
}

func (r *UserRepository) GetAllUsers() ([]*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY id`
	rows, err := r.DB.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*model.User
	for rows.Next() {
		user := &model.User{}
		if err := rows.Scan(
			&user.ID, &user.Name, &user.Surname, &user.DateOfBirth, &user.HomeAddress,
			&user.PhoneNumber, &user.Gender, &user.InvitedBy, &user.Email, &user.PasswordHash,
			&user.Role, &user.RefreshTokenID, &user.RefreshTokenHash, &user.RefreshTokenExpires,
			&user.CreatedAt,
		); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

func (r *UserRepository) UpdateUserRole(userID int, newRole string) error {
	query := `UPDATE users SET role = $1 WHERE id = $2`
	result, err := r.DB.Exec(query, newRole, userID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
