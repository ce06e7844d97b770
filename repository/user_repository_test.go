package repository

import (
	"database/sql"
	"os"
	"testing"
	"time"

	"active-teams-api/logger"
	"active-teams-api/model"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

var userRows = []string{
	"id", "name", "surname", "date_of_birth", "home_address", "phone_number",
	"gender", "invited_by", "email", "password_hash", "role",
	"refresh_token_id", "refresh_token_hash", "refresh_token_expires", "created_at",
}

func userRow(user *model.User) *sqlmock.Rows {
	return sqlmock.NewRows(userRows).AddRow(
		user.ID, user.Name, user.Surname, user.DateOfBirth, user.HomeAddress,
		user.PhoneNumber, user.Gender, user.InvitedBy, user.Email, user.PasswordHash,
		user.Role, user.RefreshTokenID, user.RefreshTokenHash, user.RefreshTokenExpires,
		user.CreatedAt,
	)
}

func TestUserRepository_CreateUser(t *testing.T) {
	db, dbMock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewUserRepository(db)
	user := &model.User{
		Name:         "Jane",
		Surname:      "Doe",
		Email:        "jane@example.com",
		PasswordHash: "$2a$10$hash",
		Role:         string(model.RoleUser),
	}

	dbMock.ExpectQuery("INSERT INTO users").
		WithArgs(user.Name, user.Surname, user.DateOfBirth, user.HomeAddress,
			user.PhoneNumber, user.Gender, user.InvitedBy, user.Email,
			user.PasswordHash, user.Role).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(5, time.Now()))

	err = repo.CreateUser(user)

	assert.NoError(t, err)
	assert.Equal(t, 5, user.ID)
	assert.NoError(t, dbMock.ExpectationsWereMet())
}

func TestUserRepository_CreateUser_DuplicateEmail(t *testing.T) {
	db, dbMock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewUserRepository(db)

	dbMock.ExpectQuery("INSERT INTO users").
		WillReturnError(&pq.Error{Code: "23505"})

	err = repo.CreateUser(&model.User{Email: "jane@example.com", Role: string(model.RoleUser)})

	assert.ErrorIs(t, err, ErrDuplicateEmail)
	assert.NoError(t, dbMock.ExpectationsWereMet())
}

func TestUserRepository_GetUserByEmail(t *testing.T) {
	db, dbMock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewUserRepository(db)
	stored := &model.User{ID: 3, Email: "jane@example.com", Role: "user", CreatedAt: time.Now()}

	t.Run("found", func(t *testing.T) {
		dbMock.ExpectQuery("SELECT (.+) FROM users WHERE email=\\$1").
			WithArgs("jane@example.com").
			WillReturnRows(userRow(stored))

		user, err := repo.GetUserByEmail("jane@example.com")

		assert.NoError(t, err)
		assert.Equal(t, 3, user.ID)
		assert.Nil(t, user.RefreshTokenID)
	})

	t.Run("missing", func(t *testing.T) {
		dbMock.ExpectQuery("SELECT (.+) FROM users WHERE email=\\$1").
			WithArgs("nobody@example.com").
			WillReturnError(sql.ErrNoRows)

		_, err := repo.GetUserByEmail("nobody@example.com")

		assert.ErrorIs(t, err, sql.ErrNoRows)
	})

	assert.NoError(t, dbMock.ExpectationsWereMet())
}

func TestUserRepository_GetUserByRefreshTokenID(t *testing.T) {
	db, dbMock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewUserRepository(db)
	tokenID := "0b37a3f0-3bb2-4f8c-bdc1-5f0f61a2b5c1"
	hash := "$2a$10$refreshhash"
	expires := time.Now().Add(24 * time.Hour)
	stored := &model.User{
		ID: 3, Email: "jane@example.com", Role: "user",
		RefreshTokenID: &tokenID, RefreshTokenHash: &hash, RefreshTokenExpires: &expires,
		CreatedAt: time.Now(),
	}

	dbMock.ExpectQuery("SELECT (.+) FROM users WHERE refresh_token_id=\\$1").
		WithArgs(tokenID).
		WillReturnRows(userRow(stored))

	user, err := repo.GetUserByRefreshTokenID(tokenID)

	assert.NoError(t, err)
	require.NotNil(t, user.RefreshTokenHash)
	assert.Equal(t, hash, *user.RefreshTokenHash)
	assert.NoError(t, dbMock.ExpectationsWereMet())
}

func TestUserRepository_SetRefreshToken(t *testing.T) {
	db, dbMock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewUserRepository(db)
	expires := time.Now().Add(24 * time.Hour)

	t.Run("updates the row", func(t *testing.T) {
		dbMock.ExpectExec("UPDATE users SET refresh_token_id").
			WithArgs("token-id", "token-hash", expires, 3).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.SetRefreshToken(3, "token-id", "token-hash", expires)

		assert.NoError(t, err)
	})

	t.Run("unknown user", func(t *testing.T) {
		dbMock.ExpectExec("UPDATE users SET refresh_token_id").
			WithArgs("token-id", "token-hash", expires, 99).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.SetRefreshToken(99, "token-id", "token-hash", expires)

		assert.ErrorIs(t, err, sql.ErrNoRows)
	})

	assert.NoError(t, dbMock.ExpectationsWereMet())
}

func TestUserRepository_ClearRefreshToken(t *testing.T) {
	db, dbMock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewUserRepository(db)

	dbMock.ExpectExec("UPDATE users SET refresh_token_id = NULL").
		WithArgs(3).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.ClearRefreshToken(3)

	assert.NoError(t, err)
	assert.NoError(t, dbMock.ExpectationsWereMet())
}

func TestUserRepository_UpdateUserRole(t *testing.T) {
	db, dbMock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewUserRepository(db)

	t.Run("updates the role", func(t *testing.T) {
		dbMock.ExpectExec("UPDATE users SET role").
			WithArgs("registrant", 3).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.UpdateUserRole(3, "registrant")

		assert.NoError(t, err)
	})

	t.Run("unknown user", func(t *testing.T) {
		dbMock.ExpectExec("UPDATE users SET role").
			WithArgs("registrant", 99).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.UpdateUserRole(99, "registrant")

		assert.ErrorIs(t, err, sql.ErrNoRows)
	})

	assert.NoError(t, dbMock.ExpectationsWereMet())
}
