// file: repository/token_repository.go

package repository

import (
	"database/sql"
	"time"

	"active-teams-api/logger"
	"active-teams-api/model"

	"github.com/sirupsen/logrus"
)

// Refresh token persistence. The active triple (id, hash, expiry) lives on
// the user row itself: a single UPDATE both rotates and revokes, so there is
// never more than one live refresh token per user.

// GetUserByRefreshTokenID looks up the owner of a presented refresh token id.
func (r *UserRepository) GetUserByRefreshTokenID(tokenID string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE refresh_token_id=$1`
	return scanUser(r.DB.QueryRow(query, tokenID))
}

// SetRefreshToken stores a fresh triple, overwriting whatever was there.
func (r *UserRepository) SetRefreshToken(userID int, tokenID, tokenHash string, expiresAt time.Time) error {
	log := logger.Log.WithFields(logrus.Fields{
		"user_id":    userID,
		"expires_at": expiresAt,
	})
	log.Info("Executing query to store refresh token")

	query := `UPDATE users SET refresh_token_id = $1, refresh_token_hash = $2, refresh_token_expires = $3 WHERE id = $4`
	result, err := r.DB.Exec(query, tokenID, tokenHash, expiresAt, userID)
	if err != nil {
		log.WithError(err).Error("Failed to execute store refresh token query")
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

// ClearRefreshToken nulls the triple unconditionally. Used at logout.
func (r *UserRepository) ClearRefreshToken(userID int) error {
	log := logger.Log.WithField("user_id", userID)
	log.Info("Executing query to clear refresh token")

	query := `UPDATE users SET refresh_token_id = NULL, refresh_token_hash = NULL, refresh_token_expires = NULL WHERE id = $1`
	_, err := r.DB.Exec(query, userID)
	if err != nil {
		log.WithError(err).Error("Failed to execute clear refresh token query")
		return err
	}
	return nil
}
