package service

import (
	"crypto/rand"
	"database/sql"
	"encoding/base64"
	"errors"
	"fmt"
	"time"
	"unicode"

	"active-teams-api/common"
	"active-teams-api/config"
	"active-teams-api/logger"
	"active-teams-api/model"
	"active-teams-api/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// TokenPair is what a successful login or refresh returns. The refresh
// secret is only ever seen here; the server keeps just its hash.
type TokenPair struct {
	AccessToken        string    `json:"access_token"`
	RefreshTokenID     string    `json:"refresh_token_id"`
	RefreshTokenSecret string    `json:"refresh_token_secret"`
	RefreshExpiresAt   time.Time `json:"refresh_expires_at"`
}

// AuthService owns credential hashing, the access-token codec and the
// refresh-token lifecycle.
type AuthService struct {
	userRepo repository.IUserRepository
}

func NewAuthService(userRepo repository.IUserRepository) *AuthService {
	return &AuthService{userRepo: userRepo}
}

func getJwtKey() []byte {
	return []byte(config.AppConfig.JWT.SecretKey)
}

// AccessTokenTTL reads the configured access-token lifetime.
func (s *AuthService) AccessTokenTTL() time.Duration {
	return time.Duration(config.AppConfig.JWT.AccessTTLMinutes) * time.Minute
}

// RefreshTokenTTL reads the configured refresh-token lifetime.
func (s *AuthService) RefreshTokenTTL() time.Duration {
	return time.Duration(config.AppConfig.JWT.RefreshTTLHours) * time.Hour
}

// --- Credential hashing ---

// HashPassword is used for both user passwords and refresh-token secrets.
func (s *AuthService) HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to hash password")
		return "", err
	}
	return string(bytes), nil
}

// CheckPasswordHash returns false for a malformed hash rather than erroring.
func (s *AuthService) CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// ValidatePasswordStrength enforces the signup rule: at least 8 characters
// containing both letters and digits.
func (s *AuthService) ValidatePasswordStrength(password string) error {
	if len(password) < 8 {
		return common.ErrWeakPassword
	}
	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasLetter || !hasDigit {
		return common.ErrWeakPassword
	}
	return nil
}

// --- Access-token codec ---

// GenerateAccessToken signs an HS256 token carrying the typed claim set.
func (s *AuthService) GenerateAccessToken(user *model.User, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &model.AppClaims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(getJwtKey())
	if err != nil {
		logger.Log.WithError(err).WithField("email", user.Email).Error("Failed to sign JWT")
		return "", fmt.Errorf("failed to sign token string: %w", err)
	}

	return tokenString, nil
}

// ParseAccessToken verifies signature and expiry. Expiry and signature
// failures map to distinct errors so the client knows whether a refresh is
// worth attempting.
func (s *AuthService) ParseAccessToken(tokenString string) (*model.AppClaims, error) {
	claims := &model.AppClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return getJwtKey(), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, common.ErrTokenInvalid
	}
	if !token.Valid {
		return nil, common.ErrTokenInvalid
	}
	return claims, nil
}

// --- Refresh-token lifecycle ---

// issueRefreshToken mints a fresh (id, secret, expiry) triple and stores it
// on the user row, overwriting any previous one.
func (s *AuthService) issueRefreshToken(userID int) (*model.RefreshPair, error) {
	secretBytes := make([]byte, 32)
	if _, err := rand.Read(secretBytes); err != nil {
		return nil, err
	}
	secret := base64.RawURLEncoding.EncodeToString(secretBytes)

	hash, err := s.HashPassword(secret)
	if err != nil {
		return nil, err
	}

	pair := &model.RefreshPair{
		ID:        uuid.NewString(),
		Secret:    secret,
		ExpiresAt: time.Now().Add(s.RefreshTokenTTL()),
	}
	if err := s.userRepo.SetRefreshToken(userID, pair.ID, hash, pair.ExpiresAt); err != nil {
		return nil, err
	}
	return pair, nil
}

// --- Session operations ---

// Signup creates the user but does not log them in.
func (s *AuthService) Signup(req *model.SignupRequest) (*model.User, error) {
	if err := s.ValidatePasswordStrength(req.Password); err != nil {
		return nil, err
	}

	if _, err := s.userRepo.GetUserByEmail(req.Email); err == nil {
		return nil, common.ErrEmailTaken
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	hash, err := s.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	role := req.Role
	if role == "" {
		role = string(model.RoleUser)
	}

	user := &model.User{
		Name:         req.Name,
		Surname:      req.Surname,
		DateOfBirth:  req.DateOfBirth,
		HomeAddress:  req.HomeAddress,
		PhoneNumber:  req.PhoneNumber,
		Gender:       req.Gender,
		InvitedBy:    req.InvitedBy,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         role,
	}
	if err := s.userRepo.CreateUser(user); err != nil {
		// A concurrent signup can slip past the lookup above and lose the
		// race on the unique index.
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, common.ErrEmailTaken
		}
		return nil, err
	}
	return user, nil
}

// Login verifies credentials and issues a fresh token pair. Unknown email
// and wrong password produce the same error on purpose.
func (s *AuthService) Login(email, password string) (*TokenPair, error) {
	user, err := s.userRepo.GetUserByEmail(email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrInvalidCredentials
		}
		return nil, err
	}
	if !s.CheckPasswordHash(password, user.PasswordHash) {
		return nil, common.ErrInvalidCredentials
	}

	return s.issuePair(user)
}

// Refresh validates the presented pair and rotates it. Any failure along
// the way collapses into ErrRefreshInvalid so a probing client learns
// nothing about which step failed.
func (s *AuthService) Refresh(tokenID, secret string) (*TokenPair, error) {
	user, err := s.userRepo.GetUserByRefreshTokenID(tokenID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrRefreshInvalid
		}
		return nil, err
	}
	if user.RefreshTokenHash == nil || user.RefreshTokenExpires == nil {
		return nil, common.ErrRefreshInvalid
	}
	if !s.CheckPasswordHash(secret, *user.RefreshTokenHash) {
		return nil, common.ErrRefreshInvalid
	}
	if time.Now().After(*user.RefreshTokenExpires) {
		return nil, common.ErrRefreshInvalid
	}

	return s.issuePair(user)
}

// Logout revokes the stored refresh triple. The live access token is left
// to expire on its own schedule.
func (s *AuthService) Logout(userID int) error {
	return s.userRepo.ClearRefreshToken(userID)
}

func (s *AuthService) issuePair(user *model.User) (*TokenPair, error) {
	accessToken, err := s.GenerateAccessToken(user, s.AccessTokenTTL())
	if err != nil {
		return nil, err
	}
	refresh, err := s.issueRefreshToken(user.ID)
	if err != nil {
		return nil, err
	}
	return &TokenPair{
		AccessToken:        accessToken,
		RefreshTokenID:     refresh.ID,
		RefreshTokenSecret: refresh.Secret,
		RefreshExpiresAt:   refresh.ExpiresAt,
	}, nil
}
