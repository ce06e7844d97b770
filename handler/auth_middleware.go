package handler

import (
	"context"
	"net/http"
	"strings"

	"active-teams-api/common"
	"active-teams-api/model"
	"active-teams-api/service"
)

type contextKey string

const claimsKey contextKey = "claims"

// ClaimsFromContext returns the access-token claims stored by Authenticate.
func ClaimsFromContext(ctx context.Context) (*model.AppClaims, bool) {
	claims, ok := ctx.Value(claimsKey).(*model.AppClaims)
	return claims, ok
}

// AuthMiddleware is the authorization gate. Authenticate handles identity
// (401 class), RequireRole handles permissions (403 class). Role checks are
// declared per route at the router, with an admin bypass in one place.
type AuthMiddleware struct {
	auth *service.AuthService
}

func NewAuthMiddleware(auth *service.AuthService) *AuthMiddleware {
	return &AuthMiddleware{auth: auth}
}

// Authenticate validates the bearer token and stores the decoded claims in
// the request context. Absent or malformed presentation is a 401, never a
// 403.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			common.NewAppError(http.StatusUnauthorized, "Authorization header is required", nil).Send(w)
			return
		}

		headerParts := strings.Split(authHeader, " ")
		if len(headerParts) != 2 || strings.ToLower(headerParts[0]) != "bearer" {
			common.NewAppError(http.StatusUnauthorized, "Invalid authorization header format", nil).Send(w)
			return
		}

		claims, err := m.auth.ParseAccessToken(headerParts[1])
		if err != nil {
			common.ToAppError(err).Send(w)
			return
		}

		ctx := context.WithValue(r.Context(), claimsKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole allows the request through when the caller's role is in the
// allow-list. Admins pass any check; a token without a role fails with its
// own error so the client can tell a stale token from a permissions issue.
func (m *AuthMiddleware) RequireRole(roles ...model.Role) func(http.Handler) http.Handler {
	allowed := make(map[string]bool, len(roles))
	for _, role := range roles {
		allowed[string(role)] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFromContext(r.Context())
			if !ok {
				common.NewAppError(http.StatusUnauthorized, "Authentication required", nil).Send(w)
				return
			}
			if claims.Role == "" {
				common.ToAppError(common.ErrRoleMissing).Send(w)
				return
			}
			if claims.Role != string(model.RoleAdmin) && !allowed[claims.Role] {
				common.ToAppError(common.ErrForbidden).Send(w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
