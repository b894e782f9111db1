package middleware

import (
	"context"
	"net/http"
	"strings"

	"griddle/app/apperrors"
	"griddle/app/models"
	"griddle/app/services"
	"griddle/util"
)

type contextKey string

const userContextKey contextKey = "user"

// Auth resolves Bearer tokens to users and attaches them to requests.
type Auth struct {
	userService *services.UserService
	secret      string
}

// NewAuth creates the auth middleware.
func NewAuth(userService *services.UserService, secret string) *Auth {
	return &Auth{userService: userService, secret: secret}
}

// Require rejects requests without a valid Bearer token.
func (a *Auth) Require(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := a.resolveUser(r)
		if err != nil {
			apperrors.Write(w, err)
			return
		}
		next(w, r.WithContext(WithUser(r.Context(), user)))
	}
}

// Optional attaches the user when a valid token is present and passes the
// request through otherwise.
func (a *Auth) Optional(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if user, err := a.resolveUser(r); err == nil {
			r = r.WithContext(WithUser(r.Context(), user))
		}
		next(w, r)
	}
}

func (a *Auth) resolveUser(r *http.Request) (*models.User, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return nil, apperrors.New(apperrors.ErrUnauthorized, "Authentication required")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, apperrors.New(apperrors.ErrUnauthorized, "Invalid authorization header")
	}

	userID, err := util.ValidateToken(parts[1], a.secret)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInvalidToken, "Invalid or expired token", err)
	}

	user, err := a.userService.GetUser(userID)
	if err != nil {
		return nil, apperrors.New(apperrors.ErrInvalidToken, "Unknown user")
	}
	return user, nil
}

// WithUser attaches a user to the context the same way Require does.
func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// UserFrom returns the authenticated user attached to the request, if any.
func UserFrom(r *http.Request) (*models.User, bool) {
	user, ok := r.Context().Value(userContextKey).(*models.User)
	return user, ok
}
