package middleware

import (
	"context"
	"net/http"

	"github.com/nexodus/nexodus-api/internal/api/response"
	"github.com/nexodus/nexodus-api/internal/domain"
	"github.com/nexodus/nexodus-api/internal/service"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type contextKey string

const (
	userIDKey    contextKey = "userID"
	userEmailKey contextKey = "userEmail"
)

// AuthMiddleware resolves the bearer token to a user before chat handlers run
type AuthMiddleware struct {
	auth *service.AuthService
}

// NewAuthMiddleware creates a new auth middleware
func NewAuthMiddleware(auth *service.AuthService) *AuthMiddleware {
	return &AuthMiddleware{auth: auth}
}

// Authenticate validates the Nexodus bearer token and stores the caller's
// identity in the request context. Malformed headers and unknown tokens get
// the same 401; store failures are surfaced separately.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := m.auth.Authenticate(r.Context(), r.Header.Get("Authorization"))
		if err != nil {
			response.FromError(w, err)
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, user.ID)
		ctx = context.WithValue(ctx, userEmailKey, user.Email)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserID gets the authenticated user's id from context
func GetUserID(ctx context.Context) (primitive.ObjectID, bool) {
	userID, ok := ctx.Value(userIDKey).(primitive.ObjectID)
	return userID, ok
}

// GetUserEmail gets the authenticated user's email from context
func GetUserEmail(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(userEmailKey).(string)
	return email, ok
}

// RequireUserID is the handler-side guard for routes behind Authenticate.
func RequireUserID(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	userID, ok := GetUserID(r.Context())
	if !ok {
		response.FromError(w, domain.ErrUnauthenticated)
		return primitive.NilObjectID, false
	}
	return userID, true
}
