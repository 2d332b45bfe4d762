package middleware

import (
	"context"
	"net/http"
	"strings"

	"firebase.google.com/go/v4/auth"

	"github.com/GregMSThompson/flowadmin/internal/models"
	"github.com/GregMSThompson/flowadmin/internal/response"
	"github.com/GregMSThompson/flowadmin/pkg/logger"
)

type tokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

type Middleware struct {
	Verifier             tokenVerifier
	ResponseHandler      response.ResponseHandler
	RequireVerifiedEmail bool
	AvatarPlaceholderURL string
}

func NewMiddleware(verifier tokenVerifier, rh response.ResponseHandler, requireVerifiedEmail bool, avatarPlaceholderURL string) *Middleware {
	return &Middleware{
		Verifier:             verifier,
		ResponseHandler:      rh,
		RequireVerifiedEmail: requireVerifiedEmail,
		AvatarPlaceholderURL: avatarPlaceholderURL,
	}
}

// context key
type contextKey string

const (
	UIDKey  contextKey = "uid"
	UserKey contextKey = "user"
)

// FirebaseAuth verifies the bearer ID token and stores the decoded user in
// the request context.
func (m *Middleware) FirebaseAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			m.unauthorized(w, r, "Missing Authorization header")
			return
		}

		parts := strings.Fields(header)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			m.unauthorized(w, r, "Invalid Authorization header")
			return
		}

		token, err := m.Verifier.VerifyIDToken(r.Context(), parts[1])
		if err != nil {
			if auth.IsIDTokenExpired(err) {
				m.unauthorized(w, r, "Auth token has expired")
				return
			}
			logger.FromContext(r.Context()).Warn("id token verification failed", "error", err)
			m.unauthorized(w, r, "Invalid auth token")
			return
		}

		user := m.userFromToken(token)
		if m.RequireVerifiedEmail && !user.EmailVerified {
			m.unauthorized(w, r, "Email not verified")
			return
		}

		_, ctx := logger.With(r.Context(), "uid", user.UID)
		ctx = WithUser(ctx, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin must run after FirebaseAuth.
func (m *Middleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !User(r.Context()).IsAdmin() {
			m.unauthorized(w, r, "You are not an admin.")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (m *Middleware) unauthorized(w http.ResponseWriter, r *http.Request, msg string) {
	m.ResponseHandler.WriteError(w, r, http.StatusUnauthorized, "unauthorized", msg)
}

func (m *Middleware) userFromToken(token *auth.Token) *models.AuthUser {
	user := &models.AuthUser{
		UID:      token.UID,
		Role:     models.RoleUser,
		Picture:  m.AvatarPlaceholderURL,
		AuthTime: token.AuthTime,
		IssuedAt: token.IssuedAt,
		Expires:  token.Expires,
	}
	if role, ok := token.Claims["role"].(string); ok && role != "" {
		user.Role = role
	}
	if email, ok := token.Claims["email"].(string); ok {
		user.Email = email
	}
	if verified, ok := token.Claims["email_verified"].(bool); ok {
		user.EmailVerified = verified
	}
	if name, ok := token.Claims["name"].(string); ok {
		user.Name = name
	}
	if picture, ok := token.Claims["picture"].(string); ok && picture != "" {
		user.Picture = picture
	}
	return user
}

// WithUser stores the authenticated user and its uid in ctx.
func WithUser(ctx context.Context, user *models.AuthUser) context.Context {
	ctx = context.WithValue(ctx, UserKey, user)
	return context.WithValue(ctx, UIDKey, user.UID)
}

// Helper to extract UID
func UID(ctx context.Context) string {
	uid, _ := ctx.Value(UIDKey).(string)
	return uid
}

// User returns the authenticated user, or nil outside FirebaseAuth.
func User(ctx context.Context) *models.AuthUser {
	user, _ := ctx.Value(UserKey).(*models.AuthUser)
	return user
}
