// internal/app/system/token/token.go

// Package token issues and validates the bearer tokens that protect the
// API. Tokens are HMAC-signed JWTs carrying the user's ID and role; the
// middleware validates them once at the boundary and places the caller's
// identity in the request context, so handlers never touch ambient auth
// state.
package token

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/dalemusser/trainhub/internal/app/system/httpapi"
	"github.com/dalemusser/trainhub/internal/domain/models"
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

var (
	ErrMissingToken = errors.New("missing or malformed Authorization header")
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)

// Identity is the authenticated caller extracted from a token.
type Identity struct {
	UserID primitive.ObjectID
	Role   string
}

// Manager signs and verifies tokens with a shared HMAC secret.
type Manager struct {
	secret []byte
	ttl    time.Duration
	log    *zap.Logger
}

// NewManager constructs a Manager. The secret must be non-empty.
func NewManager(secret string, ttl time.Duration, logger *zap.Logger) (*Manager, error) {
	if secret == "" {
		return nil, errors.New("token secret must not be empty")
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Manager{secret: []byte(secret), ttl: ttl, log: logger}, nil
}

// Issue creates a signed token for the given user and role.
func (m *Manager) Issue(userID primitive.ObjectID, role string) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"user_id": userID.Hex(),
		"role":    role,
		"iat":     now.Unix(),
		"exp":     now.Add(m.ttl).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(m.secret)
}

// Validate parses and verifies a raw token string.
func (m *Manager) Validate(raw string) (Identity, error) {
	t, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Identity{}, ErrExpiredToken
		}
		return Identity{}, ErrInvalidToken
	}
	claims, ok := t.Claims.(jwt.MapClaims)
	if !ok || !t.Valid {
		return Identity{}, ErrInvalidToken
	}
	idHex, _ := claims["user_id"].(string)
	role, _ := claims["role"].(string)
	userID, err := primitive.ObjectIDFromHex(idHex)
	if err != nil || !models.IsValidRole(role) {
		return Identity{}, ErrInvalidToken
	}
	return Identity{UserID: userID, Role: role}, nil
}

type ctxKey struct{}

// FromContext returns the caller identity placed by the middleware.
func FromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(ctxKey{}).(Identity)
	return id, ok
}

// WithIdentity returns a context carrying the given identity. Exported
// for handler tests.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// fromHeader extracts and validates the bearer token on a request.
func (m *Manager) fromHeader(r *http.Request) (Identity, error) {
	h := r.Header.Get("Authorization")
	if h == "" || !strings.HasPrefix(h, "Bearer ") {
		return Identity{}, ErrMissingToken
	}
	return m.Validate(strings.TrimPrefix(h, "Bearer "))
}

// RequireUser rejects requests without a valid token and otherwise loads
// the caller identity into the request context.
func (m *Manager) RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := m.fromHeader(r)
		if err != nil {
			m.reject(w, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
	})
}

// RequireAdmin is RequireUser plus a role check.
func (m *Manager) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := m.fromHeader(r)
		if err != nil {
			m.reject(w, err)
			return
		}
		if id.Role != models.RoleAdmin {
			httpapi.Error(w, http.StatusForbidden, "admin access required")
			return
		}
		next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
	})
}

func (m *Manager) reject(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrExpiredToken):
		httpapi.Error(w, http.StatusGone, "token has expired")
	default:
		httpapi.Error(w, http.StatusUnauthorized, "missing or invalid token")
	}
}
