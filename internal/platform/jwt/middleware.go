package jwtmw

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"foodgram_backend/internal/api"
)

const (
	ContextUserID    = "userID"
	ContextSessionID = "sessionID"
)

// Accepted Authorization header schemes.
var schemes = []string{"Bearer ", "Token "}

var errNoCredentials = errors.New("authentication credentials were not provided")

// SessionValidator resolves a token's session to its owner.
// Following Go convention: interfaces are defined by the consumer, not the provider.
type SessionValidator interface {
	ValidateSession(ctx context.Context, sessionID string) (uint, error)
}

// StaffChecker reports whether a user may use the admin API.
type StaffChecker interface {
	IsStaff(ctx context.Context, userID uint) (bool, error)
}

// Authenticator verifies tokens and, when sessions is set, their server-side session.
type Authenticator struct {
	secret   []byte
	sessions SessionValidator
}

// NewAuthenticator creates an Authenticator. A nil sessions skips the session lookup.
func NewAuthenticator(secret string, sessions SessionValidator) *Authenticator {
	return &Authenticator{secret: []byte(secret), sessions: sessions}
}

// Required rejects requests without a valid token.
func (a *Authenticator) Required() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := a.authenticate(c); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, api.ErrorResponse{Error: err.Error()})
			return
		}
		c.Next()
	}
}

// Optional lets anonymous requests through but rejects a present, invalid token.
func (a *Authenticator) Optional() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := a.authenticate(c); err != nil && !errors.Is(err, errNoCredentials) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, api.ErrorResponse{Error: err.Error()})
			return
		}
		c.Next()
	}
}

func (a *Authenticator) authenticate(c *gin.Context) error {
	tokenStr, ok := bearer(c.GetHeader("Authorization"))
	if !ok {
		return errNoCredentials
	}

	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return errors.New("invalid token")
	}
	// JWT numbers are decoded as float64
	sub, ok := claims["sub"].(float64)
	if !ok || sub <= 0 {
		return errors.New("invalid token")
	}
	userID := uint(sub)
	sessionID, _ := claims["jti"].(string)

	if a.sessions != nil {
		owner, err := a.sessions.ValidateSession(c.Request.Context(), sessionID)
		if err != nil || owner != userID {
			slog.Info("token rejected", "error", err, "user_id", userID, "remote_addr", c.ClientIP())
			return errors.New("invalid token")
		}
	}

	c.Set(ContextUserID, userID)
	c.Set(ContextSessionID, sessionID)
	return nil
}

func bearer(header string) (string, bool) {
	for _, s := range schemes {
		if strings.HasPrefix(header, s) {
			tok := strings.TrimSpace(strings.TrimPrefix(header, s))
			return tok, tok != ""
		}
	}
	return "", false
}

// UserID returns the authenticated user, or 0 and false for anonymous requests.
func UserID(c *gin.Context) (uint, bool) {
	v, ok := c.Get(ContextUserID)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}

// SessionID returns the session of the current token.
func SessionID(c *gin.Context) string {
	return c.GetString(ContextSessionID)
}

// RequireStaff must run after Required.
func RequireStaff(checker StaffChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := UserID(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, api.ErrorResponse{Error: errNoCredentials.Error()})
			return
		}
		staff, err := checker.IsStaff(c.Request.Context(), userID)
		if err != nil {
			slog.Error("staff check failed", "error", err, "user_id", userID)
			c.AbortWithStatusJSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal server error"})
			return
		}
		if !staff {
			c.AbortWithStatusJSON(http.StatusForbidden, api.ErrorResponse{Error: "you do not have permission to perform this action"})
			return
		}
		c.Next()
	}
}
