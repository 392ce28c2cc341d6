// Package entity defines the auth feature's domain entities.
package entity

import "time"

// Session is the server-side record of an issued auth token.
// The token's jti claim carries the session ID, so revoking the session
// invalidates the token before it expires.
type Session struct {
	ID        string     // UUID, also the token's jti
	UserID    uint       // Owner
	UserAgent string     // Client's User-Agent header at login
	IPAddress string     // Client's IP address at login
	CreatedAt time.Time  // Login time
	ExpiresAt time.Time  // Same as the token's exp
	RevokedAt *time.Time // nil while active
}

// IsExpired returns true if the session has passed its expiration time.
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// IsRevoked returns true if the session has been revoked.
func (s *Session) IsRevoked() bool {
	return s.RevokedAt != nil
}

// IsValid returns true if the session is neither expired nor revoked.
func (s *Session) IsValid() bool {
	return !s.IsExpired() && !s.IsRevoked()
}
