package parks

import (
	"time"
)

var _ Session = &SessionObject{}

// SessionObject is the decoded view of a validated bearer token
type SessionObject struct {
	UserID         string     `json:"user_id,omitempty"`
	Role           string     `json:"role,omitempty"`
	IssuedAt       *time.Time `json:"issued_at,omitempty"`
	ExpirationDate *time.Time `json:"expiration_date,omitempty"`
}

func (s *SessionObject) GetUserID() string {
	return s.UserID
}

func (s *SessionObject) GetRole() string {
	return s.Role
}

func (s *SessionObject) GetIssuedAt() *time.Time {
	return s.IssuedAt
}

func (s *SessionObject) GetExpiration() *time.Time {
	return s.ExpirationDate
}

func sessionFromAuthClaims(claims AuthClaims) *SessionObject {
	session := &SessionObject{
		UserID: claims.UserID(),
		Role:   claims.Role(),
	}

	if iat := claims.IssuedAt(); !iat.IsZero() {
		session.IssuedAt = &iat
	}

	if exp := claims.Expires(); !exp.IsZero() {
		session.ExpirationDate = &exp
	}

	return session
}
