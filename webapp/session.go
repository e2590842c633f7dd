package webapp

import (
	"time"

	"github.com/goliatone/go-router"
	"github.com/gorilla/securecookie"

	parks "github.com/goliatone/go-parks"
)

const (
	// TokenSessionKey is the session entry holding the API bearer token
	TokenSessionKey = "JWToken"

	sessionCookieName   = "parky_session"
	principalCookieName = "parky_principal"

	// PrincipalContextKey is the router locals key for the signed-in principal
	PrincipalContextKey = "principal"
)

// Principal is the locally authorized identity, separate from the API token
type Principal struct {
	Name string `json:"name"`
	Role string `json:"role"`
}

// SessionManager signs and encrypts the web tier cookies. The session
// cookie holds a string map with the bearer token; the principal cookie
// holds the page-authorization identity.
type SessionManager struct {
	codec  *securecookie.SecureCookie
	maxAge time.Duration
	secure bool
}

type SessionOption func(*SessionManager)

// WithCookieMaxAge overrides the cookie lifetime
func WithCookieMaxAge(d time.Duration) SessionOption {
	return func(m *SessionManager) {
		m.maxAge = d
	}
}

// WithSecureCookies sets the Secure flag on every cookie
func WithSecureCookies(secure bool) SessionOption {
	return func(m *SessionManager) {
		m.secure = secure
	}
}

func NewSessionManager(hashKey, blockKey []byte, opts ...SessionOption) *SessionManager {
	m := &SessionManager{
		codec:  securecookie.New(hashKey, blockKey),
		maxAge: 7 * 24 * time.Hour,
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Establish stores the principal and the bearer token after a login
func (m *SessionManager) Establish(ctx router.Context, principal Principal, token string) error {
	if err := m.writeSession(ctx, map[string]string{TokenSessionKey: token}); err != nil {
		return err
	}

	encoded, err := m.codec.Encode(principalCookieName, principal)
	if err != nil {
		return parks.ErrUnableToDecodeSession
	}

	m.setCookie(ctx, principalCookieName, encoded, time.Now().Add(m.maxAge))
	return nil
}

// Token returns the bearer token stored in the session, "" after logout
func (m *SessionManager) Token(ctx router.Context) (string, error) {
	values, err := m.readSession(ctx)
	if err != nil {
		return "", err
	}
	return values[TokenSessionKey], nil
}

// Principal returns the signed-in identity
func (m *SessionManager) Principal(ctx router.Context) (*Principal, error) {
	raw := ctx.Cookies(principalCookieName, "")
	if raw == "" {
		return nil, parks.ErrUnableToFindSession
	}

	principal := new(Principal)
	if err := m.codec.Decode(principalCookieName, raw, principal); err != nil {
		return nil, parks.ErrUnableToDecodeSession
	}

	return principal, nil
}

// Clear drops the principal and blanks the token entry. The session map
// keeps the token key, holding the empty string.
func (m *SessionManager) Clear(ctx router.Context) error {
	if err := m.writeSession(ctx, map[string]string{TokenSessionKey: ""}); err != nil {
		return err
	}

	m.setCookie(ctx, principalCookieName, "", time.Now().Add(-time.Hour*24*365))
	return nil
}

func (m *SessionManager) writeSession(ctx router.Context, values map[string]string) error {
	encoded, err := m.codec.Encode(sessionCookieName, values)
	if err != nil {
		return parks.ErrUnableToDecodeSession
	}

	m.setCookie(ctx, sessionCookieName, encoded, time.Now().Add(m.maxAge))
	return nil
}

func (m *SessionManager) readSession(ctx router.Context) (map[string]string, error) {
	raw := ctx.Cookies(sessionCookieName, "")
	if raw == "" {
		return nil, parks.ErrUnableToFindSession
	}

	values := map[string]string{}
	if err := m.codec.Decode(sessionCookieName, raw, &values); err != nil {
		return nil, parks.ErrUnableToDecodeSession
	}

	return values, nil
}

func (m *SessionManager) setCookie(ctx router.Context, name, value string, expires time.Time) {
	ctx.Cookie(&router.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		Secure:   m.secure,
		HTTPOnly: true,
	})
}

// RequireAuth redirects to the login page when no principal is present.
// When roles are given, the principal's role must be one of them.
func (m *SessionManager) RequireAuth(roles ...string) router.MiddlewareFunc {
	return func(next router.HandlerFunc) router.HandlerFunc {
		return func(ctx router.Context) error {
			principal, err := m.Principal(ctx)
			if err != nil {
				return ctx.Redirect("/login", router.StatusSeeOther)
			}

			if len(roles) > 0 && !roleAllowed(principal.Role, roles) {
				return ctx.Redirect("/", router.StatusSeeOther)
			}

			ctx.Locals(PrincipalContextKey, principal)
			return next(ctx)
		}
	}
}

func roleAllowed(role string, allowed []string) bool {
	for _, r := range allowed {
		if r == role {
			return true
		}
	}
	return false
}
