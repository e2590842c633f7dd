package parks

import (
	"context"
	"strconv"

	"github.com/goliatone/go-errors"
)

// UserStore is the store we use to retrieve users during authentication.
// GetByIdentifier accepts a stringified record id or a username; sessions
// round-trip through it since token claims carry the id.
type UserStore interface {
	GetByUsername(ctx context.Context, username string) (*User, error)
	GetByIdentifier(ctx context.Context, identifier string) (*User, error)
}

// UserProvider verifies credentials against the user store
type UserProvider struct {
	store     UserStore
	Validator func(*User) error
	logger    Logger
}

// NewUserProvider will create a new UserProvider
func NewUserProvider(store UserStore) *UserProvider {
	return &UserProvider{
		store:     store,
		logger:    defLogger{},
		Validator: defaultValidator,
	}
}

func (u *UserProvider) WithLogger(l Logger) *UserProvider {
	u.logger = l
	return u
}

func (u *UserProvider) validate(user *User) error {
	if u.Validator != nil {
		return u.Validator(user)
	}
	return defaultValidator(user)
}

// VerifyIdentity will find the user, compare the password, and return the
// identity. Unknown user and wrong password fail the same way so callers
// cannot enumerate accounts.
func (u UserProvider) VerifyIdentity(ctx context.Context, identifier, password string) (Identity, error) {
	user, err := u.store.GetByUsername(ctx, identifier)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to retrieve user during verification")
	}

	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := ComparePasswordAndHash(password, user.PasswordHash); err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := u.validate(user); err != nil {
		return nil, err
	}

	return user.Identity(), nil
}

func (u UserProvider) FindIdentityByIdentifier(ctx context.Context, identifier string) (Identity, error) {
	user, err := u.store.GetByIdentifier(ctx, identifier)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, ErrIdentityNotFound
		}
		return nil, err
	}

	if user == nil {
		return nil, ErrIdentityNotFound
	}

	if err := u.validate(user); err != nil {
		return nil, err
	}

	return user.Identity(), nil
}

func defaultValidator(u *User) error {
	switch u.Role {
	case RoleAdmin, RoleMember, RoleGuest:
		return nil
	default:
		return errors.New("user has an unknown or invalid role", errors.CategoryAuth).
			WithTextCode("INVALID_ROLE").
			WithMetadata(map[string]any{"role": u.Role, "user_id": strconv.FormatInt(u.ID, 10)})
	}
}
