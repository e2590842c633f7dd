package parks_test

import (
	"context"
	"testing"

	"github.com/goliatone/go-errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	parks "github.com/goliatone/go-parks"
)

type MockUserStore struct {
	mock.Mock
}

func (m *MockUserStore) GetByUsername(ctx context.Context, username string) (*parks.User, error) {
	args := m.Called(ctx, username)
	if user := args.Get(0); user != nil {
		return user.(*parks.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserStore) GetByIdentifier(ctx context.Context, identifier string) (*parks.User, error) {
	args := m.Called(ctx, identifier)
	if user := args.Get(0); user != nil {
		return user.(*parks.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestUserProviderVerifyIdentity(t *testing.T) {
	ctx := context.Background()

	passwordHash, err := parks.HashPassword("password123")
	require.NoError(t, err)

	t.Run("Successful verification", func(t *testing.T) {
		store := new(MockUserStore)
		provider := parks.NewUserProvider(store)

		user := &parks.User{
			ID:           42,
			Username:     "ranger",
			PasswordHash: passwordHash,
			Role:         parks.RoleAdmin,
		}

		store.On("GetByUsername", ctx, "ranger").Return(user, nil).Once()

		identity, err := provider.VerifyIdentity(ctx, "ranger", "password123")

		assert.NoError(t, err)
		require.NotNil(t, identity)
		assert.Equal(t, "42", identity.ID())
		assert.Equal(t, "ranger", identity.Username())
		assert.Equal(t, parks.RoleAdmin, identity.Role())

		store.AssertExpectations(t)
	})

	t.Run("Unknown user fails like a wrong password", func(t *testing.T) {
		store := new(MockUserStore)
		provider := parks.NewUserProvider(store)

		store.On("GetByUsername", ctx, "ghost").
			Return(nil, errors.New("user not found", errors.CategoryNotFound)).Once()

		_, err := provider.VerifyIdentity(ctx, "ghost", "password123")

		assert.ErrorIs(t, err, parks.ErrInvalidCredentials)
	})

	t.Run("Wrong password", func(t *testing.T) {
		store := new(MockUserStore)
		provider := parks.NewUserProvider(store)

		user := &parks.User{
			ID:           42,
			Username:     "ranger",
			PasswordHash: passwordHash,
			Role:         parks.RoleAdmin,
		}

		store.On("GetByUsername", ctx, "ranger").Return(user, nil).Once()

		_, err := provider.VerifyIdentity(ctx, "ranger", "wrong-password")

		assert.ErrorIs(t, err, parks.ErrInvalidCredentials)
	})

	t.Run("Unknown role is rejected", func(t *testing.T) {
		store := new(MockUserStore)
		provider := parks.NewUserProvider(store)

		user := &parks.User{
			ID:           42,
			Username:     "ranger",
			PasswordHash: passwordHash,
			Role:         "Superuser",
		}

		store.On("GetByUsername", ctx, "ranger").Return(user, nil).Once()

		_, err := provider.VerifyIdentity(ctx, "ranger", "password123")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown or invalid role")
	})

	t.Run("Store failure is not a credential error", func(t *testing.T) {
		store := new(MockUserStore)
		provider := parks.NewUserProvider(store)

		store.On("GetByUsername", ctx, "ranger").
			Return(nil, errors.New("connection refused", errors.CategoryInternal)).Once()

		_, err := provider.VerifyIdentity(ctx, "ranger", "password123")

		require.Error(t, err)
		assert.NotErrorIs(t, err, parks.ErrInvalidCredentials)
	})
}

func TestUserProviderFindIdentityByIdentifier(t *testing.T) {
	ctx := context.Background()

	t.Run("Found by username", func(t *testing.T) {
		store := new(MockUserStore)
		provider := parks.NewUserProvider(store)

		user := &parks.User{ID: 7, Username: "scout", Role: parks.RoleMember}
		store.On("GetByIdentifier", ctx, "scout").Return(user, nil).Once()

		identity, err := provider.FindIdentityByIdentifier(ctx, "scout")

		assert.NoError(t, err)
		require.NotNil(t, identity)
		assert.Equal(t, "7", identity.ID())
	})

	t.Run("Found by stringified id", func(t *testing.T) {
		store := new(MockUserStore)
		provider := parks.NewUserProvider(store)

		user := &parks.User{ID: 7, Username: "scout", Role: parks.RoleMember}
		store.On("GetByIdentifier", ctx, "7").Return(user, nil).Once()

		identity, err := provider.FindIdentityByIdentifier(ctx, "7")

		assert.NoError(t, err)
		require.NotNil(t, identity)
		assert.Equal(t, "scout", identity.Username())
	})

	t.Run("Nil record", func(t *testing.T) {
		store := new(MockUserStore)
		provider := parks.NewUserProvider(store)

		store.On("GetByIdentifier", ctx, "ghost").Return(nil, nil).Once()

		_, err := provider.FindIdentityByIdentifier(ctx, "ghost")

		assert.ErrorIs(t, err, parks.ErrIdentityNotFound)
	})

	t.Run("Store miss maps to identity error", func(t *testing.T) {
		store := new(MockUserStore)
		provider := parks.NewUserProvider(store)

		store.On("GetByIdentifier", ctx, "ghost").
			Return(nil, errors.New("user not found", errors.CategoryNotFound)).Once()

		_, err := provider.FindIdentityByIdentifier(ctx, "ghost")

		assert.ErrorIs(t, err, parks.ErrIdentityNotFound)
	})
}

func TestUserProviderCustomValidator(t *testing.T) {
	ctx := context.Background()
	store := new(MockUserStore)

	passwordHash, err := parks.HashPassword("password123")
	require.NoError(t, err)

	provider := parks.NewUserProvider(store)
	provider.Validator = func(u *parks.User) error {
		return errors.New("account suspended", errors.CategoryAuth)
	}

	user := &parks.User{
		ID:           42,
		Username:     "ranger",
		PasswordHash: passwordHash,
		Role:         parks.RoleAdmin,
	}
	store.On("GetByUsername", ctx, "ranger").Return(user, nil).Once()

	_, err = provider.VerifyIdentity(ctx, "ranger", "password123")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "account suspended")
}
