package api

import (
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-router"

	parks "github.com/goliatone/go-parks"
)

// UsersController serves authentication and registration
type UsersController struct {
	Logger parks.Logger
	Repo   parks.RepositoryManager
	Auther parks.Authenticator
}

func NewUsersController(repo parks.RepositoryManager, auther parks.Authenticator, logger parks.Logger) *UsersController {
	return &UsersController{
		Logger: logger,
		Repo:   repo,
		Auther: auther,
	}
}

// Authenticate verifies credentials and returns the sanitized user record
// carrying a fresh bearer token
func (c *UsersController) Authenticate(ctx router.Context) error {
	payload := new(CredentialsRequest)

	if err := ctx.Bind(payload); err != nil {
		c.Logger.Error("authenticate parse payload", "error", err)
		return RespondError(ctx, goerrors.Wrap(err, goerrors.CategoryBadInput, "could not parse credentials"))
	}

	if err := payload.Validate(); err != nil {
		return RespondError(ctx, goerrors.Wrap(err, goerrors.CategoryValidation, "invalid credentials payload"))
	}

	token, err := c.Auther.Login(ctx.Context(), payload.Username, payload.Password)
	if err != nil {
		return RespondError(ctx, err)
	}

	user, err := c.Repo.Users().GetByUsername(ctx.Context(), payload.Username)
	if err != nil {
		c.Logger.Error("authenticate load user", "error", err)
		return RespondError(ctx, err)
	}

	user.Sanitize()
	user.Token = token

	return ctx.JSON(router.StatusOK, user)
}

// Register creates a user account. The uniqueness check happens here, not
// in the handler, and is not atomic with the insert; the unique index is
// the real guard.
func (c *UsersController) Register(ctx router.Context) error {
	payload := new(RegisterRequest)

	if err := ctx.Bind(payload); err != nil {
		c.Logger.Error("register parse payload", "error", err)
		return RespondError(ctx, goerrors.Wrap(err, goerrors.CategoryBadInput, "could not parse registration"))
	}

	if err := payload.Validate(); err != nil {
		return RespondError(ctx, goerrors.Wrap(err, goerrors.CategoryValidation, "invalid registration payload"))
	}

	unique, err := c.Repo.Users().IsUniqueUser(ctx.Context(), payload.Username)
	if err != nil {
		c.Logger.Error("register uniqueness check", "error", err)
		return RespondError(ctx, err)
	}

	if !unique {
		return RespondError(ctx, goerrors.New("username already exists", goerrors.CategoryValidation).
			WithCode(goerrors.CodeBadRequest))
	}

	registerUser := parks.NewRegisterUserHandler(c.Repo)
	if err := registerUser.Execute(ctx.Context(), parks.RegisterUserMessage{
		Username: payload.Username,
		Password: payload.Password,
		Role:     payload.Role,
	}); err != nil {
		c.Logger.Error("register user error", "error", err)
		return RespondError(ctx, err)
	}

	return ctx.JSON(router.StatusOK, map[string]any{})
}
