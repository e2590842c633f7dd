package api

import (
	"github.com/goliatone/go-router"

	parks "github.com/goliatone/go-parks"
	"github.com/goliatone/go-parks/middleware/jwtware"
)

// RouteRegistrar captures the router methods used by the API route table.
type RouteRegistrar interface {
	Get(path string, handler router.HandlerFunc, mw ...router.MiddlewareFunc) router.RouteInfo
	Post(path string, handler router.HandlerFunc, mw ...router.MiddlewareFunc) router.RouteInfo
	Patch(path string, handler router.HandlerFunc, mw ...router.MiddlewareFunc) router.RouteInfo
	Delete(path string, handler router.HandlerFunc, mw ...router.MiddlewareFunc) router.RouteInfo
}

// RouteConfig carries the dependencies for the API route table
type RouteConfig struct {
	Logger parks.Logger
	Repo   parks.RepositoryManager
	Auther parks.Authenticator
	Tokens parks.TokenService
	Config parks.Config
}

// RegisterRoutes mounts the versioned API route table. Listing endpoints
// are open; park show requires a valid token, trail show requires the
// Admin role.
func RegisterRoutes(app RouteRegistrar, cfg RouteConfig) {
	if cfg.Logger == nil {
		cfg.Logger = parks.DefaultLogger()
	}

	validator := NewTokenValidator(cfg.Tokens)

	protected := jwtware.New(jwtware.Config{
		TokenValidator: validator,
		ContextKey:     cfg.Config.GetContextKey(),
		TokenLookup:    cfg.Config.GetTokenLookup(),
		AuthScheme:     cfg.Config.GetAuthScheme(),
		ErrorHandler:   MakeAuthErrorHandler(cfg.Logger),
	})

	adminOnly := jwtware.New(jwtware.Config{
		TokenValidator: validator,
		ContextKey:     cfg.Config.GetContextKey(),
		TokenLookup:    cfg.Config.GetTokenLookup(),
		AuthScheme:     cfg.Config.GetAuthScheme(),
		RequiredRole:   parks.RoleAdmin,
		ErrorHandler:   MakeAuthErrorHandler(cfg.Logger),
	})

	parksCtrl := NewParksController(cfg.Repo, cfg.Logger)

	app.Get("/api/v1/nationalparks", parksCtrl.List).
		SetName("api.parks.list")
	app.Get("/api/v1/nationalparks/:id", parksCtrl.Show, protected).
		SetName("api.parks.show")
	app.Post("/api/v1/nationalparks", parksCtrl.Create).
		SetName("api.parks.create")
	app.Patch("/api/v1/nationalparks/:id", parksCtrl.Update).
		SetName("api.parks.update")
	app.Delete("/api/v1/nationalparks/:id", parksCtrl.Delete).
		SetName("api.parks.delete")

	trailsCtrl := NewTrailsController(cfg.Repo, cfg.Logger)

	app.Get("/api/v1/trails", trailsCtrl.List).
		SetName("api.trails.list")
	app.Get("/api/v1/trails/nationalpark/:id", trailsCtrl.ListInPark).
		SetName("api.trails.list-in-park")
	app.Get("/api/v1/trails/:id", trailsCtrl.Show, adminOnly).
		SetName("api.trails.show")
	app.Post("/api/v1/trails", trailsCtrl.Create).
		SetName("api.trails.create")
	app.Patch("/api/v1/trails/:id", trailsCtrl.Update).
		SetName("api.trails.update")
	app.Delete("/api/v1/trails/:id", trailsCtrl.Delete).
		SetName("api.trails.delete")

	usersCtrl := NewUsersController(cfg.Repo, cfg.Auther, cfg.Logger)

	app.Post("/api/v1/users/authenticate", usersCtrl.Authenticate).
		SetName("api.users.authenticate")
	app.Post("/api/v1/users/register", usersCtrl.Register).
		SetName("api.users.register")
}

// MakeAuthErrorHandler responds with the JSON error envelope instead of
// the middleware's plain-text default
func MakeAuthErrorHandler(logger parks.Logger) router.ErrorHandler {
	return func(ctx router.Context, err error) error {
		logger.Warn("auth middleware rejected request", "error", err)

		status := router.StatusUnauthorized
		if err.Error() == jwtware.ErrJWTMissingOrMalformed.Error() {
			status = router.StatusBadRequest
		}

		return ctx.JSON(status, ErrorResponse{Errors: []string{err.Error()}})
	}
}

// tokenValidator adapts a TokenService to the middleware contract
type tokenValidator struct {
	service parks.TokenService
}

// NewTokenValidator wraps the token service for jwtware consumption
func NewTokenValidator(service parks.TokenService) jwtware.TokenValidator {
	return tokenValidator{service: service}
}

func (v tokenValidator) Validate(tokenString string) (jwtware.AuthClaims, error) {
	claims, err := v.service.Validate(tokenString)
	if err != nil {
		return nil, err
	}
	return claims, nil
}
