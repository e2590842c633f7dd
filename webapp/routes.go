package webapp

import (
	"github.com/goliatone/go-router"

	parks "github.com/goliatone/go-parks"
	"github.com/goliatone/go-parks/client"
)

// RouteRegistrar captures the router methods used by the web route table.
type RouteRegistrar interface {
	Get(path string, handler router.HandlerFunc, mw ...router.MiddlewareFunc) router.RouteInfo
	Post(path string, handler router.HandlerFunc, mw ...router.MiddlewareFunc) router.RouteInfo
}

// RouteConfig carries the dependencies for the web route table
type RouteConfig struct {
	Logger    parks.Logger
	Endpoints Endpoints
	Sessions  *SessionManager
}

// RegisterRoutes mounts the page routes. Park management needs a signed-in
// principal; trail management needs the Admin role.
func RegisterRoutes(app RouteRegistrar, cfg RouteConfig) {
	if cfg.Logger == nil {
		cfg.Logger = parks.DefaultLogger()
	}

	home := NewHomeController(
		WithHomeLogger(cfg.Logger),
		WithHomeEndpoints(cfg.Endpoints),
		WithHomeSessions(cfg.Sessions),
		WithHomeAccount(client.NewAccount()),
	)

	app.Get("/", home.Index).SetName("home.index")
	app.Get("/login", home.LoginShow).SetName("sign-in.get")
	app.Post("/login", home.LoginPost).SetName("sign-in.post")
	app.Get("/register", home.RegisterShow).SetName("register.get")
	app.Post("/register", home.RegisterPost).SetName("register.post")
	app.Get("/logout", home.Logout).SetName("sign-out.get")

	authed := cfg.Sessions.RequireAuth()
	adminOnly := cfg.Sessions.RequireAuth(parks.RoleAdmin)

	parksPages := NewParksPageController(cfg.Sessions, cfg.Endpoints, cfg.Logger)

	app.Get("/parks", parksPages.Index, authed).SetName("parks.index")
	app.Get("/parks/data", parksPages.Data, authed).SetName("parks.data")
	app.Get("/parks/upsert", parksPages.UpsertShow, authed).SetName("parks.upsert.get")
	app.Get("/parks/upsert/:id", parksPages.UpsertShow, authed).SetName("parks.upsert-one.get")
	app.Post("/parks/upsert", parksPages.UpsertPost, authed).SetName("parks.upsert.post")
	app.Get("/parks/delete/:id", parksPages.Delete, authed).SetName("parks.delete")

	trailsPages := NewTrailsPageController(cfg.Sessions, cfg.Endpoints, cfg.Logger)

	app.Get("/trails", trailsPages.Index, adminOnly).SetName("trails.index")
	app.Get("/trails/data", trailsPages.Data, adminOnly).SetName("trails.data")
	app.Get("/trails/upsert", trailsPages.UpsertShow, adminOnly).SetName("trails.upsert.get")
	app.Get("/trails/upsert/:id", trailsPages.UpsertShow, adminOnly).SetName("trails.upsert-one.get")
	app.Post("/trails/upsert", trailsPages.UpsertPost, adminOnly).SetName("trails.upsert.post")
	app.Get("/trails/delete/:id", trailsPages.Delete, adminOnly).SetName("trails.delete")
}
