package main

import (
	"context"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/template/django/v3"
	gconfig "github.com/goliatone/go-config/config"
	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-logger/glog"
	"github.com/goliatone/go-print"
	"github.com/goliatone/go-router"
	mflash "github.com/goliatone/go-router/middleware/flash"

	"github.com/goliatone/go-parks/config"
	"github.com/goliatone/go-parks/webapp"
)

type App struct {
	config *gconfig.Container[*config.BaseConfig]
	srv    router.Server[*fiber.App]
	logger *glog.BaseLogger
}

func (a *App) Config() *config.BaseConfig {
	return a.config.Raw()
}

func (a *App) GetLogger(name string) glog.Logger {
	return a.logger.GetLogger(name)
}

func main() {
	lgr := glog.NewLogger(
		glog.WithLoggerTypePretty(),
		glog.WithLevel(glog.Trace),
		glog.WithName("parky-web"),
	)

	cfg, err := gconfig.New(&config.BaseConfig{})
	if err != nil {
		panic(err)
	}

	ctx := context.Background()
	if err := cfg.Load(ctx); err != nil {
		panic(err)
	}

	fmt.Println("============")
	fmt.Println(print.MaybePrettyJSON(cfg.Raw()))
	fmt.Println("============")

	app := &App{
		config: cfg,
		logger: lgr,
	}

	if err := WithHTTPServer(ctx, app); err != nil {
		panic(err)
	}

	app.srv.Serve(app.Config().GetServer().GetWebAddr())

	WaitExitSignal()
}

func WithHTTPServer(ctx context.Context, app *App) error {
	templates, err := fs.Sub(webapp.GetViewsFS(), "views")
	if err != nil {
		return fmt.Errorf("unable to scope embedded templates: %w", err)
	}

	viewEngine := django.NewFileSystem(http.FS(templates), ".html")

	srv := router.NewFiberAdapter(func(a *fiber.App) *fiber.App {
		return router.DefaultFiberOptions(fiber.New(fiber.Config{
			UnescapePath:      true,
			EnablePrintRoutes: true,
			StrictRouting:     false,
			PassLocalsToViews: true,
			Views:             viewEngine,
			ErrorHandler: func(c *fiber.Ctx, err error) error {
				code := fiber.StatusInternalServerError
				var fe *fiber.Error
				if errors.As(err, &fe) {
					code = fe.Code
				}
				return c.Status(code).Render("errors/500", fiber.Map{
					"error_message": err.Error(),
				})
			},
		}))
	})

	srv.Router().WithLogger(app.GetLogger("router"))
	srv.Router().Use(mflash.New(mflash.ConfigDefault))

	scfg := app.Config().GetSession()
	sessions := webapp.NewSessionManager(
		scfg.GetHashKey(),
		scfg.GetBlockKey(),
		webapp.WithCookieMaxAge(scfg.GetMaxAge()),
		webapp.WithSecureCookies(scfg.GetSecure()),
	)

	webapp.RegisterRoutes(srv.Router(), webapp.RouteConfig{
		Logger:    app.GetLogger("webapp"),
		Endpoints: webapp.Endpoints{BaseURL: app.Config().GetAPI().GetBaseURL()},
		Sessions:  sessions,
	})

	app.srv = srv

	return nil
}

func WaitExitSignal() os.Signal {
	ch := make(chan os.Signal, 3)
	signal.Notify(ch,
		syscall.SIGINT,
		syscall.SIGQUIT,
		syscall.SIGTERM,
	)
	return <-ch
}
