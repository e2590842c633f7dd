package main

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	gconfig "github.com/goliatone/go-config/config"
	"github.com/goliatone/go-logger/glog"
	"github.com/goliatone/go-persistence-bun"
	"github.com/goliatone/go-print"
	"github.com/goliatone/go-router"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	parks "github.com/goliatone/go-parks"
	"github.com/goliatone/go-parks/api"
	"github.com/goliatone/go-parks/config"
)

type App struct {
	config *gconfig.Container[*config.BaseConfig]
	bunDB  *bun.DB
	auther parks.Authenticator
	tokens parks.TokenService
	repo   parks.RepositoryManager
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
		glog.WithName("parky-api"),
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

	if err := WithPersistence(ctx, app); err != nil {
		panic(err)
	}

	if err := WithAuth(ctx, app); err != nil {
		panic(err)
	}

	WithHTTPServer(ctx, app)

	app.srv.Serve(app.Config().GetServer().GetAPIAddr())

	WaitExitSignal()
}

func WithPersistence(ctx context.Context, app *App) error {
	db, err := sql.Open(sqliteshim.ShimName, app.Config().GetPersistence().GetDSN())
	if err != nil {
		log.Fatal(err)
		return err
	}

	persistence.RegisterModel((*parks.User)(nil))
	persistence.RegisterModel((*parks.NationalPark)(nil))
	persistence.RegisterModel((*parks.Trail)(nil))

	client, err := persistence.New(app.Config().GetPersistence(), db, sqlitedialect.New())
	if err != nil {
		log.Fatal(err)
		return err
	}

	plog := app.GetLogger("persistence")
	client.SetLogger(func(format string, args ...any) {
		plog.Debug(fmt.Sprintf(format, args...))
	})

	migrationsFS, err := fs.Sub(parks.GetMigrationsFS(), "data/sql/migrations/sqlite")
	if err != nil {
		return err
	}
	client.RegisterSQLMigrations(migrationsFS)

	if err := client.Migrate(ctx); err != nil {
		return err
	}

	client.RegisterFixtures(parks.GetFixturesFS())

	if err := client.Seed(ctx); err != nil {
		return err
	}

	bunDB, ok := client.DB().(*bun.DB)
	if !ok {
		return fmt.Errorf("unexpected database handle type %T", client.DB())
	}

	app.bunDB = bunDB
	app.repo = parks.NewRepositoryManager(bunDB)

	return nil
}

func WithAuth(ctx context.Context, app *App) error {
	if err := app.repo.Validate(); err != nil {
		return err
	}

	acfg := app.Config().GetAuth()

	userProvider := parks.NewUserProvider(app.repo.Users())
	userProvider.WithLogger(app.GetLogger("auth:prv"))

	authenticator := parks.NewAuthenticator(userProvider, acfg)
	authenticator.WithLogger(app.GetLogger("auth:authn"))

	app.auther = authenticator
	app.tokens = authenticator.TokenService()

	return nil
}

func WithHTTPServer(ctx context.Context, app *App) {
	srv := router.NewFiberAdapter(func(a *fiber.App) *fiber.App {
		return router.DefaultFiberOptions(fiber.New(fiber.Config{
			UnescapePath:      true,
			EnablePrintRoutes: true,
			StrictRouting:     false,
		}))
	})

	srv.Router().WithLogger(app.GetLogger("router"))

	api.RegisterRoutes(srv.Router(), api.RouteConfig{
		Logger: app.GetLogger("api"),
		Repo:   app.repo,
		Auther: app.auther,
		Tokens: app.tokens,
		Config: app.Config().GetAuth(),
	})

	app.srv = srv
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
