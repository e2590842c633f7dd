package webapp

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/goliatone/go-router"
	"github.com/goliatone/go-router/flash"

	parks "github.com/goliatone/go-parks"
	"github.com/goliatone/go-parks/client"
)

// HomeController serves the index page and the account flows
type HomeController struct {
	Logger    parks.Logger
	Endpoints Endpoints
	Account   *client.Account
	Sessions  *SessionManager
	Parks     *client.Repository[parks.NationalPark]
	Trails    *client.Repository[parks.Trail]
	Views     *HomeViews
}

type HomeViews struct {
	Index    string
	Login    string
	Register string
}

type HomeControllerOption func(*HomeController) *HomeController

func NewHomeController(opts ...HomeControllerOption) *HomeController {
	c := &HomeController{
		Logger: parks.DefaultLogger(),
		Views: &HomeViews{
			Index:    "home/index",
			Login:    "auth/login",
			Register: "auth/register",
		},
	}

	for _, opt := range opts {
		c = opt(c)
	}

	if c.Sessions == nil {
		panic("Missing SessionManager in home controller...")
	}

	if c.Account == nil {
		panic("Missing account client in home controller...")
	}

	if c.Parks == nil {
		c.Parks = client.NewRepository[parks.NationalPark]()
	}

	if c.Trails == nil {
		c.Trails = client.NewRepository[parks.Trail]()
	}

	return c
}

func WithHomeLogger(logger parks.Logger) HomeControllerOption {
	return func(c *HomeController) *HomeController {
		c.Logger = logger
		return c
	}
}

func WithHomeEndpoints(endpoints Endpoints) HomeControllerOption {
	return func(c *HomeController) *HomeController {
		c.Endpoints = endpoints
		return c
	}
}

func WithHomeSessions(sessions *SessionManager) HomeControllerOption {
	return func(c *HomeController) *HomeController {
		c.Sessions = sessions
		return c
	}
}

func WithHomeAccount(account *client.Account) HomeControllerOption {
	return func(c *HomeController) *HomeController {
		c.Account = account
		return c
	}
}

func WithHomeParksClient(repo *client.Repository[parks.NationalPark]) HomeControllerOption {
	return func(c *HomeController) *HomeController {
		c.Parks = repo
		return c
	}
}

func WithHomeTrailsClient(repo *client.Repository[parks.Trail]) HomeControllerOption {
	return func(c *HomeController) *HomeController {
		c.Trails = repo
		return c
	}
}

// Index renders the landing page with parks and their trails
func (c *HomeController) Index(ctx router.Context) error {
	token, _ := c.Sessions.Token(ctx)
	principal, _ := c.Sessions.Principal(ctx)

	parkList, err := c.Parks.GetAll(ctx.Context(), c.Endpoints.NationalParks(), token)
	if err != nil {
		c.Logger.Error("home index parks fetch", "error", err)
	}

	trailList, err := c.Trails.GetAll(ctx.Context(), c.Endpoints.Trails(), token)
	if err != nil {
		c.Logger.Error("home index trails fetch", "error", err)
	}

	return ctx.Render(c.Views.Index, router.ViewContext{
		"parks":     parkList,
		"trails":    trailList,
		"principal": principal,
	})
}

func (c *HomeController) LoginShow(ctx router.Context) error {
	return ctx.Render(c.Views.Login, router.ViewContext{
		"errors": nil,
		"record": nil,
	})
}

// LoginForm is the login page payload
type LoginForm struct {
	Username string `form:"username" json:"username"`
	Password string `form:"password" json:"password"`
}

// Validate will run validation rules
func (r LoginForm) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required),
		validation.Field(&r.Password, validation.Required),
	)
}

func (c *HomeController) LoginPost(ctx router.Context) error {
	payload := new(LoginForm)

	if err := ctx.Bind(payload); err != nil {
		c.Logger.Error("login parse payload", "error", err)
		return flash.WithError(ctx, router.ViewContext{
			"error_message":  err.Error(),
			"system_message": "Error parsing body",
		}).Status(router.StatusBadRequest).Render(c.Views.Login, router.ViewContext{
			"record": payload,
		})
	}

	if err := payload.Validate(); err != nil {
		return ctx.Render(c.Views.Login, router.ViewContext{
			"record":     payload,
			"validation": err.Error(),
		})
	}

	user, err := c.Account.Login(ctx.Context(), c.Endpoints.Authenticate(), client.Credentials{
		Username: payload.Username,
		Password: payload.Password,
	})

	// The form never says which half of the credentials was wrong
	if err != nil {
		c.Logger.Error("login rejected", "error", err)
		return ctx.Render(c.Views.Login, router.ViewContext{
			"errors": map[string]string{
				"authentication": "Invalid username or password",
			},
			"record": LoginForm{Username: payload.Username},
		})
	}

	if err := c.Sessions.Establish(ctx, Principal{
		Name: user.Username,
		Role: user.Role,
	}, user.Token); err != nil {
		c.Logger.Error("login session establish", "error", err)
		return ctx.Render(c.Views.Login, router.ViewContext{
			"errors": map[string]string{
				"session": "Could not establish a session",
			},
			"record": LoginForm{Username: payload.Username},
		})
	}

	return flash.WithSuccess(ctx, router.ViewContext{
		"system_message": "Welcome back, " + user.Username,
	}).Redirect("/", router.StatusSeeOther)
}

func (c *HomeController) RegisterShow(ctx router.Context) error {
	return ctx.Render(c.Views.Register, router.ViewContext{
		"errors": map[string]string{},
		"record": RegistrationForm{},
	})
}

// RegistrationForm is the registration page payload
type RegistrationForm struct {
	Username        string `form:"username" json:"username"`
	Password        string `form:"password" json:"password"`
	ConfirmPassword string `form:"confirm_password" json:"confirm_password"`
}

// Validate will run validation rules
func (r RegistrationForm) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required, validation.Length(1, 100)),
		validation.Field(&r.Password, validation.Required, validation.Length(6, 100)),
		validation.Field(
			&r.ConfirmPassword,
			validation.Required,
			validation.By(matchString(r.Password)),
		),
	)
}

func (c *HomeController) RegisterPost(ctx router.Context) error {
	payload := new(RegistrationForm)

	if err := ctx.Bind(payload); err != nil {
		c.Logger.Error("register parse payload", "error", err)
		return flash.WithError(ctx, router.ViewContext{
			"error_message":  err.Error(),
			"system_message": "Error parsing body",
		}).Status(router.StatusBadRequest).Render(c.Views.Register, router.ViewContext{
			"record": payload,
		})
	}

	if err := payload.Validate(); err != nil {
		return flash.WithError(ctx, router.ViewContext{
			"error_message":  err.Error(),
			"system_message": "Error validating payload",
		}).Render(c.Views.Register, router.ViewContext{
			"record":     payload,
			"validation": err.Error(),
		})
	}

	err := c.Account.Register(ctx.Context(), c.Endpoints.Register(), client.Credentials{
		Username: payload.Username,
		Password: payload.Password,
	})
	if err != nil {
		c.Logger.Error("register rejected", "error", err)
		return flash.WithError(ctx, router.ViewContext{
			"error_message":  err.Error(),
			"system_message": "Registration failed",
		}).Render(c.Views.Register, router.ViewContext{
			"record": payload,
		})
	}

	return flash.WithSuccess(ctx, router.ViewContext{
		"system_message": "Account created, you can sign in now",
	}).Redirect("/login", router.StatusSeeOther)
}

func (c *HomeController) Logout(ctx router.Context) error {
	if err := c.Sessions.Clear(ctx); err != nil {
		c.Logger.Error("logout clear session", "error", err)
	}
	return ctx.Redirect("/", router.StatusSeeOther)
}

var errValuesMustMatch = errors.New("values must match")

func matchString(expected string) validation.RuleFunc {
	return func(value any) error {
		s, _ := value.(string)
		if s != expected {
			return errValuesMustMatch
		}
		return nil
	}
}
