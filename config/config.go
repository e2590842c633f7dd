package config

import (
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
)

// BaseConfig is the application configuration tree. It is loaded through
// go-config from config/app.json plus environment overrides.
type BaseConfig struct {
	Name        string      `json:"name" koanf:"name"`
	Env         string      `json:"env" koanf:"env"`
	Server      Server      `json:"server" koanf:"server"`
	Auth        Auth        `json:"auth" koanf:"auth"`
	Session     Session     `json:"session" koanf:"session"`
	Persistence Persistence `json:"persistence" koanf:"persistence"`
	API         API         `json:"api" koanf:"api"`
}

func (c *BaseConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Auth),
		validation.Field(&c.Session),
	)
}

func (c *BaseConfig) GetName() string {
	if c.Name == "" {
		return "parky"
	}
	return c.Name
}

func (c *BaseConfig) GetEnv() string {
	if c.Env == "" {
		return "development"
	}
	return c.Env
}

func (c *BaseConfig) GetServer() *Server           { return &c.Server }
func (c *BaseConfig) GetAuth() *Auth               { return &c.Auth }
func (c *BaseConfig) GetSession() *Session         { return &c.Session }
func (c *BaseConfig) GetPersistence() *Persistence { return &c.Persistence }
func (c *BaseConfig) GetAPI() *API                 { return &c.API }

// Server holds the listen addresses for both binaries
type Server struct {
	APIAddr string `json:"api_addr" koanf:"api_addr"`
	WebAddr string `json:"web_addr" koanf:"web_addr"`
}

func (s Server) GetAPIAddr() string {
	if s.APIAddr == "" {
		return ":9000"
	}
	return s.APIAddr
}

func (s Server) GetWebAddr() string {
	if s.WebAddr == "" {
		return ":4000"
	}
	return s.WebAddr
}

// Auth holds token signing options
type Auth struct {
	SigningKey      string `json:"signing_key" koanf:"signing_key"`
	SigningMethod   string `json:"signing_method" koanf:"signing_method"`
	ContextKey      string `json:"context_key" koanf:"context_key"`
	TokenExpiration int    `json:"token_expiration" koanf:"token_expiration"`
	TokenLookup     string `json:"token_lookup" koanf:"token_lookup"`
	AuthScheme      string `json:"auth_scheme" koanf:"auth_scheme"`
	Issuer          string `json:"issuer" koanf:"issuer"`
}

func (a Auth) Validate() error {
	return validation.ValidateStruct(&a,
		validation.Field(&a.SigningKey, validation.Required, validation.Length(32, 0)),
	)
}

func (a *Auth) GetSigningKey() string { return a.SigningKey }

func (a *Auth) GetSigningMethod() string {
	if a.SigningMethod == "" {
		return "HS256"
	}
	return a.SigningMethod
}

func (a *Auth) GetContextKey() string {
	if a.ContextKey == "" {
		return "user"
	}
	return a.ContextKey
}

// GetTokenExpiration is the token lifetime in days
func (a *Auth) GetTokenExpiration() int {
	if a.TokenExpiration == 0 {
		return 7
	}
	return a.TokenExpiration
}

func (a *Auth) GetTokenLookup() string {
	if a.TokenLookup == "" {
		return "header:Authorization"
	}
	return a.TokenLookup
}

func (a *Auth) GetAuthScheme() string {
	if a.AuthScheme == "" {
		return "Bearer"
	}
	return a.AuthScheme
}

func (a *Auth) GetIssuer() string {
	if a.Issuer == "" {
		return "parky"
	}
	return a.Issuer
}

// Session holds the web client cookie options. HashKey signs the cookies,
// BlockKey encrypts them; both are hex friendly plain strings here and
// should come from the environment outside development.
type Session struct {
	HashKey          string `json:"hash_key" koanf:"hash_key"`
	BlockKey         string `json:"block_key" koanf:"block_key"`
	Secure           bool   `json:"secure" koanf:"secure"`
	MaxAgeExpression string `json:"max_age" koanf:"max_age"`
}

func (s Session) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.HashKey, validation.Required, validation.Length(32, 64)),
	)
}

func (s *Session) GetHashKey() []byte  { return []byte(s.HashKey) }
func (s *Session) GetBlockKey() []byte { return []byte(s.BlockKey) }
func (s *Session) GetSecure() bool     { return s.Secure }

func (s *Session) GetMaxAge() time.Duration {
	if s.MaxAgeExpression == "" {
		return 7 * 24 * time.Hour
	}
	dur, err := time.ParseDuration(s.MaxAgeExpression)
	if err != nil {
		panic(
			fmt.Sprintf("unable to parse time: expr %s", s.MaxAgeExpression),
		)
	}
	return dur
}

// Persistence holds database options
type Persistence struct {
	Debug                 bool   `json:"debug" koanf:"debug"`
	Driver                string `json:"driver" koanf:"driver"`
	DSN                   string `json:"dsn" koanf:"dsn"`
	Server                string `json:"server" koanf:"server"`
	Database              string `json:"database" koanf:"database"`
	OtelIdentifier        string `json:"otel_identifier" koanf:"otel_identifier"`
	PingTimeoutExpression string `json:"ping_timeout" koanf:"ping_timeout"`
}

func (p Persistence) GetDebug() bool { return p.Debug }

// GetServer is empty for the sqlite driver; the DSN carries the target
func (p Persistence) GetServer() string { return p.Server }

func (p Persistence) GetDatabase() string {
	if p.Database == "" {
		return "parky"
	}
	return p.Database
}

// GetOtelIdentifier enables the otel query hook when non empty
func (p Persistence) GetOtelIdentifier() string { return p.OtelIdentifier }

func (p Persistence) GetDriver() string {
	if p.Driver == "" {
		return "sqlite"
	}
	return p.Driver
}

func (p Persistence) GetDSN() string {
	if p.DSN == "" {
		return "file::memory:?cache=shared"
	}
	return p.DSN
}

func (p Persistence) GetPingTimeout() time.Duration {
	if p.PingTimeoutExpression == "" {
		return 5 * time.Second
	}
	dur, err := time.ParseDuration(p.PingTimeoutExpression)
	if err != nil {
		panic(
			fmt.Sprintf("unable to parse time: expr %s", p.PingTimeoutExpression),
		)
	}
	return dur
}

// API holds the upstream endpoint the web client talks to
type API struct {
	BaseURL string `json:"base_url" koanf:"base_url"`
}

func (a *API) GetBaseURL() string {
	if a.BaseURL == "" {
		return "http://localhost:9000"
	}
	return a.BaseURL
}
