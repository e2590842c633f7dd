package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/goliatone/go-parks/config"
)

func TestBaseConfigDefaults(t *testing.T) {
	cfg := &config.BaseConfig{}

	assert.Equal(t, "parky", cfg.GetName())
	assert.Equal(t, "development", cfg.GetEnv())
	assert.Equal(t, ":9000", cfg.GetServer().GetAPIAddr())
	assert.Equal(t, ":4000", cfg.GetServer().GetWebAddr())

	auth := cfg.GetAuth()
	assert.Equal(t, "HS256", auth.GetSigningMethod())
	assert.Equal(t, "user", auth.GetContextKey())
	assert.Equal(t, 7, auth.GetTokenExpiration())
	assert.Equal(t, "header:Authorization", auth.GetTokenLookup())
	assert.Equal(t, "Bearer", auth.GetAuthScheme())
	assert.Equal(t, "parky", auth.GetIssuer())

	session := cfg.GetSession()
	assert.Equal(t, 7*24*time.Hour, session.GetMaxAge())
	assert.False(t, session.GetSecure())

	persistence := cfg.GetPersistence()
	assert.Equal(t, "sqlite", persistence.GetDriver())
	assert.Equal(t, 5*time.Second, persistence.GetPingTimeout())

	assert.Equal(t, "http://localhost:9000", cfg.GetAPI().GetBaseURL())
}

func TestBaseConfigValidate(t *testing.T) {
	cfg := &config.BaseConfig{
		Auth: config.Auth{
			SigningKey: "0123456789abcdef0123456789abcdef",
		},
		Session: config.Session{
			HashKey:  "0123456789abcdef0123456789abcdef",
			BlockKey: "0123456789abcdef",
		},
	}

	assert.NoError(t, cfg.Validate())
}

func TestBaseConfigValidateRejectsShortKeys(t *testing.T) {
	cfg := &config.BaseConfig{
		Auth:    config.Auth{SigningKey: "too-short"},
		Session: config.Session{HashKey: "0123456789abcdef0123456789abcdef"},
	}

	assert.Error(t, cfg.Validate())
}

func TestSessionMaxAgeExpression(t *testing.T) {
	session := config.Session{MaxAgeExpression: "24h"}

	assert.Equal(t, 24*time.Hour, session.GetMaxAge())
}

func TestSessionMaxAgePanicsOnBadExpression(t *testing.T) {
	session := config.Session{MaxAgeExpression: "not-a-duration"}

	assert.Panics(t, func() { session.GetMaxAge() })
}
