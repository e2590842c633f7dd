package client

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	goerrors "github.com/goliatone/go-errors"

	parks "github.com/goliatone/go-parks"
)

// Credentials is the payload for authenticate and register calls
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Account talks to the users endpoints
type Account struct {
	client Doer
	logger parks.Logger
}

type AccountOption func(*Account)

func WithAccountHTTPClient(client Doer) AccountOption {
	return func(a *Account) {
		a.client = client
	}
}

func WithAccountLogger(logger parks.Logger) AccountOption {
	return func(a *Account) {
		a.logger = logger
	}
}

func NewAccount(opts ...AccountOption) *Account {
	a := &Account{
		client: &http.Client{Timeout: 30 * time.Second},
		logger: parks.DefaultLogger(),
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Login exchanges credentials for the user record carrying a bearer token
func (a *Account) Login(ctx context.Context, url string, creds Credentials) (*parks.User, error) {
	resp, err := a.post(ctx, url, creds)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, decodeError(resp)
	}

	user := new(parks.User)
	if err := json.NewDecoder(resp.Body).Decode(user); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryOperation, "could not decode user")
	}

	if user.Token == "" {
		return nil, goerrors.New("response carried no token", goerrors.CategoryAuth)
	}

	return user, nil
}

// Register creates a new account
func (a *Account) Register(ctx context.Context, url string, creds Credentials) error {
	resp, err := a.post(ctx, url, creds)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decodeError(resp)
	}

	return nil
}

func (a *Account) post(ctx context.Context, url string, body any) (*http.Response, error) {
	buf, err := json.Marshal(body)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryBadInput, "could not encode request body")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(buf))
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryBadInput, "could not build request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		a.logger.Error("request failed", "url", url, "error", err)
		return nil, goerrors.Wrap(err, goerrors.CategoryOperation, "request failed")
	}

	return resp, nil
}
