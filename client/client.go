// Package client provides a typed HTTP client for the parks API. One
// generic repository covers every resource; errors carry the category of
// the failure so callers can branch without parsing status codes.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	goerrors "github.com/goliatone/go-errors"

	parks "github.com/goliatone/go-parks"
)

// Doer is the transport contract, satisfied by *http.Client
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Repository is a generic resource client. URLs are collection endpoints;
// item operations append "/<id>". The bearer header is attached only when
// the token is non-empty.
type Repository[T any] struct {
	client Doer
	logger parks.Logger
}

type Option[T any] func(*Repository[T])

// WithHTTPClient overrides the transport
func WithHTTPClient[T any](client Doer) Option[T] {
	return func(r *Repository[T]) {
		r.client = client
	}
}

// WithLogger overrides the logger
func WithLogger[T any](logger parks.Logger) Option[T] {
	return func(r *Repository[T]) {
		r.logger = logger
	}
}

func NewRepository[T any](opts ...Option[T]) *Repository[T] {
	r := &Repository[T]{
		client: &http.Client{Timeout: 30 * time.Second},
		logger: parks.DefaultLogger(),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// GetAll fetches the full collection
func (r *Repository[T]) GetAll(ctx context.Context, url, token string) ([]T, error) {
	resp, err := r.send(ctx, http.MethodGet, url, nil, token)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, decodeError(resp)
	}

	var records []T
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryOperation, "could not decode response")
	}

	return records, nil
}

// Get fetches a single record by id
func (r *Repository[T]) Get(ctx context.Context, url string, id int64, token string) (*T, error) {
	resp, err := r.send(ctx, http.MethodGet, itemURL(url, id), nil, token)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, decodeError(resp)
	}

	record := new(T)
	if err := json.NewDecoder(resp.Body).Decode(record); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryOperation, "could not decode response")
	}

	return record, nil
}

// Create posts a record and returns the stored version
func (r *Repository[T]) Create(ctx context.Context, url string, record *T, token string) (*T, error) {
	if record == nil {
		return nil, goerrors.New("no record to create", goerrors.CategoryBadInput)
	}

	resp, err := r.send(ctx, http.MethodPost, url, record, token)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return nil, decodeError(resp)
	}

	created := new(T)
	if err := json.NewDecoder(resp.Body).Decode(created); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryOperation, "could not decode response")
	}

	return created, nil
}

// Update patches a record in place
func (r *Repository[T]) Update(ctx context.Context, url string, id int64, record *T, token string) error {
	if record == nil {
		return goerrors.New("no record to update", goerrors.CategoryBadInput)
	}

	resp, err := r.send(ctx, http.MethodPatch, itemURL(url, id), record, token)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent {
		return decodeError(resp)
	}

	return nil
}

// Delete removes a record by id
func (r *Repository[T]) Delete(ctx context.Context, url string, id int64, token string) error {
	resp, err := r.send(ctx, http.MethodDelete, itemURL(url, id), nil, token)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent {
		return decodeError(resp)
	}

	return nil
}

func (r *Repository[T]) send(ctx context.Context, method, url string, body any, token string) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, goerrors.Wrap(err, goerrors.CategoryBadInput, "could not encode request body")
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryBadInput, "could not build request")
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		r.logger.Error("request failed", "method", method, "url", url, "error", err)
		return nil, goerrors.Wrap(err, goerrors.CategoryOperation, "request failed")
	}

	return resp, nil
}

func itemURL(url string, id int64) string {
	return fmt.Sprintf("%s/%d", url, id)
}

// decodeError turns a non-2xx response into a categorized error, reading
// the server's error envelope when present
func decodeError(resp *http.Response) error {
	msg := http.StatusText(resp.StatusCode)

	var envelope struct {
		Errors []string `json:"errors"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err == nil && len(envelope.Errors) > 0 {
		msg = envelope.Errors[0]
	}

	category := goerrors.CategoryInternal
	switch resp.StatusCode {
	case http.StatusBadRequest:
		category = goerrors.CategoryValidation
	case http.StatusUnauthorized:
		category = goerrors.CategoryAuth
	case http.StatusForbidden:
		category = goerrors.CategoryAuthz
	case http.StatusNotFound:
		category = goerrors.CategoryNotFound
	case http.StatusConflict:
		category = goerrors.CategoryConflict
	}

	return goerrors.New(msg, category).WithMetadata(map[string]any{
		"status_code": resp.StatusCode,
	})
}
