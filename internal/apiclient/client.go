// Package apiclient talks to the remote authentication API. It covers the three
// endpoints the auth forms need and nothing else: no retries, no refresh, and
// no timeout beyond what the supplied http.Client enforces.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/oauth2"
)

const (
	LoginPath        = "/api/auth/login"
	RegisterPath     = "/api/auth/register"
	ResetRequestPath = "/api/auth/password-reset-request"
)

// User is the account summary returned alongside an access token.
type User struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// AuthResponse is the login result.
type AuthResponse struct {
	AccessToken string
	TokenType   string
	User        User
}

// RegisterRequest is the registration body. The server assigns the role; there
// is deliberately no field for it.
type RegisterRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	NationalID string `json:"national_id"`
}

type resetRequest struct {
	Email string `json:"email"`
}

// Client is bound to one API base URL.
type Client struct {
	baseURL string
	http    *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces http.DefaultClient.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// New creates a Client for baseURL, e.g. "https://auth.example.com".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the API root the client was built with.
func (c *Client) BaseURL() string { return c.baseURL }

// Login exchanges credentials for an access token. The backend expects an
// OAuth2 password grant: form-encoded username and password, no client id.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	conf := &oauth2.Config{
		Endpoint: oauth2.Endpoint{
			TokenURL:  c.baseURL + LoginPath,
			AuthStyle: oauth2.AuthStyleInParams,
		},
	}
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.http)

	tok, err := conf.PasswordCredentialsToken(ctx, email, password)
	if err != nil {
		var rErr *oauth2.RetrieveError
		if errors.As(err, &rErr) && rErr.Response != nil {
			return nil, newAPIError(rErr.Response.StatusCode, rErr.Body)
		}
		var uErr *url.Error
		if errors.As(err, &uErr) {
			return nil, &TransportError{Op: "login", Err: err}
		}
		return nil, fmt.Errorf("login: %w", err)
	}

	resp := &AuthResponse{AccessToken: tok.AccessToken, TokenType: tok.TokenType}
	if raw := tok.Extra("user"); raw != nil {
		// Extra hands back the decoded JSON object; round-trip it into User.
		if b, err := json.Marshal(raw); err == nil {
			if err := json.Unmarshal(b, &resp.User); err != nil {
				slog.Debug("Ignoring malformed user in login response", "error", err)
			}
		}
	}
	return resp, nil
}

// Register creates an account. The response body is discarded; registering
// never signs the user in.
func (c *Client) Register(ctx context.Context, req RegisterRequest) error {
	return c.postJSON(ctx, "register", RegisterPath, req)
}

// RequestPasswordReset asks the server to mail reset instructions.
func (c *Client) RequestPasswordReset(ctx context.Context, email string) error {
	return c.postJSON(ctx, "password reset request", ResetRequestPath, resetRequest{Email: email})
}

func (c *Client) postJSON(ctx context.Context, op, path string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal %s payload: %w", op, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create %s request: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newAPIError(resp.StatusCode, data)
	}
	if err != nil {
		slog.Debug("Discarding unreadable response body", "op", op, "error", err)
	}
	return nil
}
