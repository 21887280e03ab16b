package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"sync"

	"authstack/internal/client/config"
	"authstack/internal/client/models"
	"authstack/internal/common"
)

// RESTClient talks to the authstack server over its JSON API. In cookie
// mode the session travels in the cookie jar; in bearer mode the token is
// held in memory and attached as an Authorization header.
type RESTClient struct {
	baseURL    string
	transport  string
	httpClient *http.Client

	mu    sync.Mutex
	token string
}

// NewRESTClient builds a client from the CLI config.
func NewRESTClient(cfg *config.Config) (*RESTClient, error) {
	c := &RESTClient{
		baseURL:   strings.TrimRight(cfg.ServerBaseURL, "/"),
		transport: cfg.SessionTransport,
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
	}

	if cfg.SessionTransport == config.TransportCookie {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, fmt.Errorf("cookie jar init error: %w", err)
		}
		c.httpClient.Jar = jar
	}

	return c, nil
}

func (c *RESTClient) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

func (c *RESTClient) currentToken() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token
}

// credentialsPayload is the request envelope for sign-up and sign-in.
type credentialsPayload struct {
	User struct {
		Email                string `json:"email"`
		Password             string `json:"password"`
		PasswordConfirmation string `json:"password_confirmation,omitempty"`
	} `json:"user"`
}

// authResponse is the success body of sign-up and sign-in.
type authResponse struct {
	User  models.User `json:"user"`
	Token string      `json:"token"`
}

type errorResponse struct {
	Errors []string `json:"errors"`
}

func (c *RESTClient) SignUp(ctx context.Context, email, password, passwordConfirmation string) (*models.User, string, error) {
	var payload credentialsPayload
	payload.User.Email = email
	payload.User.Password = password
	payload.User.PasswordConfirmation = passwordConfirmation

	resp, err := c.do(ctx, http.MethodPost, "/api/v1/sign_up", payload)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return nil, "", c.apiError(resp)
	}
	return c.decodeAuth(resp)
}

func (c *RESTClient) SignIn(ctx context.Context, email, password string) (*models.User, string, error) {
	var payload credentialsPayload
	payload.User.Email = email
	payload.User.Password = password

	resp, err := c.do(ctx, http.MethodPost, "/api/v1/sign_in", payload)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		io.Copy(io.Discard, resp.Body)
		return nil, "", ErrInvalidCredentials
	}
	if resp.StatusCode != http.StatusOK {
		return nil, "", c.apiError(resp)
	}
	return c.decodeAuth(resp)
}

func (c *RESTClient) SignOut(ctx context.Context) error {
	resp, err := c.do(ctx, http.MethodDelete, "/api/v1/sign_out", nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusNoContent:
		return nil
	case http.StatusUnauthorized:
		io.Copy(io.Discard, resp.Body)
		return ErrUnauthorized
	default:
		return c.apiError(resp)
	}
}

func (c *RESTClient) Me(ctx context.Context) (*models.User, error) {
	resp, err := c.do(ctx, http.MethodGet, "/api/v1/me", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		io.Copy(io.Discard, resp.Body)
		return nil, ErrUnauthorized
	}
	if resp.StatusCode != http.StatusOK {
		return nil, c.apiError(resp)
	}

	var body struct {
		User models.User `json:"user"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("response decode error: %w", err)
	}
	return &body.User, nil
}

// Ping probes server reachability via the health endpoint.
func (c *RESTClient) Ping(ctx context.Context) error {
	resp, err := c.do(ctx, http.MethodGet, "/health", nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: health returned %d", ErrUnavailable, resp.StatusCode)
	}
	return nil
}

// do sends one request, attaching the bearer token when present. Transport
// failures are wrapped in ErrUnavailable so callers can distinguish "server
// down" from "server said no".
func (c *RESTClient) do(ctx context.Context, method, path string, payload any) (*http.Response, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("request encode error: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.currentToken(); token != "" {
		req.Header.Set(common.AuthorizationHeader, "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return resp, nil
}

// decodeAuth reads the success body of sign-up/sign-in and, in bearer mode,
// remembers the token for subsequent requests.
func (c *RESTClient) decodeAuth(resp *http.Response) (*models.User, string, error) {
	var body authResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, "", fmt.Errorf("response decode error: %w", err)
	}

	if body.Token != "" {
		c.SetToken(body.Token)
	}
	return &body.User, body.Token, nil
}

// apiError turns a non-success response into a typed error: a 422 becomes
// a *common.ValidationError carrying the server's message list.
func (c *RESTClient) apiError(resp *http.Response) error {
	var body errorResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil || len(body.Errors) == 0 {
		return fmt.Errorf("server returned %d", resp.StatusCode)
	}

	switch resp.StatusCode {
	case http.StatusUnprocessableEntity:
		return &common.ValidationError{Messages: body.Errors}
	case http.StatusUnauthorized:
		return ErrUnauthorized
	default:
		return fmt.Errorf("server returned %d: %s", resp.StatusCode, strings.Join(body.Errors, "; "))
	}
}
