package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/julianstephens/thirtyday/internal/constants"
	"github.com/julianstephens/thirtyday/internal/logger"
	"github.com/julianstephens/thirtyday/internal/models"
)

// Client talks to the auth REST API and keeps the bearer token in Tokens.
type Client struct {
	BaseURL string
	HTTP    *http.Client
	Tokens  TokenStore
}

func NewClient(baseURL string, tokens TokenStore) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: constants.RequestTimeout},
		Tokens:  tokens,
	}
}

func (c *Client) httpClient() *http.Client {
	if c.HTTP == nil {
		return http.DefaultClient
	}
	return c.HTTP
}

// Token returns the stored bearer token, or "" when there is none.
func (c *Client) Token() (string, error) {
	if c.Tokens == nil {
		return "", nil
	}
	token, err := c.Tokens.GetToken()
	if err != nil {
		if errors.Is(err, ErrTokenNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("%w: %v", ErrKeyring, err)
	}
	return token, nil
}

func (c *Client) saveToken(token string) error {
	if c.Tokens == nil {
		return nil
	}
	if err := c.Tokens.SaveToken(token); err != nil {
		return fmt.Errorf("%w: %v", ErrKeyring, err)
	}
	return nil
}

// ClearToken removes the stored bearer token.
func (c *Client) ClearToken() error {
	if c.Tokens == nil {
		return nil
	}
	if err := c.Tokens.DeleteToken(); err != nil {
		return fmt.Errorf("%w: %v", ErrKeyring, err)
	}
	return nil
}

func (c *Client) endpointURL(endpoint string) (string, error) {
	u, err := url.Parse(c.BaseURL + endpoint)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("%w: %q", ErrInvalidURL, c.BaseURL+endpoint)
	}
	return u.String(), nil
}

// Do sends an authenticated JSON request and decodes a 2xx body into out.
// A nil body sends no payload; a nil out discards the response body.
func (c *Client) Do(ctx context.Context, method, endpoint string, body, out any) error {
	target, err := c.endpointURL(endpoint)
	if err != nil {
		return err
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	req.Header.Set("Content-Type", "application/json")

	token, err := c.Token()
	if err != nil {
		return err
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: failed to read body: %v", ErrInvalidResponse, err)
	}

	logger.Debug("Auth request", "method", method, "endpoint", endpoint, "status", resp.StatusCode)

	if resp.StatusCode >= 200 && resp.StatusCode <= 299 {
		if newToken := resp.Header.Get(constants.HeaderSetAuthToken); newToken != "" {
			if err := c.saveToken(newToken); err != nil {
				return err
			}
		}
		if out == nil || len(bytes.TrimSpace(data)) == 0 {
			return nil
		}
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidResponse, err)
		}
		return nil
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return ErrUnauthorized
	}

	var errBody models.ErrorResponse
	if json.Unmarshal(data, &errBody) == nil && errBody.Message != "" {
		return &ServerError{Status: resp.StatusCode, Message: errBody.Message}
	}
	return &ServerError{Status: resp.StatusCode, Message: fmt.Sprintf("request failed with status %d", resp.StatusCode)}
}

func (c *Client) SignIn(ctx context.Context, email, password string, rememberMe bool) (models.AuthResponse, error) {
	var out models.AuthResponse
	req := models.SignInRequest{Email: email, Password: password, RememberMe: &rememberMe}
	err := c.Do(ctx, http.MethodPost, constants.EndpointSignIn, req, &out)
	return out, err
}

func (c *Client) SignUp(ctx context.Context, email, password string, name *string) (models.AuthResponse, error) {
	var out models.AuthResponse
	req := models.SignUpRequest{Email: email, Password: password, Name: name}
	err := c.Do(ctx, http.MethodPost, constants.EndpointSignUp, req, &out)
	return out, err
}

func (c *Client) SignOut(ctx context.Context) error {
	return c.Do(ctx, http.MethodPost, constants.EndpointSignOut, map[string]string{}, nil)
}

func (c *Client) GetSession(ctx context.Context) (models.AuthResponse, error) {
	var out models.AuthResponse
	err := c.Do(ctx, http.MethodGet, constants.EndpointGetSession, nil, &out)
	return out, err
}
