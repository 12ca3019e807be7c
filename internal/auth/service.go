package auth

import (
	"context"
	"errors"
	"sync"

	apperrors "github.com/julianstephens/thirtyday/internal/errors"
	"github.com/julianstephens/thirtyday/internal/logger"
	"github.com/julianstephens/thirtyday/internal/models"
)

// State is the session as seen by the UI.
type State struct {
	IsAuthenticated bool
	User            *models.User
	ErrorMessage    string
	IsLoading       bool
}

// Service tracks the signed-in user on top of a Client and notifies subscribers on change.
type Service struct {
	client *Client

	mu        sync.Mutex
	state     State
	observers []func(State)
}

func NewService(client *Client) *Service {
	return &Service{client: client}
}

func (s *Service) Client() *Client {
	return s.client
}

func (s *Service) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Subscribe registers fn to receive every state change.
func (s *Service) Subscribe(fn func(State)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, fn)
}

func (s *Service) update(fn func(*State)) {
	s.mu.Lock()
	fn(&s.state)
	state := s.state
	observers := append([]func(State){}, s.observers...)
	s.mu.Unlock()

	for _, o := range observers {
		o(state)
	}
}

func (s *Service) begin(clearError bool) {
	s.update(func(st *State) {
		st.IsLoading = true
		if clearError {
			st.ErrorMessage = ""
		}
	})
}

func (s *Service) authenticate(resp models.AuthResponse, err error) error {
	if err == nil && resp.Session != nil && resp.Session.Token != "" {
		err = s.client.saveToken(resp.Session.Token)
	}

	if err != nil {
		if errors.Is(err, ErrUnauthorized) {
			if clearErr := s.client.ClearToken(); clearErr != nil {
				logger.Warn("Failed to clear token", "error", clearErr)
			}
		}
		s.update(func(st *State) {
			st.ErrorMessage = apperrors.UserMessage(err)
			if errors.Is(err, ErrUnauthorized) {
				st.IsAuthenticated = false
				st.User = nil
			}
			st.IsLoading = false
		})
		return err
	}

	s.update(func(st *State) {
		st.User = resp.User
		st.IsAuthenticated = resp.User != nil
		st.IsLoading = false
	})
	return nil
}

func (s *Service) SignIn(ctx context.Context, email, password string, rememberMe bool) error {
	s.begin(true)
	resp, err := s.client.SignIn(ctx, email, password, rememberMe)
	if err != nil {
		logger.Warn("Sign in failed", "error", err)
	}
	return s.authenticate(resp, err)
}

func (s *Service) SignUp(ctx context.Context, email, password string, name *string) error {
	s.begin(true)
	resp, err := s.client.SignUp(ctx, email, password, name)
	if err != nil {
		logger.Warn("Sign up failed", "error", err)
	}
	return s.authenticate(resp, err)
}

// SignOut ends the remote session. The local token and state are cleared even when the call fails.
func (s *Service) SignOut(ctx context.Context) error {
	s.begin(false)

	err := s.client.SignOut(ctx)
	if err != nil {
		logger.Warn("Sign out request failed, clearing local session anyway", "error", err)
	}
	if clearErr := s.client.ClearToken(); clearErr != nil {
		logger.Warn("Failed to clear token", "error", clearErr)
	}

	s.update(func(st *State) {
		st.User = nil
		st.IsAuthenticated = false
		st.IsLoading = false
	})
	return err
}

// CheckStatus validates the stored token against the server.
// Without a token no request is made. A rejected token is cleared; other failures keep the current state.
func (s *Service) CheckStatus(ctx context.Context) error {
	token, err := s.client.Token()
	if err != nil || token == "" {
		s.update(func(st *State) {
			st.IsAuthenticated = false
			st.User = nil
		})
		return err
	}

	resp, err := s.client.GetSession(ctx)
	switch {
	case errors.Is(err, ErrUnauthorized):
		if clearErr := s.client.ClearToken(); clearErr != nil {
			logger.Warn("Failed to clear token", "error", clearErr)
		}
		s.update(func(st *State) {
			st.IsAuthenticated = false
			st.User = nil
		})
		return nil
	case err != nil:
		logger.Warn("Auth check failed", "error", err)
		return err
	}

	s.update(func(st *State) {
		st.User = resp.User
		st.IsAuthenticated = resp.User != nil
	})
	return nil
}
