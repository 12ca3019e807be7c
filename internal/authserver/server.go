// Package authserver is a local stand-in for the remote auth API, for development and tests.
package authserver

import (
	"errors"
	"net"
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/julianstephens/thirtyday/internal/constants"
	"github.com/julianstephens/thirtyday/internal/logger"
	"github.com/julianstephens/thirtyday/internal/models"
)

const (
	DefaultSessionTTL    = 7 * 24 * time.Hour
	RememberMeSessionTTL = 30 * 24 * time.Hour
	MinPasswordLength    = 8
)

type Options struct {
	// Secret signs session tokens. A random secret is generated when empty.
	Secret     []byte
	SessionTTL time.Duration
	BcryptCost int
}

type account struct {
	user         models.User
	passwordHash []byte
}

type Server struct {
	opts Options
	app  *fiber.App

	mu       sync.RWMutex
	accounts map[string]*account // by lower-cased email
	revoked  map[string]struct{} // session IDs
}

func New(opts Options) *Server {
	if len(opts.Secret) == 0 {
		opts.Secret = []byte(uuid.NewString() + uuid.NewString())
	}
	if opts.SessionTTL <= 0 {
		opts.SessionTTL = DefaultSessionTTL
	}
	if opts.BcryptCost == 0 {
		opts.BcryptCost = bcrypt.DefaultCost
	}

	s := &Server{
		opts:     opts,
		accounts: make(map[string]*account),
		revoked:  make(map[string]struct{}),
	}

	s.app = fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler,
	})
	s.app.Use(requestLogger)

	s.app.Post(constants.EndpointSignUp, s.signUp)
	s.app.Post(constants.EndpointSignIn, s.signIn)
	s.app.Post(constants.EndpointSignOut, s.signOut)
	s.app.Get(constants.EndpointGetSession, s.getSession)

	return s
}

// App exposes the fiber app, e.g. for app.Test in tests.
func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) Listen(addr string) error {
	logger.Info("Dev auth server listening", "addr", addr)
	return s.app.Listen(addr)
}

// Serve runs the server on an existing listener.
func (s *Server) Serve(ln net.Listener) error {
	return s.app.Listener(ln)
}

func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

func requestLogger(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()
	logger.Debug("Dev auth request",
		"method", c.Method(),
		"path", c.Path(),
		"status", c.Response().StatusCode(),
		"duration", time.Since(start),
	)
	return err
}

func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	return c.Status(code).JSON(models.ErrorResponse{Message: err.Error()})
}

func fail(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(models.ErrorResponse{Message: message})
}

type sessionClaims struct {
	jwt.RegisteredClaims
}

func (s *Server) issueSession(c *fiber.Ctx, user models.User, ttl time.Duration) (models.Session, error) {
	now := time.Now()
	sessionID := uuid.NewString()
	expires := now.Add(ttl)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        sessionID,
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	})
	signed, err := token.SignedString(s.opts.Secret)
	if err != nil {
		return models.Session{}, err
	}

	ip := c.IP()
	ua := c.Get(fiber.HeaderUserAgent)
	c.Set(constants.HeaderSetAuthToken, signed)

	return models.Session{
		ID:        sessionID,
		UserID:    user.ID,
		ExpiresAt: expires.UTC().Format(time.RFC3339),
		Token:     signed,
		IPAddress: &ip,
		UserAgent: &ua,
	}, nil
}

// authorize validates the bearer token and returns the claims of a live session.
func (s *Server) authorize(c *fiber.Ctx) (*sessionClaims, error) {
	header := c.Get(fiber.HeaderAuthorization)
	raw := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	if raw == "" || raw == header {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Missing authorization token")
	}

	claims := &sessionClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
		}
		return s.opts.Secret, nil
	})
	if err != nil || !token.Valid {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid token")
	}

	s.mu.RLock()
	_, revoked := s.revoked[claims.ID]
	s.mu.RUnlock()
	if revoked {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Session has been revoked")
	}
	return claims, nil
}

func (s *Server) userByID(id string) (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, a := range s.accounts {
		if a.user.ID == id {
			return a.user, true
		}
	}
	return models.User{}, false
}
