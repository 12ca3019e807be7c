package authserver

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/julianstephens/thirtyday/internal/models"
)

func (s *Server) signUp(c *fiber.Ctx) error {
	var req models.SignUpRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		return fail(c, fiber.StatusBadRequest, "Invalid email")
	}
	if len(req.Password) < MinPasswordLength {
		return fail(c, fiber.StatusBadRequest, "Password too short")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.opts.BcryptCost)
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "Could not hash password")
	}

	now := time.Now().UTC().Format(time.RFC3339)
	user := models.User{
		ID:        uuid.NewString(),
		Email:     email,
		Name:      req.Name,
		CreatedAt: now,
		UpdatedAt: now,
	}

	s.mu.Lock()
	if _, exists := s.accounts[email]; exists {
		s.mu.Unlock()
		return fail(c, fiber.StatusUnprocessableEntity, "User already exists")
	}
	s.accounts[email] = &account{user: user, passwordHash: hash}
	s.mu.Unlock()

	session, err := s.issueSession(c, user, s.opts.SessionTTL)
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "Could not create session")
	}
	return c.JSON(models.AuthResponse{User: &user, Session: &session})
}

func (s *Server) signIn(c *fiber.Ctx) error {
	var req models.SignInRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}

	s.mu.RLock()
	acct, ok := s.accounts[strings.ToLower(strings.TrimSpace(req.Email))]
	s.mu.RUnlock()
	if !ok || bcrypt.CompareHashAndPassword(acct.passwordHash, []byte(req.Password)) != nil {
		return fail(c, fiber.StatusUnauthorized, "Invalid email or password")
	}

	ttl := s.opts.SessionTTL
	if req.RememberMe != nil && *req.RememberMe && ttl < RememberMeSessionTTL {
		ttl = RememberMeSessionTTL
	}

	user := acct.user
	session, err := s.issueSession(c, user, ttl)
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "Could not create session")
	}
	return c.JSON(models.AuthResponse{User: &user, Session: &session})
}

func (s *Server) signOut(c *fiber.Ctx) error {
	claims, err := s.authorize(c)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.revoked[claims.ID] = struct{}{}
	s.mu.Unlock()

	return c.JSON(fiber.Map{"success": true})
}

func (s *Server) getSession(c *fiber.Ctx) error {
	claims, err := s.authorize(c)
	if err != nil {
		return err
	}

	user, ok := s.userByID(claims.Subject)
	if !ok {
		return fail(c, fiber.StatusUnauthorized, "Unknown user")
	}

	token := strings.TrimSpace(strings.TrimPrefix(c.Get(fiber.HeaderAuthorization), "Bearer "))
	session := models.Session{
		ID:        claims.ID,
		UserID:    user.ID,
		ExpiresAt: claims.ExpiresAt.Time.UTC().Format(time.RFC3339),
		Token:     token,
	}
	return c.JSON(models.AuthResponse{User: &user, Session: &session})
}
