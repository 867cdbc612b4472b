package server

import (
	"strings"
	"time"

	"driftline/internal/models"
	"driftline/internal/observability"
	"driftline/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/crypto/bcrypt"
)

type signupRequest struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Bio       string `json:"bio"`
	AvatarURL string `json:"avatarUrl"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string          `json:"token"`
	User  models.UserView `json:"user"`
}

// Signup registers a new user account and returns a signed token.
func (s *Server) Signup(c *fiber.Ctx) error {
	span, ctx := observability.NewSpan(c.UserContext(), "auth.signup")
	defer span.End()
	c.SetUserContext(ctx)

	var req signupRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	if err := validation.ValidateUsername(req.Name); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}
	if err := validation.ValidateEmail(req.Email); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}
	if err := validation.ValidatePassword(req.Password); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}

	if _, exists := s.store.Users.First(func(u *models.User) bool {
		return strings.EqualFold(u.Email, req.Email)
	}); exists {
		return models.RespondWithError(c, fiber.StatusConflict,
			models.NewValidationError("Email already registered"))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	now := time.Now().UTC()
	user := &models.User{
		ID:           uuid.NewString(),
		Username:     req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Bio:          req.Bio,
		AvatarURL:    req.AvatarURL,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	s.store.Users.Insert(user)
	s.persist(c)

	token, err := s.generateToken(user.ID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	span.AddAttributes(attribute.String("user.id", user.ID))
	return c.Status(fiber.StatusCreated).JSON(authResponse{
		Token: token,
		User:  user.ToView(),
	})
}

// Login authenticates an existing user and returns a signed token.
func (s *Server) Login(c *fiber.Ctx) error {
	span, ctx := observability.NewSpan(c.UserContext(), "auth.login")
	defer span.End()
	c.SetUserContext(ctx)

	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	user, found := s.store.Users.First(func(u *models.User) bool {
		return strings.EqualFold(u.Email, email)
	})
	if !found {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Invalid email or password"))
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Invalid email or password"))
	}

	token, err := s.generateToken(user.ID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	span.AddAttributes(attribute.String("user.id", user.ID))
	return c.Status(fiber.StatusOK).JSON(authResponse{
		Token: token,
		User:  user.ToView(),
	})
}

// generateToken mints an HS256 JWT for the given user.
func (s *Server) generateToken(userID string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": userID,
		"iss": tokenIssuer,
		"aud": tokenAudience,
		"jti": uuid.NewString(),
		"iat": now.Unix(),
		"exp": now.Add(24 * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.JWTSecret))
}
