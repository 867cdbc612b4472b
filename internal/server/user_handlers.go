package server

import (
	"strings"
	"time"

	"driftline/internal/feed"
	"driftline/internal/models"
	"driftline/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// GetAllUsers returns the paginated user directory in registration order.
func (s *Server) GetAllUsers(c *fiber.Ctx) error {
	params, err := s.parsePagination(c, feed.DefaultListLimit)
	if err != nil {
		return nil
	}

	page := s.feed.UsersPage(c.UserContext(), params.Cursor, params.Limit)
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"users":      page.Items,
		"nextCursor": page.NextCursor,
		"hasMore":    page.HasMore,
	})
}

// GetUserProfile returns a single user's public profile.
func (s *Server) GetUserProfile(c *fiber.Ctx) error {
	id, err := requireParam(c, "id")
	if err != nil {
		return nil
	}

	user, found := s.store.Users.FindByID(id)
	if !found {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("User", id))
	}

	return c.Status(fiber.StatusOK).JSON(user.ToView())
}

// GetMyProfile returns the authenticated user's own profile.
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	userID := currentUserID(c)
	user, found := s.store.Users.FindByID(userID)
	if !found {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("User", userID))
	}

	return c.Status(fiber.StatusOK).JSON(user.ToView())
}

type updateProfileRequest struct {
	Name      *string `json:"name"`
	Bio       *string `json:"bio"`
	AvatarURL *string `json:"avatarUrl"`
}

// UpdateMyProfile updates the caller's profile fields. Only fields present
// in the request body change.
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	userID := currentUserID(c)
	user, found := s.store.Users.FindByID(userID)
	if !found {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("User", userID))
	}

	var req updateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if err := validation.ValidateUsername(name); err != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError(err.Error()))
		}
		user.Username = name
	}
	if req.Bio != nil {
		user.Bio = strings.TrimSpace(*req.Bio)
	}
	if req.AvatarURL != nil {
		user.AvatarURL = strings.TrimSpace(*req.AvatarURL)
	}
	user.UpdatedAt = time.Now().UTC()
	s.persist(c)

	return c.Status(fiber.StatusOK).JSON(user.ToView())
}
