package server

import (
	"strings"
	"time"

	"driftline/internal/feed"
	"driftline/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const maxPostLength = 5000

type createPostRequest struct {
	Content  string `json:"content"`
	ImageURL string `json:"imageUrl"`
}

// CreatePost creates a new post authored by the caller.
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var req createPostRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	req.Content = strings.TrimSpace(req.Content)
	if req.Content == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Post content is required"))
	}
	if len(req.Content) > maxPostLength {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Post content exceeds maximum length"))
	}

	now := time.Now().UTC()
	post := &models.Post{
		ID:        uuid.NewString(),
		AuthorID:  currentUserID(c),
		Content:   req.Content,
		ImageURL:  strings.TrimSpace(req.ImageURL),
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.store.Posts.Insert(post)
	s.persist(c)

	return c.Status(fiber.StatusCreated).JSON(s.feed.Enricher().Post(post))
}

// GetPost returns a single enriched post.
func (s *Server) GetPost(c *fiber.Ctx) error {
	id, err := requireParam(c, "id")
	if err != nil {
		return nil
	}

	post, found := s.store.Posts.FindByID(id)
	if !found {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Post", id))
	}

	return c.Status(fiber.StatusOK).JSON(s.feed.Enricher().Post(post))
}

type updatePostRequest struct {
	Content string `json:"content"`
}

// UpdatePost edits a post's content. Only the author may edit.
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	id, err := requireParam(c, "id")
	if err != nil {
		return nil
	}

	post, found := s.store.Posts.FindByID(id)
	if !found {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Post", id))
	}
	if post.AuthorID != currentUserID(c) {
		return models.RespondWithError(c, fiber.StatusForbidden,
			models.NewUnauthorizedError("You can only edit your own posts"))
	}

	var req updatePostRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	req.Content = strings.TrimSpace(req.Content)
	if req.Content == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Post content is required"))
	}
	if len(req.Content) > maxPostLength {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Post content exceeds maximum length"))
	}

	post.Content = req.Content
	post.UpdatedAt = time.Now().UTC()
	s.persist(c)

	return c.Status(fiber.StatusOK).JSON(s.feed.Enricher().Post(post))
}

// GetFeed returns one page of the caller's home feed: own posts plus posts
// by accepted friends, newest first.
func (s *Server) GetFeed(c *fiber.Ctx) error {
	params, err := s.parsePagination(c, feed.DefaultFeedLimit)
	if err != nil {
		return nil
	}

	page := s.feed.HomePage(c.UserContext(), currentUserID(c), params.Cursor, params.Limit)
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"posts":      page.Items,
		"nextCursor": page.NextCursor,
		"hasMore":    page.HasMore,
	})
}

// GetUserPosts returns one page of a single user's posts, newest first.
func (s *Server) GetUserPosts(c *fiber.Ctx) error {
	id, err := requireParam(c, "id")
	if err != nil {
		return nil
	}

	if _, found := s.store.Users.FindByID(id); !found {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("User", id))
	}

	params, err := s.parsePagination(c, feed.DefaultFeedLimit)
	if err != nil {
		return nil
	}

	page := s.feed.UserPostsPage(c.UserContext(), id, params.Cursor, params.Limit)
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"posts":      page.Items,
		"nextCursor": page.NextCursor,
		"hasMore":    page.HasMore,
	})
}
