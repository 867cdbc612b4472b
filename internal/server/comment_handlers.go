package server

import (
	"strings"
	"time"

	"driftline/internal/feed"
	"driftline/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const maxCommentLength = 2000

type commentRequest struct {
	Content string `json:"content"`
}

// CreateComment adds a comment to a post.
func (s *Server) CreateComment(c *fiber.Ctx) error {
	postID, err := requireParam(c, "id")
	if err != nil {
		return nil
	}

	if _, found := s.store.Posts.FindByID(postID); !found {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Post", postID))
	}

	var req commentRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	req.Content = strings.TrimSpace(req.Content)
	if req.Content == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Comment content is required"))
	}
	if len(req.Content) > maxCommentLength {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Comment content exceeds maximum length"))
	}

	now := time.Now().UTC()
	comment := &models.Comment{
		ID:        uuid.NewString(),
		PostID:    postID,
		AuthorID:  currentUserID(c),
		Content:   req.Content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.store.Comments.Insert(comment)
	s.persist(c)

	return c.Status(fiber.StatusCreated).JSON(s.feed.Enricher().Comment(comment))
}

// GetComments returns one page of a post's comments, newest first.
func (s *Server) GetComments(c *fiber.Ctx) error {
	postID, err := requireParam(c, "id")
	if err != nil {
		return nil
	}

	if _, found := s.store.Posts.FindByID(postID); !found {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Post", postID))
	}

	params, err := s.parsePagination(c, feed.DefaultFeedLimit)
	if err != nil {
		return nil
	}

	page := s.feed.CommentsPage(c.UserContext(), postID, params.Cursor, params.Limit)
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"comments":   page.Items,
		"nextCursor": page.NextCursor,
		"hasMore":    page.HasMore,
	})
}

// UpdateComment edits a comment's content. Only the author may edit.
func (s *Server) UpdateComment(c *fiber.Ctx) error {
	id, err := requireParam(c, "id")
	if err != nil {
		return nil
	}

	comment, found := s.store.Comments.FindByID(id)
	if !found {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Comment", id))
	}
	if comment.AuthorID != currentUserID(c) {
		return models.RespondWithError(c, fiber.StatusForbidden,
			models.NewUnauthorizedError("You can only edit your own comments"))
	}

	var req commentRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	req.Content = strings.TrimSpace(req.Content)
	if req.Content == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Comment content is required"))
	}
	if len(req.Content) > maxCommentLength {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Comment content exceeds maximum length"))
	}

	comment.Content = req.Content
	comment.UpdatedAt = time.Now().UTC()
	s.persist(c)

	return c.Status(fiber.StatusOK).JSON(s.feed.Enricher().Comment(comment))
}
