package server

import (
	"strings"
	"time"

	"driftline/internal/models"
	"driftline/internal/observability"
	"driftline/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type reactionRequest struct {
	Emoji string `json:"emoji"`
}

// ReactToPost toggles the caller's reaction on a post and returns the
// enriched post.
func (s *Server) ReactToPost(c *fiber.Ctx) error {
	postID, err := requireParam(c, "id")
	if err != nil {
		return nil
	}

	post, found := s.store.Posts.FindByID(postID)
	if !found {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Post", postID))
	}

	if err := s.toggleReaction(c, models.ReactionTargetPost, postID); err != nil {
		return nil
	}
	return c.Status(fiber.StatusOK).JSON(s.feed.Enricher().Post(post))
}

// ReactToComment toggles the caller's reaction on a comment and returns the
// enriched comment.
func (s *Server) ReactToComment(c *fiber.Ctx) error {
	commentID, err := requireParam(c, "id")
	if err != nil {
		return nil
	}

	comment, found := s.store.Comments.FindByID(commentID)
	if !found {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Comment", commentID))
	}

	if err := s.toggleReaction(c, models.ReactionTargetComment, commentID); err != nil {
		return nil
	}
	return c.Status(fiber.StatusOK).JSON(s.feed.Enricher().Comment(comment))
}

// toggleReaction applies the upsert rule keyed on (target, targetID, caller):
// no existing reaction creates one, the same emoji removes it, a different
// emoji updates the existing reaction in place keeping its id. A non-nil
// return means the error response was already written.
func (s *Server) toggleReaction(c *fiber.Ctx, target models.ReactionTarget, targetID string) error {
	var req reactionRequest
	if err := c.BodyParser(&req); err != nil {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
		return errResponseWritten
	}

	req.Emoji = strings.TrimSpace(req.Emoji)
	if err := validation.ValidateEmoji(req.Emoji); err != nil {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
		return errResponseWritten
	}

	userID := currentUserID(c)
	existing, found := s.store.Reactions.First(func(r *models.Reaction) bool {
		return r.TargetType == target && r.TargetID == targetID && r.AuthorID == userID
	})

	switch {
	case !found:
		s.store.Reactions.Insert(&models.Reaction{
			ID:         uuid.NewString(),
			TargetType: target,
			TargetID:   targetID,
			AuthorID:   userID,
			Emoji:      req.Emoji,
			CreatedAt:  time.Now().UTC(),
		})
		observability.ReactionTogglesTotal.WithLabelValues("created").Inc()
	case existing.Emoji == req.Emoji:
		s.store.Reactions.Remove(existing.ID)
		observability.ReactionTogglesTotal.WithLabelValues("removed").Inc()
	default:
		existing.Emoji = req.Emoji
		observability.ReactionTogglesTotal.WithLabelValues("updated").Inc()
	}

	s.persist(c)
	return nil
}
