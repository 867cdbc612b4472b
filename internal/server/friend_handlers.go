package server

import (
	"time"

	"driftline/internal/feed"
	"driftline/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// SendFriendRequest creates a pending friendship edge toward another user.
// Any existing edge between the pair, in either direction, blocks a new one.
func (s *Server) SendFriendRequest(c *fiber.Ctx) error {
	targetID, err := requireParam(c, "userId")
	if err != nil {
		return nil
	}

	userID := currentUserID(c)
	if targetID == userID {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("You cannot send a friend request to yourself"))
	}

	if _, found := s.store.Users.FindByID(targetID); !found {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("User", targetID))
	}

	existing, found := s.store.Friendships.First(func(f *models.Friendship) bool {
		return f.Involves(userID, targetID)
	})
	if found {
		msg := "Friend request already pending"
		if existing.Status == models.FriendshipStatusAccepted {
			msg = "You are already friends with this user"
		}
		return models.RespondWithError(c, fiber.StatusConflict,
			models.NewValidationError(msg))
	}

	now := time.Now().UTC()
	edge := &models.Friendship{
		ID:          uuid.NewString(),
		RequesterID: userID,
		AddresseeID: targetID,
		Status:      models.FriendshipStatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.store.Friendships.Insert(edge)
	s.persist(c)

	return c.Status(fiber.StatusCreated).JSON(s.feed.Enricher().Friendship(edge))
}

// GetPendingRequests returns one page of pending requests addressed to the caller.
func (s *Server) GetPendingRequests(c *fiber.Ctx) error {
	params, err := s.parsePagination(c, feed.DefaultListLimit)
	if err != nil {
		return nil
	}

	page := s.feed.IncomingRequestsPage(c.UserContext(), currentUserID(c), params.Cursor, params.Limit)
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"requests":   page.Items,
		"nextCursor": page.NextCursor,
		"hasMore":    page.HasMore,
	})
}

// GetSentRequests returns one page of pending requests the caller sent.
func (s *Server) GetSentRequests(c *fiber.Ctx) error {
	params, err := s.parsePagination(c, feed.DefaultListLimit)
	if err != nil {
		return nil
	}

	page := s.feed.SentRequestsPage(c.UserContext(), currentUserID(c), params.Cursor, params.Limit)
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"requests":   page.Items,
		"nextCursor": page.NextCursor,
		"hasMore":    page.HasMore,
	})
}

// AcceptFriendRequest marks a pending request addressed to the caller as accepted.
func (s *Server) AcceptFriendRequest(c *fiber.Ctx) error {
	requestID, err := requireParam(c, "requestId")
	if err != nil {
		return nil
	}

	edge, found := s.store.Friendships.FindByID(requestID)
	if !found || edge.Status != models.FriendshipStatusPending {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Friend request", requestID))
	}
	if edge.AddresseeID != currentUserID(c) {
		return models.RespondWithError(c, fiber.StatusForbidden,
			models.NewUnauthorizedError("Only the addressee can accept a friend request"))
	}

	edge.Status = models.FriendshipStatusAccepted
	edge.UpdatedAt = time.Now().UTC()
	s.persist(c)

	return c.Status(fiber.StatusOK).JSON(s.feed.Enricher().Friendship(edge))
}

// DeclineFriendRequest removes a pending request. The addressee declines it
// or the requester cancels it; anyone else gets a 403.
func (s *Server) DeclineFriendRequest(c *fiber.Ctx) error {
	requestID, err := requireParam(c, "requestId")
	if err != nil {
		return nil
	}

	edge, found := s.store.Friendships.FindByID(requestID)
	if !found || edge.Status != models.FriendshipStatusPending {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Friend request", requestID))
	}

	userID := currentUserID(c)
	if edge.AddresseeID != userID && edge.RequesterID != userID {
		return models.RespondWithError(c, fiber.StatusForbidden,
			models.NewUnauthorizedError("You are not part of this friend request"))
	}

	s.store.Friendships.Remove(edge.ID)
	s.persist(c)

	return c.SendStatus(fiber.StatusNoContent)
}

// RemoveFriend deletes the accepted friendship between the caller and the
// given user. The other user's posts drop out of the caller's feed at once.
func (s *Server) RemoveFriend(c *fiber.Ctx) error {
	targetID, err := requireParam(c, "userId")
	if err != nil {
		return nil
	}

	userID := currentUserID(c)
	edge, found := s.store.Friendships.First(func(f *models.Friendship) bool {
		return f.Status == models.FriendshipStatusAccepted && f.Involves(userID, targetID)
	})
	if !found {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Friendship with user", targetID))
	}

	s.store.Friendships.Remove(edge.ID)
	s.persist(c)

	return c.SendStatus(fiber.StatusNoContent)
}

// GetFriends returns one page of the caller's accepted friends.
func (s *Server) GetFriends(c *fiber.Ctx) error {
	params, err := s.parsePagination(c, feed.DefaultListLimit)
	if err != nil {
		return nil
	}

	page := s.feed.FriendsPage(c.UserContext(), currentUserID(c), params.Cursor, params.Limit)
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"users":      page.Items,
		"nextCursor": page.NextCursor,
		"hasMore":    page.HasMore,
	})
}
