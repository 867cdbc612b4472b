package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"driftline/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func friendRoutes(app *fiber.App, s *Server) {
	app.Get("/friends", s.GetFriends)
	app.Post("/friends/requests/:userId", s.SendFriendRequest)
	app.Get("/friends/requests", s.GetPendingRequests)
	app.Get("/friends/requests/sent", s.GetSentRequests)
	app.Post("/friends/requests/:requestId/accept", s.AcceptFriendRequest)
	app.Post("/friends/requests/:requestId/decline", s.DeclineFriendRequest)
	app.Delete("/friends/:userId", s.RemoveFriend)
}

func TestSendFriendRequest(t *testing.T) {
	s := newTestServer()
	alice := seedUser(s, "alice")
	bob := seedUser(s, "bob")

	app := authedApp(alice.ID)
	friendRoutes(app, s)

	t.Run("creates pending edge", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(http.MethodPost, "/friends/requests/"+bob.ID, nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		var body map[string]any
		decodeBody(t, resp, &body)
		assert.Equal(t, string(models.FriendshipStatusPending), body["status"])
		requester, ok := body["requester"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, alice.ID, requester["id"])
	})

	t.Run("pending edge blocks a second request", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(http.MethodPost, "/friends/requests/"+bob.ID, nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
		_ = resp.Body.Close()
	})

	t.Run("reverse direction is also blocked", func(t *testing.T) {
		bobApp := authedApp(bob.ID)
		friendRoutes(bobApp, s)
		resp, err := bobApp.Test(jsonRequest(http.MethodPost, "/friends/requests/"+alice.ID, nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
		_ = resp.Body.Close()
	})

	t.Run("self request is rejected", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(http.MethodPost, "/friends/requests/"+alice.ID, nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		_ = resp.Body.Close()
	})

	t.Run("unknown target 404s", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(http.MethodPost, "/friends/requests/nobody", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		_ = resp.Body.Close()
	})
}

func TestAcceptFriendRequest(t *testing.T) {
	s := newTestServer()
	alice := seedUser(s, "alice")
	bob := seedUser(s, "bob")
	carol := seedUser(s, "carol")
	edge := seedFriendship(s, alice, bob, models.FriendshipStatusPending)

	bobApp := authedApp(bob.ID)
	friendRoutes(bobApp, s)
	carolApp := authedApp(carol.ID)
	friendRoutes(carolApp, s)

	t.Run("only the addressee accepts", func(t *testing.T) {
		resp, err := carolApp.Test(jsonRequest(http.MethodPost, "/friends/requests/"+edge.ID+"/accept", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
		_ = resp.Body.Close()
	})

	t.Run("addressee accepts", func(t *testing.T) {
		resp, err := bobApp.Test(jsonRequest(http.MethodPost, "/friends/requests/"+edge.ID+"/accept", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]any
		decodeBody(t, resp, &body)
		assert.Equal(t, string(models.FriendshipStatusAccepted), body["status"])

		stored, ok := s.store.Friendships.FindByID(edge.ID)
		require.True(t, ok)
		assert.Equal(t, models.FriendshipStatusAccepted, stored.Status)
	})

	t.Run("accepting twice 404s", func(t *testing.T) {
		resp, err := bobApp.Test(jsonRequest(http.MethodPost, "/friends/requests/"+edge.ID+"/accept", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		_ = resp.Body.Close()
	})
}

func TestDeclineFriendRequest(t *testing.T) {
	s := newTestServer()
	alice := seedUser(s, "alice")
	bob := seedUser(s, "bob")

	t.Run("addressee declines and the edge disappears", func(t *testing.T) {
		edge := seedFriendship(s, alice, bob, models.FriendshipStatusPending)
		bobApp := authedApp(bob.ID)
		friendRoutes(bobApp, s)

		resp, err := bobApp.Test(jsonRequest(http.MethodPost, "/friends/requests/"+edge.ID+"/decline", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
		_ = resp.Body.Close()

		_, exists := s.store.Friendships.FindByID(edge.ID)
		assert.False(t, exists)
	})

	t.Run("requester can cancel their own request", func(t *testing.T) {
		edge := seedFriendship(s, alice, bob, models.FriendshipStatusPending)
		aliceApp := authedApp(alice.ID)
		friendRoutes(aliceApp, s)

		resp, err := aliceApp.Test(jsonRequest(http.MethodPost, "/friends/requests/"+edge.ID+"/decline", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
		_ = resp.Body.Close()

		// after removal a fresh request is possible again
		resp, err = aliceApp.Test(jsonRequest(http.MethodPost, "/friends/requests/"+bob.ID, nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		_ = resp.Body.Close()
	})
}

func TestRequestListings(t *testing.T) {
	s := newTestServer()
	alice := seedUser(s, "alice")
	bob := seedUser(s, "bob")
	carol := seedUser(s, "carol")

	seedFriendship(s, bob, alice, models.FriendshipStatusPending)
	seedFriendship(s, alice, carol, models.FriendshipStatusPending)

	app := authedApp(alice.ID)
	friendRoutes(app, s)

	type pagedRequests struct {
		Requests []struct {
			Requester *struct {
				ID string `json:"id"`
			} `json:"requester"`
			Addressee *struct {
				ID string `json:"id"`
			} `json:"addressee"`
		} `json:"requests"`
		HasMore bool `json:"hasMore"`
	}

	t.Run("incoming", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/friends/requests", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body pagedRequests
		decodeBody(t, resp, &body)
		require.Len(t, body.Requests, 1)
		assert.Equal(t, bob.ID, body.Requests[0].Requester.ID)
	})

	t.Run("sent", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/friends/requests/sent", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body pagedRequests
		decodeBody(t, resp, &body)
		require.Len(t, body.Requests, 1)
		assert.Equal(t, carol.ID, body.Requests[0].Addressee.ID)
	})
}

func TestRemoveFriend(t *testing.T) {
	s := newTestServer()
	alice := seedUser(s, "alice")
	bob := seedUser(s, "bob")
	seedFriendship(s, alice, bob, models.FriendshipStatusAccepted)
	seedPost(s, bob, "bob post", time.Now().UTC())

	app := authedApp(alice.ID)
	friendRoutes(app, s)
	app.Get("/feed", s.GetFeed)

	// bob's post is visible while the friendship stands
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/feed", nil))
	require.NoError(t, err)
	var before pagedPosts
	decodeBody(t, resp, &before)
	require.Len(t, before.Posts, 1)

	resp, err = app.Test(jsonRequest(http.MethodDelete, "/friends/"+bob.ID, nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	_ = resp.Body.Close()

	// visibility drops immediately
	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/feed", nil))
	require.NoError(t, err)
	var after pagedPosts
	decodeBody(t, resp, &after)
	assert.Empty(t, after.Posts)

	t.Run("removing a non-friend 404s", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(http.MethodDelete, "/friends/"+bob.ID, nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		_ = resp.Body.Close()
	})
}

func TestGetFriends(t *testing.T) {
	s := newTestServer()
	alice := seedUser(s, "alice")
	bob := seedUser(s, "bob")
	carol := seedUser(s, "carol")
	seedFriendship(s, alice, bob, models.FriendshipStatusAccepted)
	seedFriendship(s, carol, alice, models.FriendshipStatusAccepted)

	app := authedApp(alice.ID)
	friendRoutes(app, s)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/friends", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Users []struct {
			Name string `json:"name"`
		} `json:"users"`
		HasMore bool `json:"hasMore"`
	}
	decodeBody(t, resp, &body)
	require.Len(t, body.Users, 2)
	assert.False(t, body.HasMore)
}
