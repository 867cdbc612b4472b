package feed

import (
	"sort"
	"time"

	"driftline/internal/models"
	"driftline/internal/store"
)

// Selector computes the full ordered candidate sequence for a listing,
// before pagination. All listings order by createdAt descending; items with
// identical timestamps keep their table scan order (the sort is stable over
// the timestamp alone).
type Selector struct {
	store *store.Store
}

// NewSelector returns a Selector reading from the given store.
func NewSelector(st *store.Store) *Selector {
	return &Selector{store: st}
}

// HomeFeed returns posts visible to userID: their own posts plus posts by
// any user connected through an ACCEPTED friendship edge, in either
// direction. PENDING edges grant no visibility.
func (s *Selector) HomeFeed(userID string) []*models.Post {
	visible := map[string]struct{}{userID: {}}
	edges := s.store.Friendships.Scan(func(f *models.Friendship) bool {
		return f.Status == models.FriendshipStatusAccepted &&
			(f.RequesterID == userID || f.AddresseeID == userID)
	})
	for _, f := range edges {
		visible[f.OtherSide(userID)] = struct{}{}
	}

	posts := s.store.Posts.Scan(func(p *models.Post) bool {
		_, ok := visible[p.AuthorID]
		return ok
	})
	orderNewestFirst(posts, func(p *models.Post) time.Time { return p.CreatedAt })
	return posts
}

// UserPosts returns posts authored by authorID. Visible to any caller;
// there is no privacy gate.
func (s *Selector) UserPosts(authorID string) []*models.Post {
	posts := s.store.Posts.Scan(func(p *models.Post) bool {
		return p.AuthorID == authorID
	})
	orderNewestFirst(posts, func(p *models.Post) time.Time { return p.CreatedAt })
	return posts
}

// PostComments returns comments on the given post.
func (s *Selector) PostComments(postID string) []*models.Comment {
	comments := s.store.Comments.Scan(func(c *models.Comment) bool {
		return c.PostID == postID
	})
	orderNewestFirst(comments, func(c *models.Comment) time.Time { return c.CreatedAt })
	return comments
}

// Users returns the user directory in registration order.
func (s *Selector) Users() []*models.User {
	return s.store.Users.All()
}

// IncomingRequests returns pending friend requests addressed to userID,
// newest first.
func (s *Selector) IncomingRequests(userID string) []*models.Friendship {
	reqs := s.store.Friendships.Scan(func(f *models.Friendship) bool {
		return f.Status == models.FriendshipStatusPending && f.AddresseeID == userID
	})
	orderNewestFirst(reqs, func(f *models.Friendship) time.Time { return f.CreatedAt })
	return reqs
}

// SentRequests returns pending friend requests sent by userID, newest first.
func (s *Selector) SentRequests(userID string) []*models.Friendship {
	reqs := s.store.Friendships.Scan(func(f *models.Friendship) bool {
		return f.Status == models.FriendshipStatusPending && f.RequesterID == userID
	})
	orderNewestFirst(reqs, func(f *models.Friendship) time.Time { return f.CreatedAt })
	return reqs
}

// Friends returns the users connected to userID through ACCEPTED edges.
func (s *Selector) Friends(userID string) []*models.User {
	edges := s.store.Friendships.Scan(func(f *models.Friendship) bool {
		return f.Status == models.FriendshipStatusAccepted &&
			(f.RequesterID == userID || f.AddresseeID == userID)
	})
	friends := make([]*models.User, 0, len(edges))
	for _, f := range edges {
		if u, ok := s.store.Users.FindByID(f.OtherSide(userID)); ok {
			friends = append(friends, u)
		}
	}
	return friends
}

// orderNewestFirst sorts by createdAt descending. SliceStable keeps the
// original scan order for equal timestamps.
func orderNewestFirst[T any](items []T, createdAt func(T) time.Time) {
	sort.SliceStable(items, func(i, j int) bool {
		return createdAt(items[i]).After(createdAt(items[j]))
	})
}
