package feed

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"driftline/internal/models"
	"driftline/internal/observability"
	"driftline/internal/store"
)

// Service runs the full listing pipeline: select candidates, slice a page,
// enrich the page items. One instance serves every listing endpoint;
// per-listing behavior is just the candidate-producing strategy.
type Service struct {
	selector *Selector
	enricher *Enricher
}

// NewService builds the pipeline over the given store.
func NewService(st *store.Store) *Service {
	return &Service{
		selector: NewSelector(st),
		enricher: NewEnricher(st),
	}
}

// Selector exposes the candidate selector, mainly for friendship queries
// that need raw edges.
func (s *Service) Selector() *Selector { return s.selector }

// Enricher exposes the view enricher for single-item responses.
func (s *Service) Enricher() *Enricher { return s.enricher }

// ViewPage is an enriched page ready for serialization.
type ViewPage[V any] struct {
	Items      []V
	NextCursor *string
	HasMore    bool
}

// HomePage returns one page of the home feed for userID.
func (s *Service) HomePage(ctx context.Context, userID, cursor string, limit int) ViewPage[models.PostView] {
	span, _ := observability.NewSpan(ctx, "feed.home")
	defer span.End()
	span.AddAttributes(attribute.String("feed.user_id", userID))

	candidates := s.selector.HomeFeed(userID)
	return paginateAndEnrich(candidates, cursor, ClampLimit(limit, DefaultFeedLimit), "home", s.enricher.Post)
}

// UserPostsPage returns one page of posts authored by authorID.
func (s *Service) UserPostsPage(ctx context.Context, authorID, cursor string, limit int) ViewPage[models.PostView] {
	span, _ := observability.NewSpan(ctx, "feed.user_posts")
	defer span.End()
	span.AddAttributes(attribute.String("feed.author_id", authorID))

	candidates := s.selector.UserPosts(authorID)
	return paginateAndEnrich(candidates, cursor, ClampLimit(limit, DefaultFeedLimit), "user_posts", s.enricher.Post)
}

// CommentsPage returns one page of comments on postID.
func (s *Service) CommentsPage(ctx context.Context, postID, cursor string, limit int) ViewPage[models.CommentView] {
	span, _ := observability.NewSpan(ctx, "feed.comments")
	defer span.End()
	span.AddAttributes(attribute.String("feed.post_id", postID))

	candidates := s.selector.PostComments(postID)
	return paginateAndEnrich(candidates, cursor, ClampLimit(limit, DefaultFeedLimit), "comments", s.enricher.Comment)
}

// UsersPage returns one page of the user directory.
func (s *Service) UsersPage(ctx context.Context, cursor string, limit int) ViewPage[models.UserView] {
	span, _ := observability.NewSpan(ctx, "feed.users")
	defer span.End()

	candidates := s.selector.Users()
	return paginateAndEnrich(candidates, cursor, ClampLimit(limit, DefaultListLimit), "users",
		func(u *models.User) models.UserView { return u.ToView() })
}

// IncomingRequestsPage returns one page of pending requests addressed to userID.
func (s *Service) IncomingRequestsPage(ctx context.Context, userID, cursor string, limit int) ViewPage[models.FriendshipView] {
	span, _ := observability.NewSpan(ctx, "feed.requests")
	defer span.End()

	candidates := s.selector.IncomingRequests(userID)
	return paginateAndEnrich(candidates, cursor, ClampLimit(limit, DefaultListLimit), "requests", s.enricher.Friendship)
}

// SentRequestsPage returns one page of pending requests sent by userID.
func (s *Service) SentRequestsPage(ctx context.Context, userID, cursor string, limit int) ViewPage[models.FriendshipView] {
	span, _ := observability.NewSpan(ctx, "feed.requests_sent")
	defer span.End()

	candidates := s.selector.SentRequests(userID)
	return paginateAndEnrich(candidates, cursor, ClampLimit(limit, DefaultListLimit), "requests_sent", s.enricher.Friendship)
}

// FriendsPage returns one page of userID's accepted friends.
func (s *Service) FriendsPage(ctx context.Context, userID, cursor string, limit int) ViewPage[models.UserView] {
	span, _ := observability.NewSpan(ctx, "feed.friends")
	defer span.End()
	span.AddAttributes(attribute.String("feed.user_id", userID))

	candidates := s.selector.Friends(userID)
	return paginateAndEnrich(candidates, cursor, ClampLimit(limit, DefaultListLimit), "friends",
		func(u *models.User) models.UserView { return u.ToView() })
}

// paginateAndEnrich slices one page out of the candidates and maps each page
// item to its view. Items is never nil so empty pages serialize as [].
func paginateAndEnrich[T Item, V any](candidates []T, cursor string, limit int, listing string, view func(T) V) ViewPage[V] {
	observability.ObserveFeedSelection(listing, len(candidates))

	page := Paginate(candidates, cursor, limit)
	if page.Restarted {
		observability.CountStaleCursor(listing)
	}

	items := make([]V, 0, len(page.Items))
	for _, it := range page.Items {
		items = append(items, view(it))
	}
	return ViewPage[V]{Items: items, NextCursor: page.NextCursor, HasMore: page.HasMore}
}
