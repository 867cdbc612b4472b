package feed

import (
	"driftline/internal/models"
	"driftline/internal/store"
)

// Enricher maps raw entities to API-shaped views with related entities
// resolved and embedded. It is best-effort by contract: a reference to a
// user that no longer exists degrades to a null author field, never to an
// error, because frontends must tolerate deleted-but-referenced users.
type Enricher struct {
	store *store.Store
}

// NewEnricher returns an Enricher reading from the given store.
func NewEnricher(st *store.Store) *Enricher {
	return &Enricher{store: st}
}

// Author resolves a user id to the embeddable identity, or nil if the user
// is gone.
func (e *Enricher) Author(userID string) *models.AuthorSummary {
	u, ok := e.store.Users.FindByID(userID)
	if !ok {
		return nil
	}
	return u.Summary()
}

// Reactions returns the enriched reactions on a target, in the insertion
// order of the reaction table. The scan order is not re-sorted.
func (e *Enricher) Reactions(target models.ReactionTarget, targetID string) []models.ReactionView {
	rows := e.store.Reactions.Scan(func(r *models.Reaction) bool {
		return r.TargetType == target && r.TargetID == targetID
	})
	views := make([]models.ReactionView, 0, len(rows))
	for _, r := range rows {
		views = append(views, models.ReactionView{
			ID:        r.ID,
			Emoji:     r.Emoji,
			Author:    e.Author(r.AuthorID),
			CreatedAt: r.CreatedAt,
		})
	}
	return views
}

// Post combines a post with its author, reaction list and comment count.
func (e *Enricher) Post(p *models.Post) models.PostView {
	return models.PostView{
		ID:        p.ID,
		Author:    e.Author(p.AuthorID),
		Content:   p.Content,
		ImageURL:  p.ImageURL,
		Reactions: e.Reactions(models.ReactionTargetPost, p.ID),
		CommentCount: e.store.Comments.Count(func(c *models.Comment) bool {
			return c.PostID == p.ID
		}),
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// Comment combines a comment with its author and reaction list.
func (e *Enricher) Comment(c *models.Comment) models.CommentView {
	return models.CommentView{
		ID:        c.ID,
		PostID:    c.PostID,
		Author:    e.Author(c.AuthorID),
		Content:   c.Content,
		Reactions: e.Reactions(models.ReactionTargetComment, c.ID),
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// Friendship combines a friendship edge with both endpoint identities.
func (e *Enricher) Friendship(f *models.Friendship) models.FriendshipView {
	return models.FriendshipView{
		ID:        f.ID,
		Requester: e.Author(f.RequesterID),
		Addressee: e.Author(f.AddresseeID),
		Status:    f.Status,
		CreatedAt: f.CreatedAt,
		UpdatedAt: f.UpdatedAt,
	}
}
