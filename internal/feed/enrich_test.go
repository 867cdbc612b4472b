package feed

import (
	"testing"
	"time"

	"driftline/internal/models"
	"driftline/internal/store"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func addReaction(st *store.Store, author *models.User, target models.ReactionTarget, targetID, emoji string) *models.Reaction {
	r := &models.Reaction{
		ID:         uuid.NewString(),
		TargetType: target,
		TargetID:   targetID,
		AuthorID:   author.ID,
		Emoji:      emoji,
		CreatedAt:  time.Now().UTC(),
	}
	st.Reactions.Insert(r)
	return r
}

func TestEnrichPost(t *testing.T) {
	st := store.New()
	alice := addUser(st, "alice")
	bob := addUser(st, "bob")
	post := addPost(st, alice, "hello", time.Now().UTC())

	addReaction(st, bob, models.ReactionTargetPost, post.ID, "🔥")
	st.Comments.Insert(&models.Comment{
		ID: uuid.NewString(), PostID: post.ID, AuthorID: bob.ID, Content: "nice",
	})
	st.Comments.Insert(&models.Comment{
		ID: uuid.NewString(), PostID: post.ID, AuthorID: alice.ID, Content: "thanks",
	})

	view := NewEnricher(st).Post(post)

	require.NotNil(t, view.Author)
	assert.Equal(t, alice.ID, view.Author.ID)
	assert.Equal(t, "alice", view.Author.Name)
	assert.Equal(t, 2, view.CommentCount)
	require.Len(t, view.Reactions, 1)
	assert.Equal(t, "🔥", view.Reactions[0].Emoji)
	require.NotNil(t, view.Reactions[0].Author)
	assert.Equal(t, bob.ID, view.Reactions[0].Author.ID)
}

func TestEnrichOrphanedAuthorIsNull(t *testing.T) {
	st := store.New()
	alice := addUser(st, "alice")
	post := addPost(st, alice, "soon orphaned", time.Now().UTC())

	st.Users.Remove(alice.ID)

	view := NewEnricher(st).Post(post)

	assert.Nil(t, view.Author, "a deleted author must degrade to null, not error")
	assert.Equal(t, "soon orphaned", view.Content)
}

func TestEnrichOrphanedReactionAuthor(t *testing.T) {
	st := store.New()
	alice := addUser(st, "alice")
	bob := addUser(st, "bob")
	post := addPost(st, alice, "post", time.Now().UTC())
	addReaction(st, bob, models.ReactionTargetPost, post.ID, "👍")

	st.Users.Remove(bob.ID)

	view := NewEnricher(st).Post(post)

	require.Len(t, view.Reactions, 1)
	assert.Nil(t, view.Reactions[0].Author)
}

func TestEnrichReactionsKeepInsertionOrder(t *testing.T) {
	st := store.New()
	alice := addUser(st, "alice")
	bob := addUser(st, "bob")
	carol := addUser(st, "carol")
	post := addPost(st, alice, "post", time.Now().UTC())

	addReaction(st, bob, models.ReactionTargetPost, post.ID, "👍")
	addReaction(st, carol, models.ReactionTargetPost, post.ID, "❤️")
	addReaction(st, alice, models.ReactionTargetPost, post.ID, "😂")

	reactions := NewEnricher(st).Reactions(models.ReactionTargetPost, post.ID)

	require.Len(t, reactions, 3)
	assert.Equal(t, []string{"👍", "❤️", "😂"}, []string{
		reactions[0].Emoji, reactions[1].Emoji, reactions[2].Emoji,
	})
}

func TestEnrichComment(t *testing.T) {
	st := store.New()
	alice := addUser(st, "alice")
	post := addPost(st, alice, "post", time.Now().UTC())
	comment := &models.Comment{
		ID: uuid.NewString(), PostID: post.ID, AuthorID: alice.ID, Content: "hi",
	}
	st.Comments.Insert(comment)

	view := NewEnricher(st).Comment(comment)

	assert.Equal(t, post.ID, view.PostID)
	require.NotNil(t, view.Author)
	assert.Equal(t, "alice", view.Author.Name)
	assert.NotNil(t, view.Reactions)
	assert.Empty(t, view.Reactions)
}

func TestEnrichFriendship(t *testing.T) {
	st := store.New()
	alice := addUser(st, "alice")
	bob := addUser(st, "bob")
	edge := addFriendship(st, alice, bob, models.FriendshipStatusPending)

	view := NewEnricher(st).Friendship(edge)

	require.NotNil(t, view.Requester)
	require.NotNil(t, view.Addressee)
	assert.Equal(t, alice.ID, view.Requester.ID)
	assert.Equal(t, bob.ID, view.Addressee.ID)
	assert.Equal(t, models.FriendshipStatusPending, view.Status)
}
