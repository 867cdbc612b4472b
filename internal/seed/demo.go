package seed

import (
	"log"

	"driftline/internal/models"
	"driftline/internal/store"
)

// Run populates the store with a connected demo dataset: a cluster of users
// with a mix of accepted and pending friendships, posts with comments and
// reactions. The result is written through the store's normal Save path.
func Run(st *store.Store, opts Options) error {
	f := NewFactory(st, opts)

	users := make([]*models.User, 0, opts.Users)
	for i := 0; i < opts.Users; i++ {
		users = append(users, f.CreateUser())
	}

	// Friendship graph: each user befriends the next few, with roughly one
	// in four edges left pending so feeds demonstrate visibility gating.
	for i, u := range users {
		for j := i + 1; j < len(users) && j <= i+3; j++ {
			status := models.FriendshipStatusAccepted
			if f.rand.Intn(4) == 0 {
				status = models.FriendshipStatusPending
			}
			f.CreateFriendship(u, users[j], status)
		}
	}

	posts := make([]*models.Post, 0, opts.Users*opts.PostsPerUser)
	for _, u := range users {
		for i := 0; i < opts.PostsPerUser; i++ {
			posts = append(posts, f.CreatePost(u))
		}
	}

	for _, p := range posts {
		for i := 0; i < opts.CommentsPerPost; i++ {
			commenter := users[f.rand.Intn(len(users))]
			comment := f.CreateComment(commenter, p)
			if f.rand.Intn(3) == 0 {
				f.CreateReaction(users[f.rand.Intn(len(users))], models.ReactionTargetComment, comment.ID)
			}
		}
		reactors := f.rand.Intn(len(users))
		for i := 0; i < reactors; i++ {
			f.CreateReaction(users[f.rand.Intn(len(users))], models.ReactionTargetPost, p.ID)
		}
	}

	if err := st.Save(); err != nil {
		return err
	}

	log.Printf("seeded %d users, %d posts, %d comments, %d reactions, %d friendships",
		st.Users.Len(), st.Posts.Len(), st.Comments.Len(), st.Reactions.Len(), st.Friendships.Len())
	return nil
}
