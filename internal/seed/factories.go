// Package seed provides helpers to create demo data for the store file.
// These helpers are intended for development and testing only.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"driftline/internal/models"
	"driftline/internal/store"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Options controls how much data a seed run generates.
type Options struct {
	Users           int
	PostsPerUser    int
	CommentsPerPost int
	// MaxDays spreads createdAt timestamps over this many days back.
	MaxDays int
	// SkipBcrypt uses a plain marker instead of hashing the demo password,
	// which makes large seed runs much faster.
	SkipBcrypt bool
}

// DefaultOptions returns a small but representative demo dataset.
func DefaultOptions() Options {
	return Options{
		Users:           8,
		PostsPerUser:    6,
		CommentsPerPost: 3,
		MaxDays:         30,
	}
}

// Factory builds domain entities and inserts them into the store.
type Factory struct {
	store *store.Store
	opts  Options
	rand  *rand.Rand
}

// NewFactory creates a Factory bound to the provided store.
func NewFactory(st *store.Store, opts Options) *Factory {
	seed := time.Now().UnixNano()
	gofakeit.Seed(seed)
	return &Factory{
		store: st,
		opts:  opts,
		rand:  rand.New(rand.NewSource(seed)),
	}
}

// backdated returns a timestamp spread over the configured window so feeds
// have a realistic ordering to paginate through.
func (f *Factory) backdated() time.Time {
	maxDays := f.opts.MaxDays
	if maxDays <= 0 {
		maxDays = 30
	}
	back := time.Duration(f.rand.Intn(maxDays))*24*time.Hour +
		time.Duration(f.rand.Intn(24))*time.Hour +
		time.Duration(f.rand.Intn(60))*time.Minute
	return time.Now().UTC().Add(-back)
}

// CreateUser constructs and inserts a sample user. The demo password is
// "Password123!demo" for every account.
func (f *Factory) CreateUser(overrides ...func(*models.User)) *models.User {
	now := f.backdated()
	user := &models.User{
		ID:        uuid.NewString(),
		Username:  gofakeit.Username() + fmt.Sprintf("%d", gofakeit.Number(100, 999)),
		Email:     gofakeit.Email(),
		Bio:       gofakeit.Sentence(10),
		AvatarURL: fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if f.opts.SkipBcrypt {
		user.PasswordHash = "plain:Password123!demo"
	} else {
		hash, _ := bcrypt.GenerateFromPassword([]byte("Password123!demo"), bcrypt.DefaultCost)
		user.PasswordHash = string(hash)
	}

	for _, override := range overrides {
		override(user)
	}
	f.store.Users.Insert(user)
	return user
}

// CreatePost constructs and inserts a post authored by the given user.
func (f *Factory) CreatePost(author *models.User, overrides ...func(*models.Post)) *models.Post {
	now := f.backdated()
	post := &models.Post{
		ID:        uuid.NewString(),
		AuthorID:  author.ID,
		Content:   gofakeit.Paragraph(1, 3, 5, "\n"),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if f.rand.Intn(3) == 0 {
		post.ImageURL = fmt.Sprintf("https://picsum.photos/seed/%s/800/800", gofakeit.UUID())
	}

	for _, override := range overrides {
		override(post)
	}
	f.store.Posts.Insert(post)
	return post
}

// CreateComment constructs and inserts a comment on the given post.
func (f *Factory) CreateComment(author *models.User, post *models.Post) *models.Comment {
	now := f.backdated()
	if now.Before(post.CreatedAt) {
		now = post.CreatedAt.Add(time.Duration(f.rand.Intn(120)+1) * time.Minute)
	}
	comment := &models.Comment{
		ID:        uuid.NewString(),
		PostID:    post.ID,
		AuthorID:  author.ID,
		Content:   gofakeit.Sentence(f.rand.Intn(12) + 3),
		CreatedAt: now,
		UpdatedAt: now,
	}
	f.store.Comments.Insert(comment)
	return comment
}

// CreateReaction inserts a reaction on a post or comment. It respects the
// one-reaction-per-author rule and returns nil if the author already reacted.
func (f *Factory) CreateReaction(author *models.User, target models.ReactionTarget, targetID string) *models.Reaction {
	if _, exists := f.store.Reactions.First(func(r *models.Reaction) bool {
		return r.TargetType == target && r.TargetID == targetID && r.AuthorID == author.ID
	}); exists {
		return nil
	}

	emojis := []string{"👍", "❤️", "😂", "🔥", "🎉", "😮"}
	reaction := &models.Reaction{
		ID:         uuid.NewString(),
		TargetType: target,
		TargetID:   targetID,
		AuthorID:   author.ID,
		Emoji:      emojis[f.rand.Intn(len(emojis))],
		CreatedAt:  f.backdated(),
	}
	f.store.Reactions.Insert(reaction)
	return reaction
}

// CreateFriendship inserts an edge between two users. It respects the
// one-edge-per-pair rule and returns nil if an edge already exists.
func (f *Factory) CreateFriendship(requester, addressee *models.User, status models.FriendshipStatus) *models.Friendship {
	if _, exists := f.store.Friendships.First(func(fr *models.Friendship) bool {
		return fr.Involves(requester.ID, addressee.ID)
	}); exists {
		return nil
	}

	now := f.backdated()
	edge := &models.Friendship{
		ID:          uuid.NewString(),
		RequesterID: requester.ID,
		AddresseeID: addressee.ID,
		Status:      status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	f.store.Friendships.Insert(edge)
	return edge
}
