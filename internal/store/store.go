// Package store implements the flat JSON-backed in-memory store that holds
// all application state. It owns lookup and linear scans only; business
// rules live with the callers, which persist their mutations through Save.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"driftline/internal/models"
	"driftline/internal/observability"
)

// Store holds the five entity tables. Tables preserve insertion order so
// sorts over createdAt break ties deterministically.
type Store struct {
	path string

	Users       *Table[*models.User]
	Posts       *Table[*models.Post]
	Comments    *Table[*models.Comment]
	Reactions   *Table[*models.Reaction]
	Friendships *Table[*models.Friendship]
}

// snapshot is the on-disk shape of the store file.
type snapshot struct {
	Users       []*models.User       `json:"users"`
	Posts       []*models.Post       `json:"posts"`
	Comments    []*models.Comment    `json:"comments"`
	Reactions   []*models.Reaction   `json:"reactions"`
	Friendships []*models.Friendship `json:"friendships"`
}

// New creates an empty store with no backing file. Save is a no-op,
// which is what tests want.
func New() *Store {
	return &Store{
		Users:       NewTable(func(u *models.User) string { return u.ID }),
		Posts:       NewTable(func(p *models.Post) string { return p.ID }),
		Comments:    NewTable(func(c *models.Comment) string { return c.ID }),
		Reactions:   NewTable(func(r *models.Reaction) string { return r.ID }),
		Friendships: NewTable(func(f *models.Friendship) string { return f.ID }),
	}
}

// Open creates a store backed by the JSON file at path and hydrates the
// tables from it. A missing file yields an empty store; the file is created
// on the first Save.
func Open(path string) (*Store, error) {
	s := New()
	s.path = path

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return s, nil
		}
		return nil, fmt.Errorf("read store file: %w", err)
	}

	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decode store file %s: %w", path, err)
	}

	s.Users.Replace(snap.Users)
	s.Posts.Replace(snap.Posts)
	s.Comments.Replace(snap.Comments)
	s.Reactions.Replace(snap.Reactions)
	s.Friendships.Replace(snap.Friendships)
	return s, nil
}

// Path returns the backing file path, empty for in-memory stores.
func (s *Store) Path() string { return s.path }

// Save writes the whole store back to its backing file. Callers invoke it
// after every mutation; the read path never does. The write goes through a
// temp file and rename so a crash mid-write cannot corrupt the store.
func (s *Store) Save() error {
	if s.path == "" {
		return nil
	}
	start := time.Now()
	defer observability.ObserveStoreSave(start)

	snap := snapshot{
		Users:       s.Users.All(),
		Posts:       s.Posts.All(),
		Comments:    s.Comments.All(),
		Reactions:   s.Reactions.All(),
		Friendships: s.Friendships.All(),
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("encode store: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create store directory: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write store file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace store file: %w", err)
	}
	return nil
}
