// Package feed implements the feed assembly pipeline: candidate selection,
// cursor pagination and view enrichment, shared by every listing endpoint.
package feed

// Item is anything that can appear in a paginated candidate sequence.
type Item interface {
	ItemID() string
}

// Page is one slice of a candidate sequence. NextCursor is nil on the last
// page; Restarted reports that a supplied cursor matched no candidate and
// pagination silently fell back to the first page.
type Page[T Item] struct {
	Items      []T
	NextCursor *string
	HasMore    bool
	Restarted  bool
}

// Default page limits. Feeds and comment threads page in fives, directory
// style listings in tens.
const (
	DefaultFeedLimit = 5
	DefaultListLimit = 10
	MaxLimit         = 100
)

// ClampLimit normalizes a requested page size against a default.
// Non-positive values take the default; oversized values are capped.
func ClampLimit(limit, def int) int {
	if limit <= 0 {
		return def
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

// Paginate slices one page out of an ordered candidate sequence.
//
// The cursor is the id of the last item returned on the previous page; an
// empty cursor means the first page. A cursor that matches no candidate
// (deleted item, stale token) restarts from the top rather than failing.
// The paginator holds no state: ordering determinism plus the id lookup
// make repeated calls with the same inputs return the same page.
func Paginate[T Item](items []T, cursor string, limit int) Page[T] {
	start := 0
	restarted := false
	if cursor != "" {
		restarted = true
		for i, it := range items {
			if it.ItemID() == cursor {
				start = i + 1
				restarted = false
				break
			}
		}
	}

	end := start + limit
	if end > len(items) {
		end = len(items)
	}

	page := Page[T]{
		Items:     items[start:end],
		HasMore:   len(items)-(start+limit) > 0,
		Restarted: restarted,
	}
	if page.HasMore {
		last := page.Items[len(page.Items)-1].ItemID()
		page.NextCursor = &last
	}
	return page
}
