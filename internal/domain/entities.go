package domain

import (
	"fmt"
	"strings"
)

// MediaKind distinguishes content types
type MediaKind int

const (
	MediaKindVideo MediaKind = iota
	MediaKindImage
)

// String returns a human-readable representation of the media kind
func (k MediaKind) String() string {
	switch k {
	case MediaKindVideo:
		return "video"
	case MediaKindImage:
		return "image"
	default:
		return "unknown"
	}
}

// Item represents one displayable unit of the catalog (a scene or an image).
// Items are immutable once mapped from a server record and are discarded
// wholesale when their page is replaced.
type Item struct {
	ID         string    // Server-specific unique identifier
	Kind       MediaKind // Video or Image
	Title      string    // Display title
	URL        string    // Playable/viewable stream URL
	ThumbURL   string    // Preview image URL
	Performers []string  // Performer names, server order
	Studio     string    // Studio name, empty if none
	Date       string    // Release date (YYYY-MM-DD), empty if unknown
	Tags       []string  // Tag names, server order
	Rating     float64   // 0-10 scale, 0 = unrated
	ViewCount  int       // Server-side play count
}

// PerformerLine returns the performers joined for single-line display
func (i Item) PerformerLine() string {
	return strings.Join(i.Performers, ", ")
}

// FormattedRating returns the rating as a star string, empty if unrated
func (i Item) FormattedRating() string {
	if i.Rating <= 0 {
		return ""
	}
	full := int(i.Rating / 2)
	if full > 5 {
		full = 5
	}
	return strings.Repeat("★", full) + strings.Repeat("☆", 5-full)
}

// DisplayTitle returns the title, falling back to a kind-based placeholder
func (i Item) DisplayTitle() string {
	if i.Title != "" {
		return i.Title
	}
	return fmt.Sprintf("Untitled %s", i.Kind)
}

// Page is one server-fetched batch of items for a given query and page
// number. Exactly one Page is live at a time; a successful fetch replaces it
// wholesale, never merges into it.
type Page struct {
	Items        []Item // At most the configured page size
	Number       int    // 1-based page number
	TotalPages   int    // >= 1 once any fetch has succeeded
	TotalResults int    // Server-reported result count for the query
}

// IsEmpty reports whether the page holds no items (a valid "no results"
// response, not an error)
func (p Page) IsEmpty() bool {
	return len(p.Items) == 0
}

// SortDirection orders search results ascending or descending
type SortDirection string

const (
	SortAsc  SortDirection = "ASC"
	SortDesc SortDirection = "DESC"
)

// Toggle returns the opposite direction
func (d SortDirection) Toggle() SortDirection {
	if d == SortAsc {
		return SortDesc
	}
	return SortAsc
}

// Query identifies a search against the catalog. A change to Text or Sort
// invalidates the live Page and resets navigation to the first item of the
// first page.
type Query struct {
	Text      string
	Sort      string
	Direction SortDirection
}

// SortFields are the sort keys the catalog accepts, in cycling order
var SortFields = []string{"date", "title", "rating", "play_count", "random"}

// NextSort returns the sort key following the query's current one
func (q Query) NextSort() string {
	for i, f := range SortFields {
		if f == q.Sort {
			return SortFields[(i+1)%len(SortFields)]
		}
	}
	return SortFields[0]
}
