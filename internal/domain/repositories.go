package domain

import "context"

// Catalog provides paged access to the remote media catalog. Implementations
// must be idempotent per (query, page) pair: repeated identical calls return
// equivalent pages and never corrupt state.
type Catalog interface {
	// SearchPage returns one page of results for the query. A response with
	// zero items is a valid empty page, not an error.
	SearchPage(ctx context.Context, q Query, page int) (Page, error)

	// PageSize returns the fixed number of items requested per page.
	PageSize() int
}

// SessionStore persists lightweight state across runs: the last committed
// query, a capped recent-query history, and local per-item view counts.
type SessionStore interface {
	// LastQuery returns the most recently committed query, or ok=false when
	// none has been saved yet.
	LastQuery() (Query, bool)

	// SaveQuery records a committed query as the session's current one and
	// appends its text to the recent-query history.
	SaveQuery(q Query) error

	// RecentQueries returns past committed query texts, most recent first.
	RecentQueries() []string

	// RecordView increments and returns the local view count for an item.
	RecordView(itemID string) (int, error)

	Close() error
}
