package tui

import (
	"github.com/tobran/reel/internal/domain"
)

// Message types for the TUI

// ErrMsg represents an error
type ErrMsg struct {
	Err     error
	Context string
}

// Error implements the error interface
func (e ErrMsg) Error() string {
	if e.Context != "" {
		return e.Context + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// PageLoadedMsg signals that a catalog page has been fetched. Generation is
// the staleness tag captured when the fetch was issued; the machine discards
// the page if the query has changed since.
type PageLoadedMsg struct {
	Page       domain.Page
	Generation uint64
}

// PageErrorMsg signals that a page fetch failed
type PageErrorMsg struct {
	Err        error
	Generation uint64
}

// SearchDebounceMsg fires when the search input has been quiet long enough
// to commit. A stale Seq means the text changed again after this tick was
// armed; the commit belongs to a later tick.
type SearchDebounceMsg struct {
	Seq int
}

// OverlayExpiredMsg hides the overlay after the idle window. A stale Seq
// means the user interacted after this tick was armed.
type OverlayExpiredMsg struct {
	Seq int
}

// StatusExpiredMsg clears the transient status notice
type StatusExpiredMsg struct {
	Seq int
}

// ItemOpenedMsg signals that the current item was handed to the external
// player
type ItemOpenedMsg struct {
	Title string
}
