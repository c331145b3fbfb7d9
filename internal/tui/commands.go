package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tobran/reel/internal/carousel"
	"github.com/tobran/reel/internal/domain"
	"github.com/tobran/reel/internal/player"
)

// Command factories for async operations

const fetchTimeout = 30 * time.Second

// FetchPageCmd fetches one catalog page for the query. The fetch's
// generation tag rides along on the result so stale responses can be
// discarded after a query change.
func FetchPageCmd(catalog domain.Catalog, q domain.Query, fetch carousel.Fetch) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		page, err := catalog.SearchPage(ctx, q, fetch.Page)
		if err != nil {
			return PageErrorMsg{Err: err, Generation: fetch.Generation}
		}
		return PageLoadedMsg{Page: page, Generation: fetch.Generation}
	}
}

// DebounceCmd arms the trailing-edge search debounce tick
func DebounceCmd(delay time.Duration, seq int) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return SearchDebounceMsg{Seq: seq}
	})
}

// OverlayCmd arms the overlay auto-hide countdown
func OverlayCmd(delay time.Duration, seq int) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return OverlayExpiredMsg{Seq: seq}
	})
}

// ClearStatusCmd clears the status notice after a delay
func ClearStatusCmd(delay time.Duration, seq int) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return StatusExpiredMsg{Seq: seq}
	})
}

// OpenItemCmd hands the item's URL to the external player
func OpenItemCmd(launcher *player.Launcher, item domain.Item) tea.Cmd {
	return func() tea.Msg {
		if err := launcher.Launch(item.URL); err != nil {
			return ErrMsg{Err: err, Context: "opening player"}
		}
		return ItemOpenedMsg{Title: item.DisplayTitle()}
	}
}
