package tui

import (
	"sort"
	"strings"

	lfuzzy "github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/sahilm/fuzzy"

	"github.com/tobran/reel/internal/domain"
)

// historyIndex implements fuzzy.Source over lowercased query history
type historyIndex []string

func (h historyIndex) String(i int) string { return h[i] }
func (h historyIndex) Len() int            { return len(h) }

// rankSuggestions ranks past query texts against the search draft. An empty
// draft returns the most recent entries as-is.
func rankSuggestions(history []string, draft string, limit int) []string {
	if limit <= 0 || len(history) == 0 {
		return nil
	}
	if strings.TrimSpace(draft) == "" {
		if len(history) > limit {
			history = history[:limit]
		}
		return history
	}

	lowered := make(historyIndex, len(history))
	for i, h := range history {
		lowered[i] = strings.ToLower(h)
	}

	matches := fuzzy.FindFrom(strings.ToLower(draft), lowered)
	out := make([]string, 0, limit)
	for _, match := range matches {
		out = append(out, history[match.Index])
		if len(out) == limit {
			break
		}
	}
	return out
}

// jumpMatch pairs an in-page index with its title for the jump picker
type jumpMatch struct {
	Index int
	Title string
}

// rankJumpMatches ranks the loaded page's titles against the jump draft and
// returns in-page indexes, best first. Jumping is always a pure local move.
func rankJumpMatches(items []domain.Item, draft string, limit int) []jumpMatch {
	if strings.TrimSpace(draft) == "" || len(items) == 0 {
		return nil
	}

	titles := make([]string, len(items))
	for i, item := range items {
		titles[i] = item.DisplayTitle()
	}

	ranks := lfuzzy.RankFindNormalizedFold(draft, titles)
	sort.Sort(ranks)

	out := make([]jumpMatch, 0, limit)
	for _, r := range ranks {
		out = append(out, jumpMatch{Index: r.OriginalIndex, Title: r.Target})
		if len(out) == limit {
			break
		}
	}
	return out
}
