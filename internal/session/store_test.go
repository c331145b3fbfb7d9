package session

import (
	"fmt"
	"testing"

	"github.com/tobran/reel/internal/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestLastQueryRoundTrip(t *testing.T) {
	s := newTestStore(t)

	if _, ok := s.LastQuery(); ok {
		t.Fatal("fresh store should have no last query")
	}

	q := domain.Query{Text: "sunset", Sort: "rating", Direction: domain.SortDesc}
	if err := s.SaveQuery(q); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	got, ok := s.LastQuery()
	if !ok {
		t.Fatal("expected a saved query")
	}
	if got != q {
		t.Errorf("got %+v, want %+v", got, q)
	}
}

func TestHistoryDeduplicatesAndOrders(t *testing.T) {
	s := newTestStore(t)

	for _, text := range []string{"alpha", "beta", "alpha", "gamma"} {
		if err := s.SaveQuery(domain.Query{Text: text}); err != nil {
			t.Fatalf("save failed: %v", err)
		}
	}

	got := s.RecentQueries()
	want := []string{"gamma", "alpha", "beta"}
	if len(got) != len(want) {
		t.Fatalf("history = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("history[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestHistoryIgnoresEmptyText(t *testing.T) {
	s := newTestStore(t)
	s.SaveQuery(domain.Query{Text: ""})
	if got := s.RecentQueries(); len(got) != 0 {
		t.Errorf("empty query text should not enter history: %v", got)
	}
}

func TestHistoryCap(t *testing.T) {
	s := newTestStore(t)
	for i := 0; i < maxHistory+10; i++ {
		s.SaveQuery(domain.Query{Text: fmt.Sprintf("query-%d", i)})
	}
	if got := len(s.RecentQueries()); got != maxHistory {
		t.Errorf("history length = %d, want %d", got, maxHistory)
	}
}

func TestRecordView(t *testing.T) {
	s := newTestStore(t)

	if n := s.ViewCount("scene-1"); n != 0 {
		t.Fatalf("fresh view count = %d, want 0", n)
	}
	for want := 1; want <= 3; want++ {
		n, err := s.RecordView("scene-1")
		if err != nil {
			t.Fatalf("record failed: %v", err)
		}
		if n != want {
			t.Errorf("view count = %d, want %d", n, want)
		}
	}
	if n := s.ViewCount("scene-2"); n != 0 {
		t.Errorf("unrelated item count = %d, want 0", n)
	}
}
