package carousel

import (
	"github.com/tobran/reel/internal/domain"
)

// State represents what the machine is currently doing. While a fetching
// state is active, further Advance/Retreat calls are rejected so at most one
// page fetch is ever in flight.
type State int

const (
	StateIdle State = iota
	StateFetchingNext
	StateFetchingPrevious
)

// Direction is the traversal direction of the last move. It only affects
// transition presentation, never logical position.
type Direction int

const (
	DirectionForward Direction = iota
	DirectionBackward
)

// Fetch is the side effect a transition can request: load the given page for
// the active query. Generation is captured at issue time; the result must be
// handed back to ApplyPage with the same tag, which discards it if the query
// has changed since.
type Fetch struct {
	Page       int
	Generation uint64
}

// Observer is notified after every successful index change, local moves and
// fetch-induced resets alike. Fire-and-forget: implementations must not
// block.
type Observer func(item domain.Item, index int)

// Machine unifies the locally-held page with the globally-paged collection
// into one continuous, bidirectionally navigable sequence. It performs no
// I/O itself; boundary crossings are returned as Fetch effects and resolved
// by the caller via ApplyPage or FetchFailed. All methods must be called
// from a single goroutine.
type Machine struct {
	pageSize   int
	state      State
	page       domain.Page
	index      int
	direction  Direction
	generation uint64
	pending    bool // initial or query-change fetch outstanding
	onShown    Observer
}

// New creates a machine for the given fixed page size with an empty page.
// Call Reset to issue the initial fetch.
func New(pageSize int) *Machine {
	return &Machine{
		pageSize: pageSize,
		page:     domain.Page{Number: 1},
	}
}

// SetObserver registers the item-shown callback.
func (m *Machine) SetObserver(fn Observer) { m.onShown = fn }

// Reset abandons any in-flight fetch, clears the page, and returns the fetch
// effect for page 1 of the new query. The bumped generation tag guarantees a
// stale result that resolves later is discarded, not applied.
func (m *Machine) Reset() Fetch {
	m.generation++
	m.state = StateIdle
	m.page = domain.Page{Number: 1}
	m.index = 0
	m.direction = DirectionForward
	m.pending = true
	return Fetch{Page: 1, Generation: m.generation}
}

// Advance moves to the next item. Within the page this is a pure local move.
// At the page boundary it requests the next page, if one exists; issued
// reports whether a fetch effect was produced. While a fetch is already in
// flight the call is a no-op.
func (m *Machine) Advance() (fetch Fetch, issued bool) {
	if m.state != StateIdle {
		return Fetch{}, false
	}
	if m.index+1 < len(m.page.Items) {
		m.index++
		m.direction = DirectionForward
		m.notify()
		return Fetch{}, false
	}
	if m.page.Number < m.page.TotalPages {
		m.state = StateFetchingNext
		return Fetch{Page: m.page.Number + 1, Generation: m.generation}, true
	}
	return Fetch{}, false
}

// Retreat mirrors Advance in the backward direction.
func (m *Machine) Retreat() (fetch Fetch, issued bool) {
	if m.state != StateIdle {
		return Fetch{}, false
	}
	if m.index > 0 {
		m.index--
		m.direction = DirectionBackward
		m.notify()
		return Fetch{}, false
	}
	if m.page.Number > 1 {
		m.state = StateFetchingPrevious
		return Fetch{Page: m.page.Number - 1, Generation: m.generation}, true
	}
	return Fetch{}, false
}

// ApplyPage resolves a fetch. A result whose generation tag no longer
// matches is stale and discarded; applied reports whether the page was
// taken. On a next-page crossing the cursor lands on the first item, on a
// previous-page crossing on the last item the server actually returned
// (pages can run short; the advertised page size is not trusted).
func (m *Machine) ApplyPage(p domain.Page, generation uint64) (applied bool) {
	if generation != m.generation {
		return false
	}
	prior := m.state
	m.state = StateIdle
	m.pending = false
	m.page = p

	switch prior {
	case StateFetchingPrevious:
		m.index = len(p.Items) - 1
		if m.index < 0 {
			m.index = 0
		}
		m.direction = DirectionBackward
	default:
		m.index = 0
		m.direction = DirectionForward
	}
	m.notify()
	return true
}

// FetchFailed aborts a boundary crossing: the cursor stays at its last valid
// position and the machine returns to Idle so the next Advance/Retreat
// re-attempts. Stale failures are ignored.
func (m *Machine) FetchFailed(generation uint64) {
	if generation != m.generation {
		return
	}
	m.state = StateIdle
	m.pending = false
}

// JumpTo moves the cursor to an index within the loaded page, a pure local
// move. Rejected while a fetch is in flight or when out of range.
func (m *Machine) JumpTo(index int) bool {
	if m.state != StateIdle || index < 0 || index >= len(m.page.Items) || index == m.index {
		return false
	}
	if index > m.index {
		m.direction = DirectionForward
	} else {
		m.direction = DirectionBackward
	}
	m.index = index
	m.notify()
	return true
}

// HasNext reports whether Advance can make progress, locally or by crossing
// into a further page. Recomputed from the live page and cursor on every
// call.
func (m *Machine) HasNext() bool {
	return m.index < len(m.page.Items)-1 || m.page.Number < m.page.TotalPages
}

// HasPrevious reports whether Retreat can make progress.
func (m *Machine) HasPrevious() bool {
	return m.index > 0 || m.page.Number > 1
}

// Current returns the item under the cursor, ok=false when the page is
// empty.
func (m *Machine) Current() (domain.Item, bool) {
	if len(m.page.Items) == 0 {
		return domain.Item{}, false
	}
	return m.page.Items[m.index], true
}

// Loading reports whether any fetch is outstanding.
func (m *Machine) Loading() bool { return m.state != StateIdle || m.pending }

// State returns the machine state.
func (m *Machine) State() State { return m.state }

// Page returns the live page.
func (m *Machine) Page() domain.Page { return m.page }

// Index returns the in-page cursor position.
func (m *Machine) Index() int { return m.index }

// Direction returns the traversal direction of the last move.
func (m *Machine) Direction() Direction { return m.direction }

// Generation returns the current staleness tag.
func (m *Machine) Generation() uint64 { return m.generation }

// GlobalPosition returns the 1-based position of the cursor across the whole
// result set, 0 when the page is empty.
func (m *Machine) GlobalPosition() int {
	if len(m.page.Items) == 0 {
		return 0
	}
	return (m.page.Number-1)*m.pageSize + m.index + 1
}

func (m *Machine) notify() {
	if m.onShown == nil {
		return
	}
	if item, ok := m.Current(); ok {
		m.onShown(item, m.index)
	}
}
