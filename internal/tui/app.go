package tui

import (
	"errors"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tobran/reel/internal/carousel"
	"github.com/tobran/reel/internal/config"
	"github.com/tobran/reel/internal/domain"
	"github.com/tobran/reel/internal/player"
	"github.com/tobran/reel/internal/tui/styles"
)

// InputMode selects which component owns keystrokes
type InputMode int

const (
	ModeBrowse InputMode = iota
	ModeSearch
	ModeJump
)

const (
	statusTimeout  = 4 * time.Second
	maxSuggestions = 5
	maxJumpMatches = 5
)

// Model is the main Bubble Tea model for the application
type Model struct {
	// Collaborators
	Machine  *carousel.Machine
	Catalog  domain.Catalog
	Session  domain.SessionStore
	Launcher *player.Launcher
	Logger   *slog.Logger

	// The committed query. Draft text lives in the search input until the
	// debounce fires or the user accepts it.
	Query domain.Query

	// Input state
	Mode        InputMode
	SearchInput textinput.Model
	JumpMatches []jumpMatch
	Suggestions []string
	searchSeq   int // debounce staleness tag

	// Overlay state
	OverlayVisible bool
	overlaySeq     int // countdown staleness tag
	overlayTimeout time.Duration
	debounceDelay  time.Duration

	// Transient status notice
	Status      string
	StatusIsErr bool
	statusSeq   int

	// Presentation
	Spinner  spinner.Model
	CropFill bool
	Width    int
	Height   int
	Ready    bool
}

// NewModel creates the application model. The initial query is seeded by the
// caller (CLI flag or restored session).
func NewModel(
	catalog domain.Catalog,
	sess domain.SessionStore,
	launcher *player.Launcher,
	logger *slog.Logger,
	cfg *config.Config,
	initial domain.Query,
) Model {
	machine := carousel.New(catalog.PageSize())
	machine.SetObserver(func(item domain.Item, index int) {
		if _, err := sess.RecordView(item.ID); err != nil {
			logger.Warn("failed to record view", "item", item.ID, "error", err)
		}
		logger.Debug("item shown", "item", item.ID, "index", index)
	})

	input := textinput.New()
	input.Placeholder = "search the catalog"
	input.CharLimit = 120
	input.Prompt = "/ "

	sp := spinner.New(
		spinner.WithSpinner(spinner.MiniDot),
		spinner.WithStyle(styles.AccentStyle),
	)

	return Model{
		Machine:        machine,
		Catalog:        catalog,
		Session:        sess,
		Launcher:       launcher,
		Logger:         logger,
		Query:          initial,
		SearchInput:    input,
		Spinner:        sp,
		OverlayVisible: true,
		overlayTimeout: time.Duration(cfg.UI.OverlayTimeoutMS) * time.Millisecond,
		debounceDelay:  time.Duration(cfg.UI.SearchDebounceMS) * time.Millisecond,
	}
}

// Init issues the initial page fetch and arms the overlay countdown
func (m Model) Init() tea.Cmd {
	fetch := m.Machine.Reset()
	return tea.Batch(
		FetchPageCmd(m.Catalog, m.Query, fetch),
		m.Spinner.Tick,
		OverlayCmd(m.overlayTimeout, m.overlaySeq),
	)
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case spinner.TickMsg:
		if !m.Machine.Loading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		return m, cmd

	case PageLoadedMsg:
		if !m.Machine.ApplyPage(msg.Page, msg.Generation) {
			m.Logger.Debug("discarded stale page",
				"page", msg.Page.Number, "generation", msg.Generation)
			return m, nil
		}
		return m, nil

	case PageErrorMsg:
		if msg.Generation != m.Machine.Generation() {
			// The query changed while this fetch was in flight; its
			// failure is as stale as its success would have been.
			return m, nil
		}
		m.Machine.FetchFailed(msg.Generation)
		m.Logger.Error("page fetch failed", "error", msg.Err)
		return m.setStatus(describeFetchError(msg.Err), true)

	case SearchDebounceMsg:
		if msg.Seq != m.searchSeq || m.Mode != ModeSearch {
			return m, nil
		}
		// Quiet interval elapsed: commit the draft but stay in search mode
		// with the input focused, so the user can keep refining the text.
		// Each further quiet interval commits again.
		q := m.Query
		q.Text = m.SearchInput.Value()
		return m.commitQuery(q)

	case OverlayExpiredMsg:
		// The overlay never hides while a text prompt is open.
		if msg.Seq == m.overlaySeq && m.Mode == ModeBrowse {
			m.OverlayVisible = false
		}
		return m, nil

	case StatusExpiredMsg:
		if msg.Seq == m.statusSeq {
			m.Status = ""
			m.StatusIsErr = false
		}
		return m, nil

	case ItemOpenedMsg:
		return m.setStatus("Opened "+msg.Title+" in player", false)

	case ErrMsg:
		m.Logger.Error(msg.Context, "error", msg.Err)
		return m.setStatus(msg.Error(), true)
	}

	return m, nil
}

// handleKey routes keystrokes: every key press counts as interaction for the
// overlay, then the active input mode consumes it.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	overlayCmd := m.touchOverlay()

	var cmd tea.Cmd
	switch m.Mode {
	case ModeSearch:
		m, cmd = m.handleSearchKey(msg)
	case ModeJump:
		m, cmd = m.handleJumpKey(msg)
	default:
		m, cmd = m.handleBrowseKey(msg)
	}
	return m, tea.Batch(overlayCmd, cmd)
}

func (m Model) handleBrowseKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, Keys.Advance):
		return m.advance()

	case key.Matches(msg, Keys.Retreat):
		return m.retreat()

	case key.Matches(msg, Keys.Search):
		m.Mode = ModeSearch
		m.SearchInput.SetValue(m.Query.Text)
		m.SearchInput.CursorEnd()
		m.Suggestions = rankSuggestions(m.Session.RecentQueries(), m.Query.Text, maxSuggestions)
		return m, m.SearchInput.Focus()

	case key.Matches(msg, Keys.Jump):
		m.Mode = ModeJump
		m.SearchInput.SetValue("")
		m.SearchInput.Prompt = "f "
		m.JumpMatches = nil
		return m, m.SearchInput.Focus()

	case key.Matches(msg, Keys.Sort):
		q := m.Query
		q.Sort = q.NextSort()
		return m.commitQuery(q)

	case key.Matches(msg, Keys.SortDir):
		q := m.Query
		q.Direction = q.Direction.Toggle()
		return m.commitQuery(q)

	case key.Matches(msg, Keys.CropToggle):
		m.CropFill = !m.CropFill
		return m, nil

	case key.Matches(msg, Keys.Open):
		if item, ok := m.Machine.Current(); ok {
			return m, OpenItemCmd(m.Launcher, item)
		}
		return m, nil

	case key.Matches(msg, Keys.Escape):
		m.Status = ""
		m.StatusIsErr = false
		return m, nil
	}
	return m, nil
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.Escape):
		// Cancel: invalidate any pending debounce and keep the committed
		// query untouched.
		m.searchSeq++
		return m.leaveInputMode(), nil

	case key.Matches(msg, Keys.Accept):
		return m.commitDraft()

	case key.Matches(msg, Keys.Complete):
		if len(m.Suggestions) > 0 {
			m.SearchInput.SetValue(m.Suggestions[0])
			m.SearchInput.CursorEnd()
		}
		return m.commitDraft()
	}

	before := m.SearchInput.Value()
	var cmd tea.Cmd
	m.SearchInput, cmd = m.SearchInput.Update(msg)

	if m.SearchInput.Value() != before {
		// Re-arm the trailing-edge debounce; the stale tick becomes a
		// no-op, so bursts coalesce into one commit of the last value.
		m.searchSeq++
		m.Suggestions = rankSuggestions(m.Session.RecentQueries(), m.SearchInput.Value(), maxSuggestions)
		return m, tea.Batch(cmd, DebounceCmd(m.debounceDelay, m.searchSeq))
	}
	return m, cmd
}

func (m Model) handleJumpKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.Escape):
		return m.leaveInputMode(), nil

	case key.Matches(msg, Keys.Accept):
		if len(m.JumpMatches) > 0 {
			m.Machine.JumpTo(m.JumpMatches[0].Index)
		}
		return m.leaveInputMode(), nil
	}

	var cmd tea.Cmd
	m.SearchInput, cmd = m.SearchInput.Update(msg)
	m.JumpMatches = rankJumpMatches(m.Machine.Page().Items, m.SearchInput.Value(), maxJumpMatches)
	return m, cmd
}

// handleMouse normalizes pointer input to the same advance/retreat
// operations the keyboard uses; no device bypasses the machine.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	overlayCmd := m.touchOverlay()
	if m.Mode != ModeBrowse {
		return m, overlayCmd
	}

	var model Model
	var cmd tea.Cmd
	switch {
	case msg.Button == tea.MouseButtonWheelDown || msg.Button == tea.MouseButtonWheelRight:
		model, cmd = m.advance()
	case msg.Button == tea.MouseButtonWheelUp || msg.Button == tea.MouseButtonWheelLeft:
		model, cmd = m.retreat()
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		if msg.X >= m.Width/2 {
			model, cmd = m.advance()
		} else {
			model, cmd = m.retreat()
		}
	default:
		model = m
	}
	return model, tea.Batch(overlayCmd, cmd)
}

func (m Model) advance() (Model, tea.Cmd) {
	fetch, issued := m.Machine.Advance()
	if !issued {
		return m, nil
	}
	return m, tea.Batch(FetchPageCmd(m.Catalog, m.Query, fetch), m.Spinner.Tick)
}

func (m Model) retreat() (Model, tea.Cmd) {
	fetch, issued := m.Machine.Retreat()
	if !issued {
		return m, nil
	}
	return m, tea.Batch(FetchPageCmd(m.Catalog, m.Query, fetch), m.Spinner.Tick)
}

// commitDraft commits the search input's current value as the new query and
// returns to browsing. Only the explicit accept paths use it; a debounce
// commit keeps the search input open.
func (m Model) commitDraft() (Model, tea.Cmd) {
	q := m.Query
	q.Text = m.SearchInput.Value()
	m = m.leaveInputMode()
	return m.commitQuery(q)
}

// commitQuery is the query-change reconciler: it updates the committed
// query, resets the navigation machine (which discards any in-flight fetch
// via the generation bump), persists the query as a side effect regardless
// of fetch outcome, and issues the fresh page-1 fetch.
func (m Model) commitQuery(q domain.Query) (Model, tea.Cmd) {
	m.Query = q
	m.searchSeq++ // a pending debounce for the old draft must never fire

	fetch := m.Machine.Reset()

	if err := m.Session.SaveQuery(q); err != nil {
		m.Logger.Warn("failed to persist query", "error", err)
	}

	return m, tea.Batch(FetchPageCmd(m.Catalog, q, fetch), m.Spinner.Tick)
}

func (m Model) leaveInputMode() Model {
	m.Mode = ModeBrowse
	m.SearchInput.Blur()
	m.SearchInput.Prompt = "/ "
	m.JumpMatches = nil
	m.Suggestions = nil
	return m
}

// touchOverlay forces the overlay visible and re-arms the hide countdown.
// Bumping the sequence invalidates the previous countdown, so no two timers
// ever race to flip visibility.
func (m *Model) touchOverlay() tea.Cmd {
	m.OverlayVisible = true
	m.overlaySeq++
	return OverlayCmd(m.overlayTimeout, m.overlaySeq)
}

func (m Model) setStatus(text string, isErr bool) (Model, tea.Cmd) {
	m.Status = text
	m.StatusIsErr = isErr
	m.statusSeq++
	return m, ClearStatusCmd(statusTimeout, m.statusSeq)
}

func describeFetchError(err error) string {
	switch {
	case errors.Is(err, domain.ErrServerOffline):
		return "Server unreachable, will retry on next move"
	case errors.Is(err, domain.ErrAuthFailed):
		return "API key rejected by server"
	default:
		return "Fetch failed: " + err.Error()
	}
}
