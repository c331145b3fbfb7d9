package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tobran/reel/internal/tui/styles"
)

// View renders the full-screen carousel: the item card in the center and,
// while visible, the metadata/controls overlay around it.
func (m Model) View() string {
	if !m.Ready {
		return "\n  Initializing..."
	}

	var header string
	if m.OverlayVisible || m.Mode != ModeBrowse {
		header = m.renderHeader()
	}

	card := m.renderCard()

	var footer string
	if m.OverlayVisible || m.Mode != ModeBrowse {
		footer = m.renderFooter()
	}

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	if header == "" {
		headerHeight = 0
	}
	if footer == "" {
		footerHeight = 0
	}

	bodyHeight := m.Height - headerHeight - footerHeight
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	body := lipgloss.Place(m.Width, bodyHeight, lipgloss.Center, lipgloss.Center, card)

	sections := make([]string, 0, 3)
	if header != "" {
		sections = append(sections, header)
	}
	sections = append(sections, body)
	if footer != "" {
		sections = append(sections, footer)
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderHeader shows the search bar (or its committed text), suggestions,
// and the transient status notice.
func (m Model) renderHeader() string {
	var b strings.Builder

	switch m.Mode {
	case ModeSearch:
		b.WriteString(m.SearchInput.View())
		for i, s := range m.Suggestions {
			b.WriteString("\n")
			if i == 0 {
				b.WriteString(styles.SuggestionActiveStyle.Render(s))
			} else {
				b.WriteString(styles.SuggestionStyle.Render(s))
			}
		}
	case ModeJump:
		b.WriteString(m.SearchInput.View())
		for i, match := range m.JumpMatches {
			b.WriteString("\n")
			line := fmt.Sprintf("%2d  %s", match.Index+1, match.Title)
			if i == 0 {
				b.WriteString(styles.SuggestionActiveStyle.Render(line))
			} else {
				b.WriteString(styles.SuggestionStyle.Render(line))
			}
		}
	default:
		query := m.Query.Text
		if query == "" {
			query = "(all)"
		}
		b.WriteString(styles.DimStyle.Render("/ ") + styles.SubtitleStyle.Render(query))
		b.WriteString(styles.DimStyle.Render(fmt.Sprintf("   sort %s %s",
			m.Query.Sort, strings.ToLower(string(m.Query.Direction)))))
	}

	if m.Status != "" {
		b.WriteString("\n")
		if m.StatusIsErr {
			b.WriteString(styles.ErrorStyle.Render(m.Status))
		} else {
			b.WriteString(styles.SuccessStyle.Render(m.Status))
		}
	}
	return b.String()
}

// renderCard renders the current item, the empty terminal state, or the
// initial loading placeholder.
func (m Model) renderCard() string {
	item, ok := m.Machine.Current()
	if !ok {
		if m.Machine.Loading() {
			return m.Spinner.View() + " " + styles.DimStyle.Render("Loading...")
		}
		text := "No results"
		if m.Query.Text != "" {
			text = fmt.Sprintf("No results for %q", m.Query.Text)
		}
		return styles.DimStyle.Render(text)
	}

	var lines []string
	lines = append(lines, styles.TitleStyle.Render(item.DisplayTitle()))

	meta := make([]string, 0, 3)
	if item.Date != "" {
		meta = append(meta, item.Date)
	}
	if item.Studio != "" {
		meta = append(meta, item.Studio)
	}
	meta = append(meta, item.Kind.String())
	lines = append(lines, styles.SubtitleStyle.Render(strings.Join(meta, " · ")))

	if len(item.Performers) > 0 {
		lines = append(lines, styles.AccentStyle.Render(item.PerformerLine()))
	}

	if stars := item.FormattedRating(); stars != "" {
		lines = append(lines, styles.AccentStyle.Render(stars))
	}

	if item.ViewCount > 0 {
		lines = append(lines, styles.DimStyle.Render(fmt.Sprintf("%d views", item.ViewCount)))
	}

	if len(item.Tags) > 0 {
		tags := make([]string, 0, len(item.Tags))
		for _, t := range item.Tags {
			tags = append(tags, styles.TagStyle.Render(t))
		}
		lines = append(lines, strings.Join(tags, " "))
	}

	card := lipgloss.JoinVertical(lipgloss.Center, lines...)

	style := styles.CardBorder
	if m.CropFill {
		style = styles.CardBorderFull.Width(m.Width - 2)
	}
	return style.Render(card)
}

// renderFooter shows position, paging chevrons, loading state, and key
// hints.
func (m Model) renderFooter() string {
	page := m.Machine.Page()

	prev := styles.ChevronDisabledStyle.Render("‹")
	if m.Machine.HasPrevious() {
		prev = styles.ChevronStyle.Render("‹")
	}
	next := styles.ChevronDisabledStyle.Render("›")
	if m.Machine.HasNext() {
		next = styles.ChevronStyle.Render("›")
	}

	var position string
	if pos := m.Machine.GlobalPosition(); pos > 0 {
		position = fmt.Sprintf("%d / %d · page %d/%d", pos, page.TotalResults, page.Number, page.TotalPages)
	} else {
		position = "0 results"
	}

	left := fmt.Sprintf("%s %s %s", prev, styles.SubtitleStyle.Render(position), next)
	if m.Machine.Loading() {
		left += "  " + m.Spinner.View()
	}

	hints := styles.DimStyle.Render("←/→ navigate · / search · f jump · s sort · o open · c crop · q quit")

	gap := m.Width - lipgloss.Width(left) - lipgloss.Width(hints)
	if gap < 1 {
		return left
	}
	return left + strings.Repeat(" ", gap) + hints
}
