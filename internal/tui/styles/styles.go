package styles

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	Amber     = lipgloss.Color("#E5A00D")
	SlateDark = lipgloss.Color("#1F2937")
	DimGray   = lipgloss.Color("#6B7280")
	LightGray = lipgloss.Color("#9CA3AF")
	White     = lipgloss.Color("#F9FAFB")
	Red       = lipgloss.Color("#EF4444")
	Green     = lipgloss.Color("#10B981")
)

// Card styles
var (
	CardBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(DimGray).
			Padding(1, 3)

	CardBorderFull = lipgloss.NewStyle().
			Border(lipgloss.HiddenBorder()).
			Padding(1, 3)
)

// Text styles
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(White).
			Bold(true)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(LightGray)

	DimStyle = lipgloss.NewStyle().
			Foreground(DimGray)

	AccentStyle = lipgloss.NewStyle().
			Foreground(Amber)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Red)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(Green)

	TagStyle = lipgloss.NewStyle().
			Foreground(SlateDark).
			Background(LightGray).
			Padding(0, 1)

	ChevronStyle = lipgloss.NewStyle().
			Foreground(Amber).
			Bold(true)

	ChevronDisabledStyle = lipgloss.NewStyle().
				Foreground(SlateDark)

	SuggestionStyle = lipgloss.NewStyle().
			Foreground(LightGray).
			PaddingLeft(2)

	SuggestionActiveStyle = lipgloss.NewStyle().
				Foreground(Amber).
				PaddingLeft(2)
)
