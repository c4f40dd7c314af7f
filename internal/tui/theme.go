package tui

import "github.com/charmbracelet/lipgloss"

// ---------------------------------------------------------------------------
// Catppuccin Mocha palette, true-color hex values
// https://catppuccin.com/palette
// ---------------------------------------------------------------------------

const (
	colorRed      lipgloss.Color = "#f38ba8"
	colorPeach    lipgloss.Color = "#fab387"
	colorGreen    lipgloss.Color = "#a6e3a1"
	colorSapphire lipgloss.Color = "#74c7ec"
	colorBlue     lipgloss.Color = "#89b4fa"
	colorLavender lipgloss.Color = "#b4befe"

	colorText     lipgloss.Color = "#cdd6f4"
	colorSubtext0 lipgloss.Color = "#a6adc8"
	colorOverlay0 lipgloss.Color = "#6c7086"
	colorSurface2 lipgloss.Color = "#585b70"
	colorSurface1 lipgloss.Color = "#45475a"
	colorSurface0 lipgloss.Color = "#313244"
	colorBase     lipgloss.Color = "#1e1e2e"
	colorMantle   lipgloss.Color = "#181825"
)

// styles is the resolved style sheet. Only the accent is configurable.
type styles struct {
	accent lipgloss.Color

	header    lipgloss.Style
	label     lipgloss.Style
	field     lipgloss.Style
	fieldOn   lipgloss.Style
	fieldHint lipgloss.Style
	panel     lipgloss.Style
	panelOn   lipgloss.Style
	title     lipgloss.Style
	arrow     lipgloss.Style
	weekday   lipgloss.Style
	sunday    lipgloss.Style
	saturday  lipgloss.Style

	day      lipgloss.Style
	today    lipgloss.Style
	endpoint lipgloss.Style
	inRange  lipgloss.Style
	hoverEnd lipgloss.Style
	disabled lipgloss.Style
	cursor   lipgloss.Style

	button   lipgloss.Style
	duration lipgloss.Style

	status    lipgloss.Style
	statusErr lipgloss.Style
	footer    lipgloss.Style
	key       lipgloss.Style
	keyDesc   lipgloss.Style
}

func newStyles(accent string) styles {
	a := colorBlue
	if accent != "" {
		a = lipgloss.Color(accent)
	}
	return styles{
		accent: a,

		header:    lipgloss.NewStyle().Foreground(a).Background(colorMantle).Bold(true),
		label:     lipgloss.NewStyle().Foreground(colorSubtext0),
		field:     lipgloss.NewStyle().Foreground(colorText).Background(colorSurface0),
		fieldOn:   lipgloss.NewStyle().Foreground(colorBase).Background(a).Bold(true),
		fieldHint: lipgloss.NewStyle().Foreground(colorOverlay0).Background(colorSurface0),
		panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorSurface2).
			Padding(0, 1),
		panelOn: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(a).
			Padding(0, 1),
		title:    lipgloss.NewStyle().Foreground(colorText).Bold(true),
		arrow:    lipgloss.NewStyle().Foreground(a),
		weekday:  lipgloss.NewStyle().Foreground(colorSubtext0),
		sunday:   lipgloss.NewStyle().Foreground(colorRed),
		saturday: lipgloss.NewStyle().Foreground(colorSapphire),

		day:      lipgloss.NewStyle().Foreground(colorText),
		today:    lipgloss.NewStyle().Foreground(colorPeach).Underline(true),
		endpoint: lipgloss.NewStyle().Foreground(colorBase).Background(a).Bold(true),
		inRange:  lipgloss.NewStyle().Foreground(colorText).Background(colorSurface1),
		hoverEnd: lipgloss.NewStyle().Foreground(colorBase).Background(colorLavender),
		disabled: lipgloss.NewStyle().Foreground(colorOverlay0).Strikethrough(true),
		cursor:   lipgloss.NewStyle().Reverse(true),

		button:   lipgloss.NewStyle().Foreground(a).Background(colorSurface0),
		duration: lipgloss.NewStyle().Foreground(colorGreen),

		status:    lipgloss.NewStyle().Foreground(colorGreen).Background(colorSurface0),
		statusErr: lipgloss.NewStyle().Foreground(colorRed).Background(colorSurface0),
		footer:    lipgloss.NewStyle().Background(colorMantle),
		key:       lipgloss.NewStyle().Foreground(a).Background(colorMantle).Bold(true),
		keyDesc:   lipgloss.NewStyle().Foreground(colorSubtext0).Background(colorMantle),
	}
}
