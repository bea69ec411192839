package render

import "github.com/charmbracelet/lipgloss"

var (
	colorAccent = lipgloss.Color("#61AFEF")
	colorMuted  = lipgloss.Color("#828997")
	colorBar    = lipgloss.Color("#98C379")
	colorBorder = lipgloss.Color("#3F4451")
	colorError  = lipgloss.Color("#E06C75")
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(colorAccent).
			Bold(true)

	headingStyle = lipgloss.NewStyle().
			Bold(true).
			MarginTop(1)

	captionStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	infoStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Italic(true)

	barStyle = lipgloss.NewStyle().
			Foreground(colorBar)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorError).
			Bold(true)

	tableBorderStyle = lipgloss.NewStyle().
				Foreground(colorBorder)

	tableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Padding(0, 1)

	tableCellStyle = lipgloss.NewStyle().
			Padding(0, 1)
)
