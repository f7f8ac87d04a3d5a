package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jmylchreest/panelkit/internal/adapter/output"
	"github.com/jmylchreest/panelkit/internal/panel"
)

const (
	screenWidth  = 30
	screenHeight = 11
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12")).
			Padding(0, 1)

	screenStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8"))

	sectionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8"))
)

// View renders the preview.
func (m Model) View() string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("panelkit preview") + "\n\n")

	details := m.renderDetails()
	screen := screenStyle.Render(renderScreen(m.pc.Anchor))
	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, screen, "  ", details))
	sb.WriteString("\n\n")
	sb.WriteString(m.renderPalette())
	sb.WriteString("\n")

	switch {
	case m.statusMsg != "":
		statusStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
		if m.statusErr {
			statusStyle = statusStyle.Foreground(lipgloss.Color("9"))
		}
		sb.WriteString(statusStyle.Render(m.statusMsg))
	case m.showHelp:
		sb.WriteString(m.help.FullHelpView(m.keys.FullHelp()))
	default:
		sb.WriteString(m.help.ShortHelpView(m.keys.ShortHelp()))
	}

	return sb.String()
}

func (m Model) renderDetails() string {
	var sb strings.Builder
	r := m.Report()
	r.Theme = nil
	_ = output.NewPlainFormatter(output.FormatterOptions{}).Format(&sb, r)
	return strings.TrimRight(sb.String(), "\n")
}

func (m Model) renderPalette() string {
	var sb strings.Builder
	sb.WriteString(sectionStyle.Render("theme "+m.theme.Name) + "\n")
	for _, e := range m.theme.Palette.Entries() {
		swatch := lipgloss.NewStyle().
			Background(lipgloss.Color(e.Color.Hex())).
			Render("    ")
		sb.WriteString(swatch + " " + e.Color.Hex() + " " + e.Key + "\n")
	}
	return sb.String()
}

// renderScreen draws the panel on its edge with the applet (A) and the
// popup (P) opening away from it.
func renderScreen(anchor panel.Anchor) string {
	grid := make([][]rune, screenHeight)
	for y := range grid {
		grid[y] = []rune(strings.Repeat(" ", screenWidth))
	}

	midX, midY := screenWidth/2, screenHeight/2
	var appletX, appletY, popupX, popupY int
	const popupW, popupH = 8, 3

	switch anchor {
	case panel.AnchorLeft:
		for y := range grid {
			grid[y][0] = '┃'
		}
		appletX, appletY = 0, midY
		popupX, popupY = 2, midY-popupH/2
	case panel.AnchorRight:
		for y := range grid {
			grid[y][screenWidth-1] = '┃'
		}
		appletX, appletY = screenWidth-1, midY
		popupX, popupY = screenWidth-2-popupW, midY-popupH/2
	case panel.AnchorBottom:
		for x := range grid[screenHeight-1] {
			grid[screenHeight-1][x] = '━'
		}
		appletX, appletY = midX, screenHeight-1
		popupX, popupY = midX-popupW/2, screenHeight-2-popupH
	default:
		for x := range grid[0] {
			grid[0][x] = '━'
		}
		appletX, appletY = midX, 0
		popupX, popupY = midX-popupW/2, 2
	}

	for y := popupY; y < popupY+popupH; y++ {
		for x := popupX; x < popupX+popupW; x++ {
			grid[y][x] = '░'
		}
	}
	grid[popupY+popupH/2][popupX+popupW/2] = 'P'
	grid[appletY][appletX] = 'A'

	lines := make([]string, len(grid))
	for i, row := range grid {
		lines[i] = string(row)
	}
	return strings.Join(lines, "\n")
}
