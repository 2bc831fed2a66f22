package app

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/havard/lazycloud/internal/config"
	"github.com/havard/lazycloud/internal/ui/styles"
)

// View renders the active screen
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var content string
	switch {
	case m.showHelp:
		content = m.renderHelp()
	case m.screen == ScreenLogViewer && m.logReady:
		content = m.renderLogViewer()
	default:
		content = m.renderList()
	}

	statusBar := m.renderStatusBar()

	return lipgloss.JoinVertical(
		lipgloss.Left,
		lipgloss.NewStyle().Height(m.height-config.StatusBarHeight).Render(content),
		statusBar,
	)
}

func (m *Model) renderList() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render(m.rows.title))
	if m.loading {
		b.WriteString("  " + m.spinner.View() + styles.DimmedText.Render(m.loadingMsg))
	}
	b.WriteString("\n")
	if m.rows.detail != "" {
		b.WriteString(styles.Detail.Render(m.rows.detail) + "\n")
	}
	b.WriteString(styles.Header.Render(m.rows.header) + "\n")

	if len(m.rows.body) == 0 {
		if !m.loading {
			b.WriteString(styles.DimmedText.Render("  (empty)"))
		}
		return b.String()
	}

	// Keep the cursor inside the visible window.
	visible := m.height - config.HeaderHeight - config.StatusBarHeight
	if m.rows.detail != "" {
		visible--
	}
	if visible < 1 {
		visible = 1
	}
	cursor := m.cursors[m.screen]
	offset := 0
	if cursor >= visible {
		offset = cursor - visible + 1
	}

	for i := offset; i < len(m.rows.body) && i < offset+visible; i++ {
		if i == cursor {
			b.WriteString(styles.SelectedItem.Render("> " + m.rows.body[i]))
		} else {
			b.WriteString(styles.NormalItem.Render("  " + m.rows.body[i]))
		}
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n")
}

func (m *Model) renderLogViewer() string {
	var b strings.Builder
	b.WriteString(styles.Title.Render(m.rows.title))
	b.WriteString("\n")
	b.WriteString(m.logView.View())
	return b.String()
}

func (m *Model) renderHelp() string {
	help := m.keymap.FullHelp()
	var lines []string

	lines = append(lines, styles.Title.Render("Keyboard Shortcuts"))
	lines = append(lines, "")

	for _, column := range help {
		for _, binding := range column {
			helpStr := binding.Help()
			line := styles.SelectedItem.Render(helpStr.Key) + "  " + styles.DimmedText.Render(helpStr.Desc)
			lines = append(lines, line)
		}
		lines = append(lines, "")
	}

	lines = append(lines, styles.DimmedText.Render("Press ? to close"))

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m *Model) renderStatusBar() string {
	var left string
	switch {
	case m.lastError != "":
		errText := m.lastError
		if maxLen := m.width - 30; maxLen > 0 {
			errText = runewidth.Truncate(errText, maxLen, "...")
		}
		left = styles.ErrorText.Render("Error: "+errText) + " " +
			styles.StatusBarKey.Render("r") + styles.StatusBarDesc.Render(" retry")
	case m.statusMsg != "":
		left = styles.StatusBarKey.Render(m.statusMsg)
	default:
		left = styles.DimmedText.Render(m.screen.String())
	}

	if m.warning != "" {
		left = styles.Warning.Render(m.warning) + " │ " + left
	}

	var parts []string
	for _, binding := range m.keymap.ShortHelp() {
		h := binding.Help()
		parts = append(parts, styles.StatusBarKey.Render(h.Key)+styles.StatusBarDesc.Render(" "+h.Desc))
	}
	help := strings.Join(parts, " │ ")

	leftWidth := lipgloss.Width(left)
	rightWidth := lipgloss.Width(help)
	padding := m.width - leftWidth - rightWidth - 2
	if padding < 0 {
		padding = 0
	}

	return styles.StatusBar.Width(m.width).Render(left + strings.Repeat(" ", padding) + help)
}
