package monitor

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// kpiCount is how many leading variables get their own metric cell.
const kpiCount = 4

// miniSparkWidth is the width of the inline sparkline in table rows.
const miniSparkWidth = 12

// chartHeight is the braille chart height in rows.
const chartHeight = 6

// renderDashboard renders the complete dashboard view.
func (m Model) renderDashboard() string {
	if m.showHelp {
		return m.renderHelp()
	}

	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	if m.errText != "" {
		b.WriteString(ErrorStyle.Render("✗ " + m.errText))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if m.latest.Len() == 0 {
		if m.errText == "" {
			b.WriteString(LabelStyle.Render("Waiting for the first sample..."))
		}
		if m.height >= HeightMinimal {
			b.WriteString("\n\n")
			b.WriteString(m.renderFooter())
		}
		return b.String()
	}

	b.WriteString(m.renderKPIs())
	b.WriteString("\n")

	b.WriteString(m.renderTable())
	b.WriteString("\n")

	if chart := m.renderChart(); chart != "" {
		b.WriteString(chart)
		b.WriteString("\n")
	}

	if m.height >= HeightMinimal {
		b.WriteString(m.renderFooter())
	}

	return b.String()
}

// renderHeader renders the status line: connection, control mode,
// e-stop, sample count, and freshness.
func (m Model) renderHeader() string {
	title := lipgloss.NewStyle().
		Foreground(ColorAccent).
		Bold(true).
		Render("ro1mon")

	var parts []string
	parts = append(parts, m.src.Name())

	if m.connected {
		parts = append(parts, StatusConnected+" connected")
	} else {
		parts = append(parts, StatusDisconnected+" offline")
	}

	if m.hasStatus {
		parts = append(parts, "mode="+m.status.Control.Mode)
		if m.status.Control.EStop {
			parts = append(parts, StatusEStop+" ESTOP")
		}
	}

	if !m.running {
		parts = append(parts, PausedStyle.Render(StatusPaused+" paused"))
	}

	secs := m.SecondsSinceUpdate()
	var updateText string
	switch secs {
	case 0:
		updateText = "just now"
	case 1:
		updateText = "1s ago"
	default:
		updateText = fmt.Sprintf("%ds ago", secs)
	}
	parts = append(parts, fmt.Sprintf("%d samples", m.history.Len()))
	parts = append(parts, "updated "+updateText)

	stats := lipgloss.NewStyle().
		Foreground(ColorTextSecondary).
		Render(" | " + strings.Join(parts, " | "))

	return HeaderStyle.Render(title + stats)
}

// renderKPIs renders metric cells for the first variables in poll
// order, mirroring the four headline numbers of the dashboard.
func (m Model) renderKPIs() string {
	n := kpiCount
	if len(m.baseOrder) < n {
		n = len(m.baseOrder)
	}
	if n == 0 {
		return ""
	}

	cellWidth := 18
	if m.width > 0 && m.width/n-3 < cellWidth {
		cellWidth = m.width/n - 3
		if cellWidth < 8 {
			cellWidth = 8
		}
	}

	var cells []string
	for _, name := range m.baseOrder[:n] {
		v := m.latest.Get(name)

		label := LabelStyle.Render(truncate(name, cellWidth))
		var value string
		if v.IsNull() {
			value = NullValueStyle.Render("-")
		} else {
			value = ValueStyle.Render(truncate(v.String(), cellWidth))
		}

		cell := CardStyle.Width(cellWidth).Render(label + "\n" + value)
		cells = append(cells, cell)
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}

// renderTable renders one row per variable: name, current value, and
// an inline sparkline of its recent numeric history.
func (m Model) renderTable() string {
	nameWidth := 4
	for _, name := range m.variables {
		if len(name) > nameWidth {
			nameWidth = len(name)
		}
	}
	if nameWidth > 24 {
		nameWidth = 24
	}

	header := LabelStyle.Render(fmt.Sprintf("  %-*s  %-14s  %s", nameWidth, "name", "value", "trend"))

	rows := []string{header}
	for i, name := range m.variables {
		v := m.latest.Get(name)

		cursor := "  "
		style := lipgloss.NewStyle().Foreground(ColorTextPrimary)
		if i == m.selected {
			cursor = "> "
			style = SelectedRowStyle
		}

		valText := v.String()
		if v.IsNull() {
			style = NullValueStyle
		}

		spark := ""
		if series := m.history.Series(name, miniSparkWidth); len(series) > 1 {
			spark = RenderMiniSparkline(series, miniSparkWidth, ColorGraph)
		}

		row := cursor + style.Render(fmt.Sprintf("%-*s  %-14s", nameWidth, truncate(name, nameWidth), truncate(valText, 14))) + "  " + spark
		rows = append(rows, row)
	}

	return strings.Join(rows, "\n")
}

// renderChart renders the braille time-series chart for the selected
// variable. Variables with no numeric history get a hint instead.
func (m Model) renderChart() string {
	name := m.SelectedVariable()
	if name == "" {
		return ""
	}

	width := m.chartWidth()
	series := m.history.Series(name, width*2)
	if len(series) < 2 {
		return LabelStyle.Render(fmt.Sprintf("%s: no numeric history to chart", name))
	}

	minVal, maxVal := findMinMax(series)
	rangeText := fmt.Sprintf("%s  [%s .. %s]",
		formatFloat(series[len(series)-1]), formatFloat(minVal), formatFloat(maxVal))

	var b strings.Builder
	b.WriteString(SectionHeader(name, rangeText, width+4))
	b.WriteString("\n")

	chart := RenderBrailleSparkline(series, width, chartHeight, ColorGraph)
	for _, line := range strings.Split(chart, "\n") {
		b.WriteString(SectionContentLine(line, width+4))
		b.WriteString("\n")
	}
	b.WriteString(SectionFooter(width + 4))

	return b.String()
}

// chartWidth picks the chart width from the terminal size.
func (m Model) chartWidth() int {
	switch {
	case m.width >= BreakpointStandard:
		return 100
	case m.width >= BreakpointCompact:
		return m.width - 10
	case m.width > 0:
		return m.width - 6
	default:
		return 60
	}
}

// renderFooter renders the keyboard hint line.
func (m Model) renderFooter() string {
	hints := []string{
		"space run/stop",
		"r refresh",
		"↑↓ select",
		"s sort: " + m.sortOrder.String(),
		"? help",
		"q quit",
	}
	return FooterStyle.Render(strings.Join(hints, " | "))
}

// renderHelp renders the full-screen help overlay.
func (m Model) renderHelp() string {
	title := lipgloss.NewStyle().Foreground(ColorAccent).Bold(true).Render("ro1mon keys")

	lines := []string{
		title,
		"",
		"  space      start/stop polling",
		"  r          poll now",
		"  up/down    select variable (k/j also work)",
		"  home/end   jump to first/last variable",
		"  s          cycle sort order (config / name / value)",
		"  ?          toggle this help",
		"  esc        close help",
		"  q, ctrl+c  quit",
		"",
		LabelStyle.Render("The chart follows the selected variable."),
	}

	return strings.Join(lines, "\n")
}

// truncate shortens a string to max characters with an ellipsis.
func truncate(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	if max == 1 {
		return "…"
	}
	return s[:max-1] + "…"
}

// formatFloat renders a chart bound compactly.
func formatFloat(f float64) string {
	return fmt.Sprintf("%.4g", f)
}
