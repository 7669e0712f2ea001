package tui

import (
	"fmt"
	"strings"

	"github.com/akyairhashvil/mvno/internal/config"
	"github.com/akyairhashvil/mvno/internal/gantt"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

const divider = "│"

func (m DashboardModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}
	if m.modal.Is(ModalEdit) || m.modal.Is(ModalHelp) {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.renderModal())
	}
	var b strings.Builder
	b.WriteString(m.renderTop())
	if m.panes.BodyRows > 0 {
		b.WriteString("\n")
		b.WriteString(m.renderBody())
	}
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

// renderTop is the list title next to the timeline header.
func (m DashboardModel) renderTop() string {
	title := []string{
		m.theme.Title.Render(fitLine("MVNO Gantt", m.panes.ListCols)),
		m.theme.Dim.Render(fitLine(fmt.Sprintf("%s · %d rows", m.ctrl.Unit(), len(m.ctrl.Rows())), m.panes.ListCols)),
	}
	return joinColumns(title, splitLines(m.panes.HeaderView()), config.HeaderRows, m.panes.ListCols)
}

func (m DashboardModel) renderBody() string {
	first := m.panes.FirstRow()
	rows := m.ctrl.Rows()
	list := make([]string, 0, m.panes.BodyRows)
	for i := 0; i < m.panes.BodyRows; i++ {
		idx := first + i
		if idx >= len(rows) {
			list = append(list, strings.Repeat(" ", m.panes.ListCols))
			continue
		}
		list = append(list, m.renderListRow(rows[idx], idx == m.view.cursor))
	}
	chart := splitLines(m.panes.ChartView(m.scrollbarCell))
	return joinColumns(list, chart, m.panes.BodyRows, m.panes.ListCols)
}

// renderListRow draws one side list line: indent, disclosure icon, kind
// marker, label and a right-aligned percentage.
func (m DashboardModel) renderListRow(row gantt.Row, selected bool) string {
	n := row.Node
	pct := " " + FormatPercent(n.PercentComplete)
	prefix := strings.Repeat(" ", row.Indent(config.IndentColumns)) + row.Icon.Glyph() + " " + n.Kind.Glyph() + " "
	labelWidth := m.panes.ListCols - ansi.StringWidth(pct)
	line := fitLine(prefix+n.Label(), labelWidth) + pct
	line = ansi.Truncate(line, m.panes.ListCols, "")

	style := m.theme.Task
	switch {
	case selected:
		style = m.theme.Cursor
	case n.IsGroup():
		style = m.theme.Group
	case n.PercentComplete >= 100:
		style = m.theme.Complete
	}
	return style.Render(line)
}

func (m DashboardModel) scrollbarCell(row int) string {
	start, length := m.panes.thumb()
	if row >= start && row < start+length {
		return m.theme.Scrollbar.Render("┃")
	}
	return m.theme.Scrollbar.Render("│")
}

func (m DashboardModel) renderFooter() string {
	stats, _ := gantt.Summarize(m.ctrl.Tasks())
	status := FormatStats(stats)
	if m.search.Applied != "" {
		status += " · filter: " + m.search.Applied
	}
	status += " · v" + VersionLabel()

	var second string
	switch {
	case m.search.Active:
		second = "/ " + m.search.Input.View()
	case m.err != nil:
		second = m.theme.Error.Render(fitLine(m.err.Error(), m.width))
	case m.Message != "":
		second = m.theme.Status.Render(fitLine(m.Message, m.width))
	default:
		second = m.theme.Dim.Render(fitLine(m.keys.Help(), m.width))
	}
	return m.theme.Footer.Render(fitLine(status, m.width)) + "\n" + second
}

func (m DashboardModel) renderModal() string {
	switch m.modal.ActiveModal() {
	case ModalEdit:
		title := "Edit task"
		if st, ok := m.modal.EditState(); ok {
			title = "Edit " + st.TaskID
		}
		return m.edit.View(m.theme, title)
	case ModalHelp:
		return m.renderHelp()
	}
	return ""
}

func (m DashboardModel) renderHelp() string {
	var b strings.Builder
	b.WriteString(m.theme.ModalTitle.Render("Keys"))
	b.WriteString("\n")
	b.WriteString("j/k move  J/K page  h/l pan  g/G first/last\n")
	b.WriteString("1-4 show levels  wheel scrolls the pane under the mouse\n")
	for _, kb := range m.keys.Bindings() {
		if kb.Description == "" {
			continue
		}
		fmt.Fprintf(&b, "%-12s %s\n", strings.Join(kb.Keys, "/"), kb.Description)
	}
	b.WriteString(m.theme.Dim.Render("press any key"))
	return m.theme.Input.Render(b.String())
}

// fitLine truncates or pads s to exactly width cells.
func fitLine(s string, width int) string {
	if width <= 0 {
		return ""
	}
	s = ansi.Truncate(s, width, config.TruncationSuffix)
	if w := ansi.StringWidth(s); w < width {
		s += strings.Repeat(" ", width-w)
	}
	return s
}

// joinColumns puts left and right side by side with a divider, n lines tall.
func joinColumns(left, right []string, n, leftWidth int) string {
	lines := make([]string, n)
	for i := range lines {
		l := strings.Repeat(" ", leftWidth)
		if i < len(left) {
			l = left[i]
		}
		r := ""
		if i < len(right) {
			r = right[i]
		}
		lines[i] = l + divider + r
	}
	return strings.Join(lines, "\n")
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

// padLines appends pad blank cells to every line.
func padLines(s string, pad int) string {
	if pad <= 0 || s == "" {
		return s
	}
	fill := strings.Repeat(" ", pad)
	lines := strings.Split(s, "\n")
	for i := range lines {
		lines[i] += fill
	}
	return strings.Join(lines, "\n")
}

// appendColumn adds col(i) to the end of line i.
func appendColumn(s string, col func(int) string) string {
	lines := strings.Split(s, "\n")
	for i := range lines {
		lines[i] += col(i)
	}
	return strings.Join(lines, "\n")
}
