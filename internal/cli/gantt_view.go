package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/evanmahr/ganttline/internal/domain"
	"github.com/evanmahr/ganttline/internal/gesture"
	"github.com/evanmahr/ganttline/internal/store"
)

const nameColWidth = 26

var (
	titleStyle     = lipgloss.NewStyle().Bold(true)
	axisStyle      = lipgloss.NewStyle().Faint(true)
	groupStyle     = lipgloss.NewStyle().Faint(true)
	barStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	selectedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("213")).Bold(true)
	previewStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	milestoneStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
	statusStyle    = lipgloss.NewStyle().Faint(true)
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

func (m ganttModel) View() string {
	if m.quitting {
		return ""
	}
	if m.form != nil {
		return m.form.View()
	}

	snap := m.app.Store.Snapshot()
	if status, err := m.app.Store.Status(); status == store.StatusFailed {
		return errorStyle.Render("schedule unavailable: "+err.Error()) + "\n"
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title(snap)) + "\n")

	rows := m.rowCache.Rows(snap, snap.Preferences)
	if len(rows) == 0 {
		b.WriteString("no items\n")
		b.WriteString(m.footer())
		return b.String()
	}

	unitDur := snap.Preferences.GridUnit.Duration()
	origin, span := timelineBounds(snap, unitDur)
	barArea := m.width - nameColWidth
	if barArea < 10 {
		barArea = 60
	}
	if span > barArea {
		span = barArea
	}

	b.WriteString(strings.Repeat(" ", nameColWidth) + axisStyle.Render(axis(span)) + "\n")

	preview := make(map[string]domain.Item)
	for _, it := range m.app.Engine.Preview() {
		preview[it.ID] = it
	}

	for i, row := range rows {
		it, ok := snap.Item(row.ItemID)
		if !ok {
			continue
		}
		pending, isPreview := preview[row.ItemID]
		if isPreview {
			it = pending
		}

		marker := "  "
		if i == m.cursor {
			marker = "▸ "
		}
		name := strings.Repeat("  ", row.Depth) + it.Name
		if r := []rune(name); len(r) > nameColWidth-4 {
			name = string(r[:nameColWidth-4])
		}
		line := marker + fmt.Sprintf("%-*s", nameColWidth-2, name)

		style := barStyle
		switch {
		case isPreview:
			style = previewStyle
		case m.app.Selection.Contains(it.ID):
			style = selectedStyle
		}
		line += renderBar(it, origin, unitDur, span, style)
		b.WriteString(line + "\n")
	}

	b.WriteString(m.gestureHint())
	b.WriteString(m.footer())
	return b.String()
}

func (m ganttModel) title(snap domain.Snapshot) string {
	if label, ok := m.app.Labels.Get("breadcrumb"); ok && label != "" {
		return label
	}
	if name := snap.Meta["name"]; name != "" {
		return name
	}
	return "Timeline"
}

// timelineBounds returns the first visible grid unit and the span in units.
func timelineBounds(snap domain.Snapshot, unitDur time.Duration) (time.Time, int) {
	if len(snap.Items) == 0 {
		return time.Time{}, 0
	}
	origin, max := snap.Items[0].Start, snap.Items[0].End
	for _, it := range snap.Items[1:] {
		if it.Start.Before(origin) {
			origin = it.Start
		}
		if it.End.After(max) {
			max = it.End
		}
	}
	origin = origin.Truncate(unitDur)
	span := int(max.Sub(origin)/unitDur) + 2
	return origin, span
}

// axis renders a tick ruler with a unit index every five cells.
func axis(span int) string {
	var b strings.Builder
	for u := 0; u < span; u++ {
		if u%5 == 0 {
			label := fmt.Sprintf("%d", u)
			b.WriteString(label)
			u += len(label) - 1
			continue
		}
		b.WriteString("·")
	}
	return b.String()
}

func renderBar(it domain.Item, origin time.Time, unitDur time.Duration, span int, style lipgloss.Style) string {
	offset := int(it.Start.Sub(origin) / unitDur)
	if offset < 0 {
		offset = 0
	}
	if offset > span {
		offset = span
	}

	if it.Kind == domain.KindMilestone {
		return strings.Repeat(" ", offset) + milestoneStyle.Render("◆")
	}

	length := int(it.End.Sub(it.Start) / unitDur)
	if length < 1 {
		length = 1
	}
	if offset+length > span {
		length = span - offset
	}
	if length < 1 {
		return strings.Repeat(" ", offset)
	}
	return strings.Repeat(" ", offset) + style.Render(strings.Repeat("█", length))
}

func (m ganttModel) gestureHint() string {
	st := m.app.Engine.State()
	if st.Phase == gesture.PhaseIdle {
		return ""
	}
	return statusStyle.Render(fmt.Sprintf("[%s Δ%s]", st.Phase, st.Pending)) + "\n"
}

func (m ganttModel) footer() string {
	help := "↑/↓ move · shift+↑/↓ extend · space toggle · ←/→ nudge · g drag · r/R resize · c connect · e edit · s save · q quit"
	out := statusStyle.Render(help)
	if m.status != "" {
		out = m.status + "\n" + out
	}
	return out + "\n"
}
