package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/slabware/skiphive/hive"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("63")).
			Padding(0, 1)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196"))

	blockLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("75"))

	liveStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("114"))
	erasedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	unusedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// View renders the header, the block map, and the status line.
func (m Model) View() string {
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err))
	}

	header := headerStyle.Render(
		fmt.Sprintf("hive explorer - seed %d - op %d/%d", m.seed, m.cursor, len(m.ops)))

	st := m.h.Stats()
	summary := fmt.Sprintf("len=%d cap=%d blocks=%d unused=%d holes=%d runs=%d",
		st.Len, st.Cap, st.Blocks, st.Unused, st.Holes, st.Runs)
	if m.lastOp != "" {
		summary += "  last: " + m.lastOp
	}

	content := m.renderBlocks()

	status := statusStyle.Render("space/n step - N step x10 - p play/pause - r restart - q quit")

	return lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		summary,
		"",
		content,
		"",
		status,
	)
}

// renderBlocks draws one line per block, slots colored by state.
func (m Model) renderBlocks() string {
	layout := m.h.BlockLayout()
	if len(layout) == 0 {
		return unusedStyle.Render("(no blocks yet - step to begin)")
	}

	rows := make([]string, 0, len(layout))
	maxRows := m.height - 8
	for i, bs := range layout {
		if maxRows > 0 && i >= maxRows {
			rows = append(rows, unusedStyle.Render(
				fmt.Sprintf("... %d more blocks", len(layout)-i)))
			break
		}
		rows = append(rows, m.renderBlockRow(bs))
	}
	return strings.Join(rows, "\n")
}

func (m Model) renderBlockRow(bs hive.BlockStats) string {
	label := blockLabelStyle.Render(
		fmt.Sprintf("block %-3d %4d/%-4d ", bs.Number, bs.Live, bs.Capacity))

	// One cell per slot, width-limited; each cell scales down for wide
	// blocks so a 65k block still fits a terminal row.
	budget := m.width - lipgloss.Width(label) - 2
	if budget < 8 {
		budget = 8
	}
	scale := 1
	if bs.Capacity > budget {
		scale = (bs.Capacity + budget - 1) / budget
	}

	var sb strings.Builder
	for _, run := range bs.Runs {
		cells := (run.Len + scale - 1) / scale
		style := liveStyle
		ch := "#"
		if run.Erased {
			style = erasedStyle
			ch = "."
		}
		sb.WriteString(style.Render(strings.Repeat(ch, cells)))
	}
	if tail := bs.Capacity - bs.LastEndpoint; tail > 0 {
		cells := (tail + scale - 1) / scale
		sb.WriteString(unusedStyle.Render(strings.Repeat("_", cells)))
	}
	return label + "[" + sb.String() + "]"
}
