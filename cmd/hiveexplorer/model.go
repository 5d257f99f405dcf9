package main

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/slabware/skiphive/hive"
	"github.com/slabware/skiphive/internal/workload"
)

// keyMap defines the explorer's keybindings.
type keyMap struct {
	Step    key.Binding
	Step10  key.Binding
	Play    key.Binding
	Restart key.Binding
	Quit    key.Binding
}

var keys = keyMap{
	Step: key.NewBinding(
		key.WithKeys(" ", "n"),
		key.WithHelp("space/n", "step"),
	),
	Step10: key.NewBinding(
		key.WithKeys("N"),
		key.WithHelp("N", "step x10"),
	),
	Play: key.NewBinding(
		key.WithKeys("p"),
		key.WithHelp("p", "play/pause"),
	),
	Restart: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "restart"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// tickMsg drives autoplay.
type tickMsg time.Time

// Model is the bubbletea model: a hive under a scripted workload, plus a
// cursor into the script.
type Model struct {
	h      *hive.Hive[int]
	ops    []workload.Op
	cursor int // next op to apply

	seed               int64
	minBlock, maxBlock int

	playing bool
	lastOp  string
	err     error

	width, height int
}

// NewModel builds the model and its deterministic script.
func NewModel(seed int64, ops, minBlock, maxBlock int) (Model, error) {
	h, err := hive.NewWithLimits[int](minBlock, maxBlock)
	if err != nil {
		return Model{}, err
	}
	return Model{
		h:        h,
		ops:      workload.Script(seed, ops, workload.DefaultProfile),
		seed:     seed,
		minBlock: minBlock,
		maxBlock: maxBlock,
	}, nil
}

func (m Model) Init() tea.Cmd { return nil }

func tick() tea.Cmd {
	return tea.Tick(60*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update handles input and autoplay ticks.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		if !m.playing {
			return m, nil
		}
		m = m.step(1)
		if m.cursor >= len(m.ops) || m.err != nil {
			m.playing = false
			return m, nil
		}
		return m, tick()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, keys.Step):
			return m.step(1), nil
		case key.Matches(msg, keys.Step10):
			return m.step(10), nil
		case key.Matches(msg, keys.Play):
			m.playing = !m.playing
			if m.playing {
				return m, tick()
			}
			return m, nil
		case key.Matches(msg, keys.Restart):
			fresh, err := NewModel(m.seed, len(m.ops), m.minBlock, m.maxBlock)
			if err != nil {
				m.err = err
				return m, nil
			}
			fresh.width, fresh.height = m.width, m.height
			return fresh, nil
		}
	}
	return m, nil
}

// step applies up to n further ops and validates after each.
func (m Model) step(n int) Model {
	for i := 0; i < n && m.cursor < len(m.ops) && m.err == nil; i++ {
		op := m.ops[m.cursor]
		if _, err := workload.Apply(m.h, op); err != nil {
			m.err = fmt.Errorf("op %d (%s): %w", m.cursor, op.Kind, err)
			return m
		}
		if err := m.h.Validate(); err != nil {
			m.err = fmt.Errorf("after op %d (%s): %w", m.cursor, op.Kind, err)
			return m
		}
		m.lastOp = describeOp(op)
		m.cursor++
	}
	return m
}

func describeOp(op workload.Op) string {
	switch op.Kind {
	case workload.Insert:
		return fmt.Sprintf("insert %d", op.Value)
	case workload.InsertFill:
		return fmt.Sprintf("insert-fill %d x %d", op.Value, op.N)
	case workload.Erase:
		return fmt.Sprintf("erase @%d", op.Pos)
	case workload.EraseRange:
		return fmt.Sprintf("erase-range @%d +%d", op.Pos, op.N)
	case workload.Reserve:
		return fmt.Sprintf("reserve +%d", op.N)
	default:
		return op.Kind.String()
	}
}
