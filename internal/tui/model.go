// SPDX-License-Identifier: MIT
package tui

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"spectrum/internal/clock"
	"spectrum/internal/display"
	"spectrum/internal/input"
)

// RefreshInterval matches the status bar refresh of the acquisition loop.
const RefreshInterval = 50 * time.Millisecond

const (
	defaultWidth = 80
	graphHeight  = 8
)

var (
	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFDF5")).
			Background(lipgloss.Color("#25A065")).
			Padding(0, 1).
			Bold(true)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#25A065")).
			Bold(true)

	freqStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F25D94"))
	timeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F2C94C"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFDF5"))

	logStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#767676"))
)

// KeyMap binds the two front-panel buttons and quit.
type KeyMap struct {
	Acquisition key.Binding
	Source      key.Binding
	Quit        key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Acquisition: key.NewBinding(key.WithKeys("a", " "), key.WithHelp("a", "start/stop")),
		Source:      key.NewBinding(key.WithKeys("s", "tab"), key.WithHelp("s", "source")),
		Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(RefreshInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Model shows the sink's latest frame. Key presses are button edges: they
// go through the same debounce as the hardware pins.
type Model struct {
	sink    *Sink
	buttons input.Buttons
	clk     clock.Clock
	keys    KeyMap
	snap    Snapshot
	width   int
}

func NewModel(sink *Sink, buttons input.Buttons, clk clock.Clock) Model {
	return Model{
		sink:    sink,
		buttons: buttons,
		clk:     clk,
		keys:    DefaultKeyMap(),
		snap:    sink.Snapshot(),
		width:   defaultWidth,
	}
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = max(msg.Width, 20)

	case tickMsg:
		m.snap = m.sink.Snapshot()
		return m, tick()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Acquisition):
			m.buttons.Acquisition.Press(m.clk)
		case key.Matches(msg, m.keys.Source):
			m.buttons.Source.Press(m.clk)
		}
	}
	return m, nil
}

func (m Model) View() string {
	var sb strings.Builder

	cells := make([]string, 0, display.NumStatusFields)
	for _, text := range m.snap.Status {
		if text == "" {
			text = "-"
		}
		cells = append(cells, statusStyle.Render(text))
	}
	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	sb.WriteString("\n\n")

	sb.WriteString(labelStyle.Render("Spectrum"))
	sb.WriteString("\n")
	sb.WriteString(freqStyle.Render(Chart(m.snap.Freq[:m.snap.FreqCount], 0, 4, m.width, graphHeight)))
	sb.WriteString("\n\n")

	sb.WriteString(labelStyle.Render(fmt.Sprintf("Signal  [%.1f, %.1f] step %.1f", m.snap.YMin, m.snap.YMax, m.snap.YInc)))
	sb.WriteString("\n")
	sb.WriteString(timeStyle.Render(Chart(m.snap.Time[:m.snap.TimeCount], m.snap.YMin, m.snap.YMax, m.width, graphHeight)))
	sb.WriteString("\n\n")

	for _, line := range m.snap.Log {
		sb.WriteString(logStyle.Render(line))
		sb.WriteString("\n")
	}

	help := fmt.Sprintf("%s: %s • %s: %s • %s: %s",
		m.keys.Acquisition.Help().Key, m.keys.Acquisition.Help().Desc,
		m.keys.Source.Help().Key, m.keys.Source.Help().Desc,
		m.keys.Quit.Help().Key, m.keys.Quit.Help().Desc)
	sb.WriteString(infoStyle.Render(help))

	return sb.String()
}

var blocks = []rune(" ▁▂▃▄▅▆▇█")

// Chart draws values as a bar chart width columns wide and height rows
// tall, with lo at the bottom row and hi at the top. Each column shows the
// largest value of the points that fall into it.
func Chart(values []float64, lo, hi float64, width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	span := hi - lo
	if span <= 0 {
		span = 1
	}

	eighths := make([]int, width)
	if n := len(values); n > 0 {
		cols := min(width, n)
		for c := range cols {
			from, to := c*n/cols, (c+1)*n/cols
			peak := math.Inf(-1)
			for _, v := range values[from:to] {
				peak = math.Max(peak, v)
			}
			level := (peak - lo) / span * float64(height*8)
			eighths[c] = int(math.Round(math.Max(0, math.Min(level, float64(height*8)))))
		}
	}

	rows := make([]string, height)
	line := make([]rune, width)
	for r := range height {
		base := (height - 1 - r) * 8
		for c, e := range eighths {
			line[c] = blocks[min(max(e-base, 0), 8)]
		}
		rows[r] = string(line)
	}
	return strings.Join(rows, "\n")
}

// Run shows m until the user quits or ctx is cancelled.
func Run(ctx context.Context, m Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
