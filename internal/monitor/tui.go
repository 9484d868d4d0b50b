package monitor

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"golang.org/x/term"
)

const maxDashboardLogLines = 1000

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	footerStyle = lipgloss.NewStyle().Faint(true)
	tableStyle  = lipgloss.NewStyle().BorderStyle(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("240"))
)

// pollMsg triggers a tail poll cycle.
type pollMsg struct{}

// Dashboard is a full-screen terminal view over the event log: a per-path
// stats table on top, the scrolling event stream below.
type Dashboard struct {
	tailer   *Tailer
	interval time.Duration
}

// NewDashboard creates a dashboard following the given log file.
func NewDashboard(tailer *Tailer, interval time.Duration) *Dashboard {
	if interval <= 0 {
		interval = time.Second
	}
	return &Dashboard{tailer: tailer, interval: interval}
}

// Run starts the bubbletea program and blocks until the user quits.
func (d *Dashboard) Run() error {
	m := newDashModel(d.tailer, d.interval)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

type dashModel struct {
	tailer   *Tailer
	interval time.Duration
	stats    *Stats

	table      table.Model
	vp         viewport.Model
	logs       []string
	wrap       bool
	autoscroll bool
	width      int
	height     int
}

func newDashModel(tailer *Tailer, interval time.Duration) dashModel {
	cols := []table.Column{
		{Title: "Path", Width: 36},
		{Title: "Legit ok", Width: 10},
		{Title: "Held", Width: 6},
		{Title: "Blocked", Width: 8},
		{Title: "Rogue thru", Width: 11},
		{Title: "Rogue blk", Width: 10},
		{Title: "Avg RTT", Width: 9},
	}
	t := table.New(table.WithColumns(cols), table.WithHeight(4))

	// Size before the first WindowSizeMsg arrives.
	w, h, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		w, h = 100, 30
	}
	vp := viewport.New(w, h-10)

	return dashModel{
		tailer:     tailer,
		interval:   interval,
		stats:      NewStats(),
		table:      t,
		vp:         vp,
		autoscroll: true,
		width:      w,
		height:     h,
	}
}

func (m dashModel) Init() tea.Cmd {
	return m.schedulePoll()
}

func (m dashModel) schedulePoll() tea.Cmd {
	return tea.Tick(m.interval, func(time.Time) tea.Msg { return pollMsg{} })
}

func (m dashModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.vp.Width = msg.Width
		m.resize()
		m.refreshViewport()
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "w":
			m.wrap = !m.wrap
			m.refreshViewport()
		case "s":
			m.autoscroll = !m.autoscroll
			if m.autoscroll {
				m.vp.GotoBottom()
			}
		case "j", "down":
			m.vp.LineDown(1)
		case "k", "up":
			m.vp.LineUp(1)
		case "pgdown":
			m.vp.LineDown(10)
		case "pgup":
			m.vp.LineUp(10)
		}
	case pollMsg:
		events, err := m.tailer.Poll()
		if err != nil {
			m.logs = append(m.logs, footerStyle.Render("tail error: "+err.Error()))
		}
		for _, e := range events {
			m.stats.Observe(e)
			m.logs = append(m.logs, RenderLine(e))
		}
		if len(m.logs) > maxDashboardLogLines {
			m.logs = m.logs[len(m.logs)-maxDashboardLogLines:]
		}
		m.refreshTable()
		m.resize()
		m.refreshViewport()
		return m, m.schedulePoll()
	}
	return m, nil
}

func (m *dashModel) refreshTable() {
	var rows []table.Row
	for _, p := range m.stats.Paths() {
		rows = append(rows, table.Row{
			p.Source + " -> " + p.Destination,
			fmt.Sprintf("%d/%d", p.LegitSuccesses, p.LegitAttempts),
			fmt.Sprintf("%d", p.LegitHeld),
			fmt.Sprintf("%d", p.LegitBlocked),
			fmt.Sprintf("%d/%d", p.RogueBreaches, p.RogueAttempts),
			fmt.Sprintf("%d", p.RogueBlocked),
			fmt.Sprintf("%.1fms", p.AvgLatencyMS()),
		})
	}
	m.table.SetRows(rows)
	h := len(rows) + 1
	if h < 2 {
		h = 2
	}
	if h > 8 {
		h = 8
	}
	m.table.SetHeight(h)
}

func (m *dashModel) resize() {
	header := m.renderHeader()
	used := lipgloss.Height(header) + lipgloss.Height(tableStyle.Render(m.table.View())) + 2
	h := m.height - used
	if h < 3 {
		h = 3
	}
	m.vp.Height = h
}

func (m *dashModel) refreshViewport() {
	var lines []string
	for _, l := range m.logs {
		if m.wrap {
			lines = append(lines, wordwrap.String(l, m.vp.Width))
		} else {
			lines = append(lines, l)
		}
	}
	m.vp.SetContent(strings.Join(lines, "\n"))
	if m.autoscroll {
		m.vp.GotoBottom()
	}
}

func (m dashModel) renderHeader() string {
	title := headerStyle.Render("zonegate-sim — segmentation dashboard")
	info := footerStyle.Render(fmt.Sprintf("  offset %d, %d malformed skipped", m.tailer.Offset(), m.tailer.Skipped()))
	return title + info
}

func (m dashModel) View() string {
	footer := footerStyle.Render("q quit · w wrap · s autoscroll · j/k scroll")
	return strings.Join([]string{
		m.renderHeader(),
		tableStyle.Render(m.table.View()),
		m.vp.View(),
		footer,
	}, "\n")
}
