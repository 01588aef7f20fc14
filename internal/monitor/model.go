// Package monitor implements the live dashboard: a Bubble Tea model
// that polls a variable source on an interval and renders the latest
// readings as KPI cells, a table, and a time-series chart.
package monitor

import (
	"context"
	"sort"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/robotops/ro1mon/internal/sdk"
	"github.com/robotops/ro1mon/internal/source"
)

// minPollTimeout is the floor for per-tick poll deadlines; short
// refresh intervals still get a sane network timeout.
const minPollTimeout = 3 * time.Second

// Width breakpoints for layout modes
const (
	BreakpointCompact  = 80
	BreakpointStandard = 120
)

// HeightMinimal is the minimum terminal height for the footer.
const HeightMinimal = 20

// Model is the Bubble Tea model for the monitoring dashboard.
type Model struct {
	src      source.Source
	history  *History
	interval time.Duration

	variables []string // display order after sorting
	baseOrder []string // poll order, the default sort
	latest    source.Sample

	status    sdk.Status
	hasStatus bool
	connected bool
	errText   string // last poll error, shown inline

	running   bool // run/stop flag, toggled with space
	polling   bool // a poll command is in flight
	selected  int
	sortOrder SortOrder
	showHelp  bool
	quitting  bool

	width      int
	height     int
	lastUpdate time.Time
}

// tickMsg signals a periodic refresh.
type tickMsg time.Time

// sampleMsg carries one poll result back into the update loop.
type sampleMsg struct {
	sample    source.Sample
	status    sdk.Status
	hasStatus bool
	err       error
	time      time.Time
}

// NewModel creates a dashboard model polling src every interval,
// keeping historySize samples. Polling starts immediately.
func NewModel(src source.Source, interval time.Duration, historySize int) Model {
	return Model{
		src:      src,
		history:  NewHistory(historySize),
		interval: interval,
		running:  true,
		selected: 0,
	}
}

// Init starts the tick timer and triggers the first poll.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.tickCmd(), m.pollCmd())
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		handled, cmd := m.HandleKeyMsg(msg)
		if handled {
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tickMsg:
		if m.running && !m.polling {
			return m, tea.Batch(m.tickCmd(), m.pollCmd())
		}
		return m, m.tickCmd()

	case sampleMsg:
		m.polling = false
		m.lastUpdate = msg.time

		if msg.err != nil {
			// Show the error inline and keep ticking; the next poll
			// may succeed.
			m.connected = false
			m.errText = msg.err.Error()
			return m, nil
		}

		m.connected = true
		m.errText = ""
		m.latest = msg.sample
		m.history.Push(msg.sample)
		m.status = msg.status
		m.hasStatus = msg.hasStatus

		if !sameNames(m.baseOrder, msg.sample.Names) {
			m.baseOrder = append([]string(nil), msg.sample.Names...)
		}
		m.sortVariables()
	}

	return m, nil
}

// View renders the dashboard.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	return m.renderDashboard()
}

// tickCmd returns a command that sends a tick after the refresh
// interval.
func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// pollCmd returns a command that reads one sample from the source.
// The receiver is a value, so the in-flight flag is set on the copy
// Bubble Tea keeps; sampleMsg clears it.
func (m *Model) pollCmd() tea.Cmd {
	m.polling = true
	src := m.src
	timeout := m.interval
	if timeout < minPollTimeout {
		timeout = minPollTimeout
	}

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		sample, err := src.Read(ctx)
		msg := sampleMsg{sample: sample, err: err, time: time.Now()}
		if err != nil {
			return msg
		}

		// Only the SDK transport reports control state; the header
		// degrades gracefully for the others.
		if sr, ok := src.(source.StatusReporter); ok {
			if st, serr := sr.Status(ctx); serr == nil {
				msg.status = st
				msg.hasStatus = true
			}
		}
		return msg
	}
}

// Running reports whether the poll loop is active.
func (m Model) Running() bool {
	return m.running
}

// SelectedVariable returns the name of the highlighted table row.
func (m Model) SelectedVariable() string {
	if m.selected >= 0 && m.selected < len(m.variables) {
		return m.variables[m.selected]
	}
	return ""
}

// SecondsSinceUpdate returns how long ago the last poll finished.
func (m Model) SecondsSinceUpdate() int {
	if m.lastUpdate.IsZero() {
		return 0
	}
	return int(time.Since(m.lastUpdate).Seconds())
}

// sortVariables orders the table rows by the current sort order,
// preserving the selected variable across re-sorts.
func (m *Model) sortVariables() {
	selected := m.SelectedVariable()

	m.variables = append(m.variables[:0], m.baseOrder...)

	switch m.sortOrder {
	case SortByName:
		sort.Strings(m.variables)

	case SortByValue:
		// Descending by numeric value; non-numeric rows go last in
		// name order.
		sort.SliceStable(m.variables, func(i, j int) bool {
			vi, oki := m.latest.Get(m.variables[i]).Numeric()
			vj, okj := m.latest.Get(m.variables[j]).Numeric()
			if oki != okj {
				return oki
			}
			if !oki {
				return m.variables[i] < m.variables[j]
			}
			return vi > vj
		})
	}

	if selected != "" {
		for i, name := range m.variables {
			if name == selected {
				m.selected = i
				return
			}
		}
	}
	if m.selected >= len(m.variables) {
		m.selected = len(m.variables) - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

// sameNames reports whether two name lists match element-wise.
func sameNames(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
