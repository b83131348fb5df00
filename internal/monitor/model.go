package monitor

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

type tickMsg time.Time

type sampleMsg struct {
	sample Sample

	// manual marks a sample requested by the refresh key. Only samples
	// from the tick chain schedule the next tick; a manual sample doing
	// so would add a second, permanent chain.
	manual bool
}

type baselineMsg struct {
	network NetworkStats
	at      time.Time
}

// Model drives the dashboard loop: a baseline network reading on startup,
// then one collect per tick. Keyboard events are handled between renders,
// never during one, so a quit takes effect at the next update at the
// latest.
type Model struct {
	opts      Options
	collector *Collector

	sample   *Sample
	baseline Baseline
	rxRate   float64
	txRate   float64

	width    int
	height   int
	quitting bool
}

func NewModel(collector *Collector, opts Options) Model {
	return Model{opts: opts, collector: collector}
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.tickCmd()}
	if m.opts.Network {
		cmds = append(cmds, m.baselineCmd())
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case baselineMsg:
		m.baseline = Baseline{Network: msg.network, Time: msg.at}
		return m, nil

	case tickMsg:
		return m, m.collectCmd(false)

	case sampleMsg:
		m.applySample(msg.sample)
		if msg.manual {
			return m, nil
		}
		return m, m.tickCmd()
	}

	return m, nil
}

// applySample installs a fresh sample and derives the network rates from
// the previous baseline. Counters that went backwards (interface reset,
// counter wrap) clamp to zero inside Rate.
func (m *Model) applySample(sample Sample) {
	if m.opts.Network {
		elapsed := sample.Timestamp.Sub(m.baseline.Time).Seconds()
		if m.baseline.Time.IsZero() || elapsed <= 0 {
			elapsed = m.opts.Refresh.Seconds()
		}
		m.rxRate = Rate(m.baseline.Network.ReceivedBytes, sample.Network.ReceivedBytes, elapsed)
		m.txRate = Rate(m.baseline.Network.SentBytes, sample.Network.SentBytes, elapsed)
		m.baseline = Baseline{Network: sample.Network, Time: sample.Timestamp}
	}
	m.sample = &sample
}

func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(m.opts.Refresh, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) collectCmd(manual bool) tea.Cmd {
	return func() tea.Msg {
		return sampleMsg{
			sample: m.collector.Collect(context.Background(), m.opts),
			manual: manual,
		}
	}
}

func (m Model) baselineCmd() tea.Cmd {
	return func() tea.Msg {
		netStats, err := m.collector.source.Network(context.Background())
		if err != nil {
			netStats = NetworkStats{}
		}
		return baselineMsg{network: netStats, at: time.Now()}
	}
}
