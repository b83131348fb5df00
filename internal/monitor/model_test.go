package monitor

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rdeckard/sysmon/internal/logger"
)

func testModel(src Source, opts Options) Model {
	if opts.Refresh == 0 {
		opts.Refresh = time.Second
	}
	return NewModel(NewCollector(src, logger.Noop()), opts)
}

func TestQuitKeys(t *testing.T) {
	for _, keys := range []string{"q", "esc", "ctrl+c"} {
		t.Run(keys, func(t *testing.T) {
			m := testModel(&stubSource{}, allOptions())

			var msg tea.KeyMsg
			switch keys {
			case "q":
				msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}
			case "esc":
				msg = tea.KeyMsg{Type: tea.KeyEsc}
			case "ctrl+c":
				msg = tea.KeyMsg{Type: tea.KeyCtrlC}
			}

			updated, cmd := m.Update(msg)
			require.NotNil(t, cmd)
			assert.Equal(t, tea.Quit(), cmd())
			assert.True(t, updated.(Model).quitting)
			assert.Empty(t, updated.(Model).View())
		})
	}
}

func TestUnboundKeyIsIgnored(t *testing.T) {
	m := testModel(&stubSource{}, allOptions())

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})

	assert.Nil(t, cmd)
	assert.False(t, updated.(Model).quitting)
}

func TestTickTriggersCollect(t *testing.T) {
	src := &stubSource{cpu: CPUStats{Percent: 10}}
	m := testModel(src, allOptions())

	_, cmd := m.Update(tickMsg(time.Now()))
	require.NotNil(t, cmd)

	msg := cmd()
	sample, ok := msg.(sampleMsg)
	require.True(t, ok)
	assert.False(t, sample.manual)
	assert.Equal(t, 10.0, sample.sample.CPU.Percent)
	assert.Equal(t, 1, src.cpuCalls)
}

func TestRefreshKeyDoesNotForkTickChain(t *testing.T) {
	src := &stubSource{}
	m := testModel(src, allOptions())

	// The regular chain: a tick's sample schedules the next tick.
	_, cmd := m.Update(tickMsg(time.Now()))
	require.NotNil(t, cmd)
	updated, next := m.Update(cmd().(sampleMsg))
	assert.NotNil(t, next)
	m = updated.(Model)

	// A manual refresh collects immediately but must not schedule
	// another tick; otherwise every press adds a parallel chain.
	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	require.NotNil(t, cmd)

	sample, ok := cmd().(sampleMsg)
	require.True(t, ok)
	assert.True(t, sample.manual)

	updated, next = m.Update(sample)
	assert.Nil(t, next)
	require.NotNil(t, updated.(Model).sample)
}

func TestSampleComputesRates(t *testing.T) {
	m := testModel(&stubSource{}, allOptions())
	now := time.Now()

	m.baseline = Baseline{
		Network: NetworkStats{ReceivedBytes: 1000, SentBytes: 500},
		Time:    now.Add(-2 * time.Second),
	}

	sample := Sample{
		Timestamp: now,
		Network:   NetworkStats{ReceivedBytes: 3000, SentBytes: 1500},
	}
	updated, cmd := m.Update(sampleMsg{sample: sample})
	require.NotNil(t, cmd) // next tick gets scheduled

	got := updated.(Model)
	assert.InDelta(t, 1000, got.rxRate, 0.5)
	assert.InDelta(t, 500, got.txRate, 0.5)
	assert.Equal(t, sample.Network, got.baseline.Network)
	assert.Equal(t, now, got.baseline.Time)
	require.NotNil(t, got.sample)
}

func TestSampleWithoutBaselineUsesRefreshInterval(t *testing.T) {
	m := testModel(&stubSource{}, Options{Network: true, Refresh: 2 * time.Second})

	sample := Sample{
		Timestamp: time.Now(),
		Network:   NetworkStats{ReceivedBytes: 4000, SentBytes: 2000},
	}
	updated, _ := m.Update(sampleMsg{sample: sample})

	// Zero baseline counters and a synthetic 2s interval.
	got := updated.(Model)
	assert.InDelta(t, 2000, got.rxRate, 0.5)
	assert.InDelta(t, 1000, got.txRate, 0.5)
}

func TestCounterResetClampsRatesToZero(t *testing.T) {
	m := testModel(&stubSource{}, allOptions())
	now := time.Now()

	m.baseline = Baseline{
		Network: NetworkStats{ReceivedBytes: 5000, SentBytes: 5000},
		Time:    now.Add(-time.Second),
	}

	updated, _ := m.Update(sampleMsg{sample: Sample{
		Timestamp: now,
		Network:   NetworkStats{ReceivedBytes: 100, SentBytes: 100},
	}})

	got := updated.(Model)
	assert.Zero(t, got.rxRate)
	assert.Zero(t, got.txRate)
}

func TestBaselineMsgSeedsBaseline(t *testing.T) {
	m := testModel(&stubSource{}, allOptions())
	at := time.Now()

	updated, cmd := m.Update(baselineMsg{
		network: NetworkStats{ReceivedBytes: 42, SentBytes: 7},
		at:      at,
	})

	assert.Nil(t, cmd)
	got := updated.(Model)
	assert.Equal(t, uint64(42), got.baseline.Network.ReceivedBytes)
	assert.Equal(t, at, got.baseline.Time)
}

func TestWindowSizeStored(t *testing.T) {
	m := testModel(&stubSource{}, allOptions())

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	got := updated.(Model)
	assert.Equal(t, 120, got.width)
	assert.Equal(t, 40, got.height)
}

func TestInitSchedulesBaselineOnlyWithNetwork(t *testing.T) {
	withNet := testModel(&stubSource{}, allOptions())
	assert.NotNil(t, withNet.Init())

	withoutNet := testModel(&stubSource{}, Options{CPU: true})
	assert.NotNil(t, withoutNet.Init())
}
