package dosing

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tickSink struct {
	mu    sync.Mutex
	ticks []Tick
	ch    chan Tick
}

func newTickSink() *tickSink {
	return &tickSink{ch: make(chan Tick, 64)}
}

func (s *tickSink) fn(tk Tick) {
	s.mu.Lock()
	s.ticks = append(s.ticks, tk)
	s.mu.Unlock()
	select {
	case s.ch <- tk:
	default:
	}
}

func (s *tickSink) wait(t *testing.T, match func(Tick) bool) Tick {
	t.Helper()
	timeout := time.After(2 * time.Second)
	for {
		select {
		case tk := <-s.ch:
			if match(tk) {
				return tk
			}
		case <-timeout:
			t.Fatalf("no matching tick after 2s")
			return Tick{}
		}
	}
}

func TestFormatRemaining(t *testing.T) {
	assert.Equal(t, "2h 5m", FormatRemaining(2*time.Hour+5*time.Minute+30*time.Second))
	assert.Equal(t, "4m 30s", FormatRemaining(4*time.Minute+30*time.Second))
	assert.Equal(t, "0m 1s", FormatRemaining(time.Second))
	assert.Equal(t, DueNowLabel, FormatRemaining(0))
}

func TestCountdown_ReachesDueAndStops(t *testing.T) {
	sink := newTickSink()
	c := StartCountdown("m0-d0-x", time.Now().Add(30*time.Millisecond), 5*time.Millisecond, nil, sink.fn)

	tk := sink.wait(t, func(tk Tick) bool { return tk.Due })
	assert.Equal(t, DueNowLabel, tk.Label)
	assert.Equal(t, "m0-d0-x", tk.DoseID)

	select {
	case <-c.Done():
	case <-time.After(time.Second):
		t.Fatal("countdown did not stop after due")
	}
	c.Stop() // idempotente tras terminar sola
}

func TestCountdown_StopCancels(t *testing.T) {
	sink := newTickSink()
	c := StartCountdown("m0-d1-x", time.Now().Add(time.Hour), 5*time.Millisecond, nil, sink.fn)

	first := sink.wait(t, func(Tick) bool { return true })
	assert.False(t, first.Due)
	assert.Contains(t, first.Label, "m")

	c.Stop()
	c.Stop()

	sink.mu.Lock()
	n := len(sink.ticks)
	sink.mu.Unlock()
	time.Sleep(20 * time.Millisecond)
	sink.mu.Lock()
	defer sink.mu.Unlock()
	require.Equal(t, n, len(sink.ticks), "no ticks after Stop")
}

func TestCountdown_PastTargetIsImmediatelyDue(t *testing.T) {
	sink := newTickSink()
	c := StartCountdown("x", time.Now().Add(-time.Minute), time.Hour, nil, sink.fn)
	<-c.Done()
	require.Len(t, sink.ticks, 1)
	assert.True(t, sink.ticks[0].Due)
}
