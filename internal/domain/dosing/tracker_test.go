package dosing

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTracker_CountdownFollowsNextDose(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, time.June, 1, 10, 0, 0, 0, time.UTC)
	s := newTestScheduler(newTestRepo(), now, WithTick(5*time.Millisecond))
	sched := testSchedule(ivermectin())
	sink := newTickSink()

	tr, err := s.Open(ctx, sched, sched.StartDate, sink.fn)
	require.NoError(t, err)
	defer tr.Close()

	v := tr.View()
	require.NotNil(t, v.Next)
	assert.Equal(t, "13:00", v.Next.Time)

	tk := sink.wait(t, func(tk Tick) bool { return tk.DoseID == v.Next.ID })
	assert.Equal(t, "3h 0m", tk.Label)

	// marcar la dosis de las 13:00 mueve el countdown a la de las 18:00
	v, err = tr.MarkTaken(ctx, v.Next.ID)
	require.NoError(t, err)
	require.NotNil(t, v.Next)
	assert.Equal(t, "18:00", v.Next.Time)

	tk = sink.wait(t, func(tk Tick) bool { return tk.DoseID == v.Next.ID })
	assert.Equal(t, "8h 0m", tk.Label)
}

func TestTracker_NoCountdownForOtherDays(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, time.June, 1, 10, 0, 0, 0, time.UTC)
	s := newTestScheduler(newTestRepo(), now, WithTick(time.Millisecond))
	sched := testSchedule(ivermectin())
	sink := newTickSink()

	tr, err := s.Open(ctx, sched, sched.StartDate.AddDays(1), sink.fn)
	require.NoError(t, err)
	defer tr.Close()

	v := tr.View()
	require.NotNil(t, v.Next)
	assert.Equal(t, "08:00", v.Next.Time, "first untaken in list order")
	assert.Nil(t, tr.countdown)
}

func TestTracker_AdvanceAndClose(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, time.June, 1, 20, 0, 0, 0, time.UTC)
	s := newTestScheduler(newTestRepo(), now, WithTick(time.Millisecond))
	sched := testSchedule(ivermectin())

	tr, err := s.Open(ctx, sched, sched.StartDate, func(Tick) {})
	require.NoError(t, err)

	for _, d := range tr.View().Doses {
		_, err := tr.MarkTaken(ctx, d.ID)
		require.NoError(t, err)
	}
	assert.Equal(t, StateAdvanceAvailable, tr.View().State)

	_, err = tr.AdvanceDay(ctx, map[string][]string{"Ivermectin": {"09:00"}})
	require.Error(t, err)
	assert.Equal(t, sched.StartDate, tr.View().Date, "a rejected advance keeps the view")

	v, err := tr.AdvanceDay(ctx, map[string][]string{"Ivermectin": {"09:00", "14:00", "19:00"}})
	require.NoError(t, err)
	assert.Equal(t, sched.StartDate.AddDays(1), v.Date)
	assert.Equal(t, StateAwaitingDoses, v.State)

	tr.Close()
	_, err = tr.MarkTaken(ctx, v.Doses[0].ID)
	require.ErrorIs(t, err, ErrTrackerClosed)
	tr.Close()
}

func TestTracker_TickCallbackCanReadView(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, time.June, 1, 10, 0, 0, 0, time.UTC)
	s := newTestScheduler(newTestRepo(), now, WithTick(time.Millisecond))
	sched := testSchedule(ivermectin())

	var current atomic.Pointer[Tracker]
	read := make(chan DayView, 64)
	onTick := func(Tick) {
		tr := current.Load()
		if tr == nil {
			return
		}
		select {
		case read <- tr.View():
		default:
		}
	}

	tr, err := s.Open(ctx, sched, sched.StartDate, onTick)
	require.NoError(t, err)
	defer tr.Close()
	current.Store(tr)

	select {
	case <-read:
	case <-time.After(2 * time.Second):
		t.Fatal("no tick read the view after 2s")
	}

	// reemplazar el countdown mientras el callback lee la vista no se bloquea
	done := make(chan error, 1)
	go func() {
		_, err := tr.MarkTaken(ctx, tr.View().Next.ID)
		done <- err
	}()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("MarkTaken did not return while a tick was reading the view")
	}
	assert.Equal(t, "18:00", tr.View().Next.Time)
}
