package dosing

import (
	"fmt"
	"sync"
	"time"
)

const DueNowLabel = "Due now!"

// Tick es una actualización de la cuenta regresiva hacia la próxima dosis.
type Tick struct {
	DoseID    string        `json:"doseId"`
	Remaining time.Duration `json:"remainingNs"`
	Label     string        `json:"label"`
	Due       bool          `json:"due"`
}

// Countdown recalcula el tiempo restante cada `every` en su propia goroutine.
// Al llegar a cero emite un último tick Due y termina sola.
type Countdown struct {
	stop chan struct{}
	done chan struct{}
	once sync.Once
}

// StartCountdown arranca el timer. fn se llama desde la goroutine del countdown
// y no debería bloquear: Stop espera a que fn retorne.
func StartCountdown(doseID string, target time.Time, every time.Duration, now func() time.Time, fn func(Tick)) *Countdown {
	if every <= 0 {
		every = DefaultTick
	}
	if now == nil {
		now = time.Now
	}
	c := &Countdown{
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}
	go c.run(doseID, target, every, now, fn)
	return c
}

func (c *Countdown) run(doseID string, target time.Time, every time.Duration, now func() time.Time, fn func(Tick)) {
	defer close(c.done)

	emit := func() bool {
		remaining := target.Sub(now())
		if remaining <= 0 {
			fn(Tick{DoseID: doseID, Label: DueNowLabel, Due: true})
			return false
		}
		fn(Tick{DoseID: doseID, Remaining: remaining, Label: FormatRemaining(remaining)})
		return true
	}

	if !emit() {
		return
	}

	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			if !emit() {
				return
			}
		}
	}
}

// Stop cancela el timer; es idempotente y espera a que la goroutine termine.
func (c *Countdown) Stop() {
	if c == nil {
		return
	}
	c.once.Do(func() { close(c.stop) })
	<-c.done
}

// Done se cierra cuando la goroutine terminó (por Stop o por llegar a cero).
func (c *Countdown) Done() <-chan struct{} {
	return c.done
}

// FormatRemaining: "Xh Ym" si quedan horas, si no "Ym Zs".
func FormatRemaining(d time.Duration) string {
	if d <= 0 {
		return DueNowLabel
	}
	hours := int(d / time.Hour)
	mins := int(d % time.Hour / time.Minute)
	secs := int(d % time.Minute / time.Second)
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, mins)
	}
	return fmt.Sprintf("%dm %ds", mins, secs)
}
