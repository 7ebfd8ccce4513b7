package trace

import (
	"fmt"
	"sync"
	"time"
)

// Heartbeat emits a driver-scope event at a fixed interval. A run of
// heartbeats with no span ends between them points at a file that hangs.
type Heartbeat struct {
	tracer Tracer
	start  time.Time
	ticker *time.Ticker
	done   chan struct{}
	wg     sync.WaitGroup
	once   sync.Once
}

// StartHeartbeat returns nil when the tracer is disabled or interval <= 0;
// Stop on a nil Heartbeat is a no-op.
func StartHeartbeat(tracer Tracer, interval time.Duration) *Heartbeat {
	if tracer == nil || !tracer.Enabled() || interval <= 0 {
		return nil
	}
	h := &Heartbeat{
		tracer: tracer,
		start:  time.Now(),
		ticker: time.NewTicker(interval),
		done:   make(chan struct{}),
	}
	h.wg.Add(1)
	go h.loop()
	return h
}

func (h *Heartbeat) loop() {
	defer h.wg.Done()
	for beat := 1; ; beat++ {
		select {
		case now := <-h.ticker.C:
			ev := newEvent(KindHeartbeat, ScopeDriver, "heartbeat")
			ev.Detail = fmt.Sprintf("#%d +%s", beat, now.Sub(h.start).Round(time.Millisecond))
			h.tracer.Emit(ev)
		case <-h.done:
			return
		}
	}
}

// Stop ends the heartbeat goroutine and waits for it.
func (h *Heartbeat) Stop() {
	if h == nil {
		return
	}
	h.once.Do(func() {
		h.ticker.Stop()
		close(h.done)
		h.wg.Wait()
	})
}
