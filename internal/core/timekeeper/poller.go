package timekeeper

import (
	"context"
	"sync/atomic"
	"time"
)

// DefaultTickInterval is the display refresh period.
const DefaultTickInterval = 200 * time.Millisecond

// Dispatcher runs fn on the goroutine that owns the application state.
type Dispatcher func(fn func())

// Config contains runtime options for the Poller.
type Config struct {
	TickInterval time.Duration
	Dispatch     Dispatcher
	Now          func() time.Time
}

// Poller delivers periodic ticks to the owning goroutine. At most one tick
// is pending at a time, and no tick is delivered after Stop returns when Stop
// is called from the owning goroutine.
type Poller struct {
	options Config
	onTick  func(time.Time)
	cancel  context.CancelFunc
}

// NewPoller creates a stopped Poller.
func NewPoller(options Config, onTick func(time.Time)) *Poller {
	if options.TickInterval <= 0 {
		options.TickInterval = DefaultTickInterval
	}
	if options.Dispatch == nil {
		options.Dispatch = func(fn func()) { fn() }
	}
	if options.Now == nil {
		options.Now = time.Now
	}
	return &Poller{options: options, onTick: onTick}
}

// Start launches the ticking loop, replacing any previous one.
func (poller *Poller) Start() {
	poller.Stop()
	ctx, cancel := context.WithCancel(context.Background())
	poller.cancel = cancel
	go poller.run(ctx, new(atomic.Bool))
}

// Stop cancels the ticking loop. It is safe to call when stopped.
func (poller *Poller) Stop() {
	if poller.cancel == nil {
		return
	}
	poller.cancel()
	poller.cancel = nil
}

// Active reports whether a loop is running.
func (poller *Poller) Active() bool {
	return poller.cancel != nil
}

func (poller *Poller) run(ctx context.Context, pending *atomic.Bool) {
	ticker := time.NewTicker(poller.options.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !pending.CompareAndSwap(false, true) {
				continue
			}
			poller.options.Dispatch(func() {
				defer pending.Store(false)
				if ctx.Err() != nil {
					return
				}
				poller.onTick(poller.options.Now())
			})
		}
	}
}
