package generation

import (
	"sync"
	"time"

	"github.com/loganmatson/playbook/internal/constants"
)

// progressTracker drives a time-based progress estimate for a running
// generation request. The value climbs one point per tick up to the
// ceiling, then holds; finish jumps it to done regardless of where the
// climb got to. Every update is pushed through onProgress.
type progressTracker struct {
	mu       sync.Mutex
	value    int
	finished bool

	onProgress func(int)
	ticker     *time.Ticker
	stop       chan struct{}
	stopped    chan struct{}
}

func newProgressTracker(interval time.Duration, onProgress func(int)) *progressTracker {
	if interval <= 0 {
		interval = constants.ProgressTickInterval
	}
	if onProgress == nil {
		onProgress = func(int) {}
	}
	t := &progressTracker{
		onProgress: onProgress,
		ticker:     time.NewTicker(interval),
		stop:       make(chan struct{}),
		stopped:    make(chan struct{}),
	}
	go t.run()
	return t
}

func (t *progressTracker) run() {
	defer close(t.stopped)
	for {
		select {
		case <-t.ticker.C:
			t.tick()
		case <-t.stop:
			return
		}
	}
}

func (t *progressTracker) tick() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.finished || t.value >= constants.ProgressCeiling {
		return
	}
	t.value += constants.ProgressStep
	if t.value > constants.ProgressCeiling {
		t.value = constants.ProgressCeiling
	}
	t.onProgress(t.value)
}

// finish stops the climb and forces the value to done. Idempotent, so it
// is safe to defer on every exit path.
func (t *progressTracker) finish() {
	t.mu.Lock()
	if t.finished {
		t.mu.Unlock()
		return
	}
	t.finished = true
	t.value = constants.ProgressDone
	t.onProgress(t.value)
	t.mu.Unlock()

	t.ticker.Stop()
	close(t.stop)
	<-t.stopped
}

// Value returns the current progress estimate.
func (t *progressTracker) Value() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.value
}
