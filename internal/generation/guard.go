package generation

import "sync"

// inFlightGuard tracks outstanding request keys so duplicate triggers can
// be rejected instead of spawning concurrent calls.
type inFlightGuard struct {
	mu   *sync.Mutex
	keys map[string]bool
}

func newInFlightGuard() inFlightGuard {
	return inFlightGuard{
		mu:   &sync.Mutex{},
		keys: make(map[string]bool),
	}
}

// acquire marks key as in flight. It returns false if key already is.
func (g inFlightGuard) acquire(key string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.keys[key] {
		return false
	}
	g.keys[key] = true
	return true
}

func (g inFlightGuard) release(key string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.keys, key)
}
