package vault

import (
	"errors"
	"fmt"
	"sync"
)

// Action names one user-triggered vault operation. Each action moves
// idle -> busy -> idle; re-entrant submission while busy is rejected.
type Action string

const (
	ActionRefresh  Action = "refresh"
	ActionUpload   Action = "upload"
	ActionUpdate   Action = "update"
	ActionDelete   Action = "delete"
	ActionDownload Action = "download"
)

// ErrBusy is returned when an action is submitted while a previous
// submission of the same action is still in flight.
var ErrBusy = errors.New("action already in progress")

// busyGuard tracks the per-action busy state. Different actions may run
// concurrently; the same action may not.
type busyGuard struct {
	mu   sync.Mutex
	busy map[Action]bool
}

// acquire marks the action busy and returns its release. Release is safe to
// call exactly once and must run on every exit path, error paths included.
func (g *busyGuard) acquire(a Action) (func(), error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.busy == nil {
		g.busy = make(map[Action]bool)
	}
	if g.busy[a] {
		return nil, fmt.Errorf("%w: %s", ErrBusy, a)
	}
	g.busy[a] = true

	return func() {
		g.mu.Lock()
		delete(g.busy, a)
		g.mu.Unlock()
	}, nil
}
