package session

import (
	"context"
	"time"
)

// Decision is what a protected view must do for a given Snapshot.
type Decision int

const (
	DecisionLoading Decision = iota
	DecisionRedirect
	DecisionRender
)

func (d Decision) String() string {
	switch d {
	case DecisionRedirect:
		return "redirect"
	case DecisionRender:
		return "render"
	default:
		return "loading"
	}
}

// Decide never redirects while the session is loading.
func Decide(snap Snapshot) Decision {
	switch {
	case snap.Loading:
		return DecisionLoading
	case !snap.IsAuthenticated:
		return DecisionRedirect
	default:
		return DecisionRender
	}
}

// SnapshotSource is satisfied by *Manager.
type SnapshotSource interface {
	Snapshot() Snapshot
}

const defaultGuardInterval = 50 * time.Millisecond

// Guard gates protected views.
type Guard struct {
	Interval time.Duration
}

// Wait polls src until the session is resolved and returns the final decision.
func (g Guard) Wait(ctx context.Context, src SnapshotSource) (Decision, error) {
	interval := g.Interval
	if interval <= 0 {
		interval = defaultGuardInterval
	}

	if d := Decide(src.Snapshot()); d != DecisionLoading {
		return d, nil
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return DecisionLoading, ctx.Err()
		case <-ticker.C:
			if d := Decide(src.Snapshot()); d != DecisionLoading {
				return d, nil
			}
		}
	}
}
