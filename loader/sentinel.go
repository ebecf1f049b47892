package loader

import (
	"context"

	"tour-server/config"
)

// VisibilityNotifier reports when a sentinel element comes within leadMargin
// of the visible area. Observe returns a func that ends the observation.
type VisibilityNotifier interface {
	Observe(sentinel string, leadMargin int, onVisible func()) (stop func())
}

// AttachSentinel loads the next page whenever sentinel becomes visible. A
// previously attached sentinel stops being observed first.
func (l *Loader) AttachSentinel(ctx context.Context, notifier VisibilityNotifier, sentinel string, leadMargin int) {
	if leadMargin <= 0 {
		leadMargin = config.DEFAULT_LEAD_MARGIN
	}
	l.attachMu.Lock()
	defer l.attachMu.Unlock()
	l.detach()

	stop := notifier.Observe(sentinel, leadMargin, func() {
		s := l.Snapshot()
		if s.IsLoading || !s.HasMore {
			return
		}
		_ = l.LoadMore(ctx)
	})

	l.mu.Lock()
	l.stopObserve = stop
	l.mu.Unlock()
}

// Detach ends the active sentinel observation, if any.
func (l *Loader) Detach() {
	l.attachMu.Lock()
	defer l.attachMu.Unlock()
	l.detach()
}

func (l *Loader) detach() {
	l.mu.Lock()
	stop := l.stopObserve
	l.stopObserve = nil
	l.mu.Unlock()

	if stop != nil {
		stop()
	}
}
