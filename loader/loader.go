// Package loader accumulates pages of the tour list for one filter at a time
// and fetches the next page on demand or when a sentinel becomes visible.
package loader

import (
	"context"
	"errors"
	"sync"

	"tour-server/config"
	"tour-server/logger"
	"tour-server/models"
)

// ErrStale is returned by LoadMore when the filter changed while the request
// was in flight. The response was discarded.
var ErrStale = errors.New("loader: response discarded after filter change")

// Page is one fetched page of the list.
type Page struct {
	Items      []models.TourItem
	TotalCount int
}

// PageFetcher requests one page of the list for filter.
type PageFetcher interface {
	FetchPage(ctx context.Context, filter models.FilterContext, pageNo, numOfRows int) (*Page, error)
}

type LoadState int

const (
	Idle LoadState = iota
	Loading
	Failed
	Exhausted
)

func (s LoadState) String() string {
	switch s {
	case Loading:
		return "loading"
	case Failed:
		return "error"
	case Exhausted:
		return "exhausted"
	}
	return "idle"
}

// State is a snapshot of the loader.
type State struct {
	Filter     models.FilterContext
	Items      []models.TourItem
	PageNo     int
	IsLoading  bool
	HasMore    bool
	Err        error
	TotalCount int
}

func (s State) Status() LoadState {
	switch {
	case s.IsLoading:
		return Loading
	case s.Err != nil:
		return Failed
	case !s.HasMore:
		return Exhausted
	}
	return Idle
}

// Loader owns the accumulated items of the active filter. At most one page
// request is in flight at a time.
type Loader struct {
	fetcher  PageFetcher
	pageSize int
	logger   logger.Logger

	// attachMu serializes AttachSentinel and Detach.
	attachMu sync.Mutex

	mu          sync.Mutex
	state       State
	generation  uint64
	cancel      context.CancelFunc
	subscribers map[int]func(State)
	nextSubID   int
	stopObserve func()
}

// New creates a loader that requests pageSize items per page.
func New(fetcher PageFetcher, pageSize int, log logger.Logger) *Loader {
	if pageSize <= 0 {
		pageSize = config.DEFAULT_NUM_OF_ROWS
	}
	return &Loader{
		fetcher:     fetcher,
		pageSize:    pageSize,
		logger:      logger.Component(log, "Loader"),
		subscribers: make(map[int]func(State)),
	}
}

func (l *Loader) PageSize() int { return l.pageSize }

// Reset discards everything accumulated and starts over from the first page
// fetched by the caller. An in-flight request is cancelled and its response
// will be ignored.
func (l *Loader) Reset(filter models.FilterContext, initial []models.TourItem, totalCount int) {
	l.mu.Lock()
	l.resetLocked(filter, initial, totalCount)
	snapshot, subs := l.snapshotLocked()
	l.mu.Unlock()

	notify(subs, snapshot)
}

// SetFilter resets the loader only when filter differs from the active one,
// and reports whether it did.
func (l *Loader) SetFilter(filter models.FilterContext, initial []models.TourItem, totalCount int) bool {
	l.mu.Lock()
	if l.state.Filter.Equal(filter) && l.state.PageNo > 0 {
		l.mu.Unlock()
		return false
	}
	l.resetLocked(filter, initial, totalCount)
	snapshot, subs := l.snapshotLocked()
	l.mu.Unlock()

	notify(subs, snapshot)
	return true
}

func (l *Loader) resetLocked(filter models.FilterContext, initial []models.TourItem, totalCount int) {
	l.generation++
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
	items := make([]models.TourItem, len(initial))
	copy(items, initial)
	l.state = State{
		Filter:     filter,
		Items:      items,
		PageNo:     1,
		HasMore:    len(items) < totalCount,
		TotalCount: totalCount,
	}
	l.logger.Debug("loader reset", map[string]interface{}{
		"generation": l.generation,
		"items":      len(items),
		"totalCount": totalCount,
	})
}

// LoadMore fetches the next page and appends it. It is a no-op while a load
// is running or once the list is exhausted. On failure the error is kept in
// the state and the same page is requested again on the next call.
func (l *Loader) LoadMore(ctx context.Context) error {
	l.mu.Lock()
	if l.state.IsLoading || !l.state.HasMore {
		l.mu.Unlock()
		return nil
	}
	l.state.IsLoading = true
	l.state.Err = nil
	generation := l.generation
	filter := l.state.Filter
	nextPage := l.state.PageNo + 1
	reqCtx, cancel := context.WithCancel(ctx)
	l.cancel = cancel
	snapshot, subs := l.snapshotLocked()
	l.mu.Unlock()
	notify(subs, snapshot)

	page, err := l.fetcher.FetchPage(reqCtx, filter, nextPage, l.pageSize)
	cancel()

	l.mu.Lock()
	if generation != l.generation {
		l.mu.Unlock()
		l.logger.Debug("discarding stale page", map[string]interface{}{"pageNo": nextPage})
		return ErrStale
	}
	l.cancel = nil
	l.state.IsLoading = false
	if err != nil {
		l.state.Err = err
		snapshot, subs = l.snapshotLocked()
		l.mu.Unlock()
		l.logger.WithError(err).Warn("page load failed", map[string]interface{}{"pageNo": nextPage})
		notify(subs, snapshot)
		return err
	}

	l.state.Items = append(l.state.Items, page.Items...)
	l.state.TotalCount = page.TotalCount
	l.state.PageNo = nextPage
	l.state.HasMore = len(l.state.Items) < page.TotalCount && len(page.Items) > 0
	snapshot, subs = l.snapshotLocked()
	l.mu.Unlock()

	notify(subs, snapshot)
	return nil
}

// Snapshot returns a copy of the current state.
func (l *Loader) Snapshot() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	snapshot, _ := l.snapshotLocked()
	return snapshot
}

// Subscribe registers fn to receive every state change. The returned func
// removes it.
func (l *Loader) Subscribe(fn func(State)) (unsubscribe func()) {
	l.mu.Lock()
	defer l.mu.Unlock()
	id := l.nextSubID
	l.nextSubID++
	l.subscribers[id] = fn
	return func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		delete(l.subscribers, id)
	}
}

// Close cancels an in-flight request and detaches the sentinel.
func (l *Loader) Close() {
	l.Detach()
	l.mu.Lock()
	defer l.mu.Unlock()
	l.generation++
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
	l.state.IsLoading = false
}

func (l *Loader) snapshotLocked() (State, []func(State)) {
	s := l.state
	s.Items = make([]models.TourItem, len(l.state.Items))
	copy(s.Items, l.state.Items)

	subs := make([]func(State), 0, len(l.subscribers))
	for _, fn := range l.subscribers {
		subs = append(subs, fn)
	}
	return s, subs
}

func notify(subs []func(State), s State) {
	for _, fn := range subs {
		fn(s)
	}
}
