package main

import (
	"sync"
	"time"
)

// tickerNotifier treats the sentinel as permanently in view and reports it on
// every tick, which pages a list to its end at a fixed pace.
type tickerNotifier struct {
	interval time.Duration
}

func newTickerNotifier(interval time.Duration) *tickerNotifier {
	if interval <= 0 {
		interval = 200 * time.Millisecond
	}
	return &tickerNotifier{interval: interval}
}

func (n *tickerNotifier) Observe(sentinel string, leadMargin int, onVisible func()) func() {
	ticker := time.NewTicker(n.interval)
	done := make(chan struct{})
	var once sync.Once

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				onVisible()
			}
		}
	}()

	return func() { once.Do(func() { close(done) }) }
}
