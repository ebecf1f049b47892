package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"tour-server/loader"
	"tour-server/logger"
	"tour-server/models"
	"tour-server/selection"
)

const listEndSentinel = "tour-list-end"

type crawlOptions struct {
	Filter     models.FilterContext
	PageSize   int
	MaxPages   int
	LeadMargin int
	Poll       time.Duration
}

func (o crawlOptions) reachedLimit(s loader.State) bool {
	return o.MaxPages > 0 && s.PageNo >= o.MaxPages
}

// crawl loads the first page, then lets the sentinel page the list until it is
// exhausted, a page fails, or MaxPages is reached.
func crawl(ctx context.Context, fetcher loader.PageFetcher, notifier loader.VisibilityNotifier, opts crawlOptions, log logger.Logger) (loader.State, error) {
	first, err := fetcher.FetchPage(ctx, opts.Filter, 1, opts.PageSize)
	if err != nil {
		return loader.State{}, err
	}

	l := loader.New(fetcher, opts.PageSize, log)
	defer l.Close()
	l.Reset(opts.Filter, first.Items, first.TotalCount)

	if s := l.Snapshot(); s.Status() == loader.Exhausted || opts.reachedLimit(s) {
		return s, nil
	}

	done := make(chan loader.State, 1)
	unsubscribe := l.Subscribe(func(s loader.State) {
		if s.IsLoading {
			return
		}
		if s.Status() == loader.Failed || s.Status() == loader.Exhausted || opts.reachedLimit(s) {
			select {
			case done <- s:
			default:
			}
		}
	})
	defer unsubscribe()

	l.AttachSentinel(ctx, notifier, listEndSentinel, opts.LeadMargin)

	select {
	case s := <-done:
		l.Detach()
		return s, s.Err
	case <-ctx.Done():
		l.Detach()
		return l.Snapshot(), ctx.Err()
	}
}

// parsePetSize accepts an empty size or one of small, medium and large.
func parsePetSize(s string) (models.PetSize, error) {
	size := models.PetSize(strings.ToLower(strings.TrimSpace(s)))
	if size != "" && !size.Valid() {
		return "", fmt.Errorf("invalid pet size %q: want small, medium or large", s)
	}
	return size, nil
}

// printTours writes one line per item, marking the selected one.
func printTours(w io.Writer, items []models.TourItem, coordinator *selection.Coordinator) {
	for i, item := range items {
		marker := " "
		if coordinator.IsSelected(item.ContentID) {
			marker = "*"
		}
		line := strings.TrimSpace(item.Addr1 + " " + item.Addr2)
		if label := item.PetInfo.SizeLabel(); label != "" {
			line += " (" + label + ")"
		}
		fmt.Fprintf(w, "%s %3d. %s [%s] %s\n", marker, i+1, item.Title, item.ContentID, line)
	}
}
