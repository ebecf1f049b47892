// Command tourcrawl pages through GET /tours for one filter the way a
// scrolling client does, prints the result and renders it on a map.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tour-server/config"
	"tour-server/loader"
	"tour-server/logger"
	"tour-server/models"
	"tour-server/selection"
	"tour-server/util"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "tourcrawl: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		baseURL    = flag.String("url", "http://localhost:8080", "tour server base URL")
		pageSize   = flag.Int("page-size", config.DEFAULT_NUM_OF_ROWS, "items per page")
		poll       = flag.Duration("poll", 200*time.Millisecond, "sentinel poll interval")
		timeout    = flag.Duration("timeout", config.TOUR_API_TIMEOUT, "per-page request timeout")
		logLevel   = flag.String("log-level", "info", "debug, info, warn or error")
		keyword    = flag.String("keyword", "", "search keyword")
		areaCode   = flag.String("area", config.DEFAULT_AREA_CODE, "area code")
		typeID     = flag.String("type", "", "content type id")
		arrange    = flag.String("arrange", "", "sort order (A, C, D, O, Q, R)")
		petAllowed = flag.Bool("pet", false, "only pet-friendly places")
		petSize    = flag.String("pet-size", "", "small, medium or large")
		maxPages   = flag.Int("max-pages", 0, "stop after this many pages (0 = all)")
		selectID   = flag.String("select", "", "content id to highlight (defaults to the first item)")
		mapOut     = flag.String("map", "tours_map.html", "map output file, empty to skip")
	)
	flag.Parse()

	size, err := parsePetSize(*petSize)
	if err != nil {
		return err
	}

	log := logger.NewStructured(*logLevel, "console")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := crawlOptions{
		Filter: models.FilterContext{
			Keyword:       *keyword,
			AreaCode:      *areaCode,
			ContentTypeID: *typeID,
			Arrange:       *arrange,
			PetAllowed:    *petAllowed,
			PetSize:       size,
		},
		PageSize:   *pageSize,
		MaxPages:   *maxPages,
		LeadMargin: config.DEFAULT_LEAD_MARGIN,
		Poll:       *poll,
	}

	fetcher := loader.NewProxyFetcher(*baseURL, *timeout)
	state, err := crawl(ctx, fetcher, newTickerNotifier(opts.Poll), opts, log)
	if err != nil && len(state.Items) == 0 {
		return err
	}
	if err != nil {
		log.WithError(err).Warn("crawl stopped early", map[string]interface{}{"pageNo": state.PageNo})
	}

	coordinator := selection.NewCoordinator()
	unsubscribe := coordinator.Subscribe(func(id string) {
		log.Info("selection changed", map[string]interface{}{"contentId": id})
	})
	defer unsubscribe()

	switch {
	case *selectID != "":
		coordinator.Select(*selectID)
	case len(state.Items) > 0:
		coordinator.Select(state.Items[0].ContentID)
	}

	fmt.Printf("%d of %d tours in %d page(s)\n", len(state.Items), state.TotalCount, state.PageNo)
	printTours(os.Stdout, state.Items, coordinator)

	if *mapOut != "" {
		selected, _ := coordinator.Selected()
		if err := util.PlotToursToFile(*mapOut, state.Items, selected); err != nil {
			return err
		}
		fmt.Printf("map written to %s\n", *mapOut)
	}
	return nil
}
