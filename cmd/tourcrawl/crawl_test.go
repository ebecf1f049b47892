package main

import (
	"bytes"
	"context"
	"errors"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tour-server/api/tourapi"
	"tour-server/config"
	"tour-server/dao/redis"
	"tour-server/db"
	"tour-server/loader"
	"tour-server/logger"
	"tour-server/models"
	"tour-server/selection"
	"tour-server/server"
	"tour-server/server/handlers"
	services "tour-server/service"
)

func newTourServer(t *testing.T) *httptest.Server {
	t.Helper()
	log := logger.NewNoOpLogger()
	tourApi := tourapi.NewTourApiClientMockFromDir("../../resources")
	redisClient := db.NewMockRedisClient()
	dao := redis.NewRedisTourDAO(redisClient)
	classifier := handlers.NewErrorClassifier(false, log)

	muxRouter := mux.NewRouter()
	server.NewRouter(server.Handlers{
		Tours:  handlers.NewTourHandler(services.NewTourListService(tourApi, dao, services.TourListOptions{}, log), classifier, log),
		Places: handlers.NewPlaceHandler(services.NewPlaceService(tourApi, log), classifier, log),
		Stats:  handlers.NewStatsHandler(services.NewStatsService(tourApi, dao, time.Hour, log), classifier, log),
		Ping:   handlers.NewPingHandler(map[string]handlers.Pinger{"redis": redisClient}),
	}, muxRouter, config.ServerConfig{RateLimitDisabled: true}, log).RegisterRoutes()

	srv := httptest.NewServer(muxRouter)
	t.Cleanup(srv.Close)
	return srv
}

func TestCrawl_PagesToExhaustion(t *testing.T) {
	srv := newTourServer(t)
	fetcher := loader.NewProxyFetcher(srv.URL, 2*time.Second)
	opts := crawlOptions{
		Filter:   models.FilterContext{AreaCode: "1"},
		PageSize: 5,
		Poll:     5 * time.Millisecond,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	state, err := crawl(ctx, fetcher, newTickerNotifier(opts.Poll), opts, logger.NewTestLogger(t))

	require.NoError(t, err)
	assert.Len(t, state.Items, 14)
	assert.Equal(t, 14, state.TotalCount)
	assert.Equal(t, 3, state.PageNo)
	assert.Equal(t, loader.Exhausted, state.Status())

	seen := map[string]bool{}
	for _, item := range state.Items {
		assert.False(t, seen[item.ContentID], "duplicate %s", item.ContentID)
		seen[item.ContentID] = true
	}
}

func TestCrawl_StopsAtMaxPages(t *testing.T) {
	srv := newTourServer(t)
	fetcher := loader.NewProxyFetcher(srv.URL, 2*time.Second)
	opts := crawlOptions{
		Filter:   models.FilterContext{AreaCode: "1"},
		PageSize: 4,
		MaxPages: 2,
		Poll:     5 * time.Millisecond,
	}

	state, err := crawl(context.Background(), fetcher, newTickerNotifier(opts.Poll), opts, logger.NewNoOpLogger())

	require.NoError(t, err)
	assert.Len(t, state.Items, 8)
	assert.True(t, state.HasMore)
}

type flakyFetcher struct {
	calls atomic.Int32
}

func (f *flakyFetcher) FetchPage(ctx context.Context, filter models.FilterContext, pageNo, numOfRows int) (*loader.Page, error) {
	f.calls.Add(1)
	if pageNo == 1 {
		return &loader.Page{Items: []models.TourItem{{ContentID: "1"}}, TotalCount: 3}, nil
	}
	return nil, &loader.ResponseError{Message: "네트워크 연결을 확인해주세요.", StatusCode: 500, Network: true}
}

func TestCrawl_ReportsFailedPage(t *testing.T) {
	fetcher := &flakyFetcher{}
	opts := crawlOptions{PageSize: 1, Poll: 5 * time.Millisecond}

	state, err := crawl(context.Background(), fetcher, newTickerNotifier(opts.Poll), opts, logger.NewNoOpLogger())

	var respErr *loader.ResponseError
	require.True(t, errors.As(err, &respErr))
	assert.True(t, respErr.Network)
	assert.Len(t, state.Items, 1)
	assert.Equal(t, loader.Failed, state.Status())
}

func TestCrawl_FirstPageError(t *testing.T) {
	srv := newTourServer(t)
	fetcher := loader.NewProxyFetcher(srv.URL, 2*time.Second)
	opts := crawlOptions{Filter: models.FilterContext{AreaCode: "1", PetSize: "huge"}, PageSize: 5}

	_, err := crawl(context.Background(), fetcher, newTickerNotifier(time.Millisecond), opts, logger.NewNoOpLogger())

	var respErr *loader.ResponseError
	require.True(t, errors.As(err, &respErr))
	assert.Equal(t, 400, respErr.StatusCode)
}

func TestPrintTours_MarksSelection(t *testing.T) {
	coordinator := selection.NewCoordinator()
	coordinator.Select("2")
	items := []models.TourItem{
		{ContentID: "1", Title: "경복궁", Addr1: "서울특별시 종로구", PetInfo: &models.PetTourInfo{ChkPetSize: "대형견 가능"}},
		{ContentID: "2", Title: "덕수궁"},
	}

	var buf bytes.Buffer
	printTours(&buf, items, coordinator)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], " "))
	assert.Contains(t, lines[0], "경복궁 [1] 서울특별시 종로구 (대형견 OK)")
	assert.True(t, strings.HasPrefix(lines[1], "*"))
	assert.NotContains(t, lines[1], "OK")
}

func TestParsePetSize(t *testing.T) {
	size, err := parsePetSize("")
	require.NoError(t, err)
	assert.Equal(t, models.PetSize(""), size)

	size, err = parsePetSize(" Medium ")
	require.NoError(t, err)
	assert.Equal(t, models.PetSizeMedium, size)

	_, err = parsePetSize("huge")
	assert.Error(t, err)
}

func TestTickerNotifier_StopEndsCallbacks(t *testing.T) {
	var fired atomic.Int32
	stop := newTickerNotifier(2*time.Millisecond).Observe("s", 100, func() { fired.Add(1) })

	assert.Eventually(t, func() bool { return fired.Load() >= 2 }, time.Second, time.Millisecond)
	stop()
	stop()
	time.Sleep(10 * time.Millisecond)
	after := fired.Load()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, after, fired.Load())
}
