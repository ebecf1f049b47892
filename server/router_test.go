package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"tour-server/api/tourapi"
	"tour-server/config"
	"tour-server/dao/redis"
	"tour-server/db"
	"tour-server/logger"
	"tour-server/server/handlers"
	services "tour-server/service"
)

func newTestHandlers(t *testing.T) Handlers {
	t.Helper()
	log := logger.NewNoOpLogger()
	tourApi := tourapi.NewTourApiClientMockFromDir("../resources")
	redisClient := db.NewMockRedisClient()
	dao := redis.NewRedisTourDAO(redisClient)
	classifier := handlers.NewErrorClassifier(false, log)

	return Handlers{
		Tours:  handlers.NewTourHandler(services.NewTourListService(tourApi, dao, services.TourListOptions{}, log), classifier, log),
		Places: handlers.NewPlaceHandler(services.NewPlaceService(tourApi, log), classifier, log),
		Stats:  handlers.NewStatsHandler(services.NewStatsService(tourApi, dao, time.Hour, log), classifier, log),
		Ping:   handlers.NewPingHandler(map[string]handlers.Pinger{"redis": redisClient}),
	}
}

func newTestRouter(t *testing.T, cfg config.ServerConfig) *mux.Router {
	t.Helper()
	router := mux.NewRouter()
	NewRouter(newTestHandlers(t), router, cfg, logger.NewNoOpLogger()).RegisterRoutes()
	return router
}

func TestRouter_RegisterRoutes(t *testing.T) {
	router := newTestRouter(t, config.ServerConfig{RateLimitDisabled: true})

	tests := []struct {
		name       string
		method     string
		path       string
		statusCode int
	}{
		{name: "List Tours", method: "GET", path: "/tours?numOfRows=5", statusCode: http.StatusOK},
		{name: "Tours Map", method: "GET", path: "/tours/map", statusCode: http.StatusOK},
		{name: "Nearby Tours", method: "GET", path: "/tours/nearby?lat=37.57&lon=126.97", statusCode: http.StatusOK},
		{name: "Place Detail", method: "GET", path: "/places/126508", statusCode: http.StatusOK},
		{name: "Place Not Found", method: "GET", path: "/places/1", statusCode: http.StatusNotFound},
		{name: "Stats", method: "GET", path: "/stats", statusCode: http.StatusOK},
		{name: "Ping Route", method: "GET", path: "/ping", statusCode: http.StatusOK},
		{name: "Metrics", method: "GET", path: "/metrics", statusCode: http.StatusOK},
		{name: "Bookmarks Disabled", method: "GET", path: "/bookmarks", statusCode: http.StatusNotFound},
		{name: "Invalid Route", method: "GET", path: "/invalid", statusCode: http.StatusNotFound},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			req := httptest.NewRequest(test.method, test.path, nil)
			rr := httptest.NewRecorder()

			router.ServeHTTP(rr, req)

			assert.Equal(t, test.statusCode, rr.Code)
		})
	}
}

func TestRouter_RequestID(t *testing.T) {
	router := newTestRouter(t, config.ServerConfig{RateLimitDisabled: true})

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.NotEmpty(t, rr.Header().Get(REQUEST_ID_HEADER))

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(REQUEST_ID_HEADER, "abc-123")
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	assert.Equal(t, "abc-123", rr.Header().Get(REQUEST_ID_HEADER))
}

func TestRouter_RateLimit(t *testing.T) {
	router := newTestRouter(t, config.ServerConfig{RateLimitRequests: 2, RateLimitWindow: time.Minute})

	codes := []int{}
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/places/126508", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		codes = append(codes, rr.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	// health checks are not limited
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
}
