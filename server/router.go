package server

import (
	"net/http"
	"time"

	"github.com/go-chi/httprate"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"tour-server/config"
	"tour-server/logger"
	"tour-server/metrics"
	"tour-server/server/handlers"
)

const REQUEST_ID_HEADER = "X-Request-ID"

// Handlers groups every route handler. Bookmarks and Users are nil when
// Postgres is disabled and their routes are then not registered.
type Handlers struct {
	Tours     *handlers.TourHandler
	Places    *handlers.PlaceHandler
	Bookmarks *handlers.BookmarkHandler
	Users     *handlers.UserHandler
	Stats     *handlers.StatsHandler
	Ping      *handlers.PingHandler
}

type Router struct {
	handlers Handlers
	router   *mux.Router
	cfg      config.ServerConfig
	logger   logger.Logger
}

// NewRouter creates a router with the app's routes.
func NewRouter(h Handlers, router *mux.Router, cfg config.ServerConfig, log logger.Logger) *Router {
	return &Router{
		handlers: h,
		router:   router,
		cfg:      cfg,
		logger:   logger.Component(log, "Router"),
	}
}

func (r *Router) RegisterRoutes() {
	r.router.Use(r.requestLogger, metrics.Middleware(routeTemplate))

	r.router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	r.router.HandleFunc("/ping", r.handlers.Ping.Ping).Methods(http.MethodGet)

	api := r.router.NewRoute().Subrouter()
	api.Use(r.rateLimiter())

	// expects ?keyword=&areaCode=&contentTypeId=&arrange=&pageNo=&numOfRows=&petAllowed=&petSize=
	api.HandleFunc("/tours", r.handlers.Tours.GetTours).Methods(http.MethodGet)
	api.HandleFunc("/tours/map", r.handlers.Tours.GetToursMap).Methods(http.MethodGet)
	// expects ?lat={latitude(float)}&lon={longitude(float)}&radius={km(float)}
	api.HandleFunc("/tours/nearby", r.handlers.Tours.GetNearbyTours).Methods(http.MethodGet)
	api.HandleFunc("/places/{contentId}", r.handlers.Places.GetPlace).Methods(http.MethodGet)
	api.HandleFunc("/stats", r.handlers.Stats.GetStats).Methods(http.MethodGet)
	api.HandleFunc("/stats/charts", r.handlers.Stats.GetStatsCharts).Methods(http.MethodGet)

	if r.handlers.Users != nil {
		api.HandleFunc("/users/sync", r.handlers.Users.SyncUser).Methods(http.MethodPost)
	}
	if r.handlers.Bookmarks != nil {
		b := r.handlers.Bookmarks
		api.HandleFunc("/bookmarks", b.ListBookmarks).Methods(http.MethodGet)
		api.HandleFunc("/bookmarks/delete", b.DeleteBookmarks).Methods(http.MethodPost)
		api.HandleFunc("/bookmarks/{contentId}", b.GetBookmark).Methods(http.MethodGet)
		api.HandleFunc("/bookmarks/{contentId}", b.AddBookmark).Methods(http.MethodPost)
		api.HandleFunc("/bookmarks/{contentId}", b.RemoveBookmark).Methods(http.MethodDelete)
	} else {
		r.logger.Info("bookmark routes disabled", nil)
	}
}

func (r *Router) rateLimiter() mux.MiddlewareFunc {
	if r.cfg.RateLimitDisabled || r.cfg.RateLimitRequests <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	return httprate.Limit(
		r.cfg.RateLimitRequests,
		r.cfg.RateLimitWindow,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, req *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"success":false,"error":"요청이 너무 많습니다. 잠시 후 다시 시도해주세요.","statusCode":429,"tours":[],"totalCount":0}`))
		}),
	)
}

func (r *Router) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		requestID := req.Header.Get(REQUEST_ID_HEADER)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set(REQUEST_ID_HEADER, requestID)

		start := time.Now()
		next.ServeHTTP(w, req)
		r.logger.Debug("request served", map[string]interface{}{
			"request_id": requestID,
			"method":     req.Method,
			"path":       req.URL.Path,
			"duration":   time.Since(start).String(),
		})
	})
}

func routeTemplate(req *http.Request) string {
	if route := mux.CurrentRoute(req); route != nil {
		if tpl, err := route.GetPathTemplate(); err == nil {
			return tpl
		}
	}
	return "unmatched"
}
