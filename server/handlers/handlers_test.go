package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"

	"tour-server/api/tourapi"
	"tour-server/dao/redis"
	"tour-server/db"
	"tour-server/logger"
	"tour-server/models"
	services "tour-server/service"
)

const fixtureDir = "../../resources"

type memoryUsers struct {
	mu    sync.Mutex
	users map[string]*models.User
}

func (m *memoryUsers) UpsertUser(ctx context.Context, externalID, name string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.users == nil {
		m.users = map[string]*models.User{}
	}
	if u, ok := m.users[externalID]; ok {
		u.Name = name
		return u, nil
	}
	u := &models.User{ID: uuid.NewString(), ExternalID: externalID, Name: name, CreatedAt: time.Now()}
	m.users[externalID] = u
	return u, nil
}

func (m *memoryUsers) GetUserByExternalID(ctx context.Context, externalID string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.users[externalID], nil
}

type memoryBookmarks struct {
	mu   sync.Mutex
	rows []models.Bookmark
}

func (m *memoryBookmarks) AddBookmark(ctx context.Context, userID, contentID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, b := range m.rows {
		if b.UserID == userID && b.ContentID == contentID {
			return nil
		}
	}
	m.rows = append(m.rows, models.Bookmark{ID: uuid.NewString(), UserID: userID, ContentID: contentID, CreatedAt: time.Now()})
	return nil
}

func (m *memoryBookmarks) RemoveBookmark(ctx context.Context, userID, contentID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, b := range m.rows {
		if b.UserID == userID && b.ContentID == contentID {
			m.rows = append(m.rows[:i], m.rows[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (m *memoryBookmarks) IsBookmarked(ctx context.Context, userID, contentID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, b := range m.rows {
		if b.UserID == userID && b.ContentID == contentID {
			return true, nil
		}
	}
	return false, nil
}

func (m *memoryBookmarks) ListBookmarks(ctx context.Context, userID string) ([]models.Bookmark, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Bookmark{}
	for _, b := range m.rows {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memoryBookmarks) DeleteBookmarks(ctx context.Context, userID string, ids []string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	wanted := map[string]bool{}
	for _, id := range ids {
		wanted[id] = true
	}
	var deleted int64
	kept := m.rows[:0]
	for _, b := range m.rows {
		if b.UserID == userID && wanted[b.ID] {
			deleted++
			continue
		}
		kept = append(kept, b)
	}
	m.rows = kept
	return deleted, nil
}

type fixture struct {
	classifier *ErrorClassifier
	tours      *TourHandler
	places     *PlaceHandler
	bookmarks  *BookmarkHandler
	users      *UserHandler
	stats      *StatsHandler
	store      *memoryBookmarks
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	log := logger.NewTestLogger(t)
	tourApi := tourapi.NewTourApiClientMockFromDir(fixtureDir)
	dao := redis.NewRedisTourDAO(db.NewMockRedisClient())
	classifier := NewErrorClassifier(false, log)

	userSync := services.NewUserSyncService(&memoryUsers{}, log)
	store := &memoryBookmarks{}

	return &fixture{
		classifier: classifier,
		tours:      NewTourHandler(services.NewTourListService(tourApi, dao, services.TourListOptions{}, log), classifier, log),
		places:     NewPlaceHandler(services.NewPlaceService(tourApi, log), classifier, log),
		bookmarks:  NewBookmarkHandler(services.NewBookmarkService(store, tourApi, log), userSync, classifier, log),
		users:      NewUserHandler(userSync, classifier, log),
		stats:      NewStatsHandler(services.NewStatsService(tourApi, dao, time.Hour, log), classifier, log),
		store:      store,
	}
}

func serve(h http.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	h(rr, req)
	return rr
}

func withContentID(req *http.Request, id string) *http.Request {
	return mux.SetURLVars(req, map[string]string{CONTENT_ID_PATH_VAR: id})
}

func withSession(req *http.Request, externalID string) *http.Request {
	req.Header.Set(USER_ID_HEADER, externalID)
	req.Header.Set(USER_NAME_HEADER, "홍길동")
	return req
}

func decode(t *testing.T, rr *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(strings.NewReader(rr.Body.String())).Decode(&body))
	return body
}
