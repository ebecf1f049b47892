package services

import (
	"context"
	"sync"
	"time"

	"tour-server/api/tourapi"
	"tour-server/models"
)

// stubTourAPI answers from function fields; unset operations return empty results.
type stubTourAPI struct {
	mu    sync.Mutex
	calls map[string]int

	areaCode func(models.AreaCodeParams) ([]models.AreaCode, error)
	areaList func(models.TourListParams) (*tourapi.TourListResult, error)
	search   func(models.TourListParams) (*tourapi.TourListResult, error)
	detail   func(string) (*models.TourDetail, error)
	intro    func(string, string) (*models.TourIntro, error)
	images   func(string) ([]models.TourImage, error)
	petTour  func(string) (*models.PetTourInfo, error)
}

func (s *stubTourAPI) record(op string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.calls == nil {
		s.calls = map[string]int{}
	}
	s.calls[op]++
}

func (s *stubTourAPI) count(op string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[op]
}

func (s *stubTourAPI) GetAreaCode(ctx context.Context, p models.AreaCodeParams) ([]models.AreaCode, error) {
	s.record("areaCode")
	if s.areaCode == nil {
		return nil, nil
	}
	return s.areaCode(p)
}

func (s *stubTourAPI) GetAreaBasedList(ctx context.Context, p models.TourListParams) (*tourapi.TourListResult, error) {
	s.record("areaList")
	if s.areaList == nil {
		return &tourapi.TourListResult{}, nil
	}
	return s.areaList(p)
}

func (s *stubTourAPI) SearchKeyword(ctx context.Context, p models.TourListParams) (*tourapi.TourListResult, error) {
	s.record("search")
	if s.search == nil {
		return &tourapi.TourListResult{}, nil
	}
	return s.search(p)
}

func (s *stubTourAPI) GetDetailCommon(ctx context.Context, id string) (*models.TourDetail, error) {
	s.record("detail")
	return s.detail(id)
}

func (s *stubTourAPI) GetDetailIntro(ctx context.Context, id, typeID string) (*models.TourIntro, error) {
	s.record("intro")
	if s.intro == nil {
		return nil, nil
	}
	return s.intro(id, typeID)
}

func (s *stubTourAPI) GetDetailImage(ctx context.Context, id string) ([]models.TourImage, error) {
	s.record("images")
	if s.images == nil {
		return []models.TourImage{}, nil
	}
	return s.images(id)
}

func (s *stubTourAPI) GetDetailPetTour(ctx context.Context, id string) (*models.PetTourInfo, error) {
	s.record("petTour")
	if s.petTour == nil {
		return nil, nil
	}
	return s.petTour(id)
}

type memoryBookmarks struct {
	mu   sync.Mutex
	rows []models.Bookmark
	err  error
}

func (m *memoryBookmarks) AddBookmark(ctx context.Context, userID, contentID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, b := range m.rows {
		if b.UserID == userID && b.ContentID == contentID {
			return nil
		}
	}
	m.rows = append(m.rows, models.Bookmark{
		ID: "b-" + contentID, UserID: userID, ContentID: contentID,
		CreatedAt: time.Date(2024, 5, 1, 0, len(m.rows), 0, 0, time.UTC),
	})
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
	if m.err != nil {
		return nil, m.err
	}
	out := []models.Bookmark{}
	for i := len(m.rows) - 1; i >= 0; i-- {
		if m.rows[i].UserID == userID {
			out = append(out, m.rows[i])
		}
	}
	return out, nil
}

func (m *memoryBookmarks) DeleteBookmarks(ctx context.Context, userID string, ids []string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	drop := map[string]bool{}
	for _, id := range ids {
		drop[id] = true
	}
	var n int64
	kept := m.rows[:0]
	for _, b := range m.rows {
		if b.UserID == userID && drop[b.ID] {
			n++
			continue
		}
		kept = append(kept, b)
	}
	m.rows = kept
	return n, nil
}

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
	u, ok := m.users[externalID]
	if !ok {
		u = &models.User{ID: "u-" + externalID, ExternalID: externalID}
		m.users[externalID] = u
	}
	u.Name = name
	copied := *u
	return &copied, nil
}

func (m *memoryUsers) GetUserByExternalID(ctx context.Context, externalID string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.users[externalID]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, nil
}
