// Package memory is an in-process store used in tests and when no DSN is
// configured. It mirrors the constraint behavior of the postgres schema so
// the engines see the same domain errors either way.
package memory

import (
	"context"
	"sync"

	"github.com/encurtador/shortener/internal/apperrors"
	"github.com/encurtador/shortener/internal/models"
	"github.com/encurtador/shortener/internal/store"
)

type MemoryStorage struct {
	mux   *sync.Mutex
	urls  map[string]models.URL  // keyed by short code
	users map[string]models.User // keyed by user id
}

func NewMemoryStorage() (*MemoryStorage, error) {
	return &MemoryStorage{
		mux:   &sync.Mutex{},
		urls:  make(map[string]models.URL),
		users: make(map[string]models.User),
	}, nil
}

func (s *MemoryStorage) SaveURL(ctx context.Context, url *models.URL) error {
	s.mux.Lock()
	defer s.mux.Unlock()

	if _, ok := s.urls[url.ShortCode]; ok {
		return apperrors.NewDuplicate(store.EntityURL, "short_code")
	}
	if url.UserID != "" {
		if _, ok := s.users[url.UserID]; !ok {
			return apperrors.NewInvalidRelation(store.EntityURL, "user_id",
				"the user with ID "+url.UserID+" does not exist; create the user before associating it with a URL")
		}
	}

	s.urls[url.ShortCode] = *url
	return nil
}

func (s *MemoryStorage) GetURLByShortCode(ctx context.Context, shortCode string, includeDeleted bool) (*models.URL, error) {
	s.mux.Lock()
	defer s.mux.Unlock()

	url, ok := s.urls[shortCode]
	if !ok || (!includeDeleted && url.IsDeleted()) {
		return nil, apperrors.NewNotFound(store.EntityURL, "requested")
	}
	return &url, nil
}

func (s *MemoryStorage) UpdateURL(ctx context.Context, url *models.URL) error {
	s.mux.Lock()
	defer s.mux.Unlock()

	stored, ok := s.urls[url.ShortCode]
	if !ok || stored.ID != url.ID {
		return apperrors.NewNotFound(store.EntityURL, "requested")
	}
	s.urls[url.ShortCode] = *url
	return nil
}

func (s *MemoryStorage) GetAllURLsByUserID(ctx context.Context, userID string) ([]models.URL, error) {
	s.mux.Lock()
	defer s.mux.Unlock()

	urls := make([]models.URL, 0)
	for _, url := range s.urls {
		if url.UserID == userID {
			urls = append(urls, url)
		}
	}
	return urls, nil
}

func (s *MemoryStorage) SaveUser(ctx context.Context, user *models.User) error {
	s.mux.Lock()
	defer s.mux.Unlock()

	for _, stored := range s.users {
		if stored.Email == user.Email {
			return apperrors.NewDuplicate(store.EntityUser, "email")
		}
	}
	s.users[user.ID] = *user
	return nil
}

func (s *MemoryStorage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mux.Lock()
	defer s.mux.Unlock()

	for _, user := range s.users {
		if user.Email == email && !user.IsDeleted() {
			u := user
			return &u, nil
		}
	}
	return nil, apperrors.NewNotFound(store.EntityUser, "requested")
}

func (s *MemoryStorage) Ping(ctx context.Context) error {
	return nil
}

func (s *MemoryStorage) Close(ctx context.Context) error {
	return nil
}

var _ store.Store = (*MemoryStorage)(nil)
