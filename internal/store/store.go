// Package store declares the persistence gateway consumed by the engines.
// Implementations must surface failures through the apperrors taxonomy, never
// as raw driver errors.
package store

import (
	"context"

	"github.com/encurtador/shortener/internal/models"
)

// Entity names used by the storage error translation.
const (
	EntityURL  = "URL"
	EntityUser = "user"
)

type Store interface {
	SaveURL(ctx context.Context, url *models.URL) error
	// GetURLByShortCode loads a URL by code. With includeDeleted false,
	// soft-deleted rows are treated as absent.
	GetURLByShortCode(ctx context.Context, shortCode string, includeDeleted bool) (*models.URL, error)
	UpdateURL(ctx context.Context, url *models.URL) error
	GetAllURLsByUserID(ctx context.Context, userID string) ([]models.URL, error)
	SaveUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}
