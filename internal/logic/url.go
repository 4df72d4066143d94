// Package logic owns the state machines behind the handlers: the URL
// lifecycle engine and the user registration/auth engine. Everything below it
// is a gateway, everything above it is transport.
package logic

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"net/url"

	"go.uber.org/zap"

	"github.com/encurtador/shortener/internal/apperrors"
	"github.com/encurtador/shortener/internal/models"
	"github.com/encurtador/shortener/internal/store"
)

const shortCodeCharset = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

type URLService struct {
	store  store.Store
	logger *zap.SugaredLogger
}

func NewURLService(store store.Store, logger *zap.SugaredLogger) *URLService {
	return &URLService{
		store:  store,
		logger: logger,
	}
}

// GenerateShortCode returns a fresh random code. Collisions are not checked
// here; the storage uniqueness constraint catches them and the caller may
// retry with a new code.
func GenerateShortCode() (string, error) {
	ret := make([]byte, models.ShortCodeLength)
	for i := range ret {
		num, err := rand.Int(rand.Reader, big.NewInt(int64(len(shortCodeCharset))))
		if err != nil {
			return "", fmt.Errorf("random string generator error: %w", err)
		}
		ret[i] = shortCodeCharset[num.Int64()]
	}

	return string(ret), nil
}

func validOriginalURL(rawURL string) bool {
	u, err := url.Parse(rawURL)
	return err == nil && u.IsAbs() && u.Host != ""
}

// Create persists a new short URL. userID may be empty for anonymous
// creation.
func (s *URLService) Create(ctx context.Context, originalURL string, userID string) (*models.URL, error) {
	if !validOriginalURL(originalURL) {
		return nil, apperrors.NewInvalidInput("there are validation errors in the submitted data",
			apperrors.FieldError{Field: "url", Message: "the provided value is not a valid URL"})
	}

	shortCode, err := GenerateShortCode()
	if err != nil {
		s.logger.Error(err)
		return nil, apperrors.NewOperationFailed("error creating short URL", err)
	}

	record := models.NewURL(shortCode, originalURL, userID)
	if err := s.store.SaveURL(ctx, record); err != nil {
		err = fmt.Errorf("error saving URL: %w", err)
		s.logger.Error(err)
		return nil, apperrors.NewOperationFailed("error creating short URL", err)
	}

	return record, nil
}

// Resolve returns the active URL behind shortCode and registers one click.
// Absent or soft-deleted codes fail with NotFound.
//
// The increment is read-modify-write: two concurrent resolves of the same
// code may lose one click. Accepted for a best-effort counter.
func (s *URLService) Resolve(ctx context.Context, shortCode string) (*models.URL, error) {
	record, err := s.store.GetURLByShortCode(ctx, shortCode, false)
	if err != nil {
		s.logger.Debugf("error resolving %q: %v", shortCode, err)
		return nil, apperrors.NewOperationFailed("error resolving short URL", err)
	}

	record.RegisterClick()
	if err := s.store.UpdateURL(ctx, record); err != nil {
		err = fmt.Errorf("error persisting click: %w", err)
		s.logger.Error(err)
		return nil, apperrors.NewOperationFailed("error resolving short URL", err)
	}

	return record, nil
}

// ListByOwner returns every URL owned by userID, deleted ones included.
func (s *URLService) ListByOwner(ctx context.Context, userID string) ([]models.URL, error) {
	records, err := s.store.GetAllURLsByUserID(ctx, userID)
	if err != nil {
		err = fmt.Errorf("error getting all user urls: %w", err)
		s.logger.Error(err)
		return nil, apperrors.NewOperationFailed("error listing short URLs", err)
	}

	return records, nil
}

// checkOwnership rejects the caller unless the record has an owner and the
// owner is the caller. Anonymous records have no owner to match against and
// always fail.
func checkOwnership(record *models.URL, callerID string) error {
	if record.UserID == "" || record.UserID != callerID {
		return apperrors.NewForbidden("access to this short URL is denied")
	}
	return nil
}

// Update replaces the destination behind shortCode. The lookup does not
// filter on deletion status. A Forbidden failure propagates unwrapped.
func (s *URLService) Update(ctx context.Context, shortCode string, newOriginalURL string, callerID string) (*models.URL, error) {
	if !validOriginalURL(newOriginalURL) {
		return nil, apperrors.NewInvalidInput("there are validation errors in the submitted data",
			apperrors.FieldError{Field: "url", Message: "the provided value is not a valid URL"})
	}

	record, err := s.store.GetURLByShortCode(ctx, shortCode, true)
	if err != nil {
		s.logger.Debugf("error loading %q for update: %v", shortCode, err)
		return nil, apperrors.NewOperationFailed("error updating short URL", err)
	}

	if err := checkOwnership(record, callerID); err != nil {
		return nil, err
	}

	record.SetOriginalURL(newOriginalURL)
	if err := s.store.UpdateURL(ctx, record); err != nil {
		err = fmt.Errorf("error persisting update: %w", err)
		s.logger.Error(err)
		return nil, apperrors.NewOperationFailed("error updating short URL", err)
	}

	return record, nil
}

// Delete soft-deletes the URL behind shortCode. With an empty callerID the
// ownership check is skipped (engine-level anonymous path); otherwise it is
// enforced exactly as in Update. The lookup excludes already-deleted rows, so
// deleting twice fails with NotFound.
func (s *URLService) Delete(ctx context.Context, shortCode string, callerID string) (*models.URL, error) {
	record, err := s.store.GetURLByShortCode(ctx, shortCode, false)
	if err != nil {
		s.logger.Debugf("error loading %q for delete: %v", shortCode, err)
		return nil, apperrors.NewOperationFailed("error deleting short URL", err)
	}

	if callerID != "" {
		if err := checkOwnership(record, callerID); err != nil {
			return nil, err
		}
	}

	record.SoftDelete()
	if err := s.store.UpdateURL(ctx, record); err != nil {
		err = fmt.Errorf("error persisting delete: %w", err)
		s.logger.Error(err)
		return nil, apperrors.NewOperationFailed("error deleting short URL", err)
	}

	return record, nil
}
