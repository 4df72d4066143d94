package logic

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/encurtador/shortener/internal/apperrors"
	"github.com/encurtador/shortener/internal/models"
	"github.com/encurtador/shortener/internal/store/memory"
)

func newTestURLService(t *testing.T) (*URLService, *memory.MemoryStorage) {
	t.Helper()

	storage, err := memory.NewMemoryStorage()
	require.NoError(t, err)

	return NewURLService(storage, zap.NewNop().Sugar()), storage
}

func seedUser(t *testing.T, storage *memory.MemoryStorage, name string) *models.User {
	t.Helper()

	user := models.NewUser(name, name+"@example.com", "digest")
	require.NoError(t, storage.SaveUser(context.Background(), user))
	return user
}

func TestURLService_Create(t *testing.T) {
	tests := []struct {
		name        string
		originalURL string
		wantKind    apperrors.Kind
	}{
		{
			name:        "valid absolute url",
			originalURL: "https://example.com/a",
			wantKind:    apperrors.KindUnknown,
		},
		{
			name:        "relative url rejected",
			originalURL: "/just/a/path",
			wantKind:    apperrors.KindInvalidInput,
		},
		{
			name:        "garbage rejected",
			originalURL: "://nope",
			wantKind:    apperrors.KindInvalidInput,
		},
		{
			name:        "empty rejected",
			originalURL: "",
			wantKind:    apperrors.KindInvalidInput,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			service, _ := newTestURLService(t)

			record, err := service.Create(context.Background(), tt.originalURL, "")
			if tt.wantKind != apperrors.KindUnknown {
				require.Error(t, err)
				assert.Equal(t, tt.wantKind, apperrors.KindOf(err))
				return
			}

			require.NoError(t, err)
			assert.Len(t, record.ShortCode, models.ShortCodeLength)
			assert.Equal(t, tt.originalURL, record.OriginalURL)
			assert.Zero(t, record.ClickCount)
			assert.Nil(t, record.DeletedAt)
			assert.Nil(t, record.LastClickAt)
			assert.False(t, record.CreatedAt.IsZero())
			assert.False(t, record.UpdatedAt.IsZero())
		})
	}
}

func TestURLService_Create_OwnerMustExist(t *testing.T) {
	service, _ := newTestURLService(t)

	_, err := service.Create(context.Background(), "https://example.com", "ghost-user-id")
	require.Error(t, err)
	assert.Equal(t, apperrors.KindInvalidRelation, apperrors.KindOf(err))
}

func TestURLService_Resolve(t *testing.T) {
	service, _ := newTestURLService(t)
	ctx := context.Background()

	created, err := service.Create(ctx, "https://example.com/a", "")
	require.NoError(t, err)

	first, err := service.Resolve(ctx, created.ShortCode)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/a", first.OriginalURL)
	assert.Equal(t, 1, first.ClickCount)
	require.NotNil(t, first.LastClickAt)

	second, err := service.Resolve(ctx, created.ShortCode)
	require.NoError(t, err)
	assert.Equal(t, 2, second.ClickCount)
	require.NotNil(t, second.LastClickAt)
	assert.False(t, second.LastClickAt.Before(*first.LastClickAt))
	assert.False(t, second.UpdatedAt.Before(first.UpdatedAt))
}

func TestURLService_Resolve_Unknown(t *testing.T) {
	service, _ := newTestURLService(t)

	_, err := service.Resolve(context.Background(), "AAAAAA")
	require.Error(t, err)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}

func TestURLService_AnonymousLifecycle(t *testing.T) {
	service, _ := newTestURLService(t)
	ctx := context.Background()

	created, err := service.Create(ctx, "https://a.com", "")
	require.NoError(t, err)

	for i := 1; i <= 2; i++ {
		record, err := service.Resolve(ctx, created.ShortCode)
		require.NoError(t, err)
		assert.Equal(t, i, record.ClickCount)
	}

	deleted, err := service.Delete(ctx, created.ShortCode, "")
	require.NoError(t, err)
	require.NotNil(t, deleted.DeletedAt)

	_, err = service.Resolve(ctx, created.ShortCode)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}

func TestURLService_Delete_AlreadyDeleted(t *testing.T) {
	service, _ := newTestURLService(t)
	ctx := context.Background()

	created, err := service.Create(ctx, "https://a.com", "")
	require.NoError(t, err)

	_, err = service.Delete(ctx, created.ShortCode, "")
	require.NoError(t, err)

	// the delete lookup excludes deleted rows
	_, err = service.Delete(ctx, created.ShortCode, "")
	require.Error(t, err)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}

func TestURLService_Ownership(t *testing.T) {
	type operation func(s *URLService, shortCode string, callerID string) error

	update := func(s *URLService, shortCode string, callerID string) error {
		_, err := s.Update(context.Background(), shortCode, "https://b.com", callerID)
		return err
	}
	del := func(s *URLService, shortCode string, callerID string) error {
		_, err := s.Delete(context.Background(), shortCode, callerID)
		return err
	}

	tests := []struct {
		name      string
		op        operation
		owned     bool
		asOwner   bool
		wantKind  apperrors.Kind
		wantOK    bool
	}{
		{name: "update as owner", op: update, owned: true, asOwner: true, wantOK: true},
		{name: "update as stranger", op: update, owned: true, wantKind: apperrors.KindForbidden},
		{name: "update anonymous url", op: update, wantKind: apperrors.KindForbidden},
		{name: "delete as owner", op: del, owned: true, asOwner: true, wantOK: true},
		{name: "delete as stranger", op: del, owned: true, wantKind: apperrors.KindForbidden},
		{name: "delete anonymous url with caller", op: del, wantKind: apperrors.KindForbidden},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			service, storage := newTestURLService(t)
			ctx := context.Background()

			owner := seedUser(t, storage, "owner")
			stranger := seedUser(t, storage, "stranger")

			ownerID := ""
			if tt.owned {
				ownerID = owner.ID
			}
			created, err := service.Create(ctx, "https://a.com", ownerID)
			require.NoError(t, err)

			callerID := stranger.ID
			if tt.asOwner {
				callerID = owner.ID
			}

			err = tt.op(service, created.ShortCode, callerID)
			if tt.wantOK {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.Equal(t, tt.wantKind, apperrors.KindOf(err))

			// a rejected operation must not mutate the record
			record, err := storage.GetURLByShortCode(ctx, created.ShortCode, true)
			require.NoError(t, err)
			assert.Equal(t, "https://a.com", record.OriginalURL)
			assert.Nil(t, record.DeletedAt)
		})
	}
}

func TestURLService_Update(t *testing.T) {
	service, storage := newTestURLService(t)
	ctx := context.Background()

	owner := seedUser(t, storage, "u1")
	created, err := service.Create(ctx, "https://a.com", owner.ID)
	require.NoError(t, err)

	updated, err := service.Update(ctx, created.ShortCode, "https://b.com", owner.ID)
	require.NoError(t, err)
	assert.Equal(t, "https://b.com", updated.OriginalURL)
	assert.False(t, updated.UpdatedAt.Before(created.UpdatedAt))

	resolved, err := service.Resolve(ctx, created.ShortCode)
	require.NoError(t, err)
	assert.Equal(t, "https://b.com", resolved.OriginalURL)
}

func TestURLService_Update_DeletedRecord(t *testing.T) {
	service, storage := newTestURLService(t)
	ctx := context.Background()

	owner := seedUser(t, storage, "u1")
	created, err := service.Create(ctx, "https://a.com", owner.ID)
	require.NoError(t, err)

	_, err = service.Delete(ctx, created.ShortCode, owner.ID)
	require.NoError(t, err)

	// the update lookup does not filter on deletion status
	updated, err := service.Update(ctx, created.ShortCode, "https://b.com", owner.ID)
	require.NoError(t, err)
	assert.Equal(t, "https://b.com", updated.OriginalURL)
	assert.NotNil(t, updated.DeletedAt)
}

func TestURLService_ListByOwner(t *testing.T) {
	service, storage := newTestURLService(t)
	ctx := context.Background()

	owner := seedUser(t, storage, "u1")

	records, err := service.ListByOwner(ctx, owner.ID)
	require.NoError(t, err)
	assert.Empty(t, records)

	first, err := service.Create(ctx, "https://a.com", owner.ID)
	require.NoError(t, err)
	_, err = service.Create(ctx, "https://b.com", owner.ID)
	require.NoError(t, err)
	_, err = service.Create(ctx, "https://c.com", "")
	require.NoError(t, err)

	// deleted records stay listed
	_, err = service.Delete(ctx, first.ShortCode, owner.ID)
	require.NoError(t, err)

	records, err = service.ListByOwner(ctx, owner.ID)
	require.NoError(t, err)
	assert.Len(t, records, 2)
	for _, record := range records {
		assert.Equal(t, owner.ID, record.UserID)
	}
}

func TestGenerateShortCode(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		code, err := GenerateShortCode()
		require.NoError(t, err)
		assert.Len(t, code, models.ShortCodeLength)
		seen[code] = true
	}
	// collisions over 100 draws from 62^6 would mean a broken generator
	assert.Len(t, seen, 100)
}

func TestURL_RegisterClickTimestamps(t *testing.T) {
	record := models.NewURL("AAAAAA", "https://a.com", "")
	before := time.Now()

	record.RegisterClick()
	require.NotNil(t, record.LastClickAt)
	assert.False(t, record.LastClickAt.Before(before))
	assert.Equal(t, 1, record.ClickCount)
}
