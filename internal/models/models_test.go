package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestURL_Transitions(t *testing.T) {
	url := NewURL("AAAAAA", "https://a.com", "user-1")
	require.False(t, url.IsDeleted())
	assert.Equal(t, 0, url.ClickCount)
	assert.Nil(t, url.LastClickAt)
	assert.Equal(t, url.CreatedAt, url.UpdatedAt)

	url.RegisterClick()
	assert.Equal(t, 1, url.ClickCount)
	require.NotNil(t, url.LastClickAt)
	assert.False(t, url.UpdatedAt.Before(url.CreatedAt))

	url.SetOriginalURL("https://b.com")
	assert.Equal(t, "https://b.com", url.OriginalURL)

	url.SoftDelete()
	assert.True(t, url.IsDeleted())
	require.NotNil(t, url.DeletedAt)

	url.Restore()
	assert.False(t, url.IsDeleted())
	assert.Nil(t, url.DeletedAt)

	// restore does not touch the accumulated clicks
	assert.Equal(t, 1, url.ClickCount)
}

func TestUser_PublicViewOmitsHash(t *testing.T) {
	user := NewUser("John Doe", "john@example.com", "$2a$06$digest")

	view := user.PublicView()
	assert.Equal(t, user.ID, view.ID)
	assert.Equal(t, "John Doe", view.Name)
	assert.Equal(t, "john@example.com", view.Email)

	serialized, err := json.Marshal(view)
	require.NoError(t, err)
	assert.NotContains(t, string(serialized), "digest")
}
