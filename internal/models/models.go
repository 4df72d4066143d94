package models

import (
	"time"

	"github.com/google/uuid"
)

// ShortCodeLength is the fixed length of every generated short code.
const ShortCodeLength = 6

// URL is the shortener entity. A URL with an empty UserID was created
// anonymously. DeletedAt marks the record soft-deleted; it is never
// physically removed.
type URL struct {
	ID          string     `json:"id"`
	ShortCode   string     `json:"short_code"`
	OriginalURL string     `json:"original_url"`
	UserID      string     `json:"user_id,omitempty"`
	ClickCount  int        `json:"click_count"`
	LastClickAt *time.Time `json:"last_click_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty"`
}

// NewURL builds an active URL record owned by userID (empty for anonymous).
func NewURL(shortCode string, originalURL string, userID string) *URL {
	now := time.Now()
	return &URL{
		ID:          uuid.New().String(),
		ShortCode:   shortCode,
		OriginalURL: originalURL,
		UserID:      userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// RegisterClick bumps the click counter and stamps the click time.
func (u *URL) RegisterClick() {
	now := time.Now()
	u.ClickCount++
	u.LastClickAt = &now
	u.UpdatedAt = now
}

// SetOriginalURL replaces the destination of the short code.
func (u *URL) SetOriginalURL(originalURL string) {
	u.OriginalURL = originalURL
	u.UpdatedAt = time.Now()
}

// SoftDelete marks the record deleted without erasing it.
func (u *URL) SoftDelete() {
	now := time.Now()
	u.DeletedAt = &now
	u.UpdatedAt = now
}

// Restore clears a soft delete.
func (u *URL) Restore() {
	u.DeletedAt = nil
	u.UpdatedAt = time.Now()
}

func (u *URL) IsDeleted() bool {
	return u.DeletedAt != nil
}

// User is an account that may own URLs. PasswordHash never leaves the
// process; serialize PublicView instead.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    *time.Time
}

func NewUser(name string, email string, passwordHash string) *User {
	now := time.Now()
	return &User{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func (u *User) IsDeleted() bool {
	return u.DeletedAt != nil
}

// PublicUser is the outward view of a user record, without the hash.
type PublicUser struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

func (u *User) PublicView() PublicUser {
	return PublicUser{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}

type ShortenReq struct {
	URL string `json:"url"`
}

type ShortenRes struct {
	Result    string `json:"result"`
	ShortCode string `json:"short_code"`
}

type UpdateURLReq struct {
	URL string `json:"url"`
}

type RegisterReq struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthRes struct {
	User  PublicUser `json:"user"`
	Token string     `json:"token"`
}
