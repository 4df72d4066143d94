package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/encurtador/shortener/internal/models"
	"github.com/encurtador/shortener/internal/store"
)

type DBStore struct {
	conn *pgx.Conn
}

func NewPostgresStore(ctx context.Context, dsn string) (*DBStore, error) {
	conn, err := pgx.Connect(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("error opening connection to DB: %w", err)
	}
	dbStore := &DBStore{conn: conn}

	if err := dbStore.CreateTables(ctx); err != nil {
		return nil, err
	}

	return dbStore, nil
}

func (db *DBStore) CreateTables(ctx context.Context) error {
	_, err := db.conn.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS users(
			id UUID PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			email VARCHAR(255) NOT NULL UNIQUE,
			password_hash VARCHAR(255) NOT NULL,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL,
			deleted_at TIMESTAMPTZ
		);
		CREATE TABLE IF NOT EXISTS urls(
			id UUID PRIMARY KEY,
			short_code VARCHAR(6) NOT NULL UNIQUE,
			original_url TEXT NOT NULL,
			user_id UUID REFERENCES users(id),
			click_count INTEGER NOT NULL DEFAULT 0,
			last_click_at TIMESTAMPTZ,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL,
			deleted_at TIMESTAMPTZ
		);
	`)
	if err != nil {
		return fmt.Errorf("error creating tables: %w", err)
	}
	return nil
}

func (db *DBStore) SaveURL(ctx context.Context, url *models.URL) error {
	_, err := db.conn.Exec(ctx, `
		INSERT INTO urls (id, short_code, original_url, user_id, click_count, last_click_at, created_at, updated_at, deleted_at)
		VALUES ($1, $2, $3, NULLIF($4, '')::uuid, $5, $6, $7, $8, $9)
	`, url.ID, url.ShortCode, url.OriginalURL, url.UserID, url.ClickCount,
		url.LastClickAt, url.CreatedAt, url.UpdatedAt, url.DeletedAt)
	if err != nil {
		return translateError(err, store.EntityURL)
	}
	return nil
}

func (db *DBStore) GetURLByShortCode(ctx context.Context, shortCode string, includeDeleted bool) (*models.URL, error) {
	query := `
		SELECT id, short_code, original_url, COALESCE(user_id::text, ''), click_count, last_click_at, created_at, updated_at, deleted_at
		FROM urls WHERE short_code = $1`
	if !includeDeleted {
		query += " AND deleted_at IS NULL"
	}

	var url models.URL
	row := db.conn.QueryRow(ctx, query, shortCode)
	if err := row.Scan(&url.ID, &url.ShortCode, &url.OriginalURL, &url.UserID,
		&url.ClickCount, &url.LastClickAt, &url.CreatedAt, &url.UpdatedAt, &url.DeletedAt); err != nil {
		return nil, translateError(err, store.EntityURL)
	}
	return &url, nil
}

func (db *DBStore) UpdateURL(ctx context.Context, url *models.URL) error {
	tag, err := db.conn.Exec(ctx, `
		UPDATE urls
		SET original_url = $2, click_count = $3, last_click_at = $4, updated_at = $5, deleted_at = $6
		WHERE id = $1
	`, url.ID, url.OriginalURL, url.ClickCount, url.LastClickAt, url.UpdatedAt, url.DeletedAt)
	if err != nil {
		return translateError(err, store.EntityURL)
	}
	if tag.RowsAffected() == 0 {
		return translateError(pgx.ErrNoRows, store.EntityURL)
	}
	return nil
}

func (db *DBStore) GetAllURLsByUserID(ctx context.Context, userID string) ([]models.URL, error) {
	rows, err := db.conn.Query(ctx, `
		SELECT id, short_code, original_url, COALESCE(user_id::text, ''), click_count, last_click_at, created_at, updated_at, deleted_at
		FROM urls WHERE user_id = $1
		ORDER BY created_at
	`, userID)
	if err != nil {
		return nil, translateError(err, store.EntityURL)
	}
	defer rows.Close()

	urls := make([]models.URL, 0)
	for rows.Next() {
		var url models.URL
		if err := rows.Scan(&url.ID, &url.ShortCode, &url.OriginalURL, &url.UserID,
			&url.ClickCount, &url.LastClickAt, &url.CreatedAt, &url.UpdatedAt, &url.DeletedAt); err != nil {
			return nil, translateError(err, store.EntityURL)
		}
		urls = append(urls, url)
	}
	if err := rows.Err(); err != nil {
		return nil, translateError(err, store.EntityURL)
	}

	return urls, nil
}

func (db *DBStore) SaveUser(ctx context.Context, user *models.User) error {
	_, err := db.conn.Exec(ctx, `
		INSERT INTO users (id, name, email, password_hash, created_at, updated_at, deleted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, user.ID, user.Name, user.Email, user.PasswordHash, user.CreatedAt, user.UpdatedAt, user.DeletedAt)
	if err != nil {
		return translateError(err, store.EntityUser)
	}
	return nil
}

func (db *DBStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	row := db.conn.QueryRow(ctx, `
		SELECT id, name, email, password_hash, created_at, updated_at, deleted_at
		FROM users WHERE email = $1 AND deleted_at IS NULL
	`, email)
	if err := row.Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash,
		&user.CreatedAt, &user.UpdatedAt, &user.DeletedAt); err != nil {
		return nil, translateError(err, store.EntityUser)
	}
	return &user, nil
}

func (db *DBStore) Ping(ctx context.Context) error {
	return db.conn.Ping(ctx)
}

func (db *DBStore) Close(ctx context.Context) error {
	return db.conn.Close(ctx)
}

var _ store.Store = (*DBStore)(nil)
