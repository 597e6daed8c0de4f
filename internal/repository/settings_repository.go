package repository

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"github.com/minsu-han/warehouse-inbound/internal/model"
)

// SettingsStore persists the singleton settings row. Get creates the row
// lazily on first read; Update upserts.
type SettingsStore interface {
	Get(ctx context.Context) (model.Settings, error)
	Update(ctx context.Context, logoURL, userImage string) (model.Settings, error)
}

// SettingsRepo is the MySQL-backed SettingsStore.
type SettingsRepo struct {
	db *sql.DB
}

// NewSettingsRepo constructs a SettingsRepo with the given DB handle.
func NewSettingsRepo(db *sql.DB) *SettingsRepo {
	return &SettingsRepo{db: db}
}

func (r *SettingsRepo) Get(ctx context.Context) (model.Settings, error) {
	var s model.Settings
	err := r.db.QueryRowContext(ctx,
		`SELECT id, logo_url, user_image, updated_at FROM settings WHERE id = ?`,
		model.SettingsID).Scan(&s.ID, &s.LogoURL, &s.UserImage, &s.UpdatedAt)
	if err == sql.ErrNoRows {
		return r.Update(ctx, "", "")
	}
	return s, err
}

func (r *SettingsRepo) Update(ctx context.Context, logoURL, userImage string) (model.Settings, error) {
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO settings (id, logo_url, user_image, updated_at) VALUES (?, ?, ?, ?)
		 ON DUPLICATE KEY UPDATE logo_url = VALUES(logo_url), user_image = VALUES(user_image),
		 updated_at = VALUES(updated_at)`,
		model.SettingsID, logoURL, userImage, now)
	if err != nil {
		return model.Settings{}, err
	}
	return model.Settings{ID: model.SettingsID, LogoURL: logoURL, UserImage: userImage, UpdatedAt: now}, nil
}

// MemorySettingsStore is the in-memory SettingsStore.
type MemorySettingsStore struct {
	mu sync.Mutex
	s  model.Settings
}

// NewMemorySettingsStore returns a store holding a zero-value settings row.
func NewMemorySettingsStore() *MemorySettingsStore {
	return &MemorySettingsStore{s: model.Settings{ID: model.SettingsID}}
}

func (m *MemorySettingsStore) Get(_ context.Context) (model.Settings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.s, nil
}

func (m *MemorySettingsStore) Update(_ context.Context, logoURL, userImage string) (model.Settings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.s.LogoURL = logoURL
	m.s.UserImage = userImage
	m.s.UpdatedAt = time.Now().UTC()
	return m.s, nil
}
