package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"VolSentry/internal/domain/models"
	"VolSentry/internal/domain/repository"
	"VolSentry/pkg/cache"
)

const settingsKey = "settings"

// RedisSettingsStore persists the tunables as a JSON document in Redis.
type RedisSettingsStore struct {
	kv cache.Service
}

// NewRedisSettingsStore creates a Redis-backed settings store.
func NewRedisSettingsStore(kv cache.Service) repository.SettingsStore {
	return &RedisSettingsStore{kv: kv}
}

func (s *RedisSettingsStore) Load(ctx context.Context) (*models.SettingsSnapshot, error) {
	var snap models.SettingsSnapshot
	err := s.kv.Get(ctx, settingsKey, &snap)
	if errors.Is(err, cache.ErrCacheMiss) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	return &snap, nil
}

func (s *RedisSettingsStore) Persist(ctx context.Context, snap models.SettingsSnapshot) error {
	// no expiration: settings live until overwritten
	if err := s.kv.Set(ctx, settingsKey, snap, 0); err != nil {
		return fmt.Errorf("persist settings: %w", err)
	}
	return nil
}

// FileSettingsStore persists the tunables as a JSON file, for deployments
// without Redis. The document format matches the Redis store.
type FileSettingsStore struct {
	path string
}

// NewFileSettingsStore creates a file-backed settings store.
func NewFileSettingsStore(path string) repository.SettingsStore {
	return &FileSettingsStore{path: path}
}

func (s *FileSettingsStore) Load(ctx context.Context) (*models.SettingsSnapshot, error) {
	b, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	var snap models.SettingsSnapshot
	if err := json.Unmarshal(b, &snap); err != nil {
		return nil, fmt.Errorf("parse settings: %w", err)
	}
	return &snap, nil
}

func (s *FileSettingsStore) Persist(ctx context.Context, snap models.SettingsSnapshot) error {
	b, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}
	if err := os.WriteFile(s.path, b, 0o644); err != nil {
		return fmt.Errorf("persist settings: %w", err)
	}
	return nil
}
