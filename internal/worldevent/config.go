// Package worldevent turns tracker status changes into short narrative
// messages for the overlay, driven by a static world-events resource.
package worldevent

import (
	"context"

	"github.com/go-playground/validator/v10"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/jynba/worldline/internal/domain"
	"github.com/jynba/worldline/internal/logger"
	"github.com/jynba/worldline/internal/utils"
)

// ConfigStore loads and caches world event config packs by file path.
// Invalid entries are skipped with a warning rather than failing the load.
type ConfigStore struct {
	validate *validator.Validate
	cache    *lru.Cache[string, []domain.WorldEventConfig]
}

// NewConfigStore creates a config store with an empty cache.
func NewConfigStore() *ConfigStore {
	cache, _ := lru.New[string, []domain.WorldEventConfig](ConfigCacheSize)
	return &ConfigStore{
		validate: validator.New(),
		cache:    cache,
	}
}

// Load returns the validated event configs from the file at path. Repeated
// loads of the same path are served from cache; the resource is static for
// the lifetime of the process.
func (s *ConfigStore) Load(ctx context.Context, path string) ([]domain.WorldEventConfig, error) {
	if cached, ok := s.cache.Get(path); ok {
		return cached, nil
	}

	var raw []domain.WorldEventConfig
	if err := utils.LoadJSON(path, &raw); err != nil {
		return nil, err
	}

	valid := make([]domain.WorldEventConfig, 0, len(raw))
	for _, entry := range raw {
		if err := s.validate.Struct(entry); err != nil {
			logger.FromContext(ctx).Warn(LogMsgInvalidEventConfig, "id", entry.ID, "error", err)
			continue
		}
		valid = append(valid, entry)
	}

	s.cache.Add(path, valid)
	return valid, nil
}
