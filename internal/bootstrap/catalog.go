package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/rishav-026/Gamified-Coding-platform/internal/catalog"
	"github.com/rishav-026/Gamified-Coding-platform/internal/config"
)

// LoadCatalog reads and validates the quest and tutorial YAML files from the configured directory
func LoadCatalog(cfg *config.Config) (*catalog.Catalog, error) {
	slog.Info(LogMsgLoadingCatalog, "dir", cfg.CatalogDir)

	loader := catalog.NewLoader(cfg.CatalogDir)
	if err := loader.Load(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedLoadCat, err)
	}
	cat, err := loader.Catalog()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedLoadCat, err)
	}

	slog.Info(LogMsgCatalogLoaded,
		"quests", len(cat.Quests()),
		"tasks", cat.TaskCount(),
		"tutorials", len(cat.Tutorials()))
	return cat, nil
}
