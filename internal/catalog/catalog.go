package catalog

import (
	"fmt"
	"log/slog"

	"github.com/tobran/reel/internal/catalog/stash"
	"github.com/tobran/reel/internal/config"
	"github.com/tobran/reel/internal/domain"
)

// NewClient creates a domain.Catalog for the configured server. The factory
// abstracts away the concrete backend; Stash-compatible GraphQL is the only
// one today.
func NewClient(cfg *config.Config, logger *slog.Logger) (domain.Catalog, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is nil")
	}
	if cfg.Server.URL == "" {
		return nil, fmt.Errorf("server URL is required")
	}

	mode := stash.ModeScenes
	if cfg.Catalog.Media == config.MediaModeImages {
		mode = stash.ModeImages
	}

	return stash.NewClient(cfg.Server.URL, cfg.Server.APIKey, mode, cfg.Catalog.PageSize, logger), nil
}
