package search

import (
	"github.com/hyperjump/kue/internal/config"
	"github.com/hyperjump/kue/internal/models"
)

// ProcessQuery validates the search query and applies the configured limits.
func ProcessQuery(query *models.SearchQuery, cfg *config.SearchConfig) error {
	if err := query.Validate(); err != nil {
		return err
	}
	query.ApplyLimits(cfg.DefaultLimit, cfg.MaxLimit)
	return nil
}
