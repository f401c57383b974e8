// Package storage persists the relationship dataset and the community intro log.
package storage

import (
	"context"
	"errors"

	"github.com/hyperjump/kue/internal/models"
)

// ErrNotFound is returned when the store holds no dataset.
var ErrNotFound = errors.New("not found")

// Storage defines dataset and intro request persistence operations.
type Storage interface {
	// Dataset operations
	ReplaceDataset(ctx context.Context, r *models.Records) error
	LoadRecords(ctx context.Context) (*models.Records, error)
	Counts(ctx context.Context) (models.DatasetStats, error)

	// Intro request log
	RecordIntroRequest(ctx context.Context, res *models.IntroRequestResult) error
	ListIntroRequests(ctx context.Context, offset, limit int) ([]*models.IntroRequestResult, error)
	CountIntroRequests(ctx context.Context) (int64, error)

	Close() error
}
