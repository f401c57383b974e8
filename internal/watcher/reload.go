package watcher

import (
	"go.uber.org/zap"

	"github.com/hyperjump/kue/internal/dataset"
	"github.com/hyperjump/kue/pkg/utils"
)

// ReloadFunc observes the outcome of each reload attempt.
type ReloadFunc func(path string, err error)

// NewDatasetWatcher watches the dataset file at path and reloads holder whenever
// it changes. A failed reload keeps the previous snapshot live. onReload, when
// non-nil, is told about every attempt.
func NewDatasetWatcher(path string, holder *dataset.Holder, logger *zap.Logger, onReload ReloadFunc, opts ...WatcherOption) *Watcher {
	logger = utils.OrNop(logger)
	reload := func(p string) {
		err := holder.Reload(p)
		if err != nil {
			logger.Warn("dataset reload failed; keeping previous snapshot",
				zap.String("path", p),
				zap.Error(err))
		} else {
			stats := holder.Current().Stats()
			logger.Info("dataset reloaded",
				zap.String("path", p),
				zap.Uint64("version", holder.Version()),
				zap.Int("people", stats.People))
		}
		if onReload != nil {
			onReload(p, err)
		}
	}
	removed := func(p string) {
		logger.Warn("dataset file removed; keeping previous snapshot", zap.String("path", p))
	}
	opts = append([]WatcherOption{
		WithLogger(logger),
		WithExtensions(".yaml", ".yml", ".json", ".xlsx"),
	}, opts...)
	return NewWatcher([]string{path}, reload, removed, opts...)
}
