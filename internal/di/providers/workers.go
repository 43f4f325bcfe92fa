package providers

import (
	"context"
	"os"

	"github.com/samber/do/v2"

	"github.com/palmsoff/binderd/internal/config"
	"github.com/palmsoff/binderd/internal/importwatch"
	"github.com/palmsoff/binderd/internal/logger"
	"github.com/palmsoff/binderd/internal/service"
)

// ImportWatchHandle wraps the drop-directory watcher with shutdown capability.
// The watcher is optional; with no directory configured the handle is empty.
type ImportWatchHandle struct {
	watcher *importwatch.Watcher
	cancel  context.CancelFunc
}

// Shutdown implements do.Shutdownable.
func (h *ImportWatchHandle) Shutdown() error {
	if h.watcher == nil {
		return nil
	}
	h.cancel()
	return h.watcher.Stop()
}

// ProvideImportWatch provides the CSV drop-directory watcher.
func ProvideImportWatch(i do.Injector) (*ImportWatchHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	if cfg.Import.WatchDir == "" {
		return &ImportWatchHandle{}, nil
	}

	importService := do.MustInvoke[*service.ImportService](i)

	if err := os.MkdirAll(cfg.Import.WatchDir, 0o755); err != nil {
		return nil, err
	}

	watcher, err := importwatch.New(cfg.Import.WatchDir, importService, log.Logger, importwatch.Options{})
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		if err := watcher.Start(ctx); err != nil {
			log.Error("Import watch stopped", "error", err)
		}
	}()

	log.Info("Import watch started", "dir", cfg.Import.WatchDir)

	return &ImportWatchHandle{watcher: watcher, cancel: cancel}, nil
}
