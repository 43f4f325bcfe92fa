// Package importwatch watches a drop directory for Collectr CSV exports
// and imports them automatically. Files are imported once they stop
// changing; imported files are renamed so they never re-trigger.
package importwatch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/palmsoff/binderd/internal/service"
)

// CSVImporter is the slice of the import service the watcher needs.
type CSVImporter interface {
	ImportCSV(ctx context.Context, r io.Reader) (*service.ImportResult, error)
}

// Options configures the watcher.
type Options struct {
	// SettleDelay is how long a file must stay unchanged before it is
	// considered fully written. Exports are usually written in one shot,
	// but slow copies over a network mount are not.
	SettleDelay time.Duration
}

func (o *Options) setDefaults() {
	if o.SettleDelay <= 0 {
		o.SettleDelay = 500 * time.Millisecond
	}
}

// importedSuffix marks files that were already picked up.
const importedSuffix = ".imported"

// Watcher monitors a single directory for dropped CSV files.
type Watcher struct {
	dir      string
	importer CSVImporter
	logger   *slog.Logger
	opts     Options
	watcher  *fsnotify.Watcher

	pending map[string]*pendingFile
	mu      sync.Mutex

	done chan struct{}
	wg   sync.WaitGroup
}

// pendingFile tracks a file that may still be changing.
type pendingFile struct {
	size    int64
	modTime time.Time
	timer   *time.Timer
}

// New creates a watcher over dir. The directory must exist.
func New(dir string, importer CSVImporter, logger *slog.Logger, opts Options) (*Watcher, error) {
	opts.setDefaults()

	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("stat watch dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("watch path %q is not a directory", dir)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}
	if err := fw.Add(dir); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watch %q: %w", dir, err)
	}

	return &Watcher{
		dir:      dir,
		importer: importer,
		logger:   logger,
		opts:     opts,
		watcher:  fw,
		pending:  make(map[string]*pendingFile),
		done:     make(chan struct{}),
	}, nil
}

// Start begins watching. It picks up CSV files already sitting in the
// directory, then blocks until the context is cancelled.
func (w *Watcher) Start(ctx context.Context) error {
	w.sweepExisting()

	w.wg.Add(1)
	go w.processEvents(ctx)

	w.logger.Info("import watch started", "dir", w.dir)
	<-ctx.Done()
	return nil
}

// Stop stops the watcher and releases resources.
func (w *Watcher) Stop() error {
	close(w.done)

	w.mu.Lock()
	for _, p := range w.pending {
		p.timer.Stop()
	}
	clear(w.pending)
	w.mu.Unlock()

	err := w.watcher.Close()
	w.wg.Wait()
	return err
}

// sweepExisting schedules CSV files that were dropped while the watcher
// was not running.
func (w *Watcher) sweepExisting() {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		w.logger.Warn("read watch dir failed", "dir", w.dir, "error", err)
		return
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(w.dir, entry.Name())
		if isImportableCSV(path) {
			w.schedule(path)
		}
	}
}

func (w *Watcher) processEvents(ctx context.Context) {
	defer w.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watch error", "error", err)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if !isImportableCSV(event.Name) {
		return
	}

	if event.Op&fsnotify.Remove != 0 || event.Op&fsnotify.Rename != 0 {
		w.cancelPending(event.Name)
		return
	}
	if event.Op&(fsnotify.Create|fsnotify.Write) != 0 {
		w.schedule(event.Name)
	}
}

// cancelPending drops the settle timer for a file that went away.
func (w *Watcher) cancelPending(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if p, exists := w.pending[path]; exists {
		p.timer.Stop()
		delete(w.pending, path)
	}
}

// schedule starts or restarts the settle timer for a file.
func (w *Watcher) schedule(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if p, exists := w.pending[path]; exists {
		p.timer.Stop()
	}

	info, err := os.Stat(path)
	if err != nil {
		delete(w.pending, path)
		return
	}
	if info.IsDir() {
		return
	}

	p := &pendingFile{size: info.Size(), modTime: info.ModTime()}
	p.timer = time.AfterFunc(w.opts.SettleDelay, func() {
		w.checkSettled(path)
	})
	w.pending[path] = p
}

// checkSettled imports the file once its size and mtime stop moving.
func (w *Watcher) checkSettled(path string) {
	w.mu.Lock()
	p, exists := w.pending[path]
	if !exists {
		w.mu.Unlock()
		return
	}

	info, err := os.Stat(path)
	if err != nil {
		delete(w.pending, path)
		w.mu.Unlock()
		return
	}
	if info.Size() != p.size || !info.ModTime().Equal(p.modTime) {
		p.size = info.Size()
		p.modTime = info.ModTime()
		p.timer = time.AfterFunc(w.opts.SettleDelay, func() {
			w.checkSettled(path)
		})
		w.mu.Unlock()
		return
	}

	delete(w.pending, path)
	w.mu.Unlock()

	select {
	case <-w.done:
		return
	default:
	}
	w.importFile(path)
}

// importFile runs one file through the CSV import pipeline. A file that
// fails to import is renamed aside with the reason logged; the watcher
// keeps running either way.
func (w *Watcher) importFile(path string) {
	f, err := os.Open(path)
	if err != nil {
		w.logger.Warn("open dropped file failed", "path", path, "error", err)
		return
	}

	result, err := w.importer.ImportCSV(context.Background(), f)
	f.Close()
	if err != nil {
		w.logger.Warn("import of dropped file rejected", "path", path, "error", err)
		w.setAside(path, ".rejected")
		return
	}

	w.logger.Info("dropped file imported",
		"path", path,
		"cards", result.CardCount,
		"collections", len(result.Collections),
	)
	w.setAside(path, importedSuffix)
}

// setAside renames a processed file so it cannot trigger again.
func (w *Watcher) setAside(path, suffix string) {
	if err := os.Rename(path, path+suffix); err != nil {
		w.logger.Warn("rename processed file failed", "path", path, "error", err)
	}
}

func isImportableCSV(path string) bool {
	name := strings.ToLower(filepath.Base(path))
	return strings.HasSuffix(name, ".csv")
}
