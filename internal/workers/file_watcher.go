package workers

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/MKhiriev/go-sync-keeper/internal/logger"
	"github.com/MKhiriev/go-sync-keeper/models"
)

// FileWatcher observes the local data file and hands every new content to
// auto-sync. The parent directory is watched rather than the file itself
// because editors commonly save by rename, which drops a file-level watch.
type FileWatcher struct {
	path    string
	watcher *fsnotify.Watcher
	target  AutoSyncer

	logger *logger.Logger
}

func NewFileWatcher(path string, target AutoSyncer, logger *logger.Logger) (*FileWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve watched file %s: %w", path, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	if err = watcher.Add(filepath.Dir(abs)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to watch directory of %s: %w", abs, err)
	}

	return &FileWatcher{
		path:    abs,
		watcher: watcher,
		target:  target,
		logger:  logger,
	}, nil
}

// Run processes file events until ctx is cancelled, then closes the watcher.
func (fw *FileWatcher) Run(ctx context.Context) {
	defer fw.watcher.Close()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			if !fw.relevant(event) {
				continue
			}
			fw.handleChange()

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			fw.logger.Err(err).Str("func", "FileWatcher.Run").Msg("watcher error")
		}
	}
}

func (fw *FileWatcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != fw.path {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create)
}

func (fw *FileWatcher) handleChange() {
	data, err := os.ReadFile(fw.path)
	if err != nil {
		fw.logger.Err(err).Str("path", fw.path).Msg("error reading watched file")
		return
	}
	if !json.Valid(data) {
		// partial writes show up as invalid JSON; the next event carries the rest
		fw.logger.Debug().Str("path", fw.path).Msg("watched file is not valid JSON yet, skipping")
		return
	}
	if models.IsEmptyPayload(data) {
		fw.logger.Debug().Str("path", fw.path).Msg("watched file is empty, skipping")
		return
	}

	fw.logger.Debug().Str("path", fw.path).Int("bytes", len(data)).Msg("local data changed")
	fw.target.AutoSync(models.Payload(data))
}
