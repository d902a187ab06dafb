package watcher

import (
	"fmt"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/nguyentantai21042004/lead-digest/internal/logger"
)

// settleDelay gives a copy in progress time to finish before the handler runs.
const settleDelay = 500 * time.Millisecond

// New creates a Watcher on dir. Matching files are handled one at a time, in
// arrival order.
func New(dir string, filter Filter, handler EventHandler, log logger.Logger) (Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("add watch path: %w", err)
	}

	return &implWatcher{
		dir:     dir,
		filter:  filter,
		handler: handler,
		logger:  log.With("component", "watcher"),
		watcher: watcher,
		settle:  settleDelay,
	}, nil
}
