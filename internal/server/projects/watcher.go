package projects

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultSettle собирает события одного сохранения в одно обновление
const DefaultSettle = 50 * time.Millisecond

// Update is a change notification of a watched project. Err is set when the
// project can not be rendered in its current state.
type Update struct {
	Time       time.Time
	Err        error
	UpdatedMML bool
}

// Watcher follows a project document and the style files it uses.
type Watcher struct {
	fs      *fsnotify.Watcher
	logger  *slog.Logger
	now     func() time.Time
	files   map[string]struct{}
	dirs    map[string]struct{}
	mmlPath string
	mss     []string
	settle  time.Duration
}

// NewWatcher prepares a watcher for the document at mmlPath. With an empty
// mss the style files listed in the document are followed, including ones
// added to it later.
func NewWatcher(mmlPath string, mss []string, logger *slog.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	return &Watcher{
		fs:      fw,
		logger:  logger,
		now:     time.Now,
		files:   make(map[string]struct{}),
		dirs:    make(map[string]struct{}),
		mmlPath: filepath.Clean(mmlPath),
		mss:     mss,
		settle:  DefaultSettle,
	}, nil
}

// Run sends an update describing the current state and then one update per
// settled change until ctx is done. The channel is closed on return.
func (w *Watcher) Run(ctx context.Context) <-chan Update {
	updates := make(chan Update, 1)

	go func() {
		defer close(updates)
		defer func() { _ = w.fs.Close() }()

		send := func(u Update) bool {
			select {
			case updates <- u:
				return true
			case <-ctx.Done():
				return false
			}
		}

		if !send(w.refresh(false)) {
			return
		}

		var (
			timer      *time.Timer
			timerC     <-chan time.Time
			mmlChanged bool
		)
		for {
			select {
			case <-ctx.Done():
				if timer != nil {
					timer.Stop()
				}
				return
			case ev, ok := <-w.fs.Events:
				if !ok {
					return
				}
				if !w.relevant(ev) {
					continue
				}
				if filepath.Clean(ev.Name) == w.mmlPath {
					mmlChanged = true
				}
				// таймер перезапускается на каждое событие
				if timer == nil {
					timer = time.NewTimer(w.settle)
				} else {
					timer.Reset(w.settle)
				}
				timerC = timer.C
			case <-timerC:
				timerC = nil
				if !send(w.refresh(mmlChanged)) {
					return
				}
				mmlChanged = false
			case err, ok := <-w.fs.Errors:
				if !ok {
					return
				}
				w.logger.Warn("File watcher error", "mml", w.mmlPath, "error", err)
				if !send(Update{Time: w.now().UTC(), Err: err}) {
					return
				}
			}
		}
	}()

	return updates
}

// refresh перечитывает документ и обновляет набор отслеживаемых файлов
func (w *Watcher) refresh(mmlChanged bool) Update {
	files, err := Inspect(w.mmlPath, w.mss)

	w.files = make(map[string]struct{}, len(files)+1)
	w.files[w.mmlPath] = struct{}{}
	for _, f := range files {
		w.files[filepath.Clean(f)] = struct{}{}
	}
	// отсутствующие файлы тоже отслеживаются, чтобы заметить их появление
	var missing *MissingFilesError
	if errors.As(err, &missing) {
		for _, name := range missing.Files {
			w.files[w.stylePath(name)] = struct{}{}
		}
	}
	for f := range w.files {
		w.watchDir(filepath.Dir(f))
	}

	return Update{Time: w.now().UTC(), Err: err, UpdatedMML: mmlChanged}
}

// watchDir следит за каталогом, а не за файлом: атомарное сохранение
// заменяет файл и снимает наблюдение с него
func (w *Watcher) watchDir(dir string) {
	if _, ok := w.dirs[dir]; ok {
		return
	}
	if err := w.fs.Add(dir); err != nil {
		w.logger.Warn("Failed to watch directory", "dir", dir, "error", err)
		return
	}
	w.dirs[dir] = struct{}{}
}

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if ev.Op == fsnotify.Chmod {
		return false
	}
	_, ok := w.files[filepath.Clean(ev.Name)]
	return ok
}

func (w *Watcher) stylePath(name string) string {
	if filepath.IsAbs(name) {
		return filepath.Clean(name)
	}
	return filepath.Join(filepath.Dir(w.mmlPath), filepath.FromSlash(name))
}
