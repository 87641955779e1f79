// Package watch reconverts a markdown directory whenever its files change.
// Filesystem events are debounced into a single conversion run, overlapping
// triggers coalesce into one follow-up run, and an optional periodic resync
// catches changes the watcher missed.
package watch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-co-op/gocron/v2"

	"git.home.luguber.info/inful/mddocx/internal/convert"
	"git.home.luguber.info/inful/mddocx/internal/logfields"
	"git.home.luguber.info/inful/mddocx/internal/metrics"
)

const shutdownTimeout = 5 * time.Second

// Runner converts a set of inputs. *convert.Converter satisfies it.
type Runner interface {
	Run(ctx context.Context, inputs []string, outputDir string) (*convert.RunResult, error)
}

// Watcher owns the watch-mode lifecycle: initial conversion, filesystem
// watching, debounced reconversion, optional resync and metrics listener.
type Watcher struct {
	runner    Runner
	dir       string
	outputDir string
	debounce  time.Duration
	resync    time.Duration
	recorder  metrics.Recorder
	logger    *slog.Logger

	metricsListen  string
	metricsHandler http.Handler

	mu    sync.Mutex
	dirty map[string]struct{}
}

// New creates a Watcher converting dir into outputDir. The debounce window
// defaults to 300ms and periodic resync is disabled until configured.
func New(runner Runner, dir, outputDir string, logger *slog.Logger) *Watcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Watcher{
		runner:    runner,
		dir:       dir,
		outputDir: outputDir,
		debounce:  300 * time.Millisecond,
		recorder:  metrics.NoopRecorder{},
		logger:    logger,
		dirty:     make(map[string]struct{}),
	}
}

// WithDebounce sets the quiet window applied to change bursts.
func (w *Watcher) WithDebounce(d time.Duration) *Watcher {
	if d > 0 {
		w.debounce = d
	}
	return w
}

// WithResync enables a periodic full reconversion. Zero disables it.
func (w *Watcher) WithResync(d time.Duration) *Watcher {
	w.resync = d
	return w
}

// WithRecorder attaches a metrics recorder for the pending-files gauge.
func (w *Watcher) WithRecorder(r metrics.Recorder) *Watcher {
	if r != nil {
		w.recorder = r
	}
	return w
}

// WithMetricsServer serves handler on listen for as long as the watcher runs.
func (w *Watcher) WithMetricsServer(listen string, handler http.Handler) *Watcher {
	w.metricsListen = listen
	w.metricsHandler = handler
	return w
}

// Start converts once, then blocks watching for changes until ctx is done.
func (w *Watcher) Start(ctx context.Context) error {
	if err := w.resolveDirs(); err != nil {
		return err
	}

	w.runOnce(ctx, "initial")

	fsw, err := w.setupWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = fsw.Close() }()

	requests := make(chan struct{}, 1)
	trigger := w.debounceTrigger(requests)
	go w.worker(ctx, requests)

	scheduler, err := w.startResync(requests)
	if err != nil {
		return err
	}

	metricsSrv := w.startMetricsServer()

	w.logger.Info("watching for changes",
		logfields.Dir(w.dir),
		logfields.Output(w.outputDir),
		slog.Duration("debounce", w.debounce))

	return w.loop(ctx, fsw, trigger, scheduler, metricsSrv)
}

// resolveDirs validates the watched directory and absolutizes both paths so
// output writes inside the watched tree can be told apart from edits.
func (w *Watcher) resolveDirs() error {
	absDir, err := filepath.Abs(w.dir)
	if err != nil {
		return fmt.Errorf("resolve watch dir: %w", err)
	}
	if st, statErr := os.Stat(absDir); statErr != nil || !st.IsDir() {
		return fmt.Errorf("watch dir not found or not a directory: %s", absDir)
	}
	absOut, err := filepath.Abs(w.outputDir)
	if err != nil {
		return fmt.Errorf("resolve output dir: %w", err)
	}
	w.dir = absDir
	w.outputDir = absOut
	return nil
}

func (w *Watcher) setupWatcher() (*fsnotify.Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("fsnotify: %w", err)
	}
	if err := w.addDirsRecursive(fsw, w.dir); err != nil {
		_ = fsw.Close()
		return nil, err
	}
	return fsw, nil
}

// debounceTrigger returns a function that schedules a conversion request
// after the quiet window, restarting the window on every call.
func (w *Watcher) debounceTrigger(requests chan struct{}) func() {
	var mu sync.Mutex
	var timer *time.Timer

	return func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(w.debounce, func() {
			select {
			case requests <- struct{}{}:
			default:
			}
		})
	}
}

// worker serializes conversion runs. The requests channel holds at most one
// queued trigger, so a burst arriving while a run is in flight folds into a
// single follow-up run.
func (w *Watcher) worker(ctx context.Context, requests chan struct{}) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-requests:
			w.runOnce(ctx, "change")
		}
	}
}

func (w *Watcher) runOnce(ctx context.Context, reason string) {
	if ctx.Err() != nil {
		return
	}
	w.clearPending()

	result, err := w.runner.Run(ctx, []string{w.dir}, w.outputDir)
	if err != nil {
		w.logger.Error("conversion run failed", slog.String("reason", reason), logfields.Error(err))
		return
	}
	w.logger.Info("conversion run finished",
		slog.String("reason", reason),
		slog.String("status", result.Status()),
		slog.Int("converted", len(result.Converted)),
		slog.Int("failed", len(result.Failed)))
}

// startResync schedules a periodic full reconversion when configured.
func (w *Watcher) startResync(requests chan struct{}) (gocron.Scheduler, error) {
	if w.resync <= 0 {
		return nil, nil
	}

	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create gocron scheduler: %w", err)
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(w.resync),
		gocron.NewTask(func() {
			w.logger.Debug("periodic resync requested")
			select {
			case requests <- struct{}{}:
			default:
			}
		}),
		gocron.WithName("resync"),
	)
	if err != nil {
		_ = scheduler.Shutdown()
		return nil, fmt.Errorf("failed to create resync job: %w", err)
	}

	scheduler.Start()
	w.logger.Info("periodic resync enabled", slog.Duration("interval", w.resync))
	return scheduler, nil
}

func (w *Watcher) startMetricsServer() *http.Server {
	if w.metricsListen == "" || w.metricsHandler == nil {
		return nil
	}

	srv := &http.Server{
		Addr:              w.metricsListen,
		Handler:           w.metricsHandler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		w.logger.Info("metrics listener started", slog.String("listen", w.metricsListen))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			w.logger.Error("metrics listener failed", logfields.Error(err))
		}
	}()
	return srv
}

func (w *Watcher) loop(ctx context.Context, fsw *fsnotify.Watcher, trigger func(), scheduler gocron.Scheduler, metricsSrv *http.Server) error {
	for {
		select {
		case <-ctx.Done():
			return w.shutdown(scheduler, metricsSrv)
		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			w.handleEvent(fsw, ev, trigger)
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher error", logfields.Error(err))
		}
	}
}

func (w *Watcher) shutdown(scheduler gocron.Scheduler, metricsSrv *http.Server) error {
	w.logger.Info("shutting down watch mode")

	if scheduler != nil {
		if err := scheduler.Shutdown(); err != nil {
			w.logger.Warn("scheduler shutdown error", logfields.Error(err))
		}
	}
	if metricsSrv != nil {
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := metricsSrv.Shutdown(sctx); err != nil {
			w.logger.Warn("metrics listener shutdown error", logfields.Error(err))
		}
	}
	return nil
}

func (w *Watcher) handleEvent(fsw *fsnotify.Watcher, ev fsnotify.Event, trigger func()) {
	if w.shouldIgnoreEvent(ev.Name) {
		return
	}
	if ev.Op&fsnotify.Create == fsnotify.Create {
		if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
			_ = w.addDirsRecursive(fsw, ev.Name)
			trigger()
			return
		}
	}
	w.logger.Debug("file change detected", logfields.Path(ev.Name), slog.String("op", ev.Op.String()))
	w.markPending(ev.Name)
	trigger()
}

func (w *Watcher) markPending(path string) {
	w.mu.Lock()
	w.dirty[path] = struct{}{}
	n := len(w.dirty)
	w.mu.Unlock()
	w.recorder.SetPendingFiles(n)
}

func (w *Watcher) clearPending() {
	w.mu.Lock()
	w.dirty = make(map[string]struct{})
	w.mu.Unlock()
	w.recorder.SetPendingFiles(0)
}

// addDirsRecursive registers root and its subdirectories, skipping hidden
// directories and the output tree.
func (w *Watcher) addDirsRecursive(fsw *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if w.insideOutputDir(path) {
			return filepath.SkipDir
		}
		if err := fsw.Add(path); err != nil {
			w.logger.Warn("watch add failed", logfields.Dir(path), logfields.Error(err))
		}
		return nil
	})
}

// shouldIgnoreEvent filters events that must not trigger a reconversion:
// our own output artifacts, hidden files, and editor temp or swap files.
func (w *Watcher) shouldIgnoreEvent(path string) bool {
	if w.insideOutputDir(path) {
		return true
	}

	base := filepath.Base(path)
	if strings.HasPrefix(base, ".") {
		return true
	}
	if strings.HasSuffix(base, "~") ||
		strings.HasSuffix(base, ".swp") ||
		strings.HasSuffix(base, ".swx") ||
		strings.HasSuffix(base, ".docx") ||
		strings.HasPrefix(base, "#") && strings.HasSuffix(base, "#") {
		return true
	}
	return base == "Thumbs.db"
}

func (w *Watcher) insideOutputDir(path string) bool {
	if path == w.outputDir {
		return true
	}
	return strings.HasPrefix(path, w.outputDir+string(filepath.Separator))
}
