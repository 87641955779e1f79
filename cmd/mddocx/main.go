package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/alecthomas/kong"
	"github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/mddocx/internal/config"
	"git.home.luguber.info/inful/mddocx/internal/convert"
	"git.home.luguber.info/inful/mddocx/internal/diagram"
	apperrors "git.home.luguber.info/inful/mddocx/internal/errors"
	"git.home.luguber.info/inful/mddocx/internal/history"
	"git.home.luguber.info/inful/mddocx/internal/logfields"
	"git.home.luguber.info/inful/mddocx/internal/metrics"
	"git.home.luguber.info/inful/mddocx/internal/notify"
	"git.home.luguber.info/inful/mddocx/internal/source"
	"git.home.luguber.info/inful/mddocx/internal/version"
	"git.home.luguber.info/inful/mddocx/internal/watch"
)

var CLI struct {
	Config  string `short:"c" help:"Configuration file path" default:"config.yaml"`
	Verbose bool   `short:"v" help:"Enable verbose logging"`

	Convert struct {
		Paths  []string `arg:"" help:"Markdown files or directories to convert"`
		Output string   `short:"o" help:"Output directory for converted documents"`
	} `cmd:"" help:"Convert markdown files or directories to DOCX"`

	Repo struct {
		Output      string `short:"o" help:"Output directory for converted documents"`
		Incremental bool   `short:"i" help:"Update existing checkouts instead of fresh clones"`
	} `cmd:"" help:"Convert markdown from the configured git repositories"`

	Watch struct {
		Dir    string `arg:"" help:"Directory to watch for markdown changes"`
		Output string `short:"o" help:"Output directory for converted documents"`
	} `cmd:"" help:"Watch a directory and reconvert on changes"`

	History struct {
		Limit int `short:"n" help:"Number of runs to show" default:"20"`
	} `cmd:"" help:"Show recent conversion runs"`

	Init struct {
		Force bool `help:"Overwrite existing configuration file"`
	} `cmd:"" help:"Initialize a new configuration file"`

	Version struct{} `cmd:"" help:"Print version information"`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("mddocx"),
		kong.Description("Convert GitHub-flavored markdown documents to DOCX."),
	)

	logLevel := slog.LevelInfo
	if CLI.Verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	var err error
	switch ctx.Command() {
	case "convert <paths>":
		err = runConvert(CLI.Convert.Paths, CLI.Convert.Output)
	case "repo":
		err = runRepo(CLI.Repo.Output, CLI.Repo.Incremental)
	case "watch <dir>":
		err = runWatch(CLI.Watch.Dir, CLI.Watch.Output)
	case "history":
		err = runHistory(CLI.History.Limit)
	case "init":
		err = runInit(CLI.Config, CLI.Init.Force)
	case "version":
		fmt.Printf("mddocx %s (commit %s, built %s)\n", version.Version, version.GitCommit, version.BuildTime)
	}

	if err != nil {
		adapter := apperrors.NewCLIErrorAdapter(CLI.Verbose, logger)
		fmt.Fprintln(os.Stderr, adapter.FormatError(err))
		os.Exit(adapter.ExitCodeFor(err))
	}
}

func runConvert(paths []string, output string) error {
	cfg, err := config.LoadOrDefault(CLI.Config)
	if err != nil {
		return err
	}
	if output == "" {
		output = cfg.Output.Directory
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	conv, cleanup, err := buildConverter(cfg, metrics.NoopRecorder{})
	if err != nil {
		return err
	}
	defer cleanup()

	result, err := conv.Run(ctx, paths, output)
	if err != nil {
		return err
	}
	printRunResult(result)

	if len(result.Failed) > 0 {
		return result.Failed[0].Err
	}
	return nil
}

func runRepo(output string, incremental bool) error {
	cfg, err := config.Load(CLI.Config)
	if err != nil {
		return err
	}
	if len(cfg.Sources) == 0 {
		return apperrors.ValidationFailed("sources", "no repositories configured")
	}
	if output == "" {
		output = cfg.Output.Directory
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	client := source.NewClient(cfg.Workspace, slog.Default())
	if err := client.EnsureWorkspace(); err != nil {
		return err
	}

	var inputs []string
	for _, repo := range cfg.Sources {
		slog.Info("processing repository", logfields.Repository(repo.Name), logfields.URL(repo.URL))

		var repoPath string
		var repoErr error
		if incremental {
			repoPath, repoErr = client.UpdateRepository(repo)
		} else {
			repoPath, repoErr = client.CloneRepository(repo)
		}
		if repoErr != nil {
			return apperrors.SourceCloneFailed(repo.Name, repoErr)
		}

		for _, p := range repo.Paths {
			inputs = append(inputs, filepath.Join(repoPath, p))
		}
	}

	conv, cleanup, err := buildConverter(cfg, metrics.NoopRecorder{})
	if err != nil {
		return err
	}
	defer cleanup()

	result, err := conv.Run(ctx, inputs, output)
	if err != nil {
		return err
	}
	printRunResult(result)

	if len(result.Failed) > 0 {
		return result.Failed[0].Err
	}
	return nil
}

func runWatch(dir, output string) error {
	cfg, err := config.LoadOrDefault(CLI.Config)
	if err != nil {
		return err
	}
	if output == "" {
		output = cfg.Output.Directory
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var recorder metrics.Recorder = metrics.NoopRecorder{}
	var metricsHandler http.Handler
	if cfg.Metrics.Enabled {
		registry := prometheus.NewRegistry()
		recorder = metrics.NewPrometheusRecorder(registry)
		metricsHandler = metrics.HTTPHandler(registry)
	}

	conv, cleanup, err := buildConverter(cfg, recorder)
	if err != nil {
		return err
	}
	defer cleanup()

	watcher := watch.New(conv, dir, output, slog.Default()).
		WithDebounce(cfg.Watch.DebounceDuration()).
		WithResync(cfg.Watch.ResyncInterval()).
		WithRecorder(recorder)
	if metricsHandler != nil {
		watcher = watcher.WithMetricsServer(cfg.Metrics.Listen, metricsHandler)
	}

	return watcher.Start(ctx)
}

func runHistory(limit int) error {
	cfg, err := config.LoadOrDefault(CLI.Config)
	if err != nil {
		return err
	}
	if !cfg.History.Enabled {
		return apperrors.ValidationFailed("history", "history is disabled in the configuration")
	}

	store, err := history.NewSQLiteStore(cfg.History.Path)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	projection := history.NewRunHistoryProjection(store, limit)
	if err := projection.Rebuild(ctx); err != nil {
		return err
	}

	runs := projection.GetHistory()
	if len(runs) == 0 {
		fmt.Println("No conversion runs recorded.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "RUN\tSTARTED\tSTATUS\tFILES\tCONVERTED\tFAILED\tSKIPPED\tDURATION")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\t%d\t%s\n",
			shortRunID(run.RunID),
			run.StartedAt.Format("2006-01-02 15:04:05"),
			run.Status,
			run.FileCount,
			run.Converted,
			run.Failed,
			run.SkippedNodes,
			run.Duration.Round(time.Millisecond),
		)
	}
	return w.Flush()
}

func runInit(configPath string, force bool) error {
	slog.Info("initializing configuration", logfields.Path(configPath), slog.Bool("force", force))
	if err := config.Init(configPath, force); err != nil {
		return err
	}
	fmt.Printf("Created configuration file: %s\n", configPath)
	return nil
}

// buildConverter assembles the converter with the optional subsystems the
// configuration enables. The returned cleanup closes whatever was opened.
func buildConverter(cfg *config.Config, recorder metrics.Recorder) (*convert.Converter, func(), error) {
	logger := slog.Default()
	conv := convert.New(logger).WithRecorder(recorder)

	if renderer := diagram.New(cfg.Diagrams, logger); renderer != nil {
		conv = conv.WithDiagramRenderer(renderer)
	}

	var cleanups []func()
	cleanup := func() {
		for i := len(cleanups) - 1; i >= 0; i-- {
			cleanups[i]()
		}
	}

	if cfg.History.Enabled {
		store, err := history.NewSQLiteStore(cfg.History.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open history store: %w", err)
		}
		cleanups = append(cleanups, func() { _ = store.Close() })
		conv = conv.WithEmitter(history.NewEmitter(store, nil))
	}

	publisher, err := notify.New(cfg.Notifications, logger)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	if publisher != nil {
		cleanups = append(cleanups, func() { _ = publisher.Close() })
		conv = conv.WithPublisher(publisher)
	}

	return conv, cleanup, nil
}

func printRunResult(result *convert.RunResult) {
	for _, file := range result.Converted {
		fmt.Printf("Converted: %s -> %s\n", file.Input, file.Output)
	}
	for _, failure := range result.Failed {
		fmt.Fprintf(os.Stderr, "Failed: %s (%v)\n", failure.Input, failure.Err)
	}
}

func shortRunID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
