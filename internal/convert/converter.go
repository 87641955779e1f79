// Package convert orchestrates the markdown to DOCX pipeline: read,
// frontmatter split, parse, diagram preprocessing, alert rewrite, render,
// save. Files convert sequentially and independently; one file's failure
// never stops the rest of the run.
package convert

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/mddocx/internal/diagram"
	"git.home.luguber.info/inful/mddocx/internal/discover"
	"git.home.luguber.info/inful/mddocx/internal/docx"
	apperrors "git.home.luguber.info/inful/mddocx/internal/errors"
	"git.home.luguber.info/inful/mddocx/internal/frontmatter"
	"git.home.luguber.info/inful/mddocx/internal/history"
	"git.home.luguber.info/inful/mddocx/internal/logfields"
	"git.home.luguber.info/inful/mddocx/internal/markdown"
	"git.home.luguber.info/inful/mddocx/internal/metrics"
	"git.home.luguber.info/inful/mddocx/internal/notify"
	"git.home.luguber.info/inful/mddocx/internal/render"
)

// Converter runs the conversion pipeline. Construct with New then attach
// optional collaborators with the With* methods.
type Converter struct {
	logger    *slog.Logger
	renderer  diagram.Renderer
	recorder  metrics.Recorder
	emitter   *history.Emitter
	publisher *notify.Publisher
}

// New creates a Converter with no diagram renderer, no history, no
// notifications, and a no-op metrics recorder.
func New(logger *slog.Logger) *Converter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Converter{
		logger:   logger,
		recorder: metrics.NoopRecorder{},
	}
}

// WithDiagramRenderer enables diagram preprocessing. A nil renderer leaves
// mermaid blocks rendering as plain code.
func (c *Converter) WithDiagramRenderer(r diagram.Renderer) *Converter {
	c.renderer = r
	return c
}

// WithRecorder attaches a metrics recorder.
func (c *Converter) WithRecorder(r metrics.Recorder) *Converter {
	if r != nil {
		c.recorder = r
	}
	return c
}

// WithEmitter attaches a run history emitter.
func (c *Converter) WithEmitter(e *history.Emitter) *Converter {
	c.emitter = e
	return c
}

// WithPublisher attaches a NATS run event publisher.
func (c *Converter) WithPublisher(p *notify.Publisher) *Converter {
	c.publisher = p
	return c
}

// ConvertFile converts a single markdown file and writes the artifact into
// outputDir, which is created if missing. The artifact keeps the full input
// filename plus a .docx suffix, so guide.md becomes guide.md.docx.
func (c *Converter) ConvertFile(ctx context.Context, inputPath, outputDir string) (*FileResult, error) {
	start := time.Now()

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, apperrors.WriteFailed(outputDir, err)
	}

	data, err := os.ReadFile(inputPath)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CategoryParse, apperrors.SeverityFatal, "failed to read input file").
			WithContext("file", inputPath)
	}

	fm, body, had, fmErr := frontmatter.Split(data)
	if fmErr != nil {
		// A bare leading --- with no closing delimiter is markdown, not
		// frontmatter. Parse the whole document.
		body = data
		had = false
	}

	title := ""
	if had {
		if meta, metaErr := frontmatter.Parse(fm); metaErr == nil {
			title = meta.Title
		} else {
			c.logger.Warn("ignoring invalid frontmatter", logfields.File(inputPath), logfields.Error(metaErr))
		}
	}

	root, err := markdown.Parse(body)
	if err != nil {
		return nil, apperrors.ParseFailed(inputPath, err)
	}

	baseDir := filepath.Dir(inputPath)
	diagramsRendered, diagramErrs := diagram.Preprocess(ctx, root, body, c.renderer, c.logger)
	markdown.RewriteAlerts(root, body)

	doc := docx.NewDocument()
	engine := render.New(doc, body, baseDir, c.logger)
	if err := engine.Render(root); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CategoryRender, apperrors.SeverityFatal, "document rendering failed").
			WithContext("file", inputPath)
	}

	outputPath := filepath.Join(outputDir, filepath.Base(inputPath)+".docx")
	if err := doc.WriteFile(outputPath); err != nil {
		return nil, err
	}

	result := &FileResult{
		Input:            inputPath,
		Output:           outputPath,
		Title:            title,
		Duration:         time.Since(start),
		DiagramsRendered: diagramsRendered,
		SkippedNodes:     engine.Skipped(),
		DiagramErrors:    diagramErrs,
	}

	c.logger.Info("converted",
		logfields.File(inputPath),
		logfields.Output(outputPath),
		logfields.DurationMS(float64(result.Duration.Milliseconds())),
		slog.Int("skipped_nodes", len(result.SkippedNodes)),
		slog.Int("diagram_failures", len(result.DiagramErrors)))

	return result, nil
}

// Run converts every input, expanding directories through discovery.
// Discovered subdirectory structure is mirrored under outputDir.
func (c *Converter) Run(ctx context.Context, inputs []string, outputDir string) (*RunResult, error) {
	start := time.Now()
	runID := uuid.NewString()

	files, err := c.expandInputs(inputs)
	if err != nil {
		return nil, err
	}

	result := &RunResult{
		RunID:     runID,
		Inputs:    inputs,
		OutputDir: outputDir,
	}

	c.logger.Info("conversion run started",
		logfields.RunID(runID),
		logfields.Count(len(files)),
		logfields.Output(outputDir))

	c.emitOrWarn(runID, c.emitter.EmitRunStarted(ctx, runID, strings.Join(inputs, ","), len(files)))

	for _, f := range files {
		if ctx.Err() != nil {
			result.Canceled = true
			break
		}

		destDir := outputDir
		if f.Section != "" {
			destDir = filepath.Join(outputDir, f.Section)
		}

		fileStart := time.Now()
		res, convErr := c.ConvertFile(ctx, f.Path, destDir)
		if convErr != nil {
			c.logger.Error("conversion failed", logfields.File(f.Path), logfields.Error(convErr))
			result.Failed = append(result.Failed, FileFailure{Input: f.Path, Err: convErr})
			c.recorder.ObserveConvertDuration(time.Since(fileStart))
			c.recorder.IncConvertResult(metrics.ResultFatal)
			c.emitOrWarn(runID, c.emitter.EmitFileFailed(ctx, runID, f.Path, convErr.Error()))
			continue
		}

		result.Converted = append(result.Converted, *res)
		c.recordFile(res)
		c.emitOrWarn(runID, c.emitter.EmitFileConverted(ctx, runID, f.Path, res.Output, res.Duration, len(res.SkippedNodes)))
		for _, dErr := range res.DiagramErrors {
			c.emitOrWarn(runID, c.emitter.EmitDiagramFailed(ctx, runID, f.Path, dErr.Error()))
		}
	}

	result.Duration = time.Since(start)
	status := result.Status()

	c.emitOrWarn(runID, c.emitter.EmitRunCompleted(ctx, runID, status, result.Duration, len(result.Converted), len(result.Failed)))
	c.publishRun(ctx, result)

	c.logger.Info("conversion run finished",
		logfields.RunID(runID),
		slog.String("status", status),
		slog.Int("converted", len(result.Converted)),
		slog.Int("failed", len(result.Failed)),
		logfields.DurationMS(float64(result.Duration.Milliseconds())))

	return result, nil
}

// expandInputs resolves files and directories into the discovered file list.
func (c *Converter) expandInputs(inputs []string) ([]discover.File, error) {
	var files []discover.File
	for _, input := range inputs {
		found, err := discover.Discover(input, c.logger)
		if err != nil {
			return nil, err
		}
		files = append(files, found...)
	}
	return files, nil
}

func (c *Converter) recordFile(res *FileResult) {
	c.recorder.ObserveConvertDuration(res.Duration)

	label := metrics.ResultSuccess
	if len(res.SkippedNodes) > 0 || len(res.DiagramErrors) > 0 {
		label = metrics.ResultWarning
	}
	c.recorder.IncConvertResult(label)

	for _, skip := range res.SkippedNodes {
		if kind, ok := skip.Context[logfields.KeyNodeKind].(string); ok {
			c.recorder.IncSkippedNode(kind)
		}
	}
	for range res.DiagramsRendered {
		c.recorder.IncDiagramRender(true)
	}
	for range res.DiagramErrors {
		c.recorder.IncDiagramRender(false)
	}
}

func (c *Converter) emitOrWarn(runID string, err error) {
	if err != nil {
		c.logger.Warn("failed to record run event", logfields.RunID(runID), logfields.Error(err))
	}
}

func (c *Converter) publishRun(ctx context.Context, result *RunResult) {
	if c.publisher == nil {
		return
	}

	event := &notify.RunEvent{
		RunID:           result.RunID,
		Status:          result.Status(),
		Source:          strings.Join(result.Inputs, ","),
		OutputDir:       result.OutputDir,
		Converted:       len(result.Converted),
		Failed:          len(result.Failed),
		SkippedNodes:    result.SkippedNodeCount(),
		DiagramFailures: result.DiagramFailureCount(),
		DurationMS:      result.Duration.Milliseconds(),
	}
	if err := c.publisher.PublishRun(ctx, event); err != nil {
		c.logger.Warn("failed to publish run event", logfields.RunID(result.RunID), logfields.Error(err))
	}
}
