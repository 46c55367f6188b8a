// Package batch drives a sequential PNG to WebP conversion run: it
// enumerates the source directory, converts each file in turn, prints the
// progress transcript and stops at the first failure.
package batch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dunamismax/pngwebp/internal/config"
	"github.com/dunamismax/pngwebp/internal/domain"
	"github.com/dunamismax/pngwebp/internal/pipeline"
	"github.com/dunamismax/pngwebp/internal/report"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const (
	statusSucceeded = "succeeded"
	statusFailed    = "failed"
)

type fileProcessor interface {
	Process(ctx context.Context, srcPath string) (domain.Result, error)
}

type Summary struct {
	Found       int
	Converted   int
	Resized     int
	SourceBytes int64
	OutputBytes int64
}

type Runner struct {
	logger    *zap.Logger
	paths     config.PathsConfig
	textfile  string
	processor fileProcessor
	reporter  *report.Reporter
	metrics   *metrics
	tracer    trace.Tracer
}

func NewRunner(logger *zap.Logger, cfg config.Config, out io.Writer) (*Runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	processor, err := pipeline.NewProcessor(cfg.Paths.DestDir, pipeline.Options{
		MaxWidth: cfg.Encode.MaxWidth,
		Quality:  cfg.Encode.Quality,
		Method:   cfg.Encode.Method,
	})
	if err != nil {
		return nil, fmt.Errorf("initialize pipeline processor: %w", err)
	}

	return &Runner{
		logger:    logger,
		paths:     cfg.Paths,
		textfile:  cfg.Metrics.Textfile,
		processor: processor,
		reporter:  report.New(out),
		metrics:   newMetrics(),
		tracer:    otel.Tracer("pngwebp/batch"),
	}, nil
}

// Run converts every PNG in the source directory. Outputs written before a
// failure are left on disk.
func (r *Runner) Run(ctx context.Context) (Summary, error) {
	startedAt := time.Now()
	status := statusFailed

	ctx, span := r.tracer.Start(ctx, "batch.run")
	span.SetAttributes(
		attribute.String("batch.source_dir", r.paths.SourceDir),
		attribute.String("batch.dest_dir", r.paths.DestDir),
	)
	defer span.End()
	defer func() {
		r.metrics.runDuration.WithLabelValues(status).Observe(time.Since(startedAt).Seconds())
		r.flushMetrics()
	}()

	files := pipeline.Enumerate(r.paths.SourceDir)
	summary := Summary{Found: len(files)}
	r.metrics.imagesFound.Add(float64(len(files)))
	span.SetAttributes(attribute.Int("batch.found", len(files)))
	r.reporter.Found(len(files))

	if len(files) > 0 && r.paths.CreateDestDir {
		if err := os.MkdirAll(r.paths.DestDir, 0o755); err != nil {
			err = fmt.Errorf("%w: create output dir: %w", pipeline.ErrEncode, err)
			span.RecordError(err)
			span.SetStatus(codes.Error, "prepare output dir failed")
			return summary, err
		}
	}

	for _, path := range files {
		if err := ctx.Err(); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "canceled")
			return summary, err
		}

		res, err := r.convert(ctx, path)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "conversion failed")
			return summary, fmt.Errorf("batch aborted after %d of %d images: %w", summary.Converted, summary.Found, err)
		}

		r.reporter.File(res)
		r.metrics.observe(res)
		summary.Converted++
		summary.SourceBytes += res.Source.Bytes
		summary.OutputBytes += res.Dest.Bytes
		if res.Resized {
			summary.Resized++
		}
	}

	r.reporter.Done()
	status = statusSucceeded
	span.SetStatus(codes.Ok, "optimized")
	r.logger.Info("batch complete",
		zap.Int("found", summary.Found),
		zap.Int("converted", summary.Converted),
		zap.Int("resized", summary.Resized),
		zap.Int64("source_bytes", summary.SourceBytes),
		zap.Int64("output_bytes", summary.OutputBytes),
		zap.Duration("elapsed", time.Since(startedAt)),
	)
	return summary, nil
}

func (r *Runner) convert(ctx context.Context, path string) (domain.Result, error) {
	ctx, span := r.tracer.Start(ctx, "batch.convert")
	span.SetAttributes(attribute.String("image.source", path))
	defer span.End()

	res, err := r.processor.Process(ctx, path)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, errorKind(err))
		return domain.Result{}, err
	}

	span.SetAttributes(
		attribute.String("image.dest", res.Dest.Path),
		attribute.Int("image.width", res.Dest.Width),
		attribute.Int("image.height", res.Dest.Height),
		attribute.Bool("image.resized", res.Resized),
		attribute.Int64("image.source_bytes", res.Source.Bytes),
		attribute.Int64("image.dest_bytes", res.Dest.Bytes),
	)
	r.logger.Debug("converted",
		zap.String("src", path),
		zap.String("dest", res.Dest.Path),
		zap.Int("width", res.Dest.Width),
		zap.Int("height", res.Dest.Height),
		zap.Bool("resized", res.Resized),
		zap.Int64("bytes", res.Dest.Bytes),
	)
	return res, nil
}

func (r *Runner) flushMetrics() {
	if r.textfile == "" {
		return
	}
	if err := r.metrics.writeTextfile(r.textfile); err != nil {
		r.logger.Warn("metrics export failed", zap.String("path", r.textfile), zap.Error(err))
	}
}

func errorKind(err error) string {
	switch {
	case errors.Is(err, pipeline.ErrDecode):
		return "decode failed"
	case errors.Is(err, pipeline.ErrEncode):
		return "encode failed"
	case errors.Is(err, pipeline.ErrZeroSize):
		return "zero-byte source"
	default:
		return "pipeline failed"
	}
}
