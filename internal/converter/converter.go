// Package converter turns an exercise catalogue file into a PostgreSQL seed script.
package converter

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/Rios1999/TrakingGym/internal/domain"
	"github.com/Rios1999/TrakingGym/internal/observability"
	"github.com/Rios1999/TrakingGym/internal/sqlscript"
)

var (
	// ErrMissingFile indicates the input catalogue does not exist.
	ErrMissingFile = errors.New("input file not found")
	// ErrRead indicates the input catalogue exists but could not be read.
	ErrRead = errors.New("read input")
	// ErrWrite indicates the script could not be written to its destination.
	ErrWrite = errors.New("write output")
)

// Options selects the files and destination table of a conversion.
type Options struct {
	InputPath  string
	OutputPath string
	Schema     sqlscript.Schema
}

// Summary reports a successful conversion.
type Summary struct {
	RunID      string
	Records    int
	OutputPath string
	Bytes      int
	Duration   time.Duration
}

// Option configures optional behaviour for the Converter.
type Option func(*Converter)

// WithLogger overrides the logger used to report progress and failures.
func WithLogger(logger *log.Logger) Option {
	return func(c *Converter) {
		c.logger = logger
	}
}

// WithClock overrides the time source used for durations and metrics.
func WithClock(now func() time.Time) Option {
	return func(c *Converter) {
		c.now = now
	}
}

// Converter loads, renders and writes seed scripts.
type Converter struct {
	logger *log.Logger
	now    func() time.Time
}

// New constructs a Converter.
func New(opts ...Option) *Converter {
	c := &Converter{
		logger: log.New(log.Writer(), "[converter] ", log.LstdFlags|log.Lshortfile),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Convert reads the catalogue, renders every record and replaces the output
// file. Nothing is written unless every record renders.
func (c *Converter) Convert(ctx context.Context, opts Options) (Summary, error) {
	runID := uuid.NewString()
	started := c.now()

	summary, err := c.convert(ctx, runID, opts)
	elapsed := c.now().Sub(started)
	if err != nil {
		reason := FailureReason(err)
		observability.RecordFailure(reason, elapsed)
		c.logger.Printf("conversion failed (run=%s, input=%s, reason=%s): %v", runID, opts.InputPath, reason, err)
		return Summary{}, err
	}

	summary.Duration = elapsed
	observability.RecordConversion(summary.Records, elapsed, c.now())
	c.logger.Printf("conversion complete (run=%s, records=%d, output=%s, bytes=%d)", runID, summary.Records, summary.OutputPath, summary.Bytes)
	return summary, nil
}

func (c *Converter) convert(ctx context.Context, runID string, opts Options) (Summary, error) {
	data, err := os.ReadFile(opts.InputPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Summary{}, fmt.Errorf("%w: %s", ErrMissingFile, opts.InputPath)
		}
		return Summary{}, fmt.Errorf("%w %s: %v", ErrRead, opts.InputPath, err)
	}

	records, err := domain.DecodeRecords(data)
	if err != nil {
		return Summary{}, err
	}

	script, err := opts.Schema.Render(records)
	if err != nil {
		return Summary{}, err
	}

	if err := ctx.Err(); err != nil {
		return Summary{}, err
	}

	if err := writeFileAtomic(opts.OutputPath, []byte(script)); err != nil {
		return Summary{}, fmt.Errorf("%w %s: %v", ErrWrite, opts.OutputPath, err)
	}

	return Summary{
		RunID:      runID,
		Records:    len(records),
		OutputPath: opts.OutputPath,
		Bytes:      len(script),
	}, nil
}

// FailureReason classifies err for metrics and operator messages.
func FailureReason(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrMissingFile):
		return "missing_file"
	case errors.Is(err, ErrRead):
		return "read"
	case errors.Is(err, domain.ErrParse):
		return "parse"
	case errors.Is(err, domain.ErrSchema):
		return "schema"
	case errors.Is(err, ErrWrite):
		return "write"
	default:
		return "unknown"
	}
}

// writeFileAtomic replaces path with data via a sibling temp file so a failed
// write never leaves a truncated script behind.
func writeFileAtomic(path string, data []byte) (err error) {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return err
	}
	if err = tmp.Sync(); err != nil {
		return err
	}
	if err = tmp.Chmod(0o644); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
