package export

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/loremdai/tennishealth/internal/domain/model"
	"github.com/loremdai/tennishealth/pkg/logger"
	"github.com/loremdai/tennishealth/pkg/metrics"
)

// exportFileLayout names the per-date export file, e.g.
// "HealthAutoExport-2026-03-14.json".
const exportFileLayout = "HealthAutoExport-2006-01-02.json"

// Reader decodes Health Auto Export files into domain workouts. The only
// I/O is a whole-file read; records with missing fields come back as zero
// values for the filter to exclude.
type Reader struct {
	basePath string
	log      logger.Logger
}

// Option applies a configuration option to the Reader.
type Option func(*Reader)

// WithBasePath sets the directory holding per-date export files.
func WithBasePath(dir string) Option {
	return func(r *Reader) {
		if dir != "" {
			r.basePath = dir
		}
	}
}

// WithLogger sets a custom logger for the reader.
func WithLogger(log logger.Logger) Option {
	return func(r *Reader) {
		if log != nil {
			r.log = log
		}
	}
}

// NewReader creates a Reader with default configuration.
func NewReader(opts ...Option) *Reader {
	r := &Reader{
		basePath: ".",
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// ReadDate reads the export file for the given date under the base path.
// A missing file yields ErrMissingFile; callers skip the date.
func (r *Reader) ReadDate(ctx context.Context, date time.Time) ([]model.Workout, error) {
	return r.ReadFile(ctx, filepath.Join(r.basePath, date.Format(exportFileLayout)))
}

// ReadFile reads and decodes one export file in a single whole-file read.
func (r *Reader) ReadFile(ctx context.Context, path string) ([]model.Workout, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrMissingFile, path)
		}
		metrics.RecordExportReadError()
		return nil, fmt.Errorf("read export %s: %w", path, err)
	}

	var doc exportDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		metrics.RecordExportReadError()
		return nil, fmt.Errorf("%w: %s: %w", ErrMalformedExport, path, err)
	}

	workouts := make([]model.Workout, 0, len(doc.Data.Workouts))
	for _, rec := range doc.Data.Workouts {
		workouts = append(workouts, rec.toModel())
	}

	metrics.RecordFileRead()
	if r.log != nil {
		r.log.Debug(ctx, "export file decoded",
			logger.String("path", filepath.Base(path)),
			logger.Int("workouts", len(workouts)),
		)
	}
	return workouts, nil
}
