package repository

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/okian/pointchart/internal/domain/chart"
	"github.com/okian/pointchart/pkg/logger"
	"github.com/okian/pointchart/pkg/metrics"
)

// FileStore serves charts read from <dir>/<resort>_<year>.json|.yaml|.yml.
// Load (or Reload) swaps the whole set atomically; readers never see a
// partially loaded directory.
type FileStore struct {
	dir    string
	ix     *index
	log    logger.Logger
	strict bool
}

// NewFileStore returns a store over dir. Call Load before serving.
func NewFileStore(dir string, opts ...Option) *FileStore {
	s := &FileStore{dir: dir, ix: newIndex()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Dir returns the chart directory.
func (s *FileStore) Dir() string { return s.dir }

// ParseFileName splits "<resort>_<year>.<ext>" into its parts. The resort may
// itself contain underscores; the year is the last underscore-separated token.
func ParseFileName(name string) (resort string, year int, format string, err error) {
	ext := strings.ToLower(filepath.Ext(name))
	switch ext {
	case ".json":
		format = FormatJSON
	case ".yaml", ".yml":
		format = FormatYAML
	default:
		return "", 0, "", fmt.Errorf("%w: %s: unsupported extension", ErrInvalidKey, name)
	}
	stem := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	i := strings.LastIndex(stem, "_")
	if i <= 0 || i == len(stem)-1 {
		return "", 0, "", fmt.Errorf("%w: %s: want <resort>_<year>", ErrInvalidKey, name)
	}
	year, err = strconv.Atoi(stem[i+1:])
	if err != nil || year < 1 || year > 9999 {
		return "", 0, "", fmt.Errorf("%w: %s: bad year", ErrInvalidKey, name)
	}
	return stem[:i], year, format, nil
}

// LoadFile reads and validates one chart file. Resort and year default to the
// file name and must agree with it when present in the document.
func LoadFile(path string) (*chart.PointChart, error) {
	resort, year, format, err := ParseFileName(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		metrics.RecordChartLoad(format, metrics.ResultError)
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	c, err := Decode(format, data)
	if err != nil {
		metrics.RecordChartLoad(format, metrics.ResultError)
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if c.Resort == "" {
		c.Resort = resort
	}
	if c.Resort != resort || c.Year != year {
		metrics.RecordChartLoad(format, metrics.ResultError)
		return nil, fmt.Errorf("%w: %s holds %s %d", ErrInvalidFile, path, c.Resort, c.Year)
	}
	metrics.RecordChartLoad(format, metrics.ResultOK)
	return c, nil
}

// Load scans the directory and replaces the stored set. Invalid files are
// skipped and returned joined in the error unless the store is strict, in
// which case nothing is replaced. A duplicate resort-year is invalid.
func (s *FileStore) Load(ctx context.Context) error {
	dirents, err := os.ReadDir(s.dir)
	if err != nil {
		return fmt.Errorf("read charts dir: %w", err)
	}

	entries := make(map[key]entry)
	var errs []error
	for _, de := range dirents {
		if err := ctx.Err(); err != nil {
			return err
		}
		if de.IsDir() || strings.HasPrefix(de.Name(), ".") {
			continue
		}
		path := filepath.Join(s.dir, de.Name())
		c, err := LoadFile(path)
		if errors.Is(err, ErrInvalidKey) {
			// Not a chart file.
			continue
		}
		if err == nil {
			k := key{c.Resort, c.Year}
			if prev, dup := entries[k]; dup {
				err = fmt.Errorf("%w: %s duplicates %s", ErrInvalidFile, path, prev.ref.Source)
			} else {
				entries[k] = entry{ref: ChartRef{Resort: c.Resort, Year: c.Year, Source: de.Name()}, chart: c}
				continue
			}
		}
		if s.strict {
			return err
		}
		if s.log != nil {
			s.log.Warn(ctx, "skipping chart file", logger.String("path", path), logger.Error(err))
		}
		errs = append(errs, err)
	}

	s.ix.replace(entries)
	metrics.UpdateChartsLoaded(len(entries))
	if s.log != nil {
		s.log.Info(ctx, "charts loaded", logger.String("dir", s.dir), logger.Int("count", len(entries)), logger.Int("skipped", len(errs)))
	}
	return errors.Join(errs...)
}

// Get implements Store.
func (s *FileStore) Get(_ context.Context, resort string, year int) (*chart.PointChart, error) {
	return s.ix.get(resort, year)
}

// List implements Store.
func (s *FileStore) List(_ context.Context) ([]ChartRef, error) { return s.ix.list(), nil }

// Count implements Store.
func (s *FileStore) Count(_ context.Context) int { return s.ix.count() }
