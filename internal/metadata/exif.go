package metadata

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	exif "github.com/dsoprea/go-exif/v3"
	"golang.org/x/sync/errgroup"

	"github.com/nao1215/sweeper/internal/model"
)

const (
	// DefaultReadLimit is how many bytes of a file are searched for EXIF data.
	DefaultReadLimit int64 = 1024 * 1024

	// DefaultWorkers is how many files Enrich reads at once.
	DefaultWorkers = 4
)

// Reader extracts PhotoInfo from image and raw files.
type Reader struct {
	readLimit int64
	workers   int
	logger    *slog.Logger
}

// Option configures a Reader.
type Option func(*Reader)

// WithReadLimit sets the number of bytes read from each file.
func WithReadLimit(limit int64) Option {
	return func(r *Reader) {
		r.readLimit = limit
	}
}

// WithWorkers sets the number of concurrent reads used by Enrich.
func WithWorkers(n int) Option {
	return func(r *Reader) {
		r.workers = n
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Reader) {
		r.logger = logger
	}
}

// NewReader creates a Reader with the given options.
func NewReader(opts ...Option) *Reader {
	r := &Reader{
		readLimit: DefaultReadLimit,
		workers:   DefaultWorkers,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.readLimit <= 0 {
		r.readLimit = DefaultReadLimit
	}
	if r.workers <= 0 {
		r.workers = DefaultWorkers
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	return r
}

// Read extracts EXIF details from path. It returns nil and no error
// when the file carries no EXIF block or none of the wanted tags.
func (r *Reader) Read(path string) (*model.PhotoInfo, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from the directory walk
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, r.readLimit))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return parse(data)
}

// parse extracts PhotoInfo from raw file bytes.
func parse(data []byte) (*model.PhotoInfo, error) {
	rawExif, err := exif.SearchAndExtractExif(data)
	if errors.Is(err, exif.ErrNoExif) || (err == nil && rawExif == nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to locate EXIF data: %w", err)
	}

	entries, _, err := exif.GetFlatExifData(rawExif, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to parse EXIF data: %w", err)
	}

	tags := make(map[string]string, len(entries))
	for _, entry := range entries {
		if _, ok := tags[entry.TagName]; ok {
			continue
		}
		tags[entry.TagName] = entry.Formatted
	}
	return fromTags(tags), nil
}

// fromTags builds PhotoInfo from EXIF tag names and formatted values.
// DateTimeOriginal wins over DateTime. Returns nil when nothing useful is set.
func fromTags(tags map[string]string) *model.PhotoInfo {
	info := &model.PhotoInfo{
		Make:     clean(tags["Make"]),
		Model:    clean(tags["Model"]),
		TakenAt:  clean(tags["DateTimeOriginal"]),
		Software: clean(tags["Software"]),
	}
	if info.TakenAt == "" {
		info.TakenAt = clean(tags["DateTime"])
	}
	if info.IsZero() {
		return nil
	}
	return info
}

// clean trims padding that cameras leave in ASCII tags.
func clean(s string) string {
	return strings.TrimSpace(strings.TrimRight(s, "\x00"))
}

// Enrich fills Photo on every file that carries EXIF data. Files are read
// concurrently, bounded by the Reader's worker count. Unreadable files are
// logged and left untouched. Only context cancellation is returned.
func (r *Reader) Enrich(ctx context.Context, files []model.OddFile) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)

	for i := range files {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			info, err := r.Read(files[i].Path)
			if err != nil {
				r.logger.Debug("cannot read EXIF data", "path", files[i].Path, "error", err)
				return nil
			}
			files[i].Photo = info
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}
