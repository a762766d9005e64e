package sweep

import (
	"log/slog"
	"os"

	"github.com/nao1215/sweeper/internal/model"
)

// Deleter abstracts the filesystem delete operation so tests can inject
// failures.
type Deleter interface {
	Remove(path string) error
}

// osDeleter deletes through the os package.
type osDeleter struct{}

// Remove deletes a single file.
func (osDeleter) Remove(path string) error {
	return os.Remove(path)
}

// Remover deletes odd files one at a time, in the order given,
// and stops at the first failure.
type Remover struct {
	deleter Deleter
	logger  *slog.Logger
}

// RemoverOption configures a Remover.
type RemoverOption func(*Remover)

// WithDeleter replaces the filesystem deleter.
func WithDeleter(d Deleter) RemoverOption {
	return func(r *Remover) {
		r.deleter = d
	}
}

// WithRemoverLogger sets a custom logger for the remover.
func WithRemoverLogger(logger *slog.Logger) RemoverOption {
	return func(r *Remover) {
		r.logger = logger
	}
}

// NewRemover creates a Remover that deletes through the os package
// unless WithDeleter says otherwise.
func NewRemover(opts ...RemoverOption) *Remover {
	r := &Remover{deleter: osDeleter{}}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	return r
}

// RemoveFiles deletes files in order and returns the first failure.
// Files deleted before the failure stay deleted. An empty list succeeds.
func RemoveFiles(files []string) error {
	return NewRemover().Remove(files).Err()
}

// Remove deletes files in order and records the outcome of every path.
// After the first failure the remaining paths are recorded as skipped.
// There is no rollback.
func (r *Remover) Remove(files []string) *model.RemovalReport {
	report := model.NewRemovalReport()

	for i, path := range files {
		if err := r.deleter.Remove(path); err != nil {
			r.logger.Warn("cannot remove file", "path", path, "error", err)
			report.AddFailed(path, err)
			for _, rest := range files[i+1:] {
				report.AddSkipped(rest)
			}
			return report
		}
		r.logger.Debug("file removed", "path", path)
		report.AddRemoved(path)
	}

	return report
}
