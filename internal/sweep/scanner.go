package sweep

import (
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/karrick/godirwalk"

	"github.com/nao1215/sweeper/internal/model"
)

// Scanner walks directory roots and collects odd files.
// A Scanner keeps no state between calls; every Scan re-walks the filesystem.
type Scanner struct {
	// logger receives debug records for skipped entries.
	logger *slog.Logger
}

// ScannerOption configures a Scanner.
type ScannerOption func(*Scanner)

// WithScannerLogger sets a custom logger for the scanner.
func WithScannerLogger(logger *slog.Logger) ScannerOption {
	return func(s *Scanner) {
		s.logger = logger
	}
}

// NewScanner creates a Scanner with the given options.
func NewScanner(opts ...ScannerOption) *Scanner {
	s := &Scanner{}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

// FindOddFiles returns the odd files under dirs in discovery order.
// It returns nil when dirs is empty or when nothing odd was found.
func FindOddFiles(dirs []string) []string {
	report, err := NewScanner().Scan(dirs)
	if err != nil {
		return nil
	}
	return report.Paths()
}

// Scan walks every root in dirs, in order, and returns the odd files found.
// It returns ErrNoDirectories when dirs is empty. Unreadable roots and entries
// are skipped and counted in the report; they never fail the scan.
func (s *Scanner) Scan(dirs []string) (*model.ScanReport, error) {
	if len(dirs) == 0 {
		return nil, ErrNoDirectories
	}

	report := model.NewScanReport(dirs)
	w := &walk{
		report:      report,
		logger:      s.logger,
		visitedDirs: make(map[string]struct{}),
		seenFiles:   make(map[string]sighting),
		dropped:     make(map[int]struct{}),
	}

	for _, dir := range dirs {
		w.root(dir)
	}
	w.compact()

	report.Duration = time.Since(report.StartedAt)
	s.logger.Debug("scan finished",
		"roots", len(dirs),
		"odd", len(report.Files),
		"visited", report.Visited,
		"skipped", report.Skipped,
		"duration", report.Duration,
	)
	return report, nil
}

// walk is the per-scan traversal state. It is owned by a single Scan call.
type walk struct {
	report *model.ScanReport
	logger *slog.Logger

	// currentRoot is the directory argument being walked.
	currentRoot string

	// visitedDirs holds canonical directories already entered.
	visitedDirs map[string]struct{}

	// seenFiles holds canonical paths of classified files already handled.
	seenFiles map[string]sighting

	// dropped holds indexes into report.Files superseded by a later sighting.
	dropped map[int]struct{}
}

// sighting is how a canonical file was first reached. index is -1 when the
// file had a pair and was not recorded.
type sighting struct {
	index int
	link  bool
}

// root walks a single directory argument.
func (w *walk) root(dir string) {
	w.currentRoot = dir

	start := dir
	if abs, err := filepath.Abs(dir); err == nil {
		start = abs
	}

	err := godirwalk.Walk(start, &godirwalk.Options{
		FollowSymbolicLinks: true,
		AllowNonDirectory:   true,
		Unsorted:            true,
		Callback:            w.visit,
		ErrorCallback:       w.skip,
	})
	if err != nil {
		w.report.Skipped++
		w.logger.Debug("skipping root", "path", dir, "error", err)
	}
}

// visit handles one entry reached by the walk.
func (w *walk) visit(path string, de *godirwalk.Dirent) error {
	isDir := de.IsDir()
	if !isDir && de.IsSymlink() {
		info, err := os.Stat(path)
		if err != nil {
			// Broken link. godirwalk reports the same failure through
			// ErrorCallback when it tries to follow it.
			return nil
		}
		isDir = info.IsDir()
	}

	if isDir {
		return w.enter(path)
	}

	w.report.Visited++

	kind := Classify(de.Name())
	if kind == model.KindNone {
		return nil
	}

	link := de.IsSymlink()
	canonical := w.canonicalFile(path)
	seen, ok := w.seenFiles[canonical]
	switch {
	case !ok:
	case seen.link && !link:
		// The real file wins over a link to it, so removing the
		// reported path removes the file itself.
		if seen.index >= 0 {
			w.dropped[seen.index] = struct{}{}
		}
		w.report.Skipped++
	default:
		w.report.Skipped++
		return nil
	}

	if HasPair(path, kind) {
		w.seenFiles[canonical] = sighting{index: -1, link: link}
		return nil
	}

	w.seenFiles[canonical] = sighting{index: len(w.report.Files), link: link}
	w.report.Files = append(w.report.Files, model.OddFile{
		Path: path,
		Kind: kind,
		Root: w.currentRoot,
	})
	return nil
}

// enter decides whether to descend into a directory. Returning SkipThis
// on a directory skips only that directory.
func (w *walk) enter(path string) error {
	canonical, err := canonicalPath(path)
	if err != nil {
		w.report.Skipped++
		w.logger.Debug("skipping directory", "path", path, "error", err)
		return godirwalk.SkipThis
	}
	if _, ok := w.visitedDirs[canonical]; ok {
		w.report.Skipped++
		w.logger.Debug("directory already visited", "path", path, "canonical", canonical)
		return godirwalk.SkipThis
	}
	w.visitedDirs[canonical] = struct{}{}
	return nil
}

func (w *walk) canonicalFile(path string) string {
	canonical, err := canonicalPath(path)
	if err != nil {
		return path
	}
	return canonical
}

// compact removes superseded entries while keeping discovery order.
func (w *walk) compact() {
	if len(w.dropped) == 0 {
		return
	}
	kept := w.report.Files[:0]
	for i, f := range w.report.Files {
		if _, ok := w.dropped[i]; ok {
			continue
		}
		kept = append(kept, f)
	}
	w.report.Files = kept
}

// skip is the traversal error policy: log, count and keep going.
func (w *walk) skip(path string, err error) godirwalk.ErrorAction {
	w.report.Skipped++
	w.logger.Debug("skipping entry", "path", path, "error", err)
	return godirwalk.SkipNode
}

// canonicalPath resolves symbolic links and returns an absolute path.
func canonicalPath(path string) (string, error) {
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		return "", err
	}
	return filepath.Abs(resolved)
}
