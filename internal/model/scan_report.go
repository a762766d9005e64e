package model

import "time"

// ScanReport is the result of one scan over a set of directory roots.
// Files keep discovery order: argument order first, then walk order.
type ScanReport struct {
	// Roots are the directories that were requested, in argument order.
	Roots []string `json:"roots"`

	// Files are the odd files found.
	Files []OddFile `json:"files"`

	// StartedAt is when the walk began.
	StartedAt time.Time `json:"started_at"`

	// Duration is how long the walk took.
	Duration time.Duration `json:"duration"`

	// Visited counts the filesystem entries handed to the classifier.
	Visited int `json:"visited"`

	// Skipped counts entries dropped because of traversal errors
	// or because their canonical path had already been visited.
	Skipped int `json:"skipped"`
}

// NewScanReport creates an empty report for the given roots.
func NewScanReport(roots []string) *ScanReport {
	return &ScanReport{
		Roots:     append([]string(nil), roots...),
		Files:     make([]OddFile, 0),
		StartedAt: time.Now(),
	}
}

// Empty reports whether no odd file was found.
func (r *ScanReport) Empty() bool {
	return len(r.Files) == 0
}

// Paths returns the odd file paths in discovery order.
// It returns nil when the report is empty.
func (r *ScanReport) Paths() []string {
	if r.Empty() {
		return nil
	}
	paths := make([]string, len(r.Files))
	for i, f := range r.Files {
		paths[i] = f.Path
	}
	return paths
}

// CountByKind returns how many odd files are images and how many are raw.
func (r *ScanReport) CountByKind() (images, raws int) {
	for _, f := range r.Files {
		switch f.Kind {
		case KindImage:
			images++
		case KindRaw:
			raws++
		case KindNone:
		}
	}
	return images, raws
}
