package model

import (
	"errors"
	"fmt"
	"time"
)

// Outcome is what happened to a single file during removal.
type Outcome string

const (
	// OutcomeRemoved means the file was deleted.
	OutcomeRemoved Outcome = "removed"

	// OutcomeFailed means deleting the file returned an error.
	// Removal stops after the first failure.
	OutcomeFailed Outcome = "failed"

	// OutcomeSkipped means the file was never attempted because
	// an earlier file failed.
	OutcomeSkipped Outcome = "skipped"
)

// FileOutcome records the removal result of one path.
type FileOutcome struct {
	Path    string  `json:"path"`
	Outcome Outcome `json:"outcome"`

	// Error is the failure message for OutcomeFailed.
	Error string `json:"error,omitempty"`

	// err keeps the original error so callers can use errors.Is.
	err error
}

// RemovalReport lists the outcome of every requested path, in request order.
type RemovalReport struct {
	Outcomes  []FileOutcome `json:"outcomes"`
	StartedAt time.Time     `json:"started_at"`
}

// NewRemovalReport creates an empty removal report.
func NewRemovalReport() *RemovalReport {
	return &RemovalReport{
		Outcomes:  make([]FileOutcome, 0),
		StartedAt: time.Now(),
	}
}

// AddRemoved records a successful deletion.
func (r *RemovalReport) AddRemoved(path string) {
	r.Outcomes = append(r.Outcomes, FileOutcome{Path: path, Outcome: OutcomeRemoved})
}

// AddFailed records a failed deletion.
func (r *RemovalReport) AddFailed(path string, err error) {
	r.Outcomes = append(r.Outcomes, FileOutcome{
		Path:    path,
		Outcome: OutcomeFailed,
		Error:   err.Error(),
		err:     err,
	})
}

// AddSkipped records a path that was not attempted.
func (r *RemovalReport) AddSkipped(path string) {
	r.Outcomes = append(r.Outcomes, FileOutcome{Path: path, Outcome: OutcomeSkipped})
}

// Count returns how many outcomes match o.
func (r *RemovalReport) Count(o Outcome) int {
	n := 0
	for _, fo := range r.Outcomes {
		if fo.Outcome == o {
			n++
		}
	}
	return n
}

// Paths returns the paths that ended with outcome o.
func (r *RemovalReport) Paths(o Outcome) []string {
	var paths []string
	for _, fo := range r.Outcomes {
		if fo.Outcome == o {
			paths = append(paths, fo.Path)
		}
	}
	return paths
}

// Err returns the first failure wrapped with its path, or nil when
// every attempted file was removed.
func (r *RemovalReport) Err() error {
	for _, fo := range r.Outcomes {
		if fo.Outcome != OutcomeFailed {
			continue
		}
		cause := fo.err
		if cause == nil {
			cause = errors.New(fo.Error)
		}
		return fmt.Errorf("cannot remove %s: %w", fo.Path, cause)
	}
	return nil
}
