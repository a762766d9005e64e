package database

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/nao1215/sweeper/internal/model"
)

// setupTestDB creates a temporary database for testing.
func setupTestDB(t *testing.T) *HistoryDB {
	t.Helper()

	db, err := Open(t.TempDir(), DefaultOptions())
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// sampleSweep returns a scan with three odd files and a removal that
// failed on the second one.
func sampleSweep() (*model.ScanReport, *model.RemovalReport) {
	scan := model.NewScanReport([]string{"/photos/a", "/photos/b"})
	scan.Files = append(scan.Files,
		model.OddFile{Path: "/photos/a/1.jpg", Kind: model.KindImage},
		model.OddFile{Path: "/photos/a/2.nef", Kind: model.KindRaw},
		model.OddFile{Path: "/photos/b/3.jpeg", Kind: model.KindImage},
	)

	removal := model.NewRemovalReport()
	removal.AddRemoved("/photos/a/1.jpg")
	removal.AddFailed("/photos/a/2.nef", errors.New("permission denied"))
	removal.AddSkipped("/photos/b/3.jpeg")
	return scan, removal
}

func TestOpen(t *testing.T) {
	t.Parallel()

	t.Run("creates database in new directory", func(t *testing.T) {
		t.Parallel()

		dbDir := filepath.Join(t.TempDir(), "newdir", "subdir")
		db, err := Open(dbDir, DefaultOptions())
		if err != nil {
			t.Fatalf("failed to open database: %v", err)
		}
		defer db.Close()

		if _, err := os.Stat(filepath.Join(dbDir, FileName)); err != nil {
			t.Errorf("database file was not created: %v", err)
		}
		if db.Path() != filepath.Join(dbDir, FileName) {
			t.Errorf("unexpected path %q", db.Path())
		}
	})

	t.Run("CreateIfNotExists=false fails for missing database", func(t *testing.T) {
		t.Parallel()

		_, err := Open(filepath.Join(t.TempDir(), "missing"), Options{CreateIfNotExists: false})
		if !errors.Is(err, os.ErrNotExist) {
			t.Errorf("expected os.ErrNotExist, got %v", err)
		}
	})

	t.Run("reopens existing database", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		db, err := Open(dir, DefaultOptions())
		if err != nil {
			t.Fatalf("failed to open database: %v", err)
		}
		scan, removal := sampleSweep()
		if _, err := db.SaveSweep(context.Background(), scan, removal); err != nil {
			t.Fatalf("failed to save sweep: %v", err)
		}
		_ = db.Close()

		db, err = Open(dir, Options{CreateIfNotExists: false, EnableWAL: true})
		if err != nil {
			t.Fatalf("failed to reopen database: %v", err)
		}
		defer db.Close()

		sweeps, err := db.ListSweeps(context.Background())
		if err != nil {
			t.Fatalf("failed to list sweeps: %v", err)
		}
		if len(sweeps) != 1 {
			t.Errorf("expected 1 sweep after reopen, got %d", len(sweeps))
		}
	})
}

func TestSaveSweep(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	ctx := context.Background()
	scan, removal := sampleSweep()

	id, err := db.SaveSweep(ctx, scan, removal)
	if err != nil {
		t.Fatalf("failed to save sweep: %v", err)
	}

	rec, err := db.GetSweep(ctx, id)
	if err != nil {
		t.Fatalf("failed to get sweep: %v", err)
	}
	if rec.OddCount != 3 || rec.RemovedCount != 1 || rec.FailedCount != 1 {
		t.Errorf("unexpected counts: %+v", rec)
	}
	if len(rec.Roots) != 2 || rec.Roots[1] != "/photos/b" {
		t.Errorf("unexpected roots: %v", rec.Roots)
	}
	if diff := rec.Timestamp.Sub(removal.StartedAt); diff > time.Second || diff < -time.Second {
		t.Errorf("timestamp %v too far from %v", rec.Timestamp, removal.StartedAt)
	}

	outcomes, err := db.GetRemovals(ctx, id)
	if err != nil {
		t.Fatalf("failed to get removals: %v", err)
	}
	want := []model.FileOutcome{
		{Path: "/photos/a/1.jpg", Outcome: model.OutcomeRemoved},
		{Path: "/photos/a/2.nef", Outcome: model.OutcomeFailed, Error: "permission denied"},
		{Path: "/photos/b/3.jpeg", Outcome: model.OutcomeSkipped},
	}
	if len(outcomes) != len(want) {
		t.Fatalf("expected %d outcomes, got %d", len(want), len(outcomes))
	}
	for i := range want {
		if outcomes[i].Path != want[i].Path || outcomes[i].Outcome != want[i].Outcome || outcomes[i].Error != want[i].Error {
			t.Errorf("outcome %d = %+v, want %+v", i, outcomes[i], want[i])
		}
	}
}

func TestListSweeps(t *testing.T) {
	t.Parallel()

	t.Run("empty database", func(t *testing.T) {
		t.Parallel()

		sweeps, err := setupTestDB(t).ListSweeps(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(sweeps) != 0 {
			t.Errorf("expected no sweeps, got %d", len(sweeps))
		}
	})

	t.Run("newest first", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		ctx := context.Background()

		scan, older := sampleSweep()
		older.StartedAt = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		olderID, err := db.SaveSweep(ctx, scan, older)
		if err != nil {
			t.Fatal(err)
		}

		newer := model.NewRemovalReport()
		newer.StartedAt = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
		newerID, err := db.SaveSweep(ctx, model.NewScanReport([]string{"/x"}), newer)
		if err != nil {
			t.Fatal(err)
		}

		sweeps, err := db.ListSweeps(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(sweeps) != 2 {
			t.Fatalf("expected 2 sweeps, got %d", len(sweeps))
		}
		if sweeps[0].ID != newerID || sweeps[1].ID != olderID {
			t.Errorf("expected newest first, got IDs %d, %d", sweeps[0].ID, sweeps[1].ID)
		}
		if !sweeps[1].Timestamp.Equal(older.StartedAt) {
			t.Errorf("expected timestamp %v, got %v", older.StartedAt, sweeps[1].Timestamp)
		}
	})
}

func TestGetRemovals_UnknownSweep(t *testing.T) {
	t.Parallel()

	_, err := setupTestDB(t).GetRemovals(context.Background(), 42)
	if !errors.Is(err, ErrSweepNotFound) {
		t.Errorf("expected ErrSweepNotFound, got %v", err)
	}
}

func TestParseTimestamp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  time.Time
	}{
		{"2024-05-01T10:11:12.5Z", time.Date(2024, 5, 1, 10, 11, 12, 500000000, time.UTC)},
		{"2024-05-01 10:11:12", time.Date(2024, 5, 1, 10, 11, 12, 0, time.UTC)},
		{"2024-05-01T10:11:12", time.Date(2024, 5, 1, 10, 11, 12, 0, time.UTC)},
		{"garbage", time.Time{}},
	}

	for _, tt := range tests {
		if got := parseTimestamp(tt.input); !got.Equal(tt.want) {
			t.Errorf("parseTimestamp(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
