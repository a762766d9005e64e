package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"
)

// execute runs the root command with args and stdin, returning stdout.
func execute(t *testing.T, stdin io.Reader, args ...string) (string, error) {
	t.Helper()

	var out, errOut bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	if stdin != nil {
		cmd.SetIn(stdin)
	}

	err := cmd.Execute()
	return out.String(), err
}

// photoTree creates a directory with one complete pair and two odd files:
// lone.jpg (image without raw) and orphan.nef (raw without image).
func photoTree(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	for _, name := range []string{"pair.jpg", "pair.nef", "lone.jpg", "orphan.nef", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(name), 0600); err != nil {
			t.Fatalf("failed to create %s: %v", name, err)
		}
	}
	return dir
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
