package sweep

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/nao1215/sweeper/internal/model"
)

const (
	extJPG  = "jpg"
	extJPEG = "jpeg"
	extNEF  = "nef"
)

// Classify returns the pairing kind of a file name.
// Image names end in ".jpg" or ".jpeg"; raw names end in "nef".
// The comparison is case-sensitive.
func Classify(name string) model.Kind {
	switch {
	case strings.HasSuffix(name, "."+extJPEG), strings.HasSuffix(name, "."+extJPG):
		return model.KindImage
	case strings.HasSuffix(name, extNEF):
		return model.KindRaw
	default:
		return model.KindNone
	}
}

// PairCandidates returns the paths whose existence would pair the file at path.
// An image has one candidate (".nef"); a raw file has two (".jpeg", ".jpg").
func PairCandidates(path string, kind model.Kind) []string {
	switch kind {
	case model.KindImage:
		return []string{withExtension(path, extNEF)}
	case model.KindRaw:
		return []string{withExtension(path, extJPEG), withExtension(path, extJPG)}
	case model.KindNone:
	}
	return nil
}

// HasPair reports whether any pair candidate of path exists.
func HasPair(path string, kind model.Kind) bool {
	for _, candidate := range PairCandidates(path, kind) {
		if exists(candidate) {
			return true
		}
	}
	return false
}

// withExtension replaces the extension of the last path element with ext.
// The extension starts at the last dot of the base name, unless that dot
// is the first character (".nef" has no extension). Names without an
// extension get one appended.
func withExtension(path, ext string) string {
	dir, name := filepath.Split(path)
	stem := name
	if i := strings.LastIndexByte(name, '.'); i > 0 {
		stem = name[:i]
	}
	return dir + stem + "." + ext
}

// exists follows symbolic links; any stat error counts as missing.
func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
