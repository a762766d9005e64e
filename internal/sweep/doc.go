// Package sweep finds and removes "odd" photo files: JPEG images without
// a matching Nikon raw (.nef) file, and raw files without a matching JPEG.
//
// The package holds no presentation state. Callers hand it directory roots
// and get back paths, then hand paths back for deletion:
//
//	paths := sweep.FindOddFiles([]string{"/photos/2024"})
//	if paths == nil {
//		// nothing to do
//	}
//	if err := sweep.RemoveFiles(paths); err != nil {
//		// report "cannot remove files"
//	}
//
// Scanner and Remover expose the same operations with richer results:
// a model.ScanReport carrying kinds and counters, and a model.RemovalReport
// listing what happened to every requested path.
//
// # Pairing rules
//
// A name ending in ".jpg" or ".jpeg" is an image and is paired with the same
// path with its extension replaced by "nef". A name ending in "nef" is a raw
// file and is paired with either the ".jpeg" or the ".jpg" variant. Matching
// is case-sensitive. The raw check is a plain suffix match, so a file called
// "stonef" counts as raw.
//
// # Traversal
//
// Symbolic links are followed. Each canonical directory is entered at most
// once per scan, which breaks symlink cycles and keeps a file from being
// reported twice when it is reachable through several links. Entries that
// cannot be read are skipped without aborting the scan.
package sweep
