// Package model defines the data structures shared by the scanner,
// the remover, the report writers and the history database.
//
// This package contains the following main types:
//   - OddFile: An image or raw file whose counterpart is missing
//   - ScanReport: The result of walking a set of directory roots
//   - RemovalReport: Per-file outcomes of a deletion run
//
// The models are serializable to JSON for report output and history storage.
package model
