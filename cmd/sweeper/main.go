// Package main provides the entry point for the sweeper CLI.
//
// sweeper finds photos whose JPEG or NEF counterpart is missing and,
// after confirmation, removes them.
//
// Usage:
//
//	sweeper scan ~/Pictures/2024
//	sweeper clean ~/Pictures/2024 ~/Pictures/2025
//
// See --help for all available options.
package main

// main is the entry point for sweeper.
func main() {
	Execute()
}
