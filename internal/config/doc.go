// Package config provides configuration structures and utilities for sweeper.
// It defines scan and report options, loads the optional .sweeper YAML file
// and resolves XDG directories for the history database.
package config
