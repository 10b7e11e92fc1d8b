// Package runner finds AsciiDoc files and lints them concurrently.
package runner

import "github.com/yaklabco/adoclint/pkg/config"

// Options describes one run over a set of paths.
type Options struct {
	// Paths are files or directories; none means the working directory.
	Paths []string

	// WorkingDir resolves relative Paths and globs. Empty means the process
	// working directory.
	WorkingDir string

	// Extensions are lowercase with a leading dot. Empty falls back to
	// Config.Extensions and then to config.DefaultExtensions.
	Extensions []string

	// IncludeGlobs, when set, restrict discovery to matching files.
	IncludeGlobs []string

	// ExcludeGlobs skip matching files and whole directories.
	ExcludeGlobs []string

	FollowSymlinks bool

	// Jobs bounds the worker pool; zero or less means one per CPU.
	Jobs int

	// DetectChanges flags files modified while they were being linted.
	DetectChanges bool

	Config *config.Config
}

func (o Options) effectiveExtensions() []string {
	switch {
	case len(o.Extensions) > 0:
		return o.Extensions
	case o.Config != nil && len(o.Config.Extensions) > 0:
		return o.Config.Extensions
	}
	return config.DefaultExtensions()
}

func (o Options) effectivePaths() []string {
	if len(o.Paths) > 0 {
		return o.Paths
	}
	return []string{"."}
}
