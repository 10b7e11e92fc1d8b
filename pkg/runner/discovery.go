package runner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// Discover finds AsciiDoc files matching opts under the given working directory.
// It returns a deterministically sorted list of absolute file paths.
//
// Explicit file arguments are kept even when hidden; directories are walked
// with hidden entries skipped. Exclude globs prune whole directories.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	d := &discoverer{
		workDir:        workDir,
		extensions:     extensionSet(opts.effectiveExtensions()),
		include:        newGlobSet(opts.IncludeGlobs),
		exclude:        newGlobSet(opts.ExcludeGlobs),
		followSymlinks: opts.FollowSymlinks,
		seen:           make(map[string]struct{}),
		walked:         make(map[string]struct{}),
	}

	for _, input := range opts.effectivePaths() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("discovery cancelled: %w", err)
		}
		if err := d.add(ctx, input); err != nil {
			return nil, err
		}
	}

	slices.Sort(d.files)
	return d.files, nil
}

// discoverer accumulates matching files across all input paths.
type discoverer struct {
	workDir        string
	extensions     map[string]struct{}
	include        globSet
	exclude        globSet
	followSymlinks bool

	seen   map[string]struct{}
	walked map[string]struct{} // resolved directories already walked
	files  []string
}

// add resolves one input path and collects the files it names.
func (d *discoverer) add(ctx context.Context, input string) error {
	abs := input
	if !filepath.IsAbs(abs) {
		abs = filepath.Join(d.workDir, abs)
	}
	abs = filepath.Clean(abs)

	info, err := os.Stat(abs)
	if err != nil {
		return fmt.Errorf("stat %s: %w", input, err)
	}

	if !info.IsDir() {
		if d.matches(abs) {
			d.collect(abs)
		}
		return nil
	}

	return d.walk(ctx, abs)
}

// walk collects matching files below root. Symlinked directories are walked
// through their target when followSymlinks is set, at most once each.
func (d *discoverer) walk(ctx context.Context, root string) error {
	if real, err := filepath.EvalSymlinks(root); err == nil {
		if _, done := d.walked[real]; done {
			return nil
		}
		d.walked[real] = struct{}{}
	}

	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			if os.IsPermission(walkErr) {
				return nil
			}
			return walkErr
		}

		hidden := strings.HasPrefix(entry.Name(), ".")

		if entry.IsDir() {
			if path == root {
				return nil
			}
			if hidden || d.exclude.match(d.rel(path)) {
				return filepath.SkipDir
			}
			return nil
		}

		if hidden {
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			return d.symlink(ctx, path)
		}

		if d.matches(path) {
			d.collect(path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("walk directory %s: %w", root, err)
	}
	return nil
}

// symlink handles a symlink found during a walk. Broken links are skipped.
func (d *discoverer) symlink(ctx context.Context, path string) error {
	target, err := filepath.EvalSymlinks(path)
	if err != nil {
		return nil //nolint:nilerr // Broken symlinks are skipped.
	}
	info, err := os.Stat(target)
	if err != nil {
		return nil //nolint:nilerr // Unreadable targets are skipped.
	}

	if !info.IsDir() {
		if d.matches(path) {
			d.collect(path)
		}
		return nil
	}

	if !d.followSymlinks || d.exclude.match(d.rel(path)) {
		return nil
	}
	// WalkDir does not descend into symlinks, so walk the target itself.
	return d.walk(ctx, target)
}

// matches reports whether a file passes the extension and glob filters.
func (d *discoverer) matches(path string) bool {
	if _, ok := d.extensions[strings.ToLower(filepath.Ext(path))]; !ok {
		return false
	}

	rel := d.rel(path)
	if d.exclude.match(rel) {
		return false
	}
	return len(d.include) == 0 || d.include.match(rel)
}

func (d *discoverer) collect(path string) {
	if _, ok := d.seen[path]; ok {
		return
	}
	d.seen[path] = struct{}{}
	d.files = append(d.files, path)
}

// rel returns path relative to the working directory for glob matching.
func (d *discoverer) rel(path string) string {
	rel, err := filepath.Rel(d.workDir, path)
	if err != nil {
		return path
	}
	return rel
}

// resolveWorkDir resolves the working directory, defaulting to os.Getwd().
func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}
	abs, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return abs, nil
}

// extensionSet lowercases extensions into a lookup set.
func extensionSet(extensions []string) map[string]struct{} {
	set := make(map[string]struct{}, len(extensions))
	for _, ext := range extensions {
		set[strings.ToLower(ext)] = struct{}{}
	}
	return set
}
