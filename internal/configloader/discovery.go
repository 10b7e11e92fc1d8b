package configloader

import (
	"context"
	"fmt"
	"iter"
	"os"
	"path/filepath"
	"runtime"
)

const appDir = "adoclint"

// ConfigPaths records where each configuration layer was found. An empty
// field means that layer has no file.
type ConfigPaths struct {
	System   string
	User     string
	Project  string
	Explicit string
}

// Project config names, most preferred first.
//
//nolint:gochecknoglobals // Read-only lookup table.
var projectFileNames = []string{
	".adoclint.yml",
	".adoclint.yaml",
	"adoclint.yml",
	"adoclint.yaml",
}

//nolint:gochecknoglobals // Read-only lookup table.
var globalFileNames = []string{"config.yaml", "config.yml"}

// A directory holding one of these ends the upward search.
//
//nolint:gochecknoglobals // Read-only lookup table.
var repositoryMarkers = []string{".git", ".hg", ".svn"}

// DiscoverPaths locates the system, user and project configuration files
// for workDir.
func DiscoverPaths(ctx context.Context, workDir string) (*ConfigPaths, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context cancelled: %w", err)
	}

	project, err := FindProjectConfig(ctx, workDir)
	if err != nil {
		return nil, err
	}

	return &ConfigPaths{
		System:  firstFile(systemConfigDir(), globalFileNames),
		User:    firstFile(userConfigDir(), globalFileNames),
		Project: project,
	}, nil
}

// systemConfigDir is /etc/adoclint, or %ProgramData%\adoclint on Windows.
func systemConfigDir() string {
	if runtime.GOOS != "windows" {
		return filepath.Join("/etc", appDir)
	}
	base := os.Getenv("ProgramData")
	if base == "" {
		base = `C:\ProgramData`
	}
	return filepath.Join(base, appDir)
}

// userConfigDir follows XDG_CONFIG_HOME, falling back to ~/.config.
func userConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appDir)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", appDir)
}

// FindProjectConfig looks for a project config in startDir and each of its
// parents. The search ends after a repository root or the home directory,
// and returns "" when nothing is found.
func FindProjectConfig(ctx context.Context, startDir string) (string, error) {
	dir, err := resolveDir(startDir)
	if err != nil {
		return "", err
	}

	for candidate := range ancestors(dir) {
		if err := ctx.Err(); err != nil {
			return "", fmt.Errorf("context cancelled: %w", err)
		}
		if found := firstFile(candidate, projectFileNames); found != "" {
			return found, nil
		}
		if isRepositoryRoot(candidate) {
			break
		}
	}

	return "", nil
}

// ancestors yields dir and each parent up to the filesystem root, stopping
// after the user's home directory.
func ancestors(dir string) iter.Seq[string] {
	home, _ := os.UserHomeDir()

	return func(yield func(string) bool) {
		for {
			if !yield(dir) || dir == home {
				return
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				return
			}
			dir = parent
		}
	}
}

// resolveDir makes dir absolute, defaulting to the process working directory.
func resolveDir(dir string) (string, error) {
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return abs, nil
}

func firstFile(dir string, names []string) string {
	if dir == "" {
		return ""
	}
	for _, name := range names {
		if candidate := filepath.Join(dir, name); isFile(candidate) {
			return candidate
		}
	}
	return ""
}

func isRepositoryRoot(dir string) bool {
	for _, marker := range repositoryMarkers {
		if info, err := os.Stat(filepath.Join(dir, marker)); err == nil && info.IsDir() {
			return true
		}
	}
	return false
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
