//go:build stave

package main

import (
	"cmp"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/yaklabco/stave/pkg/sh"
	"github.com/yaklabco/stave/pkg/st"
	"github.com/yaklabco/stave/pkg/target"
)

// Default target runs build.
var Default = Build

// Aliases for common targets.
var Aliases = map[string]any{
	"b":   Build,
	"t":   Test.Default,
	"l":   Lint.Default,
	"c":   Check,
	"i":   Install,
	"fmt": Lint.Fmt,
	"fz":  Test.Fuzz,
	"bc":  Bench.Corpus,
}

// Namespace types group related targets.
type (
	Test  st.Namespace
	Lint  st.Namespace
	CI    st.Namespace
	Bench st.Namespace
)

// Build compiles the adoclint binary with version info.
// Skips recompilation when source files have not changed.
func Build() error {
	rebuild, err := target.Dir("bin/adoclint", "cmd/", "pkg/", "internal/", "go.mod", "go.sum")
	if err != nil {
		return err
	}
	if !rebuild {
		fmt.Println("bin/adoclint is up to date")
		return nil
	}
	fmt.Println("Building adoclint...")
	return sh.RunV("go", "build", "-ldflags", ldflags(), "-o", "bin/adoclint", "./cmd/adoclint")
}

// Check runs format, lint, and test sequentially.
func Check() {
	st.SerialDeps(Lint.Fmt, Lint.Default, Test.Default)
}

// Clean deletes the binary and coverage output.
func Clean() error {
	for _, artifact := range []string{"bin", "coverage.out", "coverage.html"} {
		if err := sh.Rm(artifact); err != nil {
			return fmt.Errorf("remove %s: %w", artifact, err)
		}
	}
	return nil
}

// Install installs adoclint to $GOBIN or $GOPATH/bin.
func Install() error {
	fmt.Println("Installing adoclint...")
	return sh.RunV("go", "install", "-ldflags", ldflags(), "./cmd/adoclint")
}

// Uninstall deletes the binary placed by Install.
func Uninstall() error {
	bin, err := installedBinary()
	if err != nil {
		return err
	}
	switch err := os.Remove(bin); {
	case errors.Is(err, fs.ErrNotExist):
		fmt.Println("adoclint is not installed")
	case err != nil:
		return fmt.Errorf("remove %s: %w", bin, err)
	default:
		fmt.Println("Removed", bin)
	}
	return nil
}

// Deps downloads modules and tidies go.mod.
func Deps() error {
	for _, step := range []string{"download", "tidy"} {
		if err := sh.RunV("go", "mod", step); err != nil {
			return err
		}
	}
	return nil
}

// Coverage runs the tests and writes coverage.html.
func Coverage() error {
	st.Deps(Test.Default)
	return sh.RunV("go", "tool", "cover", "-html=coverage.out", "-o", "coverage.html")
}

// Default runs all tests under gotestsum with race detection and coverage.
func (Test) Default() error {
	fmt.Println("Running tests...")
	return gotestsum("pkgname-and-test-fails")
}

// Verbose is Default with every test name printed.
func (Test) Verbose() error {
	fmt.Println("Running tests (verbose)...")
	return gotestsum("standard-verbose")
}

// Fuzz runs the tokenizer and parser fuzz targets for a short time each
// (ADOCLINT_FUZZTIME, default 30s).
func (Test) Fuzz() error {
	fuzzTime := cmp.Or(os.Getenv("ADOCLINT_FUZZTIME"), "30s")
	for _, fuzz := range []string{"FuzzTokenize", "FuzzParse"} {
		fmt.Printf("Fuzzing %s for %s...\n", fuzz, fuzzTime)
		if err := sh.RunV("go", "test", "-run", "^$",
			"-fuzz", "^"+fuzz+"$", "-fuzztime", fuzzTime,
			"./pkg/parser/asciidoc"); err != nil {
			return err
		}
	}
	return nil
}

// Default runs golangci-lint and applies its fixes.
func (Lint) Default() error {
	return sh.RunV("golangci-lint", "run", "--fix", "./...")
}

// CI runs golangci-lint without touching files.
func (Lint) CI() error {
	return sh.RunV("golangci-lint", "run", "./...")
}

// Fmt rewrites every Go file with gofmt.
func (Lint) Fmt() error {
	return sh.RunV("gofmt", "-w", ".")
}

// FmtCheck lists files gofmt would change and fails if there are any.
func (Lint) FmtCheck() error {
	out, err := sh.Output("gofmt", "-l", ".")
	switch {
	case err != nil:
		return fmt.Errorf("gofmt: %w", err)
	case out != "":
		return fmt.Errorf("needs gofmt (run stave lint:fmt):\n%s", out)
	}
	return nil
}

// Vet runs go vet on every package.
func (Lint) Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Gate is everything CI requires before merge, cheapest first.
func (CI) Gate() {
	st.SerialDeps(Lint.FmtCheck, Lint.Vet, Lint.CI, Build, Test.Default, CI.ModTidy, CI.Cross)
}

// ModTidy fails when go mod tidy would change go.mod or go.sum.
func (CI) ModTidy() error {
	fmt.Println("Checking go.mod/go.sum are tidy...")
	files := []string{"go.mod", "go.sum"}

	before, err := readAll(files)
	if err != nil {
		return err
	}
	if err := sh.RunV("go", "mod", "tidy"); err != nil {
		return err
	}
	after, err := readAll(files)
	if err != nil {
		return err
	}

	for _, name := range files {
		if before[name] != after[name] {
			return fmt.Errorf("%s changed after 'go mod tidy'; commit the result", name)
		}
	}
	fmt.Println("✓ go.mod/go.sum are tidy")
	return nil
}

// Cross builds every release platform with cgo off.
func (CI) Cross() error {
	fmt.Println("Cross-compiling for all release platforms...")
	for _, platform := range releasePlatforms {
		goos, goarch, _ := strings.Cut(platform, "/")
		fmt.Printf("  Building %s...\n", platform)
		env := map[string]string{"GOOS": goos, "GOARCH": goarch, "CGO_ENABLED": "0"}
		if err := sh.RunWith(env, "go", "build", "-o", os.DevNull, "./cmd/adoclint"); err != nil {
			return fmt.Errorf("build %s: %w", platform, err)
		}
	}
	fmt.Println("✓ All platforms build successfully")
	return nil
}

var releasePlatforms = []string{
	"linux/amd64", "linux/arm64",
	"darwin/amd64", "darwin/arm64",
	"windows/amd64", "windows/arm64",
	"freebsd/amd64", "freebsd/arm64",
	"openbsd/amd64", "netbsd/amd64",
}

// Default runs every Go benchmark.
func (Bench) Default() error {
	fmt.Println("Running benchmarks...")
	return sh.RunV("go", "tool", "gotestsum", "-f", "pkgname-and-test-fails", "--",
		"-run", "^$", "-bench", ".", "-benchmem", "./...")
}

// Corpus times a lint run of the built binary over a directory of AsciiDoc
// sources (ADOCLINT_BENCH_DIR, default "docs").
func (Bench) Corpus() error {
	st.Deps(Build)
	dir := cmp.Or(os.Getenv("ADOCLINT_BENCH_DIR"), "docs")
	if _, err := os.Stat(dir); err != nil {
		return fmt.Errorf("corpus directory: %w", err)
	}

	fmt.Printf("Linting %s...\n", dir)
	start := time.Now()
	err := sh.RunV("bin/adoclint", "lint", "--format", "summary", dir)
	fmt.Printf("Corpus linted in %s\n", time.Since(start).Round(time.Millisecond))
	if err != nil {
		return fmt.Errorf("lint corpus: %w", err)
	}
	return nil
}

// gotestsum runs the whole suite with race detection and a coverage
// profile. STAVE_NUM_PROCESSORS bounds package and test parallelism.
func gotestsum(format string) error {
	procs := cmp.Or(os.Getenv("STAVE_NUM_PROCESSORS"), "4")
	return sh.RunV("go", "tool", "gotestsum", "-f", format, "--",
		"-race", "-p", procs, "-parallel", procs,
		"-coverprofile=coverage.out", "-covermode=atomic",
		"./...")
}

// readAll maps each file name to its contents.
func readAll(names []string) (map[string]string, error) {
	contents := make(map[string]string, len(names))
	for _, name := range names {
		data, err := os.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		contents[name] = string(data)
	}
	return contents, nil
}

// git returns trimmed stdout of a git command, or "" when git fails.
func git(args ...string) string {
	out, _ := sh.Output("git", args...)
	return strings.TrimSpace(out)
}

// ldflags stamps main.version, main.commit and main.date.
func ldflags() string {
	stamps := []string{
		"main.version=" + cmp.Or(git("describe", "--tags", "--always", "--dirty"), "dev"),
		"main.commit=" + cmp.Or(git("rev-parse", "--short", "HEAD"), "none"),
		"main.date=" + time.Now().UTC().Format(time.RFC3339),
	}
	return "-X " + strings.Join(stamps, " -X ")
}

// installedBinary asks the go command where install puts adoclint.
func installedBinary() (string, error) {
	if gobin, err := sh.Output("go", "env", "GOBIN"); err == nil && strings.TrimSpace(gobin) != "" {
		return filepath.Join(strings.TrimSpace(gobin), "adoclint"), nil
	}
	gopath, err := sh.Output("go", "env", "GOPATH")
	if err != nil {
		return "", fmt.Errorf("go env GOPATH: %w", err)
	}
	first, _, _ := strings.Cut(strings.TrimSpace(gopath), string(os.PathListSeparator))
	return filepath.Join(first, "bin", "adoclint"), nil
}
