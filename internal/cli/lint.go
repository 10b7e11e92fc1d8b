package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/yaklabco/adoclint/internal/configloader"
	"github.com/yaklabco/adoclint/internal/logging"
	"github.com/yaklabco/adoclint/internal/ui/pretty"
	"github.com/yaklabco/adoclint/pkg/config"
	"github.com/yaklabco/adoclint/pkg/lint"
	"github.com/yaklabco/adoclint/pkg/parser/asciidoc"
	"github.com/yaklabco/adoclint/pkg/reporter"
	"github.com/yaklabco/adoclint/pkg/runner"
)

// ErrLintIssuesFound is matched by every IssuesError.
var ErrLintIssuesFound = errors.New("lint issues found")

const reportFileMode = 0o644

type lintFlags struct {
	format       string
	ruleFormat   string
	summaryOrder string
	pack         string
	output       string
	timeout      time.Duration
	ignore       []string
	enable       []string
	disable      []string
	strict       bool
	noContext    bool
	compact      bool
	perFile      bool
}

const lintLongDescription = `Lint AsciiDoc files for structural and style issues.

Without arguments every .adoc, .asciidoc and .asc file below the current
directory is checked. Pass files or directories to narrow the run.

Examples:
  adoclint lint                          # Lint current directory
  adoclint lint docs/                    # Lint docs directory
  adoclint lint guide.adoc               # Lint single file
  adoclint lint --pack strict            # Start from the strict rule pack
  adoclint lint --format json            # Output as JSON for CI
  adoclint lint --format html -o r.html  # Write an HTML report
  adoclint lint --strict                 # Fail on warnings too`

func newLintCommand() *cobra.Command {
	var cliCfg config.Config
	flags := &lintFlags{}

	cmd := &cobra.Command{
		Use:   "lint [paths...]",
		Short: "Lint AsciiDoc files",
		Long:  lintLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags.overlay(cmd, &cliCfg)
			return runLint(cmd, args, &cliCfg, flags)
		},
	}

	fs := cmd.Flags()
	fs.StringVar(&flags.format, "format", "text", "output format: text, table, json, html, summary")
	fs.StringVar(&flags.ruleFormat, "rule-format", "name", "rule identifier format in output: name, id, or combined")
	fs.StringVar(&flags.summaryOrder, "summary-order", "rules", "order of tables in summary output: rules, files")
	fs.StringVar(&flags.pack, "pack", "", "rule pack to start from: core, strict, relaxed, publishing")
	fs.StringVarP(&flags.output, "output", "o", "", "write the report to a file instead of stdout")
	fs.DurationVar(&flags.timeout, "timeout", config.DefaultTimeout, "time budget for a single document")
	fs.IntVar(&cliCfg.Jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	fs.StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	fs.StringSliceVar(&flags.enable, "enable", nil, "rule IDs or names to enable")
	fs.StringSliceVar(&flags.disable, "disable", nil, "rule IDs or names to disable")
	fs.BoolVar(&flags.strict, "strict", false, "exit non-zero on warnings as well as errors")
	fs.BoolVar(&flags.noContext, "no-context", false, "hide source line context in output")
	fs.BoolVar(&flags.compact, "compact", false, "use compact output format")
	fs.BoolVar(&flags.perFile, "per-file", false, "output separate report for each file (table format)")

	return cmd
}

// overlay copies flags into the CLI config layer. Scalars with a default
// only count when given, so they do not mask config files.
func (f *lintFlags) overlay(cmd *cobra.Command, cfg *config.Config) {
	set := cmd.Flags().Changed
	if set("format") {
		cfg.Format = config.OutputFormat(f.format)
	}
	if set("rule-format") {
		cfg.RuleFormat = config.RuleFormat(f.ruleFormat)
	}
	if set("timeout") {
		cfg.Timeout = f.timeout
	}
	cfg.Ignore = f.ignore
	cfg.EnableRules = f.enable
	cfg.DisableRules = f.disable
}

func runLint(cmd *cobra.Command, args []string, cliCfg *config.Config, flags *lintFlags) error {
	ctx := cmd.Context()
	logger := logging.FromContext(ctx)

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}
	explicit, _ := cmd.Flags().GetString("config")

	loaded, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: explicit,
		Pack:         flags.pack,
		CLIConfig:    cliCfg,
	})
	if err != nil {
		return errors.Join(errors.New("failed to load configuration"), err)
	}
	cfg := loaded.Config
	logLoaded(logger, loaded, flags.pack)

	run := runner.New(lint.NewPipeline(lint.NewEngine(asciidoc.New(), lint.DefaultRegistry)))
	opts := runner.Options{
		Paths:        args,
		WorkingDir:   workDir,
		ExcludeGlobs: cfg.Ignore,
		Jobs:         cfg.Jobs,
		Config:       cfg,
	}
	logger.Debug("starting lint run",
		logging.FieldPaths, opts.Paths,
		logging.FieldWorkingDir, opts.WorkingDir,
		logging.FieldJobs, opts.Jobs,
	)

	start := time.Now()
	result, err := run.Run(ctx, opts)
	if err != nil {
		return errors.Join(errors.New("lint run failed"), err)
	}
	logger.Debug("lint run finished",
		logging.FieldFilesProcessed, result.Stats.FilesProcessed,
		logging.FieldFindingsTotal, result.Stats.FindingsTotal,
		logging.FieldRulesFaulted, result.Stats.RulesFaulted,
		logging.FieldDuration, time.Since(start),
	)
	logOutcomes(logger, result)

	repOpts, err := flags.reporterOptions(cmd, cfg, workDir)
	if err != nil {
		return err
	}

	out, closeOut, err := flags.destination(cmd.OutOrStdout())
	if err != nil {
		return err
	}
	defer closeOut()
	if flags.output != "" {
		repOpts.Color = pretty.ColorNever
	}
	repOpts.Writer = out

	rep, err := reporter.New(repOpts)
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}
	if _, err := rep.Report(ctx, result); err != nil {
		logger.Error("report failed", logging.FieldError, err)
		return fmt.Errorf("report results: %w", err)
	}
	if flags.output != "" {
		logger.Info("wrote report", logging.FieldPath, flags.output)
	}

	if code := ExitCodeFromResult(result, flags.strict); code != ExitSuccess {
		return &IssuesError{Code: code}
	}
	return nil
}

func logLoaded(logger *log.Logger, loaded *configloader.LoadResult, pack string) {
	for _, warning := range loaded.Warnings {
		logger.Warn(warning)
	}
	if len(loaded.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", logging.FieldFiles, loaded.LoadedFrom)
	}
	logger.Debug("configuration loaded",
		logging.FieldPack, pack,
		logging.FieldJobs, loaded.Config.Jobs,
		logging.FieldTimeout, loaded.Config.EffectiveTimeout(),
	)
}

// logOutcomes notes, at debug level, every file that failed or did not
// finish cleanly.
func logOutcomes(logger *log.Logger, result *runner.Result) {
	for _, file := range result.Files {
		switch {
		case file.Error != nil:
			logger.Debug("file failed", logging.FieldPath, file.Path, logging.FieldError, file.Error)
		case file.Result != nil && (file.Result.TimedOut || file.Result.Changed):
			logger.Debug("file "+file.Result.Summary(), logging.FieldPath, file.Path)
		}
	}
}

func (f *lintFlags) reporterOptions(cmd *cobra.Command, cfg *config.Config, workDir string) (reporter.Options, error) {
	format, err := reporter.ParseFormat(string(cfg.Format))
	if err != nil {
		return reporter.Options{}, fmt.Errorf("invalid format: %w", err)
	}
	order, err := reporter.ParseSummaryOrder(f.summaryOrder)
	if err != nil {
		return reporter.Options{}, fmt.Errorf("invalid summary order: %w", err)
	}
	color, err := cmd.Flags().GetString("color")
	if err != nil {
		color = pretty.ColorAuto
	}

	opts := reporter.DefaultOptions()
	opts.Format = format
	opts.Color = color
	opts.ShowContext = !f.noContext
	opts.Compact = f.compact
	opts.PerFile = f.perFile
	opts.RuleFormat = cfg.RuleFormat
	opts.SummaryOrder = order
	opts.WorkingDir = workDir
	return opts, nil
}

// destination is stdout, or the --output file with its closer.
func (f *lintFlags) destination(stdout io.Writer) (io.Writer, func(), error) {
	if f.output == "" {
		return stdout, func() {}, nil
	}
	file, err := os.OpenFile(f.output, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, reportFileMode)
	if err != nil {
		return nil, nil, fmt.Errorf("open output file: %w", err)
	}
	return file, func() { _ = file.Close() }, nil
}
