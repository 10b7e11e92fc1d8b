package lint_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/yaklabco/adoclint/pkg/adast"
	"github.com/yaklabco/adoclint/pkg/config"
	"github.com/yaklabco/adoclint/pkg/lint"
)

func writeDoc(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "doc.adoc")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}
	return path
}

func TestPipeline_ProcessFile(t *testing.T) {
	t.Parallel()

	path := writeDoc(t, sampleDoc)
	pipeline := lint.NewPipeline(newTestEngine(flagEach("SEC", "section", adast.NodeSection)))

	result, err := pipeline.ProcessFile(context.Background(), path, config.NewConfig(), lint.DefaultPipelineOptions())
	if err != nil {
		t.Fatalf("ProcessFile() error = %v", err)
	}

	if result.Path != path || result.Info == nil {
		t.Errorf("result = %+v", result)
	}
	if result.IssueCount() != 3 {
		t.Errorf("IssueCount() = %d, want 3", result.IssueCount())
	}
	if result.Findings[0].FilePath != path {
		t.Errorf("FilePath = %q", result.Findings[0].FilePath)
	}
	if result.Summary() != "issues found" {
		t.Errorf("Summary() = %q", result.Summary())
	}
}

func TestPipeline_ProcessFile_FileNotFound(t *testing.T) {
	t.Parallel()

	pipeline := lint.NewPipeline(newTestEngine())
	_, err := pipeline.ProcessFile(context.Background(), "/nonexistent/doc.adoc", nil, lint.DefaultPipelineOptions())

	if !errors.Is(err, lint.ErrFileNotFound) {
		t.Errorf("error = %v, want ErrFileNotFound", err)
	}
	if !lint.IsPipelineError(err) {
		t.Error("IsPipelineError() = false")
	}
}

func TestPipeline_ProcessFile_DetectChanges(t *testing.T) {
	t.Parallel()

	path := writeDoc(t, "= Title\n")

	// Rewrites the file while it is being linted.
	rewrite := newFuncRule("RW", func(*lint.RuleContext, *adast.Node) ([]lint.Finding, error) {
		return nil, os.WriteFile(path, []byte("= Other title, longer\n"), 0o644)
	}, adast.NodeDocument)

	opts := lint.DefaultPipelineOptions()
	opts.DetectChanges = true

	result, err := lint.NewPipeline(newTestEngine(rewrite)).ProcessFile(context.Background(), path, nil, opts)
	if err != nil {
		t.Fatalf("ProcessFile() error = %v", err)
	}
	if !result.Changed || result.Summary() != "changed during linting" {
		t.Errorf("Changed = %v Summary = %q", result.Changed, result.Summary())
	}
}

func TestPipeline_Timeout(t *testing.T) {
	t.Parallel()

	slow := newFuncRule("SLOW", func(ctx *lint.RuleContext, node *adast.Node) ([]lint.Finding, error) {
		<-ctx.Ctx.Done()
		return []lint.Finding{lint.NewFinding("SLOW", node, "partial").Build()}, nil
	}, adast.NodeSection)

	opts := lint.DefaultPipelineOptions()
	opts.Timeout = 20 * time.Millisecond

	pipeline := lint.NewPipeline(newTestEngine(slow, flagEach("FAST", "fast", adast.NodeSection)))
	result, err := pipeline.ProcessContent(context.Background(), "slow.adoc", []byte(sampleDoc), nil, opts)
	if err != nil {
		t.Fatalf("ProcessContent() error = %v", err)
	}

	if !result.TimedOut {
		t.Fatal("TimedOut = false")
	}
	if len(result.Findings) != 1 {
		t.Fatalf("got %d findings, want exactly the timeout finding: %+v", len(result.Findings), result.Findings)
	}
	f := result.Findings[0]
	if f.RuleID != lint.TimeoutRuleID || !f.Internal || f.FilePath != "slow.adoc" || f.Line() != 1 {
		t.Errorf("timeout finding = %+v", f)
	}
}

func TestPipeline_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := lint.NewPipeline(newTestEngine()).ProcessContent(ctx, "x.adoc", []byte("x"), nil, lint.DefaultPipelineOptions())
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestPipelineOptionsFromConfig(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.Timeout = 5 * time.Second

	if got := lint.PipelineOptionsFromConfig(cfg).Timeout; got != 5*time.Second {
		t.Errorf("Timeout = %s", got)
	}
	if got := lint.PipelineOptionsFromConfig(nil).Timeout; got != config.DefaultTimeout {
		t.Errorf("nil config Timeout = %s", got)
	}
}

func TestPipelineResult_Summary(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		result lint.PipelineResult
		want   string
	}{
		{"ok", lint.PipelineResult{Evaluation: &lint.Evaluation{}}, "ok"},
		{"no evaluation", lint.PipelineResult{}, "ok"},
		{"issues", lint.PipelineResult{Evaluation: &lint.Evaluation{Findings: []lint.Finding{{}}}}, "issues found"},
		{"timed out", lint.PipelineResult{TimedOut: true}, "timed out"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			if got := testCase.result.Summary(); got != testCase.want {
				t.Errorf("Summary() = %q, want %q", got, testCase.want)
			}
		})
	}
}
