package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

// TestHelper provides utilities for command tests
type TestHelper struct {
	t       *testing.T
	baseDir string
}

func NewTestHelper(t *testing.T) *TestHelper {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	globalFlags = GlobalFlags{}
	return &TestHelper{t: t, baseDir: t.TempDir()}
}

func (h *TestHelper) Path(rel string) string {
	return filepath.Join(h.baseDir, filepath.FromSlash(rel))
}

func (h *TestHelper) CreateFile(rel, content string) {
	h.t.Helper()
	path := h.Path(rel)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		h.t.Fatalf("Failed to create directory: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		h.t.Fatalf("Failed to create file: %v", err)
	}
}

func (h *TestHelper) Mkdir(rel string) {
	h.t.Helper()
	if err := os.MkdirAll(h.Path(rel), 0755); err != nil {
		h.t.Fatalf("Failed to create directory: %v", err)
	}
}

func (h *TestHelper) ReadFile(rel string) string {
	h.t.Helper()
	data, err := os.ReadFile(h.Path(rel))
	if err != nil {
		h.t.Fatalf("Failed to read %s: %v", rel, err)
	}
	return string(data)
}

func (h *TestHelper) Exists(rel string) bool {
	_, err := os.Stat(h.Path(rel))
	return err == nil
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "dirdiff",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	AddGlobalFlags(root)
	root.AddCommand(NewCompareCommand())
	root.AddCommand(NewConfigCommand())
	root.AddCommand(NewVersionCommand())
	return root
}

func execute(args ...string) (string, error) {
	root := newRootCommand()
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func TestCompareCommand(t *testing.T) {
	t.Run("includes method", func(t *testing.T) {
		h := NewTestHelper(t)
		h.CreateFile("orig/a.txt", "Hello\n")
		h.CreateFile("mod/a.txt", "Hello World\n")
		h.CreateFile("mod/b.txt", "new\n")

		_, err := execute("compare", h.Path("orig"), h.Path("mod"), h.Path("report.txt"), "--method", "includes")
		if err != nil {
			t.Fatalf("compare failed: %v", err)
		}

		report := h.ReadFile("report.txt")
		for _, want := range []string{
			"\n------- a.txt (MODIFIED) -------\n",
			"-Hello\n+Hello World\n",
			"\n------- b.txt (NEW) -------\nnew\n",
		} {
			if !strings.Contains(report, want) {
				t.Errorf("report missing %q:\n%s", want, report)
			}
		}
	})

	t.Run("general method with filters", func(t *testing.T) {
		h := NewTestHelper(t)
		h.CreateFile("orig/src/main.go", "package main\n")
		h.CreateFile("mod/src/main.go", "package main\n")
		h.CreateFile("mod/node_modules/x.js", "x\n")
		h.CreateFile("mod/deep/a/b/c.txt", "c\n")

		_, err := execute("compare", h.Path("orig"), h.Path("mod"), h.Path("report.txt"),
			"--ignore", "node_modules", "--max-depth", "2")
		if err != nil {
			t.Fatalf("compare failed: %v", err)
		}

		report := h.ReadFile("report.txt")
		if !strings.HasPrefix(report, "/repository-root\n") {
			t.Errorf("report should start with the tree header:\n%s", report)
		}
		if strings.Contains(report, "node_modules") {
			t.Errorf("ignored directory present in report:\n%s", report)
		}
		if strings.Contains(report, "c.txt") {
			t.Errorf("file beyond max depth present in report:\n%s", report)
		}
	})

	t.Run("wrong argument count", func(t *testing.T) {
		h := NewTestHelper(t)
		h.Mkdir("orig")
		if _, err := execute("compare", h.Path("orig")); err == nil {
			t.Error("expected error for missing arguments")
		}
	})

	t.Run("missing original", func(t *testing.T) {
		h := NewTestHelper(t)
		h.Mkdir("mod")

		_, err := execute("compare", h.Path("missing"), h.Path("mod"), h.Path("report.txt"))
		if err == nil || !strings.Contains(err.Error(), "does not exist") {
			t.Fatalf("expected missing directory error, got %v", err)
		}
		if h.Exists("report.txt") {
			t.Error("output file created despite fatal error")
		}
	})

	t.Run("original is a file", func(t *testing.T) {
		h := NewTestHelper(t)
		h.CreateFile("orig", "not a dir")
		h.Mkdir("mod")

		_, err := execute("compare", h.Path("orig"), h.Path("mod"), h.Path("report.txt"))
		if err == nil || !strings.Contains(err.Error(), "not a directory") {
			t.Fatalf("expected not a directory error, got %v", err)
		}
	})

	t.Run("output is a directory", func(t *testing.T) {
		h := NewTestHelper(t)
		h.Mkdir("orig")
		h.Mkdir("mod")
		h.Mkdir("out")

		if _, err := execute("compare", h.Path("orig"), h.Path("mod"), h.Path("out")); err == nil {
			t.Error("expected error when output is a directory")
		}
	})

	t.Run("invalid method", func(t *testing.T) {
		h := NewTestHelper(t)
		h.Mkdir("orig")
		h.Mkdir("mod")

		_, err := execute("compare", h.Path("orig"), h.Path("mod"), h.Path("report.txt"), "--method", "sideways")
		if err == nil {
			t.Fatal("expected error for invalid method")
		}
		if h.Exists("report.txt") {
			t.Error("output file created despite invalid configuration")
		}
	})

	t.Run("json summary", func(t *testing.T) {
		h := NewTestHelper(t)
		h.CreateFile("orig/a.txt", "a\n")
		h.CreateFile("mod/a.txt", "a\n")

		out, err := execute("compare", h.Path("orig"), h.Path("mod"), h.Path("report.txt"), "--output", "json")
		if err != nil {
			t.Fatalf("compare failed: %v", err)
		}
		if !strings.Contains(out, `"status"`) {
			t.Errorf("expected JSON summary, got:\n%s", out)
		}
	})
}

func TestCompareFailedRunSummary(t *testing.T) {
	h := NewTestHelper(t)
	h.CreateFile("orig/a.txt", "a\n")
	h.CreateFile("mod/a.txt", "b\n")

	// parent directory of the output file does not exist
	out, err := execute("compare", h.Path("orig"), h.Path("mod"), h.Path("missing/report.txt"), "--output", "json")
	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("expected *ExitError, got %v", err)
	}
	if exitErr.Code != 1 {
		t.Errorf("exit code = %d, want 1", exitErr.Code)
	}

	var summary struct {
		Status string `json:"status"`
		Errors []struct {
			Error string `json:"error"`
		} `json:"errors"`
	}
	if err := json.Unmarshal([]byte(out), &summary); err != nil {
		t.Fatalf("stdout is not a JSON document: %v\n%s", err, out)
	}
	if summary.Status != "failed" {
		t.Errorf("status = %q, want failed", summary.Status)
	}
	if len(summary.Errors) != 1 || !strings.Contains(summary.Errors[0].Error, "failed to create output file") {
		t.Errorf("errors = %+v", summary.Errors)
	}
}

func TestCompareFilterLists(t *testing.T) {
	h := NewTestHelper(t)
	h.CreateFile("orig/keep.txt", "k\n")
	h.CreateFile("mod/keep.txt", "k\n")
	h.CreateFile("mod/.git/HEAD", "ref\n")
	h.CreateFile("mod/node_modules/x.js", "x\n")
	h.CreateFile("mod/build/out.o", "o\n")

	for name, flags := range map[string][]string{
		"comma":    {"--ignore", ".git,node_modules,build"},
		"repeated": {"--ignore", ".git", "--ignore", "node_modules", "--ignore", "build"},
	} {
		t.Run(name, func(t *testing.T) {
			args := append([]string{"compare", h.Path("orig"), h.Path("mod"), h.Path(name + ".txt")}, flags...)
			if _, err := execute(args...); err != nil {
				t.Fatalf("compare failed: %v", err)
			}
			report := h.ReadFile(name + ".txt")
			for _, ignored := range []string{".git", "node_modules", "build"} {
				if strings.Contains(report, ignored) {
					t.Errorf("%s present in report:\n%s", ignored, report)
				}
			}
		})
	}
}

func TestCompareRejectsNegativeMaxDepth(t *testing.T) {
	h := NewTestHelper(t)
	h.Mkdir("orig")
	h.Mkdir("mod")

	_, err := execute("compare", h.Path("orig"), h.Path("mod"), h.Path("report.txt"), "--max-depth", "-7")
	if err == nil || !strings.Contains(err.Error(), "max-depth") {
		t.Fatalf("expected max-depth error, got %v", err)
	}
	if h.Exists("report.txt") {
		t.Error("output file created despite invalid max depth")
	}

	// -1 is the explicit unlimited value
	if _, err := execute("compare", h.Path("orig"), h.Path("mod"), h.Path("report.txt"), "--max-depth", "-1"); err != nil {
		t.Errorf("--max-depth -1 should be accepted: %v", err)
	}
}

func TestApplyFlagsToConfig(t *testing.T) {
	NewTestHelper(t)

	cmd := NewCompareCommand()
	if err := cmd.ParseFlags([]string{
		"--ignore", ".git", "--ignore", "*.log",
		"--shallow-ignore", "vendor",
		"--include", "src",
		"--max-depth", "3",
		"--method", "unified",
		"--strategy", "bfs",
		"--context", "5",
		"--tag-dirs=false",
		"--log-file", "run.log",
	}); err != nil {
		t.Fatalf("ParseFlags failed: %v", err)
	}

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig failed: %v", err)
	}
	applyFlagsToConfig(cmd, cfg)

	if got := strings.Join(cfg.Filter.Ignore, ","); got != ".git,*.log" {
		t.Errorf("Ignore = %q", got)
	}
	if got := strings.Join(cfg.Filter.ShallowIgnore, ","); got != "vendor" {
		t.Errorf("ShallowIgnore = %q", got)
	}
	if got := strings.Join(cfg.Filter.Include, ","); got != "src" {
		t.Errorf("Include = %q", got)
	}
	if cfg.Filter.MaxDepth == nil || *cfg.Filter.MaxDepth != 3 {
		t.Errorf("MaxDepth = %v, want 3", cfg.Filter.MaxDepth)
	}
	if cfg.Report.Method != "unified" {
		t.Errorf("Method = %q", cfg.Report.Method)
	}
	if cfg.Performance.Strategy != "bfs" {
		t.Errorf("Strategy = %q", cfg.Performance.Strategy)
	}
	if cfg.Report.ContextLines != 5 {
		t.Errorf("ContextLines = %d", cfg.Report.ContextLines)
	}
	if cfg.Report.TagDirectories {
		t.Error("TagDirectories should be false")
	}
	if !cfg.Logging.Enabled || cfg.Logging.File != "run.log" {
		t.Errorf("Logging = %+v", cfg.Logging)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate failed: %v", err)
	}
}

func TestApplyFlagsKeepsConfigDefaults(t *testing.T) {
	NewTestHelper(t)

	cmd := NewCompareCommand()
	if err := cmd.ParseFlags(nil); err != nil {
		t.Fatalf("ParseFlags failed: %v", err)
	}

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig failed: %v", err)
	}
	applyFlagsToConfig(cmd, cfg)

	if cfg.Filter.MaxDepth != nil {
		t.Errorf("MaxDepth = %d, want unlimited", *cfg.Filter.MaxDepth)
	}
	if cfg.Report.ContextLines != 3 {
		t.Errorf("ContextLines = %d, want 3", cfg.Report.ContextLines)
	}
	if !cfg.Report.TagDirectories {
		t.Error("TagDirectories default should be true")
	}
}

func TestConfigCommands(t *testing.T) {
	h := NewTestHelper(t)
	path := h.Path("conf/config.yaml")

	out, err := execute("config", "init", "--config", path)
	if err != nil {
		t.Fatalf("config init failed: %v", err)
	}
	if !strings.Contains(out, path) {
		t.Errorf("unexpected init output: %s", out)
	}

	if _, err := execute("config", "init", "--config", path); err == nil {
		t.Error("expected error when config already exists")
	}
	if _, err := execute("config", "init", "--config", path, "--force"); err != nil {
		t.Errorf("config init --force failed: %v", err)
	}

	out, err = execute("config", "show", "--config", path)
	if err != nil {
		t.Fatalf("config show failed: %v", err)
	}
	for _, want := range []string{"Method: general", "Max Depth: unlimited", "Strategy: walk"} {
		if !strings.Contains(out, want) {
			t.Errorf("config show missing %q:\n%s", want, out)
		}
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := execute("version", "--short")
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if out != Version+"\n" {
		t.Errorf("version --short = %q, want %q", out, Version+"\n")
	}
}
