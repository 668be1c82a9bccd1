package models

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

// ============== IgnoreSpec Tests ==============

func TestIgnoreSpecDepth(t *testing.T) {
	t.Run("Unlimited", func(t *testing.T) {
		spec := &IgnoreSpec{}
		if spec.HasMaxDepth() {
			t.Error("HasMaxDepth() should be false without MaxDepth")
		}
		if spec.DepthLimit() != -1 {
			t.Errorf("DepthLimit() = %d, want -1", spec.DepthLimit())
		}
	})

	t.Run("Bounded", func(t *testing.T) {
		spec := &IgnoreSpec{MaxDepth: IntPtr(2)}
		if !spec.HasMaxDepth() {
			t.Error("HasMaxDepth() should be true")
		}
		if spec.DepthLimit() != 2 {
			t.Errorf("DepthLimit() = %d, want 2", spec.DepthLimit())
		}
	})

	t.Run("NilSpec", func(t *testing.T) {
		var spec *IgnoreSpec
		if spec.HasMaxDepth() {
			t.Error("nil spec should have no depth bound")
		}
	})
}

func TestIgnoreSpecValidate(t *testing.T) {
	tests := []struct {
		name  string
		spec  IgnoreSpec
		field string
	}{
		{"Empty", IgnoreSpec{}, ""},
		{"NegativeDepth", IgnoreSpec{MaxDepth: IntPtr(-1)}, "MaxDepth"},
		{"ZeroDepth", IgnoreSpec{MaxDepth: IntPtr(0)}, ""},
		{"EmptyPattern", IgnoreSpec{IgnorePatterns: []string{".git", ""}}, "IgnorePatterns"},
		{"EmptyShallow", IgnoreSpec{ShallowIgnore: []string{""}}, "ShallowIgnore"},
		{"EmptyInclude", IgnoreSpec{IncludeOnly: []string{""}}, "IncludeOnly"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.spec.Validate()
			if tt.field == "" {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("Validate() error = %v, want *ValidationError", err)
			}
			if ve.Field != tt.field {
				t.Errorf("ValidationError.Field = %s, want %s", ve.Field, tt.field)
			}
		})
	}
}

// ============== TreeSnapshot Tests ==============

func TestTreeSnapshot(t *testing.T) {
	s := NewTreeSnapshot("/root")
	s.AddFile("src/main.py")
	s.AddFile("README.md")
	s.AddFile("src-extra/a.py")
	s.AddDir("src", false)
	s.AddDir("src-extra", false)
	s.AddDir("dist", true)

	if !s.HasFile("src/main.py") {
		t.Error("HasFile(src/main.py) should be true")
	}
	if s.HasFile("src") {
		t.Error("HasFile(src) should be false for a directory")
	}
	if !s.HasDir("dist") || !s.IsShallow("dist") {
		t.Error("dist should be a shallow directory")
	}
	if s.IsShallow("src") {
		t.Error("src should not be shallow")
	}

	// Component ordering puts "src" before "src-extra"
	wantFiles := []string{"README.md", "src/main.py", "src-extra/a.py"}
	if got := s.SortedFiles(); !reflect.DeepEqual(got, wantFiles) {
		t.Errorf("SortedFiles() = %v, want %v", got, wantFiles)
	}
	wantDirs := []string{"dist", "src", "src-extra"}
	if got := s.SortedDirs(); !reflect.DeepEqual(got, wantDirs) {
		t.Errorf("SortedDirs() = %v, want %v", got, wantDirs)
	}
}

// ============== ComparisonPlan Tests ==============

func TestComparisonPlanCounts(t *testing.T) {
	plan := &ComparisonPlan{
		Entries: []PlanEntry{
			{Path: "a", Status: StatusNew},
			{Path: "b", Status: StatusDeleted},
			{Path: "c", Status: StatusModified},
			{Path: "d", Status: StatusUnchanged},
			{Path: "e", Status: StatusUnchanged},
			{Path: "f", Status: StatusError, Err: errors.New("boom")},
		},
	}

	c := plan.Counts()
	if c.New != 1 || c.Deleted != 1 || c.Modified != 1 || c.Unchanged != 2 || c.Errored != 1 {
		t.Errorf("Counts() = %+v", c)
	}
	if c.Changed() != 3 {
		t.Errorf("Changed() = %d, want 3", c.Changed())
	}
	if !plan.HasChanges() {
		t.Error("HasChanges() should be true")
	}
}

func TestComparisonPlanErrors(t *testing.T) {
	t.Run("NoErrors", func(t *testing.T) {
		plan := &ComparisonPlan{Entries: []PlanEntry{{Path: "a", Status: StatusUnchanged}}}
		if err := plan.Errors(); err != nil {
			t.Errorf("Errors() = %v, want nil", err)
		}
		if plan.HasChanges() {
			t.Error("HasChanges() should be false")
		}
	})

	t.Run("Aggregated", func(t *testing.T) {
		readErr := errors.New("permission denied")
		plan := &ComparisonPlan{Entries: []PlanEntry{
			{Path: "x.txt", Status: StatusError, Err: readErr},
			{Path: "y.txt", Status: StatusError, Err: errors.New("invalid UTF-8")},
		}}
		err := plan.Errors()
		if err == nil {
			t.Fatal("Errors() should not be nil")
		}
		if !errors.Is(err, readErr) {
			t.Error("aggregated error should wrap the per-path error")
		}
		if !strings.Contains(err.Error(), "x.txt") || !strings.Contains(err.Error(), "y.txt") {
			t.Errorf("Errors() = %q, want both paths", err.Error())
		}
	})
}

// ============== CompareOperation Tests ==============

func TestReportMethod(t *testing.T) {
	tests := []struct {
		method ReportMethod
		valid  bool
		mode   ContentMode
	}{
		{MethodGeneral, true, ContentBytes},
		{MethodUnified, true, ContentLines},
		{MethodIncludes, true, ContentLines},
		{ReportMethod("sideways"), false, ContentLines},
	}

	for _, tt := range tests {
		t.Run(string(tt.method), func(t *testing.T) {
			if tt.method.IsValid() != tt.valid {
				t.Errorf("IsValid() = %v, want %v", tt.method.IsValid(), tt.valid)
			}
			if tt.method.ContentMode() != tt.mode {
				t.Errorf("ContentMode() = %s, want %s", tt.method.ContentMode(), tt.mode)
			}
		})
	}
}

func TestCompareOperationValidate(t *testing.T) {
	valid := func() *CompareOperation {
		return &CompareOperation{
			OriginalPath: "/original",
			ModifiedPath: "/modified",
			OutputPath:   "/tmp/report.txt",
			Method:       MethodGeneral,
			Strategy:     StrategyWalk,
			ContextLines: 3,
		}
	}

	t.Run("ValidOperation", func(t *testing.T) {
		if err := valid().Validate(); err != nil {
			t.Errorf("Validate() error = %v, want nil", err)
		}
	})

	tests := []struct {
		name   string
		mutate func(op *CompareOperation)
		field  string
	}{
		{"EmptyOriginal", func(op *CompareOperation) { op.OriginalPath = "" }, "OriginalPath"},
		{"EmptyModified", func(op *CompareOperation) { op.ModifiedPath = "" }, "ModifiedPath"},
		{"EmptyOutput", func(op *CompareOperation) { op.OutputPath = "" }, "OutputPath"},
		{"BadMethod", func(op *CompareOperation) { op.Method = "fancy" }, "Method"},
		{"BadStrategy", func(op *CompareOperation) { op.Strategy = "dfs" }, "Strategy"},
		{"NegativeContext", func(op *CompareOperation) { op.ContextLines = -1 }, "ContextLines"},
		{"BadSpec", func(op *CompareOperation) { op.Spec.MaxDepth = IntPtr(-3) }, "MaxDepth"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			op := valid()
			tt.mutate(op)
			err := op.Validate()
			ve, ok := err.(*ValidationError)
			if !ok {
				t.Fatalf("Validate() error = %v, want *ValidationError", err)
			}
			if ve.Field != tt.field {
				t.Errorf("ValidationError.Field = %s, want %s", ve.Field, tt.field)
			}
		})
	}
}

func TestValidationError(t *testing.T) {
	err := &ValidationError{Field: "TestField", Message: "test message"}
	if err.Error() != "TestField: test message" {
		t.Errorf("Error() = %s", err.Error())
	}
}

// ============== RunReport Tests ==============

func TestRunStatusExitCode(t *testing.T) {
	tests := []struct {
		status RunStatus
		code   int
	}{
		{StatusSuccess, 0},
		{StatusPartial, 0},
		{StatusFailed, 1},
		{StatusCancelled, 130},
		{RunStatus("unknown"), 1},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			if got := tt.status.ExitCode(); got != tt.code {
				t.Errorf("ExitCode() = %d, want %d", got, tt.code)
			}
		})
	}
}
