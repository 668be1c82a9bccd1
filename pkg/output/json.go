package output

import (
	"encoding/json"
	"io"
	"os"
	"time"

	"github.com/sdejongh/dirdiff/pkg/models"
)

// JSONFormatter formats the run summary as JSON for automation and scripting
type JSONFormatter struct {
	writer io.Writer
	op     *models.CompareOperation
	errors []string
}

// JSONReportData represents the final report data
type JSONReportData struct {
	OperationID string          `json:"operation_id,omitempty"`
	Original    string          `json:"original"`
	Modified    string          `json:"modified"`
	Output      string          `json:"output"`
	Method      string          `json:"method"`
	Status      string          `json:"status"`
	Changed     bool            `json:"changed"`
	Duration    string          `json:"duration"`
	DurationMs  int64           `json:"duration_ms"`
	Stats       JSONStatsData   `json:"stats"`
	Errors      []JSONErrorData `json:"errors,omitempty"`
}

// JSONStatsData represents statistics in JSON format
type JSONStatsData struct {
	Scanned JSONScannedData `json:"scanned"`
	Files   JSONFilesData   `json:"files"`
	Dirs    JSONDirsData    `json:"dirs"`
	Lines   JSONLinesData   `json:"lines"`
	Report  JSONReportSize  `json:"report"`
}

// JSONScannedData represents scanned path statistics
type JSONScannedData struct {
	OriginalFiles int `json:"original_files"`
	OriginalDirs  int `json:"original_dirs"`
	ModifiedFiles int `json:"modified_files"`
	ModifiedDirs  int `json:"modified_dirs"`
	UniqueFiles   int `json:"unique_files"`
	UniqueDirs    int `json:"unique_dirs"`
	Unreadable    int `json:"unreadable_dirs"`
}

// JSONFilesData represents per-status file counts
type JSONFilesData struct {
	New       int `json:"new"`
	Deleted   int `json:"deleted"`
	Modified  int `json:"modified"`
	Unchanged int `json:"unchanged"`
	Errored   int `json:"errored"`
}

// JSONDirsData represents directory presence counts
type JSONDirsData struct {
	New     int `json:"new"`
	Deleted int `json:"deleted"`
}

// JSONLinesData represents line totals
type JSONLinesData struct {
	Added   int `json:"added"`
	Removed int `json:"removed"`
}

// JSONReportSize represents the size of the written report
type JSONReportSize struct {
	Bytes    int64  `json:"bytes"`
	BytesStr string `json:"size"`
}

// JSONErrorData represents an error entry
type JSONErrorData struct {
	Path  string `json:"path"`
	Error string `json:"error"`
}

// NewJSONFormatter creates a new JSON formatter
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// Start initializes the formatter
func (f *JSONFormatter) Start(writer io.Writer, op *models.CompareOperation) error {
	if writer == nil {
		writer = os.Stdout
	}
	f.writer = writer
	f.op = op
	return nil
}

// Complete outputs the summary as a single JSON document
func (f *JSONFormatter) Complete(report *models.RunReport) error {
	if f.writer == nil {
		f.writer = io.Discard
	}
	s := report.Stats

	var errors []JSONErrorData
	for _, err := range report.Errors {
		errors = append(errors, JSONErrorData{
			Path:  err.FilePath,
			Error: err.Error,
		})
	}
	for _, msg := range f.errors {
		errors = append(errors, JSONErrorData{Error: msg})
	}

	opID := report.OperationID
	if opID == "" && f.op != nil {
		opID = f.op.ID
	}

	reportData := JSONReportData{
		OperationID: opID,
		Original:    report.OriginalPath,
		Modified:    report.ModifiedPath,
		Output:      report.OutputPath,
		Method:      string(report.Method),
		Status:      string(report.Status),
		Changed:     report.Changed,
		Duration:    report.Duration.Round(time.Millisecond).String(),
		DurationMs:  report.Duration.Milliseconds(),
		Stats: JSONStatsData{
			Scanned: JSONScannedData{
				OriginalFiles: s.OriginalFiles,
				OriginalDirs:  s.OriginalDirs,
				ModifiedFiles: s.ModifiedFiles,
				ModifiedDirs:  s.ModifiedDirs,
				UniqueFiles:   s.FilesCompared,
				UniqueDirs:    s.DirsCompared,
				Unreadable:    s.SubtreesSkipped,
			},
			Files: JSONFilesData{
				New:       s.FilesNew,
				Deleted:   s.FilesDeleted,
				Modified:  s.FilesModified,
				Unchanged: s.FilesUnchanged,
				Errored:   s.FilesErrored,
			},
			Dirs: JSONDirsData{
				New:     s.DirsNew,
				Deleted: s.DirsDeleted,
			},
			Lines: JSONLinesData{
				Added:   s.LinesAdded,
				Removed: s.LinesRemoved,
			},
			Report: JSONReportSize{
				Bytes:    s.BytesWritten,
				BytesStr: formatBytes(s.BytesWritten),
			},
		},
		Errors: errors,
	}

	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(reportData)
}

// Error records an error for the final document
func (f *JSONFormatter) Error(err error) error {
	f.errors = append(f.errors, err.Error())
	return nil
}

// Name returns the formatter name
func (f *JSONFormatter) Name() string {
	return "json"
}
