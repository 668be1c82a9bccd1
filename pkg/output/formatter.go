package output

import (
	"fmt"
	"io"

	"github.com/sdejongh/dirdiff/pkg/models"
)

// Formatter defines the interface for run summary output
// Implementations include human-readable and JSON formatters
type Formatter interface {
	// Start initializes the formatter for a new comparison run
	Start(writer io.Writer, op *models.CompareOperation) error

	// Complete finalizes output and displays the summary
	Complete(report *models.RunReport) error

	// Error reports a fatal error
	Error(err error) error

	// Name returns the formatter name
	Name() string
}

// NewFormatter returns the formatter registered under name
func NewFormatter(name string) (Formatter, error) {
	switch name {
	case "", "human":
		return NewHumanFormatter(), nil
	case "json":
		return NewJSONFormatter(), nil
	default:
		return nil, fmt.Errorf("unknown output format: %s", name)
	}
}
