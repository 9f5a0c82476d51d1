// Package export renders a collection result in one of the supported report
// formats.
package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/naito-dev/orgstats/internal/domain"
)

// Exporter writes one report format for a collection result.
type Exporter interface {
	// Export writes the rendered report to w.
	Export(w io.Writer, result *domain.CollectionResult) error
	// Ext returns the file extension of the format, without the dot.
	Ext() string
}

// ForFormat returns the exporter for a format name, case-insensitively.
func ForFormat(format string) (Exporter, error) {
	switch strings.ToLower(format) {
	case "json":
		return &JSONExporter{}, nil
	case "csv":
		return &CSVExporter{}, nil
	case "html":
		return &HTMLExporter{}, nil
	default:
		return nil, fmt.Errorf("unsupported output format %q (supported: json, csv, html)", format)
	}
}
