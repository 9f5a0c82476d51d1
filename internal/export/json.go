package export

import (
	"encoding/json"
	"io"

	"github.com/naito-dev/orgstats/internal/domain"
)

// JSONExporter serializes the full collection result, pretty-printed, with a
// one-to-one field mapping.
type JSONExporter struct{}

func (e *JSONExporter) Export(w io.Writer, result *domain.CollectionResult) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}

func (e *JSONExporter) Ext() string { return "json" }
