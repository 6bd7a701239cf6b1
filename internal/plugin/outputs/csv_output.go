package outputs

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/sliink/logmerge/internal/model"
	"github.com/sliink/logmerge/internal/plugin"
)

// CSVOutput renders the table as CSV with a header row
type CSVOutput struct {
	plugin.BasePlugin
}

// NewCSVOutput creates a new CSV output plugin
func NewCSVOutput(id string) *CSVOutput {
	return &CSVOutput{
		BasePlugin: plugin.NewBasePlugin(id, "CSV Output", model.OutputPluginType),
	}
}

// Render writes the header and every row
func (s *CSVOutput) Render(w io.Writer, t *model.Table) error {
	if t == nil {
		t = model.EmptyTable()
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(t.Columns); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, row := range RowsOf(t) {
		if err := cw.Write([]string{row.Timestamp, row.Message, row.Source}); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
