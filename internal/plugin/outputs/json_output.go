package outputs

import (
	"io"

	"github.com/segmentio/encoding/json"
	"github.com/sliink/logmerge/internal/model"
	"github.com/sliink/logmerge/internal/plugin"
)

// Row is the wire form of one table row
type Row struct {
	Timestamp string `json:"Timestamp"`
	Message   string `json:"Message"`
	Source    string `json:"Source"`
}

// RowsOf converts table rows to their wire form
func RowsOf(t *model.Table) []Row {
	rows := make([]Row, 0, t.Len())
	if t == nil {
		return rows
	}
	for _, r := range t.Rows {
		rows = append(rows, Row{
			Timestamp: r.Timestamp.Format(TimestampLayout),
			Message:   r.Message,
			Source:    r.Source.String(),
		})
	}
	return rows
}

// JSONOutput renders the table as a JSON array of rows
type JSONOutput struct {
	plugin.BasePlugin
	indent bool
}

// NewJSONOutput creates a new JSON output plugin
func NewJSONOutput(id string, indent bool) *JSONOutput {
	return &JSONOutput{
		BasePlugin: plugin.NewBasePlugin(id, "JSON Output", model.OutputPluginType),
		indent:     indent,
	}
}

// Render writes the rows as one JSON document
func (s *JSONOutput) Render(w io.Writer, t *model.Table) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if s.indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(RowsOf(t))
}
