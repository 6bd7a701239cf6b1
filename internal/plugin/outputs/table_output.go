package outputs

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/muesli/termenv"
	"github.com/sliink/logmerge/internal/model"
	"github.com/sliink/logmerge/internal/plugin"
)

// TimestampLayout is how timestamps are printed in every format
const TimestampLayout = time.RFC3339Nano

// TableOutput renders a bordered terminal table
type TableOutput struct {
	plugin.BasePlugin
	colorize bool
}

// NewTableOutput creates a new table output plugin
func NewTableOutput(id string, colorize bool) *TableOutput {
	return &TableOutput{
		BasePlugin: plugin.NewBasePlugin(id, "Table Output", model.OutputPluginType),
		colorize:   colorize,
	}
}

type tableStyles struct {
	header      lipgloss.Style
	cell        lipgloss.Style
	border      lipgloss.Style
	workflow    lipgloss.Style
	connections lipgloss.Style
	levels      map[string]lipgloss.Style
}

func (s *TableOutput) styles(w io.Writer) tableStyles {
	renderer := lipgloss.NewRenderer(w)
	if s.colorize {
		renderer.SetColorProfile(termenv.ANSI256)
	} else {
		renderer.SetColorProfile(termenv.Ascii)
	}

	cell := renderer.NewStyle().Padding(0, 1)
	return tableStyles{
		header:      cell.Bold(true),
		cell:        cell,
		border:      renderer.NewStyle().Foreground(lipgloss.Color("240")),
		workflow:    cell.Foreground(lipgloss.Color("39")),
		connections: cell.Foreground(lipgloss.Color("170")),
		levels: map[string]lipgloss.Style{
			"ERR": cell.Foreground(lipgloss.Color("196")),
			"INF": cell.Foreground(lipgloss.Color("78")),
			"DBG": cell.Foreground(lipgloss.Color("244")),
		},
	}
}

// Render writes the table followed by a newline
func (s *TableOutput) Render(w io.Writer, t *model.Table) error {
	if t == nil {
		t = model.EmptyTable()
	}
	styles := s.styles(w)

	rows := make([][]string, 0, t.Len())
	for _, r := range t.Rows {
		rows = append(rows, []string{
			r.Timestamp.Format(TimestampLayout),
			r.Message,
			r.Source.String(),
		})
	}

	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(styles.border).
		Headers(t.Columns...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styles.header
			}
			if row < 0 || row >= len(t.Rows) {
				return styles.cell
			}
			switch col {
			case 1:
				return levelStyle(styles, t.Rows[row].Message)
			case 2:
				if t.Rows[row].Source == model.SourceConnections {
					return styles.connections
				}
				return styles.workflow
			default:
				return styles.cell
			}
		})

	_, err := fmt.Fprintln(w, tbl.Render())
	return err
}

// levelStyle picks the style of the first default level tag in the message
func levelStyle(styles tableStyles, message string) lipgloss.Style {
	upper := strings.ToUpper(message)
	for _, level := range model.DefaultLogLevels {
		if strings.Contains(upper, level) {
			return styles.levels[level]
		}
	}
	return styles.cell
}
