package outputs

import (
	"fmt"
	"strings"

	"github.com/sliink/logmerge/internal/model"
	"github.com/sliink/logmerge/internal/plugin"
)

// Output format names
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatCSV   = "csv"
)

// Options tune the standard renderers
type Options struct {
	Colorize bool
	Indent   bool
}

// RegisterStandardPlugins registers the table, JSON and CSV renderers
func RegisterStandardPlugins(factory *plugin.PluginFactory, opts Options) {
	factory.RegisterOutputPlugin(FormatTable, func(id string) model.OutputPlugin {
		return NewTableOutput(id, opts.Colorize)
	})
	factory.RegisterOutputPlugin(FormatJSON, func(id string) model.OutputPlugin {
		return NewJSONOutput(id, opts.Indent)
	})
	factory.RegisterOutputPlugin(FormatCSV, func(id string) model.OutputPlugin {
		return NewCSVOutput(id)
	})
}

// Formats lists the supported output format names, sorted
func Formats() []string {
	factory := plugin.NewPluginFactory()
	RegisterStandardPlugins(factory, Options{})
	return factory.Names(model.OutputPluginType)
}

// New creates the renderer for format
func New(format string, opts Options) (model.OutputPlugin, error) {
	factory := plugin.NewPluginFactory()
	RegisterStandardPlugins(factory, opts)
	output, err := factory.CreateOutput(format, format+"_output")
	if err != nil {
		names := factory.Names(model.OutputPluginType)
		return nil, fmt.Errorf("%w (supported: %s)", err, strings.Join(names, ", "))
	}
	return output, nil
}
