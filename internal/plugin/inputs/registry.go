package inputs

import (
	"github.com/sliink/logmerge/internal/model"
	"github.com/sliink/logmerge/internal/plugin"
)

// LineParserName is the factory name of the line parser
const LineParserName = "lines"

// RegisterStandardPlugins registers the line parser
func RegisterStandardPlugins(factory *plugin.PluginFactory) {
	factory.RegisterInputPlugin(LineParserName, func(id string) model.InputPlugin {
		return NewLineParser(id)
	})
}
