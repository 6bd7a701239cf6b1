package plugin

import (
	"fmt"
	"sort"

	"github.com/sliink/logmerge/internal/model"
)

// PluginFactory creates plugins based on their type and name
type PluginFactory struct {
	inputCreators  map[string]func(id string) model.InputPlugin
	outputCreators map[string]func(id string) model.OutputPlugin
}

// NewPluginFactory creates a new plugin factory
func NewPluginFactory() *PluginFactory {
	return &PluginFactory{
		inputCreators:  make(map[string]func(id string) model.InputPlugin),
		outputCreators: make(map[string]func(id string) model.OutputPlugin),
	}
}

// RegisterInputPlugin registers an input plugin creator
func (f *PluginFactory) RegisterInputPlugin(name string, creator func(id string) model.InputPlugin) {
	f.inputCreators[name] = creator
}

// RegisterOutputPlugin registers an output plugin creator
func (f *PluginFactory) RegisterOutputPlugin(name string, creator func(id string) model.OutputPlugin) {
	f.outputCreators[name] = creator
}

// CreateInput creates the input plugin registered under name
func (f *PluginFactory) CreateInput(name, id string) (model.InputPlugin, error) {
	creator, exists := f.inputCreators[name]
	if !exists {
		return nil, fmt.Errorf("unknown input plugin: %s", name)
	}
	return creator(id), nil
}

// CreateOutput creates the output plugin registered under name
func (f *PluginFactory) CreateOutput(name, id string) (model.OutputPlugin, error) {
	creator, exists := f.outputCreators[name]
	if !exists {
		return nil, fmt.Errorf("unknown output format: %s", name)
	}
	return creator(id), nil
}

// Names lists the registered plugin names of a type, sorted
func (f *PluginFactory) Names(pluginType model.PluginType) []string {
	var names []string
	switch pluginType {
	case model.InputPluginType:
		for name := range f.inputCreators {
			names = append(names, name)
		}
	case model.OutputPluginType:
		for name := range f.outputCreators {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}
