package plugin

import (
	"github.com/sliink/logmerge/internal/model"
)

// BasePlugin provides common functionality for all plugins
type BasePlugin struct {
	id         string
	name       string
	pluginType model.PluginType
	publisher  model.EventPublisher
}

// NewBasePlugin creates a new base plugin
func NewBasePlugin(id, name string, pluginType model.PluginType) BasePlugin {
	return BasePlugin{
		id:         id,
		name:       name,
		pluginType: pluginType,
	}
}

// ID returns the plugin's unique identifier
func (p *BasePlugin) ID() string {
	return p.id
}

// Name returns the plugin's human-readable name
func (p *BasePlugin) Name() string {
	return p.name
}

// GetType returns the plugin type
func (p *BasePlugin) GetType() model.PluginType {
	return p.pluginType
}

// AttachPublisher sets where the plugin reports events
func (p *BasePlugin) AttachPublisher(publisher model.EventPublisher) {
	p.publisher = publisher
}

// Publish sends an event if a publisher is attached
func (p *BasePlugin) Publish(eventType model.EventType, data interface{}) {
	if p.publisher == nil {
		return
	}
	p.publisher.PublishEvent(eventType, p.id, data)
}
