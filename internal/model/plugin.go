package model

import (
	"io"
)

// EventPublisher is the part of the engine plugins report to
type EventPublisher interface {
	// PublishEvent publishes an event to the event bus
	PublishEvent(eventType EventType, sourceID string, data interface{})
}

// Plugin is the base interface for all plugins
type Plugin interface {
	// ID returns the plugin's unique identifier
	ID() string

	// Name returns the plugin's human-readable name
	Name() string

	// GetType returns the plugin type
	GetType() PluginType
}

// InputPlugin turns the raw bytes of one source into records
type InputPlugin interface {
	Plugin

	// Parse reads r to the end and returns its records in file order.
	// It never closes r.
	Parse(r io.Reader, source Source) ([]LogRecord, ParseStats)

	// AttachPublisher sets where parse statistics are reported
	AttachPublisher(publisher EventPublisher)
}

// ProcessorPlugin filters records
type ProcessorPlugin interface {
	Plugin

	// Process returns the records that pass, in their original order
	Process(records []LogRecord) []LogRecord
}

// OutputPlugin renders a table for presentation
type OutputPlugin interface {
	Plugin

	// Render writes t to w
	Render(w io.Writer, t *Table) error
}
