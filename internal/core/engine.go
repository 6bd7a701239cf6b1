package core

import (
	"fmt"
	"io"
	"slices"

	"github.com/sliink/logmerge/internal/model"
	"github.com/sliink/logmerge/internal/plugin"
	"github.com/sliink/logmerge/internal/plugin/inputs"
)

// Engine merges two log sources and filters the result. One engine may serve
// many merges; each call is independent.
type Engine struct {
	parser   model.InputPlugin
	eventBus *EventBus
}

// NewEngine creates a new engine with the standard line parser
func NewEngine() *Engine {
	factory := plugin.NewPluginFactory()
	inputs.RegisterStandardPlugins(factory)

	e, err := NewEngineWith(factory, inputs.LineParserName)
	if err != nil {
		// the line parser is always registered above
		panic(err)
	}
	return e
}

// NewEngineWith creates an engine whose parser is the input plugin registered
// in factory under name
func NewEngineWith(factory *plugin.PluginFactory, name string) (*Engine, error) {
	parser, err := factory.CreateInput(name, "line_parser")
	if err != nil {
		return nil, fmt.Errorf("create parser: %w", err)
	}

	e := &Engine{
		eventBus: NewEventBus(),
	}
	parser.AttachPublisher(e)
	e.parser = parser
	return e, nil
}

// ID identifies the engine as an event source
func (e *Engine) ID() string {
	return "engine"
}

// GetEventBus returns the bus pipeline events are published on
func (e *Engine) GetEventBus() *EventBus {
	return e.eventBus
}

// PublishEvent publishes an event to the event bus
func (e *Engine) PublishEvent(eventType model.EventType, sourceID string, data interface{}) {
	if e.eventBus == nil {
		return
	}

	event := NewEvent(eventType, sourceID, data)
	e.eventBus.Publish(event)
}

// MergeAndFilter merges exactly two files, the first labeled workflow and the
// second connections. Any other number of files yields an empty table.
func (e *Engine) MergeAndFilter(files []io.Reader, q model.Query) (*model.Table, error) {
	if len(files) != len(model.Sources) {
		return model.EmptyTable(), nil
	}

	sources := make([]model.SourceFile, len(files))
	for i, f := range files {
		sources[i] = model.SourceFile{Source: model.Sources[i], Reader: f}
	}
	return e.Merge(sources, q)
}

// Merge parses one workflow and one connections source, sorts the records
// by timestamp and applies the filters of q. Workflow records are placed
// before connections records ahead of the stable sort, whatever the order
// of sources. Without exactly one source per label the result is empty.
//
// An invalid time bound in q is reported as a *model.TimeFormatError before
// any input is read.
func (e *Engine) Merge(sources []model.SourceFile, q model.Query) (*model.Table, error) {
	ordered, ok := orderSources(sources)
	if !ok {
		return model.EmptyTable(), nil
	}

	pipeline, err := NewDataPipeline(q, e)
	if err != nil {
		e.PublishEvent(model.EventError, e.ID(), err)
		return nil, err
	}

	var records []model.LogRecord
	for _, src := range ordered {
		parsed, _ := e.parser.Parse(src.Reader, src.Source)
		records = append(records, parsed...)
	}

	if len(records) == 0 {
		return model.EmptyTable(), nil
	}

	slices.SortStableFunc(records, func(a, b model.LogRecord) int {
		return a.Timestamp.Compare(b.Timestamp)
	})

	e.PublishEvent(model.EventRecordsMerged, e.ID(), map[string]interface{}{
		"records": len(records),
		"stages":  pipeline.Stages(),
	})

	return model.NewTable(pipeline.Process(records)), nil
}

// orderSources returns the sources in label order, requiring exactly one
// source per label
func orderSources(sources []model.SourceFile) ([]model.SourceFile, bool) {
	if len(sources) != len(model.Sources) {
		return nil, false
	}

	for _, src := range sources {
		if !src.Source.Valid() {
			return nil, false
		}
	}

	ordered := make([]model.SourceFile, len(model.Sources))
	for i, label := range model.Sources {
		found := 0
		for _, src := range sources {
			if src.Source == label {
				ordered[i] = src
				found++
			}
		}
		if found != 1 {
			return nil, false
		}
	}
	return ordered, true
}
