package processors

import (
	"strings"

	"github.com/sliink/logmerge/internal/model"
	"github.com/sliink/logmerge/internal/plugin"
)

// TimeWindowFilter keeps records whose time of day lies within an inclusive
// window. Dates are ignored and the window never wraps past midnight, so a
// start after the end matches nothing.
type TimeWindowFilter struct {
	plugin.BasePlugin
	start Clock
	end   Clock
}

// NewTimeWindowFilter creates a time-of-day filter from HH:MM:SS bounds
func NewTimeWindowFilter(id, start, end string) (*TimeWindowFilter, error) {
	startClock, err := ParseClock(start)
	if err != nil {
		return nil, &model.TimeFormatError{Field: "start_time", Value: start}
	}
	endClock, err := ParseClock(end)
	if err != nil {
		return nil, &model.TimeFormatError{Field: "end_time", Value: end}
	}

	return &TimeWindowFilter{
		BasePlugin: plugin.NewBasePlugin(id, "Time Window Filter", model.ProcessorPluginType),
		start:      startClock,
		end:        endClock,
	}, nil
}

// Process keeps the records inside the window
func (f *TimeWindowFilter) Process(records []model.LogRecord) []model.LogRecord {
	return keep(records, func(r model.LogRecord) bool {
		clock := ClockOf(r.Timestamp)
		return f.start <= clock && clock <= f.end
	})
}

// ToolIDFilter keeps records whose message contains the tool ID, ignoring case
type ToolIDFilter struct {
	plugin.BasePlugin
	needle string
}

// NewToolIDFilter creates a tool ID filter
func NewToolIDFilter(id, toolID string) *ToolIDFilter {
	return &ToolIDFilter{
		BasePlugin: plugin.NewBasePlugin(id, "Tool ID Filter", model.ProcessorPluginType),
		needle:     strings.ToLower(toolID),
	}
}

// Process keeps the records mentioning the tool ID
func (f *ToolIDFilter) Process(records []model.LogRecord) []model.LogRecord {
	return keep(records, func(r model.LogRecord) bool {
		return strings.Contains(strings.ToLower(r.Message), f.needle)
	})
}

// LogLevelFilter keeps records whose message contains any of the given tags,
// ignoring case. Tags are matched anywhere in the message, so "ERR" also
// matches "ERROR" or "TERRA".
type LogLevelFilter struct {
	plugin.BasePlugin
	tags []string
}

// NewLogLevelFilter creates a log level filter
func NewLogLevelFilter(id string, levels []string) *LogLevelFilter {
	tags := make([]string, 0, len(levels))
	for _, level := range levels {
		tags = append(tags, strings.ToLower(level))
	}

	return &LogLevelFilter{
		BasePlugin: plugin.NewBasePlugin(id, "Log Level Filter", model.ProcessorPluginType),
		tags:       tags,
	}
}

// Process keeps the records carrying at least one tag
func (f *LogLevelFilter) Process(records []model.LogRecord) []model.LogRecord {
	if len(f.tags) == 0 {
		return records
	}
	return keep(records, func(r model.LogRecord) bool {
		message := strings.ToLower(r.Message)
		for _, tag := range f.tags {
			if strings.Contains(message, tag) {
				return true
			}
		}
		return false
	})
}

func keep(records []model.LogRecord, pred func(model.LogRecord) bool) []model.LogRecord {
	result := make([]model.LogRecord, 0, len(records))
	for _, r := range records {
		if pred(r) {
			result = append(result, r)
		}
	}
	return result
}
