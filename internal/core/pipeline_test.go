package core

import (
	"testing"
	"time"

	"github.com/sliink/logmerge/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockProcessorPlugin implements the ProcessorPlugin interface for testing
type mockProcessorPlugin struct {
	id          string
	processFunc func(records []model.LogRecord) []model.LogRecord
}

func (m *mockProcessorPlugin) ID() string {
	return m.id
}

func (m *mockProcessorPlugin) Name() string {
	return m.id
}

func (m *mockProcessorPlugin) GetType() model.PluginType {
	return model.ProcessorPluginType
}

func (m *mockProcessorPlugin) Process(records []model.LogRecord) []model.LogRecord {
	if m.processFunc != nil {
		return m.processFunc(records)
	}
	return records
}

// mockPublisher records published events
type mockPublisher struct {
	events []model.EventType
	data   []interface{}
}

func (m *mockPublisher) PublishEvent(eventType model.EventType, sourceID string, data interface{}) {
	m.events = append(m.events, eventType)
	m.data = append(m.data, data)
}

func createTestRecords(n int) []model.LogRecord {
	base := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	records := make([]model.LogRecord, n)
	for i := range records {
		records[i] = model.LogRecord{
			Timestamp: base.Add(time.Duration(i) * time.Minute),
			Message:   "INF tool X1",
			Source:    model.SourceWorkflow,
		}
	}
	return records
}

func TestPipelineStageProcess(t *testing.T) {
	t.Run("Nil stage returns original records", func(t *testing.T) {
		var stage *PipelineStage
		records := createTestRecords(5)

		result := stage.Process(records, nil)
		assert.Equal(t, records, result)
	})

	t.Run("Stages run in order and report counts", func(t *testing.T) {
		dropFirst := &mockProcessorPlugin{id: "drop_first", processFunc: func(records []model.LogRecord) []model.LogRecord {
			return records[1:]
		}}
		dropLast := &mockProcessorPlugin{id: "drop_last", processFunc: func(records []model.LogRecord) []model.LogRecord {
			return records[:len(records)-1]
		}}
		stage := &PipelineStage{Processor: dropFirst, NextStage: &PipelineStage{Processor: dropLast}}

		var seen []model.StageStats
		records := createTestRecords(5)
		result := stage.Process(records, func(stats model.StageStats) {
			seen = append(seen, stats)
		})

		assert.Equal(t, records[1:4], result)
		assert.Equal(t, []model.StageStats{
			{Stage: "drop_first", Before: 5, After: 4},
			{Stage: "drop_last", Before: 4, After: 3},
		}, seen)
	})
}

func TestNewDataPipeline(t *testing.T) {
	t.Run("Empty query has no stages", func(t *testing.T) {
		pipeline, err := NewDataPipeline(model.Query{}, nil)
		require.NoError(t, err)
		assert.Empty(t, pipeline.Stages())

		records := createTestRecords(3)
		assert.Equal(t, records, pipeline.Process(records))
	})

	t.Run("Stages follow the fixed order", func(t *testing.T) {
		pipeline, err := NewDataPipeline(model.Query{
			StartTime: "09:00:00",
			EndTime:   "10:00:00",
			ToolID:    "X1",
			LogLevels: []string{"INF"},
		}, nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"time_window", "tool_id", "log_level"}, pipeline.Stages())
	})

	t.Run("Time window needs both bounds", func(t *testing.T) {
		pipeline, err := NewDataPipeline(model.Query{StartTime: "09:00:00", ToolID: "X1"}, nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"tool_id"}, pipeline.Stages())
	})

	t.Run("Invalid bounds fail construction", func(t *testing.T) {
		_, err := NewDataPipeline(model.Query{StartTime: "09:00", EndTime: "10:00:00"}, nil)
		assert.ErrorIs(t, err, model.ErrInvalidTimeFormat)
	})

	t.Run("Publishes one event per stage", func(t *testing.T) {
		publisher := &mockPublisher{}
		pipeline, err := NewDataPipeline(model.Query{
			StartTime: "09:00:00",
			EndTime:   "09:02:00",
			LogLevels: []string{"ERR"},
		}, publisher)
		require.NoError(t, err)

		result := pipeline.Process(createTestRecords(5))
		assert.Empty(t, result)
		assert.Equal(t, []model.EventType{model.EventStageApplied, model.EventStageApplied}, publisher.events)
		assert.Equal(t, model.StageStats{Stage: "time_window", Before: 5, After: 3}, publisher.data[0])
		assert.Equal(t, model.StageStats{Stage: "log_level", Before: 3, After: 0}, publisher.data[1])
	})
}

func TestNewDataPipelineFrom(t *testing.T) {
	passthrough := &mockProcessorPlugin{id: "passthrough"}
	pipeline := NewDataPipelineFrom([]model.ProcessorPlugin{passthrough, passthrough}, nil)

	assert.Equal(t, []string{"passthrough", "passthrough"}, pipeline.Stages())
	records := createTestRecords(2)
	assert.Equal(t, records, pipeline.Process(records))
}
