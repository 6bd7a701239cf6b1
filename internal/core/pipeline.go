package core

import (
	"github.com/sliink/logmerge/internal/model"
	"github.com/sliink/logmerge/internal/plugin/processors"
)

// PipelineStage represents a single filtering step
type PipelineStage struct {
	Processor model.ProcessorPlugin
	NextStage *PipelineStage
}

// Process runs this stage and every following stage. observe is called after
// each stage with the row counts it saw.
func (s *PipelineStage) Process(records []model.LogRecord, observe func(model.StageStats)) []model.LogRecord {
	if s == nil {
		return records
	}

	processed := s.Processor.Process(records)
	if observe != nil {
		observe(model.StageStats{
			Stage:  s.Processor.ID(),
			Before: len(records),
			After:  len(processed),
		})
	}

	// Pass to next stage if any
	if s.NextStage != nil {
		return s.NextStage.Process(processed, observe)
	}

	return processed
}

// DataPipeline is the ordered filter chain of one query
type DataPipeline struct {
	first     *PipelineStage
	publisher model.EventPublisher
}

// NewDataPipeline builds the filter chain for q. Stages run in a fixed order:
// time window, tool ID, log level. Only the filters q activates are added.
// An invalid time bound fails here, before any record is read.
func NewDataPipeline(q model.Query, publisher model.EventPublisher) (*DataPipeline, error) {
	var stages []model.ProcessorPlugin

	if q.HasTimeWindow() {
		window, err := processors.NewTimeWindowFilter("time_window", q.StartTime, q.EndTime)
		if err != nil {
			return nil, err
		}
		stages = append(stages, window)
	}

	if q.ToolID != "" {
		stages = append(stages, processors.NewToolIDFilter("tool_id", q.ToolID))
	}

	if len(q.LogLevels) > 0 {
		stages = append(stages, processors.NewLogLevelFilter("log_level", q.LogLevels))
	}

	return NewDataPipelineFrom(stages, publisher), nil
}

// NewDataPipelineFrom chains the given processors in order
func NewDataPipelineFrom(stages []model.ProcessorPlugin, publisher model.EventPublisher) *DataPipeline {
	var firstStage *PipelineStage
	var currentStage *PipelineStage

	for _, processor := range stages {
		stage := &PipelineStage{
			Processor: processor,
		}

		if firstStage == nil {
			firstStage = stage
			currentStage = stage
		} else {
			currentStage.NextStage = stage
			currentStage = stage
		}
	}

	return &DataPipeline{
		first:     firstStage,
		publisher: publisher,
	}
}

// Stages returns the IDs of the stages in run order
func (p *DataPipeline) Stages() []string {
	var ids []string
	for stage := p.first; stage != nil; stage = stage.NextStage {
		ids = append(ids, stage.Processor.ID())
	}
	return ids
}

// Process sends records through every stage. Stages only remove records,
// so the input order is kept.
func (p *DataPipeline) Process(records []model.LogRecord) []model.LogRecord {
	return p.first.Process(records, func(stats model.StageStats) {
		if p.publisher != nil {
			p.publisher.PublishEvent(model.EventStageApplied, stats.Stage, stats)
		}
	})
}
