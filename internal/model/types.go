package model

// Source identifies which of the two input files a record came from
type Source string

const (
	// SourceWorkflow labels records from the first input file
	SourceWorkflow Source = "workflow"
	// SourceConnections labels records from the second input file
	SourceConnections Source = "connections"
)

// Sources lists the source labels in input order. The first file is always
// workflow, the second always connections.
var Sources = [2]Source{SourceWorkflow, SourceConnections}

// Valid reports whether s is one of the two fixed labels
func (s Source) Valid() bool {
	return s == SourceWorkflow || s == SourceConnections
}

func (s Source) String() string {
	return string(s)
}

// PluginType represents the type of plugin
type PluginType string

const (
	// InputPluginType represents plugins that turn raw bytes into records
	InputPluginType PluginType = "INPUT"
	// ProcessorPluginType represents plugins that filter records
	ProcessorPluginType PluginType = "PROCESSOR"
	// OutputPluginType represents plugins that render tables
	OutputPluginType PluginType = "OUTPUT"
)

// EventType represents the type of pipeline event
type EventType string

const (
	// EventSourceParsed indicates one source has been parsed
	EventSourceParsed EventType = "SOURCE_PARSED"
	// EventRecordsMerged indicates both sources have been merged and sorted
	EventRecordsMerged EventType = "RECORDS_MERGED"
	// EventStageApplied indicates a filter stage has run
	EventStageApplied EventType = "STAGE_APPLIED"
	// EventError indicates the pipeline stopped with an error
	EventError EventType = "ERROR"
)

// DefaultLogLevels is the tag vocabulary offered to callers. Any other tag is
// accepted as well.
var DefaultLogLevels = []string{"ERR", "INF", "DBG"}

// DefaultPreviewRows is the number of rows shown by presentation layers
const DefaultPreviewRows = 100

// ParseStats summarizes one pass of the line parser over a source
type ParseStats struct {
	Source  Source `json:"source"`
	Lines   int    `json:"lines"`
	Records int    `json:"records"`
	Dropped int    `json:"dropped"`
}

// StageStats summarizes one filter stage
type StageStats struct {
	Stage  string `json:"stage"`
	Before int    `json:"before"`
	After  int    `json:"after"`
}
