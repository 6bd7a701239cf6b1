package model

import (
	"io"
	"time"
)

// LogRecord is one parsed, timestamped line from a source file
type LogRecord struct {
	Timestamp time.Time
	Message   string
	Source    Source
}

// SourceFile pairs an input stream with the label its records receive
type SourceFile struct {
	Source Source
	Reader io.Reader
}
