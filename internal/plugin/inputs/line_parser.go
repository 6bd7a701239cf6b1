package inputs

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/sliink/logmerge/internal/model"
	"github.com/sliink/logmerge/internal/plugin"
)

// linePattern matches a date-led timestamp token, a whitespace run and the
// message. The token may carry any time, fraction or offset as long as it has
// no embedded whitespace.
var linePattern = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2}T\S+)\s+(.*)`)

// timestampPattern is the ISO 8601 shape a token must have in full before it
// is converted: a clock of at least hours and minutes, optional fraction and
// an optional Z or numeric offset. Anything trailing the offset is rejected.
var timestampPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{1,2}:\d{1,2}(:\d{1,2}([.,]\d+)?)?(Z|[+-]\d{2}(:?\d{2})?)?$`)

// LineParser converts the raw bytes of one log source into records
type LineParser struct {
	plugin.BasePlugin
}

// NewLineParser creates a new line parser plugin
func NewLineParser(id string) *LineParser {
	return &LineParser{
		BasePlugin: plugin.NewBasePlugin(id, "Line Parser", model.InputPluginType),
	}
}

// Parse reads r line by line and returns one record per line that carries a
// valid timestamp prefix. Lines that do not match, or whose timestamp cannot
// be converted, are dropped. A read error ends the input early; r is never
// closed.
func (p *LineParser) Parse(r io.Reader, source model.Source) ([]model.LogRecord, model.ParseStats) {
	stats := model.ParseStats{Source: source}
	records := make([]model.LogRecord, 0)

	if r == nil {
		p.Publish(model.EventSourceParsed, stats)
		return records, stats
	}

	reader := bufio.NewReader(r)
	for {
		raw, err := reader.ReadBytes('\n')
		if len(raw) > 0 {
			stats.Lines++
			if record, ok := ParseLine(raw, source); ok {
				records = append(records, record)
			} else {
				stats.Dropped++
			}
		}
		if err != nil {
			break
		}
	}

	stats.Records = len(records)
	p.Publish(model.EventSourceParsed, stats)
	return records, stats
}

// ParseLine parses a single raw line. Invalid UTF-8 sequences are removed
// before matching.
func ParseLine(raw []byte, source model.Source) (model.LogRecord, bool) {
	raw = bytes.TrimSuffix(raw, []byte("\n"))
	line := strings.ToValidUTF8(string(raw), "")

	match := linePattern.FindStringSubmatch(line)
	if match == nil {
		return model.LogRecord{}, false
	}

	ts, err := ParseTimestamp(match[1])
	if err != nil {
		return model.LogRecord{}, false
	}

	return model.LogRecord{
		Timestamp: ts,
		Message:   strings.TrimSpace(match[2]),
		Source:    source,
	}, true
}

// ParseTimestamp converts a timestamp token. Tokens outside the ISO 8601
// shape fail outright. RFC 3339 is tried first and the remaining variants go
// through a permissive parser. Tokens without an offset are read as UTC so
// their clock reading is kept as written.
func ParseTimestamp(token string) (time.Time, error) {
	if !timestampPattern.MatchString(token) {
		return time.Time{}, fmt.Errorf("invalid timestamp %q", token)
	}
	if ts, err := time.Parse(time.RFC3339Nano, token); err == nil {
		return ts, nil
	}
	return dateparse.ParseIn(token, time.UTC)
}
