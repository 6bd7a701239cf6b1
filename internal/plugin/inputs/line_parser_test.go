package inputs

import (
	"strings"
	"testing"
	"time"

	"github.com/sliink/logmerge/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingPublisher collects published events
type recordingPublisher struct {
	events []model.EventType
	data   []interface{}
}

func (r *recordingPublisher) PublishEvent(eventType model.EventType, sourceID string, data interface{}) {
	r.events = append(r.events, eventType)
	r.data = append(r.data, data)
}

func TestNewLineParser(t *testing.T) {
	parser := NewLineParser("line_parser")

	assert.Equal(t, "line_parser", parser.ID())
	assert.Equal(t, "Line Parser", parser.Name())
	assert.Equal(t, model.InputPluginType, parser.GetType())
}

func TestParseLine(t *testing.T) {
	t.Run("Parses timestamp and trims message", func(t *testing.T) {
		record, ok := ParseLine([]byte("2024-01-01T10:00:00Z   INF started tool X1  \n"), model.SourceWorkflow)
		require.True(t, ok)

		assert.True(t, time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC).Equal(record.Timestamp))
		assert.Equal(t, "INF started tool X1", record.Message)
		assert.Equal(t, model.SourceWorkflow, record.Source)
	})

	t.Run("Keeps fractional seconds and offset", func(t *testing.T) {
		record, ok := ParseLine([]byte("2024-03-05T23:15:01.250+02:00 DBG tick"), model.SourceConnections)
		require.True(t, ok)

		hour, min, sec := record.Timestamp.Clock()
		assert.Equal(t, []int{23, 15, 1}, []int{hour, min, sec})
		assert.Equal(t, 250*time.Millisecond, time.Duration(record.Timestamp.Nanosecond()))
		_, offset := record.Timestamp.Zone()
		assert.Equal(t, 2*3600, offset)
	})

	t.Run("Reads timestamps without offset as wall clock", func(t *testing.T) {
		record, ok := ParseLine([]byte("2024-01-01T08:30:00 ERR boom"), model.SourceWorkflow)
		require.True(t, ok)

		assert.Equal(t, time.Date(2024, 1, 1, 8, 30, 0, 0, time.UTC), record.Timestamp)
		assert.Equal(t, "ERR boom", record.Message)
	})

	accepted := []struct {
		token string
		want  time.Time
	}{
		{"2024-01-01T10:00Z", time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)},
		{"2024-01-01T10:00:00.5", time.Date(2024, 1, 1, 10, 0, 0, 500_000_000, time.UTC)},
		{"2024-01-01T10:00:00+0100", time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)},
		{"2024-01-01T10:00:00-07:00", time.Date(2024, 1, 1, 17, 0, 0, 0, time.UTC)},
	}
	for _, tc := range accepted {
		t.Run("Accepts "+tc.token, func(t *testing.T) {
			ts, err := ParseTimestamp(tc.token)
			require.NoError(t, err)
			assert.True(t, tc.want.Equal(ts), "got %s", ts)
		})
	}

	t.Run("Tolerates CRLF line endings", func(t *testing.T) {
		record, ok := ParseLine([]byte("2024-01-01T10:00:00Z INF hello\r\n"), model.SourceWorkflow)
		require.True(t, ok)
		assert.Equal(t, "INF hello", record.Message)
	})

	t.Run("Drops invalid UTF-8 bytes instead of the line", func(t *testing.T) {
		record, ok := ParseLine([]byte("2024-01-01T10:00:00Z INF caf\xff\xfee"), model.SourceWorkflow)
		require.True(t, ok)
		assert.Equal(t, "INF cafe", record.Message)
	})

	rejected := []struct {
		name string
		line string
	}{
		{"no timestamp", "INF just a message"},
		{"date without T", "2024-01-01 10:00:00 INF message"},
		{"timestamp not at start", " 2024-01-01T10:00:00Z INF message"},
		{"no whitespace after token", "2024-01-01T10:00:00Z"},
		{"short year", "24-01-01T10:00:00Z INF message"},
		{"shape ok but invalid date", "2024-02-30T10:00:00Z INF message"},
		{"shape ok but impossible clock", "2024-01-01T99:99:99Z INF message"},
		{"empty line", ""},
		{"words after the date", "2024-01-01Tnonsense ERR garbage header"},
		{"text after the zone", "2024-01-01T09:00:00Zjunk ERR also garbage"},
		{"brackets after the zone", "2024-01-01T10:00:00Z[abc] INF message"},
		{"text after the offset", "2024-01-01T10:00:00+01:00x INF message"},
		{"date only", "2024-01-01T INF message"},
	}
	for _, tc := range rejected {
		t.Run("Rejects "+tc.name, func(t *testing.T) {
			_, ok := ParseLine([]byte(tc.line), model.SourceWorkflow)
			assert.False(t, ok)
		})
	}
}

func TestLineParserParse(t *testing.T) {
	input := strings.Join([]string{
		"2024-01-01T10:00:00Z INF started tool X1",
		"garbage line",
		"2024-01-01T09:00:00Z ERR later in file but earlier in time",
		"2024-13-01T09:00:00Z INF bad month",
		"2024-01-01T11:00:00Z DBG last line without newline",
	}, "\n")

	t.Run("Returns records in file order with the given source", func(t *testing.T) {
		parser := NewLineParser("line_parser")
		records, stats := parser.Parse(strings.NewReader(input), model.SourceConnections)

		require.Len(t, records, 3)
		assert.Equal(t, "INF started tool X1", records[0].Message)
		assert.Equal(t, "ERR later in file but earlier in time", records[1].Message)
		assert.Equal(t, "DBG last line without newline", records[2].Message)
		for _, record := range records {
			assert.Equal(t, model.SourceConnections, record.Source)
		}

		assert.Equal(t, model.ParseStats{
			Source:  model.SourceConnections,
			Lines:   5,
			Records: 3,
			Dropped: 2,
		}, stats)
	})

	t.Run("Handles lines longer than a scanner token", func(t *testing.T) {
		long := "2024-01-01T10:00:00Z INF " + strings.Repeat("x", 128*1024)
		parser := NewLineParser("line_parser")
		records, _ := parser.Parse(strings.NewReader(long+"\n"), model.SourceWorkflow)

		require.Len(t, records, 1)
		assert.Len(t, records[0].Message, 4+128*1024)
	})

	t.Run("Empty and nil input yield no records", func(t *testing.T) {
		parser := NewLineParser("line_parser")

		records, stats := parser.Parse(strings.NewReader(""), model.SourceWorkflow)
		assert.Empty(t, records)
		assert.Equal(t, 0, stats.Lines)

		records, _ = parser.Parse(nil, model.SourceWorkflow)
		assert.NotNil(t, records)
		assert.Empty(t, records)
	})

	t.Run("Publishes parse stats", func(t *testing.T) {
		parser := NewLineParser("line_parser")
		publisher := &recordingPublisher{}
		parser.AttachPublisher(publisher)

		parser.Parse(strings.NewReader(input), model.SourceWorkflow)

		require.Equal(t, []model.EventType{model.EventSourceParsed}, publisher.events)
		stats, ok := publisher.data[0].(model.ParseStats)
		require.True(t, ok)
		assert.Equal(t, 3, stats.Records)
	})
}
