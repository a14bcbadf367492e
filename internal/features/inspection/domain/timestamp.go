package domain

import (
	"bytes"
	"fmt"
	"strings"
	"time"
)

// timestampLayouts are tried in order when decoding; the backend emits
// zoned and unzoned ISO-8601 values depending on the endpoint
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Timestamp is a point in time as exchanged with the backend
type Timestamp struct {
	time.Time
}

// NewTimestamp wraps t
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t}
}

// ParseTimestamp parses any of the accepted backend layouts. Unzoned values are UTC.
func ParseTimestamp(value string) (Timestamp, error) {
	value = strings.TrimSpace(value)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return Timestamp{Time: t}, nil
		}
	}
	return Timestamp{}, fmt.Errorf("unsupported timestamp %q", value)
}

// MarshalJSON encodes the timestamp as RFC 3339
func (t Timestamp) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.UTC().Format(time.RFC3339Nano) + `"`), nil
}

// UnmarshalJSON accepts RFC 3339, unzoned ISO-8601, a bare date or null
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) || bytes.Equal(data, []byte(`""`)) {
		*t = Timestamp{}
		return nil
	}
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return fmt.Errorf("timestamp must be a JSON string, got %s", data)
	}

	parsed, err := ParseTimestamp(string(data[1 : len(data)-1]))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
