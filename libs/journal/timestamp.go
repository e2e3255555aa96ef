package journal

import (
	"encoding/json"
	"fmt"
	"time"
)

// TimestampLayout is the ISO-8601 form written for dates: second
// precision with an explicit offset.
const TimestampLayout = time.RFC3339

// timestamp is the wire form of a date. It reads ISO-8601 with an offset,
// with or without fractional seconds, and writes TimestampLayout.
type timestamp time.Time

func (t timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Time(t).Format(TimestampLayout))
}

func (t *timestamp) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("timestamp: %w", err)
	}
	parsed, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return fmt.Errorf("timestamp: %w", err)
	}
	*t = timestamp(parsed)
	return nil
}
