package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// TimestampLayout renders event timestamps with millisecond precision in UTC.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// TagEvent is one entry of the data layer consumed by the external tag.
// It serializes flat: {"event": Name, ...Payload fields, "timestamp": ...}.
type TagEvent struct {
	Name      string
	UserID    string // routing only, not serialized
	Payload   any    // a struct or map that marshals to a JSON object
	Timestamp time.Time
}

// MarshalJSON flattens the payload next to the event discriminator.
func (e TagEvent) MarshalJSON() ([]byte, error) {
	fields := map[string]json.RawMessage{}
	if e.Payload != nil {
		raw, err := json.Marshal(e.Payload)
		if err != nil {
			return nil, fmt.Errorf("marshal %s payload: %w", e.Name, err)
		}
		if err := json.Unmarshal(raw, &fields); err != nil {
			return nil, fmt.Errorf("%s payload is not an object: %w", e.Name, err)
		}
	}

	if fields == nil {
		fields = map[string]json.RawMessage{}
	}

	name, _ := json.Marshal(e.Name)
	ts, _ := json.Marshal(e.Timestamp.UTC().Format(TimestampLayout))
	fields["event"] = name
	fields["timestamp"] = ts
	return json.Marshal(fields)
}
