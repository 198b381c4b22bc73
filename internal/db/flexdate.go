package db

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// FlexDate is a time.Time that unmarshals from the heterogeneous timestamp
// shapes found in exported booking data: RFC3339 strings, plain dates,
// unix epochs (seconds or milliseconds), and the Firestore export object
// form {"_seconds": N, "_nanoseconds": N}. Everything downstream of the
// import boundary sees a plain time.Time.
type FlexDate struct {
	time.Time
}

type firestoreTimestamp struct {
	Seconds  *int64 `json:"_seconds"`
	Nanos    *int64 `json:"_nanoseconds"`
	AltSecs  *int64 `json:"seconds"`
	AltNanos *int64 `json:"nanos"`
}

// Epochs this large are taken as milliseconds rather than seconds. The
// cutoff (year 2603 in seconds) is far past any plausible booking date.
const msEpochCutoff = 20_000_000_000

func (f *FlexDate) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		f.Time = time.Time{}
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		return f.parseString(s)
	}

	var n int64
	if err := json.Unmarshal(data, &n); err == nil {
		f.Time = epochToTime(n)
		return nil
	}

	var ts firestoreTimestamp
	if err := json.Unmarshal(data, &ts); err == nil {
		secs, nanos := ts.Seconds, ts.Nanos
		if secs == nil {
			secs, nanos = ts.AltSecs, ts.AltNanos
		}
		if secs != nil {
			var nn int64
			if nanos != nil {
				nn = *nanos
			}
			f.Time = time.Unix(*secs, nn).UTC()
			return nil
		}
	}

	return fmt.Errorf("unsupported timestamp value: %s", data)
}

func (f *FlexDate) parseString(s string) error {
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			f.Time = t
			return nil
		}
	}
	return fmt.Errorf("unsupported timestamp string %q", s)
}

func epochToTime(n int64) time.Time {
	if n > msEpochCutoff {
		return time.UnixMilli(n).UTC()
	}
	return time.Unix(n, 0).UTC()
}

func (f FlexDate) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.Time.Format(time.RFC3339))
}

func (f FlexDate) Value() (driver.Value, error) {
	return f.Time, nil
}

func (f *FlexDate) Scan(value interface{}) error {
	t, ok := value.(time.Time)
	if !ok {
		return fmt.Errorf("cannot scan %T into FlexDate", value)
	}
	f.Time = t
	return nil
}
