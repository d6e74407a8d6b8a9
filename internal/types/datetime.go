package types

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// DateTimeLayout is the wire form used for the sample date, both in JSON
// responses and in cache keys.
const DateTimeLayout = "2006-01-02 15:04:05"

// DateTime stores a timestamp that serializes as "YYYY-MM-DD HH:MM:SS"
// instead of RFC 3339.
type DateTime struct {
	time.Time
}

func NewDateTime(t time.Time) DateTime {
	return DateTime{Time: t.UTC().Truncate(time.Second)}
}

func (dt DateTime) MarshalJSON() ([]byte, error) {
	return []byte(`"` + dt.UTC().Format(DateTimeLayout) + `"`), nil
}

func (dt *DateTime) UnmarshalJSON(b []byte) error {
	s := string(b)
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("invalid datetime literal: %s", s)
	}
	t, err := time.ParseInLocation(DateTimeLayout, s[1:len(s)-1], time.UTC)
	if err != nil {
		return err
	}
	dt.Time = t
	return nil
}

func (dt DateTime) Value() (driver.Value, error) {
	return dt.UTC().Truncate(time.Second), nil
}

func (dt *DateTime) Scan(src interface{}) error {
	switch v := src.(type) {
	case time.Time:
		dt.Time = v.UTC()
		return nil
	case string:
		// Drivers hand timestamps back in a few shapes; try the wire layout
		// first, then the formats sqlite stores.
		for _, layout := range []string{DateTimeLayout, time.RFC3339Nano, "2006-01-02 15:04:05.999999999-07:00"} {
			if t, err := time.Parse(layout, v); err == nil {
				dt.Time = t.UTC()
				return nil
			}
		}
		return fmt.Errorf("cannot parse %q as DateTime", v)
	case []byte:
		return dt.Scan(string(v))
	default:
		return fmt.Errorf("cannot scan %T into DateTime", src)
	}
}

// GormDataType keeps gorm migrating the column as a plain timestamp.
func (DateTime) GormDataType() string { return "timestamp" }
