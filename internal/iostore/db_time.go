package iostore

import (
	"fmt"
	"time"
)

// textLayouts are the timestamp layouts a backend may hand back as text. SQLite stores
// RFC 3339 and MySQL returns DATETIME as text unless parseTime is set.
var textLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999",
	"2006-01-02 15:04:05",
}

// dbTime scans a timestamp column regardless of whether the driver returns it as a
// time.Time or as text.
type dbTime struct {
	Time time.Time
}

// Scan implements sql.Scanner.
func (t *dbTime) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		t.Time = v
		return nil
	case string:
		return t.parse(v)
	case []byte:
		return t.parse(string(v))
	default:
		return fmt.Errorf("cannot scan %T into a timestamp", src)
	}
}

func (t *dbTime) parse(s string) error {
	for _, layout := range textLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("failed to parse timestamp %q", s)
}

// nullDBTime is a dbTime that may be NULL.
type nullDBTime struct {
	dbTime
	Valid bool
}

// Scan implements sql.Scanner.
func (t *nullDBTime) Scan(src any) error {
	if src == nil {
		t.Valid = false
		return nil
	}
	t.Valid = true
	return t.dbTime.Scan(src)
}
