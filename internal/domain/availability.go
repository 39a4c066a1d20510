package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Availability maps a lowercase weekday name to whether the user is
// available that day. Keys are independently optional: a missing day
// is "unknown", not "unavailable".
type Availability map[string]bool

// Value implements driver.Valuer so the map is stored as JSONB.
func (a Availability) Value() (driver.Value, error) {
	if a == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(a)
}

// Scan implements sql.Scanner for the JSONB column.
func (a *Availability) Scan(src interface{}) error {
	if src == nil {
		*a = Availability{}
		return nil
	}
	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported availability source type %T", src)
	}
	return json.Unmarshal(data, a)
}
