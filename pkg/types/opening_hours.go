package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"regexp"
)

// DayHours holds a single day's opening window in HH:MM format.
type DayHours struct {
	Open  string `json:"open,omitempty"`
	Close string `json:"close,omitempty"`
}

// OpeningHours maps lowercase english day names to their opening window.
// Persisted as JSONB.
type OpeningHours map[string]DayHours

var timeOfDayPattern = regexp.MustCompile(`^([01]?[0-9]|2[0-3]):[0-5][0-9]$`)

var openingHoursDays = map[string]bool{
	"monday":    true,
	"tuesday":   true,
	"wednesday": true,
	"thursday":  true,
	"friday":    true,
	"saturday":  true,
	"sunday":    true,
}

// Validate checks day names and HH:MM boundaries.
func (o OpeningHours) Validate() error {
	for day, hours := range o {
		if !openingHoursDays[day] {
			return fmt.Errorf("opening hours: unknown day %q", day)
		}
		if hours.Open != "" && !timeOfDayPattern.MatchString(hours.Open) {
			return fmt.Errorf("opening hours: invalid open time %q for %s", hours.Open, day)
		}
		if hours.Close != "" && !timeOfDayPattern.MatchString(hours.Close) {
			return fmt.Errorf("opening hours: invalid close time %q for %s", hours.Close, day)
		}
	}
	return nil
}

// Value marshals the map into JSON for Postgres.
func (o OpeningHours) Value() (driver.Value, error) {
	if o == nil {
		return "{}", nil
	}
	buf, err := json.Marshal(o)
	if err != nil {
		return nil, err
	}
	return buf, nil
}

// Scan decodes JSONB into the map.
func (o *OpeningHours) Scan(value interface{}) error {
	if value == nil {
		*o = nil
		return nil
	}

	var raw []byte
	switch v := value.(type) {
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("opening hours: unsupported scan type %T", value)
	}

	result := make(OpeningHours)
	if err := json.Unmarshal(raw, &result); err != nil {
		return err
	}
	*o = result
	return nil
}
