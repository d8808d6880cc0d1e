package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// The Optional types distinguish the three states a JSON field can be in:
// absent, explicit null, and a value. Task updates change only the fields
// a request provides, and several of them are clearable, so the
// distinction matters at the interface boundary.

type OptionalUint struct {
	Set   bool
	Valid bool
	Value uint
}

func (o *OptionalUint) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		return nil
	}
	if err := json.Unmarshal(data, &o.Value); err != nil {
		return err
	}
	o.Valid = true
	return nil
}

// Ptr returns the field as a nullable column value.
func (o OptionalUint) Ptr() *uint {
	if !o.Valid {
		return nil
	}
	v := o.Value
	return &v
}

type OptionalString struct {
	Set   bool
	Valid bool
	Value string
}

func (o *OptionalString) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		return nil
	}
	if err := json.Unmarshal(data, &o.Value); err != nil {
		return err
	}
	// An empty string clears the field, same as null.
	o.Valid = o.Value != ""
	return nil
}

func (o OptionalString) Ptr() *string {
	if !o.Valid {
		return nil
	}
	v := o.Value
	return &v
}

// timeLayouts are the accepted date inputs: full timestamps or bare
// calendar days.
var timeLayouts = []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"}

// ParseTime parses a date string in one of the accepted layouts, in the
// server's local time zone for layouts without an offset.
func ParseTime(value string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", value)
}

type OptionalTime struct {
	Set   bool
	Valid bool
	Value time.Time
}

func (o *OptionalTime) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == "" {
		return nil
	}
	t, err := ParseTime(raw)
	if err != nil {
		return err
	}
	o.Value = t
	o.Valid = true
	return nil
}

func (o OptionalTime) Ptr() *time.Time {
	if !o.Valid {
		return nil
	}
	v := o.Value
	return &v
}

// DayStart normalizes a range bound to 00:00:00.000 of its calendar day.
func DayStart(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

// DayEnd normalizes a range bound to 23:59:59.999 of its calendar day.
func DayEnd(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), time.Local)
}
