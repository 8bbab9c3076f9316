package airtable

import "time"

// Text returns a text field, or "" when the field is absent or not a string.
func Text(r *Record, field string) string {
	s, _ := r.Fields[field].(string)
	return s
}

// OptionalText returns a text field, or nil when the field is absent, null or empty.
func OptionalText(r *Record, field string) *string {
	s := Text(r, field)
	if s == "" {
		return nil
	}
	return &s
}

// Checkbox returns a checkbox field. Airtable omits unchecked boxes, so absent means false.
func Checkbox(r *Record, field string) bool {
	b, _ := r.Fields[field].(bool)
	return b
}

// Time returns a date field, or the zero time when absent or unparsable.
func Time(r *Record, field string) time.Time {
	return parseTime(Text(r, field))
}

// CreatedTime returns the row's creation time as Airtable reports it.
func CreatedTime(r *Record) time.Time {
	return parseTime(r.CreatedTime)
}

func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t.UTC()
}
