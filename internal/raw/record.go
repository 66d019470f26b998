// Package raw provides typed access to the flat JSON records returned by
// the NOVATime endpoints. A record is an unversioned namespace of roughly
// 150 keys whose leading sigil encodes the vendor's type convention:
// c=string, n=number, l=boolean, d/t=date or time string, i=integer,
// m=media/recording. Accessors fail loudly on absent keys because a
// missing key almost always means the vendor schema shifted underneath us.
package raw

import (
	"fmt"
	"sort"
	"time"
)

// Record is one flat vendor record as decoded from JSON.
type Record map[string]any

// MissingFieldError reports a vendor key absent from a record. It carries
// the record's available keys so a schema change can be diagnosed from the
// error alone.
type MissingFieldError struct {
	Key       string
	Available []string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("record is missing vendor field %q (%d keys present)", e.Key, len(e.Available))
}

// FieldTypeError reports a vendor key whose JSON value had an unexpected type.
type FieldTypeError struct {
	Key  string
	Want string
	Got  any
}

func (e *FieldTypeError) Error() string {
	return fmt.Sprintf("vendor field %q: want %s, got %T (%v)", e.Key, e.Want, e.Got, e.Got)
}

// Keys returns the record's keys, sorted.
func (r Record) Keys() []string {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (r Record) missing(key string) error {
	return &MissingFieldError{Key: key, Available: r.Keys()}
}

// Has reports whether the key is present, even with a null value.
func (r Record) Has(key string) bool {
	_, ok := r[key]
	return ok
}

// Any returns the raw value for a required key.
func (r Record) Any(key string) (any, error) {
	v, ok := r[key]
	if !ok {
		return nil, r.missing(key)
	}
	return v, nil
}

// Str returns a required string field. A JSON null is returned as "".
func (r Record) Str(key string) (string, error) {
	v, ok := r[key]
	if !ok {
		return "", r.missing(key)
	}
	if v == nil {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", &FieldTypeError{Key: key, Want: "string", Got: v}
	}
	return s, nil
}

// NullStr returns a required but nullable string field. A JSON null is
// returned as a nil pointer, preserving null vs "" across a round trip.
func (r Record) NullStr(key string) (*string, error) {
	v, ok := r[key]
	if !ok {
		return nil, r.missing(key)
	}
	if v == nil {
		return nil, nil
	}
	s, ok := v.(string)
	if !ok {
		return nil, &FieldTypeError{Key: key, Want: "string", Got: v}
	}
	return &s, nil
}

// Float returns a required numeric field.
func (r Record) Float(key string) (float64, error) {
	v, ok := r[key]
	if !ok {
		return 0, r.missing(key)
	}
	f, ok := v.(float64)
	if !ok {
		return 0, &FieldTypeError{Key: key, Want: "number", Got: v}
	}
	return f, nil
}

// NullFloat returns a required but nullable numeric field.
func (r Record) NullFloat(key string) (*float64, error) {
	v, ok := r[key]
	if !ok {
		return nil, r.missing(key)
	}
	if v == nil {
		return nil, nil
	}
	f, ok := v.(float64)
	if !ok {
		return nil, &FieldTypeError{Key: key, Want: "number", Got: v}
	}
	return &f, nil
}

// Int returns a required integer field. JSON numbers decode as float64;
// the vendor's i-sigil fields are whole numbers.
func (r Record) Int(key string) (int, error) {
	f, err := r.Float(key)
	if err != nil {
		return 0, err
	}
	return int(f), nil
}

// Bool returns a required boolean field. A JSON null is returned as false,
// matching how the vendor treats unset l-sigil flags.
func (r Record) Bool(key string) (bool, error) {
	v, ok := r[key]
	if !ok {
		return false, r.missing(key)
	}
	if v == nil {
		return false, nil
	}
	b, ok := v.(bool)
	if !ok {
		return false, &FieldTypeError{Key: key, Want: "bool", Got: v}
	}
	return b, nil
}

// NullBool returns a required but nullable boolean field.
func (r Record) NullBool(key string) (*bool, error) {
	v, ok := r[key]
	if !ok {
		return nil, r.missing(key)
	}
	if v == nil {
		return nil, nil
	}
	b, ok := v.(bool)
	if !ok {
		return nil, &FieldTypeError{Key: key, Want: "bool", Got: v}
	}
	return &b, nil
}

// HoursDuration reads a numeric field expressed in fractional hours.
func (r Record) HoursDuration(key string) (time.Duration, error) {
	f, err := r.Float(key)
	if err != nil {
		return 0, err
	}
	return FromHours(f), nil
}

// MinutesDuration reads a numeric field expressed in fractional minutes.
func (r Record) MinutesDuration(key string) (time.Duration, error) {
	f, err := r.Float(key)
	if err != nil {
		return 0, err
	}
	return FromMinutes(f), nil
}

// List returns a required but nullable list of nested records. A JSON null
// yields (nil, true, nil) so serialization can reproduce the null.
func (r Record) List(key string) ([]Record, bool, error) {
	v, ok := r[key]
	if !ok {
		return nil, false, r.missing(key)
	}
	if v == nil {
		return nil, true, nil
	}
	items, ok := v.([]any)
	if !ok {
		return nil, false, &FieldTypeError{Key: key, Want: "list", Got: v}
	}
	out := make([]Record, 0, len(items))
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			return nil, false, &FieldTypeError{Key: key, Want: "list of objects", Got: item}
		}
		out = append(out, Record(m))
	}
	return out, false, nil
}

// Object returns a required but nullable nested record.
func (r Record) Object(key string) (Record, error) {
	v, ok := r[key]
	if !ok {
		return nil, r.missing(key)
	}
	if v == nil {
		return nil, nil
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, &FieldTypeError{Key: key, Want: "object", Got: v}
	}
	return Record(m), nil
}

// FromHours converts the vendor's fractional-hours unit to a Duration.
func FromHours(h float64) time.Duration {
	return time.Duration(h * float64(time.Hour))
}

// FromMinutes converts the vendor's fractional-minutes unit to a Duration.
func FromMinutes(m float64) time.Duration {
	return time.Duration(m * float64(time.Minute))
}

// Hours converts a Duration back to the vendor's fractional-hours unit.
func Hours(d time.Duration) float64 {
	return d.Hours()
}

// Minutes converts a Duration back to the vendor's fractional-minutes unit.
func Minutes(d time.Duration) float64 {
	return d.Minutes()
}
