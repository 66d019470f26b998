package timesheet

import (
	"fmt"

	"github.com/agmlego/novatime/internal/raw"
)

// GPS is an optional coordinate pair. The vendor sends null for both
// fields on untracked punches, so either both are present or neither is.
type GPS struct {
	Latitude  *float64
	Longitude *float64
}

// Valid reports whether the pair carries a usable coordinate.
func (g GPS) Valid() bool {
	return g.Latitude != nil && g.Longitude != nil
}

// Category is one selectable value of a grouping dimension (job code,
// cost center, and so on). GroupSeq is the durable identity within the
// group; the display texts can legitimately change between fetches.
type Category struct {
	Value            string
	ValueDescription string
	Description      *string
	GroupNumber      int
	GroupSeq         int
	GroupCode        *string
	GroupUserType    int
	GPS              GPS
	GroupColor       *string
	Closed           *bool
}

// ParseCategory builds a Category from one raw group record.
func ParseCategory(r raw.Record) (*Category, error) {
	var c Category
	var err error
	if c.Value, err = r.Str("cGroupValue"); err != nil {
		return nil, err
	}
	if c.ValueDescription, err = r.Str("cGroupValueDescription"); err != nil {
		return nil, err
	}
	if c.Description, err = r.NullStr("cDescription"); err != nil {
		return nil, err
	}
	if c.GroupNumber, err = r.Int("iGroupNumber"); err != nil {
		return nil, err
	}
	if c.GroupSeq, err = r.Int("iGroupValueSeq"); err != nil {
		return nil, err
	}
	if c.GroupCode, err = r.NullStr("cGroupCode"); err != nil {
		return nil, err
	}
	if c.GroupUserType, err = r.Int("iGroupUserType"); err != nil {
		return nil, err
	}
	if c.GPS.Latitude, err = r.NullFloat("nGPSLatitude"); err != nil {
		return nil, err
	}
	if c.GPS.Longitude, err = r.NullFloat("nGPSLongitude"); err != nil {
		return nil, err
	}
	if c.GroupColor, err = r.NullStr("cGroupColor"); err != nil {
		return nil, err
	}
	if c.Closed, err = r.NullBool("lClosed"); err != nil {
		return nil, err
	}
	return &c, nil
}

// Raw serializes the category back to the vendor's flat shape.
func (c *Category) Raw() raw.Record {
	return raw.Record{
		"iGroupNumber":           float64(c.GroupNumber),
		"iGroupValueSeq":         float64(c.GroupSeq),
		"cGroupValue":            c.Value,
		"cGroupValueDescription": c.ValueDescription,
		"cGroupCode":             nullStr(c.GroupCode),
		"iGroupUserType":         float64(c.GroupUserType),
		"nGPSLatitude":           nullFloat(c.GPS.Latitude),
		"nGPSLongitude":          nullFloat(c.GPS.Longitude),
		"cGroupColor":            nullStr(c.GroupColor),
		"cDescription":           nullStr(c.Description),
		"lClosed":                nullBool(c.Closed),
	}
}

// String renders the category as the portal displays it.
func (c *Category) String() string {
	desc := c.ValueDescription
	if c.Description != nil && *c.Description != "" {
		desc = *c.Description
	}
	return fmt.Sprintf("%s [%s]", c.Value, desc)
}

// nullStr, nullFloat and nullBool box optional fields the way
// encoding/json decoded them, so serialized records compare equal to the
// originals.
func nullStr(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

func nullFloat(f *float64) any {
	if f == nil {
		return nil
	}
	return *f
}

func nullBool(b *bool) any {
	if b == nil {
		return nil
	}
	return *b
}
