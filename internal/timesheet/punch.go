package timesheet

import (
	"time"

	"github.com/agmlego/novatime/internal/nvtime"
	"github.com/agmlego/novatime/internal/raw"
)

// PunchDirection selects which side of the vendor's In/Out field family a
// Punch reads and writes. The two sides have identical shape.
type PunchDirection string

const (
	PunchIn  PunchDirection = "In"
	PunchOut PunchDirection = "Out"
)

// Punch is one clock event: the instant itself plus the vendor's
// adjustment, modification, and capture metadata for that side.
// AdjustedTime is kept as the vendor's time-of-day display string
// ("09:00AM"); it carries no date and cannot be a full instant.
type Punch struct {
	Direction      PunchDirection
	Time           time.Time
	Original       time.Time
	AdjustedTime   string
	Modified       bool
	GPS            *string
	Site           string
	NetCheckFailed bool
	Expression     string
	ExpressionSave string
	TimezoneOffset *float64
	Recording      *string
}

// punchKeys returns the vendor keys for one direction. Most fields infix
// the direction (lInMod) but a few suffix it (cSiteIn, nAdjustIn).
type punchKeys struct {
	instant, original, adjusted, modified, gps, site string
	netCheck, expr, exprSave, tz, recording          string
}

func keysFor(dir PunchDirection) punchKeys {
	d := string(dir)
	return punchKeys{
		instant:   "d" + d,
		original:  "dOG" + d,
		adjusted:  "nAdjust" + d,
		modified:  "l" + d + "Mod",
		gps:       "c" + d + "GPS",
		site:      "cSite" + d,
		netCheck:  "l" + d + "NetChkFail",
		expr:      "c" + d + "Expression",
		exprSave:  "c" + d + "ExpressionSave",
		tz:        "nTZ" + d,
		recording: "m" + d + "Recording",
	}
}

// parsePunch builds one side's Punch. For the out side of an open entry
// the vendor sends null instants; parsePunch then returns (nil, nil) and
// the entry records the shift as still open.
func parsePunch(r raw.Record, dir PunchDirection) (*Punch, error) {
	keys := keysFor(dir)

	instant, err := nullPunch(r, keys.instant)
	if err != nil {
		return nil, err
	}
	if instant == nil {
		if dir == PunchIn {
			return nil, &raw.FieldTypeError{Key: keys.instant, Want: "punch timestamp", Got: nil}
		}
		return nil, nil
	}

	p := Punch{Direction: dir, Time: *instant}

	original, err := nullPunch(r, keys.original)
	if err != nil {
		return nil, err
	}
	if original != nil {
		p.Original = *original
	} else {
		p.Original = *instant
	}

	adjusted, err := r.NullStr(keys.adjusted)
	if err != nil {
		return nil, err
	}
	if adjusted != nil {
		p.AdjustedTime = *adjusted
	}
	if p.Modified, err = r.Bool(keys.modified); err != nil {
		return nil, err
	}
	if p.GPS, err = r.NullStr(keys.gps); err != nil {
		return nil, err
	}
	if p.Site, err = r.Str(keys.site); err != nil {
		return nil, err
	}
	if p.NetCheckFailed, err = r.Bool(keys.netCheck); err != nil {
		return nil, err
	}
	if p.Expression, err = r.Str(keys.expr); err != nil {
		return nil, err
	}
	if p.ExpressionSave, err = r.Str(keys.exprSave); err != nil {
		return nil, err
	}
	if p.TimezoneOffset, err = r.NullFloat(keys.tz); err != nil {
		return nil, err
	}
	if p.Recording, err = r.NullStr(keys.recording); err != nil {
		return nil, err
	}
	return &p, nil
}

func (p *Punch) writeTo(r raw.Record) {
	keys := keysFor(p.Direction)
	r[keys.instant] = nvtime.FormatPunch(p.Time)
	r[keys.original] = nvtime.FormatPunch(p.Original)
	r[keys.adjusted] = p.AdjustedTime
	r[keys.modified] = p.Modified
	r[keys.gps] = nullStr(p.GPS)
	r[keys.site] = p.Site
	r[keys.netCheck] = p.NetCheckFailed
	r[keys.expr] = p.Expression
	r[keys.exprSave] = p.ExpressionSave
	r[keys.tz] = nullFloat(p.TimezoneOffset)
	r[keys.recording] = nullStr(p.Recording)
}

// writeAbsent fills one side's fields with nulls, for open entries whose
// out punch has not happened yet.
func writeAbsentPunch(r raw.Record, dir PunchDirection) {
	keys := keysFor(dir)
	r[keys.instant] = nil
	r[keys.original] = nil
	r[keys.adjusted] = nil
	r[keys.modified] = false
	r[keys.gps] = nil
	r[keys.site] = ""
	r[keys.netCheck] = false
	r[keys.expr] = ""
	r[keys.exprSave] = ""
	r[keys.tz] = nil
	r[keys.recording] = nil
}
