package timesheet

import (
	"fmt"
	"time"

	"github.com/agmlego/novatime/internal/raw"
)

// Overtime bucket families. Each family is the same five-bucket shape
// under a different vendor key prefix (nOT1Hours, nCompOT1Hours, …).
const (
	HoursPlain    = ""
	HoursComp     = "Comp"
	HoursRawComp  = "RawComp"
	HoursRedirect = "Redirect"
)

// HoursGroup holds the five overtime-bucket durations of one family.
// The vendor stores them as fractional hours.
type HoursGroup struct {
	Label   string
	Buckets [5]time.Duration
}

func (h HoursGroup) key(bucket int) string {
	return fmt.Sprintf("n%sOT%dHours", h.Label, bucket+1)
}

func parseHoursGroup(r raw.Record, label string) (HoursGroup, error) {
	h := HoursGroup{Label: label}
	for i := range h.Buckets {
		d, err := r.HoursDuration(h.key(i))
		if err != nil {
			return h, err
		}
		h.Buckets[i] = d
	}
	return h, nil
}

func (h HoursGroup) writeTo(r raw.Record) {
	for i, d := range h.Buckets {
		r[h.key(i)] = raw.Hours(d)
	}
}

// Total sums the five buckets.
func (h HoursGroup) Total() time.Duration {
	var total time.Duration
	for _, d := range h.Buckets {
		total += d
	}
	return total
}
