package raw_test

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/agmlego/novatime/internal/raw"
)

func decode(t *testing.T, src string) raw.Record {
	t.Helper()
	var r raw.Record
	if err := json.Unmarshal([]byte(src), &r); err != nil {
		t.Fatalf("decoding fixture: %v", err)
	}
	return r
}

func TestStrNullHandling(t *testing.T) {
	r := decode(t, `{"cSchedule": "9:00AM-5:00PM", "cNotes": null}`)

	got, err := r.Str("cSchedule")
	if err != nil || got != "9:00AM-5:00PM" {
		t.Errorf("Str(cSchedule) = %q, %v", got, err)
	}

	// Null collapses to "" for Str but stays nil for NullStr.
	got, err = r.Str("cNotes")
	if err != nil || got != "" {
		t.Errorf("Str(cNotes) = %q, %v", got, err)
	}
	p, err := r.NullStr("cNotes")
	if err != nil || p != nil {
		t.Errorf("NullStr(cNotes) = %v, %v, want nil", p, err)
	}
	p, err = r.NullStr("cSchedule")
	if err != nil || p == nil || *p != "9:00AM-5:00PM" {
		t.Errorf("NullStr(cSchedule) = %v, %v", p, err)
	}
}

func TestMissingFieldError(t *testing.T) {
	r := decode(t, `{"nWorkHours": 7.5, "lChanged": false}`)

	_, err := r.Float("nDailyTotalHours")
	var missing *raw.MissingFieldError
	if !errors.As(err, &missing) {
		t.Fatalf("Float on absent key: got %v, want MissingFieldError", err)
	}
	if missing.Key != "nDailyTotalHours" {
		t.Errorf("missing.Key = %q, want nDailyTotalHours", missing.Key)
	}
	if len(missing.Available) != 2 {
		t.Errorf("missing.Available = %v, want the record's 2 keys", missing.Available)
	}
}

func TestFieldTypeError(t *testing.T) {
	r := decode(t, `{"nPayCode": "not a number"}`)

	_, err := r.Int("nPayCode")
	var typeErr *raw.FieldTypeError
	if !errors.As(err, &typeErr) {
		t.Fatalf("Int on string value: got %v, want FieldTypeError", err)
	}
	if typeErr.Key != "nPayCode" || typeErr.Want != "number" {
		t.Errorf("FieldTypeError = %+v", typeErr)
	}
}

func TestNumericAccessors(t *testing.T) {
	r := decode(t, `{"nWorkHours": 7.5, "iTimeSeq": 42, "nPayRate": null}`)

	if f, err := r.Float("nWorkHours"); err != nil || f != 7.5 {
		t.Errorf("Float(nWorkHours) = %v, %v", f, err)
	}
	if i, err := r.Int("iTimeSeq"); err != nil || i != 42 {
		t.Errorf("Int(iTimeSeq) = %v, %v", i, err)
	}
	if p, err := r.NullFloat("nPayRate"); err != nil || p != nil {
		t.Errorf("NullFloat(nPayRate) = %v, %v, want nil", p, err)
	}
	if d, err := r.HoursDuration("nWorkHours"); err != nil || d != 7*time.Hour+30*time.Minute {
		t.Errorf("HoursDuration(nWorkHours) = %v, %v", d, err)
	}
}

func TestBoolNullIsFalse(t *testing.T) {
	r := decode(t, `{"lChanged": true, "lAudit": null}`)

	if b, err := r.Bool("lChanged"); err != nil || !b {
		t.Errorf("Bool(lChanged) = %v, %v", b, err)
	}
	if b, err := r.Bool("lAudit"); err != nil || b {
		t.Errorf("Bool(lAudit) = %v, %v, want false", b, err)
	}
	if p, err := r.NullBool("lAudit"); err != nil || p != nil {
		t.Errorf("NullBool(lAudit) = %v, %v, want nil", p, err)
	}
}

func TestListNullTracking(t *testing.T) {
	r := decode(t, `{
		"GroupValueList": [{"iGroupValueSeq": 7}],
		"InvalidGroupList": null
	}`)

	items, wasNull, err := r.List("GroupValueList")
	if err != nil || wasNull || len(items) != 1 {
		t.Errorf("List(GroupValueList) = %v, %v, %v", items, wasNull, err)
	}

	items, wasNull, err = r.List("InvalidGroupList")
	if err != nil || !wasNull || items != nil {
		t.Errorf("List(InvalidGroupList) = %v, %v, %v, want null marker", items, wasNull, err)
	}

	_, _, err = r.List("AccessibleGroupList")
	var missing *raw.MissingFieldError
	if !errors.As(err, &missing) {
		t.Errorf("List on absent key: got %v, want MissingFieldError", err)
	}
}

func TestUnitConversions(t *testing.T) {
	tests := []struct {
		hours float64
		want  time.Duration
	}{
		{0, 0},
		{0.5, 30 * time.Minute},
		{8, 8 * time.Hour},
		{7.75, 7*time.Hour + 45*time.Minute},
	}
	for _, tt := range tests {
		if got := raw.FromHours(tt.hours); got != tt.want {
			t.Errorf("FromHours(%v) = %v, want %v", tt.hours, got, tt.want)
		}
		if got := raw.Hours(tt.want); got != tt.hours {
			t.Errorf("Hours(%v) = %v, want %v", tt.want, got, tt.hours)
		}
	}

	if got := raw.FromMinutes(30); got != 30*time.Minute {
		t.Errorf("FromMinutes(30) = %v", got)
	}
	if got := raw.Minutes(90 * time.Second); got != 1.5 {
		t.Errorf("Minutes(90s) = %v", got)
	}
}
