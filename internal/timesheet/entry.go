package timesheet

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/agmlego/novatime/internal/nvtime"
	"github.com/agmlego/novatime/internal/raw"
)

// UnsavedSequence marks an entry created locally that the vendor has not
// assigned a sequence number yet.
const UnsavedSequence = -1

// Entry is one timesheet line: the aggregate over every value object the
// vendor packs into a single flat record. Identity is
// (TimesheetSeq, Sequence), both vendor-assigned.
//
// In is always present once an entry exists; a nil Out means the shift is
// still open (the employee is clocked in).
type Entry struct {
	TimesheetSeq int
	Sequence     int
	EmployeeSeq  int
	EmployeeID   string
	FirstName    string
	LastName     string
	FullName     string

	PayPeriod DatePeriod
	PunchDate time.Time
	WorkDate  time.Time

	PayCode PayCode
	In      *Punch
	Out     *Punch

	Schedule   Schedule
	Status     EntryStatus
	Note       EntryNote
	Exceptions EntryException
	Pay        PayInfo

	OT         HoursGroup
	CompOT     HoursGroup
	RawCompOT  HoursGroup
	RedirectOT HoursGroup

	WorkHours       time.Duration
	DailyTotalHours time.Duration

	// Three distinct category-list roles. A null list in the raw data
	// becomes an empty slice; the null is remembered for serialization.
	Categories     []*Category
	Accessible     []*Category
	Invalid        []*Category
	categoriesNull bool
	accessibleNull bool
	invalidNull    bool

	Grouping       *Category
	GroupingString string
	GroupCode      string
	GroupLevel     string
	AssignID       string
	WeekGroup      string
	DateKey        string
	WithinPP       bool
	PunchDateTime  time.Time
	RecordType     int
	MoreInfo       string

	CarryoverExpansionOverride int
	CarryoverExpansionChanged  bool

	// ExpectedMealTimes is keyed by the vendor-supplied index, which is
	// not necessarily contiguous from zero.
	ExpectedMealTimes map[int]DatePeriod
}

// NewEntry builds a not-yet-persisted entry for write-back.
func NewEntry(period DatePeriod, punchDate time.Time, payCode PayCode) *Entry {
	return &Entry{
		TimesheetSeq:      0,
		Sequence:          UnsavedSequence,
		PayPeriod:         period,
		PunchDate:         punchDate,
		WorkDate:          punchDate,
		PayCode:           payCode,
		DateKey:           nvtime.FormatDateKey(punchDate),
		WithinPP:          period.Contains(punchDate),
		RecordType:        1,
		ExpectedMealTimes: map[int]DatePeriod{},
	}
}

// ParseEntry builds an Entry from one raw timesheet record, dispatching
// field slices to each nested value object. Any missing vendor key aborts
// the whole entry.
func ParseEntry(r raw.Record) (*Entry, error) {
	var e Entry
	var err error

	if e.TimesheetSeq, err = r.Int("iTimesheetSeq"); err != nil {
		return nil, err
	}
	if e.Sequence, err = r.Int("iTimeSeq"); err != nil {
		return nil, err
	}
	if e.EmployeeSeq, err = r.Int("iEmployeeSeq"); err != nil {
		return nil, err
	}
	if e.EmployeeID, err = r.Str("cEmployeeID"); err != nil {
		return nil, err
	}
	if e.FirstName, err = r.Str("cEmployeeFirstName"); err != nil {
		return nil, err
	}
	if e.LastName, err = r.Str("cEmployeeLastName"); err != nil {
		return nil, err
	}
	if e.FullName, err = r.Str("cEmployeeFullName"); err != nil {
		return nil, err
	}

	start, err := punchField(r, "dPayPeriodStart")
	if err != nil {
		return nil, err
	}
	end, err := punchField(r, "dPayPeriodEnd")
	if err != nil {
		return nil, err
	}
	if e.PayPeriod, err = NewDatePeriod(start, end); err != nil {
		return nil, err
	}
	if e.PunchDate, err = punchField(r, "dPunchDate"); err != nil {
		return nil, err
	}
	if e.WorkDate, err = punchField(r, "dWorkDate"); err != nil {
		return nil, err
	}
	if e.PunchDateTime, err = punchField(r, "tPunchDateTime"); err != nil {
		return nil, err
	}

	if e.PayCode, err = parsePayCode(r); err != nil {
		return nil, err
	}
	if e.In, err = parsePunch(r, PunchIn); err != nil {
		return nil, err
	}
	if e.Out, err = parsePunch(r, PunchOut); err != nil {
		return nil, err
	}
	if e.Schedule, err = parseSchedule(r); err != nil {
		return nil, err
	}
	if e.Status, err = parseStatus(r); err != nil {
		return nil, err
	}
	if e.Note, err = parseNote(r); err != nil {
		return nil, err
	}
	if e.Exceptions, err = parseExceptions(r); err != nil {
		return nil, err
	}
	if e.Pay, err = parsePayInfo(r); err != nil {
		return nil, err
	}

	if e.OT, err = parseHoursGroup(r, HoursPlain); err != nil {
		return nil, err
	}
	if e.CompOT, err = parseHoursGroup(r, HoursComp); err != nil {
		return nil, err
	}
	if e.RawCompOT, err = parseHoursGroup(r, HoursRawComp); err != nil {
		return nil, err
	}
	if e.RedirectOT, err = parseHoursGroup(r, HoursRedirect); err != nil {
		return nil, err
	}

	if e.WorkHours, err = r.HoursDuration("nWorkHours"); err != nil {
		return nil, err
	}
	if e.DailyTotalHours, err = r.HoursDuration("nDailyTotalHours"); err != nil {
		return nil, err
	}

	if e.Categories, e.categoriesNull, err = categoryList(r, "GroupValueList"); err != nil {
		return nil, err
	}
	if e.Accessible, e.accessibleNull, err = categoryList(r, "AccessibleGroupList"); err != nil {
		return nil, err
	}
	if e.Invalid, e.invalidNull, err = categoryList(r, "InvalidGroupList"); err != nil {
		return nil, err
	}

	grouping, err := r.Object("Grouping")
	if err != nil {
		return nil, err
	}
	if grouping != nil {
		if e.Grouping, err = ParseCategory(grouping); err != nil {
			return nil, err
		}
	}

	if e.GroupingString, err = r.Str("GroupingString"); err != nil {
		return nil, err
	}
	if e.GroupCode, err = r.Str("cGroupCode"); err != nil {
		return nil, err
	}
	if e.GroupLevel, err = r.Str("cGroupLevel"); err != nil {
		return nil, err
	}
	if e.AssignID, err = r.Str("cAssignID"); err != nil {
		return nil, err
	}
	if e.WeekGroup, err = r.Str("WeekGroupString"); err != nil {
		return nil, err
	}
	if e.DateKey, err = r.Str("DateKey"); err != nil {
		return nil, err
	}
	if e.WithinPP, err = r.Bool("lWithinPP"); err != nil {
		return nil, err
	}
	if e.RecordType, err = r.Int("RecordType"); err != nil {
		return nil, err
	}
	if e.MoreInfo, err = r.Str("cMoreInfo"); err != nil {
		return nil, err
	}
	if e.CarryoverExpansionOverride, err = r.Int("CarryoverExpansionOverride"); err != nil {
		return nil, err
	}
	if e.CarryoverExpansionChanged, err = r.Bool("lCarryoverExpansionORChanged"); err != nil {
		return nil, err
	}

	if e.ExpectedMealTimes, err = parseMealTimes(r); err != nil {
		return nil, err
	}

	return &e, nil
}

// punchField reads a required punch-format timestamp field.
func punchField(r raw.Record, key string) (time.Time, error) {
	s, err := r.Str(key)
	if err != nil {
		return time.Time{}, err
	}
	return nvtime.ParsePunch(s)
}

func categoryList(r raw.Record, key string) ([]*Category, bool, error) {
	records, wasNull, err := r.List(key)
	if err != nil {
		return nil, false, err
	}
	cats := make([]*Category, 0, len(records))
	for _, rec := range records {
		c, err := ParseCategory(rec)
		if err != nil {
			return nil, false, fmt.Errorf("%s: %w", key, err)
		}
		cats = append(cats, c)
	}
	return cats, wasNull, nil
}

func parseMealTimes(r raw.Record) (map[int]DatePeriod, error) {
	records, _, err := r.List("ExpectedMealTimes")
	if err != nil {
		return nil, err
	}
	meals := make(map[int]DatePeriod, len(records))
	for _, rec := range records {
		index, err := rec.Int("iIndex")
		if err != nil {
			return nil, err
		}
		start, err := punchField(rec, "tStartTime")
		if err != nil {
			return nil, err
		}
		end, err := punchField(rec, "tEndTime")
		if err != nil {
			return nil, err
		}
		period, err := NewDatePeriod(start, end)
		if err != nil {
			return nil, err
		}
		meals[index] = period
	}
	return meals, nil
}

// Open reports whether the entry represents a shift still clocked in.
func (e *Entry) Open() bool {
	return e.Out == nil
}

// Raw reassembles the complete raw-shaped record: the full serializations
// of every nested value object merged with the entry's own scalars. This
// is the read-model round trip; every vendor field comes back with its
// original value and unit.
func (e *Entry) Raw() raw.Record {
	r := raw.Record{
		"iTimesheetSeq":      float64(e.TimesheetSeq),
		"iTimeSeq":           float64(e.Sequence),
		"iEmployeeSeq":       float64(e.EmployeeSeq),
		"cEmployeeID":        e.EmployeeID,
		"cEmployeeFirstName": e.FirstName,
		"cEmployeeLastName":  e.LastName,
		"cEmployeeFullName":  e.FullName,

		"dPayPeriodStart": nvtime.FormatPunch(e.PayPeriod.Start),
		"dPayPeriodEnd":   nvtime.FormatPunch(e.PayPeriod.End),
		"dPunchDate":      nvtime.FormatPunch(e.PunchDate),
		"dWorkDate":       nvtime.FormatPunch(e.WorkDate),
		"tPunchDateTime":  nvtime.FormatPunch(e.PunchDateTime),

		"nWorkHours":       raw.Hours(e.WorkHours),
		"nDailyTotalHours": raw.Hours(e.DailyTotalHours),

		"GroupingString":  e.GroupingString,
		"cGroupCode":      e.GroupCode,
		"cGroupLevel":     e.GroupLevel,
		"cAssignID":       e.AssignID,
		"WeekGroupString": e.WeekGroup,
		"DateKey":         e.DateKey,
		"lWithinPP":       e.WithinPP,
		"RecordType":      float64(e.RecordType),
		"cMoreInfo":       e.MoreInfo,

		"CarryoverExpansionOverride":   float64(e.CarryoverExpansionOverride),
		"lCarryoverExpansionORChanged": e.CarryoverExpansionChanged,
	}

	e.PayCode.writeTo(r)
	e.In.writeTo(r)
	if e.Out != nil {
		e.Out.writeTo(r)
	} else {
		writeAbsentPunch(r, PunchOut)
	}
	e.Schedule.writeTo(r)
	e.Status.writeTo(r)
	e.Note.writeTo(r)
	e.Exceptions.writeTo(r)
	e.Pay.writeTo(r)
	e.OT.writeTo(r)
	e.CompOT.writeTo(r)
	e.RawCompOT.writeTo(r)
	e.RedirectOT.writeTo(r)

	r["GroupValueList"] = rawCategoryList(e.Categories, e.categoriesNull)
	r["AccessibleGroupList"] = rawCategoryList(e.Accessible, e.accessibleNull)
	r["InvalidGroupList"] = rawCategoryList(e.Invalid, e.invalidNull)
	if e.Grouping != nil {
		r["Grouping"] = map[string]any(e.Grouping.Raw())
	} else {
		r["Grouping"] = nil
	}

	r["ExpectedMealTimes"] = rawMealTimes(e.ExpectedMealTimes)

	return r
}

// writeCategorySlots is the number of category slots the vendor's edit UI
// exposes; the write endpoint rejects more.
const writeCategorySlots = 4

// WriteRaw produces the narrow record shape the vendor's write endpoint
// accepts: identity, the first four assigned categories, the punches in
// UTC, the pay code, and the write-only flags. The shape asymmetry with
// Raw is the vendor's contract, not ours.
//
// Writing an open entry is under-specified by the vendor, so WriteRaw
// refuses rather than guess.
func (e *Entry) WriteRaw() (raw.Record, error) {
	if e.In == nil {
		return nil, fmt.Errorf("entry %d/%d has no in punch", e.TimesheetSeq, e.Sequence)
	}
	if e.Out == nil {
		return nil, fmt.Errorf("entry %d/%d is still open; cannot write an entry without an out punch",
			e.TimesheetSeq, e.Sequence)
	}

	categories := e.Categories
	if len(categories) > writeCategorySlots {
		categories = categories[:writeCategorySlots]
	}
	seqs := make([]string, 0, len(categories))
	for _, c := range categories {
		seqs = append(seqs, strconv.Itoa(c.GroupSeq))
	}

	return raw.Record{
		"iTimesheetSeq":  float64(e.TimesheetSeq),
		"iTimeSeq":       float64(e.Sequence),
		"iEmployeeSeq":   float64(e.EmployeeSeq),
		"dPunchDate":     nvtime.FormatWrite(nvtime.StartOfDay(e.PunchDate)),
		"dIn":            nvtime.FormatWrite(e.In.Time),
		"dOut":           nvtime.FormatWrite(e.Out.Time),
		"nPayCode":       float64(e.PayCode.Code),
		"GroupValueList": rawCategoryList(categories, false),
		"GroupingString": strings.Join(seqs, ","),
		"lChanged":       true,
		"copyColor":      false,
		"isUnEditable":   false,
	}, nil
}

func rawCategoryList(cats []*Category, wasNull bool) any {
	if wasNull {
		return nil
	}
	out := make([]any, 0, len(cats))
	for _, c := range cats {
		out = append(out, map[string]any(c.Raw()))
	}
	return out
}

func rawMealTimes(meals map[int]DatePeriod) any {
	indexes := make([]int, 0, len(meals))
	for i := range meals {
		indexes = append(indexes, i)
	}
	// Deterministic order by vendor index.
	sort.Ints(indexes)
	out := make([]any, 0, len(meals))
	for _, i := range indexes {
		p := meals[i]
		out = append(out, map[string]any{
			"iIndex":     float64(i),
			"tStartTime": nvtime.FormatPunch(p.Start),
			"tEndTime":   nvtime.FormatPunch(p.End),
		})
	}
	return out
}
