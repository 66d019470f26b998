package novatime

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/agmlego/novatime/internal/category"
	"github.com/agmlego/novatime/internal/nvtime"
	"github.com/agmlego/novatime/internal/raw"
	"github.com/agmlego/novatime/internal/timesheet"
)

// GetTimesheet downloads the raw timesheet records for a pay period. The
// full decoded response is returned alongside the records so callers can
// archive it verbatim.
func (c *Client) GetTimesheet(ctx context.Context, period timesheet.DatePeriod) ([]raw.Record, map[string]any, error) {
	params := url.Values{
		"AccessSeq":       {c.user.AccessSeq},
		"EmployeeSeq":     {c.user.EmployeeSeq},
		"UserSeq":         {c.user.UserSeq},
		"StartDate":       {nvtime.FormatParamDate(period.Start)},
		"EndDate":         {nvtime.FormatParamDate(period.End)},
		"CustomDateRange": {"false"},
		"ShowOneMoreDay":  {"false"},
		"EmployeeSeqList": {""},
		"DailyDate":       {nvtime.FormatParamDate(period.Start)},
		"ForceAbsent":     {"false"},
		"PolicyGroup":     {""},
	}

	var payload map[string]any
	if err := c.getJSON(ctx, c.apiURL("timesheetdetail"), params, &payload); err != nil {
		return nil, nil, err
	}

	// An unauthenticated session gets a response without the data key
	// rather than an HTTP error.
	list, ok := payload["DataList"].([]any)
	if !ok {
		return nil, nil, &NotAuthorizedError{Missing: "DataList"}
	}

	records := make([]raw.Record, 0, len(list))
	for _, item := range list {
		obj, ok := item.(map[string]any)
		if !ok {
			return nil, nil, fmt.Errorf("timesheet DataList holds a %T, not an object", item)
		}
		records = append(records, raw.Record(obj))
	}
	c.log.Debug("fetched timesheet", "period", period.String(), "records", len(records))
	return records, payload, nil
}

// SubmitEntry posts one edited or locally created entry back through the
// write endpoint. The entry must be complete; open entries are refused by
// WriteRaw.
func (c *Client) SubmitEntry(ctx context.Context, entry *timesheet.Entry) error {
	body, err := entry.WriteRaw()
	if err != nil {
		return err
	}

	params := url.Values{
		"AccessSeq":   {c.user.AccessSeq},
		"EmployeeSeq": {c.user.EmployeeSeq},
		"UserSeq":     {c.user.UserSeq},
	}

	var result struct {
		ErrorCode        int    `json:"_errorCode"`
		ErrorDescription string `json:"_errorDescription"`
	}
	if err := c.postJSON(ctx, c.apiURL("timesheetdetail"), params, body, &result); err != nil {
		return err
	}
	if result.ErrorCode != 1 {
		return &VendorError{Code: result.ErrorCode, Description: result.ErrorDescription}
	}
	c.log.Debug("submitted entry",
		"sheet_seq", entry.TimesheetSeq, "entry_seq", entry.Sequence,
		"date", timesheet.DateKey(entry.PunchDate))
	return nil
}

// Groups fetches the grouping dimensions this deployment exposes, keyed
// by display caption.
func (c *Client) Groups(ctx context.Context) (map[string]int, error) {
	var payload struct {
		GroupList []struct {
			Caption string `json:"cGroupCaption"`
			Number  int    `json:"iGroupNumber"`
		} `json:"GROUPLIST"`
	}
	if err := c.getJSON(ctx, c.apiURL("systemsetting"), nil, &payload); err != nil {
		return nil, err
	}
	groups := make(map[string]int, len(payload.GroupList))
	for _, g := range payload.GroupList {
		groups[g.Caption] = g.Number
		c.log.Debug("group", "caption", g.Caption, "number", g.Number)
	}
	return groups, nil
}

// Page implements category.Pager against the paged group-options endpoint.
func (c *Client) Page(ctx context.Context, groupNumber, page, perPage int) (*category.PageResult, error) {
	params := url.Values{
		"GroupNumber":              {strconv.Itoa(groupNumber)},
		"UserAccessSeq":            {c.user.UserSeq},
		"EmployeeAccessSeq":        {c.user.AccessSeq},
		"PrimaryGroupNumber":       {"0"},
		"PrimaryGroupValueSeq":     {"0"},
		"PrimaryGroup2Number":      {"0"},
		"PrimaryGroup2ValueSeq":    {"0"},
		"PrimaryGroup3Number":      {"0"},
		"PrimaryGroup3ValueSeq":    {"0"},
		"PrimaryGroup4Number":      {"0"},
		"PrimaryGroup4ValueSeq":    {"0"},
		"UserSeq":                  {c.user.UserSeq},
		"EmployeeSeq":              {c.user.EmployeeSeq},
		"UseCascadingGroupLinkage": {"false"},
		"CurrentPage":              {strconv.Itoa(page)},
		"ItemsPerPage":             {strconv.Itoa(perPage)},
		"SearchText":               {""},
		"SelectedEmployeeSeq":      {c.user.EmployeeSeq},
		"FilterJobGroups":          {"false"},
	}

	var payload struct {
		ErrorCode        int    `json:"_errorCode"`
		ErrorDescription string `json:"_errorDescription"`
		Data             struct {
			ItemTotal int              `json:"ItemTotal"`
			PagedList []map[string]any `json:"PagedList"`
		} `json:"Data"`
	}
	if err := c.getJSON(ctx, c.apiURL("Group/GetPagedGroups"), params, &payload); err != nil {
		return nil, err
	}
	if payload.ErrorCode != 1 {
		return nil, &VendorError{Code: payload.ErrorCode, Description: payload.ErrorDescription}
	}

	items := make([]raw.Record, 0, len(payload.Data.PagedList))
	for _, obj := range payload.Data.PagedList {
		items = append(items, raw.Record(obj))
	}
	return &category.PageResult{Items: items, Total: payload.Data.ItemTotal}, nil
}

// defaultPageSize matches the portal UI's own paging.
const defaultPageSize = 10

// GroupOptions fetches the full option cache for a grouping dimension by
// its display caption.
func (c *Client) GroupOptions(ctx context.Context, caption string) (*category.Group, error) {
	groups, err := c.Groups(ctx)
	if err != nil {
		return nil, err
	}
	number, ok := groups[caption]
	if !ok {
		return nil, fmt.Errorf("no group captioned %q on this deployment", caption)
	}
	group := category.NewGroup(number, caption, category.WithLogger(c.log))
	if err := group.Fetch(ctx, c, defaultPageSize); err != nil {
		return nil, err
	}
	return group, nil
}
