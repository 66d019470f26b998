package novatime

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/net/html"

	"github.com/agmlego/novatime/internal/nvtime"
	"github.com/agmlego/novatime/internal/timesheet"
)

// hiddenInput is one <input type="hidden"> harvested from the login page.
type hiddenInput struct {
	ID    string
	Name  string
	Value string
}

// scrapeHiddenInputs walks the login page HTML and collects every hidden
// input. The ASP.NET view state and the anti-forgery token travel this way.
func scrapeHiddenInputs(root *html.Node) []hiddenInput {
	var inputs []hiddenInput
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "input" {
			var in hiddenInput
			hidden := false
			for _, attr := range n.Attr {
				switch attr.Key {
				case "type":
					hidden = strings.EqualFold(attr.Val, "hidden")
				case "id":
					in.ID = attr.Val
				case "name":
					in.Name = attr.Val
				case "value":
					in.Value = attr.Val
				}
			}
			if hidden {
				inputs = append(inputs, in)
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(root)
	return inputs
}

// requiredFormFields are the scraped fields the login POST cannot do
// without; a missing one means the portal markup changed.
var requiredFormFields = []string{
	"__EVENTTARGET",
	"__EVENTARGUMENT",
	"__VIEWSTATE",
	"__VIEWSTATEGENERATOR",
	"__VIEWSTATEENCRYPTED",
	"__RequestVerificationToken",
}

// buildLoginForm assembles the login POST body from the scraped page. Any
// unrecognized hidden field is logged so a portal update shows up in the
// diagnostics before it breaks the flow.
func (c *Client) buildLoginForm(inputs []hiddenInput) (url.Values, error) {
	scraped := make(map[string]string, len(inputs))
	for _, in := range inputs {
		key := in.ID
		if key == "" {
			key = in.Name
		}
		scraped[key] = in.Value
	}

	form := url.Values{}
	for _, field := range requiredFormFields {
		value, ok := scraped[field]
		if !ok {
			return nil, fmt.Errorf("login page has no hidden field %q; portal markup changed", field)
		}
		form.Set(field, value)
	}

	form.Set("txtUserName", c.cfg.Username)
	form.Set("txtPassword", c.cfg.Password)
	form.Set("hUserAgent", c.cfg.UserAgent)

	// The password-change, MFA, and browser-fingerprint blocks the kiosk
	// page expects, empty or with the decoy values a real browser sends.
	for key, value := range map[string]string{
		"changePWsecq1$txtOldPW":             "",
		"changePWsecq1$txtPassword":          "",
		"changePWsecq1$txtPWVerify":          "",
		"changePWsecq1$SecqDdl":              "0",
		"changePWsecq1$txtAnswer":            "",
		"multiFactorAuth$codeEntryTxt":       "",
		"multiFactorAuth$hdnFldcurrSeq":      "",
		"multiFactorAuth$hdnFldconsumerType": "",
		"txtPunchMsg":                        "",
		"btnLogin":                           "Employee+Web+Services",
		"hiddenGPSCoords":                    "",
		"btnLogin_PosX":                      "118",
		"btnLogin_PosY":                      "450",
		"hCpuClass":                          "undefined",
		"hBrowserName":                       "Netscape",
		"hBrowserVersion":                    "5.0+(Windows)",
		"hUserPlatform":                      "Win32",
		"hScreenWidth":                       "1920",
		"hScreenHeight":                      "1080",
		"totalCount":                         "0",
	} {
		form.Set(key, value)
	}

	for key, value := range scraped {
		if !form.Has(key) {
			c.log.Warn("login page hidden field not in request form",
				"field", key, "value", value)
		}
	}
	return form, nil
}

// Login authenticates the session: harvest the kiosk landing page, POST
// the credential form, then bootstrap the user identity and the current
// pay period from the session endpoints.
func (c *Client) Login(ctx context.Context) (timesheet.DatePeriod, error) {
	var none timesheet.DatePeriod

	kiosk := fmt.Sprintf("https://%s/novatime/ewskiosk.aspx", c.cfg.Host)
	params := url.Values{"CID": {c.cfg.CID}}
	c.log.Debug("requesting portal landing page", "url", kiosk)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, kiosk+"?"+params.Encode(), nil)
	if err != nil {
		return none, fmt.Errorf("creating landing request: %w", err)
	}
	c.prepare(req)
	resp, err := c.http.Do(req)
	if err != nil {
		return none, fmt.Errorf("fetching landing page: %w", err)
	}
	page, err := html.Parse(resp.Body)
	resp.Body.Close()
	if err != nil {
		return none, fmt.Errorf("parsing landing page: %w", err)
	}

	form, err := c.buildLoginForm(scrapeHiddenInputs(page))
	if err != nil {
		return none, err
	}

	c.log.Debug("logging in", "user", c.cfg.Username)
	req, err = http.NewRequestWithContext(ctx, http.MethodPost,
		kiosk+"?"+params.Encode(), strings.NewReader(form.Encode()))
	if err != nil {
		return none, fmt.Errorf("creating login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	c.prepare(req)
	resp, err = c.http.Do(req)
	if err != nil {
		return none, fmt.Errorf("posting login form: %w", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return none, fmt.Errorf("login rejected: %d %s", resp.StatusCode, resp.Status)
	}

	period, err := c.bootstrapSession(ctx)
	if err != nil {
		return none, err
	}
	return period, nil
}

// bootstrapSession pulls the SessionVariable and employee records that
// carry the sequence identifiers every later request needs.
func (c *Client) bootstrapSession(ctx context.Context) (timesheet.DatePeriod, error) {
	var none timesheet.DatePeriod

	var sessionPayload map[string]any
	if err := c.getJSON(ctx, c.apiURL("SessionVariable"), nil, &sessionPayload); err != nil {
		return none, fmt.Errorf("fetching session variables: %w", err)
	}
	session := adoToMap(sessionPayload)
	if session == nil {
		return none, &NotAuthorizedError{Missing: "DataList"}
	}

	c.user.Username = c.cfg.Username
	c.user.UserSeq = session["USERSEQ"]
	if c.user.UserSeq == "" {
		c.user.UserSeq = "0"
	}
	c.user.EmployeeSeq = session["EMPSEQ"]
	c.loggedIn = true

	start, err := nvtime.ParseDate(session["PPSTART"])
	if err != nil {
		return none, fmt.Errorf("session pay period start: %w", err)
	}
	end, err := nvtime.ParseDate(session["PPEND"])
	if err != nil {
		return none, fmt.Errorf("session pay period end: %w", err)
	}
	period, err := timesheet.NewDatePeriod(start, end)
	if err != nil {
		return none, err
	}

	var employee struct {
		Data struct {
			AccessSeq int    `json:"iAccessSeq"`
			FirstName string `json:"cFirstName"`
			LastName  string `json:"cLastName"`
			FullName  string `json:"cFullName"`
		} `json:"Data"`
	}
	if err := c.getJSON(ctx, c.apiURL("employee/"+c.user.EmployeeSeq), nil, &employee); err != nil {
		return none, fmt.Errorf("fetching employee record: %w", err)
	}
	c.user.AccessSeq = fmt.Sprint(employee.Data.AccessSeq)
	c.user.FirstName = employee.Data.FirstName
	c.user.LastName = employee.Data.LastName
	c.user.FullName = employee.Data.FullName

	c.log.Debug("session established",
		"user", c.user.Username,
		"user_seq", c.user.UserSeq,
		"employee_seq", c.user.EmployeeSeq,
		"access_seq", c.user.AccessSeq,
		"pay_period", period.String())
	return period, nil
}
