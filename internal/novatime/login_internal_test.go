package novatime

import (
	"strings"
	"testing"

	"golang.org/x/net/html"
)

const loginPageHTML = `<!DOCTYPE html>
<html><body>
<form method="post" action="./ewskiosk.aspx">
<input type="hidden" name="__EVENTTARGET" id="__EVENTTARGET" value="" />
<input type="hidden" name="__EVENTARGUMENT" id="__EVENTARGUMENT" value="" />
<input type="hidden" name="__VIEWSTATE" id="__VIEWSTATE" value="dDwtMTI3OTMzNDM4NDs7Pg==" />
<input type="hidden" name="__VIEWSTATEGENERATOR" id="__VIEWSTATEGENERATOR" value="CA0B0334" />
<input type="hidden" name="__VIEWSTATEENCRYPTED" id="__VIEWSTATEENCRYPTED" value="" />
<input type="hidden" name="__RequestVerificationToken" id="__RequestVerificationToken" value="tok123" />
<input type="hidden" name="hiddenGPSCoords" id="hiddenGPSCoords" value="" />
<input type="text" name="txtUserName" id="txtUserName" />
<input type="password" name="txtPassword" id="txtPassword" />
</form>
</body></html>`

func parsePage(t *testing.T, src string) []hiddenInput {
	t.Helper()
	root, err := html.Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("parsing fixture: %v", err)
	}
	return scrapeHiddenInputs(root)
}

func testClient(t *testing.T) *Client {
	t.Helper()
	c, err := New(Config{
		Host:     "portal.example.com",
		Page:     "api",
		CID:      "12345",
		Username: "afraser",
		Password: "hunter2",
	})
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func TestScrapeHiddenInputs(t *testing.T) {
	inputs := parsePage(t, loginPageHTML)

	// Only the hidden inputs are harvested; the credential text boxes
	// are not.
	if len(inputs) != 7 {
		t.Fatalf("scraped %d inputs, want 7", len(inputs))
	}

	byID := map[string]string{}
	for _, in := range inputs {
		byID[in.ID] = in.Value
	}
	if byID["__VIEWSTATE"] != "dDwtMTI3OTMzNDM4NDs7Pg==" {
		t.Errorf("__VIEWSTATE = %q", byID["__VIEWSTATE"])
	}
	if byID["__RequestVerificationToken"] != "tok123" {
		t.Errorf("token = %q", byID["__RequestVerificationToken"])
	}
	if _, ok := byID["txtUserName"]; ok {
		t.Error("credential text box scraped as hidden input")
	}
}

func TestBuildLoginForm(t *testing.T) {
	c := testClient(t)

	form, err := c.buildLoginForm(parsePage(t, loginPageHTML))
	if err != nil {
		t.Fatalf("buildLoginForm: %v", err)
	}

	if got := form.Get("__VIEWSTATE"); got != "dDwtMTI3OTMzNDM4NDs7Pg==" {
		t.Errorf("__VIEWSTATE = %q", got)
	}
	if got := form.Get("txtUserName"); got != "afraser" {
		t.Errorf("txtUserName = %q", got)
	}
	if got := form.Get("txtPassword"); got != "hunter2" {
		t.Errorf("txtPassword = %q", got)
	}
	if got := form.Get("btnLogin"); got != "Employee+Web+Services" {
		t.Errorf("btnLogin = %q", got)
	}
	if got := form.Get("hUserAgent"); got != defaultUserAgent {
		t.Errorf("hUserAgent = %q", got)
	}
}

func TestBuildLoginFormMissingField(t *testing.T) {
	c := testClient(t)

	// Strip the anti-forgery token from the page.
	page := strings.Replace(loginPageHTML,
		`name="__RequestVerificationToken" id="__RequestVerificationToken"`,
		`name="somethingElse" id="somethingElse"`, 1)

	_, err := c.buildLoginForm(parsePage(t, page))
	if err == nil {
		t.Fatal("buildLoginForm accepted page without verification token")
	}
	if !strings.Contains(err.Error(), "__RequestVerificationToken") {
		t.Errorf("error does not name the missing field: %v", err)
	}
}

func TestAdoToMap(t *testing.T) {
	payload := map[string]any{
		"DataList": []any{
			map[string]any{"Key": "USERSEQ", "Value": "1234"},
			map[string]any{"Key": "EMPSEQ", "Value": "5150"},
			map[string]any{"Key": "PPSTART", "Value": "6/20/2022"},
		},
	}

	session := adoToMap(payload)
	if session["USERSEQ"] != "1234" || session["EMPSEQ"] != "5150" {
		t.Errorf("adoToMap = %v", session)
	}
	if session["PPSTART"] != "6/20/2022" {
		t.Errorf("PPSTART = %q", session["PPSTART"])
	}

	if got := adoToMap(map[string]any{"other": 1}); got != nil {
		t.Errorf("adoToMap without DataList = %v, want nil", got)
	}
}
