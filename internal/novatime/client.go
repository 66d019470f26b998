// Package novatime is the authenticated session client for the NOVATime
// employee web portal: an ASP.NET application that wants a full browser
// login dance before it will serve its JSON endpoints. The scraping here
// is as brittle as the portal deserves.
package novatime

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/url"

	"github.com/google/uuid"
)

// Config addresses one NOVATime deployment.
type Config struct {
	// Host is the portal host, e.g. "online5.timeanywhere.com".
	Host string
	// Page is the API page path under the host.
	Page string
	// CID is the company id assigned by the vendor.
	CID string

	Username string
	Password string

	// UserAgent is sent on every request; the portal inspects it.
	UserAgent string
}

const defaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64; rv:68.0) Gecko/20100101 Firefox/68.0"

// User is the identity the portal hands back at login. The sequence
// numbers are opaque vendor-assigned identifiers; they are never minted
// locally. Immutable once populated.
type User struct {
	Username    string
	UserSeq     string
	EmployeeSeq string
	AccessSeq   string
	FirstName   string
	LastName    string
	FullName    string
}

// Client is a logged-in session against one portal deployment. One client
// serves one user, serially; it holds no state safe for concurrent use.
type Client struct {
	cfg  Config
	http *http.Client
	user User
	log  *slog.Logger

	loggedIn bool
}

// Option configures a Client.
type Option func(*Client)

// WithLogger substitutes the diagnostics sink.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.log = l }
}

// WithHTTPClient substitutes the transport, e.g. for tests. A cookie jar
// is still installed if the client has none.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// New creates an unauthenticated client. Call Login before anything else.
func New(cfg Config, opts ...Option) (*Client, error) {
	if cfg.Host == "" || cfg.Page == "" || cfg.CID == "" {
		return nil, fmt.Errorf("portal host, page, and cid are all required")
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}

	c := &Client{
		cfg:  cfg,
		http: &http.Client{},
		log:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.http.Jar == nil {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, fmt.Errorf("creating cookie jar: %w", err)
		}
		c.http.Jar = jar
	}
	return c, nil
}

// User returns the identity populated by Login.
func (c *Client) User() User {
	return c.user
}

// apiURL builds an API endpoint URL: https://{host}/{page}/{cid}/{path}.
func (c *Client) apiURL(path string) string {
	return fmt.Sprintf("https://%s/%s/%s/%s", c.cfg.Host, c.cfg.Page, c.cfg.CID, path)
}

// prepare stamps the headers every portal request needs. The sequence
// headers are only known after login.
func (c *Client) prepare(req *http.Request) {
	req.Header.Set("User-Agent", c.cfg.UserAgent)
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")
	req.Header.Set("Locale", "en-US")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if c.loggedIn {
		req.Header.Set("UserSeq", c.user.UserSeq)
		req.Header.Set("EmployeeSeq", c.user.EmployeeSeq)
	}
}

// getJSON performs an authenticated GET and decodes the JSON body.
func (c *Client) getJSON(ctx context.Context, endpoint string, params url.Values, out any) error {
	if params != nil {
		endpoint = endpoint + "?" + params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	c.prepare(req)
	return c.doJSON(req, out)
}

// postJSON performs an authenticated POST with a JSON body and decodes
// the JSON response.
func (c *Client) postJSON(ctx context.Context, endpoint string, params url.Values, body, out any) error {
	if params != nil {
		endpoint = endpoint + "?" + params.Encode()
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encoding request body: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	c.prepare(req)
	return c.doJSON(req, out)
}

func (c *Client) doJSON(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("portal request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("portal error %d: %s", resp.StatusCode, resp.Status)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decoding portal response: %w", err)
	}
	return nil
}

// adoToMap flattens the ADO DataList shape ({"DataList":[{"Key":…,
// "Value":…}]}) that some portal endpoints return.
func adoToMap(payload map[string]any) map[string]string {
	list, ok := payload["DataList"].([]any)
	if !ok {
		return nil
	}
	out := make(map[string]string, len(list))
	for _, item := range list {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		key, _ := obj["Key"].(string)
		value, _ := obj["Value"].(string)
		out[key] = value
	}
	return out
}
