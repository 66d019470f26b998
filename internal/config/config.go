package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config is the root configuration, stored in ~/.novatime/config.json.
// The file supports single-line // comments for documentation purposes.
type Config struct {
	Portal  PortalConfig  `json:"portal"`
	Hours   HoursConfig   `json:"hours"`
	Outlook OutlookConfig `json:"outlook"`
}

// PortalConfig addresses the NOVATime deployment and carries the
// credentials for it.
type PortalConfig struct {
	// Host is the portal host, e.g. "online5.timeanywhere.com".
	Host string `json:"host"`
	// Page is the API page path under the host.
	Page string `json:"page"`
	// CID is the company id in the portal URL.
	CID      string `json:"cid"`
	Username string `json:"username"`
	Password string `json:"password"`
	// Timezone is the employer's IANA timezone; every portal timestamp is
	// interpreted in it.
	Timezone string `json:"timezone"`
}

// HoursConfig holds the weekly working-time target.
type HoursConfig struct {
	// WeekHours is the target working hours per week.
	WeekHours int `json:"week_hours"`
}

// OutlookConfig holds Microsoft Graph / Outlook calendar push settings.
type OutlookConfig struct {
	// TenantID is the Azure AD tenant. Use "common" for personal/multi-tenant accounts.
	TenantID string `json:"tenant_id"`
	// ClientID is the Azure app (client) ID for the OAuth2 device code flow.
	ClientID string `json:"client_id"`
	// Calendar is the subject prefix for pushed shift events.
	Calendar string `json:"calendar"`
}

const (
	// DefaultTimezone is the employer zone assumed when none is configured.
	DefaultTimezone = "America/Detroit"
	// DefaultWeekHours is the weekly target assumed when none is configured.
	DefaultWeekHours = 40
	// DefaultTenantID is the Microsoft "common" tenant (supports personal and
	// multi-tenant organisational accounts without additional registration).
	DefaultTenantID = "common"
	// DefaultClientID is the well-known public Azure CLI app ID.
	// It supports device code flow without a client secret and requires no
	// app registration. Replace with your own registered app ID for
	// organisational deployments.
	DefaultClientID = "04b07795-8542-4c4a-95af-30b2c573d5ab"
	// DefaultCalendar is the subject prefix used when none is configured.
	DefaultCalendar = "Work"
)

// defaultConfig returns a Config pre-filled with sensible defaults. The
// portal section has no usable defaults; callers gate on RequirePortal.
func defaultConfig() Config {
	return Config{
		Portal: PortalConfig{
			Timezone: DefaultTimezone,
		},
		Hours: HoursConfig{
			WeekHours: DefaultWeekHours,
		},
		Outlook: OutlookConfig{
			TenantID: DefaultTenantID,
			ClientID: DefaultClientID,
			Calendar: DefaultCalendar,
		},
	}
}

// configTemplate is the annotated config written on first run.
// Lines whose trimmed content starts with // are stripped before JSON
// parsing, allowing human-readable documentation inside the file.
const configTemplate = `// novatime configuration – ~/.novatime/config.json
//
// The portal section is required; everything else has workable defaults.
{
  // ── NOVATime portal ──────────────────────────────────────────────────────
  "portal": {
    // Portal host, page path, and company id, from your employer's portal URL:
    //   https://<host>/<page>/<cid>/...
    "host": "",
    "page": "",
    "cid": "",

    // Employee Web Services credentials.
    "username": "",
    "password": "",

    // Employer's IANA timezone; the portal sends zone-less timestamps that
    // are interpreted in this zone.
    "timezone": "America/Detroit"
  },

  // ── Working time ─────────────────────────────────────────────────────────
  "hours": {
    // Weekly working-time target, used for the remaining-hours report and
    // the clock-out prediction.
    "week_hours": 40
  },

  // ── Microsoft Graph / Outlook calendar push ──────────────────────────────
  "outlook": {
    // Azure AD tenant ID: "common", or your organisation's tenant GUID.
    "tenant_id": "common",

    // Azure application (client) ID used for the OAuth2 device code flow.
    // The built-in value is the public Azure CLI app – no app registration needed.
    "client_id": "04b07795-8542-4c4a-95af-30b2c573d5ab",

    // Subject prefix for pushed shift events.
    "calendar": "Work"
  }
}
`

// configFilePath returns the path to ~/.novatime/config.json.
func configFilePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".novatime", "config.json"), nil
}

// stripLineComments removes lines whose leading non-whitespace content starts
// with //. Only full-line comments are handled; inline comments are not stripped.
func stripLineComments(data []byte) []byte {
	var out []byte
	for _, line := range bytes.Split(data, []byte("\n")) {
		if bytes.HasPrefix(bytes.TrimLeft(line, " \t"), []byte("//")) {
			continue
		}
		out = append(out, line...)
		out = append(out, '\n')
	}
	return out
}

// Load reads ~/.novatime/config.json, creating it with annotated defaults
// on first run. Lines starting with // are treated as comments and
// stripped before JSON parsing.
func Load() (Config, error) {
	path, err := configFilePath()
	if err != nil {
		return defaultConfig(), err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		// First run: write the annotated template so users can discover options.
		if writeErr := writeDefault(path); writeErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not create config file %s: %v\n", path, writeErr)
		}
		return defaultConfig(), nil
	}
	if err != nil {
		return defaultConfig(), fmt.Errorf("reading config file %s: %w", path, err)
	}

	cleaned := stripLineComments(data)
	var cfg Config
	if err := json.Unmarshal(cleaned, &cfg); err != nil {
		return defaultConfig(), fmt.Errorf("parsing config file %s: %w\nTip: delete the file to regenerate defaults", path, err)
	}

	// Fill zero-value fields with built-in defaults so callers always get
	// a usable Config even if the user only partially fills in the file.
	if cfg.Portal.Timezone == "" {
		cfg.Portal.Timezone = DefaultTimezone
	}
	if cfg.Hours.WeekHours == 0 {
		cfg.Hours.WeekHours = DefaultWeekHours
	}
	if cfg.Outlook.TenantID == "" {
		cfg.Outlook.TenantID = DefaultTenantID
	}
	if cfg.Outlook.ClientID == "" {
		cfg.Outlook.ClientID = DefaultClientID
	}
	if cfg.Outlook.Calendar == "" {
		cfg.Outlook.Calendar = DefaultCalendar
	}

	return cfg, nil
}

// RequirePortal validates that the portal section is filled in.
func (c Config) RequirePortal() error {
	p := c.Portal
	if p.Host == "" || p.Page == "" || p.CID == "" || p.Username == "" || p.Password == "" {
		path, _ := configFilePath()
		return fmt.Errorf("portal configuration incomplete; fill in the portal section of %s", path)
	}
	return nil
}

// writeDefault creates the config directory and writes the annotated default
// config template.
func writeDefault(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(configTemplate), 0o600); err != nil {
		return fmt.Errorf("writing default config: %w", err)
	}
	return nil
}
