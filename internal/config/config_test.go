package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/agmlego/novatime/internal/config"
)

func TestLoadFirstRunWritesTemplate(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load on first run: %v", err)
	}
	if cfg.Portal.Timezone != config.DefaultTimezone {
		t.Errorf("timezone = %q", cfg.Portal.Timezone)
	}
	if cfg.Hours.WeekHours != config.DefaultWeekHours {
		t.Errorf("week hours = %d", cfg.Hours.WeekHours)
	}
	if cfg.Outlook.TenantID != config.DefaultTenantID {
		t.Errorf("tenant = %q", cfg.Outlook.TenantID)
	}

	// The annotated template lands on disk for the user to fill in.
	home, _ := os.UserHomeDir()
	data, err := os.ReadFile(filepath.Join(home, ".novatime", "config.json"))
	if err != nil {
		t.Fatalf("template file: %v", err)
	}
	if len(data) == 0 {
		t.Error("template file is empty")
	}

	// An unconfigured portal is caught before any network use.
	if err := cfg.RequirePortal(); err == nil {
		t.Error("RequirePortal passed with empty portal section")
	}
}

func TestLoadParsesCommentedConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	content := `// my portal setup
{
  "portal": {
    // company deployment
    "host": "online5.timeanywhere.com",
    "page": "novatime/wsdl.asmx",
    "cid": "C0FFEE",
    "username": "afraser",
    "password": "hunter2",
    "timezone": "America/Detroit"
  },
  "hours": {
    "week_hours": 36
  }
}
`
	dir := filepath.Join(home, ".novatime")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Portal.Host != "online5.timeanywhere.com" {
		t.Errorf("host = %q", cfg.Portal.Host)
	}
	if cfg.Hours.WeekHours != 36 {
		t.Errorf("week hours = %d", cfg.Hours.WeekHours)
	}
	// Sections the user omitted backfill from defaults.
	if cfg.Outlook.ClientID != config.DefaultClientID {
		t.Errorf("client id = %q", cfg.Outlook.ClientID)
	}
	if err := cfg.RequirePortal(); err != nil {
		t.Errorf("RequirePortal: %v", err)
	}
}

func TestLoadRejectsBadJSON(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, ".novatime")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte("{oops"), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := config.Load(); err == nil {
		t.Error("Load accepted malformed config")
	}
}
