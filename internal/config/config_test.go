package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vango-dev/siteheader/internal/errors"
	"github.com/vango-dev/siteheader/pkg/header"
	"github.com/vango-dev/siteheader/pkg/vdom"
)

const sampleYAML = `
locale: fr-FR
minimalHeader: true
stickyOnMobile: false
identity:
  logo: /logo.svg
  logoAltText: Acme
  logoDestination: /
mainMenu:
  - href: /
    label: Home
  - type: submenu
    href: /programs
    label: Programs
    items:
      - href: /programs/data
        label: Data
userMenu:
  - href: /profile
    label: Profile
loggedOutItems:
  - href: /signin
    label: Sign in
  - href: /register
    label: Register
server:
  address: 0.0.0.0:9000
  avatarURL: https://avatars.example.com/{username}.png
log:
  level: debug
  format: text
publish:
  bucket: fragments
  paths: [/, /programs]
`

func TestNew(t *testing.T) {
	cfg := New()

	if cfg.Server.Address != DefaultAddress {
		t.Errorf("Server.Address = %q, want %q", cfg.Server.Address, DefaultAddress)
	}
	if cfg.Server.UserHeader != DefaultUserHeader {
		t.Errorf("Server.UserHeader = %q, want %q", cfg.Server.UserHeader, DefaultUserHeader)
	}
	if cfg.Locale != "en-US" {
		t.Errorf("Locale = %q, want en-US", cfg.Locale)
	}
	if cfg.StickyOnMobile == nil || !*cfg.StickyOnMobile {
		t.Error("StickyOnMobile should default to true")
	}
	if cfg.Publish.Prefix != DefaultPublishPrefix {
		t.Errorf("Publish.Prefix = %q, want %q", cfg.Publish.Prefix, DefaultPublishPrefix)
	}
}

func TestLoad(t *testing.T) {
	tmpDir := t.TempDir()

	_, err := Load(tmpDir)
	if !errors.HasCode(err, "E130") {
		t.Fatalf("Load(empty dir) error = %v, want E130", err)
	}

	if err := os.WriteFile(filepath.Join(tmpDir, ConfigFileName), []byte(sampleYAML), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Locale != "fr-FR" {
		t.Errorf("Locale = %q, want fr-FR", cfg.Locale)
	}
	if !cfg.MinimalHeader {
		t.Error("MinimalHeader should be true")
	}
	if cfg.Server.Address != "0.0.0.0:9000" {
		t.Errorf("Server.Address = %q", cfg.Server.Address)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "text" {
		t.Errorf("Log = %+v", cfg.Log)
	}
	if cfg.MainMenu[0].Type != "item" {
		t.Errorf("MainMenu[0].Type = %q, want item default", cfg.MainMenu[0].Type)
	}
	if got := strings.Join(cfg.PublishLocales(), ","); got != "fr-FR" {
		t.Errorf("PublishLocales() = %q, want the config locale", got)
	}
	if cfg.Dir() != tmpDir {
		t.Errorf("Dir() = %q, want %q", cfg.Dir(), tmpDir)
	}
	if cfg.Path() != filepath.Join(tmpDir, ConfigFileName) {
		t.Errorf("Path() = %q", cfg.Path())
	}
}

func TestFromReaderEmpty(t *testing.T) {
	cfg, err := FromReader(strings.NewReader(""))
	if err != nil {
		t.Fatalf("FromReader(empty) error = %v", err)
	}
	if cfg.Server.Address != DefaultAddress || cfg.Log.Format != "json" {
		t.Errorf("empty config should keep defaults: %+v", cfg)
	}
	if got := strings.Join(cfg.Publish.Paths, ","); got != "/" {
		t.Errorf("Publish.Paths = %q, want /", got)
	}
}

func TestLoadFileParseError(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)
	content := "locale: en-US\nunknownField: 1\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadFile(path)
	if !errors.HasCode(err, "E131") {
		t.Fatalf("LoadFile() error = %v, want E131", err)
	}
	he := errors.FromError(err, "E131")
	if he.Location == nil || he.Location.Line != 2 {
		t.Errorf("Location = %v, want line 2", he.Location)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		yaml  string
		code  string
		field string
	}{
		{"bad address", "server:\n  address: nope\n", "E132", "server.address"},
		{"bad log level", "log:\n  level: loud\n", "E132", "log.level"},
		{"bad log format", "log:\n  format: xml\n", "E132", "log.format"},
		{"unsupported locale", "locale: xx-XX\n", "E132", "locale"},
		{"unsupported publish locale", "publish:\n  locales: [en-US, zz]\n", "E132", "publish.locales[1]"},
		{"unknown menu type", "mainMenu:\n  - type: mega\n    href: /\n    label: Home\n", "E132", "mainMenu[0].type"},
		{"submenu without items", "mainMenu:\n  - type: submenu\n    href: /p\n    label: P\n", "E202", "mainMenu[0].items"},
		{"missing href", "mainMenu:\n  - label: Home\n", "E200", "mainMenu[0].href"},
		{"bad user kind", "userMenu:\n  - kind: widget\n    href: /p\n    label: P\n", "E211", "userMenu[0].kind"},
		{"missing action label", "loggedOutItems:\n  - href: /signin\n", "E220", "loggedOutItems[0].label"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromReader(strings.NewReader(tt.yaml))
			if !errors.HasCode(err, tt.code) {
				t.Fatalf("error = %v, want %s", err, tt.code)
			}
			if he := errors.FromError(err, tt.code); he.Field != tt.field {
				t.Errorf("Field = %q, want %q", he.Field, tt.field)
			}
		})
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("SITEHEADER_ADDRESS", "127.0.0.1:7000")
	t.Setenv("SITEHEADER_LOCALE", "de-DE")
	t.Setenv("SITEHEADER_MINIMAL_HEADER", "true")
	t.Setenv("SITEHEADER_LOG_LEVEL", "warn")
	t.Setenv("SITEHEADER_PUBLISH_BUCKET", "from-env")
	t.Setenv("SITEHEADER_PUBLISH_LOCALES", "en-US,pt-BR")

	cfg, err := FromReader(strings.NewReader("server:\n  address: localhost:1\n"))
	if err != nil {
		t.Fatalf("FromReader() error = %v", err)
	}

	if cfg.Server.Address != "127.0.0.1:7000" {
		t.Errorf("Server.Address = %q", cfg.Server.Address)
	}
	if cfg.Locale != "de-DE" {
		t.Errorf("Locale = %q", cfg.Locale)
	}
	if !cfg.MinimalHeader {
		t.Error("MinimalHeader should be overridden to true")
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("Log.Level = %q", cfg.Log.Level)
	}
	if cfg.Log.Format != "json" {
		t.Errorf("Log.Format = %q, unset variables must not clear values", cfg.Log.Format)
	}
	if cfg.Publish.Bucket != "from-env" {
		t.Errorf("Publish.Bucket = %q", cfg.Publish.Bucket)
	}
	if got := strings.Join(cfg.PublishLocales(), ","); got != "en-US,pt-BR" {
		t.Errorf("PublishLocales() = %q", got)
	}
}

func TestPublishLocalesFollowEnvLocale(t *testing.T) {
	t.Setenv("SITEHEADER_LOCALE", "de-DE")

	cfg, err := FromReader(strings.NewReader("locale: fr-FR\n"))
	if err != nil {
		t.Fatalf("FromReader() error = %v", err)
	}
	if got := strings.Join(cfg.PublishLocales(), ","); got != "de-DE" {
		t.Errorf("PublishLocales() = %q, want de-DE", got)
	}

	t.Setenv("SITEHEADER_LOCALE", "xx")
	_, err = FromReader(strings.NewReader(""))
	if !errors.HasCode(err, "E132") {
		t.Errorf("error = %v, want E132 for an unsupported env locale", err)
	}
}

func TestEnvOverrideInvalid(t *testing.T) {
	t.Setenv("SITEHEADER_MINIMAL_HEADER", "sometimes")

	_, err := FromReader(strings.NewReader(""))
	if !errors.HasCode(err, "E132") {
		t.Errorf("error = %v, want E132", err)
	}
}

func TestProps(t *testing.T) {
	cfg, err := FromReader(strings.NewReader(sampleYAML))
	if err != nil {
		t.Fatalf("FromReader() error = %v", err)
	}

	props := cfg.Props()
	if props.StickyOnMobile {
		t.Error("StickyOnMobile should follow the config")
	}
	if props.Identity.LogoDestination == nil || *props.Identity.LogoDestination != "/" {
		t.Error("logo destination not set")
	}

	entries, ok := props.MainMenu.(header.Entries)
	if !ok || len(entries) != 2 {
		t.Fatalf("MainMenu = %#v, want 2 entries", props.MainMenu)
	}
	if item, ok := entries[0].(header.Item); !ok || item.Href != "/" {
		t.Errorf("entries[0] = %#v", entries[0])
	}
	sub, ok := entries[1].(header.Submenu)
	if !ok {
		t.Fatalf("entries[1] = %#v, want Submenu", entries[1])
	}
	link := vdom.Find(sub.Content, vdom.ByTag("a"))
	if link == nil || link.Attr("href") != "/programs/data" || link.TextContent() != "Data" {
		t.Error("submenu items should become a link list")
	}

	if len(props.UserMenu) != 1 || props.UserMenu[0].Label != "Profile" {
		t.Errorf("UserMenu = %+v", props.UserMenu)
	}
	if len(props.LoggedOutItems) != 2 {
		t.Errorf("LoggedOutItems = %+v", props.LoggedOutItems)
	}
	if props.Session.LoggedIn {
		t.Error("config props are always signed out")
	}
	if err := props.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}

	if !cfg.Settings().MinimalHeader {
		t.Error("Settings().MinimalHeader should be true")
	}
}

func TestAvatarFor(t *testing.T) {
	cfg := New()
	if got := cfg.AvatarFor("alice"); got != "" {
		t.Errorf("AvatarFor without template = %q, want empty", got)
	}

	cfg.Server.AvatarURL = "https://a.example.com/{username}.png"
	tests := []struct {
		user string
		want string
	}{
		{"alice", "https://a.example.com/alice.png"},
		{"a b", "https://a.example.com/a%20b.png"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := cfg.AvatarFor(tt.user); got != tt.want {
			t.Errorf("AvatarFor(%q) = %q, want %q", tt.user, got, tt.want)
		}
	}
}

func TestFindProjectRoot(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, ConfigFileName), []byte(""), 0644); err != nil {
		t.Fatal(err)
	}
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}

	got, err := FindProjectRoot(nested)
	if err != nil {
		t.Fatalf("FindProjectRoot() error = %v", err)
	}
	if got != root {
		t.Errorf("FindProjectRoot() = %q, want %q", got, root)
	}

	if !Exists(root) || Exists(nested) {
		t.Error("Exists() mismatch")
	}
}
