package config

import (
	"bytes"
	"io"
	"net"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/vango-dev/siteheader/internal/errors"
	"github.com/vango-dev/siteheader/internal/logging"
	"github.com/vango-dev/siteheader/pkg/header"
	"github.com/vango-dev/siteheader/pkg/i18n"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "siteheader.yaml"

	// DefaultAddress is the default preview server address.
	DefaultAddress = "localhost:8080"

	// DefaultUserHeader carries the authenticated username on requests.
	DefaultUserHeader = "X-Authenticated-User"

	// DefaultPublishPrefix is the default object key prefix for fragments.
	DefaultPublishPrefix = "header"

	// EnvPrefix prefixes every environment override.
	EnvPrefix = "SITEHEADER_"
)

// Config represents the complete siteheader.yaml configuration.
type Config struct {
	// Locale is the fallback locale when a request names none.
	Locale string `yaml:"locale,omitempty"`

	// MinimalHeader widens the desktop container and left-aligns the mobile logo.
	MinimalHeader bool `yaml:"minimalHeader,omitempty"`

	// StickyOnMobile pins the mobile header. Nil means true.
	StickyOnMobile *bool `yaml:"stickyOnMobile,omitempty"`

	Identity       IdentityConfig      `yaml:"identity,omitempty"`
	MainMenu       []MenuEntryConfig   `yaml:"mainMenu,omitempty"`
	UserMenu       []AccountLinkConfig `yaml:"userMenu,omitempty"`
	LoggedOutItems []AccountLinkConfig `yaml:"loggedOutItems,omitempty"`

	Server  ServerConfig  `yaml:"server,omitempty"`
	Log     LogConfig     `yaml:"log,omitempty"`
	Publish PublishConfig `yaml:"publish,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// IdentityConfig describes the site logo.
type IdentityConfig struct {
	Logo            string `yaml:"logo,omitempty"`
	LogoAltText     string `yaml:"logoAltText,omitempty"`
	LogoDestination string `yaml:"logoDestination,omitempty"`
}

// MenuEntryConfig is one main menu entry. Type is "item" or "submenu";
// submenus list their links under Items.
type MenuEntryConfig struct {
	Type  string       `yaml:"type,omitempty"`
	Href  string       `yaml:"href"`
	Label string       `yaml:"label"`
	Items []LinkConfig `yaml:"items,omitempty"`
}

// LinkConfig is a plain link inside a submenu.
type LinkConfig struct {
	Href  string `yaml:"href"`
	Label string `yaml:"label"`
}

// AccountLinkConfig is an account menu entry or a logged-out action.
type AccountLinkConfig struct {
	Kind  string `yaml:"kind,omitempty"`
	Href  string `yaml:"href"`
	Label string `yaml:"label"`
}

// ServerConfig contains preview server settings.
type ServerConfig struct {
	// Address is the host:port to listen on.
	Address string `yaml:"address,omitempty"`

	// UserHeader names the request header carrying the signed-in username.
	UserHeader string `yaml:"userHeader,omitempty"`

	// AvatarURL is a template; {username} is replaced with the escaped username.
	AvatarURL string `yaml:"avatarURL,omitempty"`

	// StyleSheets are linked from the /preview page.
	StyleSheets []string `yaml:"styleSheets,omitempty"`

	// Scripts are loaded (deferred) by the /preview page.
	Scripts []string `yaml:"scripts,omitempty"`
}

// LogConfig selects the log level and format.
type LogConfig struct {
	Level  string `yaml:"level,omitempty"`
	Format string `yaml:"format,omitempty"`
}

// PublishConfig controls fragment uploads.
type PublishConfig struct {
	Bucket  string   `yaml:"bucket,omitempty"`
	Prefix  string   `yaml:"prefix,omitempty"`
	Region  string   `yaml:"region,omitempty"`
	Paths   []string `yaml:"paths,omitempty"`
	// Locales defaults to the header locale; see Config.PublishLocales.
	Locales []string `yaml:"locales,omitempty"`
}

// overrides are the settings that may come from the environment.
type overrides struct {
	Address       string   `env:"ADDRESS"`
	UserHeader    string   `env:"USER_HEADER"`
	AvatarURL     string   `env:"AVATAR_URL"`
	Locale        string   `env:"LOCALE"`
	MinimalHeader bool     `env:"MINIMAL_HEADER"`
	LogLevel      string   `env:"LOG_LEVEL"`
	LogFormat     string   `env:"LOG_FORMAT"`
	Bucket        string   `env:"PUBLISH_BUCKET"`
	Prefix        string   `env:"PUBLISH_PREFIX"`
	Region        string   `env:"PUBLISH_REGION"`
	Locales       []string `env:"PUBLISH_LOCALES" envSeparator:","`
}

// New creates a new Config with default values.
func New() *Config {
	sticky := true
	return &Config{
		Locale:         i18n.BaseLocale,
		StickyOnMobile: &sticky,
		Server: ServerConfig{
			Address:    DefaultAddress,
			UserHeader: DefaultUserHeader,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		Publish: PublishConfig{
			Prefix: DefaultPublishPrefix,
		},
	}
}

// Load reads configuration from the specified directory.
// It looks for siteheader.yaml in the directory.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile reads configuration from the specified file path, applies
// environment overrides and validates the result.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("E130").
				WithDetail("No " + ConfigFileName + " found in " + filepath.Dir(path)).
				WithSuggestion("Create " + ConfigFileName + " or pass --config")
		}
		return nil, errors.New("E131").Wrap(err)
	}

	cfg, err := decode(bytes.NewReader(data), path)
	if err != nil {
		return nil, err
	}
	cfg.configPath = path
	return cfg, nil
}

// FromReader decodes, overrides and validates a configuration stream.
func FromReader(r io.Reader) (*Config, error) {
	return decode(r, "")
}

func decode(r io.Reader, path string) (*Config, error) {
	cfg := New()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && err != io.EOF {
		return nil, errors.New("E131").
			WithDetail("Failed to parse " + ConfigFileName + ": " + err.Error()).
			WithLocationFromError(path, err).
			WithSuggestion("Check the YAML syntax and field names")
	}

	cfg.applyDefaults()
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides settings from SITEHEADER_* environment variables.
// Variables that are not set leave the current value in place.
func (c *Config) ApplyEnv() error {
	o := overrides{
		Address:       c.Server.Address,
		UserHeader:    c.Server.UserHeader,
		AvatarURL:     c.Server.AvatarURL,
		Locale:        c.Locale,
		MinimalHeader: c.MinimalHeader,
		LogLevel:      c.Log.Level,
		LogFormat:     c.Log.Format,
		Bucket:        c.Publish.Bucket,
		Prefix:        c.Publish.Prefix,
		Region:        c.Publish.Region,
		Locales:       c.Publish.Locales,
	}
	if err := env.ParseWithOptions(&o, env.Options{Prefix: EnvPrefix}); err != nil {
		return errors.New("E132").
			WithDetail("Invalid environment override: " + err.Error()).
			Wrap(err)
	}

	c.Server.Address = o.Address
	c.Server.UserHeader = o.UserHeader
	c.Server.AvatarURL = o.AvatarURL
	c.Locale = o.Locale
	c.MinimalHeader = o.MinimalHeader
	c.Log.Level = o.LogLevel
	c.Log.Format = o.LogFormat
	c.Publish.Bucket = o.Bucket
	c.Publish.Prefix = o.Prefix
	c.Publish.Region = o.Region
	c.Publish.Locales = o.Locales
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the directory containing the config file.
func (c *Config) Dir() string {
	if c.configPath == "" {
		return ""
	}
	return filepath.Dir(c.configPath)
}

// PublishLocales returns the locales to publish: publish.locales when set,
// otherwise the header locale after environment overrides.
func (c *Config) PublishLocales() []string {
	if len(c.Publish.Locales) > 0 {
		return c.Publish.Locales
	}
	return []string{c.Locale}
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.Locale == "" {
		c.Locale = i18n.BaseLocale
	}
	if c.StickyOnMobile == nil {
		sticky := true
		c.StickyOnMobile = &sticky
	}
	if c.Server.Address == "" {
		c.Server.Address = DefaultAddress
	}
	if c.Server.UserHeader == "" {
		c.Server.UserHeader = DefaultUserHeader
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "json"
	}
	if c.Publish.Prefix == "" {
		c.Publish.Prefix = DefaultPublishPrefix
	}
	if len(c.Publish.Paths) == 0 {
		c.Publish.Paths = []string{"/"}
	}
	for i := range c.MainMenu {
		if c.MainMenu[i].Type == "" {
			c.MainMenu[i].Type = "item"
		}
	}
}

// Validate checks if the configuration is valid. Menu contract violations
// are reported with their header error codes.
func (c *Config) Validate() error {
	if _, _, err := net.SplitHostPort(c.Server.Address); err != nil {
		return errors.New("E132").
			WithField("server.address").
			WithDetail("Address must be host:port, got " + c.Server.Address).
			Wrap(err)
	}
	if _, ok := logging.ParseLevel(c.Log.Level); !ok {
		return errors.New("E132").
			WithField("log.level").
			WithDetail("Log level must be one of " + strings.Join(logging.Levels, ", "))
	}
	if !contains(logging.Formats, strings.ToLower(c.Log.Format)) {
		return errors.New("E132").
			WithField("log.format").
			WithDetail("Log format must be one of " + strings.Join(logging.Formats, ", "))
	}

	catalog := i18n.DefaultCatalog()
	if _, err := catalog.Lookup(c.Locale); err != nil {
		return errors.New("E132").WithField("locale").Wrap(err)
	}
	for i, l := range c.PublishLocales() {
		if _, err := catalog.Lookup(l); err != nil {
			return errors.New("E132").WithFieldf("publish.locales[%d]", i).Wrap(err)
		}
	}

	for i, e := range c.MainMenu {
		switch e.Type {
		case "item":
		case "submenu":
			if len(e.Items) == 0 {
				return errors.New("E202").WithFieldf("mainMenu[%d].items", i)
			}
		default:
			return errors.New("E132").
				WithFieldf("mainMenu[%d].type", i).
				WithDetail("Menu entry type must be item or submenu, got " + e.Type)
		}
	}

	props := c.Props()
	return props.Validate()
}

// Settings returns the global header settings.
func (c *Config) Settings() header.Settings {
	return header.Settings{MinimalHeader: c.MinimalHeader}
}

// Props converts the declarative menus into header props for a signed-out
// viewer. Callers add the session per request.
func (c *Config) Props() header.Props {
	opts := []header.Option{
		header.WithLogo(c.Identity.Logo, c.Identity.LogoAltText),
		header.WithStickyOnMobile(c.StickyOnMobile == nil || *c.StickyOnMobile),
	}
	if c.Identity.LogoDestination != "" {
		opts = append(opts, header.WithLogoDestination(c.Identity.LogoDestination))
	}

	entries := make([]header.MenuEntry, 0, len(c.MainMenu))
	for _, e := range c.MainMenu {
		if e.Type == "submenu" {
			links := make([]header.Link, 0, len(e.Items))
			for _, l := range e.Items {
				links = append(links, header.Link{Href: l.Href, Label: l.Label})
			}
			entries = append(entries, header.Submenu{Href: e.Href, Label: e.Label, Content: header.LinkList(links...)})
			continue
		}
		entries = append(entries, header.Item{Href: e.Href, Label: e.Label})
	}
	opts = append(opts, header.WithMainMenu(entries...))

	user := make([]header.AccountMenuEntry, 0, len(c.UserMenu))
	for _, l := range c.UserMenu {
		user = append(user, header.AccountMenuEntry{Kind: header.Kind(l.Kind), Href: l.Href, Label: l.Label})
	}
	opts = append(opts, header.WithUserMenu(user...))

	actions := make([]header.AnonymousAction, 0, len(c.LoggedOutItems))
	for _, l := range c.LoggedOutItems {
		actions = append(actions, header.AnonymousAction{Kind: header.Kind(l.Kind), Href: l.Href, Label: l.Label})
	}
	opts = append(opts, header.WithLoggedOutItems(actions...))

	return header.NewProps(opts...)
}

// AvatarFor expands the avatar URL template for username.
func (c *Config) AvatarFor(username string) string {
	if c.Server.AvatarURL == "" || username == "" {
		return ""
	}
	return strings.ReplaceAll(c.Server.AvatarURL, "{username}", url.PathEscape(username))
}

// LoggingOptions returns the logger options for this configuration.
func (c *Config) LoggingOptions() logging.Options {
	return logging.Options{Level: c.Log.Level, Format: c.Log.Format}
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ConfigFileName))
	return err == nil
}

// FindProjectRoot walks up directories to find the project root.
// Returns the directory containing siteheader.yaml, or an error if not found.
func FindProjectRoot(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		if Exists(dir) {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New("E130").
				WithDetail("No " + ConfigFileName + " found in " + startDir + " or any parent directory").
				WithSuggestion("Create " + ConfigFileName + " at the site root")
		}
		dir = parent
	}
}

// LoadFromWorkingDir loads configuration from the nearest siteheader.yaml
// at or above the current working directory.
func LoadFromWorkingDir() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	root, err := FindProjectRoot(wd)
	if err != nil {
		return nil, err
	}

	return Load(root)
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
