package i18n

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
	"gopkg.in/yaml.v3"

	"github.com/vango-dev/siteheader/internal/errors"
)

// BaseLocale is the canonical source locale. Every message must exist here.
const BaseLocale = "en-US"

var baseTag = language.MustParse(BaseLocale)

//go:embed locales/*/*.yaml
var embeddedFS embed.FS

var defaultCatalog = mustLoadEmbedded()

type catalogFile struct {
	Locale    string               `yaml:"locale"`
	Namespace string               `yaml:"namespace"`
	Messages  map[MessageID]string `yaml:"messages"`
}

// Catalog holds compiled messages for every supported locale.
type Catalog struct {
	builder  *catalog.Builder
	tags     []language.Tag // base locale first
	matcher  language.Matcher
	messages map[string]map[MessageID]string // keyed by tag string
}

// DefaultCatalog returns the process-wide embedded catalog.
func DefaultCatalog() *Catalog {
	return defaultCatalog
}

// Default returns a localizer for the base locale of the embedded catalog.
func Default() Localizer {
	return defaultCatalog.Localizer(baseTag)
}

// LoadEmbedded loads the catalogs compiled into this package.
func LoadEmbedded() (*Catalog, error) {
	return Load(embeddedFS)
}

// Load reads locales/<locale>/*.yaml from fsys. A file's locale must match
// its directory, it may only define known messages, and the base locale must
// define all of them.
func Load(fsys fs.FS) (*Catalog, error) {
	paths, err := fs.Glob(fsys, "locales/*/*.yaml")
	if err != nil {
		return nil, errors.New("E140").Wrap(fmt.Errorf("glob locale catalogs: %w", err))
	}
	if len(paths) == 0 {
		return nil, errors.New("E140").WithDetail("No locales/<locale>/*.yaml files were found.")
	}
	sort.Strings(paths)

	raw := map[string]map[MessageID]string{}
	parsed := map[string]language.Tag{}
	for _, p := range paths {
		tag, messages, err := readFile(fsys, p)
		if err != nil {
			return nil, err
		}
		key := tag.String()
		if raw[key] == nil {
			raw[key] = map[MessageID]string{}
			parsed[key] = tag
		}
		for id, text := range messages {
			if _, dup := raw[key][id]; dup {
				return nil, errors.New("E140").WithField(p).
					WithDetail(fmt.Sprintf("Message %q is defined twice for %s.", id, tag))
			}
			raw[key][id] = text
		}
	}

	base, ok := raw[baseTag.String()]
	if !ok {
		return nil, errors.New("E140").
			WithDetail(fmt.Sprintf("The base locale %s has no catalog.", BaseLocale))
	}
	for _, id := range MessageIDs() {
		if strings.TrimSpace(base[id]) == "" {
			return nil, errors.New("E140").WithField(string(id)).
				WithDetail(fmt.Sprintf("The base locale %s does not define %q.", BaseLocale, id))
		}
	}

	c := &Catalog{
		builder:  catalog.NewBuilder(catalog.Fallback(baseTag)),
		tags:     []language.Tag{baseTag},
		messages: map[string]map[MessageID]string{},
	}
	others := make([]language.Tag, 0, len(raw))
	for key, tag := range parsed {
		if key != baseTag.String() {
			others = append(others, tag)
		}
	}
	sort.Slice(others, func(i, j int) bool { return others[i].String() < others[j].String() })
	c.tags = append(c.tags, others...)

	for _, tag := range c.tags {
		resolved := make(map[MessageID]string, len(base))
		for _, id := range MessageIDs() {
			text, ok := raw[tag.String()][id]
			if !ok || strings.TrimSpace(text) == "" {
				text = base[id]
			}
			resolved[id] = text
			// Catalog strings are printf formats; the header only uses
			// {name} placeholders.
			if err := c.builder.SetString(tag, string(id), strings.ReplaceAll(text, "%", "%%")); err != nil {
				return nil, errors.New("E140").WithField(string(id)).Wrap(err)
			}
		}
		c.messages[tag.String()] = resolved
	}
	c.matcher = language.NewMatcher(c.tags)
	return c, nil
}

func readFile(fsys fs.FS, p string) (language.Tag, map[MessageID]string, error) {
	data, err := fs.ReadFile(fsys, p)
	if err != nil {
		return language.Und, nil, errors.New("E140").WithField(p).Wrap(err)
	}

	var file catalogFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		return language.Und, nil, errors.New("E140").WithField(p).Wrap(err)
	}

	dir := path.Base(path.Dir(p))
	if file.Locale != dir {
		return language.Und, nil, errors.New("E140").WithField(p).
			WithDetail(fmt.Sprintf("Catalog locale %q must match its directory %q.", file.Locale, dir))
	}
	tag, err := language.Parse(file.Locale)
	if err != nil {
		return language.Und, nil, errors.New("E140").WithField(p).Wrap(err)
	}
	if ns := strings.TrimSuffix(path.Base(p), path.Ext(p)); file.Namespace != ns {
		return language.Und, nil, errors.New("E140").WithField(p).
			WithDetail(fmt.Sprintf("Catalog namespace %q must match its file name %q.", file.Namespace, ns))
	}
	for id := range file.Messages {
		if !knownMessage(id) {
			return language.Und, nil, errors.New("E140").WithField(p).
				WithDetail(fmt.Sprintf("Unknown message %q.", id))
		}
	}
	return tag, file.Messages, nil
}

// Tags returns the supported locales, base locale first.
func (c *Catalog) Tags() []language.Tag {
	out := make([]language.Tag, len(c.tags))
	copy(out, c.tags)
	return out
}

// Match picks the best supported locale for an Accept-Language header value.
// Unparseable or unmatched input yields the base locale.
func (c *Catalog) Match(acceptLanguage string) language.Tag {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return baseTag
	}
	_, index, confidence := c.matcher.Match(tags...)
	if confidence == language.No {
		return baseTag
	}
	return c.tags[index]
}

// Lookup resolves an explicitly requested locale, such as a ?lang= value or
// the configured locale. Unlike Match it fails when nothing fits.
func (c *Catalog) Lookup(locale string) (language.Tag, error) {
	tag, err := language.Parse(strings.TrimSpace(locale))
	if err != nil {
		return language.Und, errors.New("E141").WithField(locale).Wrap(err)
	}
	_, index, confidence := c.matcher.Match(tag)
	if confidence < language.High {
		return language.Und, errors.New("E141").WithField(locale).
			WithSuggestion(fmt.Sprintf("Use one of %s", joinTags(c.tags)))
	}
	return c.tags[index], nil
}

// Message returns the resolved text for id in tag, without substitutions.
func (c *Catalog) Message(tag language.Tag, id MessageID) (string, bool) {
	text, ok := c.messages[tag.String()][id]
	return text, ok
}

// Localizer returns a Localizer for tag. Unsupported tags are matched to the
// closest supported locale.
func (c *Catalog) Localizer(tag language.Tag) *Printer {
	if _, ok := c.messages[tag.String()]; !ok {
		_, index, _ := c.matcher.Match(tag)
		tag = c.tags[index]
	}
	return &Printer{
		tag:     tag,
		printer: message.NewPrinter(tag, message.Catalog(c.builder)),
	}
}

// Printer is a Localizer backed by an x/text message printer.
type Printer struct {
	tag     language.Tag
	printer *message.Printer
}

// Tag returns the locale this printer formats for.
func (p *Printer) Tag() language.Tag { return p.tag }

// FormatMessage returns the message for id with {name} placeholders replaced
// from subs. Placeholders without a substitution are left as they are.
func (p *Printer) FormatMessage(id MessageID, subs map[string]string) string {
	text := p.printer.Sprintf(string(id))
	if len(subs) == 0 {
		return text
	}

	keys := make([]string, 0, len(subs))
	for k := range subs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	pairs := make([]string, 0, 2*len(keys))
	for _, k := range keys {
		pairs = append(pairs, "{"+k+"}", subs[k])
	}
	return strings.NewReplacer(pairs...).Replace(text)
}

func joinTags(tags []language.Tag) string {
	names := make([]string, len(tags))
	for i, t := range tags {
		names[i] = t.String()
	}
	return strings.Join(names, ", ")
}

func mustLoadEmbedded() *Catalog {
	c, err := LoadEmbedded()
	if err != nil {
		panic(err)
	}
	return c
}
