// Package l10n is the single seam through which every player-facing string
// and every input pattern passes. Keys are the English source text, in the
// manner of gettext; a catalog maps keys to their translation for one
// language. Keys without a translation fall back to the key itself.
package l10n

import (
	"embed"
	"fmt"
	"io"
	"io/fs"
	"path"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
	"gopkg.in/yaml.v3"
)

// SourceLanguage is the language keys are written in.
var SourceLanguage = language.English

//go:embed catalogs/*.yaml
var builtinFS embed.FS

// Translator produces localized text and patterns.
type Translator interface {
	// Text translates key and formats it with args, fmt-style.
	Text(key string, args ...any) string
	// Pattern translates a regular expression source. It is never formatted.
	Pattern(key string) string
	// Language is the negotiated language.
	Language() language.Tag
}

// Catalog is one language's translations as stored on disk.
type Catalog struct {
	Language string            `yaml:"language"`
	Messages map[string]string `yaml:"messages"`
	Patterns map[string]string `yaml:"patterns"`
}

// Tag parses the catalog's language.
func (c *Catalog) Tag() (language.Tag, error) {
	return language.Parse(c.Language)
}

// LoadCatalog decodes a YAML catalog.
func LoadCatalog(r io.Reader) (*Catalog, error) {
	var c Catalog
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}
	if c.Language == "" {
		return nil, fmt.Errorf("catalog language is required")
	}
	if _, err := c.Tag(); err != nil {
		return nil, fmt.Errorf("catalog language %q: %w", c.Language, err)
	}
	return &c, nil
}

// LoadCatalogs decodes every *.yaml file in dir of fsys.
func LoadCatalogs(fsys fs.FS, dir string) ([]*Catalog, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog dir %s: %w", dir, err)
	}

	var cats []*Catalog
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".yaml") {
			continue
		}
		f, err := fsys.Open(path.Join(dir, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to open catalog %s: %w", e.Name(), err)
		}
		c, err := LoadCatalog(f)
		_ = f.Close()
		if err != nil {
			return nil, fmt.Errorf("catalog %s: %w", e.Name(), err)
		}
		cats = append(cats, c)
	}
	return cats, nil
}

// BuiltinCatalogs returns the engine's own catalogs.
func BuiltinCatalogs() ([]*Catalog, error) {
	return LoadCatalogs(builtinFS, "catalogs")
}

// Bundle merges catalogs from several sources and negotiates a language.
type Bundle struct {
	builder  *catalog.Builder
	patterns map[language.Tag]map[string]string
	tags     []language.Tag
	matcher  language.Matcher
}

// NewBundle builds a bundle from catalogs. Later catalogs override earlier
// ones for the same language and key.
func NewBundle(cats ...*Catalog) (*Bundle, error) {
	b := &Bundle{
		builder:  catalog.NewBuilder(catalog.Fallback(SourceLanguage)),
		patterns: map[language.Tag]map[string]string{},
		tags:     []language.Tag{SourceLanguage},
	}

	for _, c := range cats {
		tag, err := c.Tag()
		if err != nil {
			return nil, fmt.Errorf("catalog language %q: %w", c.Language, err)
		}
		b.addTag(tag)

		for key, msg := range c.Messages {
			if err := b.builder.SetString(tag, key, msg); err != nil {
				return nil, fmt.Errorf("catalog %s: message %q: %w", tag, key, err)
			}
		}
		if b.patterns[tag] == nil {
			b.patterns[tag] = map[string]string{}
		}
		for key, p := range c.Patterns {
			b.patterns[tag][key] = p
		}
	}

	b.matcher = language.NewMatcher(b.tags)
	return b, nil
}

// DefaultBundle is a bundle of the builtin catalogs plus extra.
func DefaultBundle(extra ...*Catalog) (*Bundle, error) {
	cats, err := BuiltinCatalogs()
	if err != nil {
		return nil, err
	}
	return NewBundle(append(cats, extra...)...)
}

func (b *Bundle) addTag(tag language.Tag) {
	for _, t := range b.tags {
		if t == tag {
			return
		}
	}
	b.tags = append(b.tags, tag)
}

// Languages lists the languages the bundle can serve, source language first.
func (b *Bundle) Languages() []language.Tag {
	return append([]language.Tag(nil), b.tags...)
}

// Translator negotiates the closest supported language to locale and
// returns a translator for it. An empty locale selects the source language.
func (b *Bundle) Translator(locale string) (Translator, error) {
	if locale == "" {
		return b.translatorFor(SourceLanguage), nil
	}
	want, err := ParseLocale(locale)
	if err != nil {
		return nil, err
	}
	_, idx, conf := b.matcher.Match(want)
	if conf == language.No {
		return b.translatorFor(SourceLanguage), nil
	}
	return b.translatorFor(b.tags[idx]), nil
}

func (b *Bundle) translatorFor(tag language.Tag) *translator {
	return &translator{
		tag:      tag,
		printer:  message.NewPrinter(tag, message.Catalog(b.builder)),
		patterns: b.patterns[tag],
	}
}

// ParseLocale accepts POSIX style identifiers ("ru_RU.UTF-8") as well as
// BCP 47 tags ("ru-RU").
func ParseLocale(locale string) (language.Tag, error) {
	s := locale
	if i := strings.IndexAny(s, ".@"); i >= 0 {
		s = s[:i]
	}
	s = strings.ReplaceAll(s, "_", "-")
	if s == "C" || s == "POSIX" {
		return SourceLanguage, nil
	}
	tag, err := language.Parse(s)
	if err != nil {
		return language.Und, fmt.Errorf("invalid locale %q: %w", locale, err)
	}
	return tag, nil
}

type translator struct {
	tag      language.Tag
	printer  *message.Printer
	patterns map[string]string
}

func (t *translator) Text(key string, args ...any) string {
	return t.printer.Sprintf(key, args...)
}

func (t *translator) Pattern(key string) string {
	if p, ok := t.patterns[key]; ok {
		return p
	}
	return key
}

func (t *translator) Language() language.Tag {
	return t.tag
}

// Source returns a translator that hands back keys untranslated.
func Source() Translator {
	return &translator{
		tag:     SourceLanguage,
		printer: message.NewPrinter(SourceLanguage, message.Catalog(catalog.NewBuilder())),
	}
}
