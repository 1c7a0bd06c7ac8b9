// Package i18n holds the translation catalog and language negotiation for the
// shell. Message keys are the English source strings; the he and ar catalogs
// translate them, and a missing translation prints the key itself.
package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

//go:embed locales/*.json
var embedded embed.FS

// Translator formats a localized message. *message.Printer satisfies it.
type Translator interface {
	Sprintf(key message.Reference, a ...interface{}) string
}

// Language describes one supported UI language.
type Language struct {
	Code string
	Name string
	Dir  string
	Tag  language.Tag
}

// RTL reports whether the language is written right to left.
func (l Language) RTL() bool { return l.Dir == "rtl" }

// Languages is the list offered by the language switcher, in display order.
var Languages = []Language{
	{Code: "he", Name: "עברית", Dir: "rtl", Tag: language.Hebrew},
	{Code: "en", Name: "English", Dir: "ltr", Tag: language.English},
	{Code: "ar", Name: "العربية", Dir: "rtl", Tag: language.Arabic},
}

// Lookup returns the supported language with the given code.
func Lookup(code string) (Language, bool) {
	for _, l := range Languages {
		if l.Code == code {
			return l, true
		}
	}
	return Language{}, false
}

// Bundle owns the active catalog and negotiates languages. The catalog is
// swapped atomically on Reload, so printers can be created concurrently.
type Bundle struct {
	fallback Language
	matcher  language.Matcher
	ordered  []Language
	dir      string
	cat      atomic.Pointer[catalog.Builder]
}

// NewBundle builds a bundle whose fallback is defaultCode. When dir is not
// empty, JSON files found there override the embedded translations.
func NewBundle(defaultCode, dir string) (*Bundle, error) {
	fallback, ok := Lookup(defaultCode)
	if !ok {
		return nil, fmt.Errorf("i18n: unsupported default language %q", defaultCode)
	}

	// The matcher falls back to its first tag, so the default goes first.
	ordered := []Language{fallback}
	for _, l := range Languages {
		if l.Code != fallback.Code {
			ordered = append(ordered, l)
		}
	}
	tags := make([]language.Tag, len(ordered))
	for i, l := range ordered {
		tags[i] = l.Tag
	}

	b := &Bundle{
		fallback: fallback,
		matcher:  language.NewMatcher(tags),
		ordered:  ordered,
		dir:      dir,
	}
	if err := b.Reload(); err != nil {
		return nil, err
	}
	return b, nil
}

// Fallback returns the default language.
func (b *Bundle) Fallback() Language { return b.fallback }

// Printer returns a printer for the language code, or for the fallback when the
// code is not supported.
func (b *Bundle) Printer(code string) *message.Printer {
	lang, ok := Lookup(code)
	if !ok {
		lang = b.fallback
	}
	return message.NewPrinter(lang.Tag, message.Catalog(b.cat.Load()))
}

// Negotiate picks the UI language: a stored preference wins, then the browser's
// Accept-Language header, then the fallback.
func (b *Bundle) Negotiate(preferred, acceptLanguage string) Language {
	if l, ok := Lookup(preferred); ok {
		return l
	}
	if acceptLanguage == "" {
		return b.fallback
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return b.fallback
	}
	_, idx, conf := b.matcher.Match(tags...)
	if conf == language.No {
		return b.fallback
	}
	return b.ordered[idx]
}

// Reload rebuilds the catalog from the embedded locales and the override dir.
func (b *Bundle) Reload() error {
	builder := catalog.NewBuilder()

	if err := loadLocales(builder, embedded, "locales"); err != nil {
		return err
	}
	if b.dir != "" {
		if _, err := os.Stat(b.dir); err == nil {
			if err := loadLocales(builder, os.DirFS(b.dir), "."); err != nil {
				return err
			}
		} else {
			slog.Warn("Locales directory not readable, using embedded translations", "dir", b.dir, "error", err)
		}
	}

	b.cat.Store(builder)
	return nil
}

// loadLocales reads <code>.json files from root and registers their entries.
func loadLocales(builder *catalog.Builder, fsys fs.FS, root string) error {
	entries, err := fs.ReadDir(fsys, root)
	if err != nil {
		return fmt.Errorf("i18n: read locales: %w", err)
	}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || filepath.Ext(name) != ".json" {
			continue
		}
		lang, ok := Lookup(strings.TrimSuffix(name, ".json"))
		if !ok {
			continue
		}
		data, err := fs.ReadFile(fsys, filepath.ToSlash(filepath.Join(root, name)))
		if err != nil {
			return fmt.Errorf("i18n: read %s: %w", name, err)
		}
		var messages map[string]string
		if err := json.Unmarshal(data, &messages); err != nil {
			return fmt.Errorf("i18n: decode %s: %w", name, err)
		}
		for key, msg := range messages {
			if err := builder.SetString(lang.Tag, key, msg); err != nil {
				return fmt.Errorf("i18n: %s: set %q: %w", name, key, err)
			}
		}
	}
	return nil
}
