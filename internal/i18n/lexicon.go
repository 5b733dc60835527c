// Package i18n serves the bundled English and Kiswahili lexicons.
package i18n

import (
	"embed"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

// Language is a bundled lexicon code.
type Language string

const (
	English   Language = "en"
	Kiswahili Language = "sw"
)

// Fallback is consulted when a key is missing from the requested lexicon.
const Fallback = English

//go:embed locales/*.yaml
var localeFS embed.FS

// Catalog holds the parsed lexicons.
type Catalog struct {
	lexicons map[Language]map[string]string
}

// Load parses every bundled lexicon. English must define every key the
// other lexicons define.
func Load() (*Catalog, error) {
	c := &Catalog{lexicons: make(map[Language]map[string]string)}
	for _, lang := range []Language{English, Kiswahili} {
		raw, err := localeFS.ReadFile(fmt.Sprintf("locales/%s.yaml", lang))
		if err != nil {
			return nil, fmt.Errorf("read lexicon %s: %w", lang, err)
		}
		entries := make(map[string]string)
		if err := yaml.Unmarshal(raw, &entries); err != nil {
			return nil, fmt.Errorf("parse lexicon %s: %w", lang, err)
		}
		c.lexicons[lang] = entries
	}

	for lang, entries := range c.lexicons {
		for key := range entries {
			if _, ok := c.lexicons[Fallback][key]; !ok {
				return nil, fmt.Errorf("lexicon %s defines %q missing from %s", lang, key, Fallback)
			}
		}
	}
	return c, nil
}

// MustLoad is Load for program start-up.
func MustLoad() *Catalog {
	c, err := Load()
	if err != nil {
		panic(err)
	}
	return c
}

// ParseLanguage validates a language code.
func (c *Catalog) ParseLanguage(code string) (Language, error) {
	lang := Language(code)
	if _, ok := c.lexicons[lang]; !ok {
		return "", fmt.Errorf("unsupported language %q", code)
	}
	return lang, nil
}

// Languages lists the bundled language codes, sorted.
func (c *Catalog) Languages() []Language {
	out := make([]Language, 0, len(c.lexicons))
	for lang := range c.lexicons {
		out = append(out, lang)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// T translates key, falling back to English and finally to the key itself.
func (c *Catalog) T(lang Language, key string) string {
	if v, ok := c.lexicons[lang][key]; ok {
		return v
	}
	if v, ok := c.lexicons[Fallback][key]; ok {
		return v
	}
	return key
}

// Lexicon returns the full lexicon for lang with English filling the gaps.
func (c *Catalog) Lexicon(lang Language) map[string]string {
	out := make(map[string]string, len(c.lexicons[Fallback]))
	for k, v := range c.lexicons[Fallback] {
		out[k] = v
	}
	for k, v := range c.lexicons[lang] {
		out[k] = v
	}
	return out
}
