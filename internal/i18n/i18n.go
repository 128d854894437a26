// Package i18n translates user-facing messages. Catalogs live in
// locales/<locale>.yaml, grouped by key prefix ("error", "success").
package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultLocale is used when the client asks for nothing we have.
	DefaultLocale = "en"
	// AcceptLanguageHeader carries the client's language preference.
	AcceptLanguageHeader = "Accept-Language"
)

//go:embed locales/*.yaml
var localeFS embed.FS

var (
	defaultTranslator *Translator
	translatorOnce    sync.Once
)

// Translator maps a key and locale to a message.
type Translator struct {
	messages map[string]map[string]string
}

// NewTranslator loads the embedded catalogs. It panics on a malformed
// catalog since they are compiled into the binary.
func NewTranslator() *Translator {
	t, err := Load(localeFS)
	if err != nil {
		panic(err)
	}
	return t
}

// Load reads every locales/*.yaml file of fsys.
func Load(fsys fs.FS) (*Translator, error) {
	files, err := fs.Glob(fsys, "locales/*.yaml")
	if err != nil {
		return nil, err
	}
	t := &Translator{messages: make(map[string]map[string]string, len(files))}
	for _, name := range files {
		raw, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, err
		}
		var groups map[string]map[string]string
		if err := yaml.Unmarshal(raw, &groups); err != nil {
			return nil, fmt.Errorf("locale %s: %w", name, err)
		}
		msgs := make(map[string]string)
		for group, entries := range groups {
			for key, msg := range entries {
				msgs[group+"."+key] = msg
			}
		}
		t.messages[strings.TrimSuffix(path.Base(name), ".yaml")] = msgs
	}
	if _, ok := t.messages[DefaultLocale]; !ok {
		return nil, fmt.Errorf("locale %s missing", DefaultLocale)
	}
	return t, nil
}

// GetTranslator returns the process-wide translator.
func GetTranslator() *Translator {
	translatorOnce.Do(func() {
		defaultTranslator = NewTranslator()
	})
	return defaultTranslator
}

// Locales lists the loaded locales in sorted order.
func (t *Translator) Locales() []string {
	out := make([]string, 0, len(t.messages))
	for l := range t.messages {
		out = append(out, l)
	}
	sort.Strings(out)
	return out
}

// Supports reports whether locale has a catalog.
func (t *Translator) Supports(locale string) bool {
	_, ok := t.messages[locale]
	return ok
}

// Translate returns the message for key in locale, then in DefaultLocale,
// then the key itself.
func (t *Translator) Translate(key, locale string) string {
	if msg, ok := t.messages[locale][key]; ok {
		return msg
	}
	if msg, ok := t.messages[DefaultLocale][key]; ok {
		return msg
	}
	return key
}

// GetLocale picks the supported language the client weights highest in
// Accept-Language. Region subtags are ignored ("pt-BR" selects "pt").
func GetLocale(c *gin.Context) string {
	return negotiate(GetTranslator(), c.GetHeader(AcceptLanguageHeader))
}

func negotiate(t *Translator, header string) string {
	best, bestQ := DefaultLocale, 0.0
	for _, part := range strings.Split(header, ",") {
		tag, params, _ := strings.Cut(strings.TrimSpace(part), ";")
		lang, _, _ := strings.Cut(strings.ToLower(strings.TrimSpace(tag)), "-")
		if !t.Supports(lang) {
			continue
		}
		q := 1.0
		if v, ok := strings.CutPrefix(strings.TrimSpace(params), "q="); ok {
			parsed, err := strconv.ParseFloat(v, 64)
			if err != nil {
				continue
			}
			q = parsed
		}
		if q > bestQ {
			best, bestQ = lang, q
		}
	}
	return best
}
