// Package locale renders Calendar Round dates and user facing labels in
// the bundled languages. English uses the modern orthography, Spanish the
// colonial Yucatec spellings.
package locale

import (
	"embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/go-calendar-round/internal/config"
	"github.com/tartampluch/go-calendar-round/internal/cr"
	"github.com/tartampluch/go-calendar-round/internal/names"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

// Catalog holds every bundled translation.
type Catalog struct {
	bundle    *i18n.Bundle
	languages []string
}

// Load reads the embedded locale files. Files not named active.<lang>.json
// are skipped.
func Load() (*Catalog, error) {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrLocalesAccess, err)
	}

	var detected []string
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, "active.") || !strings.HasSuffix(name, ".json") {
			slog.Debug(config.MsgLocaleSkip,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
			)
			continue
		}

		langCode := strings.TrimSuffix(strings.TrimPrefix(name, "active."), ".json")
		if langCode == "" {
			slog.Warn(config.MsgLocaleBadName,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
			)
			continue
		}

		if _, err := bundle.LoadMessageFileFS(localeFS, "locales/"+name); err != nil {
			return nil, fmt.Errorf("%s %s: %w", config.ErrLocaleLoad, name, err)
		}
		detected = append(detected, langCode)
		slog.Debug(config.MsgLocaleLoaded,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyLang, langCode,
			config.LogKeyFile, name,
		)
	}

	return &Catalog{bundle: bundle, languages: detected}, nil
}

// Languages returns the codes of the loaded locales.
func (c *Catalog) Languages() []string {
	return slices.Clone(c.languages)
}

// Translator returns a translator for lang, which must be one of the loaded
// languages.
func (c *Catalog) Translator(lang string) (*Translator, error) {
	tag, err := language.Parse(lang)
	if err != nil {
		return nil, fmt.Errorf("%s %q: %w", config.ErrLangUnknown, lang, err)
	}
	base, _ := tag.Base()
	if !slices.Contains(c.languages, base.String()) {
		return nil, fmt.Errorf("%s %q", config.ErrLangUnknown, lang)
	}
	return &Translator{
		lang:      base.String(),
		localizer: i18n.NewLocalizer(c.bundle, tag.String()),
	}, nil
}

// Translator renders labels and dates in one language. It is safe for
// concurrent use.
type Translator struct {
	lang      string
	localizer *i18n.Localizer
}

// Lang returns the language code of the translator.
func (t *Translator) Lang() string {
	return t.lang
}

// Msg translates key, falling back to the key itself.
func (t *Translator) Msg(key string) string {
	return t.MsgWith(key, nil)
}

// MsgWith translates key with template data, falling back to the key itself.
func (t *Translator) MsgWith(key string, data map[string]any) string {
	msg, err := t.localizer.Localize(&i18n.LocalizeConfig{MessageID: key, TemplateData: data})
	if err != nil {
		slog.Debug(config.MsgTransMissing,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyLang, t.lang,
			config.LogKeyKey, key,
			config.LogKeyError, err,
		)
		return key
	}
	return msg
}

// Day returns the localized day name, or the canonical one when missing.
func (t *Translator) Day(d names.Day) string {
	return t.name(config.TKeyPrefixDay+d.Key(), d.String())
}

// Month returns the localized month name, or the canonical one when missing.
func (t *Translator) Month(m names.Month) string {
	return t.name(config.TKeyPrefixMonth+m.Key(), m.String())
}

func (t *Translator) name(key, fallback string) string {
	if msg := t.Msg(key); msg != key {
		return msg
	}
	return fallback
}

// Render formats a Calendar Round with localized names. Wildcards render as
// the wildcard token so the output can be parsed back.
func (t *Translator) Render(c cr.CalendarRound) string {
	tzolkin := t.MsgWith(config.TKeyFormatTzolkin, map[string]any{
		"Coeff": c.Tzolkin.Coeff.Format(strconv.Itoa),
		"Name":  c.Tzolkin.Day.Format(t.Day),
	})
	haab := t.MsgWith(config.TKeyFormatHaab, map[string]any{
		"Coeff": c.Haab.Coeff.Format(strconv.Itoa),
		"Name":  c.Haab.Month.Format(t.Month),
	})
	return t.MsgWith(config.TKeyFormatCalRound, map[string]any{
		"Tzolkin": tzolkin,
		"Haab":    haab,
	})
}
