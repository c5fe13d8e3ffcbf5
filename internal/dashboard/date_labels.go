package dashboard

import (
	"strings"
	"time"
)

const DefaultLocale = "en"

// short numeric date layouts, the way browsers render toLocaleDateString()
var localeDateLayouts = map[string]string{
	"en": "1/2/2006",
	"de": "2.1.2006",
	"ru": "02.01.2006",
	"sr": "2.1.2006.",
	"fr": "02/01/2006",
	"es": "2/1/2006",
	"it": "2/1/2006",
	"nl": "2-1-2006",
}

type DateLabeler interface {
	Label(t time.Time) string
}

type LocaleDateLabeler struct {
	layout   string
	location *time.Location
}

// NewLocaleDateLabeler accepts both "de" and "de-AT" style locales; unknown
// locales fall back to english. A nil location means UTC.
func NewLocaleDateLabeler(locale string, location *time.Location) *LocaleDateLabeler {
	if location == nil {
		location = time.UTC
	}
	return &LocaleDateLabeler{
		layout:   localeLayout(locale),
		location: location,
	}
}

func (l *LocaleDateLabeler) Label(t time.Time) string {
	return t.In(l.location).Format(l.layout)
}

func IsSupportedLocale(locale string) bool {
	_, ok := localeDateLayouts[baseLanguage(locale)]
	return ok
}

func localeLayout(locale string) string {
	if layout, ok := localeDateLayouts[baseLanguage(locale)]; ok {
		return layout
	}
	return localeDateLayouts[DefaultLocale]
}

func baseLanguage(locale string) string {
	lang := strings.ToLower(strings.TrimSpace(locale))
	if i := strings.IndexAny(lang, "-_"); i > 0 {
		lang = lang[:i]
	}
	return lang
}
