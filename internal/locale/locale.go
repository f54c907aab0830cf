// Package locale negotiates the storefront locale and maps it to the
// country and currency a cart is pinned to.
package locale

import (
	"strings"

	"golang.org/x/text/language"
)

// Default is used when a request carries no usable locale and as the
// fallback for localized strings.
const Default = "en-US"

var supported = []string{"en-US", "en-GB", "de-DE"}

var currencies = map[string]string{
	"US": "USD",
	"GB": "GBP",
	"DE": "EUR",
}

var matcher = language.NewMatcher(tags(supported))

// Supported returns the locales the storefront can price in.
func Supported() []string {
	out := make([]string, len(supported))
	copy(out, supported)
	return out
}

// FromRequest picks the best supported locale from an Accept-Language style
// header, falling back to the cookie value and then to Default.
func FromRequest(header, cookie string) string {
	for _, raw := range []string{header, cookie} {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		if l, ok := match(raw); ok {
			return l
		}
	}
	return Default
}

func match(raw string) (string, bool) {
	prefs, _, err := language.ParseAcceptLanguage(raw)
	if err != nil || len(prefs) == 0 {
		return "", false
	}
	_, idx, conf := matcher.Match(prefs...)
	if conf == language.No {
		return "", false
	}
	return supported[idx], true
}

// Country returns the region part of locale, or US.
func Country(locale string) string {
	parts := strings.Split(locale, "-")
	if len(parts) > 1 && parts[1] != "" {
		return strings.ToUpper(parts[1])
	}
	return "US"
}

// Info returns the country and currency a cart for locale is created with.
func Info(locale string) (country, currency string) {
	country = Country(locale)
	currency, ok := currencies[country]
	if !ok {
		currency = "USD"
	}
	return country, currency
}

func tags(in []string) []language.Tag {
	out := make([]language.Tag, 0, len(in))
	for _, s := range in {
		out = append(out, language.MustParse(s))
	}
	return out
}
