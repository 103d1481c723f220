package locale

import (
	"strings"

	"golang.org/x/text/language"
)

// FallbackFlag is shown for locales outside the supported set.
const FallbackFlag = "🌐"

// Locale is one entry of the supported locale directory.
type Locale struct {
	Code         string `json:"code"`
	Name         string `json:"name"`
	Flag         string `json:"flag"`
	DefaultVoice string `json:"default_voice,omitempty"`
}

// supported is ordered as the dashboard displays it.
var supported = []Locale{
	{Code: "en", Name: "English", Flag: "🇺🇸", DefaultVoice: DefaultVoiceName},
	{Code: "ar", Name: "Arabic", Flag: "🇸🇦", DefaultVoice: DefaultVoiceName},
	{Code: "da", Name: "Danish", Flag: "🇩🇰", DefaultVoice: DefaultVoiceName},
	{Code: "nl", Name: "Dutch", Flag: "🇳🇱", DefaultVoice: DefaultVoiceName},
	{Code: "fi", Name: "Finnish", Flag: "🇫🇮", DefaultVoice: DefaultVoiceName},
	{Code: "fr", Name: "French", Flag: "🇫🇷", DefaultVoice: DefaultVoiceName},
	{Code: "de", Name: "German", Flag: "🇩🇪", DefaultVoice: DefaultVoiceName},
	{Code: "it", Name: "Italian", Flag: "🇮🇹", DefaultVoice: DefaultVoiceName},
	{Code: "ja", Name: "Japanese", Flag: "🇯🇵", DefaultVoice: DefaultVoiceName},
	{Code: "ko", Name: "Korean", Flag: "🇰🇷", DefaultVoice: DefaultVoiceName},
	{Code: "no", Name: "Norwegian", Flag: "🇳🇴", DefaultVoice: DefaultVoiceName},
	{Code: "pt", Name: "Portuguese", Flag: "🇵🇹", DefaultVoice: DefaultVoiceName},
	{Code: "es", Name: "Spanish", Flag: "🇪🇸", DefaultVoice: DefaultVoiceName},
	{Code: "sv", Name: "Swedish", Flag: "🇸🇪", DefaultVoice: DefaultVoiceName},
}

var byCode = func() map[string]Locale {
	index := make(map[string]Locale, len(supported))
	for _, l := range supported {
		index[l.Code] = l
	}
	return index
}()

// Supported returns a copy of the directory in display order.
func Supported() []Locale {
	out := make([]Locale, len(supported))
	copy(out, supported)
	return out
}

// Lookup finds a locale by code.
// Codes are matched case-insensitively; a regional tag such as "en-US"
// falls back to its base language.
func Lookup(code string) (Locale, bool) {
	normalized := strings.ToLower(strings.TrimSpace(code))
	if normalized == "" {
		return Locale{}, false
	}

	if l, ok := byCode[normalized]; ok {
		return l, true
	}

	tag, err := language.Parse(normalized)
	if err != nil {
		return Locale{}, false
	}
	base, _ := tag.Base()
	l, ok := byCode[base.String()]
	return l, ok
}

// Name returns the display name, or the upper-cased code when unknown.
func Name(code string) string {
	if l, ok := Lookup(code); ok {
		return l.Name
	}
	return strings.ToUpper(strings.TrimSpace(code))
}

// Flag returns the flag glyph, or [FallbackFlag] when unknown.
func Flag(code string) string {
	if l, ok := Lookup(code); ok {
		return l.Flag
	}
	return FallbackFlag
}

// DefaultVoice returns the locale's default voice, if it has one.
func DefaultVoice(code string) (string, bool) {
	l, ok := Lookup(code)
	if !ok || l.DefaultVoice == "" {
		return "", false
	}
	return l.DefaultVoice, true
}

// Badge is the compact locale marker rendered on template cards.
type Badge struct {
	Code string `json:"code"`
	Name string `json:"name"`
	Flag string `json:"flag"`
}

// BadgeFor builds a badge for code, keeping the code as stored.
func BadgeFor(code string) Badge {
	return Badge{Code: code, Name: Name(code), Flag: Flag(code)}
}
