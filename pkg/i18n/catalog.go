// Package i18n supplies the localized user-facing strings the study flow
// needs. The rest of the application receives a Catalog and never deals
// with locale tags itself.
package i18n

import (
	"fmt"

	"golang.org/x/text/language"
)

type messages struct {
	emptyCard    string
	unknownField string // fmt template, one %s for the field name
	typePrompt   string
}

var catalogs = map[language.Tag]messages{
	language.English: {
		emptyCard:    "This card is empty.",
		unknownField: "Type answer: unknown field %s",
		typePrompt:   "Type the answer",
	},
	language.German: {
		emptyCard:    "Diese Karte ist leer.",
		unknownField: "Antwort eingeben: unbekanntes Feld %s",
		typePrompt:   "Antwort eingeben",
	},
	language.French: {
		emptyCard:    "Cette carte est vide.",
		unknownField: "Saisie de la réponse : champ inconnu %s",
		typePrompt:   "Saisissez la réponse",
	},
	language.Spanish: {
		emptyCard:    "Esta tarjeta está vacía.",
		unknownField: "Escribir la respuesta: campo desconocido %s",
		typePrompt:   "Escriba la respuesta",
	},
}

var matcher = language.NewMatcher([]language.Tag{
	language.English, // first entry doubles as the fallback
	language.German,
	language.French,
	language.Spanish,
})

// Catalog resolves message templates for one locale.
type Catalog struct {
	msgs messages
}

// ForLocale returns the catalog best matching the BCP 47 locale string
// ("de", "fr-CA", ...). Empty or unparseable locales fall back to English.
func ForLocale(locale string) *Catalog {
	tag := language.English
	if locale != "" {
		if parsed, err := language.Parse(locale); err == nil {
			tag, _, _ = matcher.Match(parsed)
		}
	}
	msgs, ok := catalogs[tag]
	if !ok {
		// Matcher may return a regional variant; retry with its base.
		base, _ := tag.Base()
		if baseTag, err := language.Parse(base.String()); err == nil {
			msgs, ok = catalogs[baseTag]
		}
		if !ok {
			msgs = catalogs[language.English]
		}
	}
	return &Catalog{msgs: msgs}
}

// EmptyCard is the warning shown when a cloze type-answer lookup finds no
// content to type.
func (c *Catalog) EmptyCard() string {
	return c.msgs.emptyCard
}

// UnknownField is the warning shown when a type-answer tag names a field
// the note type does not define.
func (c *Catalog) UnknownField(name string) string {
	return fmt.Sprintf(c.msgs.unknownField, name)
}

// TypePrompt labels the typed-answer input.
func (c *Catalog) TypePrompt() string {
	return c.msgs.typePrompt
}
