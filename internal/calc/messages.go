package calc

import (
	"strconv"
	"strings"
)

// Supported message languages. Finnish is the fallback for the UI, English for
// missing keys.
var Languages = []string{"fi", "en", "sv", "nl", "de"}

var messages = map[string]map[ErrorKind]string{
	"fi": {
		KindUnknownToken:      "tuntematon symboli kohdassa %s",
		KindInfinity:          "liian suuri tai ääretön arvo",
		KindInvalidArgCount:   "funktio sai virheellisen määrän argumentteja",
		KindNotANumber:        "vastaus ei ole numero",
		KindNoLHSBracket:      "vasen sulje puuttuu",
		KindNoRHSBracket:      "oikea sulje puuttuu",
		KindTrigPrecision:     "trigonometrinen tarkkuusvirhe",
		KindUnexpectedEOF:     "odottamaton lausekkeen loppu",
		KindUnexpectedToken:   "odottamaton symboli",
		KindPrecisionOverflow: "liian suuri numero laskettavaksi",
		KindTimeout:           "virhe: laskuoperaatio kesti liian kauan",
		KindUnknownName:       "%s: tuntematon muuttuja tai funktio",
		KindReservedName:      "%s on järjestelmän varaama nimi",
		KindRecursion:         "loputon silmukka",
	},
	"en": {
		KindUnknownToken:      "unknown symbol at %s",
		KindInfinity:          "too large or infinite value",
		KindInvalidArgCount:   "function received an invalid amount of arguments",
		KindNotANumber:        "answer is not a number",
		KindNoLHSBracket:      "left bracket missing",
		KindNoRHSBracket:      "right bracket missing",
		KindTrigPrecision:     "trigonometric precision error",
		KindUnexpectedEOF:     "unexpected end of input",
		KindUnexpectedToken:   "unexpected token",
		KindPrecisionOverflow: "number is too large to calculate",
		KindTimeout:           "error: operation timed out",
		KindUnknownName:       "%s: unknown variable or function",
		KindReservedName:      "%s is a reserved name",
		KindRecursion:         "infinite loop",
	},
	"sv": {
		KindUnknownToken:      "okänt symbol vid %s",
		KindInfinity:          "för stort eller oändligt värde",
		KindInvalidArgCount:   "metoden fick ett felaktigt antal argument",
		KindNotANumber:        "svaret är inte ett nummer",
		KindNoLHSBracket:      "vänster parentes saknas",
		KindNoRHSBracket:      "höger parentes saknas",
		KindTrigPrecision:     "trigonometrisk precision fel",
		KindUnexpectedEOF:     "oväntat slut på uttrycket",
		KindUnexpectedToken:   "oväntat symbol",
		KindPrecisionOverflow: "för stort nummer att beräkna",
		KindTimeout:           "fel: beräkningsoperationen tog för lång tid",
		KindUnknownName:       "%s: okänt variabel eller funktion",
		KindReservedName:      "%s är ett reserverat namn",
		KindRecursion:         "oändlig loop",
	},
	"nl": {
		KindUnknownToken:      "onbekend symbool bij %s",
		KindInfinity:          "te grote of oneindige waarde",
		KindInvalidArgCount:   "functie ontving een ongeldig aantal argumenten",
		KindNotANumber:        "antwoord is geen getal",
		KindNoLHSBracket:      "linker haakje ontbreekt",
		KindNoRHSBracket:      "rechter haakje ontbreekt",
		KindTrigPrecision:     "trigonometrische precisiefout",
		KindUnexpectedEOF:     "onverwacht einde van invoer",
		KindUnexpectedToken:   "onverwachte token",
		KindPrecisionOverflow: "getal te groot is om te berekenen",
		KindTimeout:           "fout: bewerking is een time-out opgetreden",
		KindUnknownName:       "%s: onbekende variabele of functie",
		KindReservedName:      "%s is een gereserveerde naam",
		KindRecursion:         "oneindige lus",
	},
	"de": {
		KindUnknownToken:      "unbekannter Symbol bei %s",
		KindInfinity:          "zu groß oder unendliche Eingabe",
		KindInvalidArgCount:   "die Funktion hat eine ungültige Anzahl von Argumenten erhalten",
		KindNotANumber:        "Die Antwort ist keine Zahl",
		KindNoLHSBracket:      "linke Klammer fehlt",
		KindNoRHSBracket:      "rechte Klammer fehlt",
		KindTrigPrecision:     "trigonometrischer Präzisionsfehler",
		KindUnexpectedEOF:     "unerwartetes Ende der Eingabe",
		KindUnexpectedToken:   "unerwartetes Token",
		KindPrecisionOverflow: "Die Zahl ist zu groß zum Berechnen",
		KindTimeout:           "Fehler: Zeitüberschreitung beim Vorgang",
		KindUnknownName:       "%s: unbekannte Variable oder Funktion",
		KindReservedName:      "%s ist ein reservierter Name",
		KindRecursion:         "Endlosschleife",
	},
}

var unknownErrorMessages = map[string]string{
	"fi": "käsittelyvirhe",
	"en": "unknown error",
	"sv": "behandlingsfel",
	"nl": "onbekende fout",
	"de": "unbekannter Fehler",
}

// Localize renders the error for display in the given language.
func (e *Error) Localize(lang string) string {
	table, ok := messages[lang]
	if !ok {
		table = messages["en"]
	}
	template, ok := table[e.Kind]
	if !ok {
		template, ok = messages["en"][e.Kind]
	}
	if !ok {
		if msg, found := unknownErrorMessages[lang]; found {
			return msg
		}
		return unknownErrorMessages["en"]
	}

	switch e.Kind {
	case KindUnknownToken:
		return strings.Replace(template, "%s", strconv.Itoa(e.Index), 1)
	case KindUnknownName, KindReservedName:
		return strings.Replace(template, "%s", e.Name, 1)
	}
	return template
}

// IsSupportedLanguage reports whether messages exist for lang.
func IsSupportedLanguage(lang string) bool {
	_, ok := messages[lang]
	return ok
}
