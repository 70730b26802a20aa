package address

import (
	"github.com/dlclark/regexp2"
	"github.com/opfobo/taxmate-sub000/internal/app/infrastructure/trie"
	"strings"
)

// latinMatchers is the documented precedence of the Latin strategy. Each
// matcher takes its first hit.
var latinMatchers = []Matcher{
	{Key: KeyName, Name: "latin.name", Find: matchNameLatin},
	{Key: KeyStreet, Name: "latin.street", Find: matchStreetLatin},
	{Key: KeyHouseNumber, Name: "latin.house", Find: matchHouseLatin},
	{Key: KeyApartment, Name: "latin.apartment", Find: matchApartmentLatin},
	{Key: KeyPostalCode, Name: "latin.postal_code", Find: matchPostalLatin},
	{Key: KeyCity, Name: "latin.city", Find: matchCityLatin},
	{Key: KeyCountry, Name: "latin.country", Find: matchCountryLatin},
	{Key: KeyPhone, Name: "latin.phone", Find: matchPhoneLatin},
	{Key: KeyEmail, Name: "latin.email", Find: matchEmail},
	{Key: KeyBirthday, Name: "latin.birthday", Find: matchBirthdayLatin},
}

var latinExtraction = extraction{
	script:   ScriptLatin,
	matchers: latinMatchers,
}

// ExtractLatin runs the Latin strategy and returns only the fields it found.
func ExtractLatin(text string) FieldSet {
	return latinExtraction.extract(text, nil)
}

const (
	streetTypes     = `(?:Street|St\.?|Avenue|Ave\.?|Road|Rd\.?|Lane|Ln\.?|Drive|Dr\.?|Boulevard|Blvd\.?|Way|Place|Pl\.?|Court|Ct\.?|Terrace|Square|Sq\.?)`
	streetEnglish   = `(?:\p{Lu}[\p{L}']*[ \t]+)+` + streetTypes + `(?!\p{L})`
	streetGerman    = `\p{Lu}[\p{L}\-]*(?:straße|strasse|str\.|weg|allee|platz|gasse|ring|damm)(?!\p{L})`
	houseToken      = `[0-9]{1,5}[A-Za-z]?`
	latinCityWord   = `\p{Lu}\p{Ll}+(?:[ \t\-]\p{Lu}\p{Ll}+)?`
	latinPostalCode = `[0-9]{5,6}`
)

var (
	nameLatinRe = mustCompile(`(?<![\p{L}\-'])\p{Lu}\p{Ll}+(?:-\p{Lu}\p{Ll}+)?(?:[ \t]+\p{Lu}\p{Ll}+(?:-\p{Lu}\p{Ll}+)?){1,2}(?![\p{L}\-])`)

	streetLatinRe = mustCompile(`(?<!\p{L})(` + streetEnglish + `|` + streetGerman + `)`)

	houseBeforeStreetRe = mustCompile(`(?<![0-9\p{L}])(` + houseToken + `)[ \t]+(?:` + streetEnglish + `|` + streetGerman + `)`)
	houseAfterStreetRe  = mustCompile(`(?<!\p{L})(?:` + streetEnglish + `|` + streetGerman + `)[ \t]*,?[ \t]*(` + houseToken + `)(?![0-9\p{L}])`)
	houseBareRe         = mustCompile(`(?<![0-9\p{L}.,:/+\-])(?<!(?i:apartment|apt|unit|suite|ste|flat)\.?[ \t]*#?[ \t]*)[0-9]{1,4}[A-Za-z]?(?![0-9\p{L}.\-/])`)

	apartmentLatinRe = mustCompile(`(?<!\p{L})(?i:apartment|apt|unit|suite|ste|flat)\.?[ \t]*(?:#|No\.?)?[ \t]*([0-9]+[A-Za-z]?)(?![0-9\p{L}])`)

	postalLatinRe = mustCompile(`(?<![0-9\-+.])(?<!\+[0-9 \t()\-]*)` + latinPostalCode + `(?![0-9.])`)

	cityBeforePostalRe = mustCompile(`(?<!\p{L})(` + latinCityWord + `),?[ \t]+(?:[A-Z]{2}[ \t]+)?` + latinPostalCode + `(?![0-9])`)
	cityAfterPostalRe  = mustCompile(`(?<![0-9])` + latinPostalCode + `[ \t]+(` + latinCityWord + `)(?!\p{L})`)

	phoneLatinRe = mustCompile(`(?<![\p{L}0-9+])\+?[0-9(][0-9 \-()./]{5,}[0-9](?![0-9])`)

	dateLatinRe = mustCompile(`(?<![0-9])([0-9]{2})[./\-]([0-9]{2})[./\-]([0-9]{4})(?![0-9])`)
)

var latinNameStopWords = map[string]struct{}{
	"street": {}, "st": {}, "avenue": {}, "ave": {}, "road": {}, "rd": {},
	"lane": {}, "drive": {}, "boulevard": {}, "way": {}, "place": {},
	"court": {}, "terrace": {}, "square": {}, "apt": {}, "apartment": {},
	"unit": {}, "suite": {}, "flat": {}, "phone": {}, "tel": {}, "email": {},
}

// matchNameLatin takes the first run of two or three capitalised words that
// is not part of a street or a country name. The hit is a guess.
func matchNameLatin(text string) (Match, bool) {
	var found string
	eachMatch(nameLatinRe, text, func(m *regexp2.Match) bool {
		words := strings.Fields(m.String())
		for _, w := range words {
			if _, stop := latinNameStopWords[trie.Fold(w)]; stop {
				return false
			}
		}
		if countriesLatin.contains(words) {
			return false
		}
		found = m.String()
		return true
	})
	return Match{Value: found, Guessed: true}, found != ""
}

func matchStreetLatin(text string) (Match, bool) {
	v, ok := findGroup(streetLatinRe, text, 1)
	return Match{Value: v}, ok
}

// matchHouseLatin prefers a number written next to the street. Without one it
// falls back to the first bare short number and marks it as a guess.
func matchHouseLatin(text string) (Match, bool) {
	for _, re := range []*regexp2.Regexp{houseBeforeStreetRe, houseAfterStreetRe} {
		if v, ok := findGroup(re, text, 1); ok {
			return Match{Value: v}, true
		}
	}

	v, ok := findGroup(houseBareRe, text, 0)
	return Match{Value: v, Guessed: true}, ok
}

func matchApartmentLatin(text string) (Match, bool) {
	v, ok := findGroup(apartmentLatinRe, text, 1)
	return Match{Value: v}, ok
}

func matchPostalLatin(text string) (Match, bool) {
	v, ok := findGroup(postalLatinRe, text, 0)
	return Match{Value: v}, ok
}

// matchCityLatin takes the capitalised words written right before the postal
// code ("Springfield, IL 62704") or right after it ("10115 Berlin").
func matchCityLatin(text string) (Match, bool) {
	for _, re := range []*regexp2.Regexp{cityBeforePostalRe, cityAfterPostalRe} {
		if v, ok := findGroup(re, text, 1); ok {
			return Match{Value: v, Guessed: true}, true
		}
	}
	return Match{}, false
}

func matchCountryLatin(text string) (Match, bool) {
	return gazetteerMatch(countriesLatin, text)
}

// matchPhoneLatin accepts any digit run of E.164 length that is not a date.
func matchPhoneLatin(text string) (Match, bool) {
	var found string
	eachMatch(phoneLatinRe, text, func(m *regexp2.Match) bool {
		candidate := m.String()
		if n := len(digitsOnly(candidate)); n < 7 || n > 15 {
			return false
		}
		if ok, _ := dateLatinRe.MatchString(candidate); ok {
			return false
		}
		found = phoneValue(candidate)
		return true
	})
	return Match{Value: found}, found != ""
}

func matchBirthdayLatin(text string) (Match, bool) {
	return matchDate(dateLatinRe, text)
}
