package address

import (
	"github.com/dlclark/regexp2"
	"github.com/opfobo/taxmate-sub000/internal/app/infrastructure/trie"
	"strings"
)

// cyrillicMatchers is the documented precedence of the Cyrillic strategy.
var cyrillicMatchers = []Matcher{
	{Key: KeyName, Name: "ru.name", Find: matchNameRU},
	{Key: KeyStreet, Name: "ru.street", Find: matchStreetRU},
	{Key: KeyHouseNumber, Name: "ru.house", Find: matchHouseRU},
	{Key: KeyBlock, Name: "ru.block", Find: matchBlockRU},
	{Key: KeyApartment, Name: "ru.apartment", Find: matchApartmentRU},
	{Key: KeyPostalCode, Name: "ru.postal_code", Find: matchPostalRU},
	{Key: KeyCity, Name: "ru.city", Find: firstOf(matchCityKeywordRU, matchCityGazetteerRU, matchCityAfterPostalRU)},
	{Key: KeyRegion, Name: "ru.region", Find: matchRegionRU},
	{Key: KeyCountry, Name: "ru.country", Find: matchCountryRU},
	{Key: KeyPhone, Name: "ru.phone", Find: matchPhoneRU},
	{Key: KeyEmail, Name: "ru.email", Find: matchEmail},
	{Key: KeyBirthday, Name: "ru.birthday", Find: matchBirthdayRU},
}

var cyrillicExtraction = extraction{
	script:   ScriptCyrillic,
	matchers: cyrillicMatchers,
}

// ExtractCyrillic runs the Cyrillic strategy and returns only the fields it
// found.
func ExtractCyrillic(text string) FieldSet {
	return cyrillicExtraction.extract(text, nil)
}

const (
	ruWord     = `[А-ЯЁ][а-яё]+`
	ruNamePart = ruWord + `(?:-` + ruWord + `)?`
)

var (
	nameRuRe = mustCompile(`(?<![\p{L}\-])` + ruNamePart + `(?:[ \t]+` + ruNamePart + `){2}(?![\p{L}\-])`)

	streetRuRe = mustCompile(`(?<!\p{L})(?i:улица|ул\.|ул(?=[ \t])|проспект|просп\.|пр-кт|пр-т|пр\.|переулок|пер\.|бульвар|б-р|шоссе|набережная|наб\.|площадь|пл\.|проезд|тупик|аллея)` +
		`[ \t]*([^,;\n]+?)` +
		`(?=[ \t]*(?:[,;\n]|$|(?<!\p{L})(?i:дом(?!\p{L})|д\.|д(?=[ \t]+[0-9])|корп|кв\.|кв(?=[ \t]*[0-9])|стр\.|к\.?(?=[ \t]*[0-9]))))`)

	streetSuffixRuRe = mustCompile(`(?<![\p{L}\-])(?<!(?<!\p{L})(?i:город|гор\.|г\.|г)[ \t]*)(` + ruNamePart + `)[ \t]+` +
		`(?i:улица|проспект|пр-кт|пр-т|переулок|бульвар|шоссе|набережная|площадь|проезд|тупик|аллея)(?![\p{L}\-])`)

	houseRuRe = mustCompile(`(?<!\p{L})(?i:дом|д\.|д(?=[ \t]+[0-9]))[ \t]*№?[ \t]*` +
		`([0-9]+(?:[ \t]?[/\-][ \t]?[0-9]+)?(?:[ \t]?[а-яёА-ЯЁa-zA-Z](?![\p{L}.0-9]))?)`)

	blockRuRe = mustCompile(`(?<!\p{L})(?i:корпус|корп\.?|к\.?(?=[ \t]*[0-9]))[ \t]*([0-9]+)(?![0-9])`)

	apartmentRuRe = mustCompile(`(?<!\p{L})(?i:квартира|к[вb]\.?|офис|оф\.)[ \t]*№?[ \t]*([0-9]+)(?![0-9])`)

	postalRuRe = mustCompile(`(?<![0-9])[0-9]{6}(?![0-9])`)

	cityKeywordRuRe = mustCompile(`(?<!\p{L})(?i:город|гор\.|г\.|г(?=[ \t]+[А-ЯЁ])|пгт|посёлок|поселок|пос\.|село|деревня|дер\.)` +
		`[ \t]*(` + ruWord + `(?:-[А-Яа-яЁё]+)*)(?:[ \t]+(` + ruWord + `))?`)

	cityAfterPostalRuRe = mustCompile(`(?<![0-9])[0-9]{6}(?![0-9])[ \t]*,?[ \t]*(` + ruWord + `(?:-[А-Яа-яЁё]+)*)(?![\p{L}.])`)

	regionSuffixRuRe = mustCompile(`(?<![\p{L}\-])(` + ruNamePart + `)[ \t]+(?i:автономный[ \t]+округ|область|обл\.?|край|округ|республика|АО)(?!\p{L})`)
	regionPrefixRuRe = mustCompile(`(?<!\p{L})(?i:республика|респ\.|область|обл\.|край)[ \t]+(` + ruWord + `(?:[ \t\-]` + ruWord + `)?)`)
	regionAliasRuRe  = mustCompile(`(?<!\p{L})(Подмосковье|Ленобласть)(?!\p{L})`)

	phoneRuRe = mustCompile(`(?:\+7|(?<![0-9+])8)[ \t\-()]*9(?:[ \t\-()]*[0-9]){9}(?![0-9])`)

	dateRe = mustCompile(`(?<![0-9])([0-9]{2})[./\-]([0-9]{2})[./\-]([0-9]{4}|[0-9]{2})(?![0-9])`)
)

// nameStopWords are capitalised words that start address parts, not names.
var nameStopWords = map[string]struct{}{
	"улица": {}, "проспект": {}, "переулок": {}, "бульвар": {}, "шоссе": {},
	"набережная": {}, "площадь": {}, "проезд": {}, "город": {}, "область": {},
	"край": {}, "республика": {}, "район": {}, "дом": {}, "квартира": {},
	"корпус": {}, "индекс": {}, "телефон": {}, "получатель": {}, "адрес": {},
}

// matchNameRU takes the first run of three capitalised words (surname, given
// name, patronymic). It is not anchored on a keyword, so the hit is a guess.
func matchNameRU(text string) (Match, bool) {
	var found string
	eachMatch(nameRuRe, text, func(m *regexp2.Match) bool {
		words := strings.Fields(m.String())
		for _, w := range words {
			if _, stop := nameStopWords[trie.Fold(w)]; stop {
				return false
			}
		}
		if citiesRU.contains(words) || countriesRU.contains(words) {
			return false
		}
		found = m.String()
		return true
	})

	if found == "" {
		return Match{}, false
	}
	return Match{Value: found, Guessed: true}, true
}

// matchStreetRU takes "Невский проспект" before "проспект Невский". A bare
// number after the keyword is the house, so it never counts as a street.
func matchStreetRU(text string) (Match, bool) {
	if v, ok := findGroup(streetSuffixRuRe, text, 1); ok {
		return Match{Value: v}, true
	}

	var found string
	eachMatch(streetRuRe, text, func(m *regexp2.Match) bool {
		v := group(m, 1)
		if v == "" || digitsOnly(v) == v {
			return false
		}
		found = v
		return true
	})

	if found == "" {
		return Match{}, false
	}
	return Match{Value: found}, true
}

func matchHouseRU(text string) (Match, bool) {
	v, ok := findGroup(houseRuRe, text, 1)
	return Match{Value: v}, ok
}

func matchBlockRU(text string) (Match, bool) {
	v, ok := findGroup(blockRuRe, text, 1)
	return Match{Value: v}, ok
}

func matchApartmentRU(text string) (Match, bool) {
	v, ok := findGroup(apartmentRuRe, text, 1)
	return Match{Value: v}, ok
}

func matchPostalRU(text string) (Match, bool) {
	v, ok := findGroup(postalRuRe, text, 0)
	return Match{Value: v}, ok
}

// matchCityKeywordRU strips the settlement keyword. A second capitalised word
// is kept only when both words name a known city.
func matchCityKeywordRU(text string) (Match, bool) {
	m, err := cityKeywordRuRe.FindStringMatch(text)
	if err != nil || m == nil {
		return Match{}, false
	}

	city := group(m, 1)
	if next := group(m, 2); next != "" && citiesRU.t.Match([]string{city, next}) {
		city += " " + next
	}
	return Match{Value: city}, city != ""
}

func matchCityGazetteerRU(text string) (Match, bool) {
	return gazetteerMatch(citiesRU, text)
}

// matchCityAfterPostalRU takes the capitalised word right after a postal code.
func matchCityAfterPostalRU(text string) (Match, bool) {
	var found string
	eachMatch(cityAfterPostalRuRe, text, func(m *regexp2.Match) bool {
		w := group(m, 1)
		if _, stop := nameStopWords[trie.Fold(w)]; stop {
			return false
		}
		found = w
		return true
	})
	return Match{Value: found, Guessed: true}, found != ""
}

// matchRegionRU tries "<Name> область", then "область <Name>", then the
// colloquial aliases. The administrative keyword is never part of the value.
func matchRegionRU(text string) (Match, bool) {
	for _, re := range []*regexp2.Regexp{regionSuffixRuRe, regionPrefixRuRe, regionAliasRuRe} {
		if v, ok := findGroup(re, text, 1); ok {
			return Match{Value: v}, true
		}
	}
	return Match{}, false
}

func matchCountryRU(text string) (Match, bool) {
	return gazetteerMatch(countriesRU, text)
}

// matchPhoneRU accepts Russian mobile numbers only: +7 or a standalone 8
// followed by ten digits starting with 9.
func matchPhoneRU(text string) (Match, bool) {
	m, err := phoneRuRe.FindStringMatch(text)
	if err != nil || m == nil {
		return Match{}, false
	}
	return Match{Value: phoneValue(m.String())}, true
}

// matchBirthdayRU returns the first plausible dd.mm.yyyy or dd.mm.yy date with
// the separators normalised to dots.
func matchBirthdayRU(text string) (Match, bool) {
	return matchDate(dateRe, text)
}

func matchDate(re *regexp2.Regexp, text string) (Match, bool) {
	var found string
	eachMatch(re, text, func(m *regexp2.Match) bool {
		dd, mm, yy := group(m, 1), group(m, 2), group(m, 3)
		if !validDate(dd, mm) {
			return false
		}
		found = dd + "." + mm + "." + yy
		return true
	})
	return Match{Value: found}, found != ""
}
