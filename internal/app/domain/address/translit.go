package address

import (
	"golang.org/x/text/unicode/norm"
	"strings"
	"unicode"
)

// cyrillicToLatin follows the passport (ICAO 9303) table for Russian and
// adds the Ukrainian and Belarusian letters. Keys are lower case.
var cyrillicToLatin = map[rune]string{
	'а': "a", 'б': "b", 'в': "v", 'г': "g", 'д': "d",
	'е': "e", 'ё': "e", 'ж': "zh", 'з': "z", 'и': "i",
	'й': "y", 'к': "k", 'л': "l", 'м': "m", 'н': "n",
	'о': "o", 'п': "p", 'р': "r", 'с': "s", 'т': "t",
	'у': "u", 'ф': "f", 'х': "kh", 'ц': "ts", 'ч': "ch",
	'ш': "sh", 'щ': "shch", 'ъ': "", 'ы': "y", 'ь': "",
	'э': "e", 'ю': "yu", 'я': "ya",

	'і': "i", 'ї': "yi", 'є': "ye", 'ґ': "g", 'ў': "u",
}

// Transliterate converts Cyrillic letters to their Latin spelling. Anything
// without a table entry, Latin text included, is copied unchanged, so the
// function is the identity on input without Cyrillic.
func Transliterate(text string) string {
	if !hasCyrillic(text) {
		return text
	}

	runes := composeCyrillic([]rune(text))

	var b strings.Builder
	b.Grow(len(text) + len(text)/4)

	for i, r := range runes {
		lower := unicode.ToLower(r)
		lat, ok := cyrillicToLatin[lower]
		if !ok {
			b.WriteRune(r)
			continue
		}

		if lower == r || lat == "" {
			b.WriteString(lat)
			continue
		}

		if len(lat) > 1 && allCapsAt(runes, i) {
			b.WriteString(strings.ToUpper(lat))
		} else {
			b.WriteString(strings.ToUpper(lat[:1]) + lat[1:])
		}
	}

	return b.String()
}

// composeCyrillic folds a Cyrillic letter and the combining mark after it into
// one rune where Unicode has one (и+U+0306 is й). Other runes stay as they are.
func composeCyrillic(runes []rune) []rune {
	out := runes[:0]
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if i+1 < len(runes) && unicode.Is(unicode.Cyrillic, r) && unicode.Is(unicode.Mn, runes[i+1]) {
			if c := []rune(norm.NFC.String(string(runes[i : i+2]))); len(c) == 1 {
				out = append(out, c[0])
				i++
				continue
			}
		}
		out = append(out, r)
	}
	return out
}

// allCapsAt reports whether the upper-case letter at i sits in an upper-case
// run: the next letter decides, or the previous one at the end of a word.
func allCapsAt(runes []rune, i int) bool {
	if i+1 < len(runes) && unicode.IsLetter(runes[i+1]) {
		return unicode.IsUpper(runes[i+1])
	}
	if i > 0 && unicode.IsLetter(runes[i-1]) {
		return unicode.IsUpper(runes[i-1])
	}
	return false
}
