package address

import (
	"github.com/dlclark/regexp2"
	"strings"
)

// Match is what a single matcher found.
type Match struct {
	Value   string
	Guessed bool
}

// Matcher extracts one field. Find must be pure and must not panic.
type Matcher struct {
	Key  FieldKey
	Name string
	Find func(text string) (Match, bool)
}

// extraction is an ordered matcher list. The order is also the order in which
// non-mandatory fields appear in an assembled set.
type extraction struct {
	script   Script
	matchers []Matcher
}

func (e extraction) run(text string) []Field {
	text = joinLines(text)

	fields := make([]Field, 0, len(e.matchers))
	for _, m := range e.matchers {
		found, ok := m.Find(text)
		if !ok || found.Value == "" {
			continue
		}

		fields = append(fields, Field{
			Key:      m.Key,
			Value:    found.Value,
			Translit: Transliterate(found.Value),
			Guessed:  found.Guessed,
		})
	}
	return fields
}

// extract assembles the fields found in text. Script records the strategy
// that ran, not the detected script.
func (e extraction) extract(text string, mandatory []FieldKey) FieldSet {
	set := Assemble(e.run(text), mandatory)
	set.Script = e.script
	set.MixedScript = HasMixedScript(text)
	return set
}

// joinLines trims every line, drops blank ones and joins the rest with "\n".
func joinLines(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	lines := strings.Split(text, "\n")
	out := lines[:0]
	for _, l := range lines {
		l = strings.TrimSpace(l)
		if l != "" {
			out = append(out, l)
		}
	}
	return strings.Join(out, "\n")
}

func mustCompile(expr string) *regexp2.Regexp {
	return regexp2.MustCompile(expr, regexp2.None)
}

// eachMatch calls fn for every non-overlapping match until fn returns true.
func eachMatch(re *regexp2.Regexp, text string, fn func(m *regexp2.Match) bool) {
	m, err := re.FindStringMatch(text)
	for err == nil && m != nil {
		if fn(m) {
			return
		}
		m, err = re.FindNextMatch(m)
	}
}

// group returns capture n of m trimmed, or "" when it did not participate.
func group(m *regexp2.Match, n int) string {
	g := m.GroupByNumber(n)
	if g == nil || len(g.Captures) == 0 {
		return ""
	}
	return strings.TrimSpace(g.String())
}

// findGroup returns capture n of the first match of re.
func findGroup(re *regexp2.Regexp, text string, n int) (string, bool) {
	m, err := re.FindStringMatch(text)
	if err != nil || m == nil {
		return "", false
	}

	v := group(m, n)
	return v, v != ""
}

func digitsOnly(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}

// phoneValue keeps digits only and prefixes an apostrophe so spreadsheets
// store the number as text.
func phoneValue(raw string) string {
	return "'" + digitsOnly(raw)
}

// tokens splits text into words for gazetteer lookups, keeping hyphenated
// names together and dropping surrounding punctuation.
func tokens(text string) []string {
	words := strings.Fields(text)
	out := words[:0]
	for _, w := range words {
		w = strings.Trim(w, ".,;:!?()\"'«»")
		if w != "" {
			out = append(out, w)
		}
	}
	return out
}

// gazetteerMatch looks text up line by line so a hit never spans two lines.
func gazetteerMatch(g *gazetteer, text string) (Match, bool) {
	for _, line := range strings.Split(text, "\n") {
		words := tokens(line)
		if start, n, _, ok := g.find(words); ok {
			return Match{Value: strings.Join(words[start:start+n], " ")}, true
		}
	}
	return Match{}, false
}

// firstOf tries matchers in order and returns the first hit.
func firstOf(finders ...func(string) (Match, bool)) func(string) (Match, bool) {
	return func(text string) (Match, bool) {
		for _, f := range finders {
			if m, ok := f(text); ok {
				return m, true
			}
		}
		return Match{}, false
	}
}

// validDate checks day and month ranges of a dd mm pair.
func validDate(dd, mm string) bool {
	if len(dd) != 2 || len(mm) != 2 {
		return false
	}
	d := int(dd[0]-'0')*10 + int(dd[1]-'0')
	mo := int(mm[0]-'0')*10 + int(mm[1]-'0')
	return d >= 1 && d <= 31 && mo >= 1 && mo <= 12
}

var emailRe = regexp2.MustCompile(`(?<![\w.%+\-])[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}(?![\w\-])`, regexp2.IgnoreCase)

func matchEmail(text string) (Match, bool) {
	m, err := emailRe.FindStringMatch(text)
	if err != nil || m == nil {
		return Match{}, false
	}
	return Match{Value: m.String()}, true
}
