package address

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransliterate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "city", in: "Москва", want: "Moskva"},
		{name: "shch", in: "щ", want: "shch"},
		{name: "signs dropped", in: "подъезд", want: "podezd"},
		{name: "soft sign dropped", in: "Пермь", want: "Perm"},
		{name: "title case digraph", in: "Жуков", want: "Zhukov"},
		{name: "all caps digraph", in: "ЖУК", want: "ZHUK"},
		{name: "lone capital digraph", in: "Щ", want: "Shch"},
		{name: "yo", in: "Ёлка", want: "Elka"},
		{name: "street with digits", in: "ул. Ленина 12", want: "ul. Lenina 12"},
		{name: "ukrainian letters", in: "Київ", want: "Kiyiv"},
		{name: "decomposed short i", in: "Мо\u0438\u0306", want: "Moy"},
		{name: "decomposed yo", in: "\u0435\u0308ж", want: "ezh"},
		{name: "decomposed latin kept", in: "Жан Rene\u0301", want: "Zhan Rene\u0301"},
		{name: "mixed", in: "Main ул.", want: "Main ul."},
		{name: "latin untouched", in: "Hello, World 42!", want: "Hello, World 42!"},
		{name: "empty", in: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Transliterate(tt.in))
		})
	}
}

func TestTransliterate_Properties(t *testing.T) {
	inputs := []string{
		"Иванов Иван Иванович",
		"Санкт-Петербург, Невский пр. 1",
		"John Smith 123 Main Street",
		"ЩУКА щука Щука",
		"łódź ß ü",
	}

	for _, in := range inputs {
		out := Transliterate(in)
		assert.Equal(t, out, Transliterate(in), "deterministic: %q", in)
		assert.False(t, hasCyrillic(out), "no cyrillic left: %q", out)
		assert.Equal(t, out, Transliterate(out), "idempotent: %q", in)
		assert.NotContains(t, out, "ъ")
	}
}

func TestTransliterate_Concurrent(t *testing.T) {
	done := make(chan string, 16)
	for range 16 {
		go func() {
			done <- Transliterate("Хабаровск")
		}()
	}
	for range 16 {
		assert.Equal(t, "Khabarovsk", <-done)
	}
}

func BenchmarkTransliterate(b *testing.B) {
	text := strings.Repeat("Иванов Иван Иванович, г. Москва, ул. Ленина 12, кв. 5\n", 8)

	b.ReportAllocs()
	for b.Loop() {
		_ = Transliterate(text)
	}
}
