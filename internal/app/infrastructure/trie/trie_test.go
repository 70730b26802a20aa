package trie

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTrie_WordMode(t *testing.T) {
	tr := NewTrie(map[string]string{
		"Москва":          "moscow",
		"Нижний Новгород": "nizhny",
		"Нижний":          "short",
		"Орёл":            "orel",
	}, WordMode)

	tests := []struct {
		name      string
		text      string
		wantStart int
		wantN     int
		wantValue string
		wantOK    bool
	}{
		{name: "single word", text: "г Москва", wantStart: 1, wantN: 1, wantValue: "moscow", wantOK: true},
		{name: "longest wins", text: "в Нижний Новгород завтра", wantStart: 1, wantN: 2, wantValue: "nizhny", wantOK: true},
		{name: "prefix only", text: "Нижний Тагил", wantStart: 0, wantN: 1, wantValue: "short", wantOK: true},
		{name: "case and yo folding", text: "ОРЕЛ", wantStart: 0, wantN: 1, wantValue: "orel", wantOK: true},
		{name: "absent", text: "Тверь", wantOK: false},
		{name: "empty", text: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, n, v, ok := tr.Find(strings.Fields(tt.text))
			assert.Equal(t, tt.wantOK, ok)
			if !tt.wantOK {
				return
			}
			assert.Equal(t, tt.wantStart, start)
			assert.Equal(t, tt.wantN, n)
			assert.Equal(t, tt.wantValue, v)
		})
	}
}

func TestTrie_MatchAndContains(t *testing.T) {
	tr := NewTrie(map[string]int{"санкт-петербург": 1, "ростов на дону": 2}, WordMode)

	assert.True(t, tr.Match([]string{"Санкт-Петербург"}))
	assert.True(t, tr.Match([]string{"Ростов", "на", "Дону"}))
	assert.False(t, tr.Match([]string{"Ростов", "на"}))
	assert.True(t, tr.Contains([]string{"из", "Ростов", "на", "Дону"}))
	assert.False(t, tr.Contains([]string{"Ростов"}))
}

func TestTrie_CharMode(t *testing.T) {
	tr := NewTrie(map[string]bool{"рф": true}, CharMode)

	assert.True(t, tr.Match([]string{"Р", "Ф"}))
	assert.False(t, tr.Match([]string{"Р"}))
	assert.False(t, tr.Match(nil))
}

func TestTrie_Update(t *testing.T) {
	tr := NewTrie(map[string]int{"a": 1}, WordMode)
	tr.Update(map[string]int{"b": 2, "   ": 3})

	assert.False(t, tr.Match([]string{"a"}))
	assert.True(t, tr.Match([]string{"b"}))
	assert.False(t, tr.Match(nil))
}

func BenchmarkTrie_Find(b *testing.B) {
	tr := NewTrie(map[string]int{"нижний новгород": 1, "москва": 2}, WordMode)
	words := strings.Fields("Иванов Иван Иванович ул Ленина 12 кв 5 Нижний Новгород")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tr.Find(words)
	}
}
