package trie

import (
	"strings"
	"unicode"
)

type Mode int

const (
	WordMode Mode = iota
	CharMode
)

type node[T any] struct {
	children map[string]*node[T]
	value    *T
}

// Trie хранит фразы (WordMode) или слова (CharMode) без учёта регистра.
type Trie[T any] struct {
	root *node[T]
	mode Mode
}

func NewTrie[T any](m map[string]T, mode Mode) *Trie[T] {
	t := &Trie[T]{root: newNode[T](), mode: mode}
	t.Update(m)
	return t
}

func newNode[T any]() *node[T] {
	return &node[T]{children: make(map[string]*node[T])}
}

func (t *Trie[T]) Update(m map[string]T) {
	root := newNode[T]()
	for k, v := range m {
		keys := t.split(k)
		if len(keys) == 0 {
			continue
		}

		cur := root
		for _, w := range keys {
			if cur.children[w] == nil {
				cur.children[w] = newNode[T]()
			}
			cur = cur.children[w]
		}
		cur.value = new(T)
		*cur.value = v
	}
	t.root = root
}

// Match reports whether keys form exactly one stored entry.
func (t *Trie[T]) Match(keys []string) bool {
	cur := t.root
	for _, k := range keys {
		next, ok := cur.children[Fold(k)]
		if !ok {
			return false
		}
		cur = next
	}
	return cur.value != nil
}

// Longest returns the longest stored entry that is a prefix of keys and the
// number of keys it consumed.
func (t *Trie[T]) Longest(keys []string) (T, int, bool) {
	var (
		best  T
		n     int
		found bool
	)

	cur := t.root
	for i, k := range keys {
		next, ok := cur.children[Fold(k)]
		if !ok {
			break
		}
		cur = next
		if cur.value != nil {
			best, n, found = *cur.value, i+1, true
		}
	}
	return best, n, found
}

// Find scans keys left to right and returns the first position holding a
// stored entry, preferring the longest entry at that position.
func (t *Trie[T]) Find(keys []string) (start, n int, value T, ok bool) {
	for i := range keys {
		if v, l, found := t.Longest(keys[i:]); found {
			return i, l, v, true
		}
	}
	return 0, 0, value, false
}

// Contains reports whether any stored entry occurs anywhere in keys.
func (t *Trie[T]) Contains(keys []string) bool {
	_, _, _, ok := t.Find(keys)
	return ok
}

func (t *Trie[T]) split(k string) []string {
	var keys []string
	if t.mode == WordMode {
		keys = strings.Fields(k)
	} else {
		keys = make([]string, 0, len(k))
		for _, r := range k {
			keys = append(keys, string(r))
		}
	}

	for i := range keys {
		keys[i] = Fold(keys[i])
	}
	return keys
}

// Fold приводит ключ к нижнему регистру и сводит ё к е.
func Fold(s string) string {
	return strings.Map(func(r rune) rune {
		r = unicode.ToLower(r)
		if r == 'ё' {
			return 'е'
		}
		return r
	}, s)
}
