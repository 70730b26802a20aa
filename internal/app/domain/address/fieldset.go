package address

import (
	"slices"
)

// FieldSet is the result of one parse. It is a value: edits return a new
// FieldSet and never touch the slices of the receiver.
type FieldSet struct {
	Script      Script     `json:"script"`
	MixedScript bool       `json:"mixed_script"`
	Fields      []Field    `json:"fields"`
	Mandatory   []FieldKey `json:"mandatory"`
	NextKey     FieldKey   `json:"next_key"`
}

// Assemble puts every mandatory key first, in the given order, using the
// extracted value when there is one and an empty placeholder otherwise.
// Extracted non-mandatory fields follow in extraction order. A key that is
// extracted twice keeps its first value.
func Assemble(extracted []Field, mandatory []FieldKey) FieldSet {
	mandatory = dedupKeys(mandatory)

	byKey := make(map[FieldKey]Field, len(extracted))
	for _, f := range extracted {
		if _, seen := byKey[f.Key]; !seen {
			byKey[f.Key] = f
		}
	}

	fields := make([]Field, 0, len(mandatory)+len(extracted))
	used := make(map[FieldKey]struct{}, len(mandatory)+len(extracted))
	for _, k := range mandatory {
		f, ok := byKey[k]
		if !ok {
			f = Field{Key: k}
		}
		fields = append(fields, f)
		used[k] = struct{}{}
	}

	for _, f := range extracted {
		if _, ok := used[f.Key]; ok {
			continue
		}
		fields = append(fields, f)
		used[f.Key] = struct{}{}
	}

	set := FieldSet{
		Fields:    fields,
		Mandatory: mandatory,
	}
	set.NextKey = set.nextFreeKey()
	return set
}

func dedupKeys(keys []FieldKey) []FieldKey {
	out := make([]FieldKey, 0, len(keys))
	for _, k := range keys {
		if k.Valid() && !slices.Contains(out, k) {
			out = append(out, k)
		}
	}
	return out
}

// Get returns the slot holding key.
func (s FieldSet) Get(key FieldKey) (Field, bool) {
	i := s.indexOf(key)
	if i < 0 {
		return Field{}, false
	}
	return s.Fields[i], true
}

// Value returns the raw value stored under key or "".
func (s FieldSet) Value(key FieldKey) string {
	f, _ := s.Get(key)
	return f.Value
}

// Translit returns the transliterated value stored under key or "".
func (s FieldSet) Translit(key FieldKey) string {
	f, _ := s.Get(key)
	return f.Translit
}

func (s FieldSet) Has(key FieldKey) bool {
	return s.indexOf(key) >= 0
}

func (s FieldSet) IsMandatory(key FieldKey) bool {
	return slices.Contains(s.Mandatory, key)
}

// Keys lists the keys of all slots in slot order.
func (s FieldSet) Keys() []FieldKey {
	keys := make([]FieldKey, len(s.Fields))
	for i, f := range s.Fields {
		keys[i] = f.Key
	}
	return keys
}

// Values maps every non-empty slot to its raw value.
func (s FieldSet) Values() map[FieldKey]string {
	m := make(map[FieldKey]string, len(s.Fields))
	for _, f := range s.Fields {
		if !f.Empty() {
			m[f.Key] = f.Value
		}
	}
	return m
}

// Guessed lists the keys filled by a low-confidence matcher.
func (s FieldSet) Guessed() []FieldKey {
	var keys []FieldKey
	for _, f := range s.Fields {
		if f.Guessed && !f.Empty() {
			keys = append(keys, f.Key)
		}
	}
	return keys
}

func (s FieldSet) indexOf(key FieldKey) int {
	return slices.IndexFunc(s.Fields, func(f Field) bool { return f.Key == key })
}

// nextFreeKey returns the first key in enumeration order without a slot.
// KeyOther is returned when every key is taken.
func (s FieldSet) nextFreeKey() FieldKey {
	for _, k := range AllKeys() {
		if !s.Has(k) {
			return k
		}
	}
	return KeyOther
}

func (s FieldSet) clone() FieldSet {
	c := s
	c.Fields = slices.Clone(s.Fields)
	c.Mandatory = slices.Clone(s.Mandatory)
	return c
}
