package address

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

type FieldKey int

// Порядок ключей фиксирован: по нему выбирается следующий свободный ключ.
const (
	KeyName FieldKey = iota
	KeyStreet
	KeyHouseNumber
	KeyBlock
	KeyApartment
	KeyCity
	KeyPostalCode
	KeyRegion
	KeyCountry
	KeyPhone
	KeyEmail
	KeyBirthday
	KeyOther
)

var fieldKeyNames = [...]string{
	KeyName:        "name",
	KeyStreet:      "street",
	KeyHouseNumber: "house_number",
	KeyBlock:       "block",
	KeyApartment:   "apartment",
	KeyCity:        "city",
	KeyPostalCode:  "postal_code",
	KeyRegion:      "region",
	KeyCountry:     "country",
	KeyPhone:       "phone",
	KeyEmail:       "email",
	KeyBirthday:    "birthday",
	KeyOther:       "other",
}

var ErrUnknownFieldKey = errors.New("unknown field key")

// AllKeys returns every key in enumeration order.
func AllKeys() []FieldKey {
	keys := make([]FieldKey, 0, len(fieldKeyNames))
	for k := range fieldKeyNames {
		keys = append(keys, FieldKey(k))
	}
	return keys
}

func (k FieldKey) Valid() bool {
	return k >= KeyName && k <= KeyOther
}

func (k FieldKey) String() string {
	if !k.Valid() {
		return fmt.Sprintf("FieldKey(%d)", int(k))
	}
	return fieldKeyNames[k]
}

func ParseFieldKey(s string) (FieldKey, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "kv" {
		return KeyApartment, nil
	}
	for k, name := range fieldKeyNames {
		if name == s {
			return FieldKey(k), nil
		}
	}
	return KeyOther, fmt.Errorf("%w: %q", ErrUnknownFieldKey, s)
}

// ParseFieldKeys parses a list of key names, rejecting duplicates.
func ParseFieldKeys(names []string) ([]FieldKey, error) {
	keys := make([]FieldKey, 0, len(names))
	seen := make(map[FieldKey]struct{}, len(names))
	for _, name := range names {
		k, err := ParseFieldKey(name)
		if err != nil {
			return nil, err
		}
		if _, dup := seen[k]; dup {
			return nil, fmt.Errorf("duplicate field key %q", name)
		}
		seen[k] = struct{}{}
		keys = append(keys, k)
	}
	return keys, nil
}

func (k FieldKey) MarshalJSON() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownFieldKey, int(k))
	}
	return json.Marshal(k.String())
}

func (k *FieldKey) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	key, err := ParseFieldKey(s)
	if err != nil {
		return err
	}
	*k = key
	return nil
}

// Field is one recognised slot. Translit is always Transliterate(Value).
type Field struct {
	Key      FieldKey `json:"key"`
	Value    string   `json:"value"`
	Translit string   `json:"translit"`
	Guessed  bool     `json:"guessed"`
}

func newField(key FieldKey, value string, guessed bool) Field {
	return Field{
		Key:      key,
		Value:    value,
		Translit: Transliterate(value),
		Guessed:  guessed,
	}
}

func (f Field) Empty() bool {
	return f.Value == ""
}
