package address

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode"
)

type Script int

const (
	ScriptLatin Script = iota
	ScriptCyrillic
)

func (s Script) String() string {
	if s == ScriptCyrillic {
		return "cyrillic"
	}
	return "latin"
}

func (s Script) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *Script) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}

	switch str {
	case "latin":
		*s = ScriptLatin
	case "cyrillic":
		*s = ScriptCyrillic
	default:
		return fmt.Errorf("unknown script %q", str)
	}
	return nil
}

type Strategy int

const (
	StrategyAuto Strategy = iota
	StrategyCyrillic
	StrategyLatin
)

var ErrUnknownStrategy = errors.New("unknown parse strategy")

func (s Strategy) String() string {
	switch s {
	case StrategyCyrillic:
		return "cyrillic"
	case StrategyLatin:
		return "latin"
	}
	return "auto"
}

func ParseStrategy(s string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return StrategyAuto, nil
	case "cyrillic":
		return StrategyCyrillic, nil
	case "latin":
		return StrategyLatin, nil
	}
	return StrategyAuto, fmt.Errorf("%w: %q", ErrUnknownStrategy, s)
}

func isCyrillic(r rune) bool {
	return r >= 0x0400 && r <= 0x04FF
}

func hasCyrillic(text string) bool {
	for _, r := range text {
		if isCyrillic(r) {
			return true
		}
	}
	return false
}

// DetectScript returns ScriptCyrillic when text holds at least one rune in
// U+0400..U+04FF and ScriptLatin otherwise, including for "".
func DetectScript(text string) Script {
	if hasCyrillic(text) {
		return ScriptCyrillic
	}
	return ScriptLatin
}

// HasMixedScript reports Cyrillic text that also carries a Latin word of two
// or more letters outside e-mail addresses and links. Such input is still
// parsed with a single strategy.
func HasMixedScript(text string) bool {
	if !hasCyrillic(text) {
		return false
	}

	for _, word := range strings.Fields(text) {
		if strings.ContainsRune(word, '@') || strings.Contains(strings.ToLower(word), "://") ||
			strings.HasPrefix(strings.ToLower(word), "www.") {
			continue
		}

		run := 0
		for _, r := range word {
			if r < unicode.MaxASCII && unicode.IsLetter(r) {
				run++
				if run >= 2 {
					return true
				}
				continue
			}
			run = 0
		}
	}
	return false
}
