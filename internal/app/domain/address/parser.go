package address

import (
	"slices"
)

// DefaultMandatory are the slots a postal label cannot do without.
var DefaultMandatory = []FieldKey{KeyName, KeyStreet, KeyHouseNumber, KeyPostalCode, KeyCity, KeyCountry}

type Parser struct {
	mandatory []FieldKey
	strategy  Strategy
}

type Option func(*Parser)

// WithMandatory replaces the mandatory key list. Duplicates and invalid keys
// are dropped.
func WithMandatory(keys ...FieldKey) Option {
	return func(p *Parser) {
		p.mandatory = dedupKeys(keys)
	}
}

// WithDefaultStrategy sets the strategy used when Parse is called with
// StrategyAuto.
func WithDefaultStrategy(s Strategy) Option {
	return func(p *Parser) {
		p.strategy = s
	}
}

func NewParser(opts ...Option) *Parser {
	p := &Parser{
		mandatory: slices.Clone(DefaultMandatory),
		strategy:  StrategyAuto,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Mandatory returns a copy of the configured mandatory keys.
func (p *Parser) Mandatory() []FieldKey {
	return slices.Clone(p.mandatory)
}

// Resolve turns StrategyAuto into a concrete strategy for text.
func (p *Parser) Resolve(text string, s Strategy) Strategy {
	if s == StrategyAuto {
		s = p.strategy
	}
	if s != StrategyAuto {
		return s
	}

	if DetectScript(text) == ScriptCyrillic {
		return StrategyCyrillic
	}
	return StrategyLatin
}

// Parse extracts the fields of text with the given strategy and fills the
// gaps for every mandatory key. It never fails: unrecognised text yields a
// set of empty mandatory slots.
func (p *Parser) Parse(text string, s Strategy) FieldSet {
	if p.Resolve(text, s) == StrategyCyrillic {
		return cyrillicExtraction.extract(text, p.mandatory)
	}
	return latinExtraction.extract(text, p.mandatory)
}

var defaultParser = NewParser()

// ParseAddress parses text with DefaultMandatory.
func ParseAddress(text string, s Strategy) FieldSet {
	return defaultParser.Parse(text, s)
}
