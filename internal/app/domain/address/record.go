package address

import (
	"time"
)

// Record is a committed, user-confirmed address. Fields and Translit are
// keyed by FieldKey string form and hold non-empty slots only.
type Record struct {
	ID        string            `json:"id" bson:"_id"`
	CreatedAt time.Time         `json:"created_at" bson:"created_at"`
	Script    string            `json:"script" bson:"script"`
	Source    string            `json:"source" bson:"source"`
	Fields    map[string]string `json:"fields" bson:"fields"`
	Translit  map[string]string `json:"translit" bson:"translit"`
	Guessed   []string          `json:"guessed,omitempty" bson:"guessed,omitempty"`
}

func NewRecord(id, source string, set FieldSet, now time.Time) Record {
	r := Record{
		ID:        id,
		CreatedAt: now.UTC(),
		Script:    set.Script.String(),
		Source:    source,
		Fields:    make(map[string]string, len(set.Fields)),
		Translit:  make(map[string]string, len(set.Fields)),
	}

	for _, f := range set.Fields {
		if f.Empty() {
			continue
		}
		r.Fields[f.Key.String()] = f.Value
		r.Translit[f.Key.String()] = f.Translit
		if f.Guessed {
			r.Guessed = append(r.Guessed, f.Key.String())
		}
	}
	return r
}
