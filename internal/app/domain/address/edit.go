package address

import (
	"errors"
	"fmt"
	"slices"
)

var (
	ErrIndexOutOfRange = errors.New("field index out of range")
	ErrKeyInUse        = errors.New("field key already holds a value")
	ErrNoFreeKey       = errors.New("no unused field key left")
	ErrUnknownEdit     = errors.New("unknown edit operation")
	ErrMissingKey      = errors.New("edit requires a field key")
)

type EditOp string

const (
	OpSetValue EditOp = "set_value"
	OpRetype   EditOp = "retype"
	OpRemove   EditOp = "remove"
	OpAdd      EditOp = "add"
	OpMove     EditOp = "move"
)

// Edit describes one user correction. Index addresses a slot; To is the
// destination of a move; Key is the new key of a retype and the optional
// explicit key of an add.
type Edit struct {
	Op    EditOp    `json:"op"`
	Index int       `json:"index"`
	To    int       `json:"to,omitempty"`
	Key   *FieldKey `json:"key,omitempty"`
	Value string    `json:"value,omitempty"`
}

func SetValueEdit(i int, value string) Edit { return Edit{Op: OpSetValue, Index: i, Value: value} }
func RetypeEdit(i int, key FieldKey) Edit  { return Edit{Op: OpRetype, Index: i, Key: &key} }
func RemoveEdit(i int) Edit                { return Edit{Op: OpRemove, Index: i} }
func AddEdit() Edit                        { return Edit{Op: OpAdd} }
func AddKeyEdit(key FieldKey) Edit         { return Edit{Op: OpAdd, Key: &key} }
func MoveEdit(from, to int) Edit           { return Edit{Op: OpMove, Index: from, To: to} }

// Apply returns set with e applied. On error set is returned unchanged.
func Apply(set FieldSet, e Edit) (FieldSet, error) {
	switch e.Op {
	case OpSetValue:
		return set.SetValue(e.Index, e.Value)
	case OpRetype:
		if e.Key == nil {
			return set, ErrMissingKey
		}
		return set.Retype(e.Index, *e.Key)
	case OpRemove:
		return set.Remove(e.Index)
	case OpAdd:
		if e.Key != nil {
			return set.AddKey(*e.Key)
		}
		return set.Add()
	case OpMove:
		return set.Move(e.Index, e.To)
	}
	return set, fmt.Errorf("%w: %q", ErrUnknownEdit, e.Op)
}

func (s FieldSet) checkIndex(i int) error {
	if i < 0 || i >= len(s.Fields) {
		return fmt.Errorf("%w: %d of %d", ErrIndexOutOfRange, i, len(s.Fields))
	}
	return nil
}

// SetValue replaces the value of slot i. A value typed by hand is no longer a
// guess.
func (s FieldSet) SetValue(i int, value string) (FieldSet, error) {
	if err := s.checkIndex(i); err != nil {
		return s, err
	}

	c := s.clone()
	c.Fields[i] = newField(c.Fields[i].Key, value, false)
	return c, nil
}

// Retype moves the value of slot i under key. An empty slot already holding
// key receives the value; a filled one makes the edit fail. A mandatory
// source slot is cleared instead of losing its key.
func (s FieldSet) Retype(i int, key FieldKey) (FieldSet, error) {
	if err := s.checkIndex(i); err != nil {
		return s, err
	}
	if !key.Valid() {
		return s, fmt.Errorf("%w: %d", ErrUnknownFieldKey, int(key))
	}

	src := s.Fields[i]
	if src.Key == key {
		return s.clone(), nil
	}

	c := s.clone()
	moved := src
	moved.Key = key

	switch j := c.indexOf(key); {
	case j >= 0:
		if !c.Fields[j].Empty() {
			return s, fmt.Errorf("%w: %s", ErrKeyInUse, key)
		}
		c.Fields[j] = moved
		c = c.vacate(i)
	case c.IsMandatory(src.Key):
		c.Fields[i] = Field{Key: src.Key}
		c.Fields = append(c.Fields, moved)
	default:
		c.Fields[i] = moved
	}

	c.NextKey = c.nextFreeKey()
	return c, nil
}

// Remove clears a mandatory slot and deletes any other slot, which makes its
// key available to Add again.
func (s FieldSet) Remove(i int) (FieldSet, error) {
	if err := s.checkIndex(i); err != nil {
		return s, err
	}

	c := s.clone().vacate(i)
	c.NextKey = c.nextFreeKey()
	return c, nil
}

// Add appends an empty slot for NextKey and moves NextKey to the first key
// that is still unused.
func (s FieldSet) Add() (FieldSet, error) {
	key := s.NextKey
	if !key.Valid() || s.Has(key) {
		key = s.nextFreeKey()
	}
	if s.Has(key) {
		return s, ErrNoFreeKey
	}
	return s.AddKey(key)
}

// AddKey appends an empty slot for an unused key.
func (s FieldSet) AddKey(key FieldKey) (FieldSet, error) {
	if !key.Valid() {
		return s, fmt.Errorf("%w: %d", ErrUnknownFieldKey, int(key))
	}
	if s.Has(key) {
		return s, fmt.Errorf("%w: %s", ErrKeyInUse, key)
	}

	c := s.clone()
	c.Fields = append(c.Fields, Field{Key: key})
	c.NextKey = c.nextFreeKey()
	return c, nil
}

// Move relocates slot from to position to.
func (s FieldSet) Move(from, to int) (FieldSet, error) {
	if err := s.checkIndex(from); err != nil {
		return s, err
	}
	if err := s.checkIndex(to); err != nil {
		return s, err
	}

	c := s.clone()
	f := c.Fields[from]
	c.Fields = slices.Delete(c.Fields, from, from+1)
	c.Fields = slices.Insert(c.Fields, to, f)
	return c, nil
}

// vacate works on an already cloned set.
func (s FieldSet) vacate(i int) FieldSet {
	if s.IsMandatory(s.Fields[i].Key) {
		s.Fields[i] = Field{Key: s.Fields[i].Key}
		return s
	}
	s.Fields = slices.Delete(s.Fields, i, i+1)
	return s
}
