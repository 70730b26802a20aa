package address

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// editBase: name, city (empty), phone, email; mandatory name and city.
func editBase() FieldSet {
	return Assemble([]Field{
		newField(KeyName, "Иван", true),
		newField(KeyPhone, "'79123456789", false),
		newField(KeyEmail, "a@b.ru", false),
	}, []FieldKey{KeyName, KeyCity})
}

func TestApply(t *testing.T) {
	tests := []struct {
		name     string
		edit     Edit
		wantKeys []FieldKey
		wantNext FieldKey
		check    func(t *testing.T, s FieldSet)
	}{
		{
			name:     "remove mandatory clears",
			edit:     RemoveEdit(0),
			wantKeys: []FieldKey{KeyName, KeyCity, KeyPhone, KeyEmail},
			wantNext: KeyStreet,
			check: func(t *testing.T, s FieldSet) {
				assert.Equal(t, "", s.Value(KeyName))
			},
		},
		{
			name:     "remove optional deletes",
			edit:     RemoveEdit(2),
			wantKeys: []FieldKey{KeyName, KeyCity, KeyEmail},
			wantNext: KeyStreet,
			check: func(t *testing.T, s FieldSet) {
				assert.False(t, s.Has(KeyPhone))
			},
		},
		{
			name:     "add uses next key",
			edit:     AddEdit(),
			wantKeys: []FieldKey{KeyName, KeyCity, KeyPhone, KeyEmail, KeyStreet},
			wantNext: KeyHouseNumber,
		},
		{
			name:     "add explicit key",
			edit:     AddKeyEdit(KeyBirthday),
			wantKeys: []FieldKey{KeyName, KeyCity, KeyPhone, KeyEmail, KeyBirthday},
			wantNext: KeyStreet,
		},
		{
			name:     "retype into empty slot",
			edit:     RetypeEdit(2, KeyCity),
			wantKeys: []FieldKey{KeyName, KeyCity, KeyEmail},
			wantNext: KeyStreet,
			check: func(t *testing.T, s FieldSet) {
				assert.Equal(t, "'79123456789", s.Value(KeyCity))
			},
		},
		{
			name:     "retype mandatory to unused key",
			edit:     RetypeEdit(0, KeyBlock),
			wantKeys: []FieldKey{KeyName, KeyCity, KeyPhone, KeyEmail, KeyBlock},
			wantNext: KeyStreet,
			check: func(t *testing.T, s FieldSet) {
				assert.Equal(t, "", s.Value(KeyName))
				f, _ := s.Get(KeyBlock)
				assert.Equal(t, "Иван", f.Value)
				assert.True(t, f.Guessed)
			},
		},
		{
			name:     "retype optional relabels",
			edit:     RetypeEdit(2, KeyRegion),
			wantKeys: []FieldKey{KeyName, KeyCity, KeyRegion, KeyEmail},
			wantNext: KeyStreet,
		},
		{
			name:     "set value",
			edit:     SetValueEdit(1, "Москва"),
			wantKeys: []FieldKey{KeyName, KeyCity, KeyPhone, KeyEmail},
			wantNext: KeyStreet,
			check: func(t *testing.T, s FieldSet) {
				f, _ := s.Get(KeyCity)
				assert.Equal(t, "Moskva", f.Translit)
				assert.False(t, f.Guessed)
			},
		},
		{
			name:     "set value clears guess",
			edit:     SetValueEdit(0, "Петров Пётр"),
			wantKeys: []FieldKey{KeyName, KeyCity, KeyPhone, KeyEmail},
			wantNext: KeyStreet,
			check: func(t *testing.T, s FieldSet) {
				assert.Empty(t, s.Guessed())
				assert.Equal(t, "Petrov Petr", s.Translit(KeyName))
			},
		},
		{
			name:     "move",
			edit:     MoveEdit(3, 0),
			wantKeys: []FieldKey{KeyEmail, KeyName, KeyCity, KeyPhone},
			wantNext: KeyStreet,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base := editBase()
			before := editBase()

			got, err := Apply(base, tt.edit)
			require.NoError(t, err)
			assert.Equal(t, tt.wantKeys, got.Keys())
			assert.Equal(t, tt.wantNext, got.NextKey)
			if tt.check != nil {
				tt.check(t, got)
			}
			assert.Equal(t, before, base, "receiver must stay untouched")
		})
	}
}

func TestApply_Errors(t *testing.T) {
	tests := []struct {
		name    string
		set     FieldSet
		edit    Edit
		wantErr error
	}{
		{name: "retype into filled slot", set: editBase(), edit: RetypeEdit(3, KeyName), wantErr: ErrKeyInUse},
		{name: "add existing key", set: editBase(), edit: AddKeyEdit(KeyPhone), wantErr: ErrKeyInUse},
		{name: "index out of range", set: editBase(), edit: RemoveEdit(7), wantErr: ErrIndexOutOfRange},
		{name: "negative index", set: editBase(), edit: SetValueEdit(-1, "x"), wantErr: ErrIndexOutOfRange},
		{name: "move target out of range", set: editBase(), edit: MoveEdit(0, 4), wantErr: ErrIndexOutOfRange},
		{name: "retype without key", set: editBase(), edit: Edit{Op: OpRetype, Index: 0}, wantErr: ErrMissingKey},
		{name: "unknown op", set: editBase(), edit: Edit{Op: "split"}, wantErr: ErrUnknownEdit},
		{name: "retype to invalid key", set: editBase(), edit: RetypeEdit(0, FieldKey(99)), wantErr: ErrUnknownFieldKey},
		{name: "add when full", set: Assemble(nil, AllKeys()), edit: AddEdit(), wantErr: ErrNoFreeKey},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Apply(tt.set, tt.edit)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, tt.set, got)
		})
	}
}

func TestApply_RemoveThenReAdd(t *testing.T) {
	set, err := Apply(editBase(), RemoveEdit(2))
	require.NoError(t, err)
	assert.False(t, set.Has(KeyPhone))

	set, err = Apply(set, AddKeyEdit(KeyPhone))
	require.NoError(t, err)
	f, ok := set.Get(KeyPhone)
	require.True(t, ok)
	assert.True(t, f.Empty())
}

func TestApply_AddSequence(t *testing.T) {
	set := Assemble(nil, []FieldKey{KeyName, KeyStreet})

	var err error
	for _, want := range []FieldKey{KeyHouseNumber, KeyBlock, KeyApartment} {
		require.Equal(t, want, set.NextKey)
		set, err = Apply(set, AddEdit())
		require.NoError(t, err)
	}
	assert.Equal(t, KeyCity, set.NextKey)
	assert.Equal(t, []FieldKey{KeyName, KeyStreet, KeyHouseNumber, KeyBlock, KeyApartment}, set.Keys())
}
