package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/opfobo/taxmate-sub000/internal/app/domain/address"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "addresses.json")
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	s, err := NewFileStore(path)
	require.NoError(t, err)
	set := address.ParseAddress("г. Москва\n101000", address.StrategyAuto)
	for i, id := range []string{"a", "b", "c"} {
		require.NoError(t, s.Save(ctx, address.NewRecord(id, "src", set, base.Add(time.Duration(i)*time.Minute))))
	}
	assert.Error(t, s.Save(ctx, address.Record{}))

	r, err := s.Get(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, "Москва", r.Fields["city"])
	assert.Equal(t, "Moskva", r.Translit["city"])

	_, err = s.Get(ctx, "zzz")
	assert.ErrorIs(t, err, ErrRecordNotFound)

	list, err := s.List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "c", list[0].ID)
	assert.Equal(t, "b", list[1].ID)

	require.NoError(t, s.Close(ctx))

	reopened, err := NewFileStore(path)
	require.NoError(t, err)
	defer reopened.Close(ctx)
	list, err = reopened.List(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, list, 3)
}

func TestFileStore_KeepsEverything(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "addresses.json")
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	s, err := NewFileStore(path)
	require.NoError(t, err)

	set := address.ParseAddress("г. Москва", address.StrategyAuto)
	n := MaxListLimit + 5
	for i := range n {
		s.records[fmt.Sprintf("r%05d", i)] = address.NewRecord(fmt.Sprintf("r%05d", i), "src", set, base.Add(time.Duration(i)*time.Second))
	}
	require.NoError(t, s.Save(ctx, address.NewRecord("last", "src", set, base.Add(time.Duration(n)*time.Second))))

	reopened, err := NewFileStore(path)
	require.NoError(t, err)
	assert.Len(t, reopened.records, n+1)

	_, err = reopened.Get(ctx, "r00000")
	assert.NoError(t, err)

	list, err := reopened.List(ctx, MaxListLimit)
	require.NoError(t, err)
	assert.Len(t, list, MaxListLimit)
	assert.Equal(t, "last", list[0].ID)
}

func TestFileStore_Open(t *testing.T) {
	dir := t.TempDir()

	s, err := NewFileStore(filepath.Join(dir, "missing.json"))
	require.NoError(t, err)
	assert.Empty(t, s.records)

	empty := filepath.Join(dir, "empty.json")
	require.NoError(t, os.WriteFile(empty, nil, 0600))
	_, err = NewFileStore(empty)
	assert.NoError(t, err)

	broken := filepath.Join(dir, "broken.json")
	require.NoError(t, os.WriteFile(broken, []byte("{"), 0600))
	_, err = NewFileStore(broken)
	assert.Error(t, err)
}

func TestClampLimit(t *testing.T) {
	assert.Equal(t, DefaultListLimit, ClampLimit(0))
	assert.Equal(t, DefaultListLimit, ClampLimit(-5))
	assert.Equal(t, 7, ClampLimit(7))
	assert.Equal(t, MaxListLimit, ClampLimit(MaxListLimit+1))
}
