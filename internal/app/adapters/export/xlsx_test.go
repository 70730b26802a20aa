package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/opfobo/taxmate-sub000/internal/app/domain/address"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestColumns(t *testing.T) {
	cols := Columns()
	keys := address.AllKeys()

	require.Len(t, cols, len(fixedColumns)+2*len(keys)+1)
	assert.Equal(t, "id", cols[0])
	assert.Equal(t, keys[0].String(), cols[len(fixedColumns)])
	assert.Equal(t, keys[0].String()+"_latin", cols[len(fixedColumns)+len(keys)])
	assert.Equal(t, "guessed", cols[len(cols)-1])
}

func TestWriteXLSX(t *testing.T) {
	set := address.ParseAddress("Иванов Иван Иванович\nг. Москва\n+7 999 123-45-67\n010203", address.StrategyAuto)
	rec := address.NewRecord("r1", "src", set, time.Date(2026, 5, 1, 9, 30, 0, 0, time.UTC))

	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, []address.Record{rec}))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetName}, f.GetSheetList())

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, Columns()[:len(rows[0])], rows[0])

	get := func(col string) string {
		for i, c := range rows[0] {
			if c == col && i < len(rows[1]) {
				return rows[1][i]
			}
		}
		return ""
	}
	assert.Equal(t, "r1", get("id"))
	assert.Equal(t, "2026-05-01T09:30:00Z", get("created_at"))
	assert.Equal(t, "Москва", get("city"))
	assert.Equal(t, "Moskva", get("city_latin"))
	assert.Equal(t, "'79991234567", get("phone"))
	assert.Equal(t, "010203", get("postal_code"))
	assert.Equal(t, "name", get("guessed"))
}

func TestWriteXLSX_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, nil))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
