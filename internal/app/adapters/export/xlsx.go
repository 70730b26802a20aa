package export

import (
	"fmt"
	"github.com/opfobo/taxmate-sub000/internal/app/domain/address"
	"github.com/samber/lo"
	"github.com/xuri/excelize/v2"
	"io"
	"strings"
	"time"
)

const SheetName = "addresses"

var fixedColumns = []string{"id", "created_at", "script", "source"}

// Columns returns the header row: record metadata, one column per field key in
// enumeration order, the transliterated columns, then the guessed keys.
func Columns() []string {
	keys := lo.Map(address.AllKeys(), func(k address.FieldKey, _ int) string {
		return k.String()
	})
	translit := lo.Map(keys, func(k string, _ int) string {
		return k + "_latin"
	})

	cols := make([]string, 0, len(fixedColumns)+2*len(keys)+1)
	cols = append(cols, fixedColumns...)
	cols = append(cols, keys...)
	cols = append(cols, translit...)
	return append(cols, "guessed")
}

func row(r address.Record) []string {
	keys := address.AllKeys()

	out := make([]string, 0, len(fixedColumns)+2*len(keys)+1)
	out = append(out, r.ID, r.CreatedAt.UTC().Format(time.RFC3339), r.Script, r.Source)
	for _, k := range keys {
		out = append(out, r.Fields[k.String()])
	}
	for _, k := range keys {
		out = append(out, r.Translit[k.String()])
	}
	return append(out, strings.Join(r.Guessed, ","))
}

// WriteXLSX writes records as one sheet. Every cell is a string cell, so
// phone values keep their leading apostrophe and postal codes their zeros.
func WriteXLSX(w io.Writer, records []address.Record) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	if err := writeRow(f, 1, Columns()); err != nil {
		return err
	}
	for i, r := range records {
		if err := writeRow(f, i+2, row(r)); err != nil {
			return err
		}
	}

	if err := f.SetPanes(SheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("freeze header: %w", err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}

func writeRow(f *excelize.File, n int, values []string) error {
	for i, v := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, n)
		if err != nil {
			return err
		}
		if err := f.SetCellStr(SheetName, cell, v); err != nil {
			return fmt.Errorf("set cell %s: %w", cell, err)
		}
	}
	return nil
}
