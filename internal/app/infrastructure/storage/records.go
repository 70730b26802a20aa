package storage

import (
	"cmp"
	"errors"
	"github.com/opfobo/taxmate-sub000/internal/app/domain/address"
	"slices"
)

var ErrRecordNotFound = errors.New("address record not found")

const (
	DefaultListLimit = 100
	MaxListLimit     = 10_000
)

// ClampLimit maps a requested page size to [1, MaxListLimit].
func ClampLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	return min(limit, MaxListLimit)
}

// newestFirst orders records by creation time, newest first, then by id.
func newestFirst(records []address.Record) {
	slices.SortFunc(records, func(a, b address.Record) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
}
