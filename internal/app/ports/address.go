package ports

import (
	"context"
	"github.com/opfobo/taxmate-sub000/internal/app/domain/address"
)

type AddressPort interface {
	Detect(text string) (address.Script, bool)
	Transliterate(text string) string
	Parse(text string, strategy address.Strategy) address.FieldSet
	Resolve(text string, strategy address.Strategy) address.Strategy
}

type AddressStorePort interface {
	Save(ctx context.Context, r address.Record) error
	Get(ctx context.Context, id string) (address.Record, error)
	List(ctx context.Context, limit int) ([]address.Record, error)
	Close(ctx context.Context) error
}
