package ports

import (
	"github.com/opfobo/taxmate-sub000/internal/app/domain/address"
	"github.com/opfobo/taxmate-sub000/internal/app/infrastructure/storage"
)

type SessionsPort interface {
	Create(text string, strategy address.Strategy, set address.FieldSet) (storage.Session, error)
	Get(id string) (storage.Session, error)
	Apply(id string, e address.Edit) (storage.Session, error)
	Undo(id string) (storage.Session, error)
	Delete(id string) (storage.Session, error)
	Len() int
}
