package repository

import "github.com/jhoicas/unicorn-ar/internal/domain/entity"

// CustomerRepository define el puerto de persistencia para Customer.
type CustomerRepository interface {
	// ReplaceAll borra todos los clientes e inserta la lista con sus IDs
	// asignados en la corrida (la tabla queda como función pura del último CSV).
	ReplaceAll(customers []*entity.Customer) error
	GetByID(id int) (*entity.Customer, error)
	List() ([]*entity.Customer, error)
}
