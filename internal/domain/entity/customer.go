package entity

// Customer representa un cliente del archivo AR (cuentas por cobrar).
// El ID es secuencial según orden de aparición en el CSV (desde 1) y solo es
// estable dentro de una misma corrida de ingesta: cada carga reconstruye la
// tabla completa.
type Customer struct {
	ID           int
	Name         string
	ContactName  string // vacío = sin dato (NULL en la base)
	ContactPhone string
	ContactEmail string
}
