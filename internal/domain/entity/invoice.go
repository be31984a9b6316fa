package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice representa una factura del archivo AR.
// InvoiceNumber es la clave de negocio: la carga hace upsert por ese campo,
// así que la base siempre refleja la última fila ingerida para cada número.
type Invoice struct {
	ID               int
	InvoiceNumber    string
	CustomerID       int
	CustomerName     string // solo en lecturas (JOIN con customers)
	InvoiceDate      *time.Time
	DueDate          *time.Time // nil si no se pudo resolver (columna vacía y sin términos)
	CustomerPoNumber string
	BillTotal        decimal.Decimal
	Applied          decimal.Decimal
	Status           string
	Currency         string
	CustomerTerms    string // texto libre, ej. "Net 30"
	TermsDays        *int   // días extraídos de CustomerTerms, nil si no hay número
}

// Outstanding devuelve el saldo pendiente (bill_total - applied), con piso en cero.
func (i *Invoice) Outstanding() decimal.Decimal {
	out := i.BillTotal.Sub(i.Applied)
	if out.IsNegative() {
		return decimal.Zero
	}
	return out
}
