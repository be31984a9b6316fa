package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/unicorn-ar/internal/domain/entity"
)

// Columnas esperadas en el export AR.
const (
	colCustomerName     = "CustomerName"
	colContactName      = "ContactName"
	colContactPhone     = "ContactPhone"
	colContactEmail     = "ContactEmail"
	colInvoiceNumber    = "InvoiceNumber"
	colInvoiceDate      = "InvoiceDate"
	colDueDate          = "DueDate"
	colCustomerPoNumber = "CustomerPoNumber"
	colBillTotal        = "BillTotal"
	colApplied          = "Applied"
	colStatus           = "Status"
	colCurrency         = "Currency"
	colCustomerTerms    = "CustomerTerms"
)

// Normalizer consume el stream de filas crudas y produce clientes, facturas y
// estadísticas. Es estrictamente secuencial: el orden de filas determina la
// asignación de IDs de cliente y el merge de contactos (primer valor no vacío gana).
type Normalizer struct {
	byName    map[string]*entity.Customer
	customers []*entity.Customer // orden de primera aparición
	invoices  []*entity.Invoice
	seen      map[string]struct{} // invoice_numbers ya vistos
	nextID    int
	stats     Stats
}

// NewNormalizer construye un normalizador vacío para una corrida.
func NewNormalizer() *Normalizer {
	return &Normalizer{
		byName: make(map[string]*entity.Customer),
		seen:   make(map[string]struct{}),
		nextID: 1,
		stats:  Stats{RunID: uuid.New().String()},
	}
}

// ParseFile abre el CSV y lo normaliza. encoding: "" o "utf-8" lee directo;
// "latin1" decodifica ISO-8859-1/Windows-1252 (exports de sistemas legados).
func ParseFile(path, encoding string) ([]*entity.Customer, []*entity.Invoice, Stats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, Stats{}, fmt.Errorf("abrir CSV: %w", err)
	}
	defer f.Close()

	var r io.Reader = f
	switch strings.ToLower(encoding) {
	case "", "utf-8", "utf8":
	case "latin1", "iso-8859-1", "windows-1252":
		r = transform.NewReader(f, charmap.Windows1252.NewDecoder())
	default:
		return nil, nil, Stats{}, fmt.Errorf("encoding no soportado: %q", encoding)
	}

	n := NewNormalizer()
	if err := n.Consume(r); err != nil {
		return nil, nil, Stats{}, err
	}
	customers, invoices, stats := n.Result()
	return customers, invoices, stats, nil
}

// Consume lee todas las filas del CSV (con encabezado) y las procesa en orden.
// Los errores por fila se acumulan en las estadísticas; solo fallas del archivo
// completo (encabezado ilegible, CSV malformado) abortan.
func (n *Normalizer) Consume(r io.Reader) error {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // las filas cortas se reportan como error de fila, no del archivo

	header, err := cr.Read()
	if err != nil {
		return fmt.Errorf("leer encabezado CSV: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("leer CSV: %w", err)
		}
		row := make(map[string]string, len(header))
		for i, name := range header {
			if i < len(record) {
				row[name] = record[i]
			}
		}
		n.ProcessRow(row)
	}
	return nil
}

// ProcessRow aplica el algoritmo por fila. Cualquier error de esta fila se
// captura en las estadísticas y la ingesta continúa (una fila mala nunca
// aborta la corrida).
func (n *Normalizer) ProcessRow(row map[string]string) {
	n.stats.Rows++

	inv, err := n.buildInvoice(row)
	if err != nil {
		n.stats.addError(n.stats.Rows, row, err)
		return
	}
	n.invoices = append(n.invoices, inv)

	// El tracking de duplicados nunca bloquea la fila: ambas entradas quedan
	// en la lista y el upsert hace que la última gane.
	if _, ok := n.seen[inv.InvoiceNumber]; ok {
		n.stats.addDuplicate(fmt.Sprintf("InvoiceNumber %q duplicado en fila %d", inv.InvoiceNumber, n.stats.Rows))
	} else {
		n.seen[inv.InvoiceNumber] = struct{}{}
	}
}

// Result devuelve los clientes en orden de primera aparición, las facturas en
// orden de fila y las estadísticas de la corrida.
func (n *Normalizer) Result() ([]*entity.Customer, []*entity.Invoice, Stats) {
	n.stats.Customers = len(n.customers)
	n.stats.Invoices = len(n.invoices)
	return n.customers, n.invoices, n.stats
}

// buildInvoice resuelve el cliente y arma la factura de una fila.
func (n *Normalizer) buildInvoice(row map[string]string) (*entity.Invoice, error) {
	name, err := field(row, colCustomerName)
	if err != nil {
		return nil, err
	}
	customer := n.resolveCustomer(name, row)

	rawBillTotal, err := field(row, colBillTotal)
	if err != nil {
		return nil, err
	}
	billTotal, err := ParseMoney(rawBillTotal)
	if err != nil {
		return nil, fmt.Errorf("BillTotal: %w", err)
	}
	rawApplied, err := field(row, colApplied)
	if err != nil {
		return nil, err
	}
	applied, err := ParseMoney(rawApplied)
	if err != nil {
		return nil, fmt.Errorf("Applied: %w", err)
	}

	rawInvoiceDate, err := field(row, colInvoiceDate)
	if err != nil {
		return nil, err
	}
	invoiceDate, err := ParseInvoiceDate(rawInvoiceDate)
	if err != nil {
		return nil, fmt.Errorf("InvoiceDate: %w", err)
	}
	termsDays := ExtractTermsDays(row[colCustomerTerms])
	dueDate, err := ParseDueDate(row[colDueDate])
	if err != nil {
		return nil, fmt.Errorf("DueDate: %w", err)
	}

	invoiceNumber, err := field(row, colInvoiceNumber)
	if err != nil {
		return nil, err
	}
	poNumber, err := field(row, colCustomerPoNumber)
	if err != nil {
		return nil, err
	}

	// Resolución de due_date: columna explícita → invoice_date + terms_days → nil.
	if dueDate == nil && invoiceDate != nil && termsDays != nil {
		d := invoiceDate.AddDate(0, 0, *termsDays)
		dueDate = &d
	}

	return &entity.Invoice{
		InvoiceNumber:    invoiceNumber,
		CustomerID:       customer.ID,
		InvoiceDate:      invoiceDate,
		DueDate:          dueDate,
		CustomerPoNumber: poNumber,
		BillTotal:        billTotal,
		Applied:          applied,
		Status:           strings.TrimSpace(row[colStatus]),
		Currency:         strings.TrimSpace(row[colCurrency]),
		CustomerTerms:    strings.TrimSpace(row[colCustomerTerms]),
		TermsDays:        termsDays,
	}, nil
}

// resolveCustomer busca el cliente por nombre (ya recortado). Si no existe lo
// crea con el siguiente ID secuencial; si existe solo rellena los campos de
// contacto que sigan vacíos (backfill-only: un valor presente nunca se pisa).
func (n *Normalizer) resolveCustomer(name string, row map[string]string) *entity.Customer {
	if c, ok := n.byName[name]; ok {
		if c.ContactName == "" {
			c.ContactName = strings.TrimSpace(row[colContactName])
		}
		if c.ContactPhone == "" {
			c.ContactPhone = strings.TrimSpace(row[colContactPhone])
		}
		if c.ContactEmail == "" {
			c.ContactEmail = strings.TrimSpace(row[colContactEmail])
		}
		return c
	}
	c := &entity.Customer{
		ID:           n.nextID,
		Name:         name,
		ContactName:  strings.TrimSpace(row[colContactName]),
		ContactPhone: strings.TrimSpace(row[colContactPhone]),
		ContactEmail: strings.TrimSpace(row[colContactEmail]),
	}
	n.nextID++
	n.byName[name] = c
	n.customers = append(n.customers, c)
	return c
}

// field devuelve el valor recortado de una columna obligatoria; columna ausente
// es error de fila (ej. fila corta en un CSV irregular).
func field(row map[string]string, name string) (string, error) {
	v, ok := row[name]
	if !ok {
		return "", fmt.Errorf("columna %s ausente", name)
	}
	return strings.TrimSpace(v), nil
}
