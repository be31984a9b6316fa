package ingest

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Layout de fecha del export AR: mes/día/año de 2 dígitos ("01/15/24", "1/5/24").
const dateLayout = "1/2/06"

var digitsRe = regexp.MustCompile(`\d+`)

// ParseMoney convierte un campo monetario del CSV a decimal.
// Campo vacío equivale a cero (no es error); texto no numérico sí lo es.
func ParseMoney(value string) (decimal.Decimal, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("monto inválido %q: %w", value, err)
	}
	return d, nil
}

// ParseInvoiceDate convierte la columna InvoiceDate. Vacío devuelve nil.
// Algunos exports traen hora después de la fecha; solo se toma el primer token.
func ParseInvoiceDate(value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	token := strings.Fields(value)[0]
	t, err := time.Parse(dateLayout, token)
	if err != nil {
		return nil, fmt.Errorf("fecha inválida %q: %w", token, err)
	}
	return &t, nil
}

// ParseDueDate convierte la columna DueDate. Mismo contrato que ParseInvoiceDate:
// vacío devuelve nil y es un caso esperado (la fecha se deriva de los términos).
func ParseDueDate(value string) (*time.Time, error) {
	return ParseInvoiceDate(value)
}

// ExtractTermsDays extrae la primera secuencia de dígitos de los términos de
// pago ("Net 30" → 30). Sin dígitos devuelve nil ("Due on Receipt"); nunca falla.
func ExtractTermsDays(terms string) *int {
	terms = strings.TrimSpace(terms)
	if terms == "" {
		return nil
	}
	m := digitsRe.FindString(terms)
	if m == "" {
		return nil
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return nil
	}
	return &n
}
