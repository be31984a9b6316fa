package ingest

// maxSamples tope de ejemplos guardados en las estadísticas (errores y duplicados).
const maxSamples = 5

// RowError describe una fila que no pudo procesarse (ejemplo en Stats).
type RowError struct {
	RowNumber int               `json:"row_number"`
	Row       map[string]string `json:"row"`
	Err       string            `json:"error"`
}

// Stats resumen de una corrida de ingesta. No se persiste: se devuelve al
// caller para que el operador decida si re-ejecutar.
type Stats struct {
	RunID             string     `json:"run_id"`
	Rows              int        `json:"n_rows"`
	Customers         int        `json:"n_customers"`
	Invoices          int        `json:"n_invoices"`
	Errors            int        `json:"n_errors"`
	ErrorSamples      []RowError `json:"error_examples,omitempty"`
	DuplicateInvoices int        `json:"n_duplicate_invoices"`
	DuplicateSamples  []string   `json:"duplicate_invoice_examples,omitempty"`
}

// addError registra una fila fallida, guardando hasta maxSamples ejemplos.
func (s *Stats) addError(rowNumber int, row map[string]string, err error) {
	s.Errors++
	if len(s.ErrorSamples) < maxSamples {
		s.ErrorSamples = append(s.ErrorSamples, RowError{
			RowNumber: rowNumber,
			Row:       row,
			Err:       err.Error(),
		})
	}
}

// addDuplicate registra un número de factura repetido, con hasta maxSamples ejemplos.
func (s *Stats) addDuplicate(sample string) {
	s.DuplicateInvoices++
	if len(s.DuplicateSamples) < maxSamples {
		s.DuplicateSamples = append(s.DuplicateSamples, sample)
	}
}
