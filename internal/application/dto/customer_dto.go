package dto

// CustomerResponse cliente en respuestas.
type CustomerResponse struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	ContactName  string `json:"contact_name,omitempty"`
	ContactPhone string `json:"contact_phone,omitempty"`
	ContactEmail string `json:"contact_email,omitempty"`
}

// ContactInfo contacto de un cliente con la fecha de su última factura.
type ContactInfo struct {
	ContactName         string `json:"contact_name,omitempty"`
	ContactEmail        string `json:"contact_email,omitempty"`
	ContactPhone        string `json:"contact_phone,omitempty"`
	LastSeenInvoiceDate string `json:"last_seen_invoice_date,omitempty"` // YYYY-MM-DD, vacío si no tiene facturas
}

// CustomerContactResponse respuesta de GET /api/customers/contact.
type CustomerContactResponse struct {
	CustomerName string        `json:"customer_name"`
	Contacts     []ContactInfo `json:"contacts"`
	Total        int           `json:"total"`
}
