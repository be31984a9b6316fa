package dto

import "github.com/shopspring/decimal"

// InvoiceResponse factura completa para GET /api/invoices/:invoice_number.
type InvoiceResponse struct {
	ID               int             `json:"id"`
	InvoiceNumber    string          `json:"invoice_number"`
	CustomerID       int             `json:"customer_id"`
	CustomerName     string          `json:"customer_name"`
	InvoiceDate      string          `json:"invoice_date"`
	DueDate          string          `json:"due_date"`
	CustomerPoNumber string          `json:"customer_po_number,omitempty"`
	BillTotal        decimal.Decimal `json:"bill_total"`
	Applied          decimal.Decimal `json:"applied"`
	Status           string          `json:"status,omitempty"`
	Currency         string          `json:"currency,omitempty"`
	CustomerTerms    string          `json:"customer_terms,omitempty"`
	TermsDays        *int            `json:"terms_days,omitempty"`
}

// PastDueInvoiceItem factura vencida con saldo y días de atraso derivados.
type PastDueInvoiceItem struct {
	InvoiceNumber string          `json:"invoice_number"`
	CustomerName  string          `json:"customer_name"`
	InvoiceDate   string          `json:"invoice_date,omitempty"`
	DueDate       string          `json:"due_date"`
	BillTotal     decimal.Decimal `json:"bill_total"`
	Applied       decimal.Decimal `json:"applied"`
	Outstanding   decimal.Decimal `json:"outstanding"`
	Currency      string          `json:"currency,omitempty"`
	Status        string          `json:"status,omitempty"`
	DaysPastDue   int             `json:"days_past_due"`
}

// PastDueResponse página del listado de vencidas; Total se calcula antes de paginar.
type PastDueResponse struct {
	Items  []PastDueInvoiceItem `json:"items"`
	Total  int                  `json:"total"`
	Limit  int                  `json:"limit"`
	Offset int                  `json:"offset"`
}

// MonthlySummaryResponse resumen de facturación de un mes (YYYY-MM).
type MonthlySummaryResponse struct {
	Month         string          `json:"month"`
	Currency      string          `json:"currency"`
	SumBillTotal  decimal.Decimal `json:"sum_bill_total"`
	CountInvoices int             `json:"count_invoices"`
}
