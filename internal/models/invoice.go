package models

import "time"

// Invoice states
const (
	InvoiceStateDraft  = "draft"
	InvoiceStatePosted = "posted"
)

// Move types; only customer invoices feed the expiration report
const (
	MoveTypeCustomerInvoice = "out_invoice"
	MoveTypeCustomerRefund  = "out_refund"
	MoveTypeVendorBill      = "in_invoice"
)

// Invoice represents a posted sales document in the system of record
type Invoice struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"` // Invoice number, e.g. INV/2026/00042
	InvoiceDate *time.Time `json:"invoice_date"`
	State       string     `json:"state"`
	MoveType    string     `json:"move_type"`

	Lines []*InvoiceLine `json:"lines"`
}

// InvoiceLine is one product line on an invoice. SaleLineID links back to
// the sale order line the invoice was generated from, when there is one.
type InvoiceLine struct {
	ID         int64  `json:"id"`
	InvoiceID  int64  `json:"invoice_id"`
	ProductID  int64  `json:"product_id"`
	SaleLineID *int64 `json:"sale_line_id,omitempty"`
}

// LinesForProduct returns the invoice's lines referencing the given product
func (inv *Invoice) LinesForProduct(productID int64) []*InvoiceLine {
	var lines []*InvoiceLine
	for _, line := range inv.Lines {
		if line.ProductID == productID {
			lines = append(lines, line)
		}
	}
	return lines
}
