package models

// SaleOrder represents a confirmed customer order
type SaleOrder struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"` // e.g. SO0042
	CustomerID      int64  `json:"customer_id"`
	CustomerName    string `json:"customer_name"`
	Salesperson     string `json:"salesperson"` // The customer's assigned salesperson
	ShippingAddress string `json:"shipping_address"`
}

// SaleOrderLine is one line of a sale order. OmitFromReport is the per-line
// opt-out flag: lines invoiced from it never appear in the expiration report
// and never trigger reminder tasks.
type SaleOrderLine struct {
	ID             int64 `json:"id"`
	OrderID        int64 `json:"order_id"`
	OmitFromReport bool  `json:"omit_from_report"`
}
