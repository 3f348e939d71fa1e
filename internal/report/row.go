package report

import (
	"strconv"
	"strings"

	"github.com/jtrs/licence-expiration-report/internal/models"
)

// Placeholder is rendered in place of any empty report field
const Placeholder = "/"

// Header holds the report's column labels; every Row has exactly this width
var Header = []string{
	"Note",
	"Product Code",
	"Product Name",
	"Invoice Number",
	"Invoice Date",
	"Licence Length (Months)",
	"Expiration date",
	"Sale Order",
	"Delivery Address / Customer",
	"Salesperson",
	"Product Variant ID",
}

// Row is one report line: display-ready cells in Header order
type Row []string

// ProjectRow maps a surviving invoice line plus its context into a Row.
// orders are the sale orders reachable from the line's sale order line;
// the slice may be empty.
func ProjectRow(product *models.Product, invoice *models.Invoice, orders []*models.SaleOrder, checkpoint int) Row {
	var invoiceDate, expirationDate string
	if invoice.InvoiceDate != nil {
		invoiceDate = invoice.InvoiceDate.Format(DateLayout)
		expirationDate = AddMonths(*invoice.InvoiceDate, product.LicenceLengthMonths).Format(DateLayout)
	}

	var orderNames []string
	var deliveryDisplay, salesperson string
	for _, order := range orders {
		orderNames = append(orderNames, order.Name)
	}
	if len(orders) > 0 {
		deliveryDisplay = orders[0].ShippingAddress
		if deliveryDisplay == "" {
			deliveryDisplay = orders[0].CustomerName
		}
		salesperson = orders[0].Salesperson
	}

	// Variant id 0 is treated as absent, consistent with the placeholder
	// rule for every other falsy field
	var variantID string
	if product.ID != 0 {
		variantID = strconv.FormatInt(product.ID, 10)
	}

	var months string
	if product.LicenceLengthMonths != 0 {
		months = strconv.Itoa(product.LicenceLengthMonths)
	}

	return Row{
		UrgencyText(checkpoint),
		placeholder(product.DefaultCode),
		placeholder(product.Name),
		placeholder(invoice.Name),
		placeholder(invoiceDate),
		placeholder(months),
		placeholder(expirationDate),
		placeholder(strings.Join(orderNames, ", ")),
		placeholder(deliveryDisplay),
		placeholder(salesperson),
		placeholder(variantID),
	}
}

// placeholder substitutes the placeholder token for empty values
func placeholder(value string) string {
	if value == "" {
		return Placeholder
	}
	return value
}
