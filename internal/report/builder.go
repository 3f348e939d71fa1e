package report

import (
	"fmt"
	"time"

	"github.com/jtrs/licence-expiration-report/internal/models"
	"go.uber.org/zap"
)

// ProductSource lists the licensed products eligible for the report
type ProductSource interface {
	FindLicensed() ([]*models.Product, error)
}

// InvoiceSource finds posted customer invoices for one product and date
type InvoiceSource interface {
	FindPostedCustomerInvoices(productID int64, invoiceDate time.Time) ([]*models.Invoice, error)
}

// SaleOrderSource resolves invoice lines back to their originating orders
type SaleOrderSource interface {
	GetLineByID(id int64) (*models.SaleOrderLine, error)
	GetOrderByID(id int64) (*models.SaleOrder, error)
}

// LineMatch is one surviving invoice line with its full report context.
// Matches feed the follow-up task requester alongside the rendered rows.
type LineMatch struct {
	Product    *models.Product
	Checkpoint int
	Invoice    *models.Invoice
	Line       *models.InvoiceLine
	Order      *models.SaleOrder // nil when the line has no sale order
}

// Builder assembles the expiration report from the system of record
type Builder struct {
	products   ProductSource
	invoices   InvoiceSource
	saleOrders SaleOrderSource
	logger     *zap.Logger
}

// NewBuilder creates a new report builder
func NewBuilder(products ProductSource, invoices InvoiceSource, saleOrders SaleOrderSource, logger *zap.Logger) *Builder {
	return &Builder{
		products:   products,
		invoices:   invoices,
		saleOrders: saleOrders,
		logger:     logger,
	}
}

// Build runs the expiration computation for every (product, checkpoint)
// pair and returns the assembled report plus the surviving line matches.
// A failure while matching one pair or resolving one line is logged and
// skipped; only the initial product listing can fail the build.
func (b *Builder) Build(today time.Time, checkpoints []int) (*Report, []*LineMatch, error) {
	today = dateOnly(today)

	products, err := b.products.FindLicensed()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list licensed products: %w", err)
	}
	if len(products) == 0 {
		b.logger.Warn("No licensed products found")
		return &Report{}, nil, nil
	}

	rep := &Report{}
	var matches []*LineMatch

	for _, product := range products {
		block := &ProductBlock{Product: product}
		rep.Blocks = append(rep.Blocks, block)

		for _, checkpoint := range checkpoints {
			group := &CheckpointGroup{Checkpoint: checkpoint}
			block.Groups = append(block.Groups, group)

			boundary := boundaryDate(today, checkpoint, product.LicenceLengthMonths)

			invoices, err := b.invoices.FindPostedCustomerInvoices(product.ID, boundary)
			if err != nil {
				b.logger.Error("Failed to match invoices for checkpoint",
					zap.Int64("product_id", product.ID),
					zap.Int("checkpoint", checkpoint),
					zap.Error(err))
				continue
			}

			for _, invoice := range invoices {
				lines := invoice.LinesForProduct(product.ID)
				if len(lines) == 0 {
					// The invoice matched the query but carries no line
					// for this product; the index and the line filter
					// disagree. Skip it rather than abort the run.
					b.logger.Warn("Matched invoice has no lines for product",
						zap.Int64("invoice_id", invoice.ID),
						zap.Int64("product_id", product.ID))
					continue
				}

				for _, line := range lines {
					order, omit, err := b.resolveOrder(line)
					if err != nil {
						b.logger.Error("Failed to resolve sale order for invoice line",
							zap.Int64("invoice_line_id", line.ID),
							zap.Error(err))
						continue
					}
					if omit {
						b.logger.Debug("Invoice line omitted from report",
							zap.Int64("invoice_line_id", line.ID))
						continue
					}

					var orders []*models.SaleOrder
					if order != nil {
						orders = append(orders, order)
					}

					group.Rows = append(group.Rows, ProjectRow(product, invoice, orders, checkpoint))
					matches = append(matches, &LineMatch{
						Product:    product,
						Checkpoint: checkpoint,
						Invoice:    invoice,
						Line:       line,
						Order:      order,
					})
				}
			}
		}
	}

	return rep, matches, nil
}

// resolveOrder follows line -> sale order line -> sale order. It reports
// the exclusion flag of the originating sale order line; a line without
// one is never excluded.
func (b *Builder) resolveOrder(line *models.InvoiceLine) (*models.SaleOrder, bool, error) {
	if line.SaleLineID == nil {
		return nil, false, nil
	}

	saleLine, err := b.saleOrders.GetLineByID(*line.SaleLineID)
	if err != nil {
		return nil, false, err
	}
	if saleLine == nil {
		b.logger.Warn("Invoice line references missing sale order line",
			zap.Int64("invoice_line_id", line.ID),
			zap.Int64("sale_line_id", *line.SaleLineID))
		return nil, false, nil
	}
	if saleLine.OmitFromReport {
		return nil, true, nil
	}

	order, err := b.saleOrders.GetOrderByID(saleLine.OrderID)
	if err != nil {
		return nil, false, err
	}
	return order, false, nil
}
