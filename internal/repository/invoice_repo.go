package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/jtrs/licence-expiration-report/internal/models"
	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

// InvoiceRepository handles invoice database operations
type InvoiceRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewInvoiceRepository creates a new invoice repository
func NewInvoiceRepository(db *sql.DB, logger *zap.Logger) *InvoiceRepository {
	return &InvoiceRepository{
		db:     db,
		logger: logger,
	}
}

// FindPostedCustomerInvoices returns posted customer invoices dated exactly
// invoiceDate that carry at least one line for the given product, with all
// their lines loaded. Results are ordered by invoice id.
func (r *InvoiceRepository) FindPostedCustomerInvoices(productID int64, invoiceDate time.Time) ([]*models.Invoice, error) {
	query := `
		SELECT DISTINCT i.id, i.name, i.invoice_date, i.state, i.move_type
		FROM invoices i
		JOIN invoice_lines l ON l.invoice_id = i.id
		WHERE l.product_id = ?
		  AND i.invoice_date = ?
		  AND i.state = 'posted'
		  AND i.move_type = 'out_invoice'
		ORDER BY i.id
	`

	rows, err := r.db.Query(query, productID, invoiceDate.Format(dateLayout))
	if err != nil {
		r.logger.Error("Failed to query invoices",
			zap.Int64("product_id", productID),
			zap.String("invoice_date", invoiceDate.Format(dateLayout)),
			zap.Error(err))
		return nil, fmt.Errorf("failed to query invoices: %w", err)
	}
	defer rows.Close()

	var invoices []*models.Invoice
	for rows.Next() {
		var invoice models.Invoice
		var invoiceDate sql.NullString

		err := rows.Scan(
			&invoice.ID,
			&invoice.Name,
			&invoiceDate,
			&invoice.State,
			&invoice.MoveType,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan invoice: %w", err)
		}

		if invoiceDate.Valid {
			parsed, err := time.Parse(dateLayout, invoiceDate.String)
			if err != nil {
				return nil, fmt.Errorf("failed to parse invoice date %q: %w", invoiceDate.String, err)
			}
			invoice.InvoiceDate = &parsed
		}

		invoices = append(invoices, &invoice)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, invoice := range invoices {
		lines, err := r.loadLines(invoice.ID)
		if err != nil {
			return nil, err
		}
		invoice.Lines = lines
	}

	return invoices, nil
}

// loadLines loads all lines of one invoice, ordered by line id
func (r *InvoiceRepository) loadLines(invoiceID int64) ([]*models.InvoiceLine, error) {
	query := `
		SELECT id, invoice_id, product_id, sale_line_id
		FROM invoice_lines
		WHERE invoice_id = ?
		ORDER BY id
	`

	rows, err := r.db.Query(query, invoiceID)
	if err != nil {
		r.logger.Error("Failed to query invoice lines", zap.Int64("invoice_id", invoiceID), zap.Error(err))
		return nil, fmt.Errorf("failed to query invoice lines: %w", err)
	}
	defer rows.Close()

	var lines []*models.InvoiceLine
	for rows.Next() {
		var line models.InvoiceLine
		var saleLineID sql.NullInt64

		err := rows.Scan(
			&line.ID,
			&line.InvoiceID,
			&line.ProductID,
			&saleLineID,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan invoice line: %w", err)
		}

		if saleLineID.Valid {
			line.SaleLineID = &saleLineID.Int64
		}

		lines = append(lines, &line)
	}

	return lines, rows.Err()
}
