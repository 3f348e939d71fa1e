package repository

import (
	"database/sql"
	"fmt"

	"github.com/jtrs/licence-expiration-report/internal/models"
	"go.uber.org/zap"
)

// SaleOrderRepository handles sale order database operations
type SaleOrderRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewSaleOrderRepository creates a new sale order repository
func NewSaleOrderRepository(db *sql.DB, logger *zap.Logger) *SaleOrderRepository {
	return &SaleOrderRepository{
		db:     db,
		logger: logger,
	}
}

// GetLineByID retrieves a sale order line, or nil when it does not exist
func (r *SaleOrderRepository) GetLineByID(id int64) (*models.SaleOrderLine, error) {
	query := `
		SELECT id, order_id, omit_from_report
		FROM sale_order_lines
		WHERE id = ?
	`

	var line models.SaleOrderLine
	err := r.db.QueryRow(query, id).Scan(
		&line.ID,
		&line.OrderID,
		&line.OmitFromReport,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get sale order line", zap.Int64("line_id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get sale order line: %w", err)
	}

	return &line, nil
}

// GetOrderByID retrieves a sale order with its customer context resolved,
// or nil when it does not exist. Salesperson is the customer's assigned
// salesperson, not any per-document field.
func (r *SaleOrderRepository) GetOrderByID(id int64) (*models.SaleOrder, error) {
	query := `
		SELECT o.id, o.name, o.customer_id, c.name, c.salesperson, o.shipping_address
		FROM sale_orders o
		JOIN customers c ON c.id = o.customer_id
		WHERE o.id = ?
	`

	var order models.SaleOrder
	err := r.db.QueryRow(query, id).Scan(
		&order.ID,
		&order.Name,
		&order.CustomerID,
		&order.CustomerName,
		&order.Salesperson,
		&order.ShippingAddress,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get sale order", zap.Int64("order_id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get sale order: %w", err)
	}

	return &order, nil
}
