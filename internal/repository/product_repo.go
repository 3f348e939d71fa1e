package repository

import (
	"database/sql"
	"fmt"

	"github.com/jtrs/licence-expiration-report/internal/models"
	"go.uber.org/zap"
)

// ProductRepository handles product database operations
type ProductRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewProductRepository creates a new product repository
func NewProductRepository(db *sql.DB, logger *zap.Logger) *ProductRepository {
	return &ProductRepository{
		db:     db,
		logger: logger,
	}
}

// FindLicensed returns all products with a positive licence length,
// including archived ones. Archived products still have sold licences
// that expire, so they stay in the report.
func (r *ProductRepository) FindLicensed() ([]*models.Product, error) {
	query := `
		SELECT id, default_code, name, active, licence_length_months
		FROM products
		WHERE licence_length_months > 0
		ORDER BY id
	`

	rows, err := r.db.Query(query)
	if err != nil {
		r.logger.Error("Failed to query licensed products", zap.Error(err))
		return nil, fmt.Errorf("failed to query licensed products: %w", err)
	}
	defer rows.Close()

	var products []*models.Product
	for rows.Next() {
		var product models.Product
		err := rows.Scan(
			&product.ID,
			&product.DefaultCode,
			&product.Name,
			&product.Active,
			&product.LicenceLengthMonths,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, &product)
	}

	return products, rows.Err()
}

// GetByID retrieves a product by its identifier
func (r *ProductRepository) GetByID(id int64) (*models.Product, error) {
	query := `
		SELECT id, default_code, name, active, licence_length_months
		FROM products
		WHERE id = ?
	`

	var product models.Product
	err := r.db.QueryRow(query, id).Scan(
		&product.ID,
		&product.DefaultCode,
		&product.Name,
		&product.Active,
		&product.LicenceLengthMonths,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get product", zap.Int64("product_id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	return &product, nil
}
