package repository

import (
	"database/sql"
	"os"
	"testing"
	"time"

	"github.com/jtrs/licence-expiration-report/internal/models"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	// A fresh pool connection would see an empty in-memory database
	db.SetMaxOpenConns(1)

	for _, file := range []string{
		"../../migrations/001_initial_schema.sql",
		"../../migrations/002_reminder_tasks.sql",
	} {
		content, err := os.ReadFile(file)
		require.NoError(t, err)
		_, err = db.Exec(string(content))
		require.NoError(t, err)
	}

	t.Cleanup(func() { db.Close() })
	return db
}

func TestProductRepository_FindLicensed(t *testing.T) {
	db := newTestDB(t)
	logger := zap.NewNop()

	_, err := db.Exec(`
		INSERT INTO products (id, default_code, name, active, licence_length_months) VALUES
		(1, 'LIC-STD', 'Standard Licence', 1, 12),
		(2, 'HW-001', 'Hardware', 1, 0),
		(3, 'LIC-OLD', 'Legacy Licence', 0, 6),
		(4, 'SVC-001', 'Service', 1, -1)
	`)
	require.NoError(t, err)

	products, err := NewProductRepository(db, logger).FindLicensed()
	require.NoError(t, err)

	// Positive licence length only, archived products included
	require.Len(t, products, 2)
	assert.Equal(t, int64(1), products[0].ID)
	assert.Equal(t, int64(3), products[1].ID)
	assert.False(t, products[1].Active)
	assert.True(t, products[0].Licensed())
}

func TestInvoiceRepository_FindPostedCustomerInvoices(t *testing.T) {
	db := newTestDB(t)
	logger := zap.NewNop()

	_, err := db.Exec(`
		INSERT INTO products (id, default_code, name, active, licence_length_months)
		VALUES (1, 'LIC-STD', 'Standard Licence', 1, 12);

		INSERT INTO invoices (id, name, invoice_date, state, move_type) VALUES
		(10, 'INV/2025/00010', '2025-10-01', 'posted', 'out_invoice'),
		(11, 'INV/2025/00011', '2025-10-02', 'posted', 'out_invoice'),
		(12, 'INV/2025/00012', '2025-10-01', 'draft', 'out_invoice'),
		(13, 'RINV/2025/00013', '2025-10-01', 'posted', 'out_refund');

		INSERT INTO invoice_lines (id, invoice_id, product_id, sale_line_id) VALUES
		(100, 10, 1, NULL),
		(101, 11, 1, NULL),
		(102, 12, 1, NULL),
		(103, 13, 1, NULL);
	`)
	require.NoError(t, err)

	repo := NewInvoiceRepository(db, logger)
	day := time.Date(2025, time.October, 1, 0, 0, 0, 0, time.UTC)

	t.Run("exact date, posted, customer invoices only", func(t *testing.T) {
		invoices, err := repo.FindPostedCustomerInvoices(1, day)
		require.NoError(t, err)

		require.Len(t, invoices, 1)
		assert.Equal(t, "INV/2025/00010", invoices[0].Name)
		require.NotNil(t, invoices[0].InvoiceDate)
		assert.Equal(t, day, *invoices[0].InvoiceDate)
		require.Len(t, invoices[0].Lines, 1)
		assert.Nil(t, invoices[0].Lines[0].SaleLineID)
	})

	t.Run("no match for other products", func(t *testing.T) {
		invoices, err := repo.FindPostedCustomerInvoices(99, day)
		require.NoError(t, err)
		assert.Empty(t, invoices)
	})
}

func TestSaleOrderRepository(t *testing.T) {
	db := newTestDB(t)
	logger := zap.NewNop()

	_, err := db.Exec(`
		INSERT INTO customers (id, name, salesperson) VALUES (1, 'Acme School', 'Jane Doe');
		INSERT INTO sale_orders (id, name, customer_id, shipping_address)
		VALUES (300, 'SO0300', 1, 'Acme School, 1 High St');
		INSERT INTO sale_order_lines (id, order_id, omit_from_report) VALUES
		(200, 300, 0),
		(201, 300, 1);
	`)
	require.NoError(t, err)

	repo := NewSaleOrderRepository(db, logger)

	t.Run("resolves line and exclusion flag", func(t *testing.T) {
		line, err := repo.GetLineByID(201)
		require.NoError(t, err)
		require.NotNil(t, line)
		assert.True(t, line.OmitFromReport)
		assert.Equal(t, int64(300), line.OrderID)
	})

	t.Run("resolves order with customer context", func(t *testing.T) {
		order, err := repo.GetOrderByID(300)
		require.NoError(t, err)
		require.NotNil(t, order)
		assert.Equal(t, "SO0300", order.Name)
		assert.Equal(t, "Acme School", order.CustomerName)
		assert.Equal(t, "Jane Doe", order.Salesperson)
	})

	t.Run("missing records resolve to nil", func(t *testing.T) {
		line, err := repo.GetLineByID(999)
		require.NoError(t, err)
		assert.Nil(t, line)

		order, err := repo.GetOrderByID(999)
		require.NoError(t, err)
		assert.Nil(t, order)
	})
}

func TestReminderTaskRepository(t *testing.T) {
	db := newTestDB(t)
	logger := zap.NewNop()

	_, err := db.Exec(`
		INSERT INTO customers (id, name, salesperson) VALUES (1, 'Acme School', 'Jane Doe');
		INSERT INTO sale_orders (id, name, customer_id, shipping_address) VALUES (300, 'SO0300', 1, '');
	`)
	require.NoError(t, err)

	repo := NewReminderTaskRepository(db, logger)

	task := &models.ReminderTask{
		SaleOrderID: 300,
		Deadline:    time.Date(2026, time.October, 1, 0, 0, 0, 0, time.UTC),
		Summary:     "Licence expiration follow-up (invoice line 100)",
		Note:        "Licence for Standard Licence expires on 2026-10-01.",
		Assignee:    "Jane Doe",
	}

	t.Run("create then exists", func(t *testing.T) {
		exists, err := repo.Exists(task)
		require.NoError(t, err)
		assert.False(t, exists)

		require.NoError(t, repo.Create(task))
		assert.NotZero(t, task.ID)

		exists, err = repo.Exists(task)
		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("different deadline is a different key", func(t *testing.T) {
		other := *task
		other.Deadline = task.Deadline.AddDate(0, 0, 1)

		exists, err := repo.Exists(&other)
		require.NoError(t, err)
		assert.False(t, exists)
	})
}

func TestParamRepository(t *testing.T) {
	db := newTestDB(t)
	repo := NewParamRepository(db, zap.NewNop())

	t.Run("missing key reads as empty", func(t *testing.T) {
		value, err := repo.Get("licence_expiration_report.time_checkpoints")
		require.NoError(t, err)
		assert.Equal(t, "", value)
	})

	t.Run("set then get", func(t *testing.T) {
		require.NoError(t, repo.Set("licence_expiration_report.time_checkpoints", "14, 30, 60, 90"))

		value, err := repo.Get("licence_expiration_report.time_checkpoints")
		require.NoError(t, err)
		assert.Equal(t, "14, 30, 60, 90", value)

		require.NoError(t, repo.Set("licence_expiration_report.time_checkpoints", "30"))
		value, err = repo.Get("licence_expiration_report.time_checkpoints")
		require.NoError(t, err)
		assert.Equal(t, "30", value)
	})
}
