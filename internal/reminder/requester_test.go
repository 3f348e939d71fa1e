package reminder

import (
	"fmt"
	"testing"
	"time"

	"github.com/jtrs/licence-expiration-report/internal/models"
	"github.com/jtrs/licence-expiration-report/internal/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockTaskStore implements TaskStore with an in-memory idempotency key set
type MockTaskStore struct {
	created   []*models.ReminderTask
	existsErr error
	createErr error
}

func (m *MockTaskStore) key(task *models.ReminderTask) string {
	return fmt.Sprintf("%d|%s|%s", task.SaleOrderID, task.Deadline.Format("2006-01-02"), task.Summary)
}

func (m *MockTaskStore) Exists(task *models.ReminderTask) (bool, error) {
	if m.existsErr != nil {
		return false, m.existsErr
	}
	for _, existing := range m.created {
		if m.key(existing) == m.key(task) {
			return true, nil
		}
	}
	return false, nil
}

func (m *MockTaskStore) Create(task *models.ReminderTask) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.created = append(m.created, task)
	return nil
}

func testMatch() *report.LineMatch {
	invoiceDate := time.Date(2025, time.October, 1, 0, 0, 0, 0, time.UTC)
	return &report.LineMatch{
		Product: &models.Product{
			ID:                  1,
			Name:                "Standard Licence",
			LicenceLengthMonths: 12,
		},
		Checkpoint: 30,
		Invoice: &models.Invoice{
			ID:          10,
			Name:        "INV/2025/00010",
			InvoiceDate: &invoiceDate,
		},
		Line: &models.InvoiceLine{ID: 100, InvoiceID: 10, ProductID: 1},
		Order: &models.SaleOrder{
			ID:           300,
			Name:         "SO0300",
			CustomerName: "Acme School",
			Salesperson:  "Jane Doe",
		},
	}
}

func TestRequester_RequestForMatch(t *testing.T) {
	logger := zap.NewNop()
	today := time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC)

	t.Run("creates a task for a surviving line", func(t *testing.T) {
		store := &MockTaskStore{}
		requester := NewRequester(store, logger)

		require.NoError(t, requester.RequestForMatch(today, testMatch()))

		require.Len(t, store.created, 1)
		task := store.created[0]
		assert.Equal(t, int64(300), task.SaleOrderID)
		assert.Equal(t, time.Date(2026, time.October, 1, 0, 0, 0, 0, time.UTC), task.Deadline)
		assert.Equal(t, "Licence expiration follow-up (invoice line 100)", task.Summary)
		assert.Equal(t, "Jane Doe", task.Assignee)
		assert.Contains(t, task.Note, "Standard Licence")
		assert.Contains(t, task.Note, "2026-10-01") // expiration date
		assert.Contains(t, task.Note, "Acme School")
	})

	t.Run("repeated request creates exactly one task", func(t *testing.T) {
		store := &MockTaskStore{}
		requester := NewRequester(store, logger)

		require.NoError(t, requester.RequestForMatch(today, testMatch()))
		require.NoError(t, requester.RequestForMatch(today, testMatch()))

		assert.Len(t, store.created, 1)
	})

	t.Run("missing sale order is skipped without error", func(t *testing.T) {
		store := &MockTaskStore{}
		requester := NewRequester(store, logger)

		match := testMatch()
		match.Order = nil

		require.NoError(t, requester.RequestForMatch(today, match))
		assert.Empty(t, store.created)
	})

	t.Run("store failures propagate for boundary logging", func(t *testing.T) {
		requester := NewRequester(&MockTaskStore{createErr: assert.AnError}, logger)
		assert.Error(t, requester.RequestForMatch(today, testMatch()))

		requester = NewRequester(&MockTaskStore{existsErr: assert.AnError}, logger)
		assert.Error(t, requester.RequestForMatch(today, testMatch()))
	})

	t.Run("missing invoice date falls back to placeholder in the note", func(t *testing.T) {
		store := &MockTaskStore{}
		requester := NewRequester(store, logger)

		match := testMatch()
		match.Invoice.InvoiceDate = nil

		require.NoError(t, requester.RequestForMatch(today, match))
		require.Len(t, store.created, 1)
		assert.Contains(t, store.created[0].Note, "expires on /")
	})
}
