package reminder

import (
	"fmt"
	"time"

	"github.com/jtrs/licence-expiration-report/internal/models"
	"github.com/jtrs/licence-expiration-report/internal/report"
	"go.uber.org/zap"
)

// TaskStore persists reminder tasks and answers idempotency lookups
type TaskStore interface {
	Exists(task *models.ReminderTask) (bool, error)
	Create(task *models.ReminderTask) error
}

// Requester creates follow-up tasks for expiring licences. Creation is
// idempotent over the (sale order, deadline, summary) tuple, so repeated
// runs on the same day never duplicate tasks.
type Requester struct {
	tasks  TaskStore
	logger *zap.Logger
}

// NewRequester creates a new reminder requester
func NewRequester(tasks TaskStore, logger *zap.Logger) *Requester {
	return &Requester{
		tasks:  tasks,
		logger: logger,
	}
}

// RequestForMatch requests one follow-up task for a surviving report line.
// A line with no resolvable sale order is skipped with a logged error;
// skipping never fails the run.
func (r *Requester) RequestForMatch(today time.Time, match *report.LineMatch) error {
	if match.Order == nil {
		r.logger.Error("Cannot create reminder, invoice line has no sale order",
			zap.Int64("invoice_line_id", match.Line.ID),
			zap.Int64("invoice_id", match.Invoice.ID))
		return nil
	}

	task := &models.ReminderTask{
		SaleOrderID: match.Order.ID,
		Deadline:    today.AddDate(0, 0, match.Checkpoint),
		Summary:     fmt.Sprintf("Licence expiration follow-up (invoice line %d)", match.Line.ID),
		Note:        r.buildNote(match),
		Assignee:    match.Order.Salesperson,
	}

	exists, err := r.tasks.Exists(task)
	if err != nil {
		return fmt.Errorf("failed idempotency lookup: %w", err)
	}
	if exists {
		r.logger.Debug("Reminder task already exists, skipping",
			zap.Int64("sale_order_id", task.SaleOrderID),
			zap.String("summary", task.Summary))
		return nil
	}

	if err := r.tasks.Create(task); err != nil {
		return fmt.Errorf("failed to create reminder task: %w", err)
	}

	r.logger.Info("Reminder task created",
		zap.Int64("sale_order_id", task.SaleOrderID),
		zap.String("deadline", task.Deadline.Format(report.DateLayout)),
		zap.String("assignee", task.Assignee))
	return nil
}

// buildNote writes the human-readable task note with the licence's
// expiration date and product display name
func (r *Requester) buildNote(match *report.LineMatch) string {
	expiration := report.Placeholder
	if match.Invoice.InvoiceDate != nil {
		expiration = report.AddMonths(*match.Invoice.InvoiceDate, match.Product.LicenceLengthMonths).
			Format(report.DateLayout)
	}

	return fmt.Sprintf("Licence for %s (invoice %s) expires on %s. Please contact %s about renewal.",
		match.Product.Name,
		match.Invoice.Name,
		expiration,
		match.Order.CustomerName,
	)
}
