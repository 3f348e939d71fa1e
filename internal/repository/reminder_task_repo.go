package repository

import (
	"database/sql"
	"fmt"

	"github.com/jtrs/licence-expiration-report/internal/models"
	"go.uber.org/zap"
)

// ReminderTaskRepository handles reminder task database operations
type ReminderTaskRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewReminderTaskRepository creates a new reminder task repository
func NewReminderTaskRepository(db *sql.DB, logger *zap.Logger) *ReminderTaskRepository {
	return &ReminderTaskRepository{
		db:     db,
		logger: logger,
	}
}

// Exists reports whether a task with the identical (sale order, deadline,
// summary) tuple is already stored
func (r *ReminderTaskRepository) Exists(task *models.ReminderTask) (bool, error) {
	query := `
		SELECT id
		FROM reminder_tasks
		WHERE sale_order_id = ? AND deadline = ? AND summary = ?
		LIMIT 1
	`

	var id int64
	err := r.db.QueryRow(query,
		task.SaleOrderID,
		task.Deadline.Format(dateLayout),
		task.Summary,
	).Scan(&id)

	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		r.logger.Error("Failed to check reminder task existence",
			zap.Int64("sale_order_id", task.SaleOrderID),
			zap.String("summary", task.Summary),
			zap.Error(err))
		return false, fmt.Errorf("failed to check reminder task existence: %w", err)
	}

	return true, nil
}

// Create stores a new reminder task
func (r *ReminderTaskRepository) Create(task *models.ReminderTask) error {
	query := `
		INSERT INTO reminder_tasks (sale_order_id, deadline, summary, note, assignee)
		VALUES (?, ?, ?, ?, ?)
	`

	result, err := r.db.Exec(query,
		task.SaleOrderID,
		task.Deadline.Format(dateLayout),
		task.Summary,
		task.Note,
		task.Assignee,
	)
	if err != nil {
		r.logger.Error("Failed to create reminder task",
			zap.Int64("sale_order_id", task.SaleOrderID),
			zap.String("summary", task.Summary),
			zap.Error(err))
		return fmt.Errorf("failed to create reminder task: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	task.ID = id
	return nil
}
