package models

import "time"

// ReminderTask is a follow-up task asking a salesperson to contact a
// customer about an expiring licence. The (SaleOrderID, Deadline, Summary)
// tuple is the idempotency key: at most one task may exist per tuple.
type ReminderTask struct {
	ID          int64     `json:"id"`
	SaleOrderID int64     `json:"sale_order_id"`
	Deadline    time.Time `json:"deadline"`
	Summary     string    `json:"summary"`
	Note        string    `json:"note"`
	Assignee    string    `json:"assignee"`
	CreatedAt   time.Time `json:"created_at"`
}
