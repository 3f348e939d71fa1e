package report

import "github.com/jtrs/licence-expiration-report/internal/models"

// Report is the assembled result of one run: product blocks in first-seen
// order, each holding one group per configured checkpoint in configuration
// order. Ordering determines visual grouping in the rendered sheet, so
// both levels preserve insertion order.
type Report struct {
	Blocks []*ProductBlock
}

// ProductBlock groups all rows for one licensed product
type ProductBlock struct {
	Product *models.Product
	Groups  []*CheckpointGroup
}

// CheckpointGroup holds the rows matched for one checkpoint. An empty Rows
// slice is the normal "no matches" state; the group is always present for
// every configured checkpoint.
type CheckpointGroup struct {
	Checkpoint int
	Rows       []Row
}

// Empty reports whether the report carries no rows at all, in which case
// downstream must not render, send, or create anything
func (r *Report) Empty() bool {
	for _, block := range r.Blocks {
		for _, group := range block.Groups {
			if len(group.Rows) > 0 {
				return false
			}
		}
	}
	return true
}

// RenderRow is one flattened data row with its formatting hints
type RenderRow struct {
	Cells Row
	// GroupStart marks the first row of a product's block, spanning that
	// product's checkpoints; the renderer draws a separator above it
	GroupStart bool
	Band       Band
}

// RenderRows flattens the report in product-block, checkpoint, match order
// and computes per-row formatting hints
func (r *Report) RenderRows() []RenderRow {
	var rows []RenderRow
	for _, block := range r.Blocks {
		first := true
		for _, group := range block.Groups {
			for _, row := range group.Rows {
				rows = append(rows, RenderRow{
					Cells:      row,
					GroupStart: first,
					Band:       BandFor(group.Checkpoint),
				})
				first = false
			}
		}
	}
	return rows
}
