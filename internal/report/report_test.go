package report

import (
	"testing"

	"github.com/jtrs/licence-expiration-report/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRow(note string) Row {
	row := Row{note}
	for i := 1; i < len(Header); i++ {
		row = append(row, Placeholder)
	}
	return row
}

func TestReportEmpty(t *testing.T) {
	t.Run("no blocks at all", func(t *testing.T) {
		assert.True(t, (&Report{}).Empty())
	})

	t.Run("blocks with only empty groups", func(t *testing.T) {
		rep := &Report{Blocks: []*ProductBlock{
			{Product: &models.Product{ID: 1}, Groups: []*CheckpointGroup{
				{Checkpoint: 30},
				{Checkpoint: 90},
			}},
			{Product: &models.Product{ID: 2}, Groups: []*CheckpointGroup{
				{Checkpoint: 30},
			}},
		}}
		assert.True(t, rep.Empty())
	})

	t.Run("a single row anywhere makes it non-empty", func(t *testing.T) {
		rep := &Report{Blocks: []*ProductBlock{
			{Product: &models.Product{ID: 1}, Groups: []*CheckpointGroup{
				{Checkpoint: 30},
			}},
			{Product: &models.Product{ID: 2}, Groups: []*CheckpointGroup{
				{Checkpoint: 30},
				{Checkpoint: 90, Rows: []Row{sampleRow("x")}},
			}},
		}}
		assert.False(t, rep.Empty())
	})
}

func TestReportRenderRows(t *testing.T) {
	rep := &Report{Blocks: []*ProductBlock{
		{Product: &models.Product{ID: 1}, Groups: []*CheckpointGroup{
			{Checkpoint: -5, Rows: []Row{sampleRow("a"), sampleRow("b")}},
			{Checkpoint: 30, Rows: []Row{sampleRow("c")}},
		}},
		{Product: &models.Product{ID: 2}, Groups: []*CheckpointGroup{
			{Checkpoint: -5},
			{Checkpoint: 30, Rows: []Row{sampleRow("d")}},
		}},
	}}

	rows := rep.RenderRows()
	require.Len(t, rows, 4)

	t.Run("group start marks the first row per product block", func(t *testing.T) {
		assert.True(t, rows[0].GroupStart)
		assert.False(t, rows[1].GroupStart)
		assert.False(t, rows[2].GroupStart) // same product, later checkpoint
		assert.True(t, rows[3].GroupStart)  // second product's first row
	})

	t.Run("band follows the checkpoint", func(t *testing.T) {
		assert.Equal(t, BandOverdue, rows[0].Band)
		assert.Equal(t, BandOverdue, rows[1].Band)
		assert.Equal(t, BandNone, rows[2].Band)
		assert.Equal(t, BandNone, rows[3].Band)
	})

	t.Run("flattening preserves order", func(t *testing.T) {
		assert.Equal(t, "a", rows[0].Cells[0])
		assert.Equal(t, "b", rows[1].Cells[0])
		assert.Equal(t, "c", rows[2].Cells[0])
		assert.Equal(t, "d", rows[3].Cells[0])
	})
}
