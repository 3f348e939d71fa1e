package excel

import (
	"fmt"

	"github.com/jtrs/licence-expiration-report/internal/report"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const sheetName = "Sheet1"

// Per-column width padding on top of the header label length. The Note and
// Product Name columns hold the longest values.
var columnPadding = map[int]int{
	0: 20, // Note
	2: 30, // Product Name
}

const defaultPadding = 2

// Renderer writes an assembled report into an XLSX workbook
type Renderer struct {
	logger *zap.Logger
}

// NewRenderer creates a new XLSX renderer
func NewRenderer(logger *zap.Logger) *Renderer {
	return &Renderer{logger: logger}
}

// Render produces the spreadsheet bytes: a bold header row, then one row
// per report line in product-block order, with a top border opening each
// product block and fill bands from the row's status band.
func (r *Renderer) Render(rep *report.Report) ([]byte, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			r.logger.Warn("Failed to close workbook", zap.Error(err))
		}
	}()

	styles, err := newStyleSet(f)
	if err != nil {
		return nil, fmt.Errorf("failed to create styles: %w", err)
	}

	if err := r.writeHeader(f, styles); err != nil {
		return nil, err
	}

	rowNum := 2 // row 1 is the header
	for _, row := range rep.RenderRows() {
		if err := r.writeRow(f, styles, rowNum, row); err != nil {
			return nil, err
		}
		rowNum++
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}

	r.logger.Info("Report rendered", zap.Int("rows", rowNum-2))
	return buf.Bytes(), nil
}

func (r *Renderer) writeHeader(f *excelize.File, styles *styleSet) error {
	for col, label := range report.Header {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("failed to resolve header cell: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, label); err != nil {
			return fmt.Errorf("failed to write header cell: %w", err)
		}
		if err := f.SetCellStyle(sheetName, cell, cell, styles.header); err != nil {
			return fmt.Errorf("failed to style header cell: %w", err)
		}

		padding, ok := columnPadding[col]
		if !ok {
			padding = defaultPadding
		}
		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return fmt.Errorf("failed to resolve column name: %w", err)
		}
		if err := f.SetColWidth(sheetName, name, name, float64(len(label)+padding)); err != nil {
			return fmt.Errorf("failed to set column width: %w", err)
		}
	}
	return nil
}

func (r *Renderer) writeRow(f *excelize.File, styles *styleSet, rowNum int, row report.RenderRow) error {
	style := styles.forRow(row)

	for col, value := range row.Cells {
		cell, err := excelize.CoordinatesToCellName(col+1, rowNum)
		if err != nil {
			return fmt.Errorf("failed to resolve cell: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, value); err != nil {
			return fmt.Errorf("failed to write cell %s: %w", cell, err)
		}
		if style != 0 {
			if err := f.SetCellStyle(sheetName, cell, cell, style); err != nil {
				return fmt.Errorf("failed to style cell %s: %w", cell, err)
			}
		}
	}
	return nil
}

// styleSet holds the workbook's style ids, one per hint combination
type styleSet struct {
	header     int
	topBorder  int
	overdue    int
	overdueTop int
	dueSoon    int
	dueSoonTop int
}

func newStyleSet(f *excelize.File) (*styleSet, error) {
	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}

	topBorder := []excelize.Border{{Type: "top", Color: "000000", Style: 1}}
	overdueFill := excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"FFC7CE"}}
	dueSoonFill := excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"FFEB9C"}}

	s := &styleSet{header: header}
	if s.topBorder, err = f.NewStyle(&excelize.Style{Border: topBorder}); err != nil {
		return nil, err
	}
	if s.overdue, err = f.NewStyle(&excelize.Style{Fill: overdueFill}); err != nil {
		return nil, err
	}
	if s.overdueTop, err = f.NewStyle(&excelize.Style{Fill: overdueFill, Border: topBorder}); err != nil {
		return nil, err
	}
	if s.dueSoon, err = f.NewStyle(&excelize.Style{Fill: dueSoonFill}); err != nil {
		return nil, err
	}
	if s.dueSoonTop, err = f.NewStyle(&excelize.Style{Fill: dueSoonFill, Border: topBorder}); err != nil {
		return nil, err
	}
	return s, nil
}

// forRow picks the style for a data row; zero means unstyled
func (s *styleSet) forRow(row report.RenderRow) int {
	switch row.Band {
	case report.BandOverdue:
		if row.GroupStart {
			return s.overdueTop
		}
		return s.overdue
	case report.BandDueSoon:
		if row.GroupStart {
			return s.dueSoonTop
		}
		return s.dueSoon
	default:
		if row.GroupStart {
			return s.topBorder
		}
		return 0
	}
}
