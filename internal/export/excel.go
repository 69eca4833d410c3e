package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/spec-kit/scaffold-report-service/internal/domain"
)

type excelColumn struct {
	header string
	width  float64
}

var excelColumns = []excelColumn{
	{"Scaffold ID", 12},
	{"Date", 15},
	{"Technician", 30},
	{"Height (m)", 10},
	{"Width (m)", 10},
	{"Depth (m)", 10},
	{"Cubic Meters (m3)", 20},
	{"Progress %", 10},
	{"Assembly Notes", 50},
}

// BuildProjectExcel renders the scaffold report for one project as an
// xlsx workbook and returns its bytes.
func BuildProjectExcel(project *domain.Project, scaffolds []domain.Scaffold) ([]byte, error) {
	workbook := excelize.NewFile()
	defer workbook.Close() //nolint:errcheck

	sheet := fmt.Sprintf("Report %s", project.Name)
	if len(sheet) > 31 {
		// sheet names are capped at 31 characters by the xlsx format
		sheet = sheet[:31]
	}
	index, err := workbook.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	workbook.SetActiveSheet(index)
	if err := workbook.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	for i, col := range excelColumns {
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, err
		}
		if err := workbook.SetColWidth(sheet, name, name, col.width); err != nil {
			return nil, err
		}
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := workbook.SetCellValue(sheet, cell, col.header); err != nil {
			return nil, err
		}
	}

	headerStyle, err := workbook.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}
	lastHeaderCell, err := excelize.CoordinatesToCellName(len(excelColumns), 1)
	if err != nil {
		return nil, err
	}
	if err := workbook.SetCellStyle(sheet, "A1", lastHeaderCell, headerStyle); err != nil {
		return nil, err
	}

	for i, s := range scaffolds {
		row := i + 2
		values := []any{
			s.ID,
			s.AssemblyCreatedAt.Format("2006-01-02"),
			s.ReporterName,
			s.Height,
			s.Width,
			s.Depth,
			s.CubicMeters,
			s.ProgressPercentage,
			s.AssemblyNotes,
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return nil, err
			}
			if err := workbook.SetCellValue(sheet, cell, value); err != nil {
				return nil, err
			}
		}
	}

	buf, err := workbook.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
