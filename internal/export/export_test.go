package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/spec-kit/scaffold-report-service/internal/domain"
)

func sampleProject() *domain.Project {
	return &domain.Project{
		ID:         1,
		ClientID:   1,
		Name:       "Torre Norte",
		Status:     domain.ProjectStatusActive,
		ClientName: "Constructora Andes",
	}
}

func sampleScaffolds() []domain.Scaffold {
	assembled := time.Date(2026, 8, 10, 9, 0, 0, 0, time.UTC)
	return []domain.Scaffold{
		{
			ID:                 11,
			ProjectID:          1,
			UserID:             5,
			Height:             2,
			Width:              3,
			Depth:              1.5,
			CubicMeters:        9,
			ProgressPercentage: 40,
			AssemblyNotes:      "north face",
			AssemblyCreatedAt:  assembled,
			Status:             domain.ScaffoldStatusAssembled,
			ReporterName:       "Ana Rojas",
		},
		{
			ID:                 12,
			ProjectID:          1,
			UserID:             6,
			Height:             4,
			Width:              2,
			Depth:              2,
			CubicMeters:        16,
			ProgressPercentage: 80,
			AssemblyCreatedAt:  assembled.Add(24 * time.Hour),
			Status:             domain.ScaffoldStatusAssembled,
			ReporterName:       "Luis Soto",
		},
	}
}

func TestWriteProjectPDF(t *testing.T) {
	var buf bytes.Buffer
	err := WriteProjectPDF(&buf, sampleProject(), sampleScaffolds())
	require.NoError(t, err)

	require.Greater(t, buf.Len(), 500)
	require.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
}

func TestWriteProjectPDFEmpty(t *testing.T) {
	var buf bytes.Buffer
	err := WriteProjectPDF(&buf, sampleProject(), nil)
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
}

func TestBuildProjectExcel(t *testing.T) {
	data, err := BuildProjectExcel(sampleProject(), sampleScaffolds())
	require.NoError(t, err)
	require.NotEmpty(t, data)

	workbook, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer workbook.Close() //nolint:errcheck

	const sheet = "Report Torre Norte"
	require.Contains(t, workbook.GetSheetList(), sheet)

	rows, err := workbook.GetRows(sheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	require.Equal(t, "Scaffold ID", rows[0][0])
	require.Equal(t, "Technician", rows[0][2])

	require.Equal(t, "11", rows[1][0])
	require.Equal(t, "Ana Rojas", rows[1][2])
	require.Equal(t, "9", rows[1][6])

	require.Equal(t, "12", rows[2][0])
	require.Equal(t, "Luis Soto", rows[2][2])
}

func TestBuildProjectExcelLongName(t *testing.T) {
	project := sampleProject()
	project.Name = "An Extremely Long Project Name That Overflows The Sheet Limit"

	data, err := BuildProjectExcel(project, nil)
	require.NoError(t, err)

	workbook, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer workbook.Close() //nolint:errcheck

	sheets := workbook.GetSheetList()
	require.Len(t, sheets, 1)
	require.LessOrEqual(t, len(sheets[0]), 31)
}
