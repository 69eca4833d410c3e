package export

import (
	"fmt"
	"io"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/spec-kit/scaffold-report-service/internal/domain"
)

// WriteProjectPDF renders the scaffold report for one project: header,
// project details, volume summary and a per-scaffold table.
func WriteProjectPDF(w io.Writer, project *domain.Project, scaffolds []domain.Scaffold) error {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetAutoPageBreak(true, 20)
	doc.AliasNbPages("")
	doc.SetFooterFunc(func() {
		doc.SetY(-15)
		doc.SetFont("Helvetica", "", 8)
		doc.CellFormat(0, 10, fmt.Sprintf("Page %d of {nb}", doc.PageNo()), "", 0, "C", false, 0, "")
	})
	doc.AddPage()

	doc.SetFont("Helvetica", "B", 20)
	doc.CellFormat(0, 12, "Scaffold Report", "", 1, "C", false, 0, "")
	doc.Ln(4)

	doc.SetFont("Helvetica", "B", 14)
	doc.CellFormat(0, 8, "Project Details", "", 1, "L", false, 0, "")
	doc.SetFont("Helvetica", "", 11)
	doc.CellFormat(0, 6, "Name: "+project.Name, "", 1, "L", false, 0, "")
	doc.CellFormat(0, 6, "Client: "+project.ClientName, "", 1, "L", false, 0, "")
	doc.CellFormat(0, 6, "Generated: "+time.Now().Format("2006-01-02"), "", 1, "L", false, 0, "")
	doc.Ln(6)

	var totalCubicMeters float64
	for _, s := range scaffolds {
		totalCubicMeters += s.CubicMeters
	}

	doc.SetFont("Helvetica", "B", 14)
	doc.CellFormat(0, 8, "Summary", "", 1, "L", false, 0, "")
	doc.SetFont("Helvetica", "", 11)
	doc.CellFormat(0, 6, fmt.Sprintf("Scaffolds reported: %d", len(scaffolds)), "", 1, "L", false, 0, "")
	doc.CellFormat(0, 6, fmt.Sprintf("Total volume (m3): %.2f", totalCubicMeters), "", 1, "L", false, 0, "")
	doc.Ln(6)

	doc.SetFont("Helvetica", "B", 14)
	doc.CellFormat(0, 8, "Scaffolds", "", 1, "L", false, 0, "")

	colWidths := []float64{15, 45, 30, 55, 35}
	headers := []string{"ID", "Dimensions (HxWxD)", "Volume (m3)", "Technician", "Assembled"}

	doc.SetFont("Helvetica", "B", 9)
	for i, header := range headers {
		doc.CellFormat(colWidths[i], 7, header, "B", 0, "L", false, 0, "")
	}
	doc.Ln(-1)

	doc.SetFont("Helvetica", "", 9)
	for _, s := range scaffolds {
		doc.CellFormat(colWidths[0], 6, fmt.Sprintf("%d", s.ID), "", 0, "L", false, 0, "")
		doc.CellFormat(colWidths[1], 6, fmt.Sprintf("%.2fx%.2fx%.2f", s.Height, s.Width, s.Depth), "", 0, "L", false, 0, "")
		doc.CellFormat(colWidths[2], 6, fmt.Sprintf("%.2f", s.CubicMeters), "", 0, "L", false, 0, "")
		doc.CellFormat(colWidths[3], 6, s.ReporterName, "", 0, "L", false, 0, "")
		doc.CellFormat(colWidths[4], 6, s.AssemblyCreatedAt.Format("2006-01-02"), "", 1, "L", false, 0, "")
	}

	return doc.Output(w)
}
