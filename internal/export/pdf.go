package export

import (
	"bytes"
	"fmt"

	"github.com/phpdave11/gofpdf"
)

// NoExpensesNotice replaces the table of an empty PDF export.
const NoExpensesNotice = "No expenses found for the selected filters."

const (
	pdfMargin      = 14.0
	pdfRowHeight   = 7.0
	pdfLineHeight  = 5.0
	pdfCellPadding = 1.0
	amountColumn   = 3
)

// column widths in mm; they sum to the printable width of a Letter page.
var pdfColumnWidths = []float64{24, 52, 30, 26, 55.9}

// RenderPDF writes a Letter-sized document titled "Expenses for {owner}"
// with a bordered table, or the empty-result notice when rows is empty.
func RenderPDF(owner string, rows []Row) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "Letter", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(false, pdfMargin)
	pdf.SetCompression(false)
	pdf.SetTitle("Expenses for "+owner, true)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, tr("Expenses for "+owner), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	if len(rows) == 0 {
		pdf.SetFont("Helvetica", "", 11)
		pdf.CellFormat(0, 8, NoExpensesNotice, "", 1, "L", false, 0, "")
	} else {
		writeTable(pdf, tr, rows)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeTable(pdf *gofpdf.Fpdf, tr func(string) string, rows []Row) {
	_, pageHeight := pdf.GetPageSize()
	bottom := pageHeight - pdfMargin
	writeTableHeader(pdf)

	for _, r := range rows {
		cells := wrapRow(pdf, tr, r)
		n := tallest(cells)

		// move a row that would straddle a page break, unless it cannot fit on any page
		if pdf.GetY()+rowHeight(n) > bottom && rowHeight(n) <= bottom-pdfMargin-pdfRowHeight {
			newTablePage(pdf)
		}
		for start := 0; start < n; {
			fit := int((bottom - pdf.GetY() - 2*pdfCellPadding) / pdfLineHeight)
			if fit < 1 {
				newTablePage(pdf)
				continue
			}
			end := min(start+fit, n)
			writeRowSegment(pdf, cells, start, end)
			start = end
		}
	}
}

// wrapRow splits every cell of r into lines that fit its column.
func wrapRow(pdf *gofpdf.Fpdf, tr func(string) string, r Row) [][]string {
	texts := []string{r.Date, r.Title, r.Category, fmt.Sprintf("%.2f", r.Amount), r.Description}
	cells := make([][]string, len(texts))
	for i, text := range texts {
		for _, line := range pdf.SplitLines([]byte(tr(text)), pdfColumnWidths[i]) {
			cells[i] = append(cells[i], string(line))
		}
	}
	return cells
}

func tallest(cells [][]string) int {
	n := 1
	for _, lines := range cells {
		n = max(n, len(lines))
	}
	return n
}

func rowHeight(lines int) float64 {
	return float64(lines)*pdfLineHeight + 2*pdfCellPadding
}

// writeRowSegment draws lines [start, end) of each cell as one bordered row.
func writeRowSegment(pdf *gofpdf.Fpdf, cells [][]string, start, end int) {
	x, y := pdfMargin, pdf.GetY()
	h := rowHeight(end - start)
	for i, w := range pdfColumnWidths {
		align := "L"
		if i == amountColumn {
			align = "R"
		}
		pdf.Rect(x, y, w, h, "D")
		for k := start; k < end && k < len(cells[i]); k++ {
			pdf.SetXY(x, y+pdfCellPadding+float64(k-start)*pdfLineHeight)
			pdf.CellFormat(w, pdfLineHeight, cells[i][k], "", 0, align, false, 0, "")
		}
		x += w
	}
	pdf.SetXY(pdfMargin, y+h)
}

func newTablePage(pdf *gofpdf.Fpdf) {
	pdf.AddPage()
	writeTableHeader(pdf)
}

func writeTableHeader(pdf *gofpdf.Fpdf) {
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(0xf0, 0xf0, 0xf0)
	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.2)
	for i, h := range Header {
		pdf.CellFormat(pdfColumnWidths[i], pdfRowHeight, h, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetFont("Helvetica", "", 10)
}
