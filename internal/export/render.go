package export

// Render produces the complete file for rows in format f. owner is the
// username shown in the PDF heading.
func Render(f Format, owner string, rows []Row) ([]byte, error) {
	switch f {
	case FormatCSV:
		return RenderCSV(rows)
	case FormatXLSX:
		return RenderXLSX(rows)
	case FormatPDF:
		return RenderPDF(owner, rows)
	}
	return nil, ErrUnsupportedFormat
}
