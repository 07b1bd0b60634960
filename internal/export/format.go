package export

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrUnsupportedFormat is returned for a format token outside csv, xlsx,
// excel and pdf.
var ErrUnsupportedFormat = errors.New("unsupported format")

// Format is an export file format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
	FormatPDF  Format = "pdf"
)

// ParseFormat maps a request token to a Format. Empty means CSV; "excel" is
// an alias for XLSX.
func ParseFormat(token string) (Format, error) {
	switch strings.ToLower(token) {
	case "", "csv":
		return FormatCSV, nil
	case "xlsx", "excel":
		return FormatXLSX, nil
	case "pdf":
		return FormatPDF, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, token)
}

// Ext returns the filename extension without the dot.
func (f Format) Ext() string { return string(f) }

// ContentType returns the media type of the rendered file.
func (f Format) ContentType() string {
	switch f {
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatPDF:
		return "application/pdf"
	default:
		return "text/csv"
	}
}

// Filename names a download expenses_{username}_{YYYYMMDD_HHMMSS}.{ext},
// stamped with the generation time.
func Filename(username string, generatedAt time.Time, f Format) string {
	return fmt.Sprintf("expenses_%s_%s.%s", username, generatedAt.Format("20060102_150405"), f.Ext())
}
