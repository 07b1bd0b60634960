package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Omkar-DesDev/Expense-Tracker/internal/export"
	"github.com/Omkar-DesDev/Expense-Tracker/internal/logger"
	"github.com/Omkar-DesDev/Expense-Tracker/internal/services"
)

// ExportHandler serves filtered expense downloads
type ExportHandler struct {
	exportService services.ExportServicer
}

// NewExportHandler creates a new ExportHandler
func NewExportHandler(exportService services.ExportServicer) *ExportHandler {
	return &ExportHandler{exportService: exportService}
}

// Export renders the filtered expenses as a file
// @Summary     Export expenses
// @Description Download the filtered, sorted expenses as CSV, XLSX or PDF
// @Tags        export
// @Produce     text/csv
// @Produce     application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Produce     application/pdf
// @Security    BearerAuth
// @Param       format   query string false "csv (default), xlsx or pdf"
// @Param       category query string false "Category filter"
// @Param       start    query string false "Inclusive start date (YYYY-MM-DD)"
// @Param       end      query string false "Inclusive end date (YYYY-MM-DD)"
// @Param       sort     query string false "Sort order"
// @Success     200 {file} file "Attachment"
// @Failure     400 {string} string "Unsupported format"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /export [get]
func (h *ExportHandler) Export(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	format, err := export.ParseFormat(c.Query("format"))
	if err != nil {
		c.String(http.StatusBadRequest, "Unsupported format")
		return
	}

	file, err := h.exportService.Export(c.Request.Context(), userID, filterFromQuery(c), format)
	if err != nil {
		respondWithError(c, err)
		return
	}

	logger.Get().Infow("expenses exported", "user_id", userID, "format", format, "filename", file.Filename)
	c.Header("Content-Disposition", attachmentDisposition(file.Filename))
	c.Data(http.StatusOK, file.ContentType, file.Data)
}

var quoteEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// attachmentDisposition follows gin's FileAttachment: a quoted filename for
// ASCII names, plus an RFC 5987 filename* when the name has other characters.
func attachmentDisposition(filename string) string {
	if isASCII(filename) {
		return `attachment; filename="` + quoteEscaper.Replace(filename) + `"`
	}
	fallback := strings.Map(func(r rune) rune {
		if r > 0x7f {
			return '_'
		}
		return r
	}, filename)
	return `attachment; filename="` + quoteEscaper.Replace(fallback) + `"; filename*=UTF-8''` + encodeExtValue(filename)
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] > 0x7f {
			return false
		}
	}
	return true
}

// encodeExtValue percent-encodes every byte outside the RFC 5987 attr-char set.
func encodeExtValue(s string) string {
	const hex = "0123456789ABCDEF"
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isAttrChar(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hex[c>>4])
		b.WriteByte(hex[c&0x0f])
	}
	return b.String()
}

func isAttrChar(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	return strings.IndexByte("!#$&+-.^_`|~", c) >= 0
}
