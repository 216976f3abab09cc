package rag

import (
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/BruksfildServices01/booking-assistant/internal/httperr"
)

// ExtractText returns the plain text of every page, one page per line group.
func ExtractText(r io.ReaderAt, size int64) (text string, err error) {
	// the pdf reader panics on some malformed xref tables
	defer func() {
		if rec := recover(); rec != nil {
			text = ""
			err = fmt.Errorf("%w: %v", httperr.ErrBusiness("pdf_extract_failed"), rec)
		}
	}()

	reader, err := pdf.NewReader(r, size)
	if err != nil {
		return "", fmt.Errorf("%w: %v", httperr.ErrBusiness("pdf_extract_failed"), err)
	}

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		content, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("%w: page %d: %v", httperr.ErrBusiness("pdf_extract_failed"), i, err)
		}
		sb.WriteString(content)
		sb.WriteString("\n")
	}

	return sb.String(), nil
}
