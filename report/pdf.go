package report

import (
	"fmt"
	"io"

	"github.com/ledongthuc/pdf"
)

// =============================================================================
// PAGE SOURCE - the external PDF text-extraction collaborator
// =============================================================================

// PageSource yields the raw text of each page of an uploaded report.
// It takes an io.ReaderAt so the same upload can be read from the start
// by more than one extraction pass.
type PageSource interface {
	PageTexts(r io.ReaderAt, size int64) ([]string, error)
}

// PDFSource extracts page text from text-bearing PDF documents.
type PDFSource struct{}

var _ PageSource = PDFSource{}

// PageTexts returns one string per page. Pages whose text cannot be
// extracted are skipped, not fatal; a document that cannot be opened at
// all is an error for the caller to surface.
func (PDFSource) PageTexts(r io.ReaderAt, size int64) ([]string, error) {
	doc, err := pdf.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("report: open pdf: %w", err)
	}

	var pages []string
	for i := 1; i <= doc.NumPage(); i++ {
		page := doc.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		pages = append(pages, text)
	}
	return pages, nil
}
