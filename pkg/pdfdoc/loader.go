package pdfdoc

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"pdf-knowledge-be/internal/entity"

	"github.com/ledongthuc/pdf"
)

// Loader turns a PDF file path into an ordered sequence of page documents.
type Loader struct{}

func NewLoader() *Loader {
	return &Loader{}
}

// IsPDF reports whether the path carries a .pdf suffix (case-insensitive).
func IsPDF(path string) bool {
	return strings.HasSuffix(strings.ToLower(path), ".pdf")
}

// Load extracts the plain text of every page. Pages that yield no text are
// kept as empty documents so page numbering stays aligned with the source.
func (l *Loader) Load(filePath string) ([]*entity.PageDocument, error) {
	f, reader, err := pdf.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF %s: %w", filePath, err)
	}
	defer f.Close()

	totalPages := reader.NumPage()
	source := filepath.Base(filePath)

	docs := make([]*entity.PageDocument, 0, totalPages)
	for pageNum := 1; pageNum <= totalPages; pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			docs = append(docs, &entity.PageDocument{Source: source, Page: pageNum, TotalPages: totalPages})
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			// A single unreadable page should not sink the document
			text = ""
		}

		docs = append(docs, &entity.PageDocument{
			Content:    strings.TrimSpace(text),
			Source:     source,
			Page:       pageNum,
			TotalPages: totalPages,
		})
	}

	return docs, nil
}

// Stat returns the file size, or an error when the path does not exist.
func Stat(filePath string) (int64, error) {
	info, err := os.Stat(filePath)
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}
