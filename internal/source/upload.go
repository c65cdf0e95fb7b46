package source

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
)

// DecodeUpload returns the text of an uploaded file. PDFs are text-extracted;
// everything else must be valid UTF-8.
func DecodeUpload(filename string, content []byte) (string, error) {
	if strings.EqualFold(filepath.Ext(filename), ".pdf") {
		text, err := extractPDF(content)
		if err != nil {
			return "", fmt.Errorf("%w: pdf %s: %v", ErrInvalidUpload, filename, err)
		}
		return text, nil
	}
	if !utf8.Valid(content) {
		return "", fmt.Errorf("%w: %s is not valid UTF-8", ErrInvalidUpload, filename)
	}
	return string(bytes.TrimPrefix(content, []byte("\xef\xbb\xbf"))), nil
}

func extractPDF(content []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	for pageNum := 1; pageNum <= reader.NumPage(); pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() || page.V.Key("Contents").Kind() == pdf.Null {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			// Skip pages that fail to extract
			continue
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}
	return sb.String(), nil
}
