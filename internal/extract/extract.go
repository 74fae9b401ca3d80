// Package extract turns uploaded resume files into plain text.
package extract

import (
	"bytes"
	"errors"
	"fmt"
	"html"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

const (
	MimePlain = "text/plain"
	MimePDF   = "application/pdf"
	MimeDocx  = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

var (
	// ErrEmptyText means the file held no extractable text, e.g. a scanned PDF.
	ErrEmptyText = errors.New("no text could be extracted from file")
	// ErrUnsupportedType means the MIME type has no extractor.
	ErrUnsupportedType = errors.New("unsupported file type")
)

// Text extracts plain text from data according to mime. Whitespace-only
// results are rejected with ErrEmptyText so they never reach scoring.
func Text(mime string, data []byte) (string, error) {
	var (
		text string
		err  error
	)
	switch mime {
	case MimePlain:
		text = string(data)
	case MimePDF:
		text, err = pdfText(data)
	case MimeDocx:
		text, err = docxText(data)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedType, mime)
	}
	if err != nil {
		return "", err
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrEmptyText
	}
	return text, nil
}

// MimeFromFilename maps a file extension to a supported MIME type.
func MimeFromFilename(name string) (string, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		return MimePDF, nil
	case ".docx":
		return MimeDocx, nil
	case ".txt":
		return MimePlain, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedType, name)
}

func pdfText(data []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to read pdf: %w", err)
	}
	var b strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("failed to read pdf page %d: %w", i, err)
		}
		b.WriteString(text)
		b.WriteString("\n")
	}
	return b.String(), nil
}

func docxText(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to parse docx: %w", err)
	}
	defer doc.Close()

	return docxPlain(doc.Editable().GetContent()), nil
}

var (
	docxParagraphEnd = regexp.MustCompile(`</w:p>|<w:br/>|<w:tab/>`)
	xmlTag           = regexp.MustCompile(`<[^>]*>`)
)

// docxPlain reduces document.xml content to text, one paragraph per line.
func docxPlain(content string) string {
	content = docxParagraphEnd.ReplaceAllString(content, "\n")
	content = xmlTag.ReplaceAllString(content, "")
	return html.UnescapeString(content)
}
