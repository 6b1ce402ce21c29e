// Package extract turns uploaded payloads into the canonical content string
// stored with a document: PDFs become plain text, images become base64.
package extract

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ErrNoText means the PDF parsed but yielded no extractable text
// (scanned pages, empty files).
var ErrNoText = errors.New("no extractable text")

// PDFText extracts the plain text of a PDF payload.
func PDFText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("parse pdf: %w", err)
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extract pdf text: %w", err)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(plain); err != nil {
		return "", fmt.Errorf("read pdf text: %w", err)
	}

	text := strings.TrimSpace(buf.String())
	if text == "" {
		return "", ErrNoText
	}
	return text, nil
}

// ImageBase64 encodes an image payload for inline transport to the
// analysis provider.
func ImageBase64(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}
