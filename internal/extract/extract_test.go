package extract

import (
	"encoding/base64"
	"testing"
)

func TestPDFTextRejectsGarbage(t *testing.T) {
	if _, err := PDFText([]byte("definitely not a pdf")); err == nil {
		t.Fatal("expected error for non-PDF payload")
	}
}

func TestImageBase64RoundTrip(t *testing.T) {
	payload := []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10}
	encoded := ImageBase64(payload)
	decoded, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if string(decoded) != string(payload) {
		t.Fatal("round trip mismatch")
	}
}
