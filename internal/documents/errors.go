package documents

import "errors"

var (
	// ErrNotFound means no document matches (user, id). Documents of other
	// users are indistinguishable from missing ones.
	ErrNotFound = errors.New("document not found")
	// ErrUnsupportedType means the declared document type is not image or pdf.
	ErrUnsupportedType = errors.New("unsupported document type")
	// ErrExtractionFailed means the PDF could not be parsed or held no text;
	// nothing is persisted in that case.
	ErrExtractionFailed = errors.New("content extraction failed")
	// ErrPayloadTooLarge means the upload exceeds the size cap.
	ErrPayloadTooLarge = errors.New("payload too large")
)
