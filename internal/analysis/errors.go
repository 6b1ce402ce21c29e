package analysis

import "errors"

var (
	// ErrMissingCredential means the user has not stored a Gemini API key.
	ErrMissingCredential = errors.New("no analysis credential stored")
	// ErrTypeMismatch means the analysis kind does not fit the document type
	// (hair needs an image, document needs a pdf).
	ErrTypeMismatch = errors.New("analysis kind does not match document type")
	// ErrServiceUnavailable covers transport failures, timeouts and non-2xx
	// answers from the analysis provider.
	ErrServiceUnavailable = errors.New("analysis service unavailable")
	// ErrNoAnalysisProduced means the provider answered but returned no
	// candidates or no text parts.
	ErrNoAnalysisProduced = errors.New("no analysis produced")
)
