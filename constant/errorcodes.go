package constant

// Generator service error codes
const (
	// Generator - Validation errors (0xx)
	ErrCodeEmptySourceText = "GEN001"

	// Generator - Encoding errors (1xx)
	ErrCodeEncodeFailure = "GEN002"
	ErrCodeStaleResult   = "GEN003"

	// Generator - Export errors (2xx)
	ErrCodeSaveFailure      = "GEN201"
	ErrCodeClipboardFailure = "GEN202"
)

// Encoder error codes
const (
	ErrCodeQRBuild    = "QR001"
	ErrCodeQRColor    = "QR002"
	ErrCodeQRRender   = "QR003"
	ErrCodeQRDecode   = "QR004"
	ErrCodeQRCapacity = "QR005"
)

// Error types for categorization
const (
	// Domain error types
	ErrTypeValidation = "validation"
	ErrTypeEncoding   = "encoding"
	ErrTypeExport     = "export"
	ErrTypeClipboard  = "clipboard"

	// Infrastructure error types
	ErrTypeConfig = "config"
)
