package flyerscan

// Scan is an OCR result with optional metadata. Use with ExtractScan
// when you have word counts and engine information from the OCR service.
// For raw text strings, use Extract() instead.
type Scan struct {
	Text       string // The OCR text to extract from
	WordCount  int    // Number of words the OCR service reported (optional)
	OCREngine  string // Name of the OCR engine that produced the text (optional)
	Searchable bool   // Whether the source document had a text layer
}
