package model

// RawScan is the intermediate type produced by the OCR service and consumed
// by the extraction engine.
type RawScan struct {
	RawText      string `json:"raw_text"`
	WordCount    int    `json:"word_count"`
	OCREngine    string `json:"ocr_engine"`
	IsSearchable bool   `json:"is_searchable"`
}
